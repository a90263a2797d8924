package gtvstruct

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devops-vn/postchain-client-go/gtv"
)

type innerStruct struct {
	Label string
}

type sample struct {
	Name      string
	Amount    int64
	Active    bool
	Tags      []string
	Payload   []byte
	Skipped   string `gtv:"-"`
	Renamed   string `gtv:"custom_name"`
	Nested    innerStruct
	BigAmount *big.Int `gtv:"big_amount,bigint"`
	Price     string   `gtv:"price,bigdecimal"`
	unexported string
}

func TestToGTV_StructBecomesDict(t *testing.T) {
	s := sample{
		Name:      "alice",
		Amount:    42,
		Active:    true,
		Tags:      []string{"a", "b"},
		Payload:   []byte{1, 2, 3},
		Skipped:   "ignored",
		Renamed:   "hi",
		Nested:    innerStruct{Label: "x"},
		BigAmount: big.NewInt(9999999999),
		Price:     "19.99",
	}
	v, err := ToGTV(s)
	require.NoError(t, err)
	assert.Equal(t, gtv.KindDict, v.Kind())

	_, ok := v.Get("Skipped")
	assert.False(t, ok)

	renamed, ok := v.Get("custom_name")
	require.True(t, ok)
	text, _ := renamed.Text()
	assert.Equal(t, "hi", text)

	amount, ok := v.Get("Amount")
	require.True(t, ok)
	n, _ := amount.Int64()
	assert.Equal(t, int64(42), n)

	bigAmount, ok := v.Get("big_amount")
	require.True(t, ok)
	assert.Equal(t, gtv.KindBigInteger, bigAmount.Kind())

	nested, ok := v.Get("Nested")
	require.True(t, ok)
	label, ok := nested.Get("Label")
	require.True(t, ok)
	labelText, _ := label.Text()
	assert.Equal(t, "x", labelText)

	payload, ok := v.Get("Payload")
	require.True(t, ok)
	rawBytes, _ := payload.Bytes()
	assert.Equal(t, []byte{1, 2, 3}, rawBytes)

	price, ok := v.Get("price")
	require.True(t, ok)
	assert.Equal(t, gtv.KindDecimal, price.Kind())
	priceText, _ := price.Text()
	assert.Equal(t, "19.99", priceText)
}

func TestToGTV_BigdecimalTag_RoundTrip(t *testing.T) {
	type withDecimal struct {
		Price string `gtv:"price,bigdecimal"`
	}
	v, err := ToGTV(withDecimal{Price: "123.450"})
	require.NoError(t, err)

	price, ok := v.Get("price")
	require.True(t, ok)
	require.Equal(t, gtv.KindDecimal, price.Kind())

	// Decimal travels as Text on the wire, so it decodes as Text with the
	// textual form preserved verbatim.
	decoded, err := gtv.Decode(gtv.Encode(price))
	require.NoError(t, err)
	assert.Equal(t, gtv.KindText, decoded.Kind())
	text, _ := decoded.Text()
	assert.Equal(t, "123.450", text)
}

func TestToGTV_BigdecimalTag_RejectsInvalidForm(t *testing.T) {
	type withDecimal struct {
		Price string `gtv:"price,bigdecimal"`
	}
	_, err := ToGTV(withDecimal{Price: "not-a-number"})
	assert.Error(t, err)
}

func TestToGTV_BigdecimalTag_RejectsNonStringField(t *testing.T) {
	type badDecimal struct {
		Price int64 `gtv:"price,bigdecimal"`
	}
	_, err := ToGTV(badDecimal{Price: 5})
	assert.Error(t, err)
}

func TestToGTV_NilPointerIsNull(t *testing.T) {
	var p *int
	v, err := ToGTV(p)
	require.NoError(t, err)
	assert.Equal(t, gtv.KindNull, v.Kind())
}

func TestToGTV_PassesThroughExistingValue(t *testing.T) {
	in := gtv.Text("already a value")
	v, err := ToGTV(in)
	require.NoError(t, err)
	assert.True(t, gtv.Equal(in, v))
}

func TestToGTV_MapBecomesDict(t *testing.T) {
	m := map[string]interface{}{"x": int64(1), "y": "two"}
	v, err := ToGTV(m)
	require.NoError(t, err)
	assert.Equal(t, gtv.KindDict, v.Kind())
	entries, _ := v.Entries()
	assert.Len(t, entries, 2)
}

func TestQueryBody_BuildsTypeDict(t *testing.T) {
	v, err := QueryBody("get_balance", map[string]interface{}{"account_id": "abc"})
	require.NoError(t, err)
	typ, ok := v.Get("type")
	require.True(t, ok)
	text, _ := typ.Text()
	assert.Equal(t, "get_balance", text)

	acc, ok := v.Get("account_id")
	require.True(t, ok)
	accText, _ := acc.Text()
	assert.Equal(t, "abc", accText)
}
