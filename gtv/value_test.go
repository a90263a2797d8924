package gtv

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual_BooleanAndIntegerAreDistinctVariants(t *testing.T) {
	assert.False(t, Equal(Bool(true), Int(1)))
	assert.True(t, Equal(Bool(true), Bool(true)))
	assert.True(t, Equal(Int(1), Int(1)))
}

func TestNewDict_SortsAndRejectsDuplicates(t *testing.T) {
	d, err := NewDict(
		DictEntry{Key: "z", Value: Int(1)},
		DictEntry{Key: "a", Value: Int(2)},
	)
	require.NoError(t, err)
	entries, ok := d.Entries()
	require.True(t, ok)
	assert.Equal(t, "a", entries[0].Key)
	assert.Equal(t, "z", entries[1].Key)

	_, err = NewDict(DictEntry{Key: "a", Value: Int(1)}, DictEntry{Key: "a", Value: Int(2)})
	assert.Error(t, err)
}

func TestDict_Get(t *testing.T) {
	d := MustDict(DictEntry{Key: "x", Value: Text("hi")}, DictEntry{Key: "y", Value: Int(5)})
	v, ok := d.Get("y")
	require.True(t, ok)
	n, _ := v.Int64()
	assert.Equal(t, int64(5), n)

	_, ok = d.Get("missing")
	assert.False(t, ok)
}

func TestDecimal_ValidatesTextualForm(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"0", true},
		{"0.5", true},
		{"-0.5", true},
		{"123.456000", true},
		{"01", false},
		{"1.", false},
		{"", false},
		{"-", false},
		{"1e10", false},
	}
	for _, c := range cases {
		_, err := Decimal(c.in)
		if c.valid {
			assert.NoError(t, err, c.in)
		} else {
			assert.Error(t, err, c.in)
		}
	}
}

func TestBigInt_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { BigInt(nil) })
}

func TestBigInt_CopiesInput(t *testing.T) {
	n := big.NewInt(5)
	v := BigInt(n)
	n.SetInt64(999)
	got, _ := v.Big()
	assert.Equal(t, int64(5), got.Int64())
}

func TestBytes_DefensiveCopyOnConstructAndRead(t *testing.T) {
	src := []byte{1, 2, 3}
	v := Bytes(src)
	src[0] = 0xFF
	got, _ := v.Bytes()
	assert.Equal(t, []byte{1, 2, 3}, got)

	got[1] = 0xFF
	got2, _ := v.Bytes()
	assert.Equal(t, byte(2), got2[1])
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Integer", KindInteger.String())
	assert.Equal(t, "Unknown", Kind(255).String())
}
