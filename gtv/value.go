// Package gtv implements the GTV (Generic Transfer Value) value model and
// its canonical ASN.1 DER codec, as consumed by every Postchain request and
// on-chain artifact. The value type is a recursive, dynamically-typed sum;
// encoding and decoding are pure, whole-value operations (no streaming, no
// schema validation) — see the package-level Encode/Decode/Hash functions.
package gtv

import (
	"math/big"
	"regexp"
	"sort"

	"github.com/devops-vn/postchain-client-go/postchainerr"
)

// Kind discriminates the GTV value variants.
type Kind uint8

const (
	KindNull Kind = iota
	// KindBoolean only ever appears on values built in-process with Bool;
	// Decode never produces it. Boolean and Integer are wire-indistinguishable,
	// so decoding always yields KindInteger.
	KindBoolean
	KindInteger
	KindBigInteger
	KindDecimal
	KindText
	KindByteArray
	KindArray
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindBigInteger:
		return "BigInteger"
	case KindDecimal:
		return "Decimal"
	case KindText:
		return "Text"
	case KindByteArray:
		return "ByteArray"
	case KindArray:
		return "Array"
	case KindDict:
		return "Dict"
	default:
		return "Unknown"
	}
}

// DictEntry is one key/value pair of a Dict, in whatever order the caller
// supplies it at construction; NewDict normalizes the order on return.
type DictEntry struct {
	Key   string
	Value Value
}

// Value is the GTV recursive sum type. The zero Value is KindNull.
type Value struct {
	kind Kind

	i64    int64
	bigint *big.Int
	text   string // Text and Decimal payload
	raw    []byte // ByteArray payload
	items  []Value
	dict   []DictEntry // canonical (key-sorted) order
}

// MaxDepth bounds decode recursion to protect against stack exhaustion on
// hostile input.
const MaxDepth = 256

// Null returns the GTV Null value.
func Null() Value { return Value{kind: KindNull} }

// Bool constructs a Boolean value. It encodes identically to Integer(0/1)
// but is structurally distinct from it until it round-trips through
// Decode, which always yields KindInteger — see KindBoolean.
func Bool(b bool) Value {
	v := Value{kind: KindBoolean}
	if b {
		v.i64 = 1
	}
	return v
}

// Int constructs a signed 64-bit Integer value.
func Int(n int64) Value { return Value{kind: KindInteger, i64: n} }

// BigInt constructs a BigInteger value. Panics if n is nil: a nil *big.Int
// here is a programmer error, not a data error, and should surface
// immediately rather than propagate as a wrapped error.
func BigInt(n *big.Int) Value {
	if n == nil {
		panic("gtv: BigInt requires a non-nil *big.Int")
	}
	return Value{kind: KindBigInteger, bigint: new(big.Int).Set(n)}
}

// decimalPattern accepts an optional sign, an integer part with no
// unnecessary leading zeros (0 alone is allowed), and an optional fractional
// part. It intentionally preserves whatever trailing zeros the caller wrote
// in the fractional part: Decimal's textual form is kept verbatim, not
// renormalized.
var decimalPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?$`)

// Decimal constructs a Decimal value from its canonical textual form. The
// wire protocol has no native decimal tag; this is validated at
// construction time so a malformed string never reaches the codec.
func Decimal(s string) (Value, error) {
	if !decimalPattern.MatchString(s) {
		return Value{}, postchainerr.Wrap(postchainerr.ErrInvalidDecimal, "%q", s)
	}
	return Value{kind: KindDecimal, text: s}, nil
}

// Text constructs a UTF-8 Text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Bytes constructs a ByteArray value. The slice is copied so later mutation
// by the caller cannot change an already-constructed Value.
func Bytes(b []byte) Value {
	cp := append([]byte(nil), b...)
	return Value{kind: KindByteArray, raw: cp}
}

// Array constructs an ordered Array value; order is significant and
// preserved exactly as given.
func Array(items ...Value) Value {
	cp := append([]Value(nil), items...)
	return Value{kind: KindArray, items: cp}
}

// NewDict builds a Dict from insertion-ordered entries, normalizing them to
// the canonical key-sorted order the codec requires — callers need not
// pre-sort. Duplicate keys are rejected.
func NewDict(entries ...DictEntry) (Value, error) {
	cp := append([]DictEntry(nil), entries...)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Key < cp[j].Key })
	for i := 1; i < len(cp); i++ {
		if cp[i].Key == cp[i-1].Key {
			return Value{}, postchainerr.Wrap(postchainerr.ErrDuplicateDictKey, "%q", cp[i].Key)
		}
	}
	return Value{kind: KindDict, dict: cp}, nil
}

// MustDict is NewDict but panics on error, for call sites building literal,
// statically-known dicts where a duplicate key is a programmer error that
// should surface immediately.
func MustDict(entries ...DictEntry) Value {
	v, err := NewDict(entries...)
	if err != nil {
		panic(err)
	}
	return v
}

// Kind reports the value's variant.
func (v Value) Kind() Kind { return v.kind }

// Int64 returns the payload of an Integer (or Boolean) value.
func (v Value) Int64() (int64, bool) {
	if v.kind != KindInteger && v.kind != KindBoolean {
		return 0, false
	}
	return v.i64, true
}

// Bool reports the payload of a Boolean value.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBoolean {
		return false, false
	}
	return v.i64 != 0, true
}

// Big returns the payload of a BigInteger value.
func (v Value) Big() (*big.Int, bool) {
	if v.kind != KindBigInteger {
		return nil, false
	}
	return new(big.Int).Set(v.bigint), true
}

// Text returns the payload of a Text or Decimal value.
func (v Value) Text() (string, bool) {
	if v.kind != KindText && v.kind != KindDecimal {
		return "", false
	}
	return v.text, true
}

// Bytes returns the payload of a ByteArray value.
func (v Value) Bytes() ([]byte, bool) {
	if v.kind != KindByteArray {
		return nil, false
	}
	return append([]byte(nil), v.raw...), true
}

// Items returns the elements of an Array value, in order.
func (v Value) Items() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return append([]Value(nil), v.items...), true
}

// Entries returns the entries of a Dict value, in canonical key order.
func (v Value) Entries() ([]DictEntry, bool) {
	if v.kind != KindDict {
		return nil, false
	}
	return append([]DictEntry(nil), v.dict...), true
}

// Get looks up a Dict entry by key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindDict {
		return Value{}, false
	}
	i := sort.Search(len(v.dict), func(i int) bool { return v.dict[i].Key >= key })
	if i < len(v.dict) && v.dict[i].Key == key {
		return v.dict[i].Value, true
	}
	return Value{}, false
}

// Equal reports structural equality. Boolean and Integer are
// wire-identical but remain structurally distinct variants; a value
// round-tripped through Decode can therefore never Equal a Bool value even
// if its Int64 payload matches (see the §9 open-question note on Kind).
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBoolean, KindInteger:
		return a.i64 == b.i64
	case KindBigInteger:
		return a.bigint.Cmp(b.bigint) == 0
	case KindText, KindDecimal:
		return a.text == b.text
	case KindByteArray:
		if len(a.raw) != len(b.raw) {
			return false
		}
		for i := range a.raw {
			if a.raw[i] != b.raw[i] {
				return false
			}
		}
		return true
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if len(a.dict) != len(b.dict) {
			return false
		}
		for i := range a.dict {
			if a.dict[i].Key != b.dict[i].Key || !Equal(a.dict[i].Value, b.dict[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
