package gtv

import "math/big"

// Universal ASN.1 tags used for the inner value of every GTV variant.
const (
	tagUniversalNull    = 0x05
	tagUniversalOctet   = 0x04
	tagUniversalUTF8    = 0x0C
	tagUniversalInteger = 0x02
	tagUniversalSeq     = 0x30
)

// Outer, context-specific, constructed, explicit tags, one per GTV variant.
// Class=context(10) | constructed(1) | tag number.
const (
	tagOuterNull       = 0xA0
	tagOuterByteArray  = 0xA1
	tagOuterText       = 0xA2
	tagOuterInteger    = 0xA3
	tagOuterDict       = 0xA4
	tagOuterArray      = 0xA5
	tagOuterBigInteger = 0xA6
)

// encodeLength appends the DER length encoding of n: short form for n<=127,
// otherwise the minimal-length long form.
func encodeLength(n int) []byte {
	if n < 0x80 {
		return []byte{byte(n)}
	}
	var tmp []byte
	for v := n; v > 0; v >>= 8 {
		tmp = append([]byte{byte(v)}, tmp...)
	}
	return append([]byte{0x80 | byte(len(tmp))}, tmp...)
}

// tlv builds a single tag-length-value record.
func tlv(tag byte, content []byte) []byte {
	out := make([]byte, 0, 2+len(content))
	out = append(out, tag)
	out = append(out, encodeLength(len(content))...)
	out = append(out, content...)
	return out
}

// derInt is the shortest two's-complement DER encoding of n (spec
// §4.2.1 "DER-minimal two's complement"). n==0 encodes as a single 0x00
// byte, matching S1.
func derInt(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{0x00}
	}
	if n.Sign() > 0 {
		b := n.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0x00}, b...)
		}
		return b
	}
	abs := new(big.Int).Neg(n)
	absBytes := abs.Bytes()
	m := len(absBytes)
	mod := new(big.Int).Lsh(big.NewInt(1), uint(m*8))
	twos := new(big.Int).Sub(mod, abs)
	out := make([]byte, m)
	tb := twos.Bytes()
	copy(out[m-len(tb):], tb)
	if out[0]&0x80 == 0 {
		out = append([]byte{0xFF}, out...)
	}
	return out
}

// encodeInner returns the universal-ASN.1 TLV bytes for v's payload,
// without the outer context tag. For Array and Dict this is the
// SEQUENCE wrapping their already fully-encoded elements/entries, so
// Encode just wraps whatever encodeInner returns with the right outer
// tag — the same inner bytes also serve as the GTV-hash leaf payload for
// the seven leaf kinds.
func (v Value) encodeInner() []byte {
	switch v.kind {
	case KindNull:
		return tlv(tagUniversalNull, nil)
	case KindBoolean, KindInteger:
		return tlv(tagUniversalInteger, derInt(big.NewInt(v.i64)))
	case KindBigInteger:
		return tlv(tagUniversalInteger, derInt(v.bigint))
	case KindText, KindDecimal:
		return tlv(tagUniversalUTF8, []byte(v.text))
	case KindByteArray:
		return tlv(tagUniversalOctet, v.raw)
	case KindArray:
		var body []byte
		for _, item := range v.items {
			body = append(body, Encode(item)...)
		}
		return tlv(tagUniversalSeq, body)
	case KindDict:
		var body []byte
		for _, e := range v.dict {
			entry := append(tlv(tagUniversalUTF8, []byte(e.Key)), Encode(e.Value)...)
			body = append(body, tlv(tagUniversalSeq, entry)...)
		}
		return tlv(tagUniversalSeq, body)
	default:
		panic("gtv: encode of invalid value")
	}
}

func outerTag(k Kind) byte {
	switch k {
	case KindNull:
		return tagOuterNull
	case KindByteArray:
		return tagOuterByteArray
	case KindText, KindDecimal:
		return tagOuterText
	case KindBoolean, KindInteger:
		return tagOuterInteger
	case KindDict:
		return tagOuterDict
	case KindArray:
		return tagOuterArray
	case KindBigInteger:
		return tagOuterBigInteger
	default:
		panic("gtv: encode of invalid value")
	}
}

// Encode serializes v to its canonical DER byte string. It never fails for
// a structurally valid Value and is fully deterministic:
// Encode(v1) == Encode(v2) iff v1 == v2 modulo Dict key ordering, which
// NewDict already normalizes.
func Encode(v Value) []byte {
	return tlv(outerTag(v.kind), v.encodeInner())
}
