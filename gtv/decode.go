package gtv

import (
	"math/big"
	"unicode/utf8"

	"github.com/devops-vn/postchain-client-go/postchainerr"
)

// record is one parsed tag-length-value.
type record struct {
	tag     byte
	content []byte
}

// readTLV parses a single TLV off the front of b, enforcing DER length
// canonicality: short form below 128, otherwise the minimal-length long
// form, no leading zero in the length-of-length bytes, no indefinite
// length.
func readTLV(b []byte) (rec record, rest []byte, err error) {
	if len(b) < 2 {
		return record{}, nil, postchainerr.ErrTruncatedLength
	}
	tag := b[0]
	b = b[1:]
	l0 := b[0]
	b = b[1:]

	var length int
	if l0&0x80 == 0 {
		length = int(l0)
	} else {
		n := int(l0 & 0x7F)
		if n == 0 {
			// indefinite length: not permitted in DER.
			return record{}, nil, postchainerr.ErrUnexpectedTag
		}
		if n > 4 || len(b) < n {
			return record{}, nil, postchainerr.ErrTruncatedLength
		}
		lenBytes := b[:n]
		b = b[n:]
		if lenBytes[0] == 0x00 {
			return record{}, nil, postchainerr.ErrNonMinimalLength
		}
		for _, x := range lenBytes {
			length = length<<8 | int(x)
		}
		if length < 0x80 {
			return record{}, nil, postchainerr.ErrNonMinimalLength
		}
	}
	if length < 0 || len(b) < length {
		return record{}, nil, postchainerr.ErrTruncatedLength
	}
	return record{tag: tag, content: b[:length]}, b[length:], nil
}

// decodeInt parses a DER INTEGER content field, rejecting non-minimal
// two's-complement encodings.
func decodeInt(content []byte) (int64bytes []byte, neg bool, err error) {
	if len(content) == 0 {
		return nil, false, postchainerr.ErrTruncatedLength
	}
	if len(content) > 1 {
		b0, b1 := content[0], content[1]
		if (b0 == 0x00 && b1&0x80 == 0) || (b0 == 0xFF && b1&0x80 != 0) {
			return nil, false, postchainerr.ErrNonMinimalInteger
		}
	}
	return content, content[0]&0x80 != 0, nil
}

// twosComplementToBig converts minimal two's-complement bytes to a signed
// big.Int.
func twosComplementToBig(content []byte, neg bool) *big.Int {
	n := new(big.Int).SetBytes(content)
	if neg {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(len(content)*8))
		n.Sub(n, mod)
	}
	return n
}

// Decode parses data as a single GTV DER value. Decoding consumes the
// entire input; any trailing bytes, non-canonical DER, or
// ordering/uniqueness violation is rejected.
func Decode(data []byte) (Value, error) {
	rec, rest, err := readTLV(data)
	if err != nil {
		return Value{}, err
	}
	if len(rest) != 0 {
		return Value{}, postchainerr.ErrTrailingBytes
	}
	return decodeValue(rec.tag, rec.content, 0)
}

func decodeValue(tag byte, content []byte, depth int) (Value, error) {
	if depth > MaxDepth {
		return Value{}, postchainerr.ErrTooDeep
	}
	switch tag {
	case tagOuterNull:
		inner, rest, err := readTLV(content)
		if err != nil {
			return Value{}, err
		}
		if len(rest) != 0 {
			return Value{}, postchainerr.ErrTrailingBytes
		}
		if inner.tag != tagUniversalNull || len(inner.content) != 0 {
			return Value{}, postchainerr.ErrUnexpectedTag
		}
		return Null(), nil

	case tagOuterByteArray:
		inner, rest, err := readTLV(content)
		if err != nil {
			return Value{}, err
		}
		if len(rest) != 0 {
			return Value{}, postchainerr.ErrTrailingBytes
		}
		if inner.tag != tagUniversalOctet {
			return Value{}, postchainerr.ErrUnexpectedTag
		}
		return Bytes(inner.content), nil

	case tagOuterText:
		inner, rest, err := readTLV(content)
		if err != nil {
			return Value{}, err
		}
		if len(rest) != 0 {
			return Value{}, postchainerr.ErrTrailingBytes
		}
		if inner.tag != tagUniversalUTF8 {
			return Value{}, postchainerr.ErrUnexpectedTag
		}
		if !utf8.Valid(inner.content) {
			return Value{}, postchainerr.ErrInvalidUTF8
		}
		return Text(string(inner.content)), nil

	case tagOuterInteger, tagOuterBigInteger:
		inner, rest, err := readTLV(content)
		if err != nil {
			return Value{}, err
		}
		if len(rest) != 0 {
			return Value{}, postchainerr.ErrTrailingBytes
		}
		if inner.tag != tagUniversalInteger {
			return Value{}, postchainerr.ErrUnexpectedTag
		}
		raw, neg, err := decodeInt(inner.content)
		if err != nil {
			return Value{}, err
		}
		n := twosComplementToBig(raw, neg)
		if tag == tagOuterBigInteger {
			return BigInt(n), nil
		}
		if !n.IsInt64() {
			return Value{}, postchainerr.ErrIntegerOverflow
		}
		return Int(n.Int64()), nil

	case tagOuterArray:
		inner, rest, err := readTLV(content)
		if err != nil {
			return Value{}, err
		}
		if len(rest) != 0 {
			return Value{}, postchainerr.ErrTrailingBytes
		}
		if inner.tag != tagUniversalSeq {
			return Value{}, postchainerr.ErrUnexpectedTag
		}
		var items []Value
		remaining := inner.content
		for len(remaining) > 0 {
			elemRec, after, err := readTLV(remaining)
			if err != nil {
				return Value{}, err
			}
			elem, err := decodeValue(elemRec.tag, elemRec.content, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, elem)
			remaining = after
		}
		return Array(items...), nil

	case tagOuterDict:
		inner, rest, err := readTLV(content)
		if err != nil {
			return Value{}, err
		}
		if len(rest) != 0 {
			return Value{}, postchainerr.ErrTrailingBytes
		}
		if inner.tag != tagUniversalSeq {
			return Value{}, postchainerr.ErrUnexpectedTag
		}
		var entries []DictEntry
		remaining := inner.content
		for len(remaining) > 0 {
			entryRec, after, err := readTLV(remaining)
			if err != nil {
				return Value{}, err
			}
			if entryRec.tag != tagUniversalSeq {
				return Value{}, postchainerr.ErrUnexpectedTag
			}
			keyRec, afterKey, err := readTLV(entryRec.content)
			if err != nil {
				return Value{}, err
			}
			if keyRec.tag != tagUniversalUTF8 {
				return Value{}, postchainerr.ErrUnexpectedTag
			}
			if !utf8.Valid(keyRec.content) {
				return Value{}, postchainerr.ErrInvalidUTF8
			}
			valRec, afterVal, err := readTLV(afterKey)
			if err != nil {
				return Value{}, err
			}
			if len(afterVal) != 0 {
				return Value{}, postchainerr.ErrTrailingBytes
			}
			val, err := decodeValue(valRec.tag, valRec.content, depth+1)
			if err != nil {
				return Value{}, err
			}
			key := string(keyRec.content)
			if len(entries) > 0 {
				switch {
				case key == entries[len(entries)-1].Key:
					return Value{}, postchainerr.ErrDuplicateDictKey
				case key < entries[len(entries)-1].Key:
					return Value{}, postchainerr.ErrUnorderedDictKeys
				}
			}
			entries = append(entries, DictEntry{Key: key, Value: val})
			remaining = after
		}
		return Value{kind: KindDict, dict: entries}, nil

	default:
		return Value{}, postchainerr.ErrUnexpectedTag
	}
}
