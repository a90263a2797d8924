package gtv

import "crypto/sha256"

// Domain-separation prefixes for the GTV Merkle hash.
const (
	prefixLeaf = 0x01
	prefixNode = 0x00
	// prefixRoot wraps a Merkle root together with the container's type
	// discriminant: H(0x07 || type_byte || root).
	prefixRoot = 0x07
)

// typeDiscriminant is the variant's canonical 1-byte tag used in the GTV
// hash. Null and BigInteger share the value 6 and Boolean is not listed at
// all (it hashes as Integer, 3) — this is wire-observable behavior and is
// reproduced verbatim even though it looks like a collision.
func typeDiscriminant(k Kind) byte {
	switch k {
	case KindByteArray:
		return 1
	case KindText, KindDecimal:
		return 2
	case KindInteger, KindBoolean:
		return 3
	case KindDict:
		return 4
	case KindArray:
		return 5
	case KindNull, KindBigInteger:
		return 6
	default:
		panic("gtv: hash of invalid value")
	}
}

func sum(parts ...[]byte) [32]byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// merkleRoot combines leaf hashes pairwise under the node prefix until a
// single root remains. An odd trailing hash at any level is promoted
// unchanged to the next level.
func merkleRoot(level [][32]byte) [32]byte {
	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			next = append(next, sum([]byte{prefixNode}, level[i][:], level[i+1][:]))
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next
	}
	return level[0]
}

// Hash computes the GTV hash of v: a content-addressed, Merkle-structured
// hash over the value tree, not over its DER encoding. Equal trees hash
// equal; structurally distinct trees hash distinct (up to SHA-256
// collision resistance).
func Hash(v Value) [32]byte {
	switch v.kind {
	case KindArray:
		if len(v.items) == 0 {
			return sum([]byte{prefixLeaf, typeDiscriminant(KindArray)})
		}
		hashes := make([][32]byte, len(v.items))
		for i, item := range v.items {
			hashes[i] = Hash(item)
		}
		root := merkleRoot(hashes)
		return sum([]byte{prefixRoot, typeDiscriminant(KindArray)}, root[:])

	case KindDict:
		if len(v.dict) == 0 {
			return sum([]byte{prefixLeaf, typeDiscriminant(KindDict)})
		}
		hashes := make([][32]byte, len(v.dict))
		for i, e := range v.dict {
			keyLeaf := sum([]byte{prefixLeaf, typeDiscriminant(KindText)}, []byte(e.Key))
			valHash := Hash(e.Value)
			hashes[i] = sum([]byte{prefixNode}, keyLeaf[:], valHash[:])
		}
		root := merkleRoot(hashes)
		return sum([]byte{prefixRoot, typeDiscriminant(KindDict)}, root[:])

	default:
		payload := v.encodeInner()
		return sum([]byte{prefixLeaf, typeDiscriminant(v.kind)}, payload)
	}
}
