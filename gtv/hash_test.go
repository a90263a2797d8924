package gtv

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHash_Scenario5 hand-traces spec scenario S5: the GTV hash of an
// Array containing a single Integer(42).
func TestHash_Scenario5(t *testing.T) {
	leafPayload := Int(42).encodeInner() // universal INTEGER TLV for 42
	leafHash := sha256.Sum256(append([]byte{prefixLeaf, typeDiscriminant(KindInteger)}, leafPayload...))

	// single-element level promotes unchanged to the root.
	root := leafHash
	want := sha256.Sum256(append([]byte{prefixRoot, typeDiscriminant(KindArray)}, root[:]...))

	got := Hash(Array(Int(42)))
	assert.Equal(t, want, got)
}

func TestHash_EmptyArrayAndDict(t *testing.T) {
	wantArray := sha256.Sum256([]byte{prefixLeaf, typeDiscriminant(KindArray)})
	assert.Equal(t, wantArray, Hash(Array()))

	d := MustDict()
	wantDict := sha256.Sum256([]byte{prefixLeaf, typeDiscriminant(KindDict)})
	assert.Equal(t, wantDict, Hash(d))
}

func TestHash_DeterministicAndOrderSensitive(t *testing.T) {
	a := Array(Int(1), Int(2))
	b := Array(Int(2), Int(1))
	assert.Equal(t, Hash(a), Hash(a))
	assert.NotEqual(t, Hash(a), Hash(b))
}

func TestHash_DictKeyOrderIndependentAtConstruction(t *testing.T) {
	d1, err := NewDict(DictEntry{Key: "a", Value: Int(1)}, DictEntry{Key: "b", Value: Int(2)})
	assert.NoError(t, err)
	d2, err := NewDict(DictEntry{Key: "b", Value: Int(2)}, DictEntry{Key: "a", Value: Int(1)})
	assert.NoError(t, err)
	assert.Equal(t, Hash(d1), Hash(d2))
}

func TestHash_NullAndBigIntegerDiscriminantCollision(t *testing.T) {
	assert.Equal(t, typeDiscriminant(KindNull), typeDiscriminant(KindBigInteger))
}

func TestHash_DistinctStructuresHashDistinct(t *testing.T) {
	assert.NotEqual(t, Hash(Int(1)), Hash(Text("1")))
	assert.NotEqual(t, Hash(Array(Int(1))), Hash(Int(1)))
}
