package signer

import (
	"bytes"
	"testing"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	b := make([]byte, PrivateKeySize)
	for i := range b {
		b[i] = byte(i + 1)
	}
	return b
}

func TestParsePrivateKey_RejectsWrongLength(t *testing.T) {
	_, err := ParsePrivateKey([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestSign_DeterministicAndLowS(t *testing.T) {
	sk, err := ParsePrivateKey(testKey(t))
	require.NoError(t, err)

	var hash [32]byte
	copy(hash[:], []byte("01234567890123456789012345678901"))

	sig1, err := Sign(sk, hash)
	require.NoError(t, err)
	sig2, err := Sign(sk, hash)
	require.NoError(t, err)

	assert.Equal(t, SignatureSize, len(sig1))
	assert.True(t, bytes.Equal(sig1, sig2), "RFC 6979 signing must be deterministic")

	var s secp256k1.ModNScalar
	s.SetByteSlice(sig1[32:])
	assert.False(t, s.IsOverHalfOrder(), "S must be in low-S form")
}

func TestSignVerify_RoundTrip(t *testing.T) {
	sk, err := ParsePrivateKey(testKey(t))
	require.NoError(t, err)
	pub, err := ParsePublicKey(PublicKey(sk))
	require.NoError(t, err)

	var hash [32]byte
	copy(hash[:], []byte("the quick brown fox jumps over!"))

	sig, err := Sign(sk, hash)
	require.NoError(t, err)

	ok, err := Verify(pub, hash, sig)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_RejectsWrongHash(t *testing.T) {
	sk, err := ParsePrivateKey(testKey(t))
	require.NoError(t, err)
	pub, err := ParsePublicKey(PublicKey(sk))
	require.NoError(t, err)

	var hash, other [32]byte
	copy(hash[:], []byte("the quick brown fox jumps over!"))
	copy(other[:], []byte("a completely different message!"))

	sig, err := Sign(sk, hash)
	require.NoError(t, err)

	ok, err := Verify(pub, other, sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPublicKey_IsCompressed33Bytes(t *testing.T) {
	sk, err := ParsePrivateKey(testKey(t))
	require.NoError(t, err)
	pub := PublicKey(sk)
	assert.Len(t, pub, PublicKeySize)
	assert.True(t, pub[0] == 0x02 || pub[0] == 0x03)
}
