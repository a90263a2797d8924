// Package signer wraps secp256k1 key handling and ECDSA signing for
// Postchain transactions. Nonces follow RFC 6979 (deterministic,
// reproducible across repeated calls) and signatures are normalized to
// low-S form (BIP-62) before being serialized as the 64-byte raw r||s
// encoding the wire format requires — both properties come straight out of
// github.com/decred/dcrd/dcrec/secp256k1/v4's ecdsa.SignCompact, kept behind
// a small, purpose-named function surface (Sign/Verify/key parsing) rather
// than exposed directly.
package signer

import (
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/devops-vn/postchain-client-go/postchainerr"
)

// PrivateKeySize and PublicKeySize are the fixed wire sizes: a 32-byte raw
// secp256k1 scalar and a 33-byte compressed point.
const (
	PrivateKeySize = 32
	PublicKeySize  = 33
	SignatureSize  = 64
)

// ParsePrivateKey validates and parses a raw 32-byte secp256k1 private key.
func ParsePrivateKey(b []byte) (*secp256k1.PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, postchainerr.Wrap(postchainerr.ErrInvalidKey, "private key must be %d bytes, got %d", PrivateKeySize, len(b))
	}
	return secp256k1.PrivKeyFromBytes(b), nil
}

// PublicKey returns the 33-byte compressed public key for a private key.
func PublicKey(sk *secp256k1.PrivateKey) []byte {
	return sk.PubKey().SerializeCompressed()
}

// ParsePublicKey validates and parses a compressed public key.
func ParsePublicKey(b []byte) (*secp256k1.PublicKey, error) {
	if len(b) != PublicKeySize {
		return nil, postchainerr.Wrap(postchainerr.ErrInvalidKey, "public key must be %d bytes, got %d", PublicKeySize, len(b))
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, postchainerr.Wrap(postchainerr.ErrInvalidKey, "parse public key: %v", err)
	}
	return pub, nil
}

// Sign produces a 64-byte raw r||s ECDSA signature over hash: RFC 6979
// deterministic nonce, low-S normalized. Signing the same (key, hash) pair
// twice always yields identical bytes.
func Sign(sk *secp256k1.PrivateKey, hash [32]byte) ([]byte, error) {
	compact := ecdsa.SignCompact(sk, hash[:], false)
	if len(compact) != 1+SignatureSize {
		return nil, postchainerr.Wrap(postchainerr.ErrSigningBackend, "unexpected compact signature length %d", len(compact))
	}
	// compact[0] is the recovery/compression header byte; only the raw r||s
	// is kept.
	rs := make([]byte, SignatureSize)
	copy(rs, compact[1:])
	return rs, nil
}

// Verify reports whether sig (64-byte raw r||s) is a valid secp256k1
// signature over hash under pub.
func Verify(pub *secp256k1.PublicKey, hash [32]byte, sig []byte) (bool, error) {
	if len(sig) != SignatureSize {
		return false, postchainerr.Wrap(postchainerr.ErrInvalidKey, "signature must be %d bytes, got %d", SignatureSize, len(sig))
	}
	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow {
		return false, nil
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow {
		return false, nil
	}
	signature := ecdsa.NewSignature(&r, &s)
	return signature.Verify(hash[:], pub), nil
}
