// Package transaction assembles and signs Postchain transactions: a
// deterministic body of (blockchain RID, operations, signer public keys),
// a transaction RID equal to the GTV hash of that body, and one or more
// secp256k1 signatures over the RID, positionally aligned with the signer
// list.
package transaction

import (
	"bytes"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/devops-vn/postchain-client-go/gtv"
	"github.com/devops-vn/postchain-client-go/postchainerr"
	"github.com/devops-vn/postchain-client-go/signer"
)

// Operation is a named, positional-or-keyword argument call. Args is
// always encoded as a GTV Array; a single-element Array whose sole element
// is a Dict is the receiver-side convention for named arguments — the
// codec does not distinguish the two shapes.
type Operation struct {
	Name string
	Args []gtv.Value
}

// ToGTV renders the operation as its wire shape: [name, args].
func (op Operation) ToGTV() gtv.Value {
	return gtv.Array(gtv.Text(op.Name), gtv.Array(op.Args...))
}

// NewOperation is a small convenience constructor for building one
// operation from positional fields.
func NewOperation(name string, args ...gtv.Value) Operation {
	return Operation{Name: name, Args: args}
}

// Body is the signable portion of a transaction:
// (blockchain_rid, operations, signers).
type Body struct {
	BlockchainRID BlockchainRID
	Operations    []Operation
	Signers       [][]byte // compressed secp256k1 public keys, 33 bytes each
}

// ToGTV renders the body as [blockchain_rid, operations_array, signers_array].
func (b Body) ToGTV() gtv.Value {
	ops := make([]gtv.Value, len(b.Operations))
	for i, op := range b.Operations {
		ops[i] = op.ToGTV()
	}
	signers := make([]gtv.Value, len(b.Signers))
	for i, s := range b.Signers {
		signers[i] = gtv.Bytes(s)
	}
	return gtv.Array(gtv.Bytes(b.BlockchainRID.Bytes()), gtv.Array(ops...), gtv.Array(signers...))
}

// RID is the GTV hash of the body alone, independent of the transaction's
// current signature state.
func (b Body) RID() [32]byte {
	return gtv.Hash(b.ToGTV())
}

// Transaction is the mutable, single-owner assembly of a body plus its
// in-progress signatures. Callers wanting concurrent use must clone before
// mutating — Transaction carries no internal synchronization.
type Transaction struct {
	body       Body
	signatures [][]byte // nil entries mean "not yet signed"; aligned with body.Signers

	signersFixed bool // true when constructed via NewWithSigners
	finalized    bool
}

// New starts an unsigned transaction with a dynamic signer list: signers
// are appended automatically as keys sign.
func New(blockchainRID BlockchainRID, operations []Operation) *Transaction {
	return &Transaction{
		body: Body{
			BlockchainRID: blockchainRID,
			Operations:    append([]Operation(nil), operations...),
		},
	}
}

// NewWithSigners starts a transaction whose signer order is fixed upfront.
// Signing with a key whose derived public key is not already present in
// signers fails with SignerMismatch instead of silently appending.
// signatures may be nil (unsigned) or pre-populated (e.g. reconstructing a
// partially-signed transaction received over the wire); if provided it
// must have the same length as signers.
func NewWithSigners(blockchainRID BlockchainRID, operations []Operation, signers [][]byte, signatures [][]byte) (*Transaction, error) {
	if signatures != nil && len(signatures) != len(signers) {
		return nil, postchainerr.Wrap(postchainerr.ErrInvalidKey, "signatures length %d does not match signers length %d", len(signatures), len(signers))
	}
	tx := &Transaction{
		body: Body{
			BlockchainRID: blockchainRID,
			Operations:    append([]Operation(nil), operations...),
			Signers:       append([][]byte(nil), signers...),
		},
		signersFixed: true,
	}
	tx.signatures = make([][]byte, len(signers))
	for i := range tx.signatures {
		if signatures != nil && signatures[i] != nil {
			tx.signatures[i] = append([]byte(nil), signatures[i]...)
		}
	}
	tx.finalized = tx.allSigned()
	return tx, nil
}

// RID returns the current transaction RID: the GTV hash of the body as it
// stands right now. Because the body includes the signer list, appending a
// signer changes the RID — which is why the RID must be recomputed after
// the signer list is updated, and why adding a signer after earlier
// signatures exist invalidates them.
func (tx *Transaction) RID() [32]byte {
	return tx.body.RID()
}

// allSigned reports whether there is at least one signer slot and every
// slot has a signature.
func (tx *Transaction) allSigned() bool {
	if len(tx.signatures) == 0 {
		return false
	}
	for _, s := range tx.signatures {
		if s == nil {
			return false
		}
	}
	return true
}

// Sign signs the current transaction RID with sk and records the signature
// at sk's signer position. In dynamic mode (New), a new signer is appended
// if sk's public key is not already present. In fixed mode
// (NewWithSigners), sk's public key must already be one of the declared
// signers, or this fails with SignerMismatch.
//
// Determinism (RFC 6979) makes this naturally idempotent for a key that
// signs twice against an unchanged body while the transaction is not yet
// finalized: the recomputed RID and signature are byte-identical both
// times. Once every slot is signed, further calls fail with
// ErrAlreadyFinalized; in dynamic mode that happens after the first Sign,
// so several keys sign together through MultiSign.
func (tx *Transaction) Sign(sk *secp256k1.PrivateKey) error {
	if tx.finalized {
		return postchainerr.ErrAlreadyFinalized
	}
	pub := signer.PublicKey(sk)

	idx := indexOfSigner(tx.body.Signers, pub)
	if idx == -1 {
		if tx.signersFixed {
			return postchainerr.Wrap(postchainerr.ErrSignerMismatch, "public key %x is not a declared signer", pub)
		}
		tx.body.Signers = append(tx.body.Signers, pub)
		tx.signatures = append(tx.signatures, nil)
		idx = len(tx.body.Signers) - 1
	}

	rid := tx.RID()
	sig, err := signer.Sign(sk, rid)
	if err != nil {
		return postchainerr.Wrap(postchainerr.ErrSigningBackend, "sign tx %x: %v", rid, err)
	}
	tx.signatures[idx] = sig
	tx.finalized = tx.allSigned()
	return nil
}

// MultiSign applies Sign once per key, in the given order. In dynamic mode
// every key's public key not yet present is appended to the signer list
// first, so all signatures commit to the same, complete signer list.
func (tx *Transaction) MultiSign(keys ...*secp256k1.PrivateKey) error {
	if tx.finalized {
		return postchainerr.ErrAlreadyFinalized
	}
	if !tx.signersFixed {
		for _, sk := range keys {
			pub := signer.PublicKey(sk)
			if indexOfSigner(tx.body.Signers, pub) == -1 {
				tx.body.Signers = append(tx.body.Signers, pub)
				tx.signatures = append(tx.signatures, nil)
			}
		}
	}
	for _, sk := range keys {
		if err := tx.Sign(sk); err != nil {
			return err
		}
	}
	return nil
}

// Signers returns a copy of the current signer list.
func (tx *Transaction) Signers() [][]byte {
	return copySlices(tx.body.Signers)
}

// Signatures returns a copy of the current signature list, positionally
// aligned with Signers(); unsigned slots are nil.
func (tx *Transaction) Signatures() [][]byte {
	return copySlices(tx.signatures)
}

// Finalized reports whether every signer slot has a signature; once true,
// the transaction is frozen and further Sign calls are rejected.
func (tx *Transaction) Finalized() bool {
	return tx.finalized
}

// ToBytes encodes the fully-signed wire transaction:
// encode(GTV.Array([body, GTV.Array(signatures)])). It fails with
// ErrIncompleteTx if there are no signers or any signer slot is still
// unsigned, since a partial transaction has no defined wire form.
func (tx *Transaction) ToBytes() ([]byte, error) {
	if !tx.allSigned() {
		return nil, postchainerr.ErrIncompleteTx
	}
	sigValues := make([]gtv.Value, len(tx.signatures))
	for i, s := range tx.signatures {
		sigValues[i] = gtv.Bytes(s)
	}
	wire := gtv.Array(tx.body.ToGTV(), gtv.Array(sigValues...))
	return gtv.Encode(wire), nil
}

func indexOfSigner(signers [][]byte, pub []byte) int {
	for i, s := range signers {
		if bytes.Equal(s, pub) {
			return i
		}
	}
	return -1
}

func copySlices(in [][]byte) [][]byte {
	out := make([][]byte, len(in))
	for i, s := range in {
		out[i] = append([]byte(nil), s...)
	}
	return out
}
