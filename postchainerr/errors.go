// Package postchainerr defines the closed set of error kinds the core can
// return: GTV codec violations, key/signature failures, and
// construction-time invariant violations. Every kind is a sentinel error
// so callers can branch with errors.Is; Wrap keeps the sentinel matchable
// while attaching positional/diagnostic context, layering
// github.com/pkg/errors over a fixed vocabulary of causes.
package postchainerr

import "github.com/pkg/errors"

// Codec errors.
var (
	ErrUnexpectedTag       = errors.New("gtv: unexpected outer tag")
	ErrTruncatedLength     = errors.New("gtv: truncated length or content")
	ErrNonMinimalLength    = errors.New("gtv: non-minimal DER length encoding")
	ErrNonMinimalInteger   = errors.New("gtv: non-minimal DER integer encoding")
	ErrDuplicateDictKey    = errors.New("gtv: duplicate dict key")
	ErrUnorderedDictKeys   = errors.New("gtv: dict keys not in ascending order")
	ErrInvalidUTF8         = errors.New("gtv: invalid utf-8 content")
	ErrTrailingBytes       = errors.New("gtv: trailing bytes after decode")
	ErrTooDeep             = errors.New("gtv: value tree exceeds max recursion depth")
	ErrIntegerOverflow     = errors.New("gtv: integer does not fit in signed 64 bits")
	ErrInvalidDecimal      = errors.New("gtv: invalid decimal textual form")
	ErrIncompleteSignature = errors.New("gtv: byte array / signature slot is unset")
)

// Key/signature errors.
var (
	ErrInvalidKey       = errors.New("transaction: invalid key material")
	ErrSignerMismatch   = errors.New("transaction: derived public key mismatches signer slot")
	ErrAlreadyFinalized = errors.New("transaction: transaction already finalized")
	ErrSigningBackend   = errors.New("transaction: signing backend error")
	ErrIncompleteTx     = errors.New("transaction: not all signer slots are signed")
)

// Wrap attaches context to a sentinel error without losing errors.Is
// matchability against sentinel.
func Wrap(sentinel error, format string, args ...interface{}) error {
	return errors.Wrapf(sentinel, format, args...)
}
