package transaction

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/devops-vn/postchain-client-go/postchainerr"
)

// RIDSize is the fixed size of a blockchain RID: opaque to this library,
// always 32 bytes.
const RIDSize = 32

// BlockchainRID is the 32-byte identifier of a Chromia blockchain instance.
// It is opaque data to this library (derived externally), but fixed-size,
// so it gets the same small value-type treatment as any other fixed-size
// hash: hex parse/format plus raw-bytes access.
type BlockchainRID [RIDSize]byte

// ParseBlockchainRID parses a hex string (with or without "0x") into a
// BlockchainRID.
func ParseBlockchainRID(s string) (BlockchainRID, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return BlockchainRID{}, postchainerr.Wrap(postchainerr.ErrInvalidKey, "blockchain rid hex: %v", err)
	}
	if len(b) != RIDSize {
		return BlockchainRID{}, postchainerr.Wrap(postchainerr.ErrInvalidKey, "blockchain rid must be %d bytes, got %d", RIDSize, len(b))
	}
	var rid BlockchainRID
	copy(rid[:], b)
	return rid, nil
}

// BlockchainRIDFromBytes copies b into a BlockchainRID.
func BlockchainRIDFromBytes(b []byte) (BlockchainRID, error) {
	if len(b) != RIDSize {
		return BlockchainRID{}, postchainerr.Wrap(postchainerr.ErrInvalidKey, "blockchain rid must be %d bytes, got %d", RIDSize, len(b))
	}
	var rid BlockchainRID
	copy(rid[:], b)
	return rid, nil
}

// Bytes returns a copy of the raw 32 bytes.
func (r BlockchainRID) Bytes() []byte {
	return append([]byte(nil), r[:]...)
}

// String renders the RID as lowercase hex, without a "0x" prefix, the
// convention used across the Postchain tooling.
func (r BlockchainRID) String() string {
	return common.Bytes2Hex(r[:])
}
