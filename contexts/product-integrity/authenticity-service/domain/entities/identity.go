package entities

import (
	"encoding/binary"
	"strings"

	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Address identifies an owner, manufacturer or verifier.
type Address = common.Address

// Fingerprint is the opaque 32-byte hash of a physical unit. The engine never
// inspects how it was built.
type Fingerprint = common.Hash

// ZeroAddress is the null identity.
var ZeroAddress = Address{}

func ParseAddress(raw string) (Address, error) {
	value := strings.TrimSpace(raw)
	if !common.IsHexAddress(value) {
		return ZeroAddress, domainerrors.ErrInvalidAddress
	}
	return common.HexToAddress(value), nil
}

func ParseFingerprint(raw string) (Fingerprint, error) {
	value := strings.TrimSpace(raw)
	decoded, err := hexutil.Decode(value)
	if err != nil || len(decoded) != common.HashLength {
		return Fingerprint{}, domainerrors.ErrInvalidFingerprint
	}
	return common.BytesToHash(decoded), nil
}

// DeriveFingerprint hashes (batch id, serial) the way registration tooling does:
// keccak256 over the 32-byte big-endian batch id followed by the raw serial.
func DeriveFingerprint(batchID uint64, serial string) Fingerprint {
	var id [32]byte
	binary.BigEndian.PutUint64(id[24:], batchID)
	return crypto.Keccak256Hash(id[:], []byte(serial))
}
