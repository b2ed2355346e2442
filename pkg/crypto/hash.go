// Package crypto provides the hashing and elliptic-curve primitives used to
// turn a derived private key into an account address.
package crypto

import (
	"errors"
	"fmt"

	"github.com/Klingon-tech/hdaddr/pkg/types"
	"golang.org/x/crypto/sha3"
)

// ErrInvalidPublicKey is returned when a public key has the wrong encoding.
var ErrInvalidPublicKey = errors.New("invalid public key")

// Keccak256 computes the legacy Keccak-256 hash (not NIST SHA3-256) of the
// concatenated inputs.
func Keccak256(data ...[]byte) types.Hash {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	var out types.Hash
	h.Sum(out[:0])
	return out
}

// AddressFromPubKey derives an address from an uncompressed public key.
// Address = Keccak256(X || Y)[12:].
//
// Accepts the 65-byte SEC1 form (0x04 || X || Y) or the bare 64-byte X || Y.
func AddressFromPubKey(pubKey []byte) (types.Address, error) {
	switch {
	case len(pubKey) == UncompressedPubKeySize && pubKey[0] == 0x04:
		pubKey = pubKey[1:]
	case len(pubKey) == UncompressedPubKeySize-1:
	default:
		return types.Address{}, fmt.Errorf("%w: want %d-byte uncompressed key, got %d bytes",
			ErrInvalidPublicKey, UncompressedPubKeySize, len(pubKey))
	}
	h := Keccak256(pubKey)
	return types.BytesToAddress(h.Bytes()), nil
}
