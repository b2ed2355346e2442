// Package types defines the primitive value types shared by the derivation
// pipeline.
package types

import (
	"encoding/hex"
)

// HashSize is the length of a hash in bytes.
const HashSize = 32

// Hash represents a 256-bit hash value.
type Hash [HashSize]byte

// IsZero returns true if the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String returns the hex-encoded hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Bytes returns a copy of the hash as a byte slice.
func (h Hash) Bytes() []byte {
	b := make([]byte, HashSize)
	copy(b, h[:])
	return b
}
