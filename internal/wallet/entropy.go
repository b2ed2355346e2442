package wallet

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// Entropy errors.
var (
	ErrEntropyUnavailable = errors.New("entropy source unavailable")
	ErrEntropyLength      = errors.New("entropy length must be 128, 160, 192, 224 or 256 bits")
)

// EntropySource supplies cryptographically secure random bytes.
type EntropySource = io.Reader

// entropy is the process-wide randomness source. There is no fallback: if it
// fails, generation fails.
var entropy EntropySource = rand.Reader

// SetEntropySource replaces the randomness source and returns a func that
// restores the previous one. Intended for tests.
func SetEntropySource(src EntropySource) (restore func()) {
	prev := entropy
	entropy = src
	return func() { entropy = prev }
}

// ValidEntropyBits reports whether bits is a BIP-39 entropy size.
func ValidEntropyBits(bits int) bool {
	return bits >= 128 && bits <= 256 && bits%32 == 0
}

// NewEntropy reads bits/8 random bytes from the entropy source.
func NewEntropy(bits int) ([]byte, error) {
	if !ValidEntropyBits(bits) {
		return nil, fmt.Errorf("%w: got %d", ErrEntropyLength, bits)
	}
	buf := make([]byte, bits/8)
	if _, err := io.ReadFull(entropy, buf); err != nil {
		zeroBytes(buf)
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return buf, nil
}
