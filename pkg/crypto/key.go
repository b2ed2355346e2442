package crypto

import (
	"errors"
	"fmt"

	"github.com/Klingon-tech/hdaddr/internal/log"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Key sizes in bytes.
const (
	PrivateKeySize         = 32
	CompressedPubKeySize   = 33
	UncompressedPubKeySize = 65
)

// ErrInvalidPrivateKey is returned for a scalar that is zero or not below
// the secp256k1 group order.
var ErrInvalidPrivateKey = errors.New("invalid private key")

// PrivateKey wraps a secp256k1 private key.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// GenerateKey creates a new random secp256k1 private key.
func GenerateKey() (*PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromBytes creates a PrivateKey from a 32-byte big-endian scalar.
// The scalar must be in [1, n-1]; unlike secp256k1.PrivKeyFromBytes it is
// never reduced modulo n.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		log.Crypto.Debug().Str("stage", "private key").Str("reason", "length").Int("len", len(b)).Msg("Rejected key")
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidPrivateKey, PrivateKeySize, len(b))
	}
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(b); overflow {
		s.Zero()
		log.Crypto.Debug().Str("stage", "private key").Str("reason", "overflow").Msg("Rejected key")
		return nil, fmt.Errorf("%w: scalar not below curve order", ErrInvalidPrivateKey)
	}
	if s.IsZero() {
		log.Crypto.Debug().Str("stage", "private key").Str("reason", "zero").Msg("Rejected key")
		return nil, fmt.Errorf("%w: scalar is zero", ErrInvalidPrivateKey)
	}
	key := secp256k1.NewPrivateKey(&s)
	s.Zero()
	return &PrivateKey{key: key}, nil
}

// PublicKey returns the compressed 33-byte public key.
func (pk *PrivateKey) PublicKey() []byte {
	return pk.key.PubKey().SerializeCompressed()
}

// PublicKeyUncompressed returns the 65-byte public point 0x04 || X || Y.
func (pk *PrivateKey) PublicKeyUncompressed() []byte {
	return pk.key.PubKey().SerializeUncompressed()
}

// Serialize returns the 32-byte private key scalar.
func (pk *PrivateKey) Serialize() []byte {
	return pk.key.Serialize()
}

// Zero securely zeroes the private key memory.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
}

// DecompressPubKey converts a 33-byte compressed public key into the 65-byte
// uncompressed form.
func DecompressPubKey(pub []byte) ([]byte, error) {
	if len(pub) != CompressedPubKeySize {
		return nil, fmt.Errorf("%w: want %d-byte compressed key, got %d bytes",
			ErrInvalidPublicKey, CompressedPubKeySize, len(pub))
	}
	pk, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return pk.SerializeUncompressed(), nil
}
