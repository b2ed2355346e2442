package wallet

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Klingon-tech/hdaddr/internal/log"
	"github.com/Klingon-tech/hdaddr/pkg/crypto"
	"github.com/Klingon-tech/hdaddr/pkg/types"
	"github.com/tyler-smith/go-bip32"
)

// MinSeedSize is the shortest seed BIP-32 accepts (128 bits).
const MinSeedSize = 16

// maxChildRetries bounds how many times a segment is bumped to index+1
// after an invalid child key.
const maxChildRetries = 8

// HD derivation errors.
var (
	ErrInvalidChildKey    = errors.New("invalid child key")
	ErrHardenedFromPublic = errors.New("cannot derive hardened child from public key")
)

// newChildKey is swapped in tests to force invalid-child retries.
var newChildKey = func(parent *bip32.Key, child uint32) (*bip32.Key, error) {
	return parent.NewChildKey(child)
}

// HDKey represents a hierarchical deterministic key (BIP-32).
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey creates a master HD key from a seed:
// I = HMAC-SHA512(key="Bitcoin seed", seed), IL is the key and IR the chain code.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) < MinSeedSize || len(seed) > SeedSize {
		return nil, fmt.Errorf("seed must be %d to %d bytes, got %d", MinSeedSize, SeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		if errors.Is(err, bip32.ErrInvalidPrivateKey) {
			return nil, fmt.Errorf("create master key: %w", ErrInvalidChildKey)
		}
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &HDKey{key: master}, nil
}

// DeriveChild derives the child for one path segment.
//
// Hardened: HMAC-SHA512(chain, 0x00 || priv || index+2^31).
// Normal:   HMAC-SHA512(chain, compressed_pub || index).
func (k *HDKey) DeriveChild(seg Segment) (*HDKey, error) {
	switch seg.Kind {
	case Hardened:
		if !k.key.IsPrivate {
			return nil, fmt.Errorf("derive child %s: %w", seg, ErrHardenedFromPublic)
		}
	case Normal:
	default:
		return nil, fmt.Errorf("derive child: unknown segment kind %s", seg.Kind)
	}

	child, err := newChildKey(k.key, seg.Child())
	if err != nil {
		if errors.Is(err, bip32.ErrInvalidPrivateKey) || errors.Is(err, bip32.ErrInvalidPublicKey) {
			return nil, fmt.Errorf("derive child %s: %w", seg, ErrInvalidChildKey)
		}
		return nil, fmt.Errorf("derive child %s: %w", seg, err)
	}
	return &HDKey{key: child}, nil
}

// DerivePath walks path from k and returns the terminal node. Intermediate
// nodes are zeroed as soon as their child exists; k itself is left intact.
func (k *HDKey) DerivePath(path Path) (*HDKey, error) {
	current := k
	for _, seg := range path {
		child, err := current.deriveWithRetry(seg)
		if current != k {
			current.Zero()
		}
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// deriveWithRetry skips an invalid child by moving on to the next index of
// the same kind. bip32 reports a child as invalid when IL+kpar reduces to
// zero mod n or the public point is unusable; it does not reject IL >= n
// on its own.
func (k *HDKey) deriveWithRetry(seg Segment) (*HDKey, error) {
	for attempt := 0; ; attempt++ {
		child, err := k.DeriveChild(seg)
		if err == nil || !errors.Is(err, ErrInvalidChildKey) {
			return child, err
		}
		if attempt == maxChildRetries || seg.Index == maxSegmentIndex {
			return nil, err
		}
		log.Wallet.Warn().
			Str("segment", seg.String()).
			Uint8("depth", k.Depth()+1).
			Msg("Invalid child key, retrying with next index")
		seg.Index++
	}
}

// DeriveAddress derives the key at m/44'/60'/account'/change/index.
func (k *HDKey) DeriveAddress(account, change, index uint32) (*HDKey, error) {
	return k.DerivePath(BIP44Path(CoinTypeEther, account, change, index))
}

// PrivateKeyBytes returns the raw 32-byte private key.
// Returns nil if this is a public-only key.
func (k *HDKey) PrivateKeyBytes() []byte {
	if !k.key.IsPrivate {
		return nil
	}
	// bip32 may carry a leading 0x00 pad byte on private keys.
	raw := k.key.Key
	if len(raw) == 33 && raw[0] == 0 {
		return raw[1:]
	}
	return raw
}

// PublicKeyBytes returns the compressed 33-byte public key.
func (k *HDKey) PublicKeyBytes() []byte {
	pub := k.key.PublicKey()
	return pub.Key
}

// PublicKeyUncompressed returns the 65-byte public point 0x04 || X || Y.
func (k *HDKey) PublicKeyUncompressed() ([]byte, error) {
	return crypto.DecompressPubKey(k.PublicKeyBytes())
}

// ChainCode returns a copy of the 32-byte chain code.
func (k *HDKey) ChainCode() []byte {
	cc := make([]byte, len(k.key.ChainCode))
	copy(cc, k.key.ChainCode)
	return cc
}

// Signer returns a signing key from this HD key's private key.
// Returns error if this is a public-only key.
func (k *HDKey) Signer() (*crypto.PrivateKey, error) {
	priv := k.PrivateKeyBytes()
	if priv == nil {
		return nil, fmt.Errorf("cannot create signer from public key")
	}
	return crypto.PrivateKeyFromBytes(priv)
}

// Address derives the account address from this key's public key.
// Address = Keccak256(X || Y)[12:].
func (k *HDKey) Address() (types.Address, error) {
	pub, err := k.PublicKeyUncompressed()
	if err != nil {
		return types.Address{}, err
	}
	return crypto.AddressFromPubKey(pub)
}

// IsPrivate returns true if this key contains a private key.
func (k *HDKey) IsPrivate() bool {
	return k.key.IsPrivate
}

// Depth returns the derivation depth (0 for master).
func (k *HDKey) Depth() uint8 {
	return k.key.Depth
}

// ChildNumber returns the BIP-32 child number, hardened offset included.
func (k *HDKey) ChildNumber() uint32 {
	if len(k.key.ChildNumber) != 4 {
		return 0
	}
	return binary.BigEndian.Uint32(k.key.ChildNumber)
}

// ParentFingerprint returns the first 4 bytes of HASH160 of the parent
// public key (zero for master).
func (k *HDKey) ParentFingerprint() [4]byte {
	var fp [4]byte
	copy(fp[:], k.key.FingerPrint)
	return fp
}

// Neuter returns a public-key-only copy (for watch-only wallets). The copy
// owns its chain code, so zeroing k leaves it usable.
func (k *HDKey) Neuter() *HDKey {
	pub := k.key.PublicKey()
	pub.Key = cloneBytes(pub.Key)
	pub.ChainCode = cloneBytes(pub.ChainCode)
	pub.ChildNumber = cloneBytes(pub.ChildNumber)
	pub.FingerPrint = cloneBytes(pub.FingerPrint)
	return &HDKey{key: pub}
}

// String returns the base58 xprv / xpub serialization.
func (k *HDKey) String() string {
	return k.key.String()
}

// Zero overwrites the key material and chain code. The key is unusable
// afterwards.
func (k *HDKey) Zero() {
	if k == nil || k.key == nil {
		return
	}
	zeroBytes(k.key.Key)
	zeroBytes(k.key.ChainCode)
}
