package wallet

import (
	"fmt"

	"github.com/Klingon-tech/hdaddr/internal/log"
	"github.com/Klingon-tech/hdaddr/pkg/crypto"
	"github.com/Klingon-tech/hdaddr/pkg/types"
)

// Result is the public output of one pipeline run.
type Result struct {
	Mnemonic string
	Entropy  []byte
	Path     Path
	Address  types.Address
}

// Wipe zeroes the entropy held by r and clears the phrase reference.
func (r *Result) Wipe() {
	zeroBytes(r.Entropy)
	r.Mnemonic = ""
}

// DeriveAddress runs the whole pipeline: fresh entropy of entropyBits,
// mnemonic, seed, HD walk along path, signing key, address.
func DeriveAddress(entropyBits int, path, passphrase string) (*Result, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	mnemonic, err := GenerateMnemonic(entropyBits)
	if err != nil {
		return nil, err
	}
	return deriveResult(mnemonic, p, passphrase)
}

// RestoreAddress runs the pipeline for an existing mnemonic.
func RestoreAddress(mnemonic, path, passphrase string) (*Result, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return deriveResult(NormalizeMnemonic(mnemonic), p, passphrase)
}

// DeriveAddressFromMnemonic returns only the address for mnemonic at path.
func DeriveAddressFromMnemonic(mnemonic, path, passphrase string) (types.Address, error) {
	res, err := RestoreAddress(mnemonic, path, passphrase)
	if err != nil {
		return types.Address{}, err
	}
	res.Wipe()
	return res.Address, nil
}

func deriveResult(mnemonic string, path Path, passphrase string) (*Result, error) {
	ent, err := EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	addr, err := AddressFromSeedPhrase(mnemonic, path, passphrase)
	if err != nil {
		zeroBytes(ent)
		return nil, err
	}
	return &Result{
		Mnemonic: mnemonic,
		Entropy:  ent,
		Path:     path,
		Address:  addr,
	}, nil
}

// AddressFromSeedPhrase stretches mnemonic into a seed, walks path and
// hashes the terminal public key. Seed and every private scalar are zeroed
// before it returns.
func AddressFromSeedPhrase(mnemonic string, path Path, passphrase string) (types.Address, error) {
	defer log.Benchmark("derive_address")()

	seed, err := SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return types.Address{}, err
	}

	var addr types.Address
	err = withSecret(seed, func(seed []byte) error {
		a, err := AddressFromSeed(seed, path)
		addr = a
		return err
	})
	return addr, err
}

// AddressFromSeed derives the address at path from a raw BIP-32 seed.
func AddressFromSeed(seed []byte, path Path) (types.Address, error) {
	master, err := NewMasterKey(seed)
	if err != nil {
		return types.Address{}, err
	}
	defer master.Zero()

	node, err := master.DerivePath(path)
	if err != nil {
		return types.Address{}, fmt.Errorf("derive %s: %w", path, err)
	}
	if node != master {
		defer node.Zero()
	}

	fp := node.ParentFingerprint()
	log.Wallet.Debug().
		Str("path", path.String()).
		Uint8("depth", node.Depth()).
		Uint32("child", node.ChildNumber()).
		Hex("parent_fp", fp[:]).
		Msg("Derived terminal key")

	signer, err := node.Signer()
	if err != nil {
		return types.Address{}, fmt.Errorf("signing key: %w", err)
	}
	defer signer.Zero()

	return crypto.AddressFromPubKey(signer.PublicKeyUncompressed())
}
