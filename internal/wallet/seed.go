package wallet

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"
)

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

// SeedFromMnemonic derives a 512-bit seed from a mnemonic and optional passphrase
// using PBKDF2-HMAC-SHA512 with 2048 rounds and salt "mnemonic"+passphrase,
// as specified in BIP-39.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	ent, err := EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("derive seed: %w", err)
	}
	zeroBytes(ent)
	return bip39.NewSeed(NormalizeMnemonic(mnemonic), norm.NFKD.String(passphrase)), nil
}
