// Package wallet implements the BIP-39 / BIP-32 half of the address
// derivation pipeline: entropy, mnemonic phrases, seeds and HD keys.
package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Klingon-tech/hdaddr/internal/log"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"
)

// DefaultEntropyBits is the entropy size for 12-word mnemonics.
const DefaultEntropyBits = 128

// Mnemonic errors.
var (
	ErrInvalidWord      = errors.New("invalid mnemonic word")
	ErrInvalidWordCount = errors.New("mnemonic must have 12, 15, 18, 21 or 24 words")
	ErrInvalidChecksum  = errors.New("invalid mnemonic checksum")
)

// WordsForBits returns the mnemonic length for an entropy size.
func WordsForBits(bits int) int {
	return (bits + bits/32) / 11
}

// BitsForWords returns the entropy size for a mnemonic length, or 0 if
// words is not a valid length.
func BitsForWords(words int) int {
	bits := words * 11 * 32 / 33
	if words%3 != 0 || !ValidEntropyBits(bits) {
		return 0
	}
	return bits
}

// GenerateMnemonic creates a new BIP-39 mnemonic over fresh entropy of the
// given size.
func GenerateMnemonic(bits int) (string, error) {
	ent, err := NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	defer zeroBytes(ent)

	log.Wallet.Debug().
		Int("bits", bits).
		Int("words", WordsForBits(bits)).
		Msg("Generating mnemonic")
	return MnemonicFromEntropy(ent)
}

// MnemonicFromEntropy encodes entropy || checksum as 11-bit word indices.
func MnemonicFromEntropy(ent []byte) (string, error) {
	if !ValidEntropyBits(len(ent) * 8) {
		return "", fmt.Errorf("%w: got %d", ErrEntropyLength, len(ent)*8)
	}
	mnemonic, err := bip39.NewMnemonic(ent)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// NormalizeMnemonic applies NFKD, lower-cases the phrase and collapses
// whitespace to single spaces.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(norm.NFKD.String(mnemonic))), " ")
}

// EntropyFromMnemonic decodes a mnemonic back to its entropy, verifying
// every word and the checksum.
func EntropyFromMnemonic(mnemonic string) ([]byte, error) {
	words := strings.Fields(NormalizeMnemonic(mnemonic))
	if BitsForWords(len(words)) == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWordCount, len(words))
	}
	for i, w := range words {
		if _, ok := bip39.GetWordIndex(w); !ok {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidWord, w, i+1)
		}
	}

	ent, err := bip39.EntropyFromMnemonic(strings.Join(words, " "))
	if err != nil {
		if errors.Is(err, bip39.ErrChecksumIncorrect) {
			return nil, ErrInvalidChecksum
		}
		return nil, fmt.Errorf("decode mnemonic: %w", err)
	}
	return ent, nil
}

// ValidateMnemonic checks if a mnemonic is valid per BIP-39
// (correct word count, valid words, valid checksum).
func ValidateMnemonic(mnemonic string) bool {
	ent, err := EntropyFromMnemonic(mnemonic)
	if err != nil {
		return false
	}
	zeroBytes(ent)
	return true
}
