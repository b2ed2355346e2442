package types

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// AddressSize is the length of an address in bytes.
const AddressSize = 20

// AddressPrefix marks a hex-rendered address.
const AddressPrefix = "0x"

// Address errors.
var (
	ErrInvalidAddress  = errors.New("invalid address")
	ErrAddressChecksum = errors.New("address checksum mismatch")
)

// Address is the low 20 bytes of the Keccak-256 hash of a public key.
type Address [AddressSize]byte

// IsZero returns true if the address is all zeros.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Hex returns "0x" followed by 40 lowercase hex digits. Leading zero bytes
// are kept, so the result is always 42 characters.
func (a Address) Hex() string {
	return AddressPrefix + hex.EncodeToString(a[:])
}

// String returns the mixed-case EIP-55 checksummed form.
func (a Address) String() string {
	return a.Checksum()
}

// Checksum returns the EIP-55 encoding: each hex letter is upper-cased when
// the matching nibble of Keccak-256(lowercase hex) is 8 or more.
func (a Address) Checksum() string {
	lower := []byte(hex.EncodeToString(a[:]))

	h := sha3.NewLegacyKeccak256()
	h.Write(lower)
	digest := h.Sum(nil)

	for i, c := range lower {
		if c < 'a' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			lower[i] = c - ('a' - 'A')
		}
	}
	return AddressPrefix + string(lower)
}

// Bytes returns a copy of the address as a byte slice.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressSize)
	copy(b, a[:])
	return b
}

// MarshalJSON encodes the address in checksummed form.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// ParseAddress parses a 40-digit hex address with an optional 0x prefix.
// All-lowercase and all-uppercase input is accepted as is; mixed-case input
// must carry a valid EIP-55 checksum.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	body := strip0x(s)
	if len(body) != 2*AddressSize {
		return Address{}, fmt.Errorf("%w: want %d hex digits, got %d", ErrInvalidAddress, 2*AddressSize, len(body))
	}
	b, err := hex.DecodeString(body)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	var a Address
	copy(a[:], b)

	if body != strings.ToLower(body) && body != strings.ToUpper(body) {
		if a.Checksum()[2:] != body {
			return Address{}, ErrAddressChecksum
		}
	}
	return a, nil
}

// BytesToAddress returns the address held in the last 20 bytes of b.
// Shorter input is left-padded with zeros.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressSize {
		b = b[len(b)-AddressSize:]
	}
	copy(a[AddressSize-len(b):], b)
	return a
}

// strip0x removes an optional 0x or 0X prefix.
func strip0x(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}
