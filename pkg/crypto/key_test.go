package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/Klingon-tech/hdaddr/internal/log"
	"github.com/rs/zerolog"
)

// secp256k1 group order n.
const curveOrderHex = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex: %v", err)
	}
	return b
}

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	if len(key.PublicKey()) != CompressedPubKeySize {
		t.Errorf("PublicKey() length = %d, want %d", len(key.PublicKey()), CompressedPubKeySize)
	}
	if len(key.Serialize()) != PrivateKeySize {
		t.Errorf("Serialize() length = %d, want %d", len(key.Serialize()), PrivateKeySize)
	}
}

func TestGenerateKey_Unique(t *testing.T) {
	k1, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	k2, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	if bytes.Equal(k1.Serialize(), k2.Serialize()) {
		t.Error("two generated keys should not be identical")
	}
}

func TestPrivateKeyFromBytes(t *testing.T) {
	original, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	restored, err := PrivateKeyFromBytes(original.Serialize())
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}

	if !bytes.Equal(original.PublicKey(), restored.PublicKey()) {
		t.Error("restored key should have same public key")
	}
	if !bytes.Equal(original.PublicKeyUncompressed(), restored.PublicKeyUncompressed()) {
		t.Error("restored key should have same uncompressed public key")
	}
}

func TestPrivateKeyFromBytes_Invalid(t *testing.T) {
	order := mustHex(t, curveOrderHex)
	orderPlusOne := mustHex(t, curveOrderHex)
	orderPlusOne[31]++

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"too short", make([]byte, 16)},
		{"too long", make([]byte, 64)},
		{"all zero", make([]byte, 32)},
		{"curve order", order},
		{"above curve order", orderPlusOne},
		{"all ff", bytes.Repeat([]byte{0xff}, 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PrivateKeyFromBytes(tt.data)
			if !errors.Is(err, ErrInvalidPrivateKey) {
				t.Errorf("PrivateKeyFromBytes() error = %v, want ErrInvalidPrivateKey", err)
			}
		})
	}
}

func TestPrivateKeyFromBytes_LogsRejection(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Crypto
	log.Crypto = zerolog.New(&buf).Level(zerolog.DebugLevel)
	defer func() { log.Crypto = orig }()

	order := mustHex(t, curveOrderHex)
	tests := []struct {
		name   string
		data   []byte
		reason string
	}{
		{"length", make([]byte, 31), `"reason":"length"`},
		{"overflow", order, `"reason":"overflow"`},
		{"zero", make([]byte, 32), `"reason":"zero"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			if _, err := PrivateKeyFromBytes(tt.data); err == nil {
				t.Fatal("PrivateKeyFromBytes() should fail")
			}
			out := buf.String()
			if !strings.Contains(out, tt.reason) || !strings.Contains(out, `"stage":"private key"`) {
				t.Errorf("log = %q, want stage and %s", out, tt.reason)
			}
			if strings.Contains(out, curveOrderHex) {
				t.Errorf("log leaks key material: %q", out)
			}
		})
	}
}

func TestPrivateKeyFromBytes_Boundaries(t *testing.T) {
	one := make([]byte, 32)
	one[31] = 1
	orderMinusOne := mustHex(t, curveOrderHex)
	orderMinusOne[31]--

	for name, b := range map[string][]byte{"one": one, "order minus one": orderMinusOne} {
		t.Run(name, func(t *testing.T) {
			key, err := PrivateKeyFromBytes(b)
			if err != nil {
				t.Fatalf("PrivateKeyFromBytes() error: %v", err)
			}
			if !bytes.Equal(key.Serialize(), b) {
				t.Errorf("Serialize() = %x, want %x", key.Serialize(), b)
			}
		})
	}
}

func TestPublicKeyUncompressed_Generator(t *testing.T) {
	// Private key 1 maps to the generator point G.
	one := make([]byte, 32)
	one[31] = 1
	key, err := PrivateKeyFromBytes(one)
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}

	want := "04" +
		"79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
	got := key.PublicKeyUncompressed()
	if len(got) != UncompressedPubKeySize {
		t.Fatalf("PublicKeyUncompressed() length = %d, want %d", len(got), UncompressedPubKeySize)
	}
	if hex.EncodeToString(got) != want {
		t.Errorf("PublicKeyUncompressed() = %x, want %s", got, want)
	}
	if !strings.HasPrefix(hex.EncodeToString(key.PublicKey()), "02") {
		t.Errorf("PublicKey() = %x, want even-y 02 prefix", key.PublicKey())
	}
}

func TestPrivateKey_Zero(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	key.Zero()

	if !bytes.Equal(key.Serialize(), make([]byte, PrivateKeySize)) {
		t.Error("Serialize() should return zeros after Zero()")
	}
}
