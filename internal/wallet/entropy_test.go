package wallet

import (
	"bytes"
	"errors"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device not ready")
}

func TestNewEntropy(t *testing.T) {
	for _, bits := range []int{128, 160, 192, 224, 256} {
		ent, err := NewEntropy(bits)
		if err != nil {
			t.Fatalf("NewEntropy(%d) error: %v", bits, err)
		}
		if len(ent)*8 != bits {
			t.Errorf("NewEntropy(%d) length = %d bytes, want %d", bits, len(ent), bits/8)
		}
	}
}

func TestNewEntropy_InvalidBits(t *testing.T) {
	for _, bits := range []int{0, 96, 127, 129, 136, 288, -128} {
		_, err := NewEntropy(bits)
		if !errors.Is(err, ErrEntropyLength) {
			t.Errorf("NewEntropy(%d) error = %v, want ErrEntropyLength", bits, err)
		}
	}
}

func TestNewEntropy_Unique(t *testing.T) {
	e1, err := NewEntropy(128)
	if err != nil {
		t.Fatalf("NewEntropy() error: %v", err)
	}
	e2, err := NewEntropy(128)
	if err != nil {
		t.Fatalf("NewEntropy() error: %v", err)
	}
	if bytes.Equal(e1, e2) {
		t.Error("two entropy reads should not be identical")
	}
}

func TestNewEntropy_SourceUnavailable(t *testing.T) {
	restore := SetEntropySource(failingReader{})
	defer restore()

	_, err := NewEntropy(128)
	if !errors.Is(err, ErrEntropyUnavailable) {
		t.Fatalf("NewEntropy() error = %v, want ErrEntropyUnavailable", err)
	}
}

func TestNewEntropy_ShortSource(t *testing.T) {
	restore := SetEntropySource(bytes.NewReader(make([]byte, 10)))
	defer restore()

	_, err := NewEntropy(128)
	if !errors.Is(err, ErrEntropyUnavailable) {
		t.Fatalf("NewEntropy() error = %v, want ErrEntropyUnavailable", err)
	}
}

func TestSetEntropySource_Restore(t *testing.T) {
	restore := SetEntropySource(failingReader{})
	restore()

	if _, err := NewEntropy(128); err != nil {
		t.Errorf("NewEntropy() after restore error: %v", err)
	}
}
