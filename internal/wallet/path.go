package wallet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tyler-smith/go-bip32"
)

// DefaultPath is the BIP-44 path of the first external Ethereum account.
const DefaultPath = "m/44'/60'/0'/0/0"

// BIP-44 coin types.
const (
	PurposeBIP44    = 44
	CoinTypeEther   = 60
	ChangeExternal  = 0
	ChangeInternal  = 1
	maxSegmentIndex = bip32.FirstHardenedChild - 1
)

// ErrInvalidDerivationPath is returned for malformed path strings.
var ErrInvalidDerivationPath = errors.New("invalid derivation path")

// SegmentKind tags a path segment as hardened or normal.
type SegmentKind uint8

const (
	// Normal children are derived from the parent public key.
	Normal SegmentKind = iota
	// Hardened children are derived from the parent private key.
	Hardened
)

func (k SegmentKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Hardened:
		return "hardened"
	default:
		return fmt.Sprintf("SegmentKind(%d)", uint8(k))
	}
}

// Segment is one step of a derivation path. Index is always below 2^31;
// the hardened offset is applied by Child.
type Segment struct {
	Kind  SegmentKind
	Index uint32
}

// HardenedSegment returns a hardened segment for index.
func HardenedSegment(index uint32) Segment {
	return Segment{Kind: Hardened, Index: index}
}

// NormalSegment returns a normal segment for index.
func NormalSegment(index uint32) Segment {
	return Segment{Kind: Normal, Index: index}
}

// Child returns the BIP-32 child number for the segment.
func (s Segment) Child() uint32 {
	if s.Kind == Hardened {
		return bip32.FirstHardenedChild + s.Index
	}
	return s.Index
}

// String renders the segment as "44'" or "0".
func (s Segment) String() string {
	if s.Kind == Hardened {
		return strconv.FormatUint(uint64(s.Index), 10) + "'"
	}
	return strconv.FormatUint(uint64(s.Index), 10)
}

// Path is a parsed derivation path below the master node.
type Path []Segment

// String renders the path in canonical m/a'/b/... form.
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, s := range p {
		sb.WriteByte('/')
		sb.WriteString(s.String())
	}
	return sb.String()
}

// BIP44Path returns m/44'/coin'/account'/change/index.
func BIP44Path(coin, account, change, index uint32) Path {
	return Path{
		HardenedSegment(PurposeBIP44),
		HardenedSegment(coin),
		HardenedSegment(account),
		NormalSegment(change),
		NormalSegment(index),
	}
}

// ParsePath parses a path such as "m/44'/60'/0'/0/0". Hardened segments may
// be marked with ', h or H. "m" alone is the master node.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if parts[0] != "m" && parts[0] != "M" {
		return nil, fmt.Errorf("%w: %q must start with m", ErrInvalidDerivationPath, s)
	}

	path := make(Path, 0, len(parts)-1)
	for i, part := range parts[1:] {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %d of %q: %v", ErrInvalidDerivationPath, i+1, s, err)
		}
		path = append(path, seg)
	}
	return path, nil
}

// MustParsePath is like ParsePath but panics on error.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

func parseSegment(part string) (Segment, error) {
	kind := Normal
	if n := len(part); n > 0 {
		switch part[n-1] {
		case '\'', 'h', 'H':
			kind = Hardened
			part = part[:n-1]
		}
	}
	if part == "" {
		return Segment{}, errors.New("empty index")
	}
	for _, c := range part {
		if c < '0' || c > '9' {
			return Segment{}, fmt.Errorf("index %q is not a decimal number", part)
		}
	}
	idx, err := strconv.ParseUint(part, 10, 32)
	if err != nil || idx > uint64(maxSegmentIndex) {
		return Segment{}, fmt.Errorf("index %s out of range [0, %d]", part, maxSegmentIndex)
	}
	return Segment{Kind: kind, Index: uint32(idx)}, nil
}
