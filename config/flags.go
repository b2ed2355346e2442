package config

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/Klingon-tech/hdaddr/internal/wallet"
)

// Version is the hdaddr release string.
const Version = "0.1.0"

// ErrHelp is returned by Load when --help or --version was handled.
var ErrHelp = flag.ErrHelp

// Flags holds parsed command-line flags.
type Flags struct {
	// Commands
	Help    bool
	Version bool

	// Derivation
	Words    int
	Path     string
	Restore  bool
	Checksum bool
	JSON     bool
	Expect   string

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool

	// Remaining args
	Args []string

	// Explicitly-set bool flags (for true/false overrides).
	SetLogJSON bool
}

// ParseFlags parses command-line flags from args (without the program name).
func ParseFlags(args []string, stderr io.Writer) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet("hdaddr", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Commands
	fs.BoolVar(&f.Help, "help", false, "Show help message")
	fs.BoolVar(&f.Help, "h", false, "Show help message (shorthand)")
	fs.BoolVar(&f.Version, "version", false, "Show version information")
	fs.BoolVar(&f.Version, "v", false, "Show version (shorthand)")

	// Derivation
	fs.IntVar(&f.Words, "words", 0, "Mnemonic length: 12, 15, 18, 21 or 24")
	fs.StringVar(&f.Path, "path", "", "BIP-32 derivation path")
	fs.BoolVar(&f.Restore, "restore", false, "Read an existing mnemonic instead of generating one")
	fs.BoolVar(&f.Checksum, "checksum", false, "Print the EIP-55 checksummed address")
	fs.BoolVar(&f.JSON, "json", false, "Print the result as JSON")
	fs.StringVar(&f.Expect, "expect", "", "Fail unless the restored phrase derives this address")

	// Logging
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error, off)")
	fs.StringVar(&f.LogFile, "log-file", "", "Log file path")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Output logs as JSON")

	fs.Usage = func() {
		printUsage(stderr)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	f.SetLogJSON = isFlagSet(fs, "log-json")
	f.Args = fs.Args()

	if len(f.Args) > 0 {
		return nil, fmt.Errorf("unexpected argument %q", f.Args[0])
	}
	return f, nil
}

// ApplyFlags applies command-line flags to a Config struct.
func ApplyFlags(cfg *Config, f *Flags) error {
	// Derivation
	if f.Words != 0 {
		bits := wallet.BitsForWords(f.Words)
		if bits == 0 {
			return fmt.Errorf("--words must be 12, 15, 18, 21 or 24, got %d", f.Words)
		}
		cfg.EntropyBits = bits
	}
	if f.Path != "" {
		cfg.Path = strings.TrimSpace(f.Path)
	}
	if f.Restore {
		cfg.Restore = true
	}
	if f.Checksum {
		cfg.Checksum = true
	}
	if f.JSON {
		cfg.JSON = true
	}
	if f.Expect != "" {
		cfg.Expect = strings.TrimSpace(f.Expect)
	}

	// Logging
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.SetLogJSON {
		cfg.Log.JSON = f.LogJSON
	}
	return nil
}

// isFlagSet checks if a flag was explicitly set.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func printUsage(w io.Writer) {
	usage := `hdaddr - derive an Ethereum account address from a BIP-39 mnemonic

Usage:
  hdaddr [options]
  hdaddr --restore < phrase.txt

Commands:
  --help, -h      Show this help message
  --version, -v   Show version information

Derivation Options:
  --words         Mnemonic length: 12 (default), 15, 18, 21 or 24
  --path          Derivation path (default: m/44'/60'/0'/0/0)
  --restore       Read an existing mnemonic from the terminal or stdin
  --checksum      Print the EIP-55 mixed-case address
  --json          Print the result as one JSON object
  --expect        With --restore, fail unless this address is derived

Logging Options:
  --log-level     Log level: debug, info, warn (default), error, off
  --log-file      Also write JSON logs to this file
  --log-json      Output logs as JSON

Output goes to stdout; logs and errors go to stderr.
`
	fmt.Fprint(w, usage)
}

// Load builds the configuration with the following precedence:
// 1. Default values
// 2. Command-line flags
//
// It returns ErrHelp after printing help or version text.
func Load(args []string, stdout, stderr io.Writer) (*Config, error) {
	flags, err := ParseFlags(args, stderr)
	if err != nil {
		return nil, err
	}

	if flags.Help {
		printUsage(stdout)
		return nil, ErrHelp
	}
	if flags.Version {
		fmt.Fprintf(stdout, "hdaddr version %s\n", Version)
		return nil, ErrHelp
	}

	cfg := Default()
	if err := ApplyFlags(cfg, flags); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
