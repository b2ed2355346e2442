// hdaddr derives an Ethereum account address from a BIP-39 mnemonic.
//
// Usage:
//
//	hdaddr                           Generate a 12-word phrase and print its address
//	hdaddr --words=24                Generate a 24-word phrase
//	hdaddr --restore < words         Derive from an existing phrase
//	hdaddr --restore --expect=0x...  Check a phrase against a known address
//	hdaddr --help                    Show help
package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Klingon-tech/hdaddr/config"
	"github.com/Klingon-tech/hdaddr/internal/log"
	"github.com/Klingon-tech/hdaddr/internal/wallet"
	"github.com/Klingon-tech/hdaddr/pkg/types"
	"golang.org/x/term"
)

var errAddressMismatch = errors.New("derived address does not match")

// output is the --json form of one run. The address is always checksummed.
type output struct {
	Mnemonic string        `json:"mnemonic"`
	Entropy  string        `json:"entropy"`
	Path     string        `json:"path"`
	Address  types.Address `json:"address"`
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, config.ErrHelp) {
			return
		}
		fatal("%v", err)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load(args, stdout, stderr)
	if err != nil {
		return err
	}
	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	var res *wallet.Result
	if cfg.Restore {
		phrase, err := readMnemonic(stdin, stderr)
		if err != nil {
			return fmt.Errorf("read mnemonic: %w", err)
		}
		res, err = wallet.RestoreAddress(phrase, cfg.Path, "")
		if err != nil {
			return err
		}
	} else {
		res, err = wallet.DeriveAddress(cfg.EntropyBits, cfg.Path, "")
		if err != nil {
			return err
		}
	}
	defer res.Wipe()

	if cfg.Expect != "" {
		want, err := types.ParseAddress(cfg.Expect)
		if err != nil {
			return fmt.Errorf("--expect: %w", err)
		}
		if res.Address != want {
			return fmt.Errorf("%w: derived %s, expected %s", errAddressMismatch, res.Address, want)
		}
	}

	addr := res.Address.Hex()
	if cfg.Checksum {
		addr = res.Address.String()
	}

	log.CLI.Info().
		Str("path", res.Path.String()).
		Int("words", len(strings.Fields(res.Mnemonic))).
		Bool("restored", cfg.Restore).
		Str("address", addr).
		Msg("Derived address")

	if cfg.JSON {
		return json.NewEncoder(stdout).Encode(output{
			Mnemonic: res.Mnemonic,
			Entropy:  hex.EncodeToString(res.Entropy),
			Path:     res.Path.String(),
			Address:  res.Address,
		})
	}

	fmt.Fprintln(stdout, "Mnemonic phrase")
	fmt.Fprintln(stdout, res.Mnemonic)
	fmt.Fprintf(stdout, "Entropy (hex): %s\n", hex.EncodeToString(res.Entropy))
	fmt.Fprintf(stdout, "Ethereum address: %s\n", addr)
	return nil
}

// readMnemonic reads a phrase without echo when stdin is a terminal, or the
// first non-empty line otherwise.
func readMnemonic(stdin io.Reader, stderr io.Writer) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(stderr, "Mnemonic: ")
		phrase, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(stderr) // newline after hidden input
		if err != nil {
			return "", err
		}
		return string(phrase), nil
	}

	sc := bufio.NewScanner(stdin)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", errors.New("no mnemonic on stdin")
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
