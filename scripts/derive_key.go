// derive_key.go prints the public key and Ethereum address for a hex-encoded
// private key read from a file, or from stdin when the file is "-". With
// --generate it creates a fresh random key and prints it as well.
// Usage: go run scripts/derive_key.go [--checksum] <keyfile|->
//
//	go run scripts/derive_key.go --generate
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Klingon-tech/hdaddr/pkg/crypto"
)

var errUsage = errors.New("usage: derive_key [--checksum] <keyfile|->\n       derive_key --generate")

func main() {
	// run returns before exiting so its deferred key wipe always happens.
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("derive_key", flag.ContinueOnError)
	checksum := fs.Bool("checksum", false, "print the EIP-55 checksummed address")
	generate := fs.Bool("generate", false, "generate a new random key instead of reading one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		key *crypto.PrivateKey
		err error
	)
	switch {
	case *generate && fs.NArg() == 0:
		key, err = crypto.GenerateKey()
	case !*generate && fs.NArg() == 1:
		key, err = readKey(fs.Arg(0), stdin)
	default:
		return errUsage
	}
	if err != nil {
		return err
	}
	defer key.Zero()

	pub := key.PublicKeyUncompressed()
	addr, err := crypto.AddressFromPubKey(pub)
	if err != nil {
		return err
	}
	out := addr.Hex()
	if *checksum {
		out = addr.String()
	}
	if *generate {
		priv := key.Serialize()
		fmt.Fprintf(stdout, "privkey=%s\n", hex.EncodeToString(priv))
		zero(priv)
	}
	fmt.Fprintf(stdout, "pubkey=%s\n", hex.EncodeToString(pub))
	fmt.Fprintf(stdout, "address=%s\n", out)
	return nil
}

// readKey loads a hex private key from name, or stdin for "-". The raw
// bytes are zeroed before it returns.
func readKey(name string, stdin io.Reader) (*crypto.PrivateKey, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, err
	}
	defer zero(data)

	keyHex := strings.TrimPrefix(strings.TrimSpace(string(data)), "0x")
	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, err
	}
	defer zero(keyBytes)
	return crypto.PrivateKeyFromBytes(keyBytes)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
