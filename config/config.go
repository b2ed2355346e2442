// Package config handles hdaddr runtime configuration.
//
// There is no config file: defaults are overridden by command-line flags
// only, and nothing is persisted.
package config

// Config holds the settings for one derivation run.
type Config struct {
	// Derivation
	EntropyBits int
	Path        string

	// Restore derives from an existing mnemonic read from stdin instead of
	// generating a new one.
	Restore bool

	// Checksum prints the EIP-55 mixed-case address instead of lowercase hex.
	Checksum bool

	// JSON prints the result as one JSON object instead of text lines.
	JSON bool

	// Expect is an address the restored phrase must derive to. Empty
	// disables the check.
	Expect string

	// Logging
	Log LogConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	File  string
	JSON  bool
}
