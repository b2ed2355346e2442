package config

import "github.com/Klingon-tech/hdaddr/internal/wallet"

// Default returns the default configuration: a fresh 12-word phrase and
// the first external Ethereum account path.
func Default() *Config {
	return &Config{
		EntropyBits: wallet.DefaultEntropyBits,
		Path:        wallet.DefaultPath,
		Log: LogConfig{
			Level: "warn",
			JSON:  false,
		},
	}
}
