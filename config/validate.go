package config

import (
	"fmt"

	"github.com/Klingon-tech/hdaddr/internal/log"
	"github.com/Klingon-tech/hdaddr/internal/wallet"
	"github.com/Klingon-tech/hdaddr/pkg/types"
)

// Validate checks the config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if !wallet.ValidEntropyBits(cfg.EntropyBits) {
		return fmt.Errorf("entropy must be 128, 160, 192, 224 or 256 bits, got %d", cfg.EntropyBits)
	}
	if _, err := wallet.ParsePath(cfg.Path); err != nil {
		return err
	}
	if cfg.Expect != "" {
		if !cfg.Restore {
			return fmt.Errorf("--expect requires --restore")
		}
		if _, err := types.ParseAddress(cfg.Expect); err != nil {
			return fmt.Errorf("--expect: %w", err)
		}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, error or off")
	}
	return nil
}
