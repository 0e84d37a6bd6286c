package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// FromEnv overlays PLAYD_* environment variables onto cfg. File values stand
// unless the corresponding variable is set.
func FromEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env config: %w", err)
	}
	return nil
}
