package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings is the process configuration read from the environment.
type Settings struct {
	Addr        string `env:"GENESIS_ADDR"         envDefault:":8080"`
	DBPath      string `env:"GENESIS_DB"           envDefault:"./data/genesis.db"`
	CatalogPath string `env:"GENESIS_CATALOG"      envDefault:"./catalog.yaml"`
	LogLevel    string `env:"GENESIS_LOG_LEVEL"    envDefault:"info"`
	// DefaultSeed seeds combats started without an explicit seed. Zero
	// derives a seed from the combat id.
	DefaultSeed uint64 `env:"GENESIS_DEFAULT_SEED"`
	// MaxConcurrent caps how many hostiles fight at once; the rest wait
	// in reserve. Zero means no cap.
	MaxConcurrent int `env:"GENESIS_MAX_CONCURRENT" envDefault:"3"`
}

// LoadSettings parses Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
