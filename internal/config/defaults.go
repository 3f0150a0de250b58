package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/wordwar/internal/games/wordwar/core"
)

//go:embed defaults/wordwar.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Rows:              core.DefaultRows,
			Columns:           core.DefaultCols,
			Vowels:            core.DefaultVowels,
			VowelAlphabet:     core.DefaultVowelSet,
			ConsonantAlphabet: core.DefaultConsonants,
		},
		Storage: StorageConfig{
			Path: "~/.wordwar/games.db",
		},
		Server: ServerConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
