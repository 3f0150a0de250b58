// Package config provides YAML-based configuration loading for wordwar.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wordwar/internal/games/wordwar/core"
)

// Config is the full application configuration.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Storage    StorageConfig    `yaml:"storage"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// GridConfig defines board dimensions and letter distribution.
type GridConfig struct {
	Rows              int    `yaml:"rows"`
	Columns           int    `yaml:"columns"`
	Vowels            int    `yaml:"vowels"`
	VowelAlphabet     string `yaml:"vowel_alphabet"`
	ConsonantAlphabet string `yaml:"consonant_alphabet"`
}

// DictionaryConfig selects the word list. An empty path uses the embedded list.
type DictionaryConfig struct {
	Path string `yaml:"path"`
}

// StorageConfig locates the saved-games database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig holds SSH server settings.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"` // Generated under ~/.wordwar when empty
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// Layout converts the grid section into a board layout. Alphabets are
// upper-cased; anything that is still not A-Z fails Validate.
func (c Config) Layout() core.Layout {
	return core.Layout{
		Rows:       c.Grid.Rows,
		Cols:       c.Grid.Columns,
		Vowels:     c.Grid.Vowels,
		VowelSet:   strings.ToUpper(c.Grid.VowelAlphabet),
		Consonants: strings.ToUpper(c.Grid.ConsonantAlphabet),
	}
}

// LogLevel returns the parsed log level.
func (c Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("config: %w", err)
	}
	return lvl, nil
}

// Validate checks that the configuration describes a playable setup.
func (c Config) Validate() error {
	var errs []error
	if err := c.Layout().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("config: grid: %w", err))
	}
	if c.Storage.Path == "" {
		errs = append(errs, errors.New("config: storage.path is empty"))
	}
	if c.Server.Address == "" {
		errs = append(errs, errors.New("config: server.address is empty"))
	}
	if c.Server.IdleTimeout < 0 {
		errs = append(errs, errors.New("config: server.idle_timeout is negative"))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
