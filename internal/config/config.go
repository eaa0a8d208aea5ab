// Package config loads petkeeper.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/sethgrid/petkeeper/internal/pet"
)

const (
	DefaultPath         = "petkeeper.toml"
	DefaultTickInterval = 3 * time.Second
)

type Config struct {
	// SavesDir is empty when the saves directory should be discovered.
	SavesDir     string
	TickInterval time.Duration
	// JournalPath is empty when the journal is disabled.
	JournalPath string
	// Seed 0 means seed from the clock.
	Seed       uint64
	DefaultPet pet.Species
	// HasDefaultPet is false when no defaultPet was configured.
	HasDefaultPet bool
}

// file is the on-disk shape of the config.
type file struct {
	SavesDir     string `toml:"savesDir"`
	TickInterval string `toml:"tickInterval"`
	JournalPath  string `toml:"journalPath"`
	Seed         uint64 `toml:"seed"`
	DefaultPet   string `toml:"defaultPet"`
}

func Default() Config {
	return Config{TickInterval: DefaultTickInterval}
}

// Load reads the config at path. A missing file yields the defaults unless
// required is set.
func Load(path string, required bool) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML config data. Fields left out keep their defaults.
func Parse(data []byte) (Config, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := Default()
	cfg.SavesDir = f.SavesDir
	cfg.JournalPath = f.JournalPath
	cfg.Seed = f.Seed

	if f.TickInterval != "" {
		d, err := time.ParseDuration(f.TickInterval)
		if err != nil {
			return Config{}, fmt.Errorf("invalid tickInterval %q: %w", f.TickInterval, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("tickInterval must be positive, got %s", d)
		}
		cfg.TickInterval = d
	}

	if strings.TrimSpace(f.DefaultPet) != "" {
		s, err := pet.ParseSpecies(f.DefaultPet)
		if err != nil {
			return Config{}, fmt.Errorf("invalid defaultPet: %w", err)
		}
		cfg.DefaultPet, cfg.HasDefaultPet = s, true
	}
	return cfg, nil
}

// Write saves cfg as TOML.
func Write(path string, cfg Config) error {
	f := file{
		SavesDir:     cfg.SavesDir,
		TickInterval: cfg.TickInterval.String(),
		JournalPath:  cfg.JournalPath,
		Seed:         cfg.Seed,
	}
	if cfg.HasDefaultPet {
		f.DefaultPet = strings.ToLower(cfg.DefaultPet.String())
	}
	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
