package shtest

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultConfigName is the project-config file convention (SPEC_FULL §1.3).
const DefaultConfigName = ".shtestrc.toml"

// FileConfig holds defaults for the §6 flags, loaded from a TOML file.
// Explicit command-line flags always take precedence over these.
type FileConfig struct {
	First        bool   `toml:"first"`
	Quiet        bool   `toml:"quiet"`
	Verbose      bool   `toml:"verbose"`
	Color        string `toml:"color"`
	DiffOptions  string `toml:"diff_options"`
	InlinePrefix string `toml:"inline_prefix"`
	Prefix       string `toml:"prefix"`
	Prompt       string `toml:"prompt"`
	PreFlight    string `toml:"pre_flight"`
	PostFlight   string `toml:"post_flight"`
}

// LoadFileConfig loads defaults from path. A missing file is not an
// error — it simply yields the zero-value FileConfig — matching the
// teacher's "TOML if present, otherwise fall back" convention.
func LoadFileConfig(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg FileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
