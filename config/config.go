// Package config loads rendering defaults from a TOML file.
//
// A file holds the same keys as the render flags:
//
//	ascii = false
//	border_padding = 1
//	padding_x = 5
//	padding_y = 5
//	orientation = "LR"
//	color = true
//
// Missing keys keep their defaults. Unknown keys are rejected.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
)

const (
	appName  = "mermaid-ascii"
	fileName = "config.toml"
)

// ErrUnknownKey is returned when a file sets a key no option reads.
var ErrUnknownKey = errors.New("unknown config key")

// Config is the merged configuration of a run.
type Config struct {
	diagram.Options

	// Color styles nodes carrying a style class when writing to a terminal.
	Color bool `toml:"color"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{Options: diagram.DefaultOptions()}
}

// DefaultPath returns the config file location, following the XDG base directory
// convention (~/.config/mermaid-ascii/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the file at path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return Config{}, fmt.Errorf("%w in %s: %s", ErrUnknownKey, path, strings.Join(keys, ", "))
	}
	if cfg.Orientation != "" {
		o, err := diagram.ParseOrientation(string(cfg.Orientation))
		if err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
		cfg.Orientation = o
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the file at DefaultPath when it exists and returns the path it
// read, or the defaults and an empty path when there is no file.
func LoadDefault() (Config, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), "", nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}
