// Package config loads patchfix configuration with a defined load order:
// environment variables > config file > defaults.
//
// The config file lives at <config dir>/config.toml, where the config dir
// comes from fs.DefaultConfigDir. Environment variables:
//
//   - PATCHFIX_MODEL   — Gemini model for resolving unmatched hunks
//   - GEMINI_API_KEY   — API key for the Gemini backend
//   - PATCHFIX_BACKUP  — write a .orig backup before applying in place
//     (1/true/yes/on or 0/false/no/off)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fourlexboehm/patchfix/fs"
)

// Config holds all patchfix configuration.
type Config struct {
	// Model is the Gemini model used to resolve hunks the content
	// search could not place.
	Model string `toml:"model"`

	// APIKey authenticates against the Gemini backend. Usually set via
	// GEMINI_API_KEY rather than the config file.
	APIKey string `toml:"api_key"`

	// Backup writes a .orig copy before replacing a file in place.
	Backup bool `toml:"backup"`
}

const defaultModel = "gemini-2.5-flash"

// env key names
const (
	envModel  = "PATCHFIX_MODEL"
	envAPIKey = "GEMINI_API_KEY"
	envBackup = "PATCHFIX_BACKUP"
)

// LoadOptions configures Load. All fields are optional.
type LoadOptions struct {
	// Path is the config file path; empty uses the default location.
	Path string

	// Env is the environment key=value slice; nil uses os.Environ().
	Env []string
}

// Default returns the default configuration (no I/O).
func Default() Config {
	return Config{
		Model:  defaultModel,
		Backup: true,
	}
}

// Load loads configuration with precedence: defaults < file < env. A
// missing config file is ignored; invalid TOML or invalid env values
// return an error.
func Load(opts LoadOptions) (*Config, error) {
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	path := opts.Path
	if path == "" {
		path = filepath.Join(fs.DefaultConfigDir(), "config.toml")
	}

	cfg := Default()
	if err := mergeFile(&cfg, path); err != nil {
		return nil, err
	}
	if err := applyEnv(&cfg, opts.Env); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeFile merges the file at path into cfg, overwriting only fields the
// file sets. A missing file is skipped.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	var file struct {
		Model  *string `toml:"model"`
		APIKey *string `toml:"api_key"`
		Backup *bool   `toml:"backup"`
	}
	if _, err := toml.Decode(string(data), &file); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if file.Model != nil && *file.Model != "" {
		cfg.Model = *file.Model
	}
	if file.APIKey != nil && *file.APIKey != "" {
		cfg.APIKey = *file.APIKey
	}
	if file.Backup != nil {
		cfg.Backup = *file.Backup
	}
	return nil
}

func applyEnv(cfg *Config, env []string) error {
	vals := make(map[string]string)
	for _, e := range env {
		key, val, ok := strings.Cut(e, "=")
		if !ok || key == "" {
			continue
		}
		vals[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}
	if v, ok := vals[envModel]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := vals[envAPIKey]; ok && v != "" {
		cfg.APIKey = v
	}
	if v, ok := vals[envBackup]; ok && v != "" {
		b, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("%s must be 1/true/yes/on or 0/false/no/off: %w", envBackup, err)
		}
		cfg.Backup = b
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}
