package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/nifeed/internal/messages"
)

// ErrConfigValidation is a sentinel that wraps config validation failures
// (as opposed to TOML syntax, filesystem, or other loading errors).
var ErrConfigValidation = errors.New("config validation failed")

// readFile is swapped in tests to simulate unreadable files.
var readFile = os.ReadFile

// LoadConfig reads the config file at path and validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
	}
	return ParseConfig(data, path)
}

// LoadOptional loads path when it is set. Otherwise it loads DefaultFile from
// the working directory if one exists, falling back to DefaultConfig.
// The returned source is the file that was read, or empty for defaults.
func LoadOptional(path string) (*Config, string, error) {
	if path != "" {
		cfg, err := LoadConfig(path)
		return cfg, path, err
	}
	data, err := readFile(DefaultFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), "", nil
		}
		return nil, "", fmt.Errorf(messages.ConfigMissingFileFmt, DefaultFile, err)
	}
	cfg, err := ParseConfig(data, DefaultFile)
	return cfg, DefaultFile, err
}

// ParseConfig parses and validates config TOML data from a source identifier.
// Keys absent from data keep their DefaultConfig values.
// data is the TOML content; source is used in error messages.
func ParseConfig(data []byte, source string) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt+" "+messages.ConfigValidationGuidance, ErrConfigValidation, source, err)
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w "+messages.ConfigValidationGuidance, ErrConfigValidation, err)
	}
	if err := cfg.expandPaths(source); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection.
// This catches misspelled keys that toml.Unmarshal silently ignores.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

// ParseConfigLenient parses config TOML data without validation.
// Returns an error only on TOML syntax errors, so doctor can report on a
// partially valid file.
func ParseConfigLenient(data []byte, source string) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	return cfg, nil
}

// expandPaths replaces a leading ~ in path settings with the home directory.
func (c *Config) expandPaths(source string) error {
	targets := []struct {
		key   string
		value *string
	}{
		{"nipkg.path", &c.Nipkg.Path},
		{"pool.dir", &c.Pool.Dir},
		{"publish.python", &c.Publish.Python},
		{"publish.report_root", &c.Publish.ReportRoot},
	}
	for _, target := range targets {
		expanded, err := homedir.Expand(*target.value)
		if err != nil {
			return fmt.Errorf(messages.ConfigExpandPathFmt, source, target.key, err)
		}
		*target.value = expanded
	}
	return nil
}
