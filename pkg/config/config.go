// Package config loads run settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"allocation/pkg/engine"
)

// RelativePath is where the config file is looked up under the XDG config
// directories when no explicit path is given.
const RelativePath = "allocation/config.yaml"

// configDirs lists the XDG config directories in lookup order. Swapped out
// in tests.
var configDirs = func() []string {
	return append([]string{xdg.ConfigHome}, xdg.ConfigDirs...)
}

// searchConfigFile returns the first XDG config directory holding
// RelativePath. The lookup goes through fs, the same filesystem the file is
// then read from.
func searchConfigFile(fs afero.Fs) (string, bool) {
	for _, dir := range configDirs() {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, RelativePath)
		if ok, err := afero.Exists(fs, candidate); err == nil && ok {
			return candidate, true
		}
	}
	return "", false
}

// Config holds every setting a run needs. Zero values are never relied on:
// Default fills all of them and the YAML file only overrides what it names.
type Config struct {
	Allocations     string `yaml:"allocations" validate:"required"`
	Employees       string `yaml:"employees" validate:"required"`
	BaseCost        int    `yaml:"base_cost" validate:"gte=0"`
	DuplicatePolicy string `yaml:"duplicate_policy" validate:"oneof=overwrite warn reject"`
	Output          string `yaml:"output" validate:"oneof=text json"`
	Breakdown       bool   `yaml:"breakdown"`
	LogLevel        string `yaml:"log_level" validate:"oneof=panic fatal error warn warning info debug trace"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Allocations:     engine.DefaultCostsPath,
		Employees:       engine.DefaultDirectoryPath,
		BaseCost:        engine.DefaultManagerBaseCost,
		DuplicatePolicy: string(engine.DuplicateWarn),
		Output:          "text",
		LogLevel:        "warning",
	}
}

// Load reads the config file at path. An empty path falls back to the XDG
// lookup, and when that finds nothing the defaults are returned as-is. The
// second return value is the file actually read, or "" for defaults.
func Load(fs afero.Fs, path string) (Config, string, error) {
	cfg := Default()

	if path == "" {
		found, ok := searchConfigFile(fs)
		if !ok {
			return cfg, "", nil
		}
		path = found
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, "", fmt.Errorf("config file %s does not exist", path)
		}
		return cfg, "", fmt.Errorf("failed to read the config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, "", fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, "", fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, path, nil
}

// Normalize lower-cases the enumerated settings so that "JSON" or "Reject"
// pass validation the same way the lower-case names do.
func (c *Config) Normalize() {
	c.DuplicatePolicy = strings.ToLower(strings.TrimSpace(c.DuplicatePolicy))
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}
