package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	dconfig "hours-stats/domain/config"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "./config.yml"

// Path returns CONFIG_PATH or DefaultPath.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Load parses the YAML configuration file at path on top of the defaults.
// Keys missing from the file keep their default value.
func Load(path string) (*dconfig.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := dconfig.Defaults()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	slog.Info(fmt.Sprintf("Loaded config: %s", path))
	return &c, nil
}

// LoadOrDefault is Load, except a missing file yields the defaults.
func LoadOrDefault(path string) (*dconfig.Config, error) {
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("config.missing", "path", path)
		d := dconfig.Defaults()
		return &d, nil
	}
	return c, err
}
