// Package config provides YAML-based configuration loading with
// environment variable expansion for the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

// Config is the CLI-facing configuration for the drive client.
type Config struct {
	BaseURL       string `yaml:"base_url"`
	UploadBaseURL string `yaml:"upload_base_url"`
	Token         string `yaml:"token"`
}

// Validate checks the loaded configuration.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.UploadBaseURL, is.URL),
		validation.Field(&c.Token, validation.Required),
	)
}

// DefaultPath returns the conventional config location,
// $XDG_CONFIG_HOME/gloomtools/config.yaml.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(base, "gloomtools", "config.yaml")
}

// Load reads a config file, expanding ${VAR} references from the
// environment before parsing, and validates the result.
func Load(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	expanded := os.ExpandEnv(string(data))

	var c Config
	if err := yaml.Unmarshal([]byte(expanded), &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}
