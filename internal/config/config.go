// Package config loads export profiles for the command line tools.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scenekit/tdsfile"
)

// Config holds an export profile.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds encoder settings.
type ExportConfig struct {
	// Forward and Up name the output axes as letters: X, Y, Z or their
	// negations -X, -Y, -Z.
	Forward string `yaml:"forward"`
	Up      string `yaml:"up"`

	SelectedOnly bool `yaml:"selected_only"`
	Keyframes    bool `yaml:"keyframes"`
	Digest       bool `yaml:"digest"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with default values: the identity axis frame,
// no keyframes, info logging to the console.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Forward: "Y",
			Up:      "Z",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a profile from a YAML file, merging it over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if _, err := cfg.Transform(); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// FindFile returns the profile path the tools pick up when none is named
// explicitly: tds-export.yaml in the working directory. Empty when no
// such file exists.
func FindFile() string {
	const name = "tds-export.yaml"
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return ""
}

// Transform returns the axis conversion matrix of the profile.
func (c *Config) Transform() (tdsfile.Matrix4, error) {
	return tdsfile.AxisMatrix(c.Export.Forward, c.Export.Up)
}
