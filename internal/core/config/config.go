// Package config handles configuration loading and validation for broadcast.
package config

import (
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

// Color modes for transcript output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the application configuration.
type Config struct {
	Transcript TranscriptConfig `yaml:"transcript"`
	// Scenarios lists glob patterns used by `run` when no file is given.
	Scenarios []string `yaml:"scenarios"`
}

// TranscriptConfig controls which sections of a run transcript are printed.
type TranscriptConfig struct {
	Color         string `yaml:"color"`
	ShowInterests *bool  `yaml:"show_interests"`
	ShowActivity  *bool  `yaml:"show_activity"`
	ShowHistory   *bool  `yaml:"show_history"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Transcript: TranscriptConfig{
			Color:         ColorAuto,
			ShowInterests: ptr(true),
			ShowActivity:  ptr(true),
			ShowHistory:   ptr(true),
		},
		Scenarios: []string{},
	}
}

// Load reads configuration from the given path.
// If configPath is empty, doesn't exist, or is a directory, returns defaults.
//
// Load only fails when the file cannot be read or decoded. Value checks are
// left to Validate and ValidateDeep so 'config validate' can report them.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Transcript.Color == "" {
		c.Transcript.Color = defaults.Transcript.Color
	}
	if c.Transcript.ShowInterests == nil {
		c.Transcript.ShowInterests = defaults.Transcript.ShowInterests
	}
	if c.Transcript.ShowActivity == nil {
		c.Transcript.ShowActivity = defaults.Transcript.ShowActivity
	}
	if c.Transcript.ShowHistory == nil {
		c.Transcript.ShowHistory = defaults.Transcript.ShowHistory
	}
}

// Validate checks the configured values: the color mode and the syntax of
// every scenario pattern.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if !isValidColor(c.Transcript.Color) {
		errs = errs.Append("transcript.color", fmt.Errorf("invalid value %q (use auto, always or never)", c.Transcript.Color))
	}

	for i, pattern := range c.Scenarios {
		if !isValidPattern(pattern) {
			errs = errs.Append(fmt.Sprintf("scenarios[%d]", i), fmt.Errorf("invalid glob pattern %q", pattern))
		}
	}

	return errs.ToError()
}

// Interests reports whether the interests section is printed.
func (t TranscriptConfig) Interests() bool { return t.ShowInterests == nil || *t.ShowInterests }

// Activity reports whether the per-step activity section is printed.
func (t TranscriptConfig) Activity() bool { return t.ShowActivity == nil || *t.ShowActivity }

// History reports whether publisher histories are printed.
func (t TranscriptConfig) History() bool { return t.ShowHistory == nil || *t.ShowHistory }

func isValidColor(mode string) bool {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

func ptr[T any](v T) *T {
	return &v
}
