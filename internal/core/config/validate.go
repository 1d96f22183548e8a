package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration.
// Unlike Validate(), this also checks that the config path is usable.
func (c *Config) ValidateDeep(configPath string) error {
	var errs criterio.FieldErrorsBuilder

	if configPath != "" {
		info, err := os.Stat(configPath)
		switch {
		case err == nil && info.IsDir():
			errs = errs.Append("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
		case err != nil && !os.IsNotExist(err):
			errs = errs.Append("config_file", fmt.Errorf("cannot access %s: %w", configPath, err))
		}
	}

	if err := c.Validate(); err != nil {
		var fieldErrs criterio.FieldErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = errs.Append(fe.Field, fe.Err)
		}
	}

	return errs.ToError()
}

// PatternMatch is the result of expanding one configured scenario pattern.
type PatternMatch struct {
	Pattern string `json:"pattern"`
	Valid   bool   `json:"valid"`
	Files   int    `json:"files"`
}

// ScenarioMatches expands every configured scenario pattern, in order.
// Invalid patterns are reported with Valid false and no files.
func (c *Config) ScenarioMatches() []PatternMatch {
	out := make([]PatternMatch, 0, len(c.Scenarios))
	for _, pattern := range c.Scenarios {
		m := PatternMatch{Pattern: pattern, Valid: isValidPattern(pattern)}
		if m.Valid {
			matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
			if err == nil {
				m.Files = len(matches)
			}
		}
		out = append(out, m)
	}
	return out
}

// Warnings returns non-fatal issues, such as scenario patterns that match
// no files.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if len(c.Scenarios) == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Scenarios",
			Message:  "no default scenario patterns defined; 'run' requires --file or piped input",
		})
	}

	for i, m := range c.ScenarioMatches() {
		if m.Valid && m.Files == 0 {
			warnings = append(warnings, ValidationWarning{
				Category: "Scenarios",
				Item:     fmt.Sprintf("pattern %d", i),
				Message:  fmt.Sprintf("%q matches no files", m.Pattern),
			})
		}
	}

	return warnings
}

func isValidPattern(pattern string) bool {
	return pattern != "" && doublestar.ValidatePattern(pattern)
}
