package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/hay-kot/broadcast/internal/core/config"
	"github.com/hay-kot/broadcast/internal/core/scenario"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Runner executes scenarios for the demo and run commands
	Runner *scenario.Runner
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "broadcast", "config.yaml")
}

// Prepare loads the config and builds the runner. Invalid config values are
// logged rather than returned so 'config validate' can still report them.
func (f *Flags) Prepare() error {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Warn().Err(err).Msg("config has invalid values; run 'broadcast config validate' for details")
	}
	f.Config = cfg

	f.Runner = scenario.NewRunner(log.With().Str("component", "runner").Logger())
	return nil
}
