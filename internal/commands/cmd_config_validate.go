package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/broadcast/internal/core/config"
	"github.com/hay-kot/broadcast/internal/printer"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "broadcast config validate [options]",
				Description: "Checks the transcript color mode and every scenario pattern, and reports how many files each pattern matches.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       formatText,
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// configReport is the outcome of validating the loaded config.
type configReport struct {
	Path      string                     `json:"path"`
	Found     bool                       `json:"found"`
	Valid     bool                       `json:"valid"`
	Scenarios []config.PatternMatch      `json:"scenarios"`
	Errors    []fieldError               `json:"errors,omitempty"`
	Warnings  []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	if err := validateFormat(cmd.format); err != nil {
		return err
	}

	cfg := cmd.flags.Config
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	verr := cfg.ValidateDeep(cmd.flags.ConfigPath)
	report := configReport{
		Path:      cmd.flags.ConfigPath,
		Found:     fileExists(cmd.flags.ConfigPath),
		Valid:     verr == nil,
		Scenarios: cfg.ScenarioMatches(),
		Warnings:  cfg.Warnings(),
	}
	for _, fe := range extractFieldErrors(verr) {
		report.Errors = append(report.Errors, fieldError{Field: fe.Field, Message: fe.Err.Error()})
	}

	if cmd.format == formatJSON {
		if err := writeJSON(c.Root().Writer, report); err != nil {
			return err
		}
	} else {
		printConfigReport(printer.Ctx(ctx), report)
	}

	if !report.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func printConfigReport(p *printer.Printer, r configReport) {
	p.Section("Config")
	if r.Found {
		p.Infof("loaded %s", r.Path)
	} else {
		p.Infof("no config file at %s, using defaults", r.Path)
	}

	p.Printf("")
	p.Section("Scenario patterns")
	if len(r.Scenarios) == 0 {
		p.Infof("none configured")
	}
	for _, m := range r.Scenarios {
		switch {
		case !m.Valid:
			p.FailItem(m.Pattern, "invalid glob")
		case m.Files == 0:
			p.WarnItem(m.Pattern, "no files")
		default:
			p.CheckItem(m.Pattern, fmt.Sprintf("%d file(s)", m.Files))
		}
	}

	if len(r.Errors) > 0 {
		p.Printf("")
		p.Section("Errors")
		for _, fe := range r.Errors {
			label := fe.Field
			if label == "" {
				label = "config"
			}
			p.FailItem(label, fe.Message)
		}
	}

	if len(r.Warnings) > 0 {
		p.Printf("")
		p.Section("Warnings")
		for _, w := range r.Warnings {
			label := w.Category
			if w.Item != "" {
				label += " " + w.Item
			}
			p.WarnItem(label, w.Message)
		}
	}

	p.Printf("")
	switch {
	case !r.Valid:
		p.Errorf("%d error(s), %d warning(s)", len(r.Errors), len(r.Warnings))
	case len(r.Warnings) > 0:
		p.Warnf("Configuration is valid (%d warning(s))", len(r.Warnings))
	default:
		p.Successf("Configuration is valid")
	}
}

// extractFieldErrors extracts field errors from a validation error.
func extractFieldErrors(err error) criterio.FieldErrors {
	if err == nil {
		return nil
	}
	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs
	}
	return criterio.FieldErrors{{Err: err}}
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
