package commands

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/broadcast/internal/printer"
)

type ValidateCmd struct {
	flags  *Flags
	files  []string
	format string
}

// NewValidateCmd creates a new scenario validate command.
func NewValidateCmd(flags *Flags) *ValidateCmd {
	return &ValidateCmd{flags: flags}
}

// Register adds the validate command to the application.
func (cmd *ValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "validate",
		Usage:       "Validate scenario files without running them",
		UsageText:   "broadcast validate [options]",
		Description: "Checks that every step names a declared publisher or subscriber and that names and message types are not empty.",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "scenario file or glob pattern (repeatable)",
				Destination: &cmd.files,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       formatText,
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type scenarioReport struct {
	Source string       `json:"source"`
	Name   string       `json:"name"`
	Valid  bool         `json:"valid"`
	Errors []fieldError `json:"errors,omitempty"`
}

func (cmd *ValidateCmd) run(ctx context.Context, c *cli.Command) error {
	if err := validateFormat(cmd.format); err != nil {
		return err
	}

	inputs, err := readScenarios(cmd.files, cmd.flags.Config.Scenarios, os.Stdin)
	if err != nil {
		return err
	}

	var (
		reports = make([]scenarioReport, 0, len(inputs))
		invalid int
	)

	for _, in := range inputs {
		report := scenarioReport{Source: in.Source, Name: in.Scenario.Name, Valid: true}

		verr := in.Err
		if verr == nil {
			verr = in.Scenario.Validate()
		}
		if verr != nil {
			report.Valid = false
			invalid++
			for _, fe := range extractFieldErrors(verr) {
				report.Errors = append(report.Errors, fieldError{Field: fe.Field, Message: fe.Err.Error()})
			}
		}
		reports = append(reports, report)
	}

	if cmd.format == formatJSON {
		if err := writeJSON(c.Root().Writer, reports); err != nil {
			return err
		}
	} else {
		p := printer.Ctx(ctx)
		for _, r := range reports {
			if r.Valid {
				p.CheckItem(r.Source, r.Name)
				continue
			}
			p.FailItem(r.Source, r.Name)
			for _, fe := range r.Errors {
				if fe.Field != "" {
					p.Printf("      %s: %s", fe.Field, fe.Message)
				} else {
					p.Printf("      %s", fe.Message)
				}
			}
		}

		p.Printf("")
		if invalid == 0 {
			p.Successf("%d scenario(s) valid", len(reports))
		} else {
			p.Errorf("%d of %d scenario(s) invalid", invalid, len(reports))
		}
	}

	if invalid > 0 {
		return cli.Exit("", 1)
	}
	return nil
}
