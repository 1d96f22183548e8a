package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/broadcast/internal/core/scenario"
	"github.com/hay-kot/broadcast/internal/printer"
)

type RunCmd struct {
	flags  *Flags
	files  []string
	format string
}

// NewRunCmd creates a new run command.
func NewRunCmd(flags *Flags) *RunCmd {
	return &RunCmd{flags: flags}
}

// Register adds the run command to the application.
func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Run scenario files",
		UsageText: "broadcast run [options]",
		Description: `Runs one or more scenario files and prints a transcript for each.

Files are selected with --file, which accepts glob patterns (including **).
When --file is not set, the scenarios patterns from the config are used.
When neither is set, a single scenario is read from stdin.

Example:
  broadcast run -f scenarios/news.yaml
  broadcast run -f 'scenarios/**/*.yaml' --format json
  broadcast demo --print | broadcast run`,
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

func (cmd *RunCmd) run(ctx context.Context, c *cli.Command) error {
	if err := validateFormat(cmd.format); err != nil {
		return err
	}

	inputs, err := readScenarios(cmd.files, cmd.flags.Config.Scenarios, os.Stdin)
	if err != nil {
		return err
	}

	results := make([]*scenario.Result, 0, len(inputs))
	for _, in := range inputs {
		if in.Err != nil {
			return in.Err
		}

		log.Debug().Str("source", in.Source).Str("scenario", in.Scenario.Name).Msg("running scenario")

		res, err := cmd.flags.Runner.Run(ctx, in.Scenario)
		if err != nil {
			return fmt.Errorf("%s: %w", in.Source, err)
		}
		results = append(results, res)
	}

	w := c.Root().Writer
	if cmd.format == formatJSON {
		return writeJSON(w, results)
	}

	tc := cmd.flags.Config.Transcript
	p := printer.NewWithColor(w, tc.Color)
	for i, res := range results {
		if i > 0 {
			p.Divider()
		}
		p.Transcript(res, tc)
	}
	return nil
}
