package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/broadcast/internal/core/scenario"
	"github.com/hay-kot/broadcast/internal/printer"
)

type DemoCmd struct {
	flags  *Flags
	format string
	print  bool
}

// NewDemoCmd creates a new demo command.
func NewDemoCmd(flags *Flags) *DemoCmd {
	return &DemoCmd{flags: flags}
}

// Register adds the demo command to the application.
func (cmd *DemoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "demo",
		Usage:     "Run the built-in news and sports demonstration",
		UsageText: "broadcast demo [options]",
		Description: `Runs the built-in scenario: two publishers (Haber TV, Spor Kanalı) and
three subscribers with different interests. Each test publishes one message
and the transcript shows who received it.

Use --print to output the scenario YAML as a starting point for your own files.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       formatText,
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "print",
				Usage:       "print the demo scenario YAML instead of running it",
				Destination: &cmd.print,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DemoCmd) run(ctx context.Context, c *cli.Command) error {
	w := c.Root().Writer

	if cmd.print {
		_, err := w.Write(scenario.DemoYAML())
		return err
	}

	if err := validateFormat(cmd.format); err != nil {
		return err
	}

	res, err := cmd.flags.Runner.Run(ctx, scenario.Demo())
	if err != nil {
		return fmt.Errorf("run demo: %w", err)
	}

	if cmd.format == formatJSON {
		return writeJSON(w, res)
	}

	tc := cmd.flags.Config.Transcript
	p := printer.NewWithColor(w, tc.Color)
	p.Banner()
	p.Divider()
	p.Transcript(res, tc)
	p.Divider()
	return nil
}
