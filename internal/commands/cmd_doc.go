package commands

import (
	"context"
	"embed"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

//go:embed docs/*.md
var docsFS embed.FS

const docWrap = 80

type DocCmd struct {
	flags *Flags
	raw   bool
}

func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "doc",
		Usage: "Show documentation",
		Description: `Access documentation for broadcast.

Use 'broadcast doc concepts' to learn how interests and subscriptions work.
Use 'broadcast doc scenarios' to see the scenario file format.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print markdown without rendering",
				Destination: &cmd.raw,
			},
		},
		Commands: []*cli.Command{
			cmd.topicCmd("concepts", "Explain publishers, subscribers and interests"),
			cmd.topicCmd("scenarios", "Describe the scenario file format"),
		},
	})
	return app
}

func (cmd *DocCmd) topicCmd(name, usage string) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Action: func(_ context.Context, c *cli.Command) error {
			return cmd.print(c.Root().Writer, name)
		},
	}
}

func (cmd *DocCmd) print(w io.Writer, topic string) error {
	md, err := docsFS.ReadFile("docs/" + topic + ".md")
	if err != nil {
		return fmt.Errorf("unknown topic %q", topic)
	}

	if cmd.raw || !isTTY(w) {
		_, err = w.Write(md)
		return err
	}

	out, err := renderMarkdown(string(md), docWrap)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func renderMarkdown(md string, width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("tokyo-night"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
