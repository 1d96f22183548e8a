package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/term"

	"github.com/hay-kot/broadcast/internal/core/scenario"
)

const (
	formatText = "text"
	formatJSON = "json"

	// stdinName is the display name for a scenario read from stdin.
	stdinName = "<stdin>"
)

// scenarioInput is a decoded scenario and where it came from. Err is set
// when the source could not be read or decoded.
type scenarioInput struct {
	Source   string
	Scenario scenario.Scenario
	Err      error
}

// expandPatterns resolves glob patterns to file paths, preserving pattern
// order and dropping duplicates. A pattern that matches nothing is an error.
func expandPatterns(patterns []string) ([]string, error) {
	var (
		files []string
		seen  = make(map[string]bool)
	)

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no scenario files match %q", pattern)
		}

		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}

	return files, nil
}

// readScenarios resolves the scenario inputs for a command. Explicit patterns
// win, then the configured defaults, then piped stdin. A source that fails to
// load is returned with Err set so callers can report every file.
func readScenarios(patterns, defaults []string, stdin *os.File) ([]scenarioInput, error) {
	if len(patterns) == 0 {
		patterns = defaults
	}

	if len(patterns) == 0 {
		if term.IsTerminal(int(stdin.Fd())) {
			return nil, fmt.Errorf("no scenario provided (stdin is a terminal); use -f flag, configure scenarios, or pipe YAML input")
		}
		sc, err := decodeScenario(stdin)
		return []scenarioInput{{Source: stdinName, Scenario: sc, Err: err}}, nil
	}

	files, err := expandPatterns(patterns)
	if err != nil {
		return nil, err
	}

	inputs := make([]scenarioInput, 0, len(files))
	for _, f := range files {
		sc, err := scenario.Load(f)
		inputs = append(inputs, scenarioInput{Source: f, Scenario: sc, Err: err})
	}

	return inputs, nil
}

func decodeScenario(r io.Reader) (scenario.Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return scenario.Scenario{}, fmt.Errorf("read stdin: %w", err)
	}
	return scenario.Parse(data)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format %q (use text or json)", format)
	}
}
