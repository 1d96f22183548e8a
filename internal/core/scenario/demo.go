package scenario

import (
	"bytes"
	_ "embed"
	"fmt"
)

//go:embed demo.yaml
var demoYAML []byte

// Demo returns the built-in demonstration scenario.
func Demo() Scenario {
	sc, err := Parse(demoYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded demo scenario: %v", err))
	}
	return sc
}

// DemoYAML returns the source of the built-in scenario, useful as a
// starting point for custom scenario files.
func DemoYAML() []byte {
	return bytes.Clone(demoYAML)
}
