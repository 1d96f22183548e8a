// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"
)

// Name validates a publisher or subscriber name is non-empty after trimming
// whitespace.
func Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// MessageType validates a message type or interest is non-empty after
// trimming whitespace.
func MessageType(typ string) error {
	if strings.TrimSpace(typ) == "" {
		return fmt.Errorf("type is required")
	}
	return nil
}
