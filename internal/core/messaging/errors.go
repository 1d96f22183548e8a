package messaging

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a caller supplies an unusable name,
	// content, or message type.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrListenerFailed is matched by every error returned from a failed
	// delivery during Publish.
	ErrListenerFailed = errors.New("listener failed")
)

// ListenerError describes the listener that aborted a publish. Listeners
// registered after it were not notified.
type ListenerError struct {
	Listener Receiver
	Index    int
	Message  Message
	Err      error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("%s: listener %d rejected message %s: %v", ErrListenerFailed, e.Index, e.Message.ID, e.Err)
}

// Is reports whether target is ErrListenerFailed.
func (e *ListenerError) Is(target error) bool {
	return target == ErrListenerFailed
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}
