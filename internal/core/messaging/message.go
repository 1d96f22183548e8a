package messaging

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the clock format used when rendering a message.
const TimeLayout = "15:04:05"

// Message represents a single item emitted by a publisher.
// Two messages with identical fields are still distinct; ID carries identity.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message stamped with the current time.
func NewMessage(content, messageType, sender string) Message {
	return NewMessageAt(content, messageType, sender, time.Now())
}

// NewMessageAt creates a message captured at the given time.
func NewMessageAt(content, messageType, sender string, at time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Content:   content,
		Type:      messageType,
		Sender:    sender,
		Timestamp: at,
	}
}

// String renders the message as "[HH:MM:SS] sender (type): content".
func (m Message) String() string {
	return fmt.Sprintf("[%s] %s (%s): %s", m.Timestamp.Format(TimeLayout), m.Sender, m.Type, m.Content)
}
