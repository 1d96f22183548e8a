package messaging

import (
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Publisher originates messages and notifies its registered listeners
// synchronously, in registration order.
type Publisher struct {
	name string
	log  zerolog.Logger
	now  func() time.Time

	// publishMu serializes Publish so history entries never interleave.
	publishMu sync.Mutex

	mu        sync.RWMutex
	listeners []Receiver
	history   []string
}

// NewPublisher creates a publisher with no listeners and an empty history.
func NewPublisher(name string) *Publisher {
	return &Publisher{
		name: name,
		log:  zerolog.Nop(),
		now:  time.Now,
	}
}

// WithLogger sets the logger used for delivery diagnostics.
func (p *Publisher) WithLogger(log zerolog.Logger) *Publisher {
	p.log = log.With().Str("publisher", p.name).Logger()
	return p
}

// WithClock sets the time source used to stamp published messages.
func (p *Publisher) WithClock(now func() time.Time) *Publisher {
	p.now = now
	return p
}

// Name returns the publisher's name.
func (p *Publisher) Name() string {
	return p.name
}

// AddListener registers r at the end of the notification order.
// Duplicates are not filtered.
func (p *Publisher) AddListener(r Receiver) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.listeners = append(p.listeners, r)
}

// RemoveListener removes the most recent registration of r. It returns false
// if r was not registered.
func (p *Publisher) RemoveListener(r Receiver) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := len(p.listeners) - 1; i >= 0; i-- {
		if p.listeners[i] == r {
			p.listeners = slices.Delete(p.listeners, i, i+1)
			return true
		}
	}
	return false
}

// Listeners returns the number of current registrations.
func (p *Publisher) Listeners() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.listeners)
}

// Publish creates a message from this publisher, records it in the history
// and delivers it to every listener registered at the time of the call.
//
// Empty content and type are accepted. If a listener returns an error,
// delivery stops and a *ListenerError is returned; the history entry is kept.
// A listener must not call Publish on the publisher that is delivering to it.
func (p *Publisher) Publish(content, messageType string) (Message, error) {
	p.publishMu.Lock()
	defer p.publishMu.Unlock()

	msg := NewMessageAt(content, messageType, p.name, p.now())

	p.mu.Lock()
	p.history = append(p.history, msg.String())
	listeners := slices.Clone(p.listeners)
	p.mu.Unlock()

	p.log.Debug().
		Str("type", messageType).
		Str("message_id", msg.ID).
		Int("listeners", len(listeners)).
		Msg("publishing message")

	if len(listeners) == 0 {
		return msg, nil
	}

	for i, l := range listeners {
		if err := l.Deliver(msg); err != nil {
			p.log.Warn().
				Err(err).
				Int("listener", i).
				Str("message_id", msg.ID).
				Msg("listener failed, aborting delivery")
			return msg, &ListenerError{Listener: l, Index: i, Message: msg, Err: err}
		}
	}

	return msg, nil
}

// History returns the rendered form of every message published so far,
// oldest first.
func (p *Publisher) History() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return slices.Clone(p.history)
}
