package messaging

import (
	"slices"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Subscriber keeps the messages that match its interests from every
// publisher it has subscribed to. A subscriber with no interests accepts
// every message.
type Subscriber struct {
	name string
	log  zerolog.Logger

	mu        sync.RWMutex
	interests map[string]struct{}
	inbox     []Message
}

// NewSubscriber creates a subscriber with no interests and an empty inbox.
func NewSubscriber(name string) *Subscriber {
	return &Subscriber{
		name:      name,
		log:       zerolog.Nop(),
		interests: make(map[string]struct{}),
	}
}

// WithLogger sets the logger used for filtering diagnostics.
func (s *Subscriber) WithLogger(log zerolog.Logger) *Subscriber {
	s.log = log.With().Str("subscriber", s.name).Logger()
	return s
}

// Name returns the subscriber's name.
func (s *Subscriber) Name() string {
	return s.name
}

// AddInterest adds messageType to the interest set. Adding a type that is
// already present does nothing.
func (s *Subscriber) AddInterest(messageType string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.interests[messageType]; ok {
		return
	}
	s.interests[messageType] = struct{}{}
	s.log.Debug().Str("type", messageType).Msg("interest added")
}

// Interests returns the interest set in sorted order.
func (s *Subscriber) Interests() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.interests))
	for t := range s.interests {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// SubscribeTo registers this subscriber with p. Subscribing twice to the
// same publisher registers twice and doubles delivery.
func (s *Subscriber) SubscribeTo(p Subscribable) {
	p.AddListener(s)
}

// UnsubscribeFrom removes one registration of this subscriber from p.
func (s *Subscriber) UnsubscribeFrom(p Subscribable) bool {
	return p.RemoveListener(s)
}

// Accepts reports whether a message of the given type passes the filter.
func (s *Subscriber) Accepts(messageType string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.acceptsLocked(messageType)
}

func (s *Subscriber) acceptsLocked(messageType string) bool {
	if len(s.interests) == 0 {
		return true
	}
	_, ok := s.interests[messageType]
	return ok
}

// Deliver implements Receiver. Messages outside the interest set are
// dropped silently.
func (s *Subscriber) Deliver(msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.acceptsLocked(msg.Type) {
		s.log.Debug().Str("type", msg.Type).Str("message_id", msg.ID).Msg("message filtered")
		return nil
	}

	s.inbox = append(s.inbox, msg)
	return nil
}

// ReceivedMessages returns the accepted messages in receipt order.
func (s *Subscriber) ReceivedMessages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.inbox)
}
