package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hay-kot/broadcast/internal/core/messaging"
)

// Event records the outcome of a single step.
type Event struct {
	Index      int                `json:"index"`
	Kind       StepKind           `json:"kind"`
	Label      string             `json:"label,omitempty"`
	Publisher  string             `json:"publisher,omitempty"`
	Subscriber string             `json:"subscriber,omitempty"`
	Type       string             `json:"type,omitempty"`
	Message    *messaging.Message `json:"message,omitempty"`
	// Recipients lists every subscriber whose inbox grew, in declaration
	// order. A subscriber registered twice appears twice.
	Recipients []string `json:"recipients,omitempty"`
	// Removed is set for unsubscribe steps that found a registration.
	Removed bool `json:"removed,omitempty"`
}

// PublisherResult is the final state of a publisher.
type PublisherResult struct {
	Name    string   `json:"name"`
	History []string `json:"history"`
}

// SubscriberResult is the final state of a subscriber.
type SubscriberResult struct {
	Name      string              `json:"name"`
	Interests []string            `json:"interests"`
	Inbox     []messaging.Message `json:"inbox"`
}

// Result is the outcome of a scenario run.
type Result struct {
	RunID       string             `json:"run_id"`
	Name        string             `json:"name"`
	Events      []Event            `json:"events"`
	Publishers  []PublisherResult  `json:"publishers"`
	Subscribers []SubscriberResult `json:"subscribers"`
}

// Subscriber returns the result for the named subscriber.
func (r *Result) Subscriber(name string) (SubscriberResult, bool) {
	for _, s := range r.Subscribers {
		if s.Name == name {
			return s, true
		}
	}
	return SubscriberResult{}, false
}

// Publisher returns the result for the named publisher.
func (r *Result) Publisher(name string) (PublisherResult, bool) {
	for _, p := range r.Publishers {
		if p.Name == name {
			return p, true
		}
	}
	return PublisherResult{}, false
}

// Runner executes scenarios.
type Runner struct {
	log zerolog.Logger
	now func() time.Time
}

// NewRunner creates a new Runner.
func NewRunner(log zerolog.Logger) *Runner {
	return &Runner{log: log, now: time.Now}
}

// WithClock sets the time source handed to every publisher.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// run holds the live objects of a single execution.
type run struct {
	log         zerolog.Logger
	publishers  map[string]*messaging.Publisher
	subscribers map[string]*messaging.Subscriber
	// order of declaration, for stable results
	pubOrder []string
	subOrder []string
}

// Run validates sc, wires its publishers and subscribers, then executes each
// step in order. The context is checked between steps.
func (r *Runner) Run(ctx context.Context, sc Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("validate scenario: %w", err)
	}

	runID := uuid.NewString()
	log := r.log.With().Str("run_id", runID).Str("scenario", sc.Name).Logger()
	log.Info().Int("steps", len(sc.Steps)).Msg("starting scenario")

	rn := &run{
		log:         log,
		publishers:  make(map[string]*messaging.Publisher, len(sc.Publishers)),
		subscribers: make(map[string]*messaging.Subscriber, len(sc.Subscribers)),
	}

	for _, name := range sc.Publishers {
		rn.publishers[name] = messaging.NewPublisher(name).
			WithLogger(log).
			WithClock(r.now)
		rn.pubOrder = append(rn.pubOrder, name)
	}

	for _, spec := range sc.Subscribers {
		sub := messaging.NewSubscriber(spec.Name).WithLogger(log)
		for _, interest := range spec.Interests {
			sub.AddInterest(interest)
		}
		rn.subscribers[spec.Name] = sub
		rn.subOrder = append(rn.subOrder, spec.Name)
	}

	// Subscriptions are wired after every subscriber exists so registration
	// order follows declaration order.
	for _, spec := range sc.Subscribers {
		for _, pub := range spec.Subscribe {
			rn.subscribers[spec.Name].SubscribeTo(rn.publishers[pub])
			log.Debug().Str("subscriber", spec.Name).Str("publisher", pub).Msg("subscribed")
		}
	}

	result := &Result{RunID: runID, Name: sc.Name}

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ev, err := rn.apply(i, step)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		result.Events = append(result.Events, ev)
	}

	for _, name := range rn.pubOrder {
		result.Publishers = append(result.Publishers, PublisherResult{
			Name:    name,
			History: rn.publishers[name].History(),
		})
	}

	for _, name := range rn.subOrder {
		sub := rn.subscribers[name]
		result.Subscribers = append(result.Subscribers, SubscriberResult{
			Name:      name,
			Interests: sub.Interests(),
			Inbox:     sub.ReceivedMessages(),
		})
	}

	log.Info().Int("events", len(result.Events)).Msg("scenario complete")
	return result, nil
}

func (rn *run) apply(i int, step Step) (Event, error) {
	ev := Event{Index: i, Kind: step.Kind(), Label: step.Label}

	switch ev.Kind {
	case KindPublish:
		a := step.Publish
		ev.Publisher, ev.Type = a.Publisher, a.Type

		before := rn.inboxSizes()
		msg, err := rn.publishers[a.Publisher].Publish(a.Content, a.Type)
		if err != nil {
			return ev, fmt.Errorf("publish: %w", err)
		}
		ev.Message = &msg
		ev.Recipients = rn.recipients(before)

		rn.log.Debug().
			Str("publisher", a.Publisher).
			Strs("recipients", ev.Recipients).
			Msg("message delivered")

	case KindSubscribe:
		a := step.Subscribe
		ev.Publisher, ev.Subscriber = a.Publisher, a.Subscriber
		rn.subscribers[a.Subscriber].SubscribeTo(rn.publishers[a.Publisher])

	case KindUnsubscribe:
		a := step.Unsubscribe
		ev.Publisher, ev.Subscriber = a.Publisher, a.Subscriber
		ev.Removed = rn.subscribers[a.Subscriber].UnsubscribeFrom(rn.publishers[a.Publisher])
		if !ev.Removed {
			rn.log.Warn().
				Str("subscriber", a.Subscriber).
				Str("publisher", a.Publisher).
				Msg("unsubscribe found no registration")
		}

	case KindInterest:
		a := step.Interest
		ev.Subscriber, ev.Type = a.Subscriber, a.Type
		rn.subscribers[a.Subscriber].AddInterest(a.Type)

	default:
		return ev, fmt.Errorf("%w: step has no single action", messaging.ErrInvalidArgument)
	}

	return ev, nil
}

func (rn *run) inboxSizes() map[string]int {
	sizes := make(map[string]int, len(rn.subscribers))
	for name, sub := range rn.subscribers {
		sizes[name] = len(sub.ReceivedMessages())
	}
	return sizes
}

// recipients compares inbox sizes against before. Subscribers are listed in
// declaration order, repeated once per delivered copy.
func (rn *run) recipients(before map[string]int) []string {
	var out []string
	for _, name := range rn.subOrder {
		grew := len(rn.subscribers[name].ReceivedMessages()) - before[name]
		for range grew {
			out = append(out, name)
		}
	}
	return out
}
