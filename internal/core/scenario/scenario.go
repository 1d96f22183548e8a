// Package scenario describes scripted publish/subscribe runs and executes
// them against the messaging core.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/broadcast/internal/core/messaging"
	"github.com/hay-kot/broadcast/internal/core/validate"
)

// StepKind identifies the action performed by a step.
type StepKind string

const (
	KindPublish     StepKind = "publish"
	KindSubscribe   StepKind = "subscribe"
	KindUnsubscribe StepKind = "unsubscribe"
	KindInterest    StepKind = "interest"
)

// Scenario is a set of publishers and subscribers plus the steps to run
// against them.
type Scenario struct {
	Name        string           `yaml:"name" json:"name"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
	Publishers  []string         `yaml:"publishers" json:"publishers"`
	Subscribers []SubscriberSpec `yaml:"subscribers" json:"subscribers"`
	Steps       []Step           `yaml:"steps" json:"steps"`
}

// SubscriberSpec declares a subscriber, its initial interests and the
// publishers it subscribes to before the first step runs.
type SubscriberSpec struct {
	Name      string   `yaml:"name" json:"name"`
	Interests []string `yaml:"interests,omitempty" json:"interests,omitempty"`
	Subscribe []string `yaml:"subscribe,omitempty" json:"subscribe,omitempty"`
}

// Step performs exactly one action.
type Step struct {
	Label       string          `yaml:"label,omitempty" json:"label,omitempty"`
	Publish     *PublishAction  `yaml:"publish,omitempty" json:"publish,omitempty"`
	Subscribe   *LinkAction     `yaml:"subscribe,omitempty" json:"subscribe,omitempty"`
	Unsubscribe *LinkAction     `yaml:"unsubscribe,omitempty" json:"unsubscribe,omitempty"`
	Interest    *InterestAction `yaml:"interest,omitempty" json:"interest,omitempty"`
}

// PublishAction publishes a message from a publisher.
type PublishAction struct {
	Publisher string `yaml:"publisher" json:"publisher"`
	Content   string `yaml:"content" json:"content"`
	Type      string `yaml:"type" json:"type"`
}

// LinkAction subscribes or unsubscribes a subscriber to a publisher.
type LinkAction struct {
	Subscriber string `yaml:"subscriber" json:"subscriber"`
	Publisher  string `yaml:"publisher" json:"publisher"`
}

// InterestAction adds an interest to a subscriber.
type InterestAction struct {
	Subscriber string `yaml:"subscriber" json:"subscriber"`
	Type       string `yaml:"type" json:"type"`
}

// Kind returns the action of the step, or "" if the step has none or more
// than one.
func (s Step) Kind() StepKind {
	kinds := s.kinds()
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// actions counts the non-nil actions of the step.
func (s Step) actions() int {
	return len(s.kinds())
}

func (s Step) kinds() []StepKind {
	var kinds []StepKind
	if s.Publish != nil {
		kinds = append(kinds, KindPublish)
	}
	if s.Subscribe != nil {
		kinds = append(kinds, KindSubscribe)
	}
	if s.Unsubscribe != nil {
		kinds = append(kinds, KindUnsubscribe)
	}
	if s.Interest != nil {
		kinds = append(kinds, KindInterest)
	}
	return kinds
}

// Parse decodes a scenario from YAML. Unknown keys are rejected.
func Parse(data []byte) (Scenario, error) {
	var sc Scenario

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	return sc, nil
}

// Load reads and decodes a scenario file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario file: %w", err)
	}

	sc, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Validate checks names, references and step shapes. The returned error
// wraps messaging.ErrInvalidArgument and a criterio.FieldErrors.
func (sc Scenario) Validate() error {
	var errs criterio.FieldErrorsBuilder

	publishers := make(map[string]bool, len(sc.Publishers))
	for i, name := range sc.Publishers {
		field := fmt.Sprintf("publishers[%d]", i)
		if err := validate.Name(name); err != nil {
			errs = errs.Append(field, err)
			continue
		}
		if publishers[name] {
			errs = errs.Append(field, fmt.Errorf("duplicate publisher %q", name))
			continue
		}
		publishers[name] = true
	}

	subscribers := make(map[string]bool, len(sc.Subscribers))
	for i, sub := range sc.Subscribers {
		field := fmt.Sprintf("subscribers[%d]", i)
		if err := validate.Name(sub.Name); err != nil {
			errs = errs.Append(field+".name", err)
		} else if subscribers[sub.Name] {
			errs = errs.Append(field+".name", fmt.Errorf("duplicate subscriber %q", sub.Name))
		} else {
			subscribers[sub.Name] = true
		}

		for j, interest := range sub.Interests {
			if err := validate.MessageType(interest); err != nil {
				errs = errs.Append(fmt.Sprintf("%s.interests[%d]", field, j), err)
			}
		}

		for j, pub := range sub.Subscribe {
			if !publishers[pub] {
				errs = errs.Append(fmt.Sprintf("%s.subscribe[%d]", field, j), fmt.Errorf("unknown publisher %q", pub))
			}
		}
	}

	checkPublisher := func(field, name string) {
		if !publishers[name] {
			errs = errs.Append(field, fmt.Errorf("unknown publisher %q", name))
		}
	}
	checkSubscriber := func(field, name string) {
		if !subscribers[name] {
			errs = errs.Append(field, fmt.Errorf("unknown subscriber %q", name))
		}
	}

	for i, step := range sc.Steps {
		field := fmt.Sprintf("steps[%d]", i)

		if n := step.actions(); n != 1 {
			errs = errs.Append(field, fmt.Errorf("step must have exactly one action, found %d", n))
			continue
		}

		switch step.Kind() {
		case KindPublish:
			checkPublisher(field+".publish.publisher", step.Publish.Publisher)
			if err := validate.MessageType(step.Publish.Type); err != nil {
				errs = errs.Append(field+".publish.type", err)
			}
		case KindSubscribe:
			checkSubscriber(field+".subscribe.subscriber", step.Subscribe.Subscriber)
			checkPublisher(field+".subscribe.publisher", step.Subscribe.Publisher)
		case KindUnsubscribe:
			checkSubscriber(field+".unsubscribe.subscriber", step.Unsubscribe.Subscriber)
			checkPublisher(field+".unsubscribe.publisher", step.Unsubscribe.Publisher)
		case KindInterest:
			checkSubscriber(field+".interest.subscriber", step.Interest.Subscriber)
			if err := validate.MessageType(step.Interest.Type); err != nil {
				errs = errs.Append(field+".interest.type", err)
			}
		}
	}

	if err := errs.ToError(); err != nil {
		return fmt.Errorf("%w: %w", messaging.ErrInvalidArgument, err)
	}
	return nil
}
