// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

// Package scenario loads and replays scripted sequences of notifications
// pushed into a Subject with a set of transformed subscribers.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is the contents of a scenario file.
type Scenario struct {
	// Rate is the number of events replayed per second. Zero replays
	// the events as fast as possible.
	Rate float64 `yaml:"rate,omitempty"`

	// Burst is the number of events that may be replayed at once when
	// Rate is set. Defaults to 1.
	Burst int `yaml:"burst,omitempty"`

	Subscribers []Subscriber `yaml:"subscribers"`
	Events      []Event      `yaml:"events"`
}

// Subscriber describes one observer of the subject and the operators
// between the two.
type Subscriber struct {
	Name string `yaml:"name"`

	// Lazy subscribers are only subscribed by a 'subscribe' event.
	Lazy bool `yaml:"lazy,omitempty"`

	// Scale multiplies every item (Map).
	Scale int `yaml:"scale,omitempty"`

	// ErrorPrefix wraps the error of the subject (MapError).
	ErrorPrefix string `yaml:"errorPrefix,omitempty"`

	// Then lists items emitted after the subject completes (ContinueWith).
	Then []int `yaml:"then,omitempty"`
}

// Event is a single step of the scenario. Exactly one field is set.
type Event struct {
	Next        *int   `yaml:"next,omitempty"`
	Complete    bool   `yaml:"complete,omitempty"`
	Error       string `yaml:"error,omitempty"`
	Subscribe   string `yaml:"subscribe,omitempty"`
	Unsubscribe string `yaml:"unsubscribe,omitempty"`
}

func (e Event) String() string {
	switch {
	case e.Next != nil:
		return fmt.Sprintf("next %d", *e.Next)
	case e.Complete:
		return "complete"
	case e.Error != "":
		return "error " + e.Error
	case e.Subscribe != "":
		return "subscribe " + e.Subscribe
	case e.Unsubscribe != "":
		return "unsubscribe " + e.Unsubscribe
	}
	return "<empty>"
}

func (e Event) terminal() bool {
	return e.Complete || e.Error != ""
}

func (e Event) fieldsSet() int {
	n := 0
	for _, set := range []bool{e.Next != nil, e.Complete, e.Error != "", e.Subscribe != "", e.Unsubscribe != ""} {
		if set {
			n++
		}
	}
	return n
}

// Load reads and validates the scenario file at 'path'.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if sc.Burst == 0 {
		sc.Burst = 1
	}
	sc.normalize()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// normalize strips the surrounding whitespace from subscriber names and the
// names referenced by events.
func (sc *Scenario) normalize() {
	for i := range sc.Subscribers {
		sc.Subscribers[i].Name = strings.TrimSpace(sc.Subscribers[i].Name)
	}
	for i := range sc.Events {
		ev := &sc.Events[i]
		ev.Subscribe = strings.TrimSpace(ev.Subscribe)
		ev.Unsubscribe = strings.TrimSpace(ev.Unsubscribe)
	}
}

// Validate checks that the scenario can be replayed: names are unique and
// known, subscriptions are only toggled when that makes sense and nothing
// follows the terminal event.
func (sc *Scenario) Validate() error {
	if sc.Rate < 0 {
		return fmt.Errorf("%w: negative rate %v", ErrInvalidScenario, sc.Rate)
	}
	if sc.Burst < 0 {
		return fmt.Errorf("%w: negative burst %d", ErrInvalidScenario, sc.Burst)
	}

	subscribed := make(map[string]bool, len(sc.Subscribers))
	for _, sub := range sc.Subscribers {
		name := sub.Name
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: subscriber without a name", ErrInvalidScenario)
		}
		if strings.TrimSpace(name) != name {
			return fmt.Errorf("%w: subscriber name %q has surrounding whitespace", ErrInvalidScenario, name)
		}
		if _, dup := subscribed[name]; dup {
			return fmt.Errorf("%w: duplicate subscriber %q", ErrInvalidScenario, name)
		}
		subscribed[name] = !sub.Lazy
	}

	terminated := false
	for i, ev := range sc.Events {
		if n := ev.fieldsSet(); n != 1 {
			return fmt.Errorf("%w: event %d: expected exactly one action, got %d", ErrInvalidScenario, i, n)
		}
		if terminated {
			return fmt.Errorf("%w: event %d (%s): follows the terminal event", ErrInvalidScenario, i, ev)
		}
		switch {
		case ev.Subscribe != "":
			active, ok := subscribed[ev.Subscribe]
			if !ok {
				return fmt.Errorf("%w: event %d: unknown subscriber %q", ErrInvalidScenario, i, ev.Subscribe)
			}
			if active {
				return fmt.Errorf("%w: event %d: %q is already subscribed", ErrInvalidScenario, i, ev.Subscribe)
			}
			subscribed[ev.Subscribe] = true
		case ev.Unsubscribe != "":
			if _, ok := subscribed[ev.Unsubscribe]; !ok {
				return fmt.Errorf("%w: event %d: unknown subscriber %q", ErrInvalidScenario, i, ev.Unsubscribe)
			}
			subscribed[ev.Unsubscribe] = false
		case ev.terminal():
			terminated = true
		}
	}
	return nil
}
