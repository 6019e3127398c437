// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package scenario

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func assertNil(t *testing.T, what string, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error in %s: %s", what, err)
	}
}

func assertOutput(t *testing.T, what string, expected []string, actual string) {
	t.Helper()
	lines := strings.Split(strings.TrimSuffix(actual, "\n"), "\n")
	if actual == "" {
		lines = nil
	}
	if len(lines) != len(expected) {
		t.Fatalf("%s: expected %d lines, got %d:\n%s", what, len(expected), len(lines), actual)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Fatalf("%s: at line %d, expected %q, got %q", what, i, expected[i], lines[i])
		}
	}
}

func TestLoadAndRun(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "basic.yaml"))
	assertNil(t, "Load", err)
	if sc.Burst != 1 {
		t.Fatalf("expected default burst 1, got %d", sc.Burst)
	}

	var out bytes.Buffer
	assertNil(t, "Run", Run(context.Background(), sc, &out))
	assertOutput(t, "Run", []string{
		"raw next 1",
		"doubled next 2",
		"tagged next 1",
		"doubled next 4",
		"tagged next 2",
		"late next 2",
		"doubled completed",
		"tagged completed",
		"late next 100",
		"late completed",
	}, out.String())
}

func TestRunError(t *testing.T) {
	sc, err := Parse([]byte(`
subscribers:
  - name: plain
  - name: tagged
    errorPrefix: tagged
  - name: continued
    then: [1, 2]
events:
  - next: 7
  - error: boom
`))
	assertNil(t, "Parse", err)

	var out bytes.Buffer
	assertNil(t, "Run", Run(context.Background(), sc, &out))
	assertOutput(t, "Run", []string{
		"plain next 7",
		"tagged next 7",
		"continued next 7",
		"plain error boom",
		"tagged error tagged: boom",
		"continued error boom",
	}, out.String())
}

func TestRunPaced(t *testing.T) {
	sc := &Scenario{
		Rate:        1000,
		Burst:       2,
		Subscribers: []Subscriber{{Name: "s"}},
		Events:      []Event{{Next: new(int)}, {Next: new(int)}, {Complete: true}},
	}

	// 1. paced run completes
	var out bytes.Buffer
	assertNil(t, "case 1", Run(context.Background(), sc, &out))
	assertOutput(t, "case 1", []string{"s next 0", "s next 0", "s completed"}, out.String())

	// 2. cancelled context stops the replay
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out.Reset()
	err := Run(ctx, sc, &out)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("case 2: expected Canceled error, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("case 2: expected no output, got %q", out.String())
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"unknown field": `
subscribers: [{name: a, bogus: 1}]
`,
		"missing name": `
subscribers: [{scale: 2}]
`,
		"duplicate name": `
subscribers: [{name: a}, {name: a}]
`,
		"two actions": `
subscribers: [{name: a}]
events: [{next: 1, complete: true}]
`,
		"empty event": `
subscribers: [{name: a}]
events: [{}]
`,
		"after terminal": `
subscribers: [{name: a}]
events: [{complete: true}, {next: 1}]
`,
		"unknown subscriber": `
subscribers: [{name: a}]
events: [{unsubscribe: b}]
`,
		"already subscribed": `
subscribers: [{name: a}]
events: [{subscribe: a}]
`,
		"negative rate": `
rate: -1
subscribers: [{name: a}]
`,
	}
	for what, data := range cases {
		if _, err := Parse([]byte(data)); err == nil {
			t.Fatalf("%s: expected error", what)
		}
	}

	// Validation errors are marked with ErrInvalidScenario.
	_, err := Parse([]byte(cases["after terminal"]))
	if !errors.Is(err, ErrInvalidScenario) {
		t.Fatalf("expected ErrInvalidScenario, got %v", err)
	}

	// Resubscribing after unsubscribing is fine.
	_, err = Parse([]byte(`
subscribers: [{name: a, lazy: true}]
events: [{subscribe: a}, {unsubscribe: a}, {subscribe: a}]
`))
	assertNil(t, "resubscribe", err)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRunWriteError(t *testing.T) {
	sc := &Scenario{
		Subscribers: []Subscriber{{Name: "s"}},
		Events:      []Event{{Next: new(int)}},
	}
	err := Run(context.Background(), sc, failingWriter{})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected write error, got %v", err)
	}
}

func TestNamesTrimmed(t *testing.T) {
	// 1. names are trimmed when parsed, so events find the subscriber
	sc, err := Parse([]byte(`
subscribers: [{name: "a "}]
events: [{next: 1}, {unsubscribe: a}, {next: 2}]
`))
	assertNil(t, "Parse", err)
	if sc.Subscribers[0].Name != "a" {
		t.Fatalf("case 1: expected name \"a\", got %q", sc.Subscribers[0].Name)
	}
	var out bytes.Buffer
	assertNil(t, "Run", Run(context.Background(), sc, &out))
	assertOutput(t, "case 1", []string{"a next 1"}, out.String())

	// 2. a scenario built in code must not carry untrimmed names
	sc = &Scenario{
		Subscribers: []Subscriber{{Name: "a "}},
		Events:      []Event{{Unsubscribe: "a"}},
	}
	if err := Run(context.Background(), sc, &out); !errors.Is(err, ErrInvalidScenario) {
		t.Fatalf("case 2: expected ErrInvalidScenario, got %v", err)
	}
}
