// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"testing"
)

//
// Test helpers
//

func assertSlice[T comparable](t *testing.T, what string, expected []T, actual []T) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Fatalf("assertSlice[%s]: expected %d items, got %d (%v)", what, len(expected), len(actual), actual)
	}
	for i := range expected {
		if expected[i] != actual[i] {
			t.Fatalf("assertSlice[%s]: at index %d, expected %v, got %v", what, i, expected[i], actual[i])
		}
	}
}

// recorder is an observer that records every notification and fails the
// test if anything arrives after a terminal notification.
type recorder[T, E any] struct {
	t         *testing.T
	items     []T
	completed bool
	failed    bool
	err       E
}

func newRecorder[T, E any](t *testing.T) *recorder[T, E] {
	return &recorder[T, E]{t: t, items: []T{}}
}

func (r *recorder[T, E]) checkOpen(what string) {
	r.t.Helper()
	if r.completed || r.failed {
		r.t.Fatalf("recorder: %s after terminal notification", what)
	}
}

func (r *recorder[T, E]) OnNext(item T) {
	r.checkOpen("OnNext")
	r.items = append(r.items, item)
}

func (r *recorder[T, E]) OnCompleted() {
	r.checkOpen("OnCompleted")
	r.completed = true
}

func (r *recorder[T, E]) OnError(err E) {
	r.checkOpen("OnError")
	r.failed = true
	r.err = err
}

func (r *recorder[T, E]) assertCompleted(what string) {
	r.t.Helper()
	if !r.completed || r.failed {
		r.t.Fatalf("%s: expected completion, got completed=%v failed=%v (err %v)", what, r.completed, r.failed, r.err)
	}
}

func (r *recorder[T, E]) assertFailed(what string) {
	r.t.Helper()
	if !r.failed || r.completed {
		r.t.Fatalf("%s: expected failure, got completed=%v failed=%v", what, r.completed, r.failed)
	}
}

func (r *recorder[T, E]) assertOpen(what string) {
	r.t.Helper()
	if r.completed || r.failed {
		r.t.Fatalf("%s: expected no terminal notification, got completed=%v failed=%v", what, r.completed, r.failed)
	}
}

// countingObservable wraps 'src' and counts the calls to Subscribe.
type countingObservable[T, E any] struct {
	src        Observable[T, E]
	subscribes int
}

func (c *countingObservable[T, E]) Subscribe(observer Observer[T, E]) Subscription {
	c.subscribes++
	return c.src.Subscribe(observer)
}

// countingSubscription counts the calls to Unsubscribe.
type countingSubscription struct {
	unsubscribes int
}

func (c *countingSubscription) Unsubscribe() {
	c.unsubscribes++
}

func assertPanics(t *testing.T, what string, f func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatalf("%s: expected panic", what)
		}
	}()
	f()
	return nil
}
