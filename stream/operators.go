// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"github.com/joamaki/pushstream/lifeline"
)

type mapObserver[T, U, E any] struct {
	observer Observer[U, E]
	apply    func(T) U
}

func (m *mapObserver[T, U, E]) OnNext(item T) { m.observer.OnNext(m.apply(item)) }
func (m *mapObserver[T, U, E]) OnCompleted()  { m.observer.OnCompleted() }
func (m *mapObserver[T, U, E]) OnError(err E) { m.observer.OnError(err) }

// Map applies a function onto each item of an observable. Completion and
// errors pass through unchanged. 'apply' is called once per item.
func Map[T, U, E any](src Observable[T, E], apply func(T) U) Observable[U, E] {
	return FuncObservable[U, E](
		func(observer Observer[U, E]) Subscription {
			return src.Subscribe(&mapObserver[T, U, E]{observer, apply})
		})
}

type mapErrorObserver[T, E, F any] struct {
	observer Observer[T, F]
	apply    func(E) F
}

func (m *mapErrorObserver[T, E, F]) OnNext(item T) { m.observer.OnNext(item) }
func (m *mapErrorObserver[T, E, F]) OnCompleted()  { m.observer.OnCompleted() }
func (m *mapErrorObserver[T, E, F]) OnError(err E) { m.observer.OnError(m.apply(err)) }

// MapError applies a function to the error of a failing observable. Items and
// completion pass through unchanged.
//
// Every subscription gets its own use of 'apply', so it is called once per
// failed subscription rather than once per observable.
func MapError[T, E, F any](src Observable[T, E], apply func(E) F) Observable[T, F] {
	return FuncObservable[T, F](
		func(observer Observer[T, F]) Subscription {
			return src.Subscribe(&mapErrorObserver[T, E, F]{observer, apply})
		})
}

type continueWithObserver[T, E any] struct {
	observer Observer[T, E]
	next     Observable[T, E]
	slot     *lifeline.Owner[Subscription]
}

func (c *continueWithObserver[T, E]) OnNext(item T) { c.observer.OnNext(item) }
func (c *continueWithObserver[T, E]) OnError(err E) { c.observer.OnError(err) }

func (c *continueWithObserver[T, E]) OnCompleted() {
	// Combined subscription already released, nothing to continue into.
	if !c.slot.Alive() {
		return
	}
	sub := c.next.Subscribe(c.observer)
	stored := c.slot.WithMut(func(slot *Subscription) { *slot = sub })
	if !stored {
		// Released while 'next' was being subscribed.
		sub.Unsubscribe()
	}
}

type continueWithSubscription struct {
	source Subscription
	next   *lifeline.Lifeline[Subscription]
}

func (c *continueWithSubscription) Unsubscribe() {
	if sub, ok := c.next.Release(); ok && sub != nil {
		sub.Unsubscribe()
	}
	if c.source != nil {
		c.source.Unsubscribe()
		c.source = nil
	}
}

// ContinueWith joins two observables sequentially. The items of 'src' are
// emitted first and when it completes 'next' is subscribed to and its items
// and terminal notification follow. If 'src' fails the error is emitted and
// 'next' is never subscribed to.
//
// Unsubscribing releases both the subscription to 'src' and, if it exists,
// the subscription to 'next'.
func ContinueWith[T, E any](src, next Observable[T, E]) Observable[T, E] {
	return FuncObservable[T, E](
		func(observer Observer[T, E]) Subscription {
			life, owner := lifeline.New[Subscription](nil)
			sub := &continueWithSubscription{next: life}
			sub.source = src.Subscribe(&continueWithObserver[T, E]{observer, next, owner})
			return sub
		})
}

// Concat takes one or more observables of the same type and emits the items
// from each of them in order. It is ContinueWith folded over 'srcs'.
func Concat[T, E any](srcs ...Observable[T, E]) Observable[T, E] {
	if len(srcs) == 0 {
		return Empty[T, E]()
	}
	out := srcs[len(srcs)-1]
	for i := len(srcs) - 2; i >= 0; i-- {
		out = ContinueWith(srcs[i], out)
	}
	return out
}
