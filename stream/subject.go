// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"errors"

	"github.com/joamaki/pushstream/lifeline"
)

// ErrSubjectTerminated is the panic value when a Subject is used after
// OnCompleted or OnError.
var ErrSubjectTerminated = errors.New("stream: subject used after termination")

// Subject is both an observer and an observable. Items pushed into it with
// OnNext are broadcast to every observer currently subscribed. Nothing is
// buffered: observers only see items pushed after they subscribed.
//
// A Subject delivers at most one terminal notification. After OnCompleted or
// OnError every further method call panics with ErrSubjectTerminated.
//
// Subject is not safe for concurrent use.
type Subject[T, E any] struct {
	observers  []*lifeline.Owner[Observer[T, E]]
	depth      int
	terminated bool
}

func NewSubject[T, E any]() *Subject[T, E] {
	return &Subject[T, E]{}
}

type subjectSubscription[T, E any] struct {
	alive *lifeline.Lifeline[Observer[T, E]]
}

func (s *subjectSubscription[T, E]) Unsubscribe() {
	s.alive.Release()
}

// Subscribe registers 'observer'. The registration stays until the returned
// subscription is unsubscribed, after which the observer is dropped on the
// next broadcast.
func (s *Subject[T, E]) Subscribe(observer Observer[T, E]) Subscription {
	s.checkActive()
	alive, owner := lifeline.New(observer)
	s.observers = append(s.observers, owner)
	return &subjectSubscription[T, E]{alive}
}

// Observable returns a view of the subject that only allows subscribing.
// Useful for exposing a subject without exposing its observer methods.
func (s *Subject[T, E]) Observable() Observable[T, E] {
	return FuncObservable[T, E](s.Subscribe)
}

// Len returns the number of registrations held, including those that have
// been unsubscribed but not yet pruned by a broadcast.
func (s *Subject[T, E]) Len() int {
	return len(s.observers)
}

// OnNext pushes a duplicate of 'item' to every subscribed observer and drops
// the registrations whose subscriptions have been released.
func (s *Subject[T, E]) OnNext(item T) {
	s.checkActive()

	// Observers subscribed during the pass are not part of it.
	n := len(s.observers)
	var dead []int

	s.depth++
	for i := 0; i < n && !s.terminated; i++ {
		s.observers[i].WithOr(
			func(observer *Observer[T, E]) {
				(*observer).OnNext(duplicate(item))
			},
			func() {
				dead = append(dead, i)
			})
	}
	s.depth--

	// A nested OnNext from an observer must not shift the indices of the
	// pass that is still running.
	if s.terminated || s.depth > 0 || len(dead) == 0 {
		return
	}
	s.prune(dead)
}

// prune removes the observers at the given ascending positions.
func (s *Subject[T, E]) prune(dead []int) {
	kept := s.observers[:0]
	j := 0
	for i, owner := range s.observers {
		if j < len(dead) && dead[j] == i {
			j++
			continue
		}
		kept = append(kept, owner)
	}
	for i := len(kept); i < len(s.observers); i++ {
		s.observers[i] = nil
	}
	s.observers = kept
}

// OnCompleted completes every subscribed observer and terminates the subject.
func (s *Subject[T, E]) OnCompleted() {
	for _, owner := range s.terminate() {
		if observer, ok := owner.Take(); ok {
			observer.OnCompleted()
		}
	}
}

// OnError fails every subscribed observer with a duplicate of 'err' and
// terminates the subject.
func (s *Subject[T, E]) OnError(err E) {
	for _, owner := range s.terminate() {
		if observer, ok := owner.Take(); ok {
			observer.OnError(duplicate(err))
		}
	}
}

// terminate marks the subject terminated so that re-entrant calls from the
// observers panic, and detaches the registrations. Each one is taken only
// right before its terminal notification, so an observer released by an
// earlier recipient is skipped.
func (s *Subject[T, E]) terminate() []*lifeline.Owner[Observer[T, E]] {
	s.checkActive()
	s.terminated = true
	owners := s.observers
	s.observers = nil
	return owners
}

func (s *Subject[T, E]) checkActive() {
	if s.terminated {
		panic(ErrSubjectTerminated)
	}
}

var (
	_ Observer[int, error]   = &Subject[int, error]{}
	_ Observable[int, error] = &Subject[int, error]{}
)
