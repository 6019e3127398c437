// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"fmt"
)

//
// Sinks: helpers that subscribe plain functions to an observable.
//
// SubscribeNext, SubscribeCompleted and SubscribeOption take no error
// handler, so a failing observable is treated as a programming error and
// panics. SubscribeError and SubscribeResult hand the error to the caller.
//

func unhandledError[E any](err E) {
	panic(fmt.Sprintf("stream: observable failed with unhandled error: %v", err))
}

// SubscribeNext calls 'onNext' for every item pushed by 'src'.
//
// Panics if 'src' fails.
func SubscribeNext[T, E any](src Observable[T, E], onNext func(T)) Subscription {
	return src.Subscribe(ObserverFuncs[T, E]{
		Next:  onNext,
		Error: unhandledError[E],
	})
}

// SubscribeCompleted calls 'onNext' for every item and 'onCompleted' when 'src'
// completes.
//
// Panics if 'src' fails.
func SubscribeCompleted[T, E any](src Observable[T, E], onNext func(T), onCompleted func()) Subscription {
	return src.Subscribe(ObserverFuncs[T, E]{
		Next:      onNext,
		Completed: onCompleted,
		Error:     unhandledError[E],
	})
}

// SubscribeError calls 'onNext' for every item, then either 'onCompleted' or
// 'onError'.
func SubscribeError[T, E any](src Observable[T, E], onNext func(T), onCompleted func(), onError func(E)) Subscription {
	return src.Subscribe(ObserverFuncs[T, E]{
		Next:      onNext,
		Completed: onCompleted,
		Error:     onError,
	})
}

// SubscribeOption calls 'fn' with Some(item) for every item and with None when
// 'src' completes.
//
// Panics if 'src' fails.
func SubscribeOption[T, E any](src Observable[T, E], fn func(Option[T])) Subscription {
	return src.Subscribe(ObserverFuncs[T, E]{
		Next:      func(item T) { fn(Some(item)) },
		Completed: func() { fn(None[T]()) },
		Error:     unhandledError[E],
	})
}

// SubscribeResult calls 'fn' with Ok(Some(item)) for every item, Ok(None) on
// completion and Err(err) on failure.
func SubscribeResult[T, E any](src Observable[T, E], fn func(Result[Option[T], E])) Subscription {
	return src.Subscribe(ObserverFuncs[T, E]{
		Next:      func(item T) { fn(Ok[Option[T], E](Some(item))) },
		Completed: func() { fn(Ok[Option[T], E](None[T]())) },
		Error:     func(err E) { fn(Err[Option[T]](err)) },
	})
}
