// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

// Observer receives the notifications of an observable: zero or more items
// followed by at most one of OnCompleted or OnError.
type Observer[T, E any] interface {
	// OnNext provides the observer with the next item.
	OnNext(item T)

	// OnCompleted notifies the observer that the observable has finished
	// sending items. No method is called on the observer after this.
	OnCompleted()

	// OnError notifies the observer that the observable failed. No method
	// is called on the observer after this.
	OnError(err E)
}

// Subscription is the handle returned from subscribing to an observable.
// Unsubscribing is the cancellation signal. Implementations must allow
// Unsubscribe to be called more than once.
type Subscription interface {
	Unsubscribe()
}

type Observable[T, E any] interface {
	// Subscribe starts pushing the items of the observable to 'observer'.
	//
	// Implementations of Subscribe() must maintain the following invariants:
	// - 'observer' receives zero or more OnNext() calls, then at most one
	//   call to either OnCompleted() or OnError().
	// - No method is called on 'observer' after the terminal call.
	// - After the returned subscription is unsubscribed the observer is not
	//   called again. Notifications already in flight are not interrupted.
	//
	// When the observer is called is not part of the contract. A cold
	// observable may push everything before Subscribe returns, in which case
	// unsubscribing is a no-op, while a hot observable such as Subject only
	// registers the observer and pushes later.
	Subscribe(observer Observer[T, E]) Subscription
}

// FuncObservable wraps a function that implements Subscribe. Convenience when declaring
// a struct to implement Subscribe() is overkill.
type FuncObservable[T, E any] func(Observer[T, E]) Subscription

func (f FuncObservable[T, E]) Subscribe(observer Observer[T, E]) Subscription {
	return f(observer)
}

// subscriptionFunc calls the wrapped function on the first Unsubscribe only.
// The method needs a pointer receiver to clear the function.
type subscriptionFunc func()

func (f *subscriptionFunc) Unsubscribe() {
	if *f != nil {
		fn := *f
		*f = nil
		fn()
	}
}

// NewSubscription returns a subscription that calls 'release' on the first
// Unsubscribe.
func NewSubscription(release func()) Subscription {
	f := subscriptionFunc(release)
	return &f
}

type nopSubscription struct{}

func (nopSubscription) Unsubscribe() {}

// NopSubscription is returned by observables that have nothing to cancel,
// e.g. those that finish before Subscribe returns.
var NopSubscription Subscription = nopSubscription{}

// ObserverFuncs implements Observer with optional callbacks. Nil callbacks
// ignore the notification.
type ObserverFuncs[T, E any] struct {
	Next      func(T)
	Completed func()
	Error     func(E)
}

func (o ObserverFuncs[T, E]) OnNext(item T) {
	if o.Next != nil {
		o.Next(item)
	}
}

func (o ObserverFuncs[T, E]) OnCompleted() {
	if o.Completed != nil {
		o.Completed()
	}
}

func (o ObserverFuncs[T, E]) OnError(err E) {
	if o.Error != nil {
		o.Error(err)
	}
}

// ObserverFunc implements Observer with a single callback. Items arrive as
// Some(Ok(item)), an error as Some(Err(err)) and completion as None.
type ObserverFunc[T, E any] func(Option[Result[T, E]])

func (f ObserverFunc[T, E]) OnNext(item T) { f(Some(Ok[T, E](item))) }
func (f ObserverFunc[T, E]) OnCompleted()  { f(None[Result[T, E]]()) }
func (f ObserverFunc[T, E]) OnError(err E) { f(Some(Err[T](err))) }

var (
	_ Observer[int, error] = ObserverFuncs[int, error]{}
	_ Observer[int, error] = ObserverFunc[int, error](nil)
)
