// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

//
// Sources, e.g. observables built from existing values.
//

// Just creates an observable with a single item.
func Just[T, E any](item T) Observable[T, E] {
	return FuncObservable[T, E](
		func(observer Observer[T, E]) Subscription {
			observer.OnNext(item)
			observer.OnCompleted()
			return NopSubscription
		})
}

// Empty creates an empty observable that completes immediately.
func Empty[T, E any]() Observable[T, E] {
	return FuncObservable[T, E](
		func(observer Observer[T, E]) Subscription {
			observer.OnCompleted()
			return NopSubscription
		})
}

// Never creates an observable that never emits anything and never completes.
// Mainly meant for testing.
func Never[T, E any]() Observable[T, E] {
	return FuncObservable[T, E](
		func(observer Observer[T, E]) Subscription {
			return NopSubscription
		})
}

// Error creates an observable that fails immediately with given error.
func Error[T, E any](err E) Observable[T, E] {
	return FuncObservable[T, E](
		func(observer Observer[T, E]) Subscription {
			observer.OnError(err)
			return NopSubscription
		})
}

// FromSlice converts a slice into an Observable. Every item is pushed in
// order followed by completion before Subscribe returns.
func FromSlice[T, E any](items []T) Observable[T, E] {
	return FuncObservable[T, E](
		func(observer Observer[T, E]) Subscription {
			for _, item := range items {
				observer.OnNext(item)
			}
			observer.OnCompleted()
			return NopSubscription
		})
}

// FromOption emits the value of 'opt' if there is one, then completes.
func FromOption[T, E any](opt Option[T]) Observable[T, E] {
	return FuncObservable[T, E](
		func(observer Observer[T, E]) Subscription {
			if opt.Valid {
				observer.OnNext(opt.Value)
			}
			observer.OnCompleted()
			return NopSubscription
		})
}

// FromResult emits the value of 'res' and completes, or fails with its error.
func FromResult[T, E any](res Result[T, E]) Observable[T, E] {
	return FuncObservable[T, E](
		func(observer Observer[T, E]) Subscription {
			if res.Failed {
				observer.OnError(res.Err)
				return NopSubscription
			}
			observer.OnNext(res.Value)
			observer.OnCompleted()
			return NopSubscription
		})
}

// Range creates an observable that emits integers in range from...to-1.
func Range[E any](from, to int) Observable[int, E] {
	return FuncObservable[int, E](
		func(observer Observer[int, E]) Subscription {
			for i := from; i < to; i++ {
				observer.OnNext(i)
			}
			observer.OnCompleted()
			return NopSubscription
		})
}
