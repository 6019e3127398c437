// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream_test

import (
	"errors"
	"fmt"

	"github.com/joamaki/pushstream/stream"
)

type singleIntegerObservable int

func (num singleIntegerObservable) Subscribe(observer stream.Observer[int, error]) stream.Subscription {
	observer.OnNext(int(num))
	observer.OnCompleted()
	return stream.NopSubscription
}

func Example() {
	var ten stream.Observable[int, error] = singleIntegerObservable(10)

	// The 'Map' operator takes a stream and a function and applies
	// the function to each element.
	twenty := stream.Map(
		ten,
		func(x int) int { return x * 2 },
	)

	stream.SubscribeNext(twenty, func(x int) {
		fmt.Printf("%d\n", x)
	})
	// Output: 20
}

func ExampleSubject() {
	subject := stream.NewSubject[string, error]()

	sub := stream.SubscribeError(subject.Observable(),
		func(s string) { fmt.Println("first:", s) },
		func() { fmt.Println("first: completed") },
		func(err error) { fmt.Println("first:", err) })
	stream.SubscribeError(subject.Observable(),
		func(s string) { fmt.Println("second:", s) },
		func() { fmt.Println("second: completed") },
		func(err error) { fmt.Println("second:", err) })

	subject.OnNext("hello")
	sub.Unsubscribe()
	subject.OnNext("world")
	subject.OnError(errors.New("gone"))
	// Output:
	// first: hello
	// second: hello
	// second: world
	// second: gone
}

func ExampleContinueWith() {
	greeting := stream.FromSlice[string, error]([]string{"hello", "world"})
	farewell := stream.Just[string, error]("bye")

	stream.SubscribeCompleted(
		stream.ContinueWith(greeting, farewell),
		func(s string) { fmt.Println(s) },
		func() { fmt.Println("completed") })
	// Output:
	// hello
	// world
	// bye
	// completed
}
