// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import "fmt"

// Cloner is implemented by items that need more than a Go value copy to be
// handed to several observers. Subject calls Clone once per recipient.
type Cloner[T any] interface {
	Clone() T
}

func duplicate[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

// Option is a value that may be absent.
type Option[T any] struct {
	Value T
	Valid bool
}

func Some[T any](v T) Option[T] {
	return Option[T]{Value: v, Valid: true}
}

func None[T any]() Option[T] {
	return Option[T]{}
}

func (o Option[T]) String() string {
	if !o.Valid {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.Value)
}

// Result holds either a success value or a failure.
type Result[T, E any] struct {
	Value  T
	Err    E
	Failed bool
}

func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{Value: v}
}

func Err[T, E any](err E) Result[T, E] {
	return Result[T, E]{Err: err, Failed: true}
}

func (r Result[T, E]) String() string {
	if r.Failed {
		return fmt.Sprintf("Err(%v)", r.Err)
	}
	return fmt.Sprintf("Ok(%v)", r.Value)
}
