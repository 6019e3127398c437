// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

// Package lifeline decouples the lifetime of a value from access to it.
//
// A Lifeline and an Owner come in pairs. The lifeline is in control of the
// lifetime of the stored value, but only the owner can access it. When the
// lifeline is released the value is dropped and every later access through
// the owner silently does nothing. When the owner takes the value, releasing
// the lifeline is a no-op.
//
// This lets a broadcaster keep a registration for every subscription it hands
// out without the subscription and the broadcaster keeping each other alive:
// the consumer decides when to sever the relationship by releasing the
// lifeline, and the broadcaster checks liveness before each use.
package lifeline

type cell[T any] struct {
	value T
	alive bool
}

// Lifeline controls the lifetime of the value in the pair.
type Lifeline[T any] struct {
	cell *cell[T]
}

// Owner accesses the value in the pair for as long as it is alive.
type Owner[T any] struct {
	cell *cell[T]
}

// New creates a value with decoupled lifetime and ownership.
func New[T any](value T) (*Lifeline[T], *Owner[T]) {
	c := &cell[T]{value: value, alive: true}
	return &Lifeline[T]{cell: c}, &Owner[T]{cell: c}
}

// Release drops the stored value. The value is returned if it had not already
// been released or taken by the owner, so that the caller can dispose of it.
func (l *Lifeline[T]) Release() (value T, ok bool) {
	if l == nil || l.cell == nil {
		return
	}
	c := l.cell
	l.cell = nil
	if !c.alive {
		return
	}
	value, ok = c.value, true
	var zero T
	c.value = zero
	c.alive = false
	return
}

// Alive returns true if the value has been neither released nor taken.
func (l *Lifeline[T]) Alive() bool {
	return l != nil && l.cell != nil && l.cell.alive
}

// With calls 'action' with the stored value if it is still alive and
// reports whether it did.
func (o *Owner[T]) With(action func(T)) bool {
	if !o.Alive() {
		return false
	}
	action(o.cell.value)
	return true
}

// WithMut calls 'action' with a pointer to the stored value if it is still
// alive and reports whether it did.
func (o *Owner[T]) WithMut(action func(*T)) bool {
	if !o.Alive() {
		return false
	}
	action(&o.cell.value)
	return true
}

// WithOr calls 'action' if the value is alive, 'otherwise' if it is not.
func (o *Owner[T]) WithOr(action func(*T), otherwise func()) {
	if !o.WithMut(action) {
		otherwise()
	}
}

// Take removes the stored value and returns it. After Take the owner never
// sees the value again, even though the lifeline is still attached.
func (o *Owner[T]) Take() (value T, ok bool) {
	if !o.Alive() {
		return
	}
	c := o.cell
	o.cell = nil
	value, ok = c.value, true
	var zero T
	c.value = zero
	c.alive = false
	return
}

// Alive returns true if the value can still be accessed through the owner.
func (o *Owner[T]) Alive() bool {
	return o != nil && o.cell != nil && o.cell.alive
}
