package stream

import (
	"context"
	"sync"
)

// Emitter is the producer side of one activation. It serializes delivery,
// drops everything after the terminal event, and drops everything once the
// activation's context is done.
type Emitter[T any] struct {
	ctx  context.Context
	obs  Observer[T]
	mu   sync.Mutex
	done bool
}

func newEmitter[T any](ctx context.Context, o Observer[T]) *Emitter[T] {
	return &Emitter[T]{ctx: ctx, obs: o}
}

// Next delivers v. It reports false once the activation has terminated or
// been disposed; producers should stop emitting at that point.
func (e *Emitter[T]) Next(v T) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed() {
		return false
	}
	e.obs.next(v)
	return !e.closed()
}

// Error terminates the activation with err. Later calls are ignored.
func (e *Emitter[T]) Error(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed() {
		return
	}
	e.done = true
	e.obs.error(err)
}

// Complete terminates the activation successfully. Later calls are ignored.
func (e *Emitter[T]) Complete() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed() {
		return
	}
	e.done = true
	e.obs.complete()
}

// Stopped reports whether further events would be dropped.
func (e *Emitter[T]) Stopped() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed()
}

func (e *Emitter[T]) closed() bool {
	return e.done || e.ctx.Err() != nil
}

func (e *Emitter[T]) observer() Observer[T] {
	return Observer[T]{
		OnNext:     func(v T) { e.Next(v) },
		OnError:    e.Error,
		OnComplete: e.Complete,
	}
}
