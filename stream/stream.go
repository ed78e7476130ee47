package stream

import (
	"context"
	"sync"
)

// Observer receives the events of one activation. Nil callbacks are skipped.
type Observer[T any] struct {
	OnNext     func(T)
	OnError    func(error)
	OnComplete func()
}

func (o Observer[T]) next(v T) {
	if o.OnNext != nil {
		o.OnNext(v)
	}
}

func (o Observer[T]) error(err error) {
	if o.OnError != nil {
		o.OnError(err)
	}
}

func (o Observer[T]) complete() {
	if o.OnComplete != nil {
		o.OnComplete()
	}
}

// Stream is a lazy, push-based description of a sequence of values.
// The zero Stream completes immediately without values.
type Stream[T any] struct {
	activate func(ctx context.Context, o Observer[T])
}

// run starts an activation without the protective wrapping done by Subscribe.
// Operators use it to chain onto sources whose output is already serialized.
func (s Stream[T]) run(ctx context.Context, o Observer[T]) {
	if s.activate == nil {
		o.complete()
		return
	}
	s.activate(ctx, o)
}

// Subscribe activates the stream and returns the Subscription for it.
//
// Callbacks are never invoked concurrently, OnNext is never called after a
// terminal event, and at most one of OnError/OnComplete fires. Synchronous
// sources may deliver everything, terminal event included, before Subscribe
// returns. Canceling ctx has the same effect as disposing the Subscription.
func (s Stream[T]) Subscribe(ctx context.Context, o Observer[T]) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := newSubscription(ctx, cancel)
	e := newEmitter(ctx, o)
	s.run(ctx, e.observer())
	return sub
}

// Collect subscribes to s and blocks until it terminates, returning every
// value received. On failure the values delivered before the error are
// returned alongside it. If ctx ends first, Collect disposes the activation
// and returns ctx.Err().
func Collect[T any](ctx context.Context, s Stream[T]) ([]T, error) {
	var (
		mu     sync.Mutex
		values []T
	)
	done := make(chan error, 1)
	sub := s.Subscribe(ctx, Observer[T]{
		OnNext: func(v T) {
			mu.Lock()
			values = append(values, v)
			mu.Unlock()
		},
		OnError:    func(err error) { done <- err },
		OnComplete: func() { done <- nil },
	})
	defer sub.Dispose()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}

	mu.Lock()
	defer mu.Unlock()
	return values, err
}
