package stream

import "context"

// New creates a Stream from a producer function. The producer runs inside
// Subscribe; asynchronous producers start their own goroutine and should
// watch ctx.Done() so that disposal aborts their work.
func New[T any](produce func(ctx context.Context, e *Emitter[T])) Stream[T] {
	return Stream[T]{
		activate: func(ctx context.Context, o Observer[T]) {
			produce(ctx, newEmitter(ctx, o))
		},
	}
}

// FromSlice creates a Stream that emits the items in order, then completes.
func FromSlice[T any](items []T) Stream[T] {
	return New(func(_ context.Context, e *Emitter[T]) {
		for _, v := range items {
			if !e.Next(v) {
				return
			}
		}
		e.Complete()
	})
}

// Of creates a Stream from the given values.
func Of[T any](values ...T) Stream[T] {
	return FromSlice(values)
}

// Empty creates a Stream that completes without emitting.
func Empty[T any]() Stream[T] {
	return Stream[T]{}
}

// Fail creates a Stream that fails with err without emitting.
func Fail[T any](err error) Stream[T] {
	return New(func(_ context.Context, e *Emitter[T]) {
		e.Error(err)
	})
}
