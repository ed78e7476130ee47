package stream

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/kbukum/rxfetch/errors"
)

// Map transforms each value using fn, preserving order. Terminal events of
// the source pass through unchanged. If fn fails, the result fails with a
// TRANSFORM_FAILED error and the source activation is canceled.
func Map[T, R any](src Stream[T], fn func(T) (R, error)) Stream[R] {
	return Stream[R]{
		activate: func(ctx context.Context, o Observer[R]) {
			ctx, cancel := context.WithCancel(ctx)
			var stopped atomic.Bool
			src.run(ctx, Observer[T]{
				OnNext: func(v T) {
					if stopped.Load() {
						return
					}
					out, err := guard("map", func() (R, error) { return fn(v) })
					if err != nil {
						stopped.Store(true)
						cancel()
						o.error(err)
						return
					}
					o.next(out)
				},
				OnError: func(err error) {
					if stopped.Swap(true) {
						return
					}
					cancel()
					o.error(err)
				},
				OnComplete: func() {
					if stopped.Swap(true) {
						return
					}
					cancel()
					o.complete()
				},
			})
		},
	}
}

// Reduce folds every source value into an accumulator that starts at seed.
// It emits exactly one value, the final accumulator, after the source
// completes; an empty source yields seed. A source error is propagated and
// nothing is emitted. Each activation starts again from seed, so fn must not
// mutate shared state through it.
func Reduce[T, A any](src Stream[T], seed A, fn func(A, T) (A, error)) Stream[A] {
	return Stream[A]{
		activate: func(ctx context.Context, o Observer[A]) {
			ctx, cancel := context.WithCancel(ctx)
			acc := seed
			var stopped atomic.Bool
			src.run(ctx, Observer[T]{
				OnNext: func(v T) {
					if stopped.Load() {
						return
					}
					next, err := guard("reduce", func() (A, error) { return fn(acc, v) })
					if err != nil {
						stopped.Store(true)
						cancel()
						o.error(err)
						return
					}
					acc = next
				},
				OnError: func(err error) {
					if stopped.Swap(true) {
						return
					}
					cancel()
					o.error(err)
				},
				OnComplete: func() {
					if stopped.Swap(true) {
						return
					}
					cancel()
					o.next(acc)
					o.complete()
				},
			})
		},
	}
}

// guard calls a user function, turning a returned error or a panic into a
// TRANSFORM_FAILED error attributed to op.
func guard[R any](op string, fn func() (R, error)) (out R, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero R
			out, err = zero, errors.TransformFailed(op, fmt.Errorf("panic: %v", r))
		}
	}()
	out, err = fn()
	if err != nil {
		var zero R
		return zero, errors.TransformFailed(op, err)
	}
	return out, nil
}
