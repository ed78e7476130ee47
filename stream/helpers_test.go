package stream

import (
	"context"
	"sync"
	"testing"
	"time"
)

// recorder captures everything an Observer receives.
type recorder[T any] struct {
	mu        sync.Mutex
	values    []T
	errs      []error
	completes int
	done      chan struct{}
	once      sync.Once
}

func newRecorder[T any]() *recorder[T] {
	return &recorder[T]{done: make(chan struct{})}
}

func (r *recorder[T]) observer() Observer[T] {
	return Observer[T]{
		OnNext: func(v T) {
			r.mu.Lock()
			r.values = append(r.values, v)
			r.mu.Unlock()
		},
		OnError: func(err error) {
			r.mu.Lock()
			r.errs = append(r.errs, err)
			r.mu.Unlock()
			r.once.Do(func() { close(r.done) })
		},
		OnComplete: func() {
			r.mu.Lock()
			r.completes++
			r.mu.Unlock()
			r.once.Do(func() { close(r.done) })
		},
	}
}

func (r *recorder[T]) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for terminal event")
	}
}

func (r *recorder[T]) snapshot() ([]T, []error, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...), append([]error(nil), r.errs...), r.completes
}

// probe tracks what happened to the async inner streams built by delayed.
type probe struct {
	mu       sync.Mutex
	started  map[int]bool
	canceled map[int]bool
	emitted  map[int]bool
}

func newProbe() *probe {
	return &probe{
		started:  make(map[int]bool),
		canceled: make(map[int]bool),
		emitted:  make(map[int]bool),
	}
}

func (p *probe) mark(m map[int]bool, id int) {
	p.mu.Lock()
	m[id] = true
	p.mu.Unlock()
}

func (p *probe) has(m map[int]bool, id int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return m[id]
}

// delayed emits v after d and completes, or fails with err if non-nil. It
// records cancellation when its activation is disposed first.
func delayed(p *probe, id int, v int, d time.Duration, err error) Stream[int] {
	return New(func(ctx context.Context, e *Emitter[int]) {
		p.mark(p.started, id)
		go func() {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-timer.C:
				if err != nil {
					e.Error(err)
					return
				}
				if e.Next(v) {
					p.mark(p.emitted, id)
				}
				e.Complete()
			case <-ctx.Done():
				p.mark(p.canceled, id)
			}
		}()
	})
}

// capture returns a source whose emitter the test drives by hand. It
// supports a single activation.
func capture[T any]() (Stream[T], func() *Emitter[T]) {
	var (
		mu sync.Mutex
		em *Emitter[T]
	)
	src := New(func(_ context.Context, e *Emitter[T]) {
		mu.Lock()
		em = e
		mu.Unlock()
	})
	return src, func() *Emitter[T] {
		mu.Lock()
		defer mu.Unlock()
		return em
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
