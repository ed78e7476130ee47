package stream

import (
	"context"
	"sync"
)

// MergeMap activates project(v) for every source value immediately, without
// waiting for earlier inner streams, and forwards inner values as they
// arrive. Order is NOT preserved across inner streams.
//
// The result completes once the source and every inner stream launched so
// far have completed. The first error from the source or any inner stream
// is delivered once; the source and all still-active inner subscriptions
// are then disposed and later errors are discarded.
func MergeMap[T, R any](src Stream[T], project func(T) Stream[R]) Stream[R] {
	return Stream[R]{
		activate: func(ctx context.Context, o Observer[R]) {
			m := &merger[R]{inners: make(map[uint64]*Subscription)}
			m.init(ctx, o, m.abort)
			m.attach(src.Subscribe(m.ctx, Observer[T]{
				OnNext: func(v T) {
					inner, err := guard("mergeMap", func() (Stream[R], error) { return project(v), nil })
					if err != nil {
						m.fail(err)
						return
					}
					m.launch(inner)
				},
				OnError:    m.fail,
				OnComplete: m.sourceComplete,
			}))
		},
	}
}

// SwitchMap activates project(v) for every source value after disposing the
// previously active inner stream, so at most one inner stream runs at a
// time and a discarded inner stream contributes no values at all.
//
// The result completes once the source and the current inner stream (if
// any) have completed. Errors terminate the result as in MergeMap; errors
// from discarded inner streams are dropped.
func SwitchMap[T, R any](src Stream[T], project func(T) Stream[R]) Stream[R] {
	return Stream[R]{
		activate: func(ctx context.Context, o Observer[R]) {
			s := &switcher[R]{}
			s.init(ctx, o, s.abort)
			s.attach(src.Subscribe(s.ctx, Observer[T]{
				OnNext: func(v T) {
					inner, err := guard("switchMap", func() (Stream[R], error) { return project(v), nil })
					if err != nil {
						s.fail(err)
						return
					}
					s.switchTo(inner)
				},
				OnError:    s.fail,
				OnComplete: s.sourceComplete,
			}))
		},
	}
}

// outer holds the state shared by the flattening operators: the serialized
// downstream, the context inner activations run under, and the source
// subscription. mu guards every field below it.
type outer[R any] struct {
	ctx     context.Context
	cancel  context.CancelFunc
	out     *Emitter[R]
	unwatch func() bool

	mu      sync.Mutex
	source  *Subscription
	srcDone bool
	stopped bool
}

// init derives the inner context and arranges for abort to run when the
// downstream disposes the activation.
func (f *outer[R]) init(ctx context.Context, o Observer[R], abort func()) {
	f.ctx, f.cancel = context.WithCancel(ctx)
	f.out = newEmitter(ctx, o)
	// abort may fire at once if ctx is already done; it waits on mu.
	f.mu.Lock()
	f.unwatch = context.AfterFunc(ctx, abort)
	f.mu.Unlock()
}

// attach records the source subscription, disposing it straight away if
// the operator already terminated while the source was being activated.
func (f *outer[R]) attach(sub *Subscription) {
	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		sub.Dispose()
		return
	}
	f.source = sub
	f.mu.Unlock()
}

// release disposes the source and cancels every inner activation. Callers
// must have set stopped first.
func (f *outer[R]) release() {
	f.mu.Lock()
	src, unwatch := f.source, f.unwatch
	f.source = nil
	f.mu.Unlock()
	unwatch()
	src.Dispose()
	f.cancel()
}

type merger[R any] struct {
	outer[R]
	seq    uint64
	inners map[uint64]*Subscription
}

func (m *merger[R]) launch(inner Stream[R]) {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.seq++
	id := m.seq
	m.inners[id] = nil
	m.mu.Unlock()

	sub := inner.Subscribe(m.ctx, Observer[R]{
		OnNext:     func(v R) { m.out.Next(v) },
		OnError:    m.fail,
		OnComplete: func() { m.innerComplete(id) },
	})

	m.mu.Lock()
	if _, live := m.inners[id]; live && !m.stopped {
		m.inners[id] = sub
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	// Completed synchronously, or the merge terminated meanwhile.
	sub.Dispose()
}

func (m *merger[R]) innerComplete(id uint64) {
	m.mu.Lock()
	sub, live := m.inners[id]
	if !live || m.stopped {
		m.mu.Unlock()
		return
	}
	delete(m.inners, id)
	finished := m.srcDone && len(m.inners) == 0
	if finished {
		m.stopped = true
	}
	m.mu.Unlock()

	sub.Dispose()
	if finished {
		m.out.Complete()
		m.release()
	}
}

func (m *merger[R]) sourceComplete() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.srcDone = true
	finished := len(m.inners) == 0
	if finished {
		m.stopped = true
	}
	m.mu.Unlock()

	if finished {
		m.out.Complete()
		m.release()
	}
}

func (m *merger[R]) fail(err error) {
	subs, ok := m.stop()
	if !ok {
		return
	}
	m.out.Error(err)
	for _, sub := range subs {
		sub.Dispose()
	}
	m.release()
}

func (m *merger[R]) abort() {
	subs, ok := m.stop()
	if !ok {
		return
	}
	for _, sub := range subs {
		sub.Dispose()
	}
	m.release()
}

// stop marks the merge terminated and hands back the inner subscriptions
// still active. It reports false if the merge had already terminated.
func (m *merger[R]) stop() ([]*Subscription, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return nil, false
	}
	m.stopped = true
	subs := make([]*Subscription, 0, len(m.inners))
	for id, sub := range m.inners {
		subs = append(subs, sub)
		delete(m.inners, id)
	}
	return subs, true
}

type switcher[R any] struct {
	outer[R]
	current  *Subscription
	latest   uint64
	inFlight bool
}

func (s *switcher[R]) switchTo(inner Stream[R]) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	prev := s.current
	s.latest++
	id := s.latest
	s.current = nil
	s.inFlight = true
	s.mu.Unlock()

	prev.Dispose()

	sub := inner.Subscribe(s.ctx, Observer[R]{
		OnNext:     func(v R) { s.innerNext(id, v) },
		OnError:    func(err error) { s.innerError(id, err) },
		OnComplete: func() { s.innerComplete(id) },
	})

	s.mu.Lock()
	if s.latest == id && s.inFlight && !s.stopped {
		s.current = sub
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	sub.Dispose()
}

// innerNext forwards v only while id is still the latest inner stream. The
// check and the delivery happen under one lock so a concurrent switch can
// never let a discarded value through.
func (s *switcher[R]) innerNext(id uint64, v R) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || id != s.latest {
		return
	}
	s.out.Next(v)
}

func (s *switcher[R]) innerError(id uint64, err error) {
	cur, ok := s.stop(func() bool { return id == s.latest })
	if !ok {
		return
	}
	s.out.Error(err)
	cur.Dispose()
	s.release()
}

func (s *switcher[R]) innerComplete(id uint64) {
	s.mu.Lock()
	if s.stopped || id != s.latest {
		s.mu.Unlock()
		return
	}
	cur := s.current
	s.current = nil
	s.inFlight = false
	finished := s.srcDone
	if finished {
		s.stopped = true
	}
	s.mu.Unlock()

	cur.Dispose()
	if finished {
		s.out.Complete()
		s.release()
	}
}

func (s *switcher[R]) sourceComplete() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.srcDone = true
	finished := !s.inFlight
	if finished {
		s.stopped = true
	}
	s.mu.Unlock()

	if finished {
		s.out.Complete()
		s.release()
	}
}

func (s *switcher[R]) fail(err error) {
	cur, ok := s.stop(nil)
	if !ok {
		return
	}
	s.out.Error(err)
	cur.Dispose()
	s.release()
}

func (s *switcher[R]) abort() {
	cur, ok := s.stop(nil)
	if !ok {
		return
	}
	cur.Dispose()
	s.release()
}

// stop marks the switch terminated and hands back the current inner
// subscription. When cond is non-nil it is checked under the lock and the
// switch is left untouched if it reports false.
func (s *switcher[R]) stop(cond func() bool) (*Subscription, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || (cond != nil && !cond()) {
		return nil, false
	}
	s.stopped = true
	cur := s.current
	s.current = nil
	return cur, true
}
