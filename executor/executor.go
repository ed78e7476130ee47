package executor

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/rxfetch/errors"
	"github.com/kbukum/rxfetch/logger"
	"github.com/kbukum/rxfetch/observability"
	"github.com/kbukum/rxfetch/stream"
)

// Factory builds a fresh stream for one invocation.
type Factory func() stream.Stream[any]

// Bind adapts a typed pipeline constructor to a Factory.
func Bind[T any](build func() stream.Stream[T]) Factory {
	return func() stream.Stream[any] {
		return stream.Map(build(), func(v T) (any, error) { return v, nil })
	}
}

// Result describes one finished invocation.
type Result struct {
	InvocationID string
	Name         string
	State        State
	Values       []any
	Err          error
	Duration     time.Duration
}

// Executor runs at most one pipeline at a time.
type Executor struct {
	reporter Reporter
	log      *logger.Logger
	metrics  *observability.RunMetrics
	newID    func() string

	mu      sync.Mutex
	state   State
	running string
}

// Option configures an Executor.
type Option func(*Executor)

// WithReporter sets where invocation events are reported. Nil disables
// reporting.
func WithReporter(r Reporter) Option {
	return func(e *Executor) {
		if r == nil {
			r = nopReporter{}
		}
		e.reporter = r
	}
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *logger.Logger) Option {
	return func(e *Executor) { e.log = l }
}

// WithMetrics records OpenTelemetry run metrics.
func WithMetrics(m *observability.RunMetrics) Option {
	return func(e *Executor) { e.metrics = m }
}

// New creates an idle Executor. By default it reports to stdout.
func New(opts ...Option) *Executor {
	e := &Executor{
		reporter: NewConsoleReporter(os.Stdout),
		log:      logger.Get("executor"),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the state of the running slot: Idle before the first run,
// Running while one is in flight, else the outcome of the last run.
func (e *Executor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Run executes the named pipeline and blocks until it settles or ctx ends.
// On failure both the Result and the error are returned. If another
// invocation is running, Run returns an EXECUTOR_BUSY error and a nil Result
// without calling factory.
func (e *Executor) Run(ctx context.Context, name string, factory Factory) (*Result, error) {
	if err := e.claim(ctx, name); err != nil {
		return nil, err
	}
	res := e.execute(ctx, name, factory)
	e.release(res.State)
	return res, res.Err
}

// Go starts the named pipeline in the background. It fails fast with an
// EXECUTOR_BUSY error if the slot is taken. done, if non-nil, is called
// after the slot has been released, so it may start the next invocation.
func (e *Executor) Go(ctx context.Context, name string, factory Factory, done func(*Result, error)) error {
	if err := e.claim(ctx, name); err != nil {
		return err
	}
	go func() {
		res := e.execute(ctx, name, factory)
		e.release(res.State)
		if done != nil {
			done(res, res.Err)
		}
	}()
	return nil
}

func (e *Executor) claim(ctx context.Context, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Running {
		e.metrics.RecordRejected(ctx, name)
		e.log.Debug("executor busy", logger.Fields(logger.FieldPipeline, name, "running", e.running))
		return errors.ExecutorBusy(e.running)
	}
	e.state = Running
	e.running = name
	return nil
}

func (e *Executor) release(final State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = final
	e.running = ""
}

// execute drives one invocation to settlement. The subscription is disposed
// exactly once, before the outcome is reported.
func (e *Executor) execute(ctx context.Context, name string, factory Factory) *Result {
	id := e.newID()
	ctx = logger.ContextWithInvocationID(ctx, id)
	ctx, run := observability.StartRun(ctx, name, id, e.metrics)
	log := e.log.WithContext(ctx).WithFields(logger.Fields(logger.FieldPipeline, name))
	log.Info("pipeline started")

	// mu serializes value reporting with closing the invocation: once closed
	// is set no value reaches the reporter, so the outcome and the ended
	// marker are always the last events of a run.
	var (
		mu     sync.Mutex
		values []any
		closed bool
	)
	settled := newSettlement()

	var sub *stream.Subscription
	if src, err := build(factory); err != nil {
		settled.reject(err)
	} else {
		sub = src.Subscribe(ctx, stream.Observer[any]{
			OnNext: func(v any) {
				mu.Lock()
				defer mu.Unlock()
				if closed {
					return
				}
				values = append(values, v)
				run.Value(ctx)
				e.reporter.Value(name, v)
			},
			OnError:    func(err error) { settled.reject(err) },
			OnComplete: func() { settled.resolve() },
		})
	}

	err := settled.wait(ctx)
	sub.Dispose()

	mu.Lock()
	closed = true
	res := &Result{
		InvocationID: id,
		Name:         name,
		Values:       values,
		Err:          err,
		Duration:     run.Duration(),
	}
	mu.Unlock()

	if err != nil {
		res.State = Failed
		e.reporter.Failed(name, err)
		log.Warn("pipeline failed", logger.MergeWithError(logger.Fields(
			logger.FieldState, res.State.String(),
			logger.FieldDuration, res.Duration.Milliseconds(),
			"code", string(errors.Code(err)),
		), err))
	} else {
		res.State = Completed
		e.reporter.Completed(name)
		log.Info("pipeline completed", logger.Fields(
			logger.FieldState, res.State.String(),
			logger.FieldDuration, res.Duration.Milliseconds(),
			"values", len(res.Values),
		))
	}
	run.End(ctx, res.State.String(), len(res.Values), err)
	e.reporter.Ended(name)
	return res
}

// build calls factory, turning a panic into an error.
func build(factory Factory) (s stream.Stream[any], err error) {
	if factory == nil {
		return s, errors.InvalidInput("factory", "pipeline factory is nil")
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Internal(fmt.Errorf("pipeline factory panicked: %v", r))
		}
	}()
	return factory(), nil
}
