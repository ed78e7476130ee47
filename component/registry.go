package component

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/rxfetch/logger"
	"github.com/kbukum/rxfetch/observability"
)

const stopTimeout = 10 * time.Second

// componentEntry holds a component and its started state.
type componentEntry struct {
	component Component
	started   bool
}

// Registry manages component lifecycle with deterministic ordering.
type Registry struct {
	entries []*componentEntry
	lookup  map[string]*componentEntry
	log     *logger.Logger
	mu      sync.RWMutex

	// life serializes StartAll and StopAll. Health never takes it.
	life sync.Mutex
}

// NewRegistry creates a new component registry.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Get("component")
	}
	return &Registry{
		entries: make([]*componentEntry, 0),
		lookup:  make(map[string]*componentEntry),
		log:     log,
	}
}

// Register adds a component to the registry. Components are started in
// the order they are registered, so register dependencies first.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.lookup[name]; exists {
		return fmt.Errorf("component %s already registered", name)
	}

	entry := &componentEntry{component: c}
	r.entries = append(r.entries, entry)
	r.lookup[name] = entry

	r.log.Debug("component registered", logger.Fields(logger.FieldComponent, name))
	return nil
}

// StartAll starts all components in registration order. It stops at the
// first failure; components already started stay started so StopAll can
// release them.
func (r *Registry) StartAll(ctx context.Context) error {
	r.life.Lock()
	defer r.life.Unlock()

	for _, entry := range r.snapshot() {
		name := entry.component.Name()
		if err := entry.component.Start(ctx); err != nil {
			r.log.Error("component start failed", logger.MergeWithError(
				logger.Fields(logger.FieldComponent, name), err))
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		r.setStarted(entry, true)

		fields := logger.Fields(logger.FieldComponent, name)
		if d, ok := entry.component.(Describable); ok {
			desc := d.Describe()
			fields["type"], fields["details"] = desc.Type, desc.Details
		}
		r.log.Info("component started", fields)
	}
	return nil
}

// StopAll gracefully stops all started components in reverse registration
// order and joins their errors.
func (r *Registry) StopAll(ctx context.Context) error {
	r.life.Lock()
	defer r.life.Unlock()

	entries := r.snapshot()
	var errs []error
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if !r.isStarted(entry) {
			continue
		}

		name := entry.component.Name()
		stopCtx, cancel := context.WithTimeout(ctx, stopTimeout)
		if err := entry.component.Stop(stopCtx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", name, err))
			r.log.Error("component stop failed", logger.MergeWithError(
				logger.Fields(logger.FieldComponent, name), err))
		} else {
			r.log.Debug("component stopped", logger.Fields(logger.FieldComponent, name))
		}
		r.setStarted(entry, false)
		cancel()
	}
	return stderrors.Join(errs...)
}

func (r *Registry) snapshot() []*componentEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*componentEntry(nil), r.entries...)
}

func (r *Registry) setStarted(e *componentEntry, started bool) {
	r.mu.Lock()
	e.started = started
	r.mu.Unlock()
}

func (r *Registry) isStarted(e *componentEntry) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return e.started
}

// Health checks every registered component.
func (r *Registry) Health(ctx context.Context, service, version string) *observability.ServiceHealth {
	r.mu.RLock()
	checkers := make([]observability.HealthChecker, 0, len(r.entries))
	for _, entry := range r.entries {
		checkers = append(checkers, entry.component)
	}
	r.mu.RUnlock()

	return observability.CheckAll(ctx, service, version, checkers...)
}

// Get returns a registered component by name, or nil if not found.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, exists := r.lookup[name]; exists {
		return entry.component
	}
	return nil
}

// All returns all registered components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Component, 0, len(r.entries))
	for _, entry := range r.entries {
		result = append(result, entry.component)
	}
	return result
}
