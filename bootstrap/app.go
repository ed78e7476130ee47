package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kbukum/rxfetch/component"
	"github.com/kbukum/rxfetch/logger"
	"github.com/kbukum/rxfetch/observability"
)

// App drives the lifecycle of an rxfetch process: start components, run the
// configure callbacks, do the work, shut down in reverse order.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(userAPI)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*config.AppConfig]) error {
//	    // components are started; wire the business layer here
//	    return nil
//	})
//	err = app.RunTask(ctx, menu.Run)
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger

	gracefulTimeout time.Duration
	onConfigure     []func(ctx context.Context, app *App[C]) error

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp applies defaults to cfg, validates it and initializes the logger.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetBaseConfig()
	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		gracefulTimeout: 15 * time.Second,
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(*cfg.GetLogging())
		app.Logger = logger.GetGlobalLogger()
	}
	app.Components = component.NewRegistry(app.Logger.WithComponent("components"))
	return app, nil
}

// RegisterComponent adds a component to the application's registry.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// OnConfigure registers a callback that runs after components have started.
// Use it for dependencies that need a running component, such as a client
// pointed at a server's bound address.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// ReadyCheck reports an error naming every component that is not up.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	health := a.Components.Health(ctx, a.Name, a.Version)
	var unhealthy []string
	for _, h := range health.Components {
		if h.Status != observability.HealthStatusUp {
			detail := h.Name + "=" + string(h.Status)
			if h.Message != "" {
				detail += "(" + h.Message + ")"
			}
			unhealthy = append(unhealthy, detail)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %s", strings.Join(unhealthy, ", "))
	}
	return nil
}

// Run starts the application and blocks until a shutdown signal arrives or
// ctx ends, then shuts down gracefully.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return a.abort(err)
	}
	a.Logger.Info("application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)
	return a.stop()
}

// RunTask starts the application, runs task and shuts down when the task
// returns. SIGINT and SIGTERM cancel the task's context.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return a.abort(err)
	}

	taskCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	taskErr := task(taskCtx)
	if taskCtx.Err() != nil && ctx.Err() == nil {
		a.Logger.Info("received signal, task canceled")
	}

	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()
	a.Logger.Info("starting application", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return fmt.Errorf("configuration failed: %w", err)
		}
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("ready check reported issues", logger.MergeWithError(nil, err))
	}
	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.logSummary(time.Since(start))
	return nil
}

// abort releases whatever startup managed to start and returns err.
func (a *App[C]) abort(err error) error {
	if stopErr := a.stop(); stopErr != nil {
		a.Logger.Error("cleanup after failed startup", logger.MergeWithError(nil, stopErr))
	}
	return err
}

// logSummary logs one line per component and the startup time.
func (a *App[C]) logSummary(took time.Duration) {
	for _, c := range a.Components.All() {
		fields := logger.Fields(logger.FieldComponent, c.Name())
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			fields["type"], fields["details"] = desc.Type, desc.Details
		}
		a.Logger.Debug("component ready", fields)
	}
	a.Logger.Info("application started", logger.Fields(
		"components", len(a.Components.All()),
		logger.FieldDuration, took.Milliseconds(),
	))
}

// WaitForSignal blocks until SIGINT, SIGTERM or ctx cancellation.
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("received shutdown signal", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("context canceled, shutting down")
		return nil
	}
}

// Shutdown performs graceful shutdown. Use when managing your own lifecycle.
func (a *App[C]) Shutdown() error {
	return a.stop()
}

// stop runs the OnStop hooks, then stops components in reverse order, all
// within the graceful timeout.
func (a *App[C]) stop() error {
	a.Logger.Info("shutting down application", logger.Fields("timeout", a.gracefulTimeout.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("onStop hook error", logger.MergeWithError(nil, err))
		shutdownErr = err
	}
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("shutdown completed with errors", logger.MergeWithError(nil, err))
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	a.Logger.Info("application shutdown complete")
	return shutdownErr
}
