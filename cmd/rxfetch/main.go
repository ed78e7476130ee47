// Command rxfetch runs reactive user-fetch pipelines against an HTTP user
// API, either from an interactive menu or non-interactively with --pipeline.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/rxfetch/bootstrap"
	"github.com/kbukum/rxfetch/config"
	"github.com/kbukum/rxfetch/demo"
	"github.com/kbukum/rxfetch/executor"
	"github.com/kbukum/rxfetch/logger"
	"github.com/kbukum/rxfetch/menu"
	"github.com/kbukum/rxfetch/metrics"
	"github.com/kbukum/rxfetch/monitor"
	"github.com/kbukum/rxfetch/observability"
	"github.com/kbukum/rxfetch/sse"
	"github.com/kbukum/rxfetch/user"
	"github.com/kbukum/rxfetch/userapi"
	"github.com/kbukum/rxfetch/version"
)

type options struct {
	configFile  string
	pipeline    string
	serve       bool
	list        bool
	showVersion bool
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "rxfetch:", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, out io.Writer) (options, error) {
	var o options
	fs := pflag.NewFlagSet("rxfetch", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVarP(&o.configFile, "config", "c", "", "path to config.yml (default: cmd/rxfetch/config.yml or ./config.yml)")
	fs.StringVarP(&o.pipeline, "pipeline", "p", "", `run one pipeline by name, or "all", then exit`)
	fs.BoolVar(&o.serve, "serve", false, "only run the embedded user API until interrupted")
	fs.BoolVarP(&o.list, "list", "l", false, "list the pipelines and exit")
	fs.BoolVarP(&o.showVersion, "version", "v", false, "print version information and exit")
	err := fs.Parse(args)
	return o, err
}

func run(args []string, in io.Reader, out io.Writer) error {
	opts, err := parseFlags(args, out)
	if err != nil {
		if stderrors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if opts.showVersion {
		fmt.Fprintln(out, version.Get().String())
		return nil
	}

	cfg := config.Default()
	var loadOpts []config.LoaderOption
	if opts.configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(opts.configFile))
	}
	if err := config.LoadConfig(config.ServiceName, &cfg, loadOpts...); err != nil {
		return err
	}

	if opts.list {
		for _, p := range demo.NewCatalog(cfg.Pipelines.IDs, nil) {
			fmt.Fprintf(out, "%-20s %s\n", p.Name, p.Description)
		}
		return nil
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}
	logger.RegisterDefaults("executor", "menu", "fetch", "user-api", "monitor", "sse")

	ctx := context.Background()
	shutdownTelemetry, err := observability.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	app.OnStop(bootstrap.Hook(shutdownTelemetry))

	reg := metrics.New()

	var api *userapi.Service
	if cfg.UserAPI.Enabled {
		if api, err = userapi.New(cfg.UserAPI, reg, logger.Get("user-api")); err != nil {
			return err
		}
		if err := app.RegisterComponent(api); err != nil {
			return err
		}
	}

	reporters := []executor.Reporter{executor.NewConsoleReporter(out)}
	if cfg.Monitor.Enabled {
		hub := sse.NewComponent(monitor.EventsPath, logger.Get("sse"))
		mon, err := monitor.New(cfg.Monitor, reg, hub, logger.Get("monitor"))
		if err != nil {
			return err
		}
		if err := app.RegisterComponent(mon); err != nil {
			return err
		}
		if err := app.RegisterComponent(hub); err != nil {
			return err
		}
		reporters = append(reporters, sse.NewReporter(hub.Hub()))
	}

	var (
		exec    *executor.Executor
		catalog demo.Catalog
	)
	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*config.AppConfig]) error {
		if a.Cfg.FetchesEmbedded() {
			a.Cfg.Fetch.BaseURL = api.URL()
		}
		client, err := user.NewClient(a.Cfg.Fetch, user.WithMetrics(reg), user.WithLogger(logger.Get("fetch")))
		if err != nil {
			return err
		}
		runMetrics, err := observability.NewRunMetrics(observability.Meter(config.ServiceName))
		if err != nil {
			return err
		}
		exec = executor.New(
			executor.WithReporter(executor.Tee(reporters...)),
			executor.WithLogger(logger.Get("executor")),
			executor.WithMetrics(runMetrics),
		)
		catalog = demo.NewCatalog(a.Cfg.Pipelines.IDs, client)
		a.Logger.Info("pipelines ready", logger.Fields(
			"ids", a.Cfg.Pipelines.IDs,
			"user_api", a.Cfg.Fetch.BaseURL,
		))
		return nil
	})

	if opts.serve {
		if api == nil {
			return stderrors.New("--serve needs user_api.enabled")
		}
		return app.Run(ctx)
	}

	return app.RunTask(ctx, func(ctx context.Context) error {
		if opts.pipeline != "" {
			return runBatch(ctx, exec, catalog, opts.pipeline)
		}
		return menu.New(catalog, exec, in, out, menu.WithLogger(logger.Get("menu"))).Run(ctx)
	})
}

// runBatch runs the named pipeline, or every pipeline in order for "all".
// Each failure is already reported by the executor; the joined error only
// sets the exit status.
func runBatch(ctx context.Context, exec *executor.Executor, catalog demo.Catalog, name string) error {
	selected := catalog
	if name != "all" {
		p, ok := catalog.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown pipeline %q (have %v)", name, catalog.Names())
		}
		selected = demo.Catalog{p}
	}

	var errs []error
	for _, p := range selected {
		if _, err := exec.Run(ctx, p.Name, p.Factory); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name, err))
		}
		if ctx.Err() != nil {
			break
		}
	}
	return stderrors.Join(errs...)
}
