package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/rxfetch/logger"
)

// InitMeter installs an OTLP/HTTP meter provider as the global provider.
// The caller shuts it down on exit.
func InitMeter(ctx context.Context, cfg *Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.MetricInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.MetricInterval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.MetricInterval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// RunMetrics holds the instruments recorded for pipeline invocations. A nil
// *RunMetrics records nothing.
type RunMetrics struct {
	runs     metric.Int64Counter
	duration metric.Float64Histogram
	values   metric.Int64Counter
	active   metric.Int64UpDownCounter
	rejected metric.Int64Counter
}

// NewRunMetrics creates the pipeline instruments on meter.
func NewRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	runs, err := meter.Int64Counter("pipeline.runs",
		metric.WithDescription("Pipeline invocations by final state"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.runs counter: %w", err)
	}

	duration, err := meter.Float64Histogram("pipeline.duration",
		metric.WithDescription("Time from activation to settlement"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.duration histogram: %w", err)
	}

	values, err := meter.Int64Counter("pipeline.values",
		metric.WithDescription("Values delivered to the reporter"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.values counter: %w", err)
	}

	active, err := meter.Int64UpDownCounter("pipeline.active",
		metric.WithDescription("Invocations currently running"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.active gauge: %w", err)
	}

	rejected, err := meter.Int64Counter("pipeline.rejected",
		metric.WithDescription("Invocations refused because another was running"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.rejected counter: %w", err)
	}

	return &RunMetrics{
		runs:     runs,
		duration: duration,
		values:   values,
		active:   active,
		rejected: rejected,
	}, nil
}

func (m *RunMetrics) started(ctx context.Context, pipeline string) {
	if m == nil {
		return
	}
	m.active.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrPipeline, pipeline)))
}

func (m *RunMetrics) value(ctx context.Context, pipeline string) {
	if m == nil {
		return
	}
	m.values.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrPipeline, pipeline)))
}

func (m *RunMetrics) ended(ctx context.Context, pipeline, state string, seconds float64) {
	if m == nil {
		return
	}
	name := attribute.String(AttrPipeline, pipeline)
	m.active.Add(ctx, -1, metric.WithAttributes(name))
	m.runs.Add(ctx, 1, metric.WithAttributes(name, attribute.String(AttrState, state)))
	m.duration.Record(ctx, seconds, metric.WithAttributes(name))
}

// RecordRejected counts an invocation refused because the executor was busy.
func (m *RunMetrics) RecordRejected(ctx context.Context, pipeline string) {
	if m == nil {
		return
	}
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrPipeline, pipeline)))
}
