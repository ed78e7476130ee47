// Package observability wires OpenTelemetry tracing and metrics into the
// pipeline executor and the user fetch client.
//
// Export is off by default. When enabled, Setup installs OTLP/HTTP tracer
// and meter providers as the globals:
//
//	shutdown, err := observability.Setup(ctx, cfg.Telemetry)
//	defer shutdown(context.Background())
//
// Each invocation gets a pipeline.run span plus run metrics:
//
//	ctx, run := observability.StartRun(ctx, "mergeMap", id, metrics)
//	defer run.End(ctx, "Completed", n, nil)
package observability
