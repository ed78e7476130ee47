package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Run tracks the span and metrics of one pipeline invocation.
type Run struct {
	Pipeline     string
	InvocationID string
	StartTime    time.Time

	span    trace.Span
	metrics *RunMetrics
}

// StartRun opens the pipeline.run span and marks the invocation active.
// metrics may be nil.
func StartRun(ctx context.Context, pipeline, invocationID string, metrics *RunMetrics) (context.Context, *Run) {
	ctx, span := StartSpan(ctx, SpanPipelineRun, trace.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
		attribute.String(AttrInvocationID, invocationID),
	))
	metrics.started(ctx, pipeline)
	return ctx, &Run{
		Pipeline:     pipeline,
		InvocationID: invocationID,
		StartTime:    time.Now(),
		span:         span,
		metrics:      metrics,
	}
}

// Value records one delivered value.
func (r *Run) Value(ctx context.Context) {
	r.metrics.value(ctx, r.Pipeline)
}

// End closes the span with the final state and records the run metrics.
func (r *Run) End(ctx context.Context, state string, values int, err error) {
	if err != nil {
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, err.Error())
	}
	r.span.SetAttributes(
		attribute.String(AttrState, state),
		attribute.Int(AttrValues, values),
	)
	r.span.End()
	r.metrics.ended(ctx, r.Pipeline, state, r.Duration().Seconds())
}

// Duration returns the elapsed time since the run started.
func (r *Run) Duration() time.Duration {
	return time.Since(r.StartTime)
}
