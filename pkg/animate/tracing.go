package animate

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// defaultTracerName is the instrumentation name used when no tracer is
// configured.
const defaultTracerName = "github.com/vango-dev/animate"

func defaultTracer() trace.Tracer {
	return otel.Tracer(defaultTracerName)
}

// startCycleSpan opens the span covering one animating cycle.
func startCycleSpan(ctx context.Context, tracer trace.Tracer, cfg Config) trace.Span {
	_, span := tracer.Start(ctx, "animate.cycle",
		trace.WithAttributes(
			attribute.String("animate.class", cfg.ClassName),
			attribute.String("animate.strategy", string(cfg.Strategy)),
			attribute.Int64("animate.duration_ms", cfg.Duration.Milliseconds()),
		),
	)
	return span
}

// endCycleSpan closes span with the reason the cycle ended.
func endCycleSpan(span trace.Span, reason EndReason) {
	if span == nil {
		return
	}
	span.SetAttributes(attribute.String("animate.end_reason", string(reason)))
	if reason == ReasonDisposed {
		span.SetStatus(codes.Error, "instance disposed while animating")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
