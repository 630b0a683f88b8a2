package live

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "github.com/vango-dev/animate/pkg/live"

// startEventSpan opens the span covering one client event.
func startEventSpan(tracer trace.Tracer, hid, event string) trace.Span {
	_, span := tracer.Start(context.Background(), "live.event "+event,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("live.hid", hid),
			attribute.String("live.event", event),
		),
	)
	return span
}

func endEventSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func defaultTracer() trace.Tracer {
	return otel.Tracer(defaultTracerName)
}
