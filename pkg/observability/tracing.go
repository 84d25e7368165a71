package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "gridui"

// Tracer starts one span per reconciler render pass, grounded on the
// teacher's OpenTelemetry middleware (pkg/middleware/otel.go), generalized
// from "one span per routed event" to "one span per render pass".
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer resolves a tracer from the global OpenTelemetry provider under
// name (defaulting to "gridui"). Configure the provider in main() before
// constructing a Tracer, exactly as the teacher documents for its own
// middleware.
func NewTracer(name string) *Tracer {
	if name == "" {
		name = defaultTracerName
	}
	return &Tracer{tracer: otel.Tracer(name)}
}

// StartRenderSpan starts a span named "gridui.render" carrying the root
// path as an attribute. Safe to call on a nil *Tracer, in which case ctx is
// returned unchanged and the returned span is nil — callers must treat a
// nil span from EndRenderSpan as a no-op, which it is.
func (t *Tracer) StartRenderSpan(ctx context.Context, rootPath string) (context.Context, trace.Span) {
	if t == nil {
		return ctx, nil
	}
	return t.tracer.Start(ctx, "gridui.render",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("gridui.root_path", rootPath)),
	)
}

// EndRenderSpan records the render's outcome (patch size, visited-path
// count, and error if any) and ends span. A nil span (see StartRenderSpan)
// makes this a no-op.
func EndRenderSpan(span trace.Span, patchDiffCount, visitedPathCount int, err error) {
	if span == nil {
		return
	}
	span.SetAttributes(
		attribute.Int("gridui.patch_diff_count", patchDiffCount),
		attribute.Int("gridui.visited_path_count", visitedPathCount),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
