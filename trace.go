package taylor

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name for tracing.
const TracerName = "github.com/andrejajanja/taylor-compiler"

// Span attribute keys.
const (
	AttrSource = "taylor.source"
	AttrDegree = "taylor.degree"
	AttrPoint  = "taylor.point"
	AttrMaxPow = "taylor.max_pow"
)

type tracer struct {
	tracer trace.Tracer
}

func newTracer(tp trace.TracerProvider) *tracer {
	return &tracer{tracer: tp.Tracer(TracerName)}
}

// startParse starts a span for parsing an expression.
func (t *tracer) startParse(ctx context.Context, src string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "taylor.parse", trace.WithAttributes(
		attribute.String(AttrSource, src),
	))
}

// startEval starts a span for expanding an expression.
func (t *tracer) startEval(ctx context.Context, src string, degree int, point float64) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "taylor.eval", trace.WithAttributes(
		attribute.String(AttrSource, src),
		attribute.Int(AttrDegree, degree),
		attribute.Float64(AttrPoint, point),
	))
}

func maxPowAttr(p int) attribute.KeyValue {
	return attribute.Int(AttrMaxPow, p)
}

// recordError marks a span as failed.
func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
