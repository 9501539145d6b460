package taylor

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Option is an option used when creating an Evaluator.
type Option interface {
	apply(*Evaluator)
}

type (
	degreeopt int
	pointopt  float64
	loggeropt struct{ l *slog.Logger }
	traceopt  struct{ tp trace.TracerProvider }
	cacheopt  struct{ c *Cache }
)

func (o degreeopt) apply(ev *Evaluator) { ev.degree = int(o) }
func (o pointopt) apply(ev *Evaluator)  { ev.point = float64(o) }
func (o loggeropt) apply(ev *Evaluator) { ev.logger = o.l }
func (o traceopt) apply(ev *Evaluator)  { ev.tracer = newTracer(o.tp) }
func (o cacheopt) apply(ev *Evaluator)  { ev.cache = o.c }

// Degree sets the degree at which polynomials are truncated. It must be in
// [0, MaxDegree].
func Degree(d int) Option {
	return degreeopt(d)
}

// Around sets the expansion point.
func Around(a float64) Option {
	return pointopt(a)
}

// WithLogger sets the logger for diagnostics. A nil logger means
// slog.Default.
func WithLogger(l *slog.Logger) Option {
	return loggeropt{l}
}

// WithTracerProvider sets the OpenTelemetry tracer provider used for parse
// and evaluation spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return traceopt{tp}
}

// WithCache makes the evaluator parse through a cache.
func WithCache(c *Cache) Option {
	return cacheopt{c}
}
