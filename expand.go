package taylor

import (
	"context"
	"log/slog"
	"math"

	"go.opentelemetry.io/otel"

	"github.com/andrejajanja/taylor-compiler/series"
)

// DefaultDegree is the degree of the polynomials an Evaluator produces when
// no Degree option is given.
const DefaultDegree = 10

// maxIntPow bounds the integer exponents computed by repeated squaring.
const maxIntPow = 1 << 16

// Evaluator computes Taylor polynomials of parsed expressions about a fixed
// point. An Evaluator is safe for concurrent use.
type Evaluator struct {
	degree int
	point  float64
	logger *slog.Logger
	tracer *tracer
	cache  *Cache
}

// NewEvaluator creates an evaluator. By default it expands about 0 to
// DefaultDegree, logs to slog.Default, and traces with the global
// OpenTelemetry tracer provider.
func NewEvaluator(opts ...Option) (*Evaluator, error) {
	ev := Evaluator{degree: DefaultDegree}
	for _, opt := range opts {
		opt.apply(&ev)
	}
	if ev.degree < 0 || ev.degree > MaxDegree {
		return nil, &DegreeError{Degree: ev.degree}
	}
	if ev.logger == nil {
		ev.logger = slog.Default()
	}
	if ev.tracer == nil {
		ev.tracer = newTracer(otel.GetTracerProvider())
	}
	return &ev, nil
}

// Degree returns the degree at which results are truncated.
func (ev *Evaluator) Degree() int {
	return ev.degree
}

// Point returns the expansion point.
func (ev *Evaluator) Point() float64 {
	return ev.point
}

// Parse parses an expression, using the evaluator's cache if it has one.
func (ev *Evaluator) Parse(ctx context.Context, src string) (*Expr, error) {
	_, span := ev.tracer.startParse(ctx, src)
	defer span.End()
	var e *Expr
	var err error
	if ev.cache != nil {
		e, err = ev.cache.Parse(src)
	} else {
		e, err = Parse(src)
	}
	if err != nil {
		recordError(span, err)
		ev.logger.DebugContext(ctx, "parse failed", "source", src, "error", err)
		return nil, err
	}
	return e, nil
}

// Eval computes the Taylor polynomial of e about the evaluator's point, in
// powers of x minus that point.
func (ev *Evaluator) Eval(ctx context.Context, e *Expr) (series.Series, error) {
	ctx, span := ev.tracer.startEval(ctx, e.src, ev.degree, ev.point)
	defer span.End()
	s, err := ev.walk(e.root)
	if err != nil {
		recordError(span, err)
		ev.logger.DebugContext(ctx, "expansion failed", "source", e.src, "error", err)
		return series.Series{}, err
	}
	s = s.Truncate(ev.degree)
	span.SetAttributes(maxPowAttr(s.MaxPow))
	ev.logger.DebugContext(ctx, "expanded", "source", e.src, "point", ev.point, "degree", ev.degree, "max_pow", s.MaxPow)
	return s, nil
}

// EvalString parses and expands an expression.
func (ev *Evaluator) EvalString(ctx context.Context, src string) (series.Series, error) {
	e, err := ev.Parse(ctx, src)
	if err != nil {
		return series.Series{}, err
	}
	return ev.Eval(ctx, e)
}

// walk expands the subtree at n in powers of u = x - point, using the whole
// window.
func (ev *Evaluator) walk(n *Node) (series.Series, error) {
	switch {
	case n.Kind == Var:
		return series.FromCoefs(ev.point, 1), nil
	case n.Kind == Const:
		return series.Const(n.Value), nil
	case n.Kind == Neg:
		s, err := ev.walk(n.First)
		if err != nil {
			return series.Series{}, err
		}
		return series.Scale(s, -1), nil
	case n.Kind.IsFunc():
		g, err := ev.walk(n.First)
		if err != nil {
			return series.Series{}, err
		}
		return apply(n.Kind, g)
	case n.Kind.IsBinary():
		l, err := ev.walk(n.First)
		if err != nil {
			return series.Series{}, err
		}
		r, err := ev.walk(n.Second)
		if err != nil {
			return series.Series{}, err
		}
		switch n.Kind {
		case Add:
			return series.Add(l, r), nil
		case Sub:
			return series.Sub(l, r), nil
		case Mul:
			return series.Mul(l, r), nil
		case Div:
			return series.Div(l, r)
		case Pow:
			return power(l, r)
		}
	}
	panic("taylor: invalid AST node " + n.Kind.String())
}

// apply returns tag(g): the expansion of tag about the constant term of g,
// composed with the rest of g.
func apply(tag Kind, g series.Series) (series.Series, error) {
	k, err := expansion(tag, g.Coef[0])
	if err != nil {
		return series.Series{}, err
	}
	h := g
	h.Coef[0] = 0
	return series.Compose(k, h), nil
}

// power returns f^g. Constant integer exponents use repeated multiplication;
// anything else is exp(g ln f) and needs f positive at the expansion point.
func power(f, g series.Series) (series.Series, error) {
	if g.IsConst() {
		n := g.Coef[0]
		if n == math.Trunc(n) && math.Abs(n) <= maxIntPow {
			return intPow(f, int(n))
		}
	}
	if f.Coef[0] <= 0 {
		return series.Series{}, DomainError{X: f.Coef[0], Func: "^"}
	}
	lf, err := apply(Ln, f)
	if err != nil {
		return series.Series{}, err
	}
	return apply(Exp, series.Mul(g, lf))
}

func intPow(f series.Series, n int) (series.Series, error) {
	neg := n < 0
	if neg {
		n = -n
	}
	r := series.Const(1)
	for b := f; n > 0; n >>= 1 {
		if n&1 == 1 {
			r = series.Mul(r, b)
		}
		b = series.Mul(b, b)
	}
	if neg {
		return series.Div(series.Const(1), r)
	}
	return r, nil
}

// Expand rewrites a series in powers of x-a as a polynomial in x.
func Expand(s series.Series, a float64) series.Series {
	return series.Shift(s, -a)
}
