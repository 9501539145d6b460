package taylor_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	taylor "github.com/andrejajanja/taylor-compiler"
	"github.com/andrejajanja/taylor-compiler/series"
)

func coefs(t *testing.T, want []float64, got series.Series, tol float64) {
	t.Helper()
	for k := range got.Coef {
		w := 0.0
		if k < len(want) {
			w = want[k]
		}
		assert.InDelta(t, w, got.Coef[k], tol, "coefficient %d of %v", k, got)
	}
}

func TestEvaluator(t *testing.T) {
	cases := []struct {
		name string
		src  string
		at   float64
		deg  int
		want []float64
	}{
		{"const", "2.5", 0, 5, []float64{2.5}},
		{"var", "x", 0, 5, []float64{0, 1}},
		{"var-shifted", "x", 3, 5, []float64{3, 1}},
		{"poly", "3*x^2-2*x+1", 0, 5, []float64{1, -2, 3}},
		{"cube-shifted", "x^3", 2, 5, []float64{8, 12, 6, 1}},
		{"neg", "-x^2", 0, 5, []float64{0, 0, -1}},
		{"exp", "e^(x)", 0, 5, []float64{1, 1, 1.0 / 2, 1.0 / 6, 1.0 / 24, 1.0 / 120}},
		{"exp-linear", "e^(2*x)", 0, 3, []float64{1, 2, 2, 4.0 / 3}},
		{"pythagoras", "sin(x)^2+cos(x)^2", 0, 10, []float64{1}},
		{"pythagoras-shifted", "sin(x)^2+cos(x)^2", 0.7, 10, []float64{1}},
		{"quotient", "(x^2-1)/(x-1)", 0, 5, []float64{1, 1}},
		{"cancel", "sin(x)/x", 0, 4, []float64{1, 0, -1.0 / 6, 0, 1.0 / 120}},
		{"reciprocal", "1/x", 1, 3, []float64{1, -1, 1, -1}},
		{"neg-pow", "x^-1", 1, 3, []float64{1, -1, 1, -1}},
		{"sqrt-pow", "x^0.5", 4, 2, []float64{2, 1.0 / 4, -1.0 / 64}},
		{"const-base", "2^x", 0, 2, []float64{1, math.Ln2, math.Ln2 * math.Ln2 / 2}},
		{"const-func", "sin(1)+x", 0, 3, []float64{math.Sin(1), 1}},
		{"nested", "ln(e^(x))", 0, 5, []float64{0, 1}},
		{"sqrt-square", "sqrt(x^2+1)", 0, 4, []float64{1, 0, 1.0 / 2, 0, -1.0 / 8}},
		{"atg-tg", "atg(tg(x))", 0, 7, []float64{0, 1}},
		{"asin-sin", "asin(sin(x))", 0, 7, []float64{0, 1}},
		{"truncated", "e^(x)", 0, 0, []float64{1}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			ev, err := taylor.NewEvaluator(taylor.Degree(c.deg), taylor.Around(c.at))
			require.NoError(t, err)
			s, err := ev.EvalString(context.Background(), c.src)
			require.NoError(t, err)
			assert.LessOrEqual(t, s.MaxPow, c.deg)
			coefs(t, c.want, s, 1e-9)
		})
	}
}

func TestEvaluatorAgreesWithContext(t *testing.T) {
	// Near the expansion point, the polynomial and the function agree.
	srcs := []string{
		"sin(x)*e^(x+7)-tg(x)/ln(x+9)",
		"sqrt(1+x)*acos(x/2)",
		"actg(x)^2 - x^x",
		"ctg(x+1)/(1+x^2)",
		"asin(x)+atg(x)*cos(3*x)",
		"-e^(-x^2)",
	}
	const a, h = 0.5, 0.01
	ev, err := taylor.NewEvaluator(taylor.Degree(12), taylor.Around(a))
	require.NoError(t, err)
	ctx := taylor.NewContext(taylor.Prec(128))
	for _, src := range srcs {
		e, err := taylor.Parse(src)
		require.NoError(t, err, src)
		s, err := ev.Eval(context.Background(), e)
		require.NoError(t, err, src)
		f := ctx.Func(e)
		for _, u := range []float64{-h, 0, h} {
			want, err := f(a + u)
			require.NoError(t, err, src)
			assert.InDelta(t, want, s.At(u), 1e-9*math.Max(1, math.Abs(want)), "%s at %g", src, a+u)
		}
	}
}

func TestEvaluatorErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		check func(error) bool
	}{
		{"zero-series", "1/(x-x)", func(err error) bool {
			var d *series.DivisionError
			return errors.As(err, &d) && strings.Contains(d.Reason, "zero series")
		}},
		{"vanishing-divisor", "1/x", func(err error) bool {
			var d *series.DivisionError
			return errors.As(err, &d)
		}},
		{"ln", "ln(x)", func(err error) bool {
			var d taylor.DomainError
			return errors.As(err, &d) && d.Func == "ln" && d.X == 0
		}},
		{"ln-inner", "sin(x)*e^(x+7)-tg(x)/ln(x-9)", func(err error) bool {
			var d taylor.DomainError
			return errors.As(err, &d) && d.Func == "ln" && d.X == -9
		}},
		{"pow", "(-2)^x", func(err error) bool {
			var d taylor.DomainError
			return errors.As(err, &d) && d.Func == "^"
		}},
		{"parse", "2x", func(err error) bool {
			var d *taylor.OperandError
			return errors.As(err, &d)
		}},
	}
	ev, err := taylor.NewEvaluator()
	require.NoError(t, err)
	for _, c := range cases {
		_, err := ev.EvalString(context.Background(), c.src)
		assert.True(t, c.check(err), "%s: %q gave %v", c.name, c.src, err)
	}
}

func TestNewEvaluatorDegree(t *testing.T) {
	for _, d := range []int{-1, taylor.MaxDegree + 1} {
		_, err := taylor.NewEvaluator(taylor.Degree(d))
		var derr *taylor.DegreeError
		assert.True(t, errors.As(err, &derr), "degree %d gave %v", d, err)
	}
	ev, err := taylor.NewEvaluator()
	require.NoError(t, err)
	assert.Equal(t, taylor.DefaultDegree, ev.Degree())
	assert.Zero(t, ev.Point())
}

func TestExpand(t *testing.T) {
	// x^3 about 2, rewritten in powers of x, is x^3 again.
	ev, err := taylor.NewEvaluator(taylor.Degree(5), taylor.Around(2))
	require.NoError(t, err)
	s, err := ev.EvalString(context.Background(), "x^3")
	require.NoError(t, err)
	coefs(t, []float64{0, 0, 0, 1}, taylor.Expand(s, 2), 1e-12)
	assert.Equal(t, "x^3", taylor.Expand(s, 2).String())
}

func TestEvaluatorLogs(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ev, err := taylor.NewEvaluator(taylor.WithLogger(l))
	require.NoError(t, err)
	_, err = ev.EvalString(context.Background(), "sin(x)")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "msg=expanded")
	assert.Contains(t, buf.String(), "source=sin(x)")

	buf.Reset()
	_, err = ev.EvalString(context.Background(), "ln(x)")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "msg=\"expansion failed\"")
}

func TestEvaluatorCache(t *testing.T) {
	c := taylor.NewCache()
	ev, err := taylor.NewEvaluator(taylor.WithCache(c))
	require.NoError(t, err)
	ctx := context.Background()
	a, err := ev.Parse(ctx, "x+1")
	require.NoError(t, err)
	b, err := ev.Parse(ctx, "x+1")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, c.Len())
}
