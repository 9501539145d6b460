package taylor

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrejajanja/taylor-compiler/series"
)

func assertCoefs(t *testing.T, want []float64, got series.Series, tol float64) {
	t.Helper()
	for k, w := range want {
		assert.InDelta(t, w, got.Coef[k], tol, "coefficient %d of %v", k, got)
	}
}

func TestTaylor(t *testing.T) {
	cases := []struct {
		name string
		tag  Kind
		a    float64
		want []float64
	}{
		{"exp", Exp, 0, []float64{1, 1, 1.0 / 2, 1.0 / 6, 1.0 / 24, 1.0 / 120}},
		{"sin", Sin, 0, []float64{0, 1, 0, -1.0 / 6, 0, 1.0 / 120, 0, -1.0 / 5040}},
		{"cos", Cos, 0, []float64{1, 0, -1.0 / 2, 0, 1.0 / 24, 0, -1.0 / 720}},
		{"tg", Tan, 0, []float64{0, 1, 0, 1.0 / 3, 0, 2.0 / 15, 0, 17.0 / 315}},
		{"ln", Ln, 1, []float64{0, 1, -1.0 / 2, 1.0 / 3, -1.0 / 4, 1.0 / 5}},
		{"ln-e", Ln, math.E, []float64{1, 1 / math.E, -1 / (2 * math.E * math.E)}},
		{"sqrt", Sqrt, 1, []float64{1, 1.0 / 2, -1.0 / 8, 1.0 / 16, -5.0 / 128}},
		{"sqrt-4", Sqrt, 4, []float64{2, 1.0 / 4, -1.0 / 64}},
		{"atg", Atan, 0, []float64{0, 1, 0, -1.0 / 3, 0, 1.0 / 5, 0, -1.0 / 7}},
		{"atg-1", Atan, 1, []float64{math.Pi / 4, 1.0 / 2, -1.0 / 4, 1.0 / 12}},
		{"actg", Acot, 0, []float64{math.Pi / 2, -1, 0, 1.0 / 3, 0, -1.0 / 5}},
		{"asin", Asin, 0, []float64{0, 1, 0, 1.0 / 6, 0, 3.0 / 40}},
		{"asin-half", Asin, 0.5, []float64{math.Pi / 6, 1 / math.Sqrt(0.75)}},
		{"acos", Acos, 0, []float64{math.Pi / 2, -1, 0, -1.0 / 6}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			s, err := Taylor(c.tag, c.a, len(c.want)-1)
			require.NoError(t, err)
			assert.Equal(t, len(c.want)-1, s.MaxPow)
			assertCoefs(t, c.want, s, 1e-12)
			for k := len(c.want); k < series.Window; k++ {
				assert.Zero(t, s.Coef[k], "coefficient %d above degree", k)
			}
		})
	}
}

func TestTaylorRecentered(t *testing.T) {
	// Every derivative of e^x at 0.5 is e^0.5.
	s, err := Taylor(Exp, 0.5, MaxDegree)
	require.NoError(t, err)
	f := math.Exp(0.5)
	for k := 0; k < 10; k++ {
		assert.InEpsilon(t, f, s.Coef[k], 1e-12, "coefficient %d", k)
		f /= float64(k + 1)
	}

	s, err = Taylor(Sin, 100, 3)
	require.NoError(t, err)
	assertCoefs(t, []float64{math.Sin(100), math.Cos(100), -math.Sin(100) / 2, -math.Cos(100) / 6}, s, 1e-12)

	s, err = Taylor(Exp, -3.7, 2)
	require.NoError(t, err)
	assertCoefs(t, []float64{math.Exp(-3.7), math.Exp(-3.7), math.Exp(-3.7) / 2}, s, 1e-14)
}

func TestTaylorAgreesWithFunction(t *testing.T) {
	// Near the center, every expansion approximates its function.
	const a, h = 0.3, 0.01
	fns := map[Kind]func(float64) float64{
		Sin:  math.Sin,
		Cos:  math.Cos,
		Tan:  math.Tan,
		Cot:  func(x float64) float64 { return 1 / math.Tan(x) },
		Ln:   math.Log,
		Exp:  math.Exp,
		Sqrt: math.Sqrt,
		Atan: math.Atan,
		Acot: func(x float64) float64 { return math.Pi/2 - math.Atan(x) },
		Asin: math.Asin,
		Acos: math.Acos,
	}
	for k := KindNone; k < numKinds; k++ {
		if !k.IsFunc() {
			continue
		}
		f := fns[k]
		require.NotNil(t, f, "no reference for %v", k)
		s, err := Taylor(k, a, 12)
		require.NoError(t, err, "expanding %v", k)
		assert.InDelta(t, f(a+h), s.At(h), 1e-12, "%v at %g", k, a+h)
	}
}

func TestTaylorErrors(t *testing.T) {
	for _, d := range []int{-1, MaxDegree + 1, 100} {
		_, err := Taylor(Exp, 0, d)
		var derr *DegreeError
		if assert.True(t, errors.As(err, &derr), "degree %d gave %v", d, err) {
			assert.Equal(t, d, derr.Degree)
		}
	}

	domain := []struct {
		tag Kind
		a   float64
	}{
		{Ln, 0},
		{Ln, -1},
		{Sqrt, 0},
		{Sqrt, -4},
		{Asin, 1},
		{Acos, -1},
		{Asin, 2},
		{Cot, 0},
	}
	for _, c := range domain {
		_, err := Taylor(c.tag, c.a, 5)
		var derr DomainError
		if assert.True(t, errors.As(err, &derr), "%v at %g gave %v", c.tag, c.a, err) {
			assert.Equal(t, c.tag.String(), derr.Func)
			assert.Equal(t, c.a, derr.X)
		}
	}

	assert.Panics(t, func() { Taylor(Add, 0, 5) })
}
