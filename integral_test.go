package taylor_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	taylor "github.com/andrejajanja/taylor-compiler"
	"github.com/andrejajanja/taylor-compiler/series"
)

func identity(x float64) (float64, error) { return x, nil }

func TestRiemann(t *testing.T) {
	// The left sum of x over [0, 1] with n steps is (n-1)/(2n).
	r, err := taylor.Riemann(identity, 0, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 3.0/8, r)

	r, err = taylor.Riemann(identity, 0, 1, 100000)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, r, 1e-5)

	r, err = taylor.Riemann(identity, 2, 2, 10)
	require.NoError(t, err)
	assert.Zero(t, r)

	e, err := taylor.Parse("cos(x)")
	require.NoError(t, err)
	r, err = taylor.Riemann(taylor.NewContext().Func(e), 0, math.Pi/2, 100000)
	require.NoError(t, err)
	assert.InDelta(t, 1, r, 1e-4)
}

func TestRiemannErrors(t *testing.T) {
	cases := []struct {
		name   string
		lo, hi float64
		steps  uint64
	}{
		{"reversed", 1, 0, 10},
		{"no-steps", 0, 1, 0},
		{"nan", math.NaN(), 1, 10},
	}
	for _, c := range cases {
		_, err := taylor.Riemann(identity, c.lo, c.hi, c.steps)
		var rerr *taylor.RangeError
		assert.True(t, errors.As(err, &rerr), "%s gave %v", c.name, err)
	}

	boom := errors.New("boom")
	_, err := taylor.Riemann(func(float64) (float64, error) { return 0, boom }, 0, 1, 10)
	assert.ErrorIs(t, err, boom)

	e, err := taylor.Parse("ln(x)")
	require.NoError(t, err)
	_, err = taylor.Riemann(taylor.NewContext().Func(e), 0, 1, 10)
	var derr taylor.DomainError
	assert.True(t, errors.As(err, &derr), "ln over [0, 1] gave %v", err)
}

func TestIntegrate(t *testing.T) {
	ev, err := taylor.NewEvaluator(taylor.Degree(20))
	require.NoError(t, err)
	s, err := ev.EvalString(context.Background(), "e^(x)")
	require.NoError(t, err)
	r, err := taylor.Integrate(s, 0, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, math.E-1, r, 1e-12)

	// x about 2 is 2 + (x-2).
	r, err = taylor.Integrate(series.FromCoefs(2, 1), 2, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, r, 1e-15)

	// The top coefficient still counts.
	r, err = taylor.Integrate(series.Monomial(1, series.Window-1), 0, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/series.Window, r, 1e-15)

	_, err = taylor.Integrate(s, 0, 1, 0)
	var rerr *taylor.RangeError
	assert.True(t, errors.As(err, &rerr))
}

func TestIntegrateAgreesWithRiemann(t *testing.T) {
	const a = 0.25
	ev, err := taylor.NewEvaluator(taylor.Degree(taylor.MaxDegree), taylor.Around(a))
	require.NoError(t, err)
	e, err := ev.Parse(context.Background(), "sin(x)*e^(x)")
	require.NoError(t, err)
	s, err := ev.Eval(context.Background(), e)
	require.NoError(t, err)
	p, err := taylor.Integrate(s, a, 0, 0.5)
	require.NoError(t, err)
	r, err := taylor.Riemann(taylor.NewContext().Func(e), 0, 0.5, 200000)
	require.NoError(t, err)
	assert.InDelta(t, p, r, 1e-5)
}
