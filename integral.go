package taylor

import (
	"strconv"

	"github.com/andrejajanja/taylor-compiler/series"
)

// Riemann approximates the integral of f over [lo, hi] by a left Riemann sum
// with the given number of equal steps. The rectangles are summed from the
// last one down.
func Riemann(f func(float64) (float64, error), lo, hi float64, steps uint64) (float64, error) {
	if err := checkRange(lo, hi, steps); err != nil {
		return 0, err
	}
	if lo == hi {
		return 0, nil
	}
	dx := (hi - lo) / float64(steps)
	var sum float64
	for i := steps; i > 0; i-- {
		y, err := f(lo + float64(i-1)*dx)
		if err != nil {
			return 0, err
		}
		sum += y
	}
	return sum * dx, nil
}

// Integrate computes the exact integral over [lo, hi] of the polynomial s in
// powers of x-a.
func Integrate(s series.Series, a, lo, hi float64) (float64, error) {
	if err := checkRange(lo, hi, 1); err != nil {
		return 0, err
	}
	return antiderivative(s, hi-a) - antiderivative(s, lo-a), nil
}

// antiderivative evaluates the antiderivative of s that vanishes at 0. It
// doesn't go through series.Integral, so the top coefficient survives.
func antiderivative(s series.Series, u float64) float64 {
	var r float64
	for k := s.MaxPow; k >= 0; k-- {
		r = r*u + s.Coef[k]/float64(k+1)
	}
	return r * u
}

func checkRange(lo, hi float64, steps uint64) error {
	switch {
	case !(lo <= hi):
		return &RangeError{Lo: lo, Hi: hi, Steps: steps, Reason: "lower bound above upper bound"}
	case steps == 0:
		return &RangeError{Lo: lo, Hi: hi, Steps: steps, Reason: "no steps"}
	}
	return nil
}

// RangeError is an error returned for an invalid integration range.
type RangeError struct {
	Lo, Hi float64
	Steps  uint64
	Reason string
}

func (err *RangeError) Error() string {
	return "invalid integration range [" + strconv.FormatFloat(err.Lo, 'g', -1, 64) + ", " + strconv.FormatFloat(err.Hi, 'g', -1, 64) + "] with " + strconv.FormatUint(err.Steps, 10) + " steps: " + err.Reason
}
