// Package series implements arithmetic on truncated power series.
//
// A Series always holds exactly Window coefficients, indexed by power. Any
// operation whose exact result would have terms of degree Window or higher
// drops those terms; truncation is never an error.
package series

// Window is the number of coefficients in every Series. The highest
// representable power is Window-1.
const Window = 30

// Series is a truncated power series. Coef[k] is the coefficient of the k-th
// power. MaxPow is the highest power considered meaningful for the value; it
// is always in [0, Window). Coefficients above MaxPow are zero.
type Series struct {
	Coef   [Window]float64
	MaxPow int
}

// Const returns the series of a constant.
func Const(c float64) Series {
	var s Series
	s.Coef[0] = c
	return s
}

// Monomial returns c times the k-th power. Panics if k is outside the window.
func Monomial(c float64, k int) Series {
	if k < 0 || k >= Window {
		panic("series: monomial power out of range")
	}
	var s Series
	s.Coef[k] = c
	s.MaxPow = k
	return s
}

// FromCoefs creates a series from coefficients in increasing powers.
// Coefficients past the window are dropped.
func FromCoefs(coefs ...float64) Series {
	var s Series
	n := copy(s.Coef[:], coefs)
	if n > 0 {
		s.MaxPow = n - 1
	}
	return s
}

// Lead returns the coefficient at MaxPow.
func (s Series) Lead() float64 {
	return s.Coef[s.MaxPow]
}

// Degree returns the highest power at or below MaxPow with a nonzero
// coefficient, or -1 if the series is zero.
func (s Series) Degree() int {
	for k := s.MaxPow; k >= 0; k-- {
		if s.Coef[k] != 0 {
			return k
		}
	}
	return -1
}

// Order returns the lowest power with a nonzero coefficient, or -1 if the
// series is zero.
func (s Series) Order() int {
	for k := 0; k <= s.MaxPow; k++ {
		if s.Coef[k] != 0 {
			return k
		}
	}
	return -1
}

// IsZero returns whether every coefficient is zero.
func (s Series) IsZero() bool {
	return s.Degree() < 0
}

// IsConst returns whether every coefficient above the constant term is zero.
func (s Series) IsConst() bool {
	return s.Degree() <= 0
}

// Truncate drops every term above power d. Negative d is treated as zero.
func (s Series) Truncate(d int) Series {
	if d < 0 {
		d = 0
	}
	for k := d + 1; k < Window; k++ {
		s.Coef[k] = 0
	}
	if s.MaxPow > d {
		s.MaxPow = d
	}
	return s
}

// At evaluates the series at u using Horner's rule.
func (s Series) At(u float64) float64 {
	r := 0.0
	for k := s.MaxPow; k >= 0; k-- {
		r = r*u + s.Coef[k]
	}
	return r
}

// clamp limits a power to the window.
func clamp(p int) int {
	if p >= Window {
		return Window - 1
	}
	return p
}
