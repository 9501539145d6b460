package taylor

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"

	"github.com/andrejajanja/taylor-compiler/series"
)

// MaxDegree is the highest degree of a Taylor polynomial.
const MaxDegree = series.Window - 1

// Taylor returns the Taylor polynomial of an elementary function about a, in
// powers of x-a, truncated at degree d. The k-th coefficient approximates the
// k-th derivative at a divided by k!. Ln expands ln x itself, so it needs a
// positive; the ln(1+x) series is Taylor(Ln, 1, d).
func Taylor(tag Kind, a float64, d int) (series.Series, error) {
	if d < 0 || d > MaxDegree {
		return series.Series{}, &DegreeError{Degree: d}
	}
	if !tag.IsFunc() {
		panic("taylor: no series for " + tag.String())
	}
	s, err := expansion(tag, a)
	if err != nil {
		return series.Series{}, err
	}
	return s.Truncate(d), nil
}

// expansion returns the expansion of tag about a using the whole window.
func expansion(tag Kind, a float64) (series.Series, error) {
	switch tag {
	case Exp:
		// e^(a+u) = e^n e^(r+u) keeps the shift small.
		n := math.Round(a)
		return series.Scale(series.Shift(maclaurin(Exp), a-n), math.Exp(n)), nil
	case Sin, Cos:
		r := math.Remainder(a, 2*math.Pi)
		return series.Shift(maclaurin(tag), r), nil
	case Tan:
		return quotient(tag, a, Sin, Cos)
	case Cot:
		return quotient(tag, a, Cos, Sin)
	case Ln:
		if a <= 0 {
			return series.Series{}, DomainError{X: a, Func: tag.String()}
		}
		// ln(a+u) = ln a + ln(1 + u/a)
		s := dilate(log1p(), 1/a)
		s.Coef[0] = logf(a)
		return s, nil
	case Sqrt:
		if a <= 0 {
			return series.Series{}, DomainError{X: a, Func: tag.String()}
		}
		// sqrt(a+u) = sqrt(a) (1 + u/a)^(1/2)
		return series.Scale(dilate(binomial(0.5), 1/a), math.Sqrt(a)), nil
	case Atan, Acot:
		// atan' = 1/(1+y^2)
		d, err := series.Div(series.Const(1), series.FromCoefs(1+a*a, 2*a, 1))
		if err != nil {
			return series.Series{}, err
		}
		s := series.Integral(d, math.Atan(a))
		if tag == Acot {
			s = complement(s)
		}
		return s, nil
	case Asin, Acos:
		if !(-1 < a && a < 1) {
			return series.Series{}, DomainError{X: a, Func: tag.String()}
		}
		// asin' = (1-y^2)^(-1/2), expanded as w0^(-1/2) (1 + (w-w0)/w0)^(-1/2)
		w0 := 1 - a*a
		v := series.Scale(series.FromCoefs(0, -2*a, -1), 1/w0)
		d := series.Scale(series.Compose(binomial(-0.5), v), 1/math.Sqrt(w0))
		s := series.Integral(d, math.Asin(a))
		if tag == Acos {
			s = complement(s)
		}
		return s, nil
	default:
		panic("taylor: no series for " + tag.String())
	}
}

// maclaurin returns the closed-form Maclaurin series of exp, sin, or cos.
func maclaurin(tag Kind) series.Series {
	var s series.Series
	s.MaxPow = MaxDegree
	f := 1.0
	for k := 0; k < series.Window; k++ {
		if k > 0 {
			f *= float64(k)
		}
		switch tag {
		case Exp:
			s.Coef[k] = 1 / f
		case Sin:
			if k%2 == 1 {
				s.Coef[k] = alt(k/2) / f
			}
		case Cos:
			if k%2 == 0 {
				s.Coef[k] = alt(k/2) / f
			}
		default:
			panic("taylor: no closed form for " + tag.String())
		}
	}
	return s
}

// alt returns (-1)^k.
func alt(k int) float64 {
	if k%2 == 0 {
		return 1
	}
	return -1
}

// quotient expands tag as num/den about a.
func quotient(tag Kind, a float64, num, den Kind) (series.Series, error) {
	p, _ := expansion(num, a)
	q, _ := expansion(den, a)
	s, err := series.Div(p, q)
	if err != nil {
		return series.Series{}, DomainError{X: a, Func: tag.String()}
	}
	return s, nil
}

// log1p returns the Maclaurin series of ln(1+v), the integral of 1/(1+v).
func log1p() series.Series {
	g, err := series.Div(series.Const(1), series.FromCoefs(1, 1))
	if err != nil {
		panic(err)
	}
	return series.Integral(g, 0)
}

// binomial returns the Maclaurin series of (1+v)^r.
func binomial(r float64) series.Series {
	var s series.Series
	s.MaxPow = MaxDegree
	c := 1.0
	for k := 0; k < series.Window; k++ {
		s.Coef[k] = c
		c = c * (r - float64(k)) / float64(k+1)
	}
	return s
}

// dilate substitutes c·u for u, multiplying the k-th coefficient by c^k.
func dilate(s series.Series, c float64) series.Series {
	ck := 1.0
	for k := range s.Coef {
		s.Coef[k] *= ck
		ck *= c
	}
	return s
}

// complement returns pi/2 - s.
func complement(s series.Series) series.Series {
	s = series.Scale(s, -1)
	s.Coef[0] += math.Pi / 2
	return s
}

// logf computes ln a for a > 0.
func logf(a float64) float64 {
	x := new(big.Float).SetPrec(128).SetFloat64(a)
	r, _ := bigfloat.Log(new(big.Float).SetPrec(128), x).Float64()
	return r
}

// DegreeError is an error returned when a series is requested at a degree
// outside the window.
type DegreeError struct {
	// Degree is the requested degree.
	Degree int
}

func (err *DegreeError) Error() string {
	return "series degree " + strconv.Itoa(err.Degree) + " out of range [0, " + strconv.Itoa(MaxDegree) + "]"
}
