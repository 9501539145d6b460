package taylor

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// pointFunc computes an elementary function at a point. It sets out to the
// result at the precision of out. If in is outside the function's domain, it
// panics with a DomainError or big.ErrNaN.
type pointFunc func(out, in *big.Float) *big.Float

var pointfuncs = [numKinds]pointFunc{
	Exp: bigfloat.Exp,
	Ln: func(out, in *big.Float) *big.Float {
		if in.Sign() <= 0 {
			x, _ := in.Float64()
			panic(DomainError{X: x, Func: Ln.String()})
		}
		return bigfloat.Log(out, in)
	},
	Sqrt: func(out, in *big.Float) *big.Float {
		if in.Sign() < 0 {
			x, _ := in.Float64()
			panic(DomainError{X: x, Func: Sqrt.String()})
		}
		return out.Sqrt(in)
	},

	// bigfloat has no trigonometry, so these go through float64.
	Sin:  viaFloat(Sin, math.Sin),
	Cos:  viaFloat(Cos, math.Cos),
	Tan:  viaFloat(Tan, math.Tan),
	Cot:  viaFloat(Cot, func(x float64) float64 { return math.Cos(x) / math.Sin(x) }),
	Atan: viaFloat(Atan, math.Atan),
	Acot: viaFloat(Acot, func(x float64) float64 { return math.Pi/2 - math.Atan(x) }),
	Asin: viaFloat(Asin, math.Asin),
	Acos: viaFloat(Acos, math.Acos),
}

// viaFloat wraps a float64 function. Results that are NaN or infinite on a
// finite argument are domain errors.
func viaFloat(k Kind, f func(float64) float64) pointFunc {
	return func(out, in *big.Float) *big.Float {
		x, _ := in.Float64()
		r := f(x)
		if math.IsNaN(r) || math.IsInf(r, 0) && !math.IsInf(x, 0) {
			panic(DomainError{X: x, Func: k.String()})
		}
		return out.SetFloat64(r)
	}
}

// call evaluates the function of kind k at in and stores the result in r.
func call(k Kind, prec uint, in, r *big.Float) error {
	f := pointfuncs[k]
	if f == nil {
		panic("taylor: no point function for " + k.String())
	}
	// in may alias r.
	out := new(big.Float).SetPrec(prec)
	if err := guard(func() { f(out, in) }); err != nil {
		return err
	}
	r.Set(out)
	return nil
}

// guard calls f, turning domain panics from it into errors.
func guard(f func()) (err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		err = p.(error) // panic if not error
		if errors.As(err, &DomainError{}) || errors.As(err, &big.ErrNaN{}) {
			return
		}
		panic(err)
	}()
	f()
	return nil
}

// DomainError is an error returned when a function is applied to an argument
// outside its domain, either at a point or at the center of an expansion.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is a name identifying the function.
	Func string
}

func (err DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}
