package series

// Add returns p + q.
func Add(p, q Series) Series {
	var r Series
	for k := range r.Coef {
		r.Coef[k] = p.Coef[k] + q.Coef[k]
	}
	r.MaxPow = max(p.MaxPow, q.MaxPow)
	return r
}

// Sub returns p - q.
func Sub(p, q Series) Series {
	var r Series
	for k := range r.Coef {
		r.Coef[k] = p.Coef[k] - q.Coef[k]
	}
	r.MaxPow = max(p.MaxPow, q.MaxPow)
	return r
}

// Scale returns c·p.
func Scale(p Series, c float64) Series {
	for k := range p.Coef {
		p.Coef[k] *= c
	}
	return p
}

// Mul returns p·q. Products landing at power Window or above are dropped.
func Mul(p, q Series) Series {
	var r Series
	for i := 0; i <= p.MaxPow; i++ {
		if p.Coef[i] == 0 {
			continue
		}
		for j := 0; i+j < Window && j <= q.MaxPow; j++ {
			r.Coef[i+j] += p.Coef[i] * q.Coef[j]
		}
	}
	r.MaxPow = clamp(p.MaxPow + q.MaxPow)
	return r
}

// Div returns the quotient p/q as a power series within the window.
//
// When q vanishes to some order v at the origin, p must vanish to at least the
// same order and the common factor is cancelled first; the top v terms of the
// quotient are then unknown and MaxPow is reduced to match. Coefficients are
// produced from the constant term up, so (p·q)/q reproduces p in the window.
func Div(p, q Series) (Series, error) {
	if q.IsZero() {
		return Series{}, &DivisionError{Num: p, Den: q, Reason: "division by the zero series"}
	}
	v := q.Order()
	if v > 0 {
		if o := p.Order(); o >= 0 && o < v {
			return Series{}, &DivisionError{Num: p, Den: q, Reason: "divisor vanishes at the expansion point"}
		}
		p = lower(p, v)
		q = lower(q, v)
	}
	var r Series
	top := Window - 1 - v
	d := q.Coef[0]
	for k := 0; k <= top; k++ {
		c := p.Coef[k]
		for j := 1; j <= k && j <= q.MaxPow; j++ {
			c -= q.Coef[j] * r.Coef[k-j]
		}
		r.Coef[k] = c / d
	}
	r.MaxPow = top
	if deg := r.Degree(); deg >= 0 {
		r.MaxPow = deg
	} else {
		r.MaxPow = 0
	}
	return r, nil
}

// DivMod performs polynomial long division of p by q, returning the quotient
// and remainder such that p = q·quo + rem with deg(rem) < deg(q). The leading
// degree of the remainder is found afresh on every step.
func DivMod(p, q Series) (quo, rem Series, err error) {
	dq := q.Degree()
	if dq < 0 {
		return Series{}, Series{}, &DivisionError{Num: p, Den: q, Reason: "division by the zero series"}
	}
	rem = p
	quo.MaxPow = Window - 1
	lead := q.Coef[dq]
	for {
		dr := rem.Degree()
		if dr < dq {
			break
		}
		k := dr - dq
		t := rem.Coef[dr] / lead
		quo.Coef[k] += t
		for j := 0; j < dq; j++ {
			rem.Coef[j+k] -= t * q.Coef[j]
		}
		rem.Coef[dr] = 0
	}
	quo.MaxPow = max(quo.Degree(), 0)
	rem.MaxPow = max(rem.Degree(), 0)
	return quo, rem, nil
}

// Compose substitutes inner for the variable of outer. inner must have a zero
// constant term so that every power of it stays inside the window.
func Compose(outer, inner Series) Series {
	if inner.Coef[0] != 0 {
		panic("series: composition with nonzero constant term")
	}
	r := Const(outer.Coef[outer.MaxPow])
	for k := outer.MaxPow - 1; k >= 0; k-- {
		r = Mul(r, inner)
		r.Coef[0] += outer.Coef[k]
	}
	return r
}

// Integral returns the antiderivative of p whose constant term is c. The
// term of p at the top of the window falls out.
func Integral(p Series, c float64) Series {
	var r Series
	r.Coef[0] = c
	for k := 0; k < Window-1; k++ {
		r.Coef[k+1] = p.Coef[k] / float64(k+1)
	}
	r.MaxPow = clamp(p.MaxPow + 1)
	return r
}

// lower divides s by the v-th power, which must divide it exactly.
func lower(s Series, v int) Series {
	var r Series
	copy(r.Coef[:], s.Coef[v:])
	r.MaxPow = max(s.MaxPow-v, 0)
	return r
}

// DivisionError is an error returned when a series cannot be divided by
// another.
type DivisionError struct {
	// Num and Den are the dividend and divisor.
	Num, Den Series
	// Reason describes the failure.
	Reason string
}

func (err *DivisionError) Error() string {
	return err.Reason + ": (" + err.Num.String() + ") / (" + err.Den.String() + ")"
}
