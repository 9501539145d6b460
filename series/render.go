package series

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// String formats the series as a polynomial in x with the shortest exact
// coefficients, e.g. "-0.5*x^2 + x + 1".
func (s Series) String() string {
	return s.Render("x", -1)
}

// Render formats the series as a polynomial in variable. Terms are ordered by
// descending power and zero terms are omitted. A coefficient of 1 or -1 is not
// written except on the constant term; -1 leaves only the sign, as in -x^2.
// The first power is written without an exponent. If places is nonnegative,
// coefficients are rounded to that many decimal places first, and terms which
// round to zero are omitted.
func (s Series) Render(variable string, places int32) string {
	var b strings.Builder
	for k := s.MaxPow; k >= 0; k-- {
		text, neg, one := coefText(s.Coef[k], places)
		if text == "" {
			continue
		}
		switch {
		case b.Len() == 0 && neg:
			b.WriteByte('-')
		case b.Len() == 0:
		case neg:
			b.WriteString(" - ")
		default:
			b.WriteString(" + ")
		}
		if k == 0 {
			b.WriteString(text)
			continue
		}
		if !one {
			b.WriteString(text)
			b.WriteByte('*')
		}
		b.WriteString(variable)
		if k > 1 {
			b.WriteByte('^')
			b.WriteString(strconv.Itoa(k))
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

// coefText formats the magnitude of a coefficient. The result is empty if the
// coefficient is or rounds to zero.
func coefText(c float64, places int32) (text string, neg, one bool) {
	if places < 0 {
		if c == 0 {
			return "", false, false
		}
		a := math.Abs(c)
		return strconv.FormatFloat(a, 'g', -1, 64), c < 0, a == 1
	}
	d := decimal.NewFromFloat(c).Round(places)
	if d.IsZero() {
		return "", false, false
	}
	a := d.Abs()
	return a.String(), d.IsNegative(), a.Equal(decimal.NewFromInt(1))
}
