package series

// Shift returns s(u+a) re-expanded in powers of u. Each coefficient c at power
// p contributes c·C(p,i)·a^i to power p-i. Expanding a Maclaurin series with
// Shift(s, a) centers it at a; Shift(s, -a) turns a series in powers of x-a
// back into powers of x.
func Shift(s Series, a float64) Series {
	if a == 0 {
		return s
	}
	var r Series
	r.MaxPow = s.MaxPow
	for p := 0; p <= s.MaxPow; p++ {
		c := s.Coef[p]
		if c == 0 {
			continue
		}
		ai := 1.0
		for i := 0; i <= p; i++ {
			r.Coef[p-i] += c * Binomial(p, i) * ai
			ai *= a
		}
	}
	return r
}

// Binomial returns the binomial coefficient C(n, k), or 0 if k is not in
// [0, n].
func Binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	r := 1.0
	for i := 0; i < k; i++ {
		r = r * float64(n-i) / float64(i+1)
	}
	return r
}
