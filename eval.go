package taylor

import (
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Context is a context for evaluating expressions at a single point. It is
// the reference against which series are checked. It is not safe to use a
// Context concurrently.
type Context struct {
	stack []*big.Float
	nums  map[string]*big.Float
	x     *big.Float
	prec  uint
	err   error
}

// ContextOption configures a Context in NewContext or Clone.
type ContextOption interface {
	ctxOption()
}

type (
	atopt   struct{ x *big.Float }
	precopt uint
)

func (atopt) ctxOption()   {}
func (precopt) ctxOption() {}

// At sets the value of x in the context.
func At(x *big.Float) ContextOption {
	return atopt{x}
}

// Prec sets the mantissa precision, in bits, of every value in the context.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext returns a context with x unset, computing at 64 bits unless a
// Prec option says otherwise.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{nums: make(map[string]*big.Float), prec: 64}
	return ctx.Clone(opts...)
}

// Eval evaluates an expression and returns the result. If an error occurs,
// e.g. x is unset or an argument to a function is outside its domain, then
// the result is nil and ctx.Err returns the error.
func (ctx *Context) Eval(e *Expr) *big.Float {
	// A failed evaluation can leave operands behind.
	for i := range ctx.stack {
		ctx.stack[i] = nil
	}
	ctx.stack = ctx.stack[:0]
	err := e.root.eval(ctx)
	ctx.err = err
	if err != nil {
		return nil
	}
	return ctx.Result()
}

// Result returns the value of the last expression evaluated, or nil if that
// evaluation failed. It panics if nothing has been evaluated yet.
func (ctx *Context) Result() *big.Float {
	if ctx.err != nil {
		return nil
	}
	if n := len(ctx.stack); n != 1 {
		if n == 0 {
			panic("taylor: Context.Result called before evaluating any expression")
		}
		panic("taylor: " + strconv.Itoa(n) + " values left after evaluation")
	}
	return ctx.stack[0]
}

// Err returns the error that occurred during the last evaluation, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// SetX sets the value of x. Returns ctx for chaining.
func (ctx *Context) SetX(x *big.Float) *Context {
	ctx.x = new(big.Float).SetPrec(ctx.prec).Set(x)
	return ctx
}

// X returns a copy of the value of x, or nil if it is unset.
func (ctx *Context) X() *big.Float {
	if ctx.x == nil {
		return nil
	}
	return new(big.Float).Copy(ctx.x)
}

// Prec returns the precision in bits.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Clone returns a context with the same x and precision as ctx, modified by
// opts. Precision options take effect before x is copied, whatever their
// position among opts.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack: make([]*big.Float, 0, cap(ctx.stack)),
		nums:  make(map[string]*big.Float, len(ctx.nums)),
		prec:  ctx.prec,
	}
	// Apply the last precision first, so that values are copied at it.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			n.prec = uint(p)
			break
		}
	}
	// Parsed constants keep their precision, so they can only be reused
	// when it doesn't increase.
	if n.prec <= ctx.prec {
		for k, v := range ctx.nums {
			n.nums[k] = new(big.Float).SetPrec(n.prec).Set(v)
		}
	}
	if ctx.x != nil {
		n.x = new(big.Float).SetPrec(n.prec).Set(ctx.x)
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case atopt:
			n.x = new(big.Float).SetPrec(n.prec).Set(opt.x)
		case precopt:
			// Already done.
		default:
			panic("taylor: unknown option type")
		}
	}
	return &n
}

// Func returns e as a float64 function of x, evaluated in a clone of ctx.
// The returned function is not safe for concurrent use.
func (ctx *Context) Func(e *Expr) func(x float64) (float64, error) {
	c := ctx.Clone()
	var x big.Float
	return func(v float64) (float64, error) {
		c.SetX(x.SetFloat64(v))
		r := c.Eval(e)
		if r == nil {
			return 0, c.Err()
		}
		f, _ := r.Float64()
		return f, nil
	}
}

// push grows the stack by one operand and returns it for the caller to set.
func (ctx *Context) push() *big.Float {
	n := len(ctx.stack)
	if n == cap(ctx.stack) {
		ctx.stack = append(ctx.stack, nil)
	} else {
		ctx.stack = ctx.stack[:n+1]
	}
	if ctx.stack[n] == nil {
		ctx.stack[n] = new(big.Float).SetPrec(ctx.prec)
	}
	return ctx.stack[n]
}

// pop drops the top operand. The returned value is reused by later pushes.
func (ctx *Context) pop() *big.Float {
	r := ctx.top()
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num returns the value of a numeric literal, parsing it at most once.
func (ctx *Context) num(s string) *big.Float {
	if r := ctx.nums[s]; r != nil {
		return r
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 10)
	if err != nil {
		panic("taylor: invalid number: " + s + " (" + err.Error() + ")")
	}
	ctx.nums[s] = r
	return r
}

// eval leaves the value of the subtree at n on top of the stack.
func (n *Node) eval(ctx *Context) error {
	switch {
	case n.Kind == Const:
		ctx.push().Set(ctx.num(n.Text))
		return nil
	case n.Kind == Var:
		if ctx.x == nil {
			return &NameError{Name: Var.String()}
		}
		ctx.push().Set(ctx.x)
		return nil
	case n.Kind == Neg:
		if err := n.First.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		v.Neg(v)
		return nil
	case n.Kind.IsFunc():
		if err := n.First.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		return call(n.Kind, ctx.prec, v, v)
	case !n.Kind.IsBinary():
		panic("taylor: invalid AST node " + n.Kind.String())
	}
	if err := n.First.eval(ctx); err != nil {
		return err
	}
	if err := n.Second.eval(ctx); err != nil {
		return err
	}
	r := ctx.pop()
	l := ctx.top()
	if n.Kind == Pow {
		return pow(ctx.prec, l, r)
	}
	// Infinite operands can still make NaNs.
	return guard(func() {
		switch n.Kind {
		case Add:
			l.Add(l, r)
		case Sub:
			l.Sub(l, r)
		case Mul:
			l.Mul(l, r)
		case Div:
			if r.Sign() == 0 {
				panic(DomainError{X: 0, Func: Div.String()})
			}
			l.Quo(l, r)
		}
	})
}

// pow sets l to l^r.
func pow(prec uint, l, r *big.Float) error {
	switch {
	case l.Sign() == 0:
		switch r.Sign() {
		case -1:
			return DomainError{X: 0, Func: Pow.String()}
		case 0:
			l.SetFloat64(1)
		}
		return nil
	case r.IsInt() && !r.IsInf():
		if n, acc := r.Int64(); acc == big.Exact && -maxIntPow <= n && n <= maxIntPow {
			intPowFloat(prec, l, n)
			return nil
		}
	}
	if l.Signbit() {
		x, _ := l.Float64()
		return DomainError{X: x, Func: Pow.String()}
	}
	out := new(big.Float).SetPrec(prec)
	if err := guard(func() { bigfloat.Pow(out, l, r) }); err != nil {
		return err
	}
	l.Set(out)
	return nil
}

// intPowFloat sets l to l^n by repeated squaring.
func intPowFloat(prec uint, l *big.Float, n int64) {
	neg := n < 0
	if neg {
		n = -n
	}
	b := new(big.Float).SetPrec(prec).Set(l)
	l.SetFloat64(1)
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			l.Mul(l, b)
		}
		b.Mul(b, b)
	}
	if neg {
		l.Quo(new(big.Float).SetPrec(prec).SetFloat64(1), l)
	}
}

// EvalAt is a shortcut to parse an expression and evaluate it at x.
func EvalAt(src string, x float64, opts ...ContextOption) (*big.Float, error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	ctx := NewContext(opts...)
	ctx.SetX(new(big.Float).SetFloat64(x))
	r := ctx.Eval(e)
	return r, ctx.Err()
}

// NameError is an error from evaluating an expression whose variable has no
// value in the context.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}
