package taylor

import (
	"strings"
)

// Expr is a parsed expression in the single variable x.
type Expr struct {
	src     string
	root    *Node
	postfix []token
}

// Parse turns an expression into an abstract syntax tree. The input must not
// contain a trailing newline; whitespace between tokens is ignored.
func Parse(src string) (*Expr, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	post, err := sequence(toks)
	if err != nil {
		return nil, err
	}
	root, err := build(post)
	if err != nil {
		return nil, err
	}
	return &Expr{src: src, root: root, postfix: post}, nil
}

// priority holds the binding strengths of a token kind. in applies when the
// token arrives from the input; stack applies while it waits on the operator
// stack. A waiting operator is emitted before an arriving one when its stack
// priority is at least the arriving in priority.
type priority struct {
	in, stack int8
}

func (k Kind) priority() priority {
	switch {
	case k.IsLeaf():
		return priority{11, -1}
	case k.IsFunc():
		return priority{8, 7}
	}
	switch k {
	case Neg:
		// Below ^ on the stack so -x^2 is -(x^2), above it arriving so
		// 2^-x is 2^(-x).
		return priority{6, 4}
	case Pow:
		// Right-associative.
		return priority{5, 4}
	case Mul, Div:
		return priority{3, 3}
	case Add, Sub:
		return priority{2, 2}
	case Open:
		return priority{9, 0}
	case Close:
		return priority{1, 0}
	default:
		panic("taylor: no priority for " + k.String())
	}
}

// sequence reorders an infix token list into postfix using an operator stack.
// Leaves go straight to the output, and brackets never do.
func sequence(toks []token) ([]token, error) {
	out := make([]token, 0, len(toks))
	var stack []token
	pop := func() token {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return t
	}
	for _, tok := range toks {
		if tok.kind.IsLeaf() {
			out = append(out, tok)
			continue
		}
		if tok.kind == Close {
			for {
				if len(stack) == 0 {
					return nil, &BracketError{Col: tok.pos, Right: tok.text}
				}
				t := pop()
				if t.kind == Open {
					break
				}
				out = append(out, t)
			}
			continue
		}
		in := tok.kind.priority().in
		for len(stack) > 0 && stack[len(stack)-1].kind.priority().stack >= in {
			out = append(out, pop())
		}
		stack = append(stack, tok)
	}
	for len(stack) > 0 {
		t := pop()
		if t.kind == Open {
			return nil, &BracketError{Col: t.pos, Left: t.text}
		}
		out = append(out, t)
	}
	return out, nil
}

// build folds a postfix sequence into a tree. Each operator takes the
// operands immediately before it, the earlier one becoming First.
func build(post []token) (*Node, error) {
	if len(post) == 0 {
		return nil, &EmptyExpressionError{Col: 1}
	}
	work := make([]*Node, 0, len(post))
	for _, tok := range post {
		n := &Node{Kind: tok.kind, Value: tok.value, Text: tok.text, Pos: tok.pos}
		need := tok.kind.arity()
		if len(work) < need {
			return nil, &OperandError{Col: tok.pos, Op: tok.text, Have: len(work), Need: need}
		}
		switch need {
		case 1:
			n.First = work[len(work)-1]
		case 2:
			n.First, n.Second = work[len(work)-2], work[len(work)-1]
		}
		work = append(work[:len(work)-need], n)
	}
	if len(work) != 1 {
		return nil, &OperandError{Col: work[1].Pos, Have: len(work), Need: 1}
	}
	return work[0], nil
}

// Root returns the root of the expression's tree. The tree must not be
// modified.
func (e *Expr) Root() *Node {
	return e.root
}

// Source returns the text the expression was parsed from.
func (e *Expr) Source() string {
	return e.src
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	return e.root.String()
}

// Postfix returns the tokens of the expression in postfix order, separated by
// spaces.
func (e *Expr) Postfix() string {
	s := make([]string, len(e.postfix))
	for i, t := range e.postfix {
		if t.kind == Const {
			s[i] = t.text
		} else {
			s[i] = t.kind.String()
		}
	}
	return strings.Join(s, " ")
}
