package taylor

import (
	"strconv"
	"strings"
)

// Kind identifies a token or a node in the abstract syntax tree.
type Kind int8

const (
	KindNone Kind = iota

	// Elementary functions. Each is a unary node whose argument is First.
	Sin
	Cos
	Tan // tg
	Cot // ctg
	Ln
	Exp // e^
	Sqrt
	Atan // atg
	Acot // actg
	Asin
	Acos

	// Neg is unary minus, written as a leading - where an operand belongs.
	Neg

	// Binary operators. First is the left operand and Second is the right.
	Add
	Sub
	Mul
	Div
	Pow

	// Brackets appear only in token sequences, never in trees.
	Open
	Close

	// Leaves.
	Var
	Const

	numKinds
)

// kindNames holds the source spelling of each kind.
var kindNames = [numKinds]string{
	KindNone: "None",
	Sin:      "sin",
	Cos:      "cos",
	Tan:      "tg",
	Cot:      "ctg",
	Ln:       "ln",
	Exp:      "e^",
	Sqrt:     "sqrt",
	Atan:     "atg",
	Acot:     "actg",
	Asin:     "asin",
	Acos:     "acos",
	Neg:      "neg",
	Add:      "+",
	Sub:      "-",
	Mul:      "*",
	Div:      "/",
	Pow:      "^",
	Open:     "(",
	Close:    ")",
	Var:      "x",
	Const:    "Const",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// IsFunc returns whether k is an elementary function.
func (k Kind) IsFunc() bool {
	return Sin <= k && k <= Acos
}

// IsBinary returns whether k is a binary operator.
func (k Kind) IsBinary() bool {
	return Add <= k && k <= Pow
}

// IsLeaf returns whether k is the variable or a constant.
func (k Kind) IsLeaf() bool {
	return k == Var || k == Const
}

// arity returns the number of children a node of kind k has.
func (k Kind) arity() int {
	switch {
	case k.IsBinary():
		return 2
	case k.IsFunc(), k == Neg:
		return 1
	default:
		return 0
	}
}

// Node is a node in the abstract syntax tree of an expression. Unary nodes
// have only First set, binary nodes have First and Second, and leaves have
// neither. A node owns its children; no subtree appears twice in a tree.
type Node struct {
	Kind Kind
	// Value is the value of a Const node.
	Value float64
	// Text is the source text of the token that produced the node.
	Text string
	// Pos is the column of that token.
	Pos int

	First  *Node
	Second *Node
}

func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt writes the node with alternating round and square brackets around each
// term.
func (n *Node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch {
	case n.Kind == Var:
		b.WriteByte('x')
	case n.Kind == Const:
		b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	case n.Kind == Neg:
		b.WriteByte('-')
		n.First.fmt(b, !square)
	case n.Kind.IsFunc():
		b.WriteString(n.Kind.String())
		n.First.fmt(b, !square)
	case n.Kind.IsBinary():
		n.First.fmt(b, !square)
		b.WriteByte(' ')
		b.WriteString(n.Kind.String())
		b.WriteByte(' ')
		n.Second.fmt(b, !square)
	default:
		panic("taylor: invalid node kind " + n.Kind.String() + " after writing " + b.String())
	}
}

// Tree writes an indented rendering of the tree, one node per line, children
// below their parent.
func (n *Node) Tree() string {
	var b strings.Builder
	n.tree(&b, 0)
	return b.String()
}

func (n *Node) tree(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("\t", depth))
	b.WriteString("| ")
	if n.Kind == Const {
		b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	} else {
		b.WriteString(n.Kind.String())
	}
	b.WriteString(" |\n")
	if n.First != nil {
		n.First.tree(b, depth+1)
	}
	if n.Second != nil {
		n.Second.tree(b, depth+1)
	}
}
