package taylor

import (
	"strconv"
	"unicode"
)

type token struct {
	kind  Kind
	text  string
	value float64
	pos   int
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

// keywords holds the spellings of every non-numeric token, bucketed by length
// in runes. A candidate matches only a keyword of exactly its own length.
var keywords = [...]map[string]Kind{
	1: {
		"+": Add, "-": Sub, "−": Sub,
		"*": Mul, "×": Mul, "/": Div, "÷": Div,
		"^": Pow, "x": Var, "(": Open, ")": Close,
	},
	2: {"ln": Ln, "e^": Exp, "tg": Tan},
	3: {"sin": Sin, "cos": Cos, "ctg": Cot, "atg": Atan},
	4: {"sqrt": Sqrt, "asin": Asin, "acos": Acos, "actg": Acot},
}

// maxKeyword is the length of the longest keyword.
const maxKeyword = len(keywords) - 1

type lexer struct {
	src []rune
	i   int
}

// next scans the next token from the input. At the end of the input, the
// result is a token of kind KindNone with a nil error.
func (l *lexer) next() (token, error) {
	for l.i < len(l.src) && unicode.IsSpace(l.src[l.i]) {
		l.i++
	}
	if l.i >= len(l.src) {
		return token{pos: l.i + 1}, nil
	}
	start := l.i
	tok := token{pos: start + 1}
	if isNum(l.src[start]) {
		for l.i < len(l.src) && isNum(l.src[l.i]) {
			l.i++
		}
		tok.text = string(l.src[start:l.i])
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return tok, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
		}
		tok.kind = Const
		tok.value = v
		return tok, nil
	}
	for n := 1; n <= maxKeyword && start+n <= len(l.src); n++ {
		text := string(l.src[start : start+n])
		if k, ok := keywords[n][text]; ok {
			l.i = start + n
			tok.kind = k
			tok.text = text
			return tok, nil
		}
	}
	end := min(start+maxKeyword+1, len(l.src))
	return tok, &LexError{Text: string(l.src[start:end]), Col: tok.pos}
}

func isNum(r rune) bool {
	return '0' <= r && r <= '9' || r == '.'
}

// tokenize scans an entire expression. A + or - where an operand is expected
// is unary: minus becomes Neg and plus is dropped.
func tokenize(src string) ([]token, error) {
	l := lexer{src: []rune(src)}
	var toks []token
	operand := true
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case KindNone:
			return toks, nil
		case Add:
			if operand {
				continue
			}
		case Sub:
			if operand {
				tok.kind = Neg
			}
		}
		toks = append(toks, tok)
		// An operand is expected after anything but a leaf or a close bracket.
		operand = !tok.kind.IsLeaf() && tok.kind != Close
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the malformed number, or the unrecognized substring. For the
	// latter, Text is one rune longer than the longest keyword unless the
	// input ended first.
	Text string
	// Kind is "number" for a malformed numeric literal and empty otherwise.
	Kind string
	// Col is the column at which the token starts.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		n := len([]rune(err.Text))
		return "unrecognized token at " + pos + ": " + strconv.Quote(err.Text) + " (length " + strconv.Itoa(n) + ")"
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
