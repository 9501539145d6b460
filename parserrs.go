package taylor

import "strconv"

// BracketError is an error indicating unbalanced brackets in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the unmatched bracket.
	Col int
	// Left is the open bracket with no close bracket, if any.
	Left string
	// Right is the close bracket with no open bracket, if any.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// OperandError is an error indicating that the postfix sequence does not fold
// into a single tree. It implements InputError.
type OperandError struct {
	// Col is the position of the operator, or of the first operand left over
	// when Op is empty.
	Col int
	// Op is the operator that lacked operands. It is empty when operands
	// were left with no operator to join them.
	Op string
	// Have is the number of operands available.
	Have int
	// Need is the number of operands required.
	Need int
}

func (err *OperandError) Error() string {
	if err.Op == "" {
		return errpos(err.Col, strconv.Itoa(err.Have)+" operands with no operator between them")
	}
	return errpos(err.Col, "operator "+strconv.Quote(err.Op)+" needs "+strconv.Itoa(err.Need)+" operands but has "+strconv.Itoa(err.Have))
}

func (err *OperandError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an expression with no terms.
type EmptyExpressionError struct {
	// Col is the position at which a term was expected.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	return errpos(err.Col, "no expression")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input text implements InputError.
type InputError interface {
	error
	// Pos returns the column of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*BracketError)(nil)
	_ InputError = (*OperandError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
)
