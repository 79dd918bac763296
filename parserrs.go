package arith

import (
	"strconv"
	"strings"
)

// ParenError is an error indicating an open parenthesis with no matching
// close parenthesis. It implements SyntaxError.
type ParenError struct {
	// Open is the position of the open parenthesis.
	Open int
	// Col is the position of the token found instead of the close
	// parenthesis.
	Col int
	// Found is the text of that token, or the empty string at end of input.
	Found string
}

func (err *ParenError) Error() string {
	open := "( at " + strconv.Itoa(err.Open)
	if err.Found == "" {
		return errpos(err.Col, "missing ) for "+open+" at end of input")
	}
	return errpos(err.Col, "missing ) for "+open+", found "+strconv.Quote(err.Found))
}

func (err *ParenError) Pos() int {
	return err.Col
}

// OperandError is an error indicating a missing operand, e.g. in "1 +" or
// "2 * * 3". It implements SyntaxError.
type OperandError struct {
	// Col is the position of the token found where an operand was expected.
	Col int
	// Found is the text of that token, or the empty string at end of input.
	Found string
	// Empty is set when the input held no tokens before the end.
	Empty bool
}

func (err *OperandError) Error() string {
	if err.Found == "" {
		if err.Empty {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "missing operand at end of input")
	}
	return errpos(err.Col, "missing operand before "+strconv.Quote(err.Found))
}

func (err *OperandError) Pos() int {
	return err.Col
}

// TrailingError is an error indicating input left over after a complete
// expression, e.g. the ")" in "1 + 2)". It implements SyntaxError.
type TrailingError struct {
	// Col is the position of the first unconsumed token.
	Col int
	// Found is the text of that token.
	Found string
}

func (err *TrailingError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Found)+" after expression")
}

func (err *TrailingError) Pos() int {
	return err.Col
}

// LexLogError is an error from a lenient parse that failed after the lexer
// dropped malformed literals, which are often the real cause: "1 + 3..4"
// fails for a missing operand. It unwraps to the parse error and to every
// logged lexer error.
type LexLogError struct {
	// Err is the parse error.
	Err error
	// Log is the lexer's error log.
	Log []error
}

func (err *LexLogError) Error() string {
	var b strings.Builder
	b.WriteString(err.Err.Error())
	b.WriteString(" (skipped ")
	for i, e := range err.Log {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Error())
	}
	b.WriteByte(')')
	return b.String()
}

func (err *LexLogError) Unwrap() []error {
	return append([]error{err.Err}, err.Log...)
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// SyntaxError is an error with position information. Every error resulting
// from invalid input text implements SyntaxError.
type SyntaxError interface {
	error
	// Pos returns the 1-based byte offset of the token that caused the error.
	Pos() int
}

var (
	_ SyntaxError = (*ParenError)(nil)
	_ SyntaxError = (*OperandError)(nil)
	_ SyntaxError = (*TrailingError)(nil)
	_ SyntaxError = (*UnrecognizedError)(nil)
	_ SyntaxError = (*LiteralError)(nil)
)
