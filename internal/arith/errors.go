package arith

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrDivisionByZero is wrapped by the *SyntaxError returned for x/0.
var ErrDivisionByZero = errors.New("division by zero")

// SyntaxError reports an expression the evaluator rejected, with the byte
// offset of the offending character in Input.
type SyntaxError struct {
	Input  string
	Offset int
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("arith: %s at offset %d", e.Msg, e.Offset)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Rebase returns a copy of e that points into input at offset instead. It is
// used when the evaluated text was derived from a longer user input.
func (e *SyntaxError) Rebase(input string, offset int) *SyntaxError {
	c := *e
	c.Input = input
	c.Offset = offset
	return &c
}

// Pointer renders Input with a caret under the offending character:
//
//	3*(4+)
//	     ^
func (e *SyntaxError) Pointer() string {
	return Caret(e.Input, e.Offset)
}

// Caret renders input with a caret under the character at byte offset,
// clamped to the input.
func Caret(input string, offset int) string {
	off := min(max(offset, 0), len(input))
	col := utf8.RuneCountInString(input[:off])
	return input + "\n" + strings.Repeat(" ", col) + "^"
}
