package syntax

import (
	"errors"
	"fmt"
)

// ErrSyntax is the error kind of all compile errors.
// Use errors.Is(err, syntax.ErrSyntax) to test for it.
var ErrSyntax = errors.New("syntax error")

// SyntaxError is returned whenever a pattern cannot be tokenized, balanced or
// reduced to exactly one expression tree. A syntax error aborts compilation;
// no partial tree is returned.
type SyntaxError struct {
	Pattern string // the offending pattern
	Pos     int    // rune position within the pattern
	Msg     string // diagnostic message
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d of pattern %q: %s", e.Pos, e.Pattern, e.Msg)
}

// Is makes every SyntaxError match ErrSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func syntaxError(pattern string, pos int, format string, args ...interface{}) *SyntaxError {
	err := &SyntaxError{
		Pattern: pattern,
		Pos:     pos,
		Msg:     fmt.Sprintf(format, args...),
	}
	tracer().Errorf("%s", err)
	return err
}
