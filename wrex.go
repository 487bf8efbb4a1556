package wrex

import "fmt"

// --- Input symbols ---------------------------------------------------------

// Symbol is a single symbol of a subject sequence. It carries the rune and the
// position of the rune within the subject. Weight functions for positional
// rigs will use the position, all other weight functions simply ignore it.
type Symbol struct {
	Pos int  // rune index within the subject
	R   rune // the symbol itself
}

// Symbols converts a string into a sequence of symbols. Positions are rune
// indices, not byte offsets.
func Symbols(s string) []Symbol {
	syms := make([]Symbol, 0, len(s))
	i := 0
	for _, r := range s {
		syms = append(syms, Symbol{Pos: i, R: r})
		i++
	}
	return syms
}

func (sym Symbol) String() string {
	return fmt.Sprintf("%q@%d", sym.R, sym.Pos)
}

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. We do not define any constants here, as
// it is up to scanners to define them.
type TokType int

// TokTypeStringer is a type to be provided by a scanner to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Tokens represent input tokens. They are produced by the pattern scanner of
// package syntax as well as by the command lexer of the REPL.
//
// An example would be a token for a repetition count:
//
//	TokType = RepNum      // identifier for this kind of tokens (scanner specific)
//	Lexeme  = "12"        // lexeme how it appeared in the input stream
//	Value   = 12          // is an int value
//	Span    = 3…5         // occured from position 3 in the input stream
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input positions. Spans denote
// match ranges as well as token positions. A span denotes a start position
// and the position just behind the end.
type Span [2]int // (x…y)

// From returns the start value of a span.
func (s Span) From() int {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() int {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() int {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
