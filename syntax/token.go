package syntax

import (
	"strconv"
	"strings"

	"github.com/npillmayer/wrex"
)

// TokType is the type of pattern tokens.
type TokType = wrex.TokType

// Token types of the pattern scanner.
const (
	Literal     TokType = iota // literal rune
	Escape                     // escaped rune, before expansion
	Dot                        // '.'
	Concat                     // explicit concatenation
	Alternate                  // '|'
	Star                       // '*'
	Plus                       // '+'
	Quest                      // '?'
	LParen                     // '('
	RParen                     // ')'
	Empty                      // "()"
	CaseFold                   // "(?i)"
	ClassStart                 // '['
	ClassNegate                // leading '^' in a class
	ClassMember                // member rune of a class
	ClassEscape                // escaped rune in a class, before expansion
	ClassHyphen                // '-' in a class, before range detection
	ClassRange                 // range R…N in a class
	ClassEnd                   // ']'
	RepStart                   // '{'
	RepNum                     // repetition count N
	RepComma                   // ',' in braces
	RepEnd                     // '}'
)

var tokTypeNames = []string{
	"Literal", "Escape", "Dot", "Concat", "Alternate", "Star", "Plus", "Quest",
	"LParen", "RParen", "Empty", "CaseFold", "ClassStart", "ClassNegate",
	"ClassMember", "ClassEscape", "ClassHyphen", "ClassRange", "ClassEnd",
	"RepStart", "RepNum", "RepComma", "RepEnd",
}

// TokTypeString is a wrex.TokTypeStringer for the pattern scanner.
func TokTypeString(t TokType) string {
	if t < 0 || int(t) >= len(tokTypeNames) {
		return "<unknown>"
	}
	return tokTypeNames[t]
}

var _ wrex.TokTypeStringer = TokTypeString

// Token is a token of a pattern. R holds the rune of literals and class
// members, N holds repetition counts and the upper bound of class ranges.
// Pos is the rune position within the pattern.
type Token struct {
	Kind TokType
	R    rune
	N    int
	Pos  int
}

var _ wrex.Token = Token{}

func (t Token) TokType() TokType {
	return t.Kind
}

func (t Token) Value() interface{} {
	switch t.Kind {
	case RepNum:
		return t.N
	case ClassRange:
		return [2]rune{t.R, rune(t.N)}
	}
	return t.R
}

func (t Token) Span() wrex.Span {
	return wrex.Span{t.Pos, t.Pos + 1}
}

// metachars have to be escaped when printing literals.
const metachars = `\|*+?().[]{}`

// Lexeme returns a printable form of the token, close to pattern syntax.
func (t Token) Lexeme() string {
	switch t.Kind {
	case Literal, ClassMember:
		if strings.ContainsRune(metachars, t.R) || t.R == '-' && t.Kind == ClassMember {
			return `\` + string(t.R)
		}
		return printable(t.R)
	case Escape, ClassEscape:
		return `\` + string(t.R)
	case Dot:
		return "."
	case Concat:
		return "·"
	case Alternate:
		return "|"
	case Star:
		return "*"
	case Plus:
		return "+"
	case Quest:
		return "?"
	case LParen:
		return "("
	case RParen:
		return ")"
	case Empty:
		return "()"
	case CaseFold:
		return "(?i)"
	case ClassStart:
		return "["
	case ClassNegate:
		return "^"
	case ClassHyphen:
		return "-"
	case ClassRange:
		if rune(t.N) == t.R {
			return printable(t.R)
		}
		return printable(t.R) + "-" + printable(rune(t.N))
	case ClassEnd:
		return "]"
	case RepStart:
		return "{"
	case RepNum:
		return strconv.Itoa(t.N)
	case RepComma:
		return ","
	case RepEnd:
		return "}"
	}
	return "<?>"
}

func printable(r rune) string {
	if strconv.IsPrint(r) {
		return string(r)
	}
	q := strconv.QuoteRune(r)
	return q[1 : len(q)-1]
}

func (t Token) String() string {
	return t.Lexeme()
}

// TokensString returns the lexemes of a token sequence, separated by blanks.
func TokensString(toks []Token) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.Lexeme())
	}
	return b.String()
}
