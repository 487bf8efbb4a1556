package syntax

import "unicode"

// patternScanner is the stage 1 scanner. It emits raw tokens, without
// explicit concatenation.
type patternScanner struct {
	pattern string
	input   []rune
	pos     int
	tokens  []Token
}

// Scan tokenizes a pattern and inserts explicit Concat tokens between every
// pair of adjacent operands. Tokens of character classes and repetition
// braces are passed through as groups, with no concatenation inside.
//
// Scan does not check parentheses for balance; this is left to ToPostfix.
func Scan(pattern string) ([]Token, error) {
	sc := &patternScanner{
		pattern: pattern,
		input:   []rune(pattern),
	}
	if err := sc.scan(); err != nil {
		return nil, err
	}
	toks := insertConcats(sc.tokens)
	tracer().Debugf("scan %q: %s", pattern, TokensString(toks))
	return toks, nil
}

func (sc *patternScanner) emit(kind TokType, r rune, pos int) {
	sc.tokens = append(sc.tokens, Token{Kind: kind, R: r, Pos: pos})
}

func (sc *patternScanner) lookahead(s string) bool {
	la := []rune(s)
	if sc.pos+len(la) > len(sc.input) {
		return false
	}
	for i, r := range la {
		if sc.input[sc.pos+i] != r {
			return false
		}
	}
	return true
}

func (sc *patternScanner) scan() error {
	for sc.pos < len(sc.input) {
		r := sc.input[sc.pos]
		switch r {
		case '\\':
			if sc.pos+1 >= len(sc.input) {
				return syntaxError(sc.pattern, sc.pos, "trailing backslash")
			}
			sc.emit(Escape, sc.input[sc.pos+1], sc.pos)
			sc.pos += 2
			continue
		case '[':
			if err := sc.scanClass(); err != nil {
				return err
			}
			continue
		case '{':
			if err := sc.scanBraces(); err != nil {
				return err
			}
			continue
		case '(':
			if sc.lookahead("()") {
				sc.emit(Empty, 0, sc.pos)
				sc.pos += 2
				continue
			}
			if sc.lookahead("(?i)") {
				sc.emit(CaseFold, 0, sc.pos)
				sc.pos += 4
				continue
			}
			sc.emit(LParen, r, sc.pos)
		case ')':
			sc.emit(RParen, r, sc.pos)
		case '|':
			sc.emit(Alternate, r, sc.pos)
		case '*':
			sc.emit(Star, r, sc.pos)
		case '+':
			sc.emit(Plus, r, sc.pos)
		case '?':
			sc.emit(Quest, r, sc.pos)
		case '.':
			sc.emit(Dot, r, sc.pos)
		default:
			sc.emit(Literal, r, sc.pos)
		}
		sc.pos++
	}
	return nil
}

// scanClass scans a character class, starting at '['.
func (sc *patternScanner) scanClass() error {
	start := sc.pos
	sc.emit(ClassStart, '[', sc.pos)
	sc.pos++
	if sc.pos < len(sc.input) && sc.input[sc.pos] == '^' {
		sc.emit(ClassNegate, '^', sc.pos)
		sc.pos++
	}
	members := 0
	for sc.pos < len(sc.input) {
		r := sc.input[sc.pos]
		switch r {
		case ']':
			if members == 0 {
				return syntaxError(sc.pattern, sc.pos, "empty character class")
			}
			sc.emit(ClassEnd, r, sc.pos)
			sc.pos++
			return nil
		case '\\':
			if sc.pos+1 >= len(sc.input) {
				return syntaxError(sc.pattern, sc.pos, "trailing backslash")
			}
			sc.emit(ClassEscape, sc.input[sc.pos+1], sc.pos)
			sc.pos += 2
		case '-':
			sc.emit(ClassHyphen, r, sc.pos)
			sc.pos++
		default:
			sc.emit(ClassMember, r, sc.pos)
			sc.pos++
		}
		members++
	}
	return syntaxError(sc.pattern, start, "missing ] for character class")
}

// scanBraces scans a repetition group {n}, {n,}, {n,m} or {,m}, starting at '{'.
func (sc *patternScanner) scanBraces() error {
	start := sc.pos
	sc.emit(RepStart, '{', sc.pos)
	sc.pos++
	nums, commas := 0, 0
	for sc.pos < len(sc.input) {
		r := sc.input[sc.pos]
		switch {
		case r == '}':
			if nums == 0 && commas == 0 {
				return syntaxError(sc.pattern, sc.pos, "missing repetition count")
			}
			sc.emit(RepEnd, r, sc.pos)
			sc.pos++
			return nil
		case r == ',':
			if commas > 0 {
				return syntaxError(sc.pattern, sc.pos, "malformed repetition: too many commas")
			}
			commas++
			sc.emit(RepComma, r, sc.pos)
			sc.pos++
		case r >= '0' && r <= '9':
			if nums > commas {
				return syntaxError(sc.pattern, sc.pos, "malformed repetition")
			}
			pos, n := sc.pos, 0
			for sc.pos < len(sc.input) && sc.input[sc.pos] >= '0' && sc.input[sc.pos] <= '9' {
				n = n*10 + int(sc.input[sc.pos]-'0')
				if n > MaxRepeat {
					return syntaxError(sc.pattern, pos, "repetition count exceeds %d", MaxRepeat)
				}
				sc.pos++
			}
			sc.tokens = append(sc.tokens, Token{Kind: RepNum, N: n, Pos: pos})
			nums++
		default:
			if unicode.IsSpace(r) {
				return syntaxError(sc.pattern, sc.pos, "white space in repetition braces")
			}
			return syntaxError(sc.pattern, sc.pos, "non-digit %q in repetition braces", r)
		}
	}
	return syntaxError(sc.pattern, start, "missing } for repetition")
}

// endsOperand is true for token types which may end an operand.
func endsOperand(t TokType) bool {
	switch t {
	case Literal, Escape, Dot, RParen, Star, Plus, Quest, Empty, ClassEnd, RepEnd:
		return true
	}
	return false
}

// startsOperand is true for token types which may start an operand.
func startsOperand(t TokType) bool {
	switch t {
	case Literal, Escape, Dot, LParen, Empty, ClassStart:
		return true
	}
	return false
}

// insertConcats makes concatenation explicit. Case fold tokens are
// transparent: "a(?i)b" concatenates a and b.
func insertConcats(raw []Token) []Token {
	toks := make([]Token, 0, 2*len(raw))
	inClass, inBraces := false, false
	prevEnds := false
	for _, t := range raw {
		if inClass || inBraces {
			toks = append(toks, t)
			if t.Kind == ClassEnd {
				inClass, prevEnds = false, true
			} else if t.Kind == RepEnd {
				inBraces, prevEnds = false, true
			}
			continue
		}
		if t.Kind == CaseFold {
			toks = append(toks, t)
			continue
		}
		if prevEnds && startsOperand(t.Kind) {
			toks = append(toks, Token{Kind: Concat, R: '·', Pos: t.Pos})
		}
		toks = append(toks, t)
		switch t.Kind {
		case ClassStart:
			inClass = true
		case RepStart:
			inBraces = true
		}
		prevEnds = endsOperand(t.Kind)
	}
	return toks
}
