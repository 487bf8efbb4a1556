package syntax

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// precedence of operators; higher binds tighter. Repetition braces bind
// tighter than concatenation but looser than the postfix operators.
func precedence(t TokType) int {
	switch t {
	case Alternate:
		return 0
	case Concat:
		return 2
	case RepStart:
		return 3
	case Star, Plus, Quest:
		return 4
	}
	return -1 // LParen
}

// escapes maps escape characters to the runes they stand for. Escaped runes
// not contained here stand for themselves.
var escapes = map[rune]rune{
	'a': '\a',
	'f': '\f',
	'b': '\b',
	'n': '\n',
	'r': '\r',
	't': '\t',
	'v': '\v',
}

// shorthand classes, as ranges.
var shorthands = map[rune][][2]rune{
	'w': {{'a', 'z'}, {'A', 'Z'}, {'0', '9'}, {'_', '_'}},
	's': {{' ', ' '}, {'\t', '\t'}, {'\r', '\r'}, {'\n', '\n'}, {'\f', '\f'}},
	'd': {{'0', '9'}},
}

// shorthand returns the class for \w, \s, \d and their negations \W, \S, \D.
func shorthand(r rune) (ranges [][2]rune, negated bool, ok bool) {
	switch r {
	case 'W', 'S', 'D':
		negated = true
		r += 'a' - 'A'
	}
	ranges, ok = shorthands[r]
	return
}

func unescape(r rune) rune {
	if u, ok := escapes[r]; ok {
		return u
	}
	return r
}

// rangeTokens converts shorthand ranges to ClassRange tokens, single runes
// included. A ClassRange never starts a range with a following hyphen.
func rangeTokens(ranges [][2]rune, pos int) []Token {
	toks := make([]Token, len(ranges))
	for i, rg := range ranges {
		toks[i] = Token{Kind: ClassRange, R: rg[0], N: int(rg[1]), Pos: pos}
	}
	return toks
}

// ToPostfix scans a pattern and converts it to postfix order.
//
// Character classes and repetition braces are copied to the output as
// groups. Within a class group, hyphens between two members are resolved to
// ClassRange tokens; a hyphen at the start or end of a class is a literal
// member. Escapes are expanded: shorthand escapes to class groups, all other
// escapes to literals.
func ToPostfix(pattern string) ([]Token, error) {
	toks, err := Scan(pattern)
	if err != nil {
		return nil, err
	}
	sy := shuntingYard{
		pattern: pattern,
		ops:     arraystack.New(),
		out:     arraylist.New(),
	}
	if err := sy.run(toks); err != nil {
		return nil, err
	}
	postfix := make([]Token, sy.out.Size())
	for i, v := range sy.out.Values() {
		postfix[i] = v.(Token)
	}
	tracer().Debugf("postfix %q: %s", pattern, TokensString(postfix))
	return postfix, nil
}

type shuntingYard struct {
	pattern string
	ops     *arraystack.Stack // operator stack
	out     *arraylist.List   // output queue
}

func (sy *shuntingYard) top() (Token, bool) {
	v, ok := sy.ops.Peek()
	if !ok {
		return Token{}, false
	}
	return v.(Token), true
}

// popWhile moves operators to the output as long as their precedence is at
// least prec.
func (sy *shuntingYard) popWhile(prec int) {
	for {
		t, ok := sy.top()
		if !ok || t.Kind == LParen || precedence(t.Kind) < prec {
			return
		}
		sy.ops.Pop()
		sy.out.Add(t)
	}
}

func (sy *shuntingYard) run(toks []Token) error {
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.Kind {
		case Literal, Dot, Empty, CaseFold:
			sy.out.Add(t)
		case Escape:
			if ranges, negated, ok := shorthand(t.R); ok {
				sy.out.Add(Token{Kind: ClassStart, R: '[', Pos: t.Pos})
				if negated {
					sy.out.Add(Token{Kind: ClassNegate, R: '^', Pos: t.Pos})
				}
				for _, c := range rangeTokens(ranges, t.Pos) {
					sy.out.Add(c)
				}
				sy.out.Add(Token{Kind: ClassEnd, R: ']', Pos: t.Pos})
			} else {
				sy.out.Add(Token{Kind: Literal, R: unescape(t.R), Pos: t.Pos})
			}
		case ClassStart:
			j, err := sy.classGroup(toks, i)
			if err != nil {
				return err
			}
			i = j
		case RepStart:
			sy.popWhile(precedence(RepStart))
			i = sy.braceGroup(toks, i)
		case Concat, Alternate, Star, Plus, Quest:
			sy.popWhile(precedence(t.Kind))
			sy.ops.Push(t)
		case LParen:
			sy.ops.Push(t)
		case RParen:
			sy.popWhile(precedence(Alternate))
			if _, ok := sy.ops.Pop(); !ok {
				return syntaxError(sy.pattern, t.Pos, "unbalanced parenthesis: missing (")
			}
		default:
			return syntaxError(sy.pattern, t.Pos, "unexpected token %s", TokTypeString(t.Kind))
		}
	}
	for !sy.ops.Empty() {
		v, _ := sy.ops.Pop()
		t := v.(Token)
		if t.Kind == LParen {
			return syntaxError(sy.pattern, t.Pos, "unbalanced parenthesis: missing )")
		}
		sy.out.Add(t)
	}
	return nil
}

// classGroup copies a class group starting at toks[i] to the output and
// returns the index of its ClassEnd token.
func (sy *shuntingYard) classGroup(toks []Token, i int) (int, error) {
	sy.out.Add(toks[i])
	i++
	if i < len(toks) && toks[i].Kind == ClassNegate {
		sy.out.Add(toks[i])
		i++
	}
	var members []Token // members and hyphens
	for ; i < len(toks) && toks[i].Kind != ClassEnd; i++ {
		t := toks[i]
		switch t.Kind {
		case ClassEscape:
			ranges, negated, ok := shorthand(t.R)
			if ok && negated {
				return 0, syntaxError(sy.pattern, t.Pos, "negated shorthand \\%c in character class", t.R)
			} else if ok {
				members = append(members, rangeTokens(ranges, t.Pos)...)
			} else {
				members = append(members, Token{Kind: ClassMember, R: unescape(t.R), Pos: t.Pos})
			}
		default:
			members = append(members, t)
		}
	}
	if i >= len(toks) {
		return 0, syntaxError(sy.pattern, len([]rune(sy.pattern)), "missing ] for character class")
	}
	for j := 0; j < len(members); j++ {
		m := members[j]
		if m.Kind == ClassHyphen {
			sy.out.Add(Token{Kind: ClassMember, R: '-', Pos: m.Pos})
			continue
		}
		if m.Kind == ClassMember && j+2 < len(members) &&
			members[j+1].Kind == ClassHyphen && members[j+2].Kind == ClassMember {
			sy.out.Add(Token{Kind: ClassRange, R: m.R, N: int(members[j+2].R), Pos: m.Pos})
			j += 2
			continue
		}
		sy.out.Add(m)
	}
	sy.out.Add(toks[i]) // ClassEnd
	return i, nil
}

// braceGroup copies a repetition group starting at toks[i] to the output and
// returns the index of its RepEnd token. Scan has checked the group's form.
func (sy *shuntingYard) braceGroup(toks []Token, i int) int {
	sy.out.Add(toks[i])
	if i+1 < len(toks) && toks[i+1].Kind == RepComma {
		sy.out.Add(Token{Kind: RepNum, N: 0, Pos: toks[i+1].Pos})
	}
	for i++; i < len(toks); i++ {
		sy.out.Add(toks[i])
		if toks[i].Kind == RepEnd {
			break
		}
	}
	return i
}
