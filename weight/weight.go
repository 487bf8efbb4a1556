/*
Package weight implements weight functions for weighted regular expressions.

A weight function maps an input symbol to a value of a rig. Symbol nodes of an
expression tree carry a weight function, which decides how (and how much) a
symbol of the subject matches the pattern symbol. Weight functions do not carry
mutable state; they may be shared and called concurrently.

Wrappers compose weight functions:

	Class         sums up the weights of its members
	CaseFold      lowercases subject symbols before delegating
	Invert        flips zero and non-zero (meaningful for boolean rigs only)
	Positioned    tags non-zero weights with the symbol's position

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package weight

import (
	"fmt"
	"unicode"

	"github.com/npillmayer/wrex"
	"github.com/npillmayer/wrex/rig"
)

// Func is the interface for weight functions.
type Func[V comparable] interface {
	Call(sym wrex.Symbol) V
}

// Factory creates the weight function for a literal pattern rune.
// Compilers call a factory for every literal and for every member of a
// character class.
type Factory[V comparable] func(r rune, rg rig.Rig[V]) Func[V]

// Literals is a factory for plain literal matchers.
func Literals[V comparable](r rune, rg rig.Rig[V]) Func[V] {
	return Literal[V]{R: r, rig: rg}
}

// Positions is a factory for literal matchers tagged with the position of
// the matching symbol. It needs a rig implementing rig.AutoMatcher; for other
// rigs it degrades to Literals.
func Positions[V comparable](r rune, rg rig.Rig[V]) Func[V] {
	return Tag[V](Literal[V]{R: r, rig: rg}, rg)
}

// --- Literals --------------------------------------------------------------

// Literal returns one if the symbol matches R, zero otherwise.
type Literal[V comparable] struct {
	R   rune
	rig rig.Rig[V]
}

func (l Literal[V]) Call(sym wrex.Symbol) V {
	if sym.R == l.R {
		return l.rig.One()
	}
	return l.rig.Zero()
}

func (l Literal[V]) String() string {
	return fmt.Sprintf("%q", l.R)
}

// AllButNewline matches every symbol except '\n'. For rigs implementing
// rig.AutoMatcher a match produces the auto-match value of the symbol, one
// otherwise.
type AllButNewline[V comparable] struct {
	rig  rig.Rig[V]
	auto rig.AutoMatcher[V]
}

// NewAllButNewline creates a matcher for '.'.
func NewAllButNewline[V comparable](rg rig.Rig[V]) AllButNewline[V] {
	auto, _ := rg.(rig.AutoMatcher[V])
	return AllButNewline[V]{rig: rg, auto: auto}
}

func (a AllButNewline[V]) Call(sym wrex.Symbol) V {
	if sym.R == '\n' {
		return a.rig.Zero()
	}
	if a.auto != nil {
		return a.auto.AutoMatch(sym)
	}
	return a.rig.One()
}

func (a AllButNewline[V]) String() string {
	return "."
}

// Const always returns the same value, regardless of the symbol.
type Const[V comparable] struct {
	Value V
}

// One returns a producer of one.
func One[V comparable](rg rig.Rig[V]) Const[V] {
	return Const[V]{Value: rg.One()}
}

// Zero returns a producer of zero.
func Zero[V comparable](rg rig.Rig[V]) Const[V] {
	return Const[V]{Value: rg.Zero()}
}

func (c Const[V]) Call(wrex.Symbol) V {
	return c.Value
}

func (c Const[V]) String() string {
	return fmt.Sprintf("const(%v)", c.Value)
}

// --- Wrappers --------------------------------------------------------------

// Class is the weight function of a character class. Its weight is the sum of
// the weights of its members. Members are not de-duplicated: for [aa-z] and
// the counting rig, "a" will match in two ways.
type Class[V comparable] struct {
	members []Func[V]
	rig     rig.Rig[V]
}

// NewClass creates a class from a list of member weight functions.
func NewClass[V comparable](members []Func[V], rg rig.Rig[V]) Class[V] {
	return Class[V]{members: members, rig: rg}
}

func (c Class[V]) Call(sym wrex.Symbol) V {
	s := c.rig.Zero()
	for _, f := range c.members {
		s = c.rig.Plus(s, f.Call(sym))
	}
	return s
}

// Size returns the number of members.
func (c Class[V]) Size() int {
	return len(c.members)
}

func (c Class[V]) String() string {
	return fmt.Sprintf("class[%d]", len(c.members))
}

// CaseFold makes a weight function case insensitive. The base function is
// expected to match lowercase runes.
type CaseFold[V comparable] struct {
	base Func[V]
}

// Fold wraps f into a case insensitive matcher.
func Fold[V comparable](f Func[V]) CaseFold[V] {
	return CaseFold[V]{base: f}
}

func (c CaseFold[V]) Call(sym wrex.Symbol) V {
	sym.R = unicode.ToLower(sym.R)
	return c.base.Call(sym)
}

func (c CaseFold[V]) String() string {
	return fmt.Sprintf("fold(%v)", c.base)
}

// Invert returns one if its base function returns zero, and zero otherwise.
// This is a complement for boolean rigs only; for other rigs it is a dichotomy
// between zero and everything else, not a complement within the rig.
type Invert[V comparable] struct {
	base Func[V]
	rig  rig.Rig[V]
}

// Not wraps f into an inverting matcher.
func Not[V comparable](f Func[V], rg rig.Rig[V]) Invert[V] {
	return Invert[V]{base: f, rig: rg}
}

func (i Invert[V]) Call(sym wrex.Symbol) V {
	if i.base.Call(sym) == i.rig.Zero() {
		return i.rig.One()
	}
	return i.rig.Zero()
}

func (i Invert[V]) String() string {
	return fmt.Sprintf("not(%v)", i.base)
}

// Positioned tags the weights of its base function with position information:
// zero stays zero, every other weight is replaced by the auto-match value of
// the symbol.
type Positioned[V comparable] struct {
	base Func[V]
	rig  rig.Rig[V]
	auto rig.AutoMatcher[V]
}

// Tag wraps f into a position tagging matcher. If rg is not an AutoMatcher,
// f is returned unchanged.
func Tag[V comparable](f Func[V], rg rig.Rig[V]) Func[V] {
	auto, ok := rg.(rig.AutoMatcher[V])
	if !ok {
		return f
	}
	return Positioned[V]{base: f, rig: rg, auto: auto}
}

func (p Positioned[V]) Call(sym wrex.Symbol) V {
	if w := p.base.Call(sym); w == p.rig.Zero() {
		return w
	}
	return p.auto.AutoMatch(sym)
}

func (p Positioned[V]) String() string {
	return fmt.Sprintf("pos(%v)", p.base)
}
