/*
Package rig implements semirings ("rigs") for weighted regular expressions.

A rig is an algebraic structure (V, zero, one, plus, mult). Plus and mult are
associative, plus is commutative, zero is the identity of plus and absorbing for
mult, one is the identity of mult, and mult distributes over plus. The weighted
automaton of package expr is parameterized by a rig: alternation is mapped to
plus, concatenation to mult.

Rigs provided here:

	Bool              false/true under or/and
	Bit               0/1 under bitwise or/and
	Count[N]          natural numbers under +/×, counting derivations
	Leftmost          start position of the leftmost match
	LeftmostLongest   start and end position of the leftmost-longest match

The positional rigs break the semiring laws on purpose: their plus prefers the
leftmost (and then the longest) match instead of forming a true join.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package rig

import (
	"github.com/npillmayer/wrex"
	"golang.org/x/exp/constraints"
)

// Rig is the interface for semirings. Values have to be comparable, as weight
// functions and drivers test values against Zero and One.
type Rig[V comparable] interface {
	Zero() V
	One() V
	Plus(x, y V) V
	Mult(x, y V) V
}

// AutoMatcher is implemented by rigs which are able to produce a match value
// for an arbitrary symbol, e.g. its position. It is used for "any"-symbols
// like '.'.
type AutoMatcher[V comparable] interface {
	AutoMatch(sym wrex.Symbol) V
}

// IsZero is a small helper to test a value against the zero of a rig.
func IsZero[V comparable](rg Rig[V], v V) bool {
	return v == rg.Zero()
}

// --- Bool ------------------------------------------------------------------

// Bool is the boolean rig.
type Bool struct{}

var _ Rig[bool] = Bool{}

func (Bool) Zero() bool { return false }
func (Bool) One() bool  { return true }

func (Bool) Plus(x, y bool) bool { return x || y }
func (Bool) Mult(x, y bool) bool { return x && y }

// --- Bit -------------------------------------------------------------------

// Bit is the boolean rig with values 0 and 1, combined with bitwise
// operations. Values other than 0 and 1 are outside the carrier set.
type Bit struct{}

var _ Rig[uint8] = Bit{}

func (Bit) Zero() uint8 { return 0 }
func (Bit) One() uint8  { return 1 }

func (Bit) Plus(x, y uint8) uint8 { return x | y }
func (Bit) Mult(x, y uint8) uint8 { return x & y }

// --- Counting --------------------------------------------------------------

// Count is the rig of natural numbers. Used with a weighted automaton it counts
// the number of ways an input may be derived from a pattern.
// Overflow wraps around silently, as with any Go integer arithmetic.
type Count[N constraints.Integer] struct{}

// Int is the counting rig for type int.
type Int = Count[int]

var _ Rig[int] = Int{}

func (Count[N]) Zero() N { return 0 }
func (Count[N]) One() N  { return 1 }

func (Count[N]) Plus(x, y N) N { return x + y }
func (Count[N]) Mult(x, y N) N { return x * y }
