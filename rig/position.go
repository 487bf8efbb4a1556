package rig

import (
	"fmt"

	"github.com/npillmayer/wrex"
)

// --- Leftmost start --------------------------------------------------------

// Leftmost is a rig for finding the start position of the leftmost match.
// Values are positions ≥ 0, or one of two sentinels:
//
//	LeftmostZero (-2)  non-matching; causes the whole match to fail
//	LeftmostOne  (-1)  matching, but without position information
//
// Mult keeps the left position (the start of a concatenation), plus keeps the
// smaller position. Plus treats One as "no information", which is not a
// semiring law, but exactly what leftmost-search requires.
type Leftmost struct{}

// Sentinel values of the Leftmost rig.
const (
	LeftmostZero = -2
	LeftmostOne  = -1
)

var _ Rig[int] = Leftmost{}
var _ AutoMatcher[int] = Leftmost{}

func (Leftmost) Zero() int { return LeftmostZero }
func (Leftmost) One() int  { return LeftmostOne }

// Mult represents a concatenation.
func (Leftmost) Mult(x, y int) int {
	if x == LeftmostZero || y == LeftmostZero {
		return LeftmostZero
	} else if x == LeftmostOne {
		return y
	}
	return x
}

// Plus represents an alternation.
func (Leftmost) Plus(x, y int) int {
	switch {
	case x == LeftmostZero:
		return y
	case y == LeftmostZero:
		return x
	case x == LeftmostOne:
		return y
	case y == LeftmostOne:
		return x
	case x < y:
		return x
	}
	return y
}

// AutoMatch returns the position of sym.
func (Leftmost) AutoMatch(sym wrex.Symbol) int {
	return sym.Pos
}

// IsPosition is true for values which are real positions, i.e. not one of the
// sentinels.
func (Leftmost) IsPosition(v int) bool {
	return v >= 0
}

// --- Leftmost-longest range ------------------------------------------------

// Range is the value type of rig LeftmostLongest. Start and End are
// positions of the first and the last symbol of a match (both inclusive).
type Range struct {
	Start, End int
}

// Sentinel values of the LeftmostLongest rig.
var (
	RangeZero = Range{-2, -2}
	RangeOne  = Range{-1, -1}
)

// IsPosition is true for ranges which are not one of the sentinels.
func (r Range) IsPosition() bool {
	return r.Start >= 0
}

// Span converts a range into a half-open span.
// Sentinel ranges convert to a null span.
func (r Range) Span() wrex.Span {
	if !r.IsPosition() {
		return wrex.Span{}
	}
	return wrex.Span{r.Start, r.End + 1}
}

func (r Range) String() string {
	switch r {
	case RangeZero:
		return "(zero)"
	case RangeOne:
		return "(one)"
	}
	return fmt.Sprintf("(%d,%d)", r.Start, r.End)
}

// LeftmostLongest is a rig for finding the range of the leftmost-longest
// match. Mult of two ranges (x,y)·(a,b) is (x,b), i.e. the range spanning
// a concatenation. Plus prefers the range with the smaller start position and,
// for equal start positions, the range with the larger end position.
type LeftmostLongest struct{}

var _ Rig[Range] = LeftmostLongest{}
var _ AutoMatcher[Range] = LeftmostLongest{}

func (LeftmostLongest) Zero() Range { return RangeZero }
func (LeftmostLongest) One() Range  { return RangeOne }

// Mult represents a concatenation.
func (LeftmostLongest) Mult(x, y Range) Range {
	switch {
	case x == RangeZero || y == RangeZero:
		return RangeZero
	case x == RangeOne:
		return y
	case y == RangeOne:
		return x
	}
	return Range{x.Start, y.End}
}

// Plus represents an alternation.
func (LeftmostLongest) Plus(x, y Range) Range {
	switch {
	case x == RangeZero:
		return y
	case y == RangeZero:
		return x
	case x == RangeOne:
		return y
	case y == RangeOne:
		return x
	case x.Start < y.Start: // leftmost first
		return x
	case y.Start < x.Start:
		return y
	case x.End < y.End: // then longest
		return y
	}
	return x
}

// AutoMatch returns a range covering sym only.
func (LeftmostLongest) AutoMatch(sym wrex.Symbol) Range {
	return Range{sym.Pos, sym.Pos}
}
