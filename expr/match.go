package expr

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/wrex"
	"github.com/npillmayer/wrex/rig"
)

// Match feeds a sequence of symbols through an expression tree and returns
// the weight of the sequence. For an empty sequence the result is the weight
// of the empty input, i.e. root.Empty().
//
// Match resets the tree before running, so a compiled tree may be re-used for
// a new subject (but not concurrently).
func Match[V comparable](root Node[V], rg rig.Rig[V], syms []wrex.Symbol) V {
	s := NewStepper(root, rg)
	for _, sym := range syms {
		s.Feed(sym)
	}
	return s.Final()
}

// MatchString is a convenience wrapper for Match.
func MatchString[V comparable](root Node[V], rg rig.Rig[V], input string) V {
	return Match(root, rg, wrex.Symbols(input))
}

// Stepper drives an expression tree one symbol at a time. The first symbol
// after a reset is shifted in with a mark of one, thus starting a match; every
// following symbol is shifted in with zero. Clients may stop feeding symbols at
// any time, the tree will then reflect the prefix consumed so far.
//
//	s := NewStepper(root, rig.Bool{})
//	for _, sym := range wrex.Symbols("abc") {
//	    w := s.Feed(sym)   // weight of the prefix up to sym
//	}
type Stepper[V comparable] struct {
	root  Node[V]
	rig   rig.Rig[V]
	mark  V   // mark to shift in with the next symbol
	count int // symbols consumed since the last reset
}

// NewStepper creates a stepper for an expression tree. The tree is reset.
func NewStepper[V comparable](root Node[V], rg rig.Rig[V]) *Stepper[V] {
	s := &Stepper[V]{root: root, rig: rg}
	s.Reset()
	return s
}

// Reset clears the tree's state. The next symbol fed will start a new match.
func (s *Stepper[V]) Reset() {
	s.root.Reset()
	s.mark = s.rig.One()
	s.count = 0
}

// Feed shifts a symbol into the tree and returns the weight of the input
// consumed since the last reset.
func (s *Stepper[V]) Feed(sym wrex.Symbol) V {
	s.root.Shift(s.mark, sym)
	s.mark = s.rig.Zero()
	s.count++
	return s.root.UpdateFinal()
}

// Final returns the weight of the input consumed since the last reset.
func (s *Stepper[V]) Final() V {
	if s.count == 0 {
		return s.root.Empty()
	}
	return s.root.Final()
}

// Count returns the number of symbols consumed since the last reset.
func (s *Stepper[V]) Count() int {
	return s.count
}

// --- Tree walking ----------------------------------------------------------

// Walk traverses a tree depth-first, calling visit for every node in pre-order,
// together with its depth. If visit returns false, the children of the
// node will not be visited.
func Walk[V comparable](root Node[V], visit func(n Node[V], depth int) bool) {
	walk(root, 0, visit)
}

func walk[V comparable](n Node[V], depth int, visit func(Node[V], int) bool) {
	if n == nil || !visit(n, depth) {
		return
	}
	for _, ch := range n.Children() {
		walk(ch, depth+1, visit)
	}
}

// Size returns the number of nodes of a tree.
func Size[V comparable](root Node[V]) int {
	cnt := 0
	Walk(root, func(Node[V], int) bool {
		cnt++
		return true
	})
	return cnt
}

// Label returns a short label for a node, suitable for tree displays.
func Label[V comparable](n Node[V]) string {
	if n.Kind() == SymKind {
		return n.String()
	}
	return n.Kind().String()
}

// Dump is a debugging helper. It traces a tree, one node per line.
func Dump[V comparable](root Node[V], level tracing.TraceLevel) {
	trace := tracer()
	out := trace.Debugf
	switch level {
	case tracing.LevelError:
		out = trace.Errorf
	case tracing.LevelInfo:
		out = trace.Infof
	}
	Walk(root, func(n Node[V], depth int) bool {
		out("%s%s  empty=%v final=%v", strings.Repeat("   ", depth), Label(n), n.Empty(), n.Final())
		return true
	})
}
