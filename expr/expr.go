package expr

import (
	"fmt"

	"github.com/npillmayer/wrex"
	"github.com/npillmayer/wrex/rig"
	"github.com/npillmayer/wrex/weight"
)

// Kind is the variant of an expression node.
type Kind int8

// Node variants
const (
	SymKind Kind = iota
	EpsKind
	RepKind
	PlusKind
	QuestionKind
	SeqKind
	AltKind
)

func (k Kind) String() string {
	switch k {
	case SymKind:
		return "sym"
	case EpsKind:
		return "eps"
	case RepKind:
		return "rep"
	case PlusKind:
		return "plus"
	case QuestionKind:
		return "opt"
	case SeqKind:
		return "seq"
	case AltKind:
		return "alt"
	}
	return "<unknown>"
}

// Node is the interface for nodes of an expression tree.
//
// Shift and UpdateFinal have to be called in strict alternation: for every
// input symbol, first Shift is called on the root, then UpdateFinal.
// Empty is a static property of a sub-pattern and never changes.
type Node[V comparable] interface {
	Shift(mark V, sym wrex.Symbol) // shift a mark into the node
	UpdateFinal() V                // re-compute the cached final value
	Final() V                      // the cached final value
	Empty() V                      // weight of the empty input
	Reset()                        // clear all marks and final values
	Copy() Node[V]                 // deep copy, sharing nothing mutable
	Kind() Kind
	Children() []Node[V]
	String() string
}

// node holds the state common to all variants.
type node[V comparable] struct {
	rig   rig.Rig[V]
	final V
	empty V
}

func makeNode[V comparable](rg rig.Rig[V]) node[V] {
	return node[V]{rig: rg, final: rg.Zero(), empty: rg.Zero()}
}

func (n *node[V]) Final() V {
	return n.final
}

func (n *node[V]) Empty() V {
	return n.empty
}

// --- Sym -------------------------------------------------------------------

// Sym is a symbol of a pattern, either a literal, a character class or '.'.
// The weight function decides which subject symbols match.
type Sym[V comparable] struct {
	node[V]
	weight weight.Func[V]
	mark   V
	Tag    string // label for debugging
}

// NewSym creates a symbol node.
func NewSym[V comparable](f weight.Func[V], rg rig.Rig[V], tag string) *Sym[V] {
	return &Sym[V]{
		node:   makeNode(rg),
		weight: f,
		mark:   rg.Zero(),
		Tag:    tag,
	}
}

func (s *Sym[V]) Shift(mark V, sym wrex.Symbol) {
	s.mark = s.rig.Mult(mark, s.weight.Call(sym))
}

func (s *Sym[V]) UpdateFinal() V {
	s.final = s.mark
	return s.final
}

func (s *Sym[V]) Reset() {
	s.final = s.rig.Zero()
	s.mark = s.rig.Zero()
}

// Copy shares the weight function, which has no mutable state.
func (s *Sym[V]) Copy() Node[V] {
	return NewSym(s.weight, s.rig, s.Tag)
}

// Mark returns the current mark of the symbol.
func (s *Sym[V]) Mark() V {
	return s.mark
}

func (s *Sym[V]) Kind() Kind             { return SymKind }
func (s *Sym[V]) Children() []Node[V]    { return nil }
func (s *Sym[V]) Weight() weight.Func[V] { return s.weight }

func (s *Sym[V]) String() string {
	if s.Tag != "" {
		return s.Tag
	}
	return fmt.Sprintf("%v", s.weight)
}

// --- Eps -------------------------------------------------------------------

// Eps is the empty pattern. It accepts the empty input only.
type Eps[V comparable] struct {
	node[V]
}

// NewEps creates an epsilon node.
func NewEps[V comparable](rg rig.Rig[V]) *Eps[V] {
	e := &Eps[V]{node: makeNode(rg)}
	e.empty = rg.One()
	return e
}

func (e *Eps[V]) Shift(V, wrex.Symbol) {}

func (e *Eps[V]) UpdateFinal() V {
	return e.final // never changes
}

func (e *Eps[V]) Reset() {
	e.final = e.rig.Zero()
}

func (e *Eps[V]) Copy() Node[V]       { return NewEps(e.rig) }
func (e *Eps[V]) Kind() Kind          { return EpsKind }
func (e *Eps[V]) Children() []Node[V] { return nil }
func (e *Eps[V]) String() string      { return "ε" }

// --- Unary nodes -----------------------------------------------------------

type unary[V comparable] struct {
	node[V]
	exp Node[V]
}

func (u *unary[V]) UpdateFinal() V {
	u.final = u.exp.UpdateFinal()
	return u.final
}

func (u *unary[V]) Reset() {
	u.exp.Reset()
	u.final = u.rig.Zero()
}

func (u *unary[V]) Children() []Node[V] {
	return []Node[V]{u.exp}
}

// Rep is exp repeated zero or more times.
type Rep[V comparable] struct {
	unary[V]
}

// NewRep creates a node for exp*.
func NewRep[V comparable](exp Node[V], rg rig.Rig[V]) *Rep[V] {
	r := &Rep[V]{unary[V]{node: makeNode(rg), exp: exp}}
	r.empty = rg.One()
	return r
}

// Shift re-injects the node's own acceptance as a starting mark, thus looping.
func (r *Rep[V]) Shift(mark V, sym wrex.Symbol) {
	r.exp.Shift(r.rig.Plus(mark, r.final), sym)
}

func (r *Rep[V]) Copy() Node[V]  { return NewRep(r.exp.Copy(), r.rig) }
func (r *Rep[V]) Kind() Kind     { return RepKind }
func (r *Rep[V]) String() string { return fmt.Sprintf("(rep %s)", r.exp) }

// Plus is exp repeated one or more times. It loops like Rep, but accepts the
// empty input only if exp does.
type Plus[V comparable] struct {
	unary[V]
}

// NewPlus creates a node for exp+.
func NewPlus[V comparable](exp Node[V], rg rig.Rig[V]) *Plus[V] {
	p := &Plus[V]{unary[V]{node: makeNode(rg), exp: exp}}
	p.empty = exp.Empty()
	return p
}

func (p *Plus[V]) Shift(mark V, sym wrex.Symbol) {
	p.exp.Shift(p.rig.Plus(mark, p.final), sym)
}

func (p *Plus[V]) Copy() Node[V]  { return NewPlus(p.exp.Copy(), p.rig) }
func (p *Plus[V]) Kind() Kind     { return PlusKind }
func (p *Plus[V]) String() string { return fmt.Sprintf("(plus %s)", p.exp) }

// Question is exp, zero or one times.
type Question[V comparable] struct {
	unary[V]
}

// NewQuestion creates a node for exp?.
func NewQuestion[V comparable](exp Node[V], rg rig.Rig[V]) *Question[V] {
	q := &Question[V]{unary[V]{node: makeNode(rg), exp: exp}}
	q.empty = rg.One()
	return q
}

func (q *Question[V]) Shift(mark V, sym wrex.Symbol) {
	q.exp.Shift(mark, sym)
}

func (q *Question[V]) Copy() Node[V]  { return NewQuestion(q.exp.Copy(), q.rig) }
func (q *Question[V]) Kind() Kind     { return QuestionKind }
func (q *Question[V]) String() string { return fmt.Sprintf("(opt %s)", q.exp) }

// --- Binary nodes ----------------------------------------------------------

type binary[V comparable] struct {
	node[V]
	left, right Node[V]
}

func (b *binary[V]) Reset() {
	b.left.Reset()
	b.right.Reset()
	b.final = b.rig.Zero()
}

func (b *binary[V]) Children() []Node[V] {
	return []Node[V]{b.left, b.right}
}

// Seq is the concatenation of left and right.
type Seq[V comparable] struct {
	binary[V]
}

// NewSeq creates a node for concatenation.
func NewSeq[V comparable](left, right Node[V], rg rig.Rig[V]) *Seq[V] {
	s := &Seq[V]{binary[V]{node: makeNode(rg), left: left, right: right}}
	s.empty = rg.Mult(left.Empty(), right.Empty())
	return s
}

// Shift starts the right side if a match begins now and the left side accepts
// the empty input, or if the left side accepted at the previous symbol.
// left.Final() still holds the previous symbol's value, as Shift does not
// touch final values.
func (s *Seq[V]) Shift(mark V, sym wrex.Symbol) {
	s.left.Shift(mark, sym)
	s.right.Shift(s.rig.Plus(s.rig.Mult(mark, s.left.Empty()), s.left.Final()), sym)
}

func (s *Seq[V]) UpdateFinal() V {
	l := s.left.UpdateFinal()
	r := s.right.UpdateFinal()
	s.final = s.rig.Plus(s.rig.Mult(l, s.right.Empty()), r)
	return s.final
}

func (s *Seq[V]) Copy() Node[V]  { return NewSeq(s.left.Copy(), s.right.Copy(), s.rig) }
func (s *Seq[V]) Kind() Kind     { return SeqKind }
func (s *Seq[V]) String() string { return fmt.Sprintf("(seq %s %s)", s.left, s.right) }

// Alt is the alternation of left and right.
type Alt[V comparable] struct {
	binary[V]
}

// NewAlt creates a node for alternation.
func NewAlt[V comparable](left, right Node[V], rg rig.Rig[V]) *Alt[V] {
	a := &Alt[V]{binary[V]{node: makeNode(rg), left: left, right: right}}
	a.empty = rg.Plus(left.Empty(), right.Empty())
	return a
}

func (a *Alt[V]) Shift(mark V, sym wrex.Symbol) {
	a.left.Shift(mark, sym)
	a.right.Shift(mark, sym)
}

func (a *Alt[V]) UpdateFinal() V {
	l := a.left.UpdateFinal()
	r := a.right.UpdateFinal()
	a.final = a.rig.Plus(l, r)
	return a.final
}

func (a *Alt[V]) Copy() Node[V]  { return NewAlt(a.left.Copy(), a.right.Copy(), a.rig) }
func (a *Alt[V]) Kind() Kind     { return AltKind }
func (a *Alt[V]) String() string { return fmt.Sprintf("(alt %s %s)", a.left, a.right) }
