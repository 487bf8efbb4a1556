package syntax

import (
	"fmt"
	"unicode"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/wrex/expr"
	"github.com/npillmayer/wrex/rig"
	"github.com/npillmayer/wrex/weight"
)

// MaxRepeat is the largest count allowed in repetition braces.
const MaxRepeat = 1000

// MaxExpansion is the largest number of tree nodes a single repetition group
// may expand to. Nested braces multiply, so counts alone do not bound a tree.
const MaxExpansion = 100000

// Compiler compiles patterns to expression trees over a rig. Literals and
// class members are turned into weight functions by a weight.Factory.
//
// A Compiler holds no state between compilations and may be used
// concurrently.
type Compiler[V comparable] struct {
	rig             rig.Rig[V]
	factory         weight.Factory[V]
	caseInsensitive bool
	tagInverted     bool
}

// Option configures a Compiler.
type Option func(*options)

type options struct {
	caseInsensitive bool
	tagInverted     bool
}

// CaseInsensitive sets the initial case folding mode. Patterns may switch
// folding on with "(?i)".
func CaseInsensitive(b bool) Option {
	return func(o *options) {
		o.caseInsensitive = b
	}
}

// TagInverted controls whether negated classes are tagged with symbol
// positions when the rig is a rig.AutoMatcher. Default is true. Without
// tagging a negated class yields a position-less one, which makes match
// positions of positional rigs unreliable.
func TagInverted(b bool) Option {
	return func(o *options) {
		o.tagInverted = b
	}
}

// NewCompiler creates a compiler for a rig. If factory is nil, Literals is
// used, or Positions for rigs implementing rig.AutoMatcher.
func NewCompiler[V comparable](rg rig.Rig[V], factory weight.Factory[V], opts ...Option) *Compiler[V] {
	o := options{tagInverted: true}
	for _, opt := range opts {
		opt(&o)
	}
	if factory == nil {
		factory = weight.Literals[V]
		if _, ok := rg.(rig.AutoMatcher[V]); ok {
			factory = weight.Positions[V]
		}
	}
	return &Compiler[V]{
		rig:             rg,
		factory:         factory,
		caseInsensitive: o.caseInsensitive,
		tagInverted:     o.tagInverted,
	}
}

// Rig returns the rig of this compiler.
func (c *Compiler[V]) Rig() rig.Rig[V] {
	return c.rig
}

// Compile compiles a pattern for complete matching: the resulting tree
// weighs the subject as a whole. The empty pattern compiles to ε.
func (c *Compiler[V]) Compile(pattern string) (root expr.Node[V], err error) {
	defer func() {
		if r := recover(); r != nil {
			root = nil
			err = syntaxError(pattern, 0, "internal error: %v", r)
		}
	}()
	postfix, err := ToPostfix(pattern)
	if err != nil {
		return nil, err
	}
	return c.build(pattern, postfix)
}

// CompilePartial compiles a pattern for partial matching: the resulting tree
// weighs every substring of the subject. The tree is the pattern
// surrounded by .* on both sides, where '.' matches any symbol.
func (c *Compiler[V]) CompilePartial(pattern string) (expr.Node[V], error) {
	root, err := c.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return c.Surround(root), nil
}

// Surround wraps a tree t into (any* t any*). "any" matches every symbol,
// including newline.
func (c *Compiler[V]) Surround(t expr.Node[V]) expr.Node[V] {
	anyStar := func() expr.Node[V] {
		sym := expr.NewSym[V](weight.One[V](c.rig), c.rig, "any")
		return expr.NewRep[V](sym, c.rig)
	}
	return expr.NewSeq[V](expr.NewSeq[V](anyStar(), t, c.rig), anyStar(), c.rig)
}

// Build reduces a postfix token sequence, as produced by ToPostfix, to an
// expression tree.
func (c *Compiler[V]) Build(postfix []Token) (expr.Node[V], error) {
	return c.build(TokensString(postfix), postfix)
}

func (c *Compiler[V]) build(pattern string, postfix []Token) (expr.Node[V], error) {
	if len(postfix) == 0 {
		return expr.NewEps[V](c.rig), nil
	}
	b := &builder[V]{
		Compiler: c,
		pattern:  pattern,
		fold:     c.caseInsensitive,
		operands: arraystack.New(),
	}
	for i := 0; i < len(postfix); i++ {
		t := postfix[i]
		var err error
		switch t.Kind {
		case Literal:
			b.push(b.literal(t.R))
		case Dot:
			b.push(expr.NewSym[V](weight.NewAllButNewline[V](c.rig), c.rig, "."))
		case Empty:
			b.push(expr.NewEps[V](c.rig))
		case CaseFold:
			b.fold = true
		case Concat, Alternate:
			err = b.binary(t)
		case Star, Plus, Quest:
			err = b.unary(t)
		case ClassStart:
			i, err = b.class(postfix, i)
		case RepStart:
			i, err = b.braces(postfix, i)
		default:
			err = syntaxError(pattern, t.Pos, "unexpected %s in postfix expression", TokTypeString(t.Kind))
		}
		if err != nil {
			return nil, err
		}
	}
	switch b.operands.Size() {
	case 0:
		return expr.NewEps[V](c.rig), nil // pattern consisting of "(?i)" only
	case 1:
		v, _ := b.operands.Pop()
		root := v.(expr.Node[V])
		tracer().Debugf("compiled %q to %v", pattern, root)
		return root, nil
	}
	return nil, syntaxError(pattern, len([]rune(pattern)), "%d operands left without operator", b.operands.Size())
}

type builder[V comparable] struct {
	*Compiler[V]
	pattern  string
	fold     bool
	operands *arraystack.Stack
}

func (b *builder[V]) push(n expr.Node[V]) {
	b.operands.Push(n)
}

func (b *builder[V]) pop(t Token) (expr.Node[V], error) {
	v, ok := b.operands.Pop()
	if !ok {
		return nil, syntaxError(b.pattern, t.Pos, "missing operand for %s", t.Lexeme())
	}
	return v.(expr.Node[V]), nil
}

func (b *builder[V]) weightFor(r rune) weight.Func[V] {
	if b.fold {
		return weight.Fold[V](b.factory(unicode.ToLower(r), b.rig))
	}
	return b.factory(r, b.rig)
}

func (b *builder[V]) literal(r rune) expr.Node[V] {
	tag := fmt.Sprintf("%q", r)
	if b.fold {
		tag += "/i"
	}
	return expr.NewSym[V](b.weightFor(r), b.rig, tag)
}

func (b *builder[V]) binary(t Token) error {
	right, err := b.pop(t)
	if err != nil {
		return err
	}
	left, err := b.pop(t)
	if err != nil {
		return err
	}
	if t.Kind == Concat {
		b.push(expr.NewSeq[V](left, right, b.rig))
	} else {
		b.push(expr.NewAlt[V](left, right, b.rig))
	}
	return nil
}

func (b *builder[V]) unary(t Token) error {
	e, err := b.pop(t)
	if err != nil {
		return err
	}
	switch t.Kind {
	case Star:
		if e.Kind() == expr.RepKind {
			return syntaxError(b.pattern, t.Pos, "nested repetition **")
		}
		b.push(expr.NewRep[V](e, b.rig))
	case Plus:
		if e.Kind() == expr.PlusKind {
			return syntaxError(b.pattern, t.Pos, "nested repetition ++")
		}
		b.push(expr.NewPlus[V](e, b.rig))
	default:
		b.push(expr.NewQuestion[V](e, b.rig))
	}
	return nil
}

// class reduces a class group starting at postfix[i] to a symbol node and
// returns the index of the group's ClassEnd.
func (b *builder[V]) class(postfix []Token, i int) (int, error) {
	start := postfix[i]
	negated := false
	var members []rune
	for i++; i < len(postfix) && postfix[i].Kind != ClassEnd; i++ {
		t := postfix[i]
		switch t.Kind {
		case ClassNegate:
			negated = true
		case ClassMember:
			members = append(members, t.R)
		case ClassRange:
			if rune(t.N) < t.R {
				return i, syntaxError(b.pattern, t.Pos, "invalid class range %s", t.Lexeme())
			}
			for r := t.R; r <= rune(t.N); r++ {
				members = append(members, r)
			}
		default:
			return i, syntaxError(b.pattern, t.Pos, "unexpected %s in character class", TokTypeString(t.Kind))
		}
	}
	if i >= len(postfix) {
		return i, syntaxError(b.pattern, start.Pos, "missing ] for character class")
	}
	if len(members) == 0 {
		return i, syntaxError(b.pattern, start.Pos, "empty character class")
	}
	funcs := make([]weight.Func[V], len(members))
	for j, r := range members {
		funcs[j] = b.weightFor(r)
	}
	var f weight.Func[V] = weight.NewClass[V](funcs, b.rig)
	tag := "[…]"
	if negated {
		f = weight.Not[V](f, b.rig)
		if b.tagInverted {
			f = weight.Tag[V](f, b.rig)
		}
		tag = "[^…]"
	}
	b.push(expr.NewSym[V](f, b.rig, tag))
	return i, nil
}

// braces reduces a repetition group starting at postfix[i] and returns the
// index of the group's RepEnd.
//
//	e{n}    n copies of e, ε for n=0
//	e{n,}   n copies of e, followed by e*
//	e{n,m}  n copies of e, followed by m-n copies of e?
func (b *builder[V]) braces(postfix []Token, i int) (int, error) {
	start := postfix[i]
	lo, hi, comma, nums := 0, 0, false, 0
	for i++; i < len(postfix) && postfix[i].Kind != RepEnd; i++ {
		t := postfix[i]
		switch {
		case t.Kind == RepNum && !comma && nums == 0:
			lo, hi = t.N, t.N
			nums++
		case t.Kind == RepNum && comma && nums == 1:
			hi = t.N
			nums++
		case t.Kind == RepComma && !comma && nums == 1:
			comma = true
			hi = -1
		default:
			return i, syntaxError(b.pattern, t.Pos, "malformed repetition")
		}
	}
	if i >= len(postfix) || nums == 0 {
		return i, syntaxError(b.pattern, start.Pos, "malformed repetition")
	}
	if hi >= 0 && lo > hi {
		return i, syntaxError(b.pattern, start.Pos, "repetition {%d,%d}: lower bound exceeds upper bound", lo, hi)
	}
	if lo > MaxRepeat || hi > MaxRepeat {
		return i, syntaxError(b.pattern, start.Pos, "repetition count exceeds %d", MaxRepeat)
	}
	e, err := b.pop(start)
	if err != nil {
		return i, err
	}
	copies := hi
	if hi < 0 {
		copies = lo + 1
	}
	if size := expr.Size(e); size*copies > MaxExpansion {
		return i, syntaxError(b.pattern, start.Pos, "repetition expands to more than %d nodes", MaxExpansion)
	}
	b.push(b.repeat(e, lo, hi))
	return i, nil
}

// repeat expands e{lo,hi}. hi < 0 denotes an open upper bound.
func (b *builder[V]) repeat(e expr.Node[V], lo, hi int) expr.Node[V] {
	var chain expr.Node[V]
	appendNode := func(n expr.Node[V]) {
		if chain == nil {
			chain = n
		} else {
			chain = expr.NewSeq[V](chain, n, b.rig)
		}
	}
	copies := 0
	next := func() expr.Node[V] { // e itself is used for the first copy
		copies++
		if copies == 1 {
			return e
		}
		return e.Copy()
	}
	for k := 0; k < lo; k++ {
		appendNode(next())
	}
	if hi < 0 {
		appendNode(expr.NewRep[V](next(), b.rig))
	} else {
		for k := lo; k < hi; k++ {
			appendNode(expr.NewQuestion[V](next(), b.rig))
		}
	}
	if chain == nil { // e{0} or e{0,0}
		return expr.NewEps[V](b.rig)
	}
	return chain
}
