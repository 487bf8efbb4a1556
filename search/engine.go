package search

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/wrex"
	"github.com/npillmayer/wrex/expr"
	"github.com/npillmayer/wrex/rig"
	"github.com/npillmayer/wrex/syntax"
)

// DefaultCacheSize is the number of compiled patterns an engine keeps, if not
// configured otherwise.
const DefaultCacheSize = 64

// Engine runs searches and caches compiled patterns. Cached trees are never
// matched directly: every search works on a copy. An Engine is safe for
// concurrent use.
type Engine struct {
	mu        sync.Mutex
	cache     *linkedhashmap.Map // hash of cacheKey -> expr.Node[V]
	cacheSize int
	fold      bool
}

// Option configures an Engine.
type Option func(*Engine)

// CacheSize sets the number of compiled patterns to keep. 0 disables caching.
func CacheSize(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.cacheSize = n
		}
	}
}

// CaseInsensitive makes all patterns of an engine match case-insensitively.
func CaseInsensitive(b bool) Option {
	return func(e *Engine) {
		e.fold = b
	}
}

// NewEngine creates a search engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		cache:     linkedhashmap.New(),
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type cacheKey struct {
	Pattern string
	Mode    Mode
	Fold    bool
}

func (e *Engine) key(pattern string, mode Mode) string {
	h, err := structhash.Hash(cacheKey{Pattern: pattern, Mode: mode, Fold: e.fold}, 1)
	if err != nil { // should not happen for plain structs
		tracer().Errorf("cannot hash cache key: %v", err)
		return fmt.Sprintf("%d/%v/%s", mode, e.fold, pattern)
	}
	return h
}

func (e *Engine) lookup(key string) (interface{}, bool) {
	if e.cacheSize == 0 {
		return nil, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cache.Get(key)
}

// store puts a prototype into the cache, evicting the oldest entry if the
// cache is full.
func (e *Engine) store(key string, proto interface{}) {
	if e.cacheSize == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, found := e.cache.Get(key); found {
		return
	}
	for e.cache.Size() >= e.cacheSize {
		oldest := e.cache.Keys()[0]
		tracer().Debugf("evicting %v from pattern cache", oldest)
		e.cache.Remove(oldest)
	}
	e.cache.Put(key, proto)
}

// CacheLen returns the number of cached patterns.
func (e *Engine) CacheLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cache.Size()
}

// compile returns a private copy of the tree for pattern in mode.
func compile[V comparable](e *Engine, pattern string, mode Mode, rg rig.Rig[V]) (expr.Node[V], error) {
	key := e.key(pattern, mode)
	if proto, ok := e.lookup(key); ok {
		return proto.(expr.Node[V]).Copy(), nil
	}
	c := syntax.NewCompiler[V](rg, nil, syntax.CaseInsensitive(e.fold))
	var root expr.Node[V]
	var err error
	if mode.partial() {
		root, err = c.CompilePartial(pattern)
	} else {
		root, err = c.Compile(pattern)
	}
	if err != nil {
		return nil, fmt.Errorf("search mode %s: %w", mode, err)
	}
	e.store(key, root)
	return root.Copy(), nil
}

// --- Modes -----------------------------------------------------------------

// Partial reports whether pattern occurs anywhere in subject.
func (e *Engine) Partial(pattern, subject string) (bool, error) {
	return e.bitMatch(pattern, subject, PartialMatch)
}

// Complete reports whether pattern matches subject as a whole.
func (e *Engine) Complete(pattern, subject string) (bool, error) {
	return e.bitMatch(pattern, subject, CompleteMatch)
}

func (e *Engine) bitMatch(pattern, subject string, mode Mode) (bool, error) {
	var rg rig.Rig[uint8] = rig.Bit{}
	root, err := compile[uint8](e, pattern, mode, rg)
	if err != nil {
		return false, err
	}
	return expr.MatchString[uint8](root, rg, subject) == rg.One(), nil
}

// Start returns the start position of the leftmost match of pattern within
// subject, or -1 if there is no match. Positions are rune positions. A match
// without position information, e.g. of the empty pattern, is reported at 0.
func (e *Engine) Start(pattern, subject string) (int, error) {
	var rg rig.Rig[int] = rig.Leftmost{}
	root, err := compile[int](e, pattern, LeftmostStart, rg)
	if err != nil {
		return -1, err
	}
	switch pos := expr.MatchString[int](root, rg, subject); pos {
	case rig.LeftmostZero:
		return -1, nil
	case rig.LeftmostOne:
		return 0, nil
	default:
		return pos, nil
	}
}

// Range returns the span of the leftmost-longest match of pattern within
// subject. If there is no match, ok is false. A match without position
// information is reported as the empty span at 0.
func (e *Engine) Range(pattern, subject string) (span wrex.Span, ok bool, err error) {
	var rg rig.Rig[rig.Range] = rig.LeftmostLongest{}
	root, err := compile[rig.Range](e, pattern, LeftmostRange, rg)
	if err != nil {
		return wrex.Span{}, false, err
	}
	switch r := expr.MatchString[rig.Range](root, rg, subject); r {
	case rig.RangeZero:
		return wrex.Span{}, false, nil
	case rig.RangeOne:
		return wrex.Span{}, true, nil
	default:
		return r.Span(), true, nil
	}
}

// All returns the spans of successive non-overlapping matches of pattern
// within subject.
//
// Symbols are fed into the tree one at a time. As soon as the leftmost-longest
// match does not change over a symbol, it is taken to be complete: its span is
// collected and scanning restarts with a fresh tree just behind the match.
// A match pending at the end of the subject is collected as well. Matches
// without position information, e.g. of the empty pattern, are not reported.
func (e *Engine) All(pattern, subject string) ([]wrex.Span, error) {
	var rg rig.Rig[rig.Range] = rig.LeftmostLongest{}
	root, err := compile[rig.Range](e, pattern, FindAll, rg)
	if err != nil {
		return nil, err
	}
	syms := wrex.Symbols(subject)
	stepper := expr.NewStepper[rig.Range](root, rg)
	var spans []wrex.Span
	for start := 0; start < len(syms); {
		m, ok := nextMatch(stepper, syms, start)
		if !ok {
			break
		}
		tracer().Debugf("found match %v", m)
		spans = append(spans, m.Span())
		start = m.End + 1
	}
	return spans, nil
}

func nextMatch(stepper *expr.Stepper[rig.Range], syms []wrex.Symbol, start int) (rig.Range, bool) {
	stepper.Reset()
	prev := rig.RangeZero
	for _, sym := range syms[start:] {
		final := stepper.Feed(sym)
		if final == prev && final.IsPosition() {
			return final, true
		}
		prev = final
	}
	return prev, prev.IsPosition()
}

// Count returns the number of ways pattern matches subject as a whole.
// Duplicate members of a character class count as distinct ways.
func (e *Engine) Count(pattern, subject string) (int, error) {
	var rg rig.Rig[int] = rig.Int{}
	root, err := compile[int](e, pattern, CountMatches, rg)
	if err != nil {
		return 0, err
	}
	return expr.MatchString[int](root, rg, subject), nil
}

// --- Results ---------------------------------------------------------------

// Result holds the outcome of Run. Only the fields for Mode are set.
type Result struct {
	Mode    Mode
	Matched bool        // PartialMatch, CompleteMatch, LeftmostRange
	Start   int         // LeftmostStart
	Spans   []wrex.Span // LeftmostRange (one span), FindAll
	Count   int         // CountMatches
}

func (r Result) String() string {
	switch r.Mode {
	case PartialMatch, CompleteMatch:
		return fmt.Sprintf("%v", r.Matched)
	case LeftmostStart:
		return fmt.Sprintf("%d", r.Start)
	case LeftmostRange:
		if !r.Matched {
			return "no match"
		}
		return r.Spans[0].String()
	case FindAll:
		s := make([]string, len(r.Spans))
		for i, span := range r.Spans {
			s[i] = span.String()
		}
		return "[" + strings.Join(s, " ") + "]"
	case CountMatches:
		return fmt.Sprintf("%d", r.Count)
	}
	return "?"
}

// Run searches in any mode.
func (e *Engine) Run(mode Mode, pattern, subject string) (Result, error) {
	res := Result{Mode: mode}
	var err error
	switch mode {
	case PartialMatch:
		res.Matched, err = e.Partial(pattern, subject)
	case CompleteMatch:
		res.Matched, err = e.Complete(pattern, subject)
	case LeftmostStart:
		res.Start, err = e.Start(pattern, subject)
	case LeftmostRange:
		var span wrex.Span
		span, res.Matched, err = e.Range(pattern, subject)
		if res.Matched {
			res.Spans = []wrex.Span{span}
		}
	case FindAll:
		res.Spans, err = e.All(pattern, subject)
	case CountMatches:
		res.Count, err = e.Count(pattern, subject)
	default:
		err = fmt.Errorf("unknown search mode %d", int(mode))
	}
	tracer().Infof("%s %q on %q: %v", mode, pattern, subject, res)
	return res, err
}

// --- Default engine --------------------------------------------------------

var defaultEngine = NewEngine()

// Partial reports whether pattern occurs anywhere in subject.
func Partial(pattern, subject string) (bool, error) {
	return defaultEngine.Partial(pattern, subject)
}

// Complete reports whether pattern matches subject as a whole.
func Complete(pattern, subject string) (bool, error) {
	return defaultEngine.Complete(pattern, subject)
}

// Start returns the start position of the leftmost match, or -1.
func Start(pattern, subject string) (int, error) {
	return defaultEngine.Start(pattern, subject)
}

// Range returns the span of the leftmost-longest match.
func Range(pattern, subject string) (wrex.Span, bool, error) {
	return defaultEngine.Range(pattern, subject)
}

// All returns the spans of successive matches.
func All(pattern, subject string) ([]wrex.Span, error) {
	return defaultEngine.All(pattern, subject)
}

// Count returns the number of ways pattern matches subject as a whole.
func Count(pattern, subject string) (int, error) {
	return defaultEngine.Count(pattern, subject)
}

// Run searches in any mode.
func Run(mode Mode, pattern, subject string) (Result, error) {
	return defaultEngine.Run(mode, pattern, subject)
}
