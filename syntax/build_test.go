package syntax

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/wrex/expr"
	"github.com/npillmayer/wrex/rig"
	"github.com/npillmayer/wrex/weight"
)

var boolRig rig.Rig[bool] = rig.Bool{}

func compileBool(t *testing.T, pattern string, opts ...Option) expr.Node[bool] {
	t.Helper()
	root, err := NewCompiler[bool](boolRig, nil, opts...).Compile(pattern)
	if err != nil {
		t.Fatalf("cannot compile %q: %v", pattern, err)
	}
	return root
}

func TestCompileMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	var tests = []struct {
		pattern string
		input   string
		accept  bool
	}{
		{"", "", true},
		{"", "a", false},
		{"a{3}", "aaa", true},
		{"a{3}", "aa", false},
		{"[a-c]", "b", true},
		{"[a-c]", "d", false},
		{"[^a]", "b", true},
		{"[^a]", "a", false},
		{`\d*abc+|alphabet`, "alphabet", true},
		{`\d*abc+|alphabet`, "12abccc", true},
		{`\d*abc+|alphabet`, "abd", false},
		{"a{2,}", "a", false},
		{"a{2,}", "aa", true},
		{"a{2,}", "aaaaa", true},
		{"a{1,3}", "", false},
		{"a{1,3}", "aaa", true},
		{"a{1,3}", "aaaa", false},
		{"a{,2}", "", true},
		{"a{,2}", "aa", true},
		{"a{,2}", "aaa", false},
		{"a{0}", "", true},
		{"a{0}", "a", false},
		{"(ab){2}", "abab", true},
		{"(ab){2}", "abba", false},
		{"()", "", true},
		{"a()b", "ab", true},
		{".", "x", true},
		{".", "\n", false},
		{`a\.b`, "a.b", true},
		{`a\.b`, "axb", false},
		{`\w+`, "abc_9", true},
		{`\w+`, "a-b", false},
		{`\s`, "\t", true},
		{`\t`, "\t", true},
		{`\W`, "-", true},
		{`\W`, "a", false},
		{`[\d-]+`, "1-2", true},
		{"[-a]", "-", true},
		{`[\s-x]`, "a", false},
		{`[\s-x]`, "-", true},
		{`[\s-x]`, "x", true},
		{`[\w-x]`, "-", true},
		{`[\w-x]`, "x", true},
		{`[\d-x]`, "-", true},
		{`[\d-x]`, "5", true},
		{`[\]]`, "]", true},
		{"a*?b", "aab", true},
		{"a+", "", false},
		{"(a|b)+c?", "abba", true},
		{"x(?i)abc", "xABC", true},
		{"x(?i)abc", "XABC", false},
		{"(?i)[a-c]", "B", true},
		{"(?i)", "", true},
		{"äö|ü", "ü", true},
	}
	for _, test := range tests {
		root := compileBool(t, test.pattern)
		if m := expr.MatchString(root, boolRig, test.input); m != test.accept {
			t.Errorf("match of %q against %q should be %v, is %v", test.pattern, test.input,
				test.accept, m)
		}
	}
}

func TestCompilePartial(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	c := NewCompiler[bool](boolRig, nil)
	root, err := c.CompilePartial("a|b*")
	if err != nil {
		t.Fatal(err)
	}
	expr.Dump(root, tracing.LevelDebug)
	if !expr.MatchString(root, boolRig, "bbbabbb") {
		t.Errorf("partial a|b* should match bbbabbb")
	}
	root, _ = c.CompilePartial("abc")
	if !expr.MatchString(root, boolRig, "xxabcxx") {
		t.Errorf("partial abc should match xxabcxx")
	}
	if expr.MatchString(root, boolRig, "xxabxcx") {
		t.Errorf("partial abc should not match xxabxcx")
	}
	if !expr.MatchString(root, boolRig, "\nabc\n") {
		t.Errorf("partial abc should match abc surrounded by newlines")
	}
}

func TestCompileErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	var patterns = []string{
		"(a|b",
		"|",
		"a|",
		"*a",
		"a**",
		"a++",
		"a{3,2}",
		"{2}",
		"[z-a]",
		"((a{1000}){1000}){1000}",
		"(a{1000}){101}",
		"(ab){1000}{60}",
	}
	c := NewCompiler[bool](boolRig, nil)
	for _, p := range patterns {
		root, err := c.Compile(p)
		if err == nil {
			t.Errorf("expected %q to be rejected, got %v", p, root)
			continue
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("expected error for %q to be a syntax error, is %v", p, err)
		}
		if root != nil {
			t.Errorf("expected no tree for erroneous pattern %q", p)
		}
	}
}

func TestRepetitionLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	root := compileBool(t, "(a{1000}){10}")
	if n := expr.Size(root); n > MaxExpansion {
		t.Errorf("tree of %d nodes exceeds expansion limit", n)
	}
	_, err := NewCompiler[bool](boolRig, nil).Compile("(a{1000}){1000}")
	var serr *SyntaxError
	if !errors.As(err, &serr) || !strings.Contains(serr.Msg, "expands") {
		t.Errorf("expected nested repetition to be rejected by the expansion limit, got %v", err)
	}
}

func TestBuildFromPostfix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	postfix, err := ToPostfix("(a|b)*c")
	if err != nil {
		t.Fatal(err)
	}
	c := NewCompiler[bool](boolRig, nil)
	root, err := c.Build(postfix)
	if err != nil {
		t.Fatal(err)
	}
	if s := root.String(); s != "(seq (rep (alt 'a' 'b')) 'c')" {
		t.Errorf("unexpected tree %s", s)
	}
	if !expr.MatchString(root, boolRig, "abac") {
		t.Errorf("(a|b)*c should match abac")
	}
}

func TestCaseInsensitive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	inline := compileBool(t, "(?i)abc")
	option := compileBool(t, "abc", CaseInsensitive(true))
	for _, s := range []string{"ABC", "aBc", "abc"} {
		if !expr.MatchString(inline, boolRig, s) {
			t.Errorf("(?i)abc should match %q", s)
		}
		if !expr.MatchString(option, boolRig, s) {
			t.Errorf("case insensitive abc should match %q", s)
		}
	}
	if expr.MatchString(inline, boolRig, "abd") {
		t.Errorf("(?i)abc should not match abd")
	}
	// the flag stays on for the rest of the pattern, regardless of grouping
	global := compileBool(t, "(a(?i)b)c")
	if !expr.MatchString(global, boolRig, "aBC") {
		t.Errorf("case folding should extend beyond the group")
	}
}

// subjects enumerates all strings over alphabet up to length n.
func subjects(alphabet string, n int) []string {
	all := []string{""}
	layer := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, s := range layer {
			for _, r := range alphabet {
				next = append(next, s+string(r))
			}
		}
		all = append(all, next...)
		layer = next
	}
	return all
}

func TestEmptyStringLaw(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	var tests = []struct {
		pattern string
		empty   bool
	}{
		{"a", false},
		{"a*", true},
		{"a+", false},
		{"(a*)+", true},
		{"a?b?", true},
		{"a|b*", true},
		{"a{0,2}", true},
		{"a{1,2}", false},
		{"()", true},
		{"[^a]", false},
	}
	for _, test := range tests {
		root := compileBool(t, test.pattern)
		m := expr.MatchString(root, boolRig, "")
		if m != test.empty || root.Empty() != test.empty {
			t.Errorf("%q: empty input should yield %v, match is %v, empty is %v",
				test.pattern, test.empty, m, root.Empty())
		}
	}
}

func TestIdempotentCompile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	for _, p := range []string{"(a|b)*a{2}", "[^b]+|b?", "a(ba)*b?"} {
		t1, t2 := compileBool(t, p), compileBool(t, p)
		if t1.String() != t2.String() {
			t.Errorf("%q compiled to different trees: %v, %v", p, t1, t2)
		}
		for _, s := range subjects("ab", 5) {
			if expr.MatchString(t1, boolRig, s) != expr.MatchString(t2, boolRig, s) {
				t.Errorf("%q: compilations differ on %q", p, s)
			}
		}
	}
}

func TestRepetitionEquivalence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	var tests = []struct {
		braces, expanded string
	}{
		{"(ab|a){3}", "(ab|a)(ab|a)(ab|a)"},
		{"(ab|a){2,}", "(ab|a)(ab|a)(ab|a)*"},
		{"(ab|a){1,3}", "(ab|a)(ab|a)?(ab|a)?"},
		{"(ab|a){0,2}", "(ab|a)?(ab|a)?"},
		{"b{0,}", "b*"},
		{"(a|b){2,2}", "(a|b)(a|b)"},
	}
	for _, test := range tests {
		t1, t2 := compileBool(t, test.braces), compileBool(t, test.expanded)
		for _, s := range subjects("ab", 7) {
			if m1, m2 := expr.MatchString(t1, boolRig, s), expr.MatchString(t2, boolRig, s); m1 != m2 {
				t.Errorf("%q and %q differ on %q: %v ≠ %v", test.braces, test.expanded, s, m1, m2)
			}
		}
	}
}

func TestPartialContainsExact(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	c := NewCompiler[bool](boolRig, nil)
	for _, p := range []string{"ab*", "(a|b)b", "[^a]{2}", "a?"} {
		exact, _ := c.Compile(p)
		partial, err := c.CompilePartial(p)
		if err != nil {
			t.Fatal(err)
		}
		for _, s := range subjects("abc", 4) {
			if expr.MatchString(exact, boolRig, s) && !expr.MatchString(partial, boolRig, s) {
				t.Errorf("%q: exact match of %q should imply partial match", p, s)
			}
		}
	}
}

func TestCountingCompile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	var rg rig.Rig[int] = rig.Int{}
	c := NewCompiler[int](rg, nil)
	var tests = []struct {
		pattern string
		input   string
		count   int
	}{
		{"(a|a){2}", "aa", 4},
		{"a*a*", "aa", 3},
		{"[aa]", "a", 2},
		{"[^b]", "a", 1},
		{"a", "b", 0},
	}
	for _, test := range tests {
		root, err := c.Compile(test.pattern)
		if err != nil {
			t.Fatal(err)
		}
		if n := expr.MatchString(root, rg, test.input); n != test.count {
			t.Errorf("%q on %q: expected %d derivations, got %d", test.pattern, test.input,
				test.count, n)
		}
	}
}

func TestPositionalCompile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	var rg rig.Rig[rig.Range] = rig.LeftmostLongest{}
	root, err := NewCompiler[rig.Range](rg, nil).CompilePartial("[^a]+")
	if err != nil {
		t.Fatal(err)
	}
	if r := expr.MatchString(root, rg, "aabbba"); r != (rig.Range{Start: 2, End: 4}) {
		t.Errorf("expected [^a]+ to match (2,4), got %v", r)
	}
	untagged, _ := NewCompiler[rig.Range](rg, nil, TagInverted(false)).CompilePartial("[^a]+")
	if r := expr.MatchString(untagged, rg, "aabbba"); r != rig.RangeOne {
		t.Errorf("expected untagged [^a]+ to match without position, got %v", r)
	}
	var lm rig.Rig[int] = rig.Leftmost{}
	start, _ := NewCompiler[int](lm, weight.Positions[int]).CompilePartial("c(?i)D")
	if p := expr.MatchString(start, lm, "abcdcD"); p != 2 {
		t.Errorf("expected leftmost start 2, got %d", p)
	}
}

func TestTreeTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	root := compileBool(t, "a(?i)b.[^x]")
	s := root.String()
	for _, tag := range []string{"'a'", "'b'/i", ".", "[^…]"} {
		if !strings.Contains(s, tag) {
			t.Errorf("expected tree %s to contain %s", s, tag)
		}
	}
}
