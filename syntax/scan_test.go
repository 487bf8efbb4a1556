package syntax

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestScan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	var tests = []struct {
		pattern string
		tokens  string
	}{
		{"", ""},
		{"ab", "a · b"},
		{"a|b*", "a | b *"},
		{"(a)(b)", "( a ) · ( b )"},
		{"a*b", "a * · b"},
		{"a(?i)b", "a (?i) · b"},
		{"[a-c]d", "[ a - c ] · d"},
		{"[^ab]", "[ ^ a b ]"},
		{"[a(]b", "[ a \\( ] · b"},
		{"a{2,3}b", "a { 2 , 3 } · b"},
		{"()a", "() · a"},
		{`\.x`, `\. · x`},
		{`[\]]`, `[ \] ]`},
		{"a.?", "a · . ?"},
	}
	for _, test := range tests {
		toks, err := Scan(test.pattern)
		if err != nil {
			t.Errorf("scanning %q: unexpected error %v", test.pattern, err)
			continue
		}
		if s := TokensString(toks); s != test.tokens {
			t.Errorf("scanning %q: expected %q, got %q", test.pattern, test.tokens, s)
		}
	}
}

func TestScanPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	toks, err := Scan("äb{12}")
	if err != nil {
		t.Fatal(err)
	}
	// ä · b { 12 }
	if len(toks) != 6 {
		t.Fatalf("expected 6 tokens, got %d: %s", len(toks), TokensString(toks))
	}
	if toks[2].Pos != 1 || toks[4].Pos != 3 || toks[4].N != 12 {
		t.Errorf("positions should be rune positions, got %v", toks)
	}
	if toks[4].Value() != 12 {
		t.Errorf("value of repetition count should be 12, is %v", toks[4].Value())
	}
}

func TestPostfix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	var tests = []struct {
		pattern string
		postfix string
	}{
		{"ab|c", "a b · c |"},
		{"a|bc*", "a b c * · |"},
		{"(a|b)c", "a b | c ·"},
		{"ab{2}", "a b { 2 } ·"},
		{"a*{2}", "a * { 2 }"},
		{"a{,3}", "a { 0 , 3 }"},
		{"a{,}", "a { 0 , }"},
		{`\d`, "[ 0-9 ]"},
		{`\D`, "[ ^ 0-9 ]"},
		{`[a-c\d-]`, `[ a-c 0-9 \- ]`},
		{`[-a]`, `[ \- a ]`},
		{`[a-c-e]`, `[ a-c \- e ]`},
		{`[^\w]`, "[ ^ a-z A-Z 0-9 _ ]"},
		{`[\w-x]`, `[ a-z A-Z 0-9 _ \- x ]`},
		{`[\s-x]`, "[   \\t \\r \\n \\f \\- x ]"},
		{`\n\q`, `\n q ·`},
		{"(?i)ab", "(?i) a b ·"},
	}
	for _, test := range tests {
		postfix, err := ToPostfix(test.pattern)
		if err != nil {
			t.Errorf("converting %q: unexpected error %v", test.pattern, err)
			continue
		}
		if s := TokensString(postfix); s != test.postfix {
			t.Errorf("converting %q: expected %q, got %q", test.pattern, test.postfix, s)
		}
	}
}

func TestErrorMessageVerbatim(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	_, err := ToPostfix("(%d|%s")
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected syntax error, got %v", err)
	}
	if !strings.Contains(err.Error(), `"(%d|%s"`) {
		t.Errorf("expected error to quote the pattern verbatim, is %s", err.Error())
	}
	_, err = ToPostfix("a{%}")
	if !errors.As(err, &serr) || !strings.Contains(serr.Msg, "'%'") {
		t.Errorf("expected message to name the offending rune, is %v", err)
	}
}

func TestPostfixErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.syntax")
	defer teardown()
	//
	var patterns = []string{
		"(a|b",
		"a)",
		"[abc",
		"[]",
		"[^]",
		"a{2",
		"a{x}",
		"a{}",
		"a{1,2,3}",
		"a{1 }",
		`a\`,
		`[a\`,
		`[\W]`,
		"a{1001}",
	}
	for _, p := range patterns {
		_, err := ToPostfix(p)
		if err == nil {
			t.Errorf("expected %q to be rejected", p)
			continue
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("expected error for %q to be a syntax error, is %T", p, err)
		}
		var serr *SyntaxError
		if !errors.As(err, &serr) || serr.Pattern != p {
			t.Errorf("expected syntax error to carry pattern %q, is %v", p, err)
		}
	}
}
