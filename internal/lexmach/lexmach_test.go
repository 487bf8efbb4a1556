package lexmach

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

const (
	tokID = iota + 1
	tokNum
	tokString
	tokComma
)

var tokenIds = map[string]int{
	"ID":     tokID,
	"NUM":    tokNum,
	"STRING": tokString,
	",":      tokComma,
}

func makeAdapter(t *testing.T) *LMAdapter {
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`#[^\n]*\n?`), Skip)
		lexer.Add([]byte(`\"[^"]*\"`), MakeQuotedToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`'[^']*'`), MakeQuotedToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[0-9]+`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, []string{","}, nil, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	return LM
}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	var tests = []struct {
		input string
		count int
	}{
		{"1", 1},
		{"mode 12", 2},
		{`re "a|b*"  # comment`, 2},
		{`match 'x"y'`, 2},
		{"1,22,333", 5},
	}
	for _, test := range tests {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(test.input)
		if err != nil {
			t.Fatal(err)
		}
		count := 0
		for token := sc.NextToken(); token.TokType() != EOF; token = sc.NextToken() {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			count++
		}
		if count != test.count {
			t.Errorf("expected token count for %q to be %d, is %d", test.input, test.count, count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestQuotedToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	sc, _ := LM.Scanner(`re "a\.b"`)
	toks := sc.Tokens()
	if len(toks) != 2 {
		t.Fatalf("expected 2 tokens, have %d", len(toks))
	}
	if toks[1].TokType() != tokString || toks[1].Value() != `a\.b` {
		t.Errorf("expected string token with value a\\.b, have %v = %v", toks[1], toks[1].Value())
	}
	if span := toks[1].Span(); span.From() != 3 || span.To() != 9 {
		t.Errorf("expected string token to span (3…9), is %v", span)
	}
}

func TestUnconsumedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wrex.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	sc, _ := LM.Scanner("a % b")
	errcnt := 0
	sc.SetErrorHandler(func(error) { errcnt++ })
	if toks := sc.Tokens(); len(toks) != 2 {
		t.Errorf("expected scanner to skip unknown input and find 2 tokens, found %d", len(toks))
	}
	if errcnt == 0 {
		t.Errorf("expected unconsumed input to be reported")
	}
}
