package lexmach

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/wrex"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'wrex.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("wrex.scanner")
}

// EOF is the token type returned at the end of input.
const EOF wrex.TokType = -1

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values.
//
// Literals and keywords are added after the patterns of init, thus patterns
// added by init take precedence for matches of equal length.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string,
	tokenIds map[string]int) (*LMAdapter, error) {
	//
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// NextToken returns the next token of the input, or a token of type EOF.
// Unconsumed input is reported to the error handler and skipped.
func (lms *LMScanner) NextToken() wrex.Token {
	if lms.scanner == nil {
		return MakeDefaultToken(EOF, "", nil, wrex.Span{})
	}
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return MakeDefaultToken(EOF, "", nil, wrex.Span{lms.scanner.TC, lms.scanner.TC})
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	return MakeDefaultToken(
		wrex.TokType(token.Type),
		string(token.Lexeme),
		token.Value,
		wrex.Span{token.TC, token.TC + len(token.Lexeme)},
	)
}

// Tokens scans the complete input and returns all tokens but EOF.
func (lms *LMScanner) Tokens() []wrex.Token {
	var toks []wrex.Token
	for token := lms.NextToken(); token.TokType() != EOF; token = lms.NextToken() {
		toks = append(toks, token)
	}
	return toks
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
// The token's value is the matched text.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// MakeQuotedToken is a pre-defined action for quoted strings. The token's
// value is the matched text without the enclosing quotes.
func MakeQuotedToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		if len(m.Bytes) < 2 {
			return nil, fmt.Errorf("malformed %s token %q", name, m.Bytes)
		}
		return s.Token(id, string(m.Bytes[1:len(m.Bytes)-1]), m), nil
	}
}

// ---------------------------------------------------------------------------

// DefaultToken is a simple token type, implementing wrex.Token.
type DefaultToken struct {
	kind   wrex.TokType
	lexeme string
	Val    interface{}
	span   wrex.Span
}

var _ wrex.Token = DefaultToken{}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ wrex.TokType, lexeme string, value interface{}, span wrex.Span) DefaultToken {
	return DefaultToken{kind: typ, lexeme: lexeme, Val: value, span: span}
}

func (t DefaultToken) TokType() wrex.TokType { return t.kind }
func (t DefaultToken) Lexeme() string        { return t.lexeme }
func (t DefaultToken) Value() interface{}    { return t.Val }
func (t DefaultToken) Span() wrex.Span       { return t.span }

func (t DefaultToken) String() string {
	return fmt.Sprintf("<%d|%q>", t.kind, t.lexeme)
}
