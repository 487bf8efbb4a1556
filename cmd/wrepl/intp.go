package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/npillmayer/wrex"
	"github.com/npillmayer/wrex/expr"
	"github.com/npillmayer/wrex/internal/lexmach"
	"github.com/npillmayer/wrex/rig"
	"github.com/npillmayer/wrex/search"
	"github.com/npillmayer/wrex/syntax"
	"github.com/pterm/pterm"
	"github.com/timtadh/lexmachine"
)

// Intp is our interpreter object
type Intp struct {
	mode       search.Mode
	pattern    string
	hasPattern bool // the empty pattern is a valid pattern
	engine     *search.Engine
	repl       *readline.Instance
}

// NewIntp creates an interpreter, starting in search mode m.
func NewIntp(m search.Mode) *Intp {
	return &Intp{
		mode:   m,
		engine: search.NewEngine(),
	}
}

// --- Command lexer ---------------------------------------------------------

// Token types of the command language.
const (
	tokID wrex.TokType = iota + 1
	tokNum
	tokString
)

var tokenIds = map[string]int{
	"ID":     int(tokID),
	"NUM":    int(tokNum),
	"STRING": int(tokString),
}

var (
	lexerOnce sync.Once // monitors one-time initialization
	cmdLexer  *lexmach.LMAdapter
	lexerErr  error
)

// commandLexer creates the lexmachine lexer for command lines.
func commandLexer() (*lexmach.LMAdapter, error) {
	lexerOnce.Do(func() {
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`#[^\n]*\n?`), lexmach.Skip) // skip comments
			lexer.Add([]byte(`\"[^"]*\"`), lexmach.MakeQuotedToken("STRING", tokenIds["STRING"]))
			lexer.Add([]byte(`'[^']*'`), lexmach.MakeQuotedToken("STRING", tokenIds["STRING"]))
			lexer.Add([]byte(`([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*`), lexmach.MakeToken("ID", tokenIds["ID"]))
			lexer.Add([]byte(`[0-9]+`), lexmach.MakeToken("NUM", tokenIds["NUM"]))
			lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
		}
		cmdLexer, lexerErr = lexmach.NewLMAdapter(init, nil, nil, tokenIds)
	})
	return cmdLexer, lexerErr
}

// command is a command line, split into a command word and arguments.
type command struct {
	name string
	args []string
}

func parseCommand(line string) (command, error) {
	lm, err := commandLexer()
	if err != nil {
		return command{}, err
	}
	sc, err := lm.Scanner(line)
	if err != nil {
		return command{}, err
	}
	var scanErr error
	sc.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = e
		}
	})
	toks := sc.Tokens()
	if scanErr != nil {
		return command{}, fmt.Errorf("cannot read command line: %w", scanErr)
	}
	if len(toks) == 0 {
		return command{}, nil
	}
	if toks[0].TokType() != tokID {
		return command{}, fmt.Errorf("expected a command, have %q", toks[0].Lexeme())
	}
	cmd := command{name: strings.ToLower(toks[0].Lexeme())}
	for _, t := range toks[1:] {
		cmd.args = append(cmd.args, t.Value().(string))
	}
	tracer().Debugf("command %s %v", cmd.name, cmd.args)
	return cmd, nil
}

// --- Evaluation ------------------------------------------------------------

var errNoPattern = errors.New("no pattern set, use re \"<pattern>\"")

// Eval executes a command, given on a line by itself, and prints the output.
// It returns true if the REPL should quit.
func (intp *Intp) Eval(line string) (bool, error) {
	out, quit, err := intp.execute(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false, err
	}
	if out != "" {
		pterm.Info.Println(out)
	}
	return quit, nil
}

func (intp *Intp) execute(line string) (string, bool, error) {
	cmd, err := parseCommand(line)
	if err != nil || cmd.name == "" {
		return "", false, err
	}
	arg := func() (string, error) {
		if len(cmd.args) != 1 {
			return "", fmt.Errorf("command %s needs exactly one argument", cmd.name)
		}
		return cmd.args[0], nil
	}
	switch cmd.name {
	case "quit", "exit":
		return "", true, nil
	case "help":
		return helpText, false, nil
	case "mode":
		if len(cmd.args) == 0 {
			return "mode is " + intp.mode.String(), false, nil
		}
		a, err := arg()
		if err != nil {
			return "", false, err
		}
		m, err := search.ParseMode(a)
		if err != nil {
			return "", false, err
		}
		intp.mode = m
		return "mode is " + m.String(), false, nil
	case "re":
		p, err := arg()
		if err != nil {
			return "", false, err
		}
		if _, err := syntax.ToPostfix(p); err != nil {
			return "", false, err
		}
		intp.pattern, intp.hasPattern = p, true
		return fmt.Sprintf("pattern is %q", p), false, nil
	case "match":
		s, err := arg()
		if err != nil {
			return "", false, err
		}
		if !intp.hasPattern {
			return "", false, errNoPattern
		}
		res, err := intp.engine.Run(intp.mode, intp.pattern, s)
		if err != nil {
			return "", false, err
		}
		return res.String(), false, nil
	case "postfix":
		if !intp.hasPattern {
			return "", false, errNoPattern
		}
		postfix, err := syntax.ToPostfix(intp.pattern)
		if err != nil {
			return "", false, err
		}
		return syntax.TokensString(postfix), false, nil
	case "tree":
		if !intp.hasPattern {
			return "", false, errNoPattern
		}
		ll, err := intp.leveledTree()
		if err != nil {
			return "", false, err
		}
		tracer().Debugf("|ll| = %d, ll = %v", len(ll), ll)
		pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
		return "", false, nil
	}
	return "", false, fmt.Errorf("unknown command %q, try help", cmd.name)
}

// leveledTree compiles the current pattern for the current mode, using a
// boolean rig, and flattens the tree into a leveled list for display.
func (intp *Intp) leveledTree() (pterm.LeveledList, error) {
	var rg rig.Rig[bool] = rig.Bool{}
	c := syntax.NewCompiler[bool](rg, nil)
	var root expr.Node[bool]
	var err error
	switch intp.mode {
	case search.CompleteMatch, search.CountMatches:
		root, err = c.Compile(intp.pattern)
	default:
		root, err = c.CompilePartial(intp.pattern)
	}
	if err != nil {
		return nil, err
	}
	return leveledList(root), nil
}

func leveledList[V comparable](root expr.Node[V]) pterm.LeveledList {
	var ll pterm.LeveledList
	expr.Walk(root, func(n expr.Node[V], depth int) bool {
		ll = append(ll, pterm.LeveledListItem{
			Level: depth,
			Text:  expr.Label(n),
		})
		return true
	})
	return ll
}

const helpText = `commands:
  mode [partial|complete|start|range|all|count]   show or set the search mode
  re "<pattern>"                                  set the pattern
  match "<subject>"                               match the subject in the current mode
  postfix                                         show the postfix form of the pattern
  tree                                            show the tree of the compiled pattern
  help                                            this text
  quit                                            leave W.REPL`
