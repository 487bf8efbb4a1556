package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/wrex/search"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// main() starts either a single match run (batch mode) or an interactive CLI
// ("W.REPL"), where users may enter patterns and subjects. W.REPL will print
// the result of matching in the current search mode, and may display postfix
// forms and trees of compiled patterns.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	modename := flag.String("mode", "partial", "Search mode [partial|complete|start|range|all|count]")
	pattern := flag.String("re", "", "Pattern")
	subjf := flag.String("file", "", "Read subject from file")
	lastline := flag.Bool("lastline-pattern", false, "Last line of subject file is the pattern")
	initf := flag.String("init", "", "Initial command file")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	mode, err := search.ParseMode(*modename)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	intp := NewIntp(mode)
	//
	// batch mode
	subject, hasSubject := strings.Join(flag.Args(), " "), flag.NArg() > 0
	if *subjf != "" {
		if subject, err = readSubject(*subjf); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
		hasSubject = true
		if *lastline {
			subject, *pattern = splitLastLine(subject)
		}
	}
	if *pattern != "" && hasSubject {
		res, err := intp.engine.Run(mode, *pattern, subject)
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		fmt.Println(res)
		return
	}
	if *pattern != "" {
		intp.pattern, intp.hasPattern = *pattern, true
	}
	//
	// set up REPL
	pterm.Info.Println("Welcome to W.REPL") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	repl, err := readline.New("wrepl> ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	intp.repl = repl
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.loadInitFile(*initf)           // init file name provided by flag
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func readSubject(filename string) (string, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("unable to read subject file: %w", err)
	}
	return string(b), nil
}

// splitLastLine splits file content into subject lines and a pattern on the
// last non-empty line. Line ends of the subject lines are kept, except for the
// one preceding the pattern.
func splitLastLine(content string) (subject, pattern string) {
	content = strings.TrimRight(content, "\r\n")
	i := strings.LastIndexByte(content, '\n')
	if i < 0 {
		return "", content
	}
	return strings.TrimRight(content[:i], "\r"), strings.TrimRight(content[i+1:], "\r")
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 1
	for scanner.Scan() {
		line := scanner.Text()
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
		lineno++
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
