/*
Command wrepl is an interactive command line tool (W.REPL) for experiments
with weighted regular expressions.

Run it with a pattern and a subject to match once:

	wrepl -mode range -re 'b+' aabbba
	wrepl -mode all -re 'b+' -file subject.txt
	wrepl -lastline-pattern -file test.txt    # last line of test.txt is the pattern

Without a pattern, or with no subject, W.REPL enters interactive mode and
accepts commands:

	mode [partial|complete|start|range|all|count]
	re "<pattern>"
	match "<subject>"
	postfix
	tree
	help
	quit

Strings may be enclosed in double or in single quotes.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wrex.repl'
func tracer() tracing.Trace {
	return tracing.Select("wrex.repl")
}
