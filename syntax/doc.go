/*
Package syntax compiles regular expression patterns into weighted expression
trees.

Compilation has three stages:

■ Scan tokenizes a pattern and makes concatenation explicit. Character classes
and repetition braces are scanned by sub-scanners; no concatenation is inserted
within them.

■ ToPostfix converts the token sequence to postfix order with a shunting-yard
algorithm. Precedences are

	|  <  concatenation  <  {n,m}  <  ? * +

Shorthand escapes (\w, \s, \d and their negations) are expanded into character
classes, other escapes are mapped to literals.

■ Compiler.Build reduces the postfix sequence to a tree of package expr,
expanding character class ranges and repetition braces.

Supported syntax:

	x        literal
	.        any symbol except newline
	[abc]    character class, with ranges "a-z" and negation "[^…]"
	\n \t …  escapes; \w \s \d \W \S \D as classes
	xy       concatenation
	x|y      alternation
	x* x+ x? repetition
	x{n} x{n,} x{n,m} x{,m}
	()       the empty pattern
	(?i)     switch to case insensitive matching for the rest of the pattern

Every error is reported as a SyntaxError.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package syntax

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wrex.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("wrex.syntax")
}
