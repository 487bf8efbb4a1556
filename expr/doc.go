/*
Package expr implements weighted regular expressions as a tree of nodes,
which at the same time is the automaton matching them.

The construction follows "A Play on Regular Expressions" by Sebastian Fischer,
Frank Huch and Thomas Wilke:

	http://sebfisch.github.io/haskell-regexp/regexp-play.pdf

Instead of materializing NFA state sets, every symbol node carries a mark,
a rig value telling whether (and how) a match in progress has just consumed
the node's symbol. Feeding a symbol into the tree shifts marks from left to
right (Shift); afterwards the cached final values of all nodes are
re-computed bottom-up (UpdateFinal). The final value of the root is the
weight of the input consumed so far.

Nodes carry mutable per-match state. A tree is not safe for concurrent
matching; use Copy to get an independent automaton, or serialize access.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package expr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wrex.expr'.
func tracer() tracing.Trace {
	return tracing.Select("wrex.expr")
}
