/*
Package wrex is a toolbox for weighted regular expressions.

WReX matches regular expressions with the "shifting" construction of
Fischer, Huch and Wilke ("A Play on Regular Expressions"), generalized to
weights: a match does not yield a plain yes/no, but a value in a semiring.
Exchanging the semiring and the weight function for pattern symbols lets the
same automaton walk answer different questions: does a pattern match, how many
ways are there to match, where does the leftmost match start, which range does
the leftmost-longest match cover, and where are all the matches.

Package structure is as follows:

■ rig: Package rig implements semirings (rigs), the algebra of match values.

■ weight: Package weight implements weight functions, mapping input symbols to rig values.

■ expr: Package expr implements the weighted automaton, a tree of expression nodes which
is driven one input symbol at a time.

■ syntax: Package syntax compiles pattern strings into expression trees.

■ search: Package search provides ready-made matching modes on top of the other packages.

The base package contains data types which are used throughout all the other packages.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package wrex
