/*
Package lexmach provides an adapter to use the lexmachine scanner generator
for line oriented input, such as commands of the wrex REPL.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine has to be initialized by providing literals, keywords and regular
expressions:

	init := func(lexer *lexmachine.Lexer) {
		// lexmach.Skip      is a pre-defined action which ignores the scanned match
		// lexmach.MakeToken is a pre-defined action which wraps a scanned match into a
		//                   lexmachine token
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)

A scanner is instantiated for each concrete input line. Tokens are read until
EOF:

	scan, err := LM.Scanner("re \"a|b*\"")
	for token := scan.NextToken(); token.TokType() != lexmach.EOF; token = scan.NextToken() {
		…
	}

________________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package lexmach
