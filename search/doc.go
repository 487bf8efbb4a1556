/*
Package search matches patterns against subjects in one of several modes.

Every mode selects a rig and a compilation style:

	PartialMatch   Bit rig, pattern may occur anywhere in the subject
	CompleteMatch  Bit rig, pattern has to match the whole subject
	LeftmostStart  Leftmost rig, start position of the leftmost match
	LeftmostRange  LeftmostLongest rig, span of the leftmost-longest match
	FindAll        LeftmostLongest rig, spans of successive matches
	CountMatches   Int rig, number of ways the whole subject matches

An Engine caches compiled patterns. Clients either create an engine or use the
package level functions, which share a default engine:

	span, ok, err := search.Range(`b+`, "aabbba")   // (2…5), true, nil

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package search

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wrex.search'.
func tracer() tracing.Trace {
	return tracing.Select("wrex.search")
}
