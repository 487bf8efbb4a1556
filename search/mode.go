package search

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Mode is a search mode.
type Mode int

// Search modes. Numeric values are stable and may be used on the command line.
const (
	PartialMatch Mode = iota
	CompleteMatch
	LeftmostStart
	LeftmostRange
	FindAll
	CountMatches
)

var modeNames = []string{"partial", "complete", "start", "range", "all", "count"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
	return modeNames[m]
}

// Modes returns all search modes.
func Modes() []Mode {
	return []Mode{PartialMatch, CompleteMatch, LeftmostStart, LeftmostRange, FindAll, CountMatches}
}

// ParseMode parses a mode from its name (case-insensitive) or its number.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := slices.Index(modeNames, s); i >= 0 {
		return Mode(i), nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < len(modeNames) {
		return Mode(n), nil
	}
	return PartialMatch, fmt.Errorf("unknown search mode %q, expected one of %s",
		s, strings.Join(modeNames, ", "))
}

// partial is true for modes which compile patterns for partial matching.
func (m Mode) partial() bool {
	return m != CompleteMatch && m != CountMatches
}
