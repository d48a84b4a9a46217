package engine

import (
	"github.com/voynichkit/bitrans/internal/debug"
)

// Table is the compiled form of a rule table as consumed by the engine.
// The public bitrans package builds it once per direction; the engine
// treats it as read-only.
type Table struct {
	// Inputs and Outputs hold the rule patterns in rule-source order.
	// Inputs[i] is matched against the buffer, Outputs[i] replaces it.
	Inputs  [][]rune
	Outputs [][]rune

	// Lengths caches len(Inputs[i])
	Lengths []int

	// Order is a permutation of rule indices sorted by descending input
	// length. Equal lengths keep rule-source order (stable sort), which
	// decides which of two equal-length overlapping patterns wins.
	Order []int

	// Direction is the compiled direction (common.Forward or common.Reverse)
	Direction int

	// Alphabet is the set of runes appearing in any input pattern,
	// used only for strict-mode diagnostics
	Alphabet map[rune]bool
}

// Options carries per-translation settings into the engine.
type Options struct {
	// Separator is the placeholder standing in for spaces, periods and
	// commas while matching
	Separator rune

	// Strict reports characters outside the table's input alphabet to
	// the debug session. It never changes the translation result.
	Strict bool

	// Debug is the active debug session, or nil
	Debug *debug.Session
}
