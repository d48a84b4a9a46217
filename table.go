package bitrans

import (
	"fmt"
	"io"
	"sort"

	"github.com/voynichkit/bitrans/internal/engine"
)

// Table is an immutable compiled rule table that can be safely shared
// across goroutines.
//
// A Table is built once from an ordered rule source and a direction,
// then reused read-only across any number of translations. Reversing
// the direction produces a new Table; existing tables are never
// mutated.
type Table struct {
	// Name is the table name (e.g., "sta-eva"), set by the loaders
	// from the file name
	Name string

	// entries holds the source pairs in insertion order (unexported for immutability)
	entries []Entry

	// dir is the compiled direction
	dir Direction

	// compiled patterns, in entry order, for dir
	inputs  [][]rune
	outputs [][]rune
	lengths []int

	// order is the stable descending-input-length permutation of rule indices
	order []int

	// alphabet is the set of runes used by any input pattern (strict-mode diagnostics)
	alphabet map[rune]bool
}

// NewTable compiles an ordered rule source for the given direction.
// It returns ErrInvalidDirection for any direction other than Forward
// or Reverse, and ErrEmptyTable when entries is empty.
//
// The entries slice is copied; callers may reuse it afterwards.
func NewTable(entries []Entry, dir Direction) (*Table, error) {
	if !dir.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}
	if len(entries) == 0 {
		return nil, ErrEmptyTable
	}

	t := &Table{
		entries: append([]Entry(nil), entries...),
		dir:     dir,
	}
	t.compile()
	return t, nil
}

// compile builds the pattern arrays and the order index for t.dir.
func (t *Table) compile() {
	n := len(t.entries)
	t.inputs = make([][]rune, n)
	t.outputs = make([][]rune, n)
	t.lengths = make([]int, n)
	t.alphabet = make(map[rune]bool)

	for i, e := range t.entries {
		in, out := e.Key, e.Value
		if t.dir == Reverse {
			in, out = out, in
		}
		t.inputs[i] = []rune(in)
		t.outputs[i] = []rune(out)
		t.lengths[i] = len(t.inputs[i])
		for _, r := range t.inputs[i] {
			t.alphabet[r] = true
		}
	}

	// Longest input pattern first. The sort must be stable: two
	// equal-length rules that both match at a position resolve by
	// rule-source order, and that order is part of the contract.
	t.order = make([]int, n)
	for i := range t.order {
		t.order[i] = i
	}
	sort.SliceStable(t.order, func(a, b int) bool {
		return t.lengths[t.order[a]] > t.lengths[t.order[b]]
	})
}

// Reversed returns a new Table with every rule's input and output
// swapped and the order index recomputed for the new input lengths.
// The receiver is left untouched, so in-flight translations holding it
// are unaffected.
func (t *Table) Reversed() *Table {
	nt := &Table{
		Name:    t.Name,
		entries: t.entries,
		dir:     1 - t.dir,
	}
	nt.compile()
	return nt
}

// Direction returns the compiled direction of the table.
func (t *Table) Direction() Direction { return t.dir }

// Len returns the number of rules in the table.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of the source pairs in insertion order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// WriteTo serializes the table in BIT format: the "#=BIT" header
// followed by one "input output" line per rule in original (unsorted)
// order for the current direction. The output is a loadable subset of
// the rule-file format; comments and separator lines are not emitted.
// I/O errors from w are returned unchanged.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	var total int64

	n, err := fmt.Fprintln(w, "#=BIT")
	total += int64(n)
	if err != nil {
		return total, err
	}

	for i := range t.inputs {
		n, err := fmt.Fprintf(w, "%s %s\n", string(t.inputs[i]), string(t.outputs[i]))
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// compiled converts the table to the engine's representation.
// The returned value shares the pattern slices with t for efficiency;
// the engine treats them as read-only.
func (t *Table) compiled() *engine.Table {
	return &engine.Table{
		Inputs:    t.inputs,
		Outputs:   t.outputs,
		Lengths:   t.lengths,
		Order:     t.order,
		Direction: int(t.dir),
		Alphabet:  t.alphabet,
	}
}
