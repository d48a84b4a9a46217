package bitrans

import "sync/atomic"

// Translator binds a table to a set of options and supports in-place
// direction reversal.
//
// Reversal is copy-on-reverse: the held table is replaced atomically by
// its reversed counterpart, so translations already in flight keep the
// table they started with and are never exposed to a half-reversed
// rule set. ReverseDirection itself must not be called concurrently
// from multiple goroutines.
type Translator struct {
	table atomic.Pointer[Table]
	opts  []Option
}

// NewTranslator creates a Translator over t. The options apply to every
// Translate call. Returns ErrUnknownTable if t is nil.
func NewTranslator(t *Table, opts ...Option) (*Translator, error) {
	if t == nil {
		return nil, ErrUnknownTable
	}
	tr := &Translator{opts: opts}
	tr.table.Store(t)
	return tr, nil
}

// Translate rewrites text using the currently held table.
func (tr *Translator) Translate(text string) (string, error) {
	return Translate(text, tr.table.Load(), tr.opts...)
}

// ReverseDirection swaps the translation direction by replacing the
// held table with its reversed counterpart. Subsequent Translate calls
// use the new direction; no other state changes.
func (tr *Translator) ReverseDirection() {
	tr.table.Store(tr.table.Load().Reversed())
}

// Direction returns the direction of the currently held table.
func (tr *Translator) Direction() Direction {
	return tr.table.Load().Direction()
}

// Table returns the currently held table.
func (tr *Translator) Table() *Table {
	return tr.table.Load()
}
