package engine

import "slices"

// LineBuffer is the mutable working state for one line of input: three
// same-length tracks indexed in lock-step.
//
//   - chars: the current character at each position
//   - locked: true once a substitution wrote a non-placeholder character
//     there (or the raw line carried a literal placeholder); locked
//     positions are never matched again in the same pass
//   - orig: the separator this position stood for when it was turned
//     into a placeholder, or NotSeparator ('+')
//
// Every insertion and deletion goes through insertBlanks/deleteRange so
// the three tracks cannot fall out of sync.
type LineBuffer struct {
	chars  []rune
	locked []bool
	orig   []rune
}

// Len returns the current number of positions.
func (b *LineBuffer) Len() int { return len(b.chars) }

// String returns the raw working characters, placeholders included.
// Mostly useful in tests and debug output.
func (b *LineBuffer) String() string { return string(b.chars) }

// insertBlanks inserts n free positions at index at, in all three
// tracks. The inserted characters are zero runes; callers overwrite
// the window before the buffer is read again.
func (b *LineBuffer) insertBlanks(at, n int) {
	b.chars = slices.Insert(b.chars, at, make([]rune, n)...)
	b.locked = slices.Insert(b.locked, at, make([]bool, n)...)
	blanks := make([]rune, n)
	for i := range blanks {
		blanks[i] = ' '
	}
	b.orig = slices.Insert(b.orig, at, blanks...)
}

// deleteRange removes positions [at, at+n) from all three tracks.
func (b *LineBuffer) deleteRange(at, n int) {
	b.chars = slices.Delete(b.chars, at, at+n)
	b.locked = slices.Delete(b.locked, at, at+n)
	b.orig = slices.Delete(b.orig, at, at+n)
}

// reset truncates all tracks to length zero, keeping capacity.
func (b *LineBuffer) reset() {
	b.chars = b.chars[:0]
	b.locked = b.locked[:0]
	b.orig = b.orig[:0]
}
