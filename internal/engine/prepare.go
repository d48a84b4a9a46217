package engine

import "github.com/voynichkit/bitrans/internal/common"

// Prepare converts one raw line into a LineBuffer ready for Apply.
//
// The line is padded with one boundary position on each side so every
// rule match can look past either end without bounds checks; Emit strips
// the pair again. Spaces, periods and commas become the placeholder sep
// with their identity recorded in the orig track. A literal occurrence
// of sep in the raw line is locked immediately: user-authored
// placeholders must never be rewritten.
func Prepare(line string, sep rune) *LineBuffer {
	b := acquireLineBuffer(len(line) + 2)

	b.chars = append(b.chars, ' ')
	b.chars = append(b.chars, []rune(line)...)
	b.chars = append(b.chars, ' ')

	n := len(b.chars)
	b.locked = append(b.locked, make([]bool, n)...)
	b.orig = append(b.orig, make([]rune, n)...)

	for i := 0; i < n; i++ {
		ch := b.chars[i]

		switch ch {
		case ' ', '.', ',':
			b.orig[i] = ch
			b.chars[i] = sep
		default:
			b.orig[i] = common.NotSeparator
		}

		if ch == sep {
			b.orig[i] = sep
			b.locked[i] = true
		}
	}

	return b
}
