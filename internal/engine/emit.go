package engine

import "strings"

// Emit renders a processed LineBuffer back into a plain string.
//
// The two boundary positions added by Prepare are dropped. A position
// that is still free and still holds the placeholder was never consumed
// by a substitution, so its recorded original separator is restored.
// Everything else is emitted as-is; no whitespace normalization happens
// here.
func Emit(b *LineBuffer, sep rune) string {
	if b.Len() <= 2 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(b.Len() - 2)
	for i := 1; i < b.Len()-1; i++ {
		ch := b.chars[i]
		if !b.locked[i] && ch == sep {
			ch = b.orig[i]
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}
