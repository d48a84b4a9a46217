package engine

import (
	"testing"

	"github.com/voynichkit/bitrans/internal/common"
)

// tracksInSync reports whether all three tracks have the same length.
func tracksInSync(b *LineBuffer) bool {
	return len(b.chars) == len(b.locked) && len(b.locked) == len(b.orig)
}

func TestLineBufferInsertBlanks(t *testing.T) {
	b := Prepare("abc", '#')
	oldLen := b.Len()

	b.insertBlanks(2, 3)

	if got := b.Len(); got != oldLen+3 {
		t.Errorf("Len() = %d, want %d", got, oldLen+3)
	}
	if !tracksInSync(b) {
		t.Fatalf("tracks out of sync: chars=%d locked=%d orig=%d",
			len(b.chars), len(b.locked), len(b.orig))
	}
	for i := 2; i < 5; i++ {
		if b.locked[i] {
			t.Errorf("inserted position %d is locked, want free", i)
		}
	}
	// Positions after the insertion keep their content.
	if b.chars[5] != 'b' || b.chars[6] != 'c' {
		t.Errorf("content after insertion shifted wrongly: %q", b.String())
	}
}

func TestLineBufferDeleteRange(t *testing.T) {
	b := Prepare("abcde", '#')
	oldLen := b.Len()

	// Delete "cd" (positions 3 and 4; position 0 is boundary padding).
	b.deleteRange(3, 2)

	if got := b.Len(); got != oldLen-2 {
		t.Errorf("Len() = %d, want %d", got, oldLen-2)
	}
	if !tracksInSync(b) {
		t.Fatalf("tracks out of sync: chars=%d locked=%d orig=%d",
			len(b.chars), len(b.locked), len(b.orig))
	}
	if b.chars[3] != 'e' {
		t.Errorf("chars[3] = %q, want 'e'", b.chars[3])
	}
}

func TestLineBufferLengthInvariantUnderApply(t *testing.T) {
	// Mixed growing and shrinking rules must keep all three tracks in
	// lock-step at every buffer length.
	table := buildTable(t, [][2]string{
		{"abc", "z"},
		{"x", "12345"},
		{"q", "qq"},
	})

	b := Prepare("abc x q abc x", '#')
	Apply(b, table, '#', nil)

	if !tracksInSync(b) {
		t.Fatalf("tracks out of sync after apply: chars=%d locked=%d orig=%d",
			len(b.chars), len(b.locked), len(b.orig))
	}
}

func TestPrepareTracks(t *testing.T) {
	b := Prepare("a b.c,d", '#')

	// One boundary position on each side.
	if got, want := b.Len(), 9; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if b.chars[0] != '#' || b.chars[b.Len()-1] != '#' {
		t.Errorf("boundary positions not placeholders: %q", b.String())
	}

	tests := []struct {
		pos    int
		char   rune
		orig   rune
		locked bool
	}{
		{1, 'a', common.NotSeparator, false},
		{2, '#', ' ', false},
		{3, 'b', common.NotSeparator, false},
		{4, '#', '.', false},
		{5, 'c', common.NotSeparator, false},
		{6, '#', ',', false},
		{7, 'd', common.NotSeparator, false},
	}
	for _, tt := range tests {
		if b.chars[tt.pos] != tt.char {
			t.Errorf("chars[%d] = %q, want %q", tt.pos, b.chars[tt.pos], tt.char)
		}
		if b.orig[tt.pos] != tt.orig {
			t.Errorf("orig[%d] = %q, want %q", tt.pos, b.orig[tt.pos], tt.orig)
		}
		if b.locked[tt.pos] != tt.locked {
			t.Errorf("locked[%d] = %v, want %v", tt.pos, b.locked[tt.pos], tt.locked)
		}
	}
}

func TestPrepareLocksLiteralPlaceholder(t *testing.T) {
	// A pre-existing '#' in the raw line is user content, not spacing:
	// it must be locked so no rule can consume it.
	b := Prepare("a#b", '#')

	if !b.locked[2] {
		t.Error("literal placeholder position not locked")
	}
	if b.orig[2] != '#' {
		t.Errorf("orig[2] = %q, want '#'", b.orig[2])
	}
}
