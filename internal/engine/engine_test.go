package engine

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// buildTable compiles pairs into an engine table the way the public
// package does: patterns in source order plus a stable
// descending-length order index.
func buildTable(t *testing.T, pairs [][2]string) *Table {
	t.Helper()

	tbl := &Table{Alphabet: make(map[rune]bool)}
	for _, p := range pairs {
		in := []rune(p[0])
		tbl.Inputs = append(tbl.Inputs, in)
		tbl.Outputs = append(tbl.Outputs, []rune(p[1]))
		tbl.Lengths = append(tbl.Lengths, len(in))
		for _, r := range in {
			tbl.Alphabet[r] = true
		}
	}
	tbl.Order = make([]int, len(tbl.Inputs))
	for i := range tbl.Order {
		tbl.Order[i] = i
	}
	sort.SliceStable(tbl.Order, func(a, b int) bool {
		return tbl.Lengths[tbl.Order[a]] > tbl.Lengths[tbl.Order[b]]
	})
	return tbl
}

// runLine pushes one line through the full prepare/apply/emit pipeline.
func runLine(t *testing.T, tbl *Table, line string) string {
	t.Helper()
	b := Prepare(line, '#')
	Apply(b, tbl, '#', nil)
	return Emit(b, '#')
}

func TestApplyLongestMatchWins(t *testing.T) {
	// "ab" (the longer pattern) must win over "a" at position 0 even
	// though "a" also matches there.
	table := buildTable(t, [][2]string{
		{"a", "1"},
		{"ab", "2"},
	})

	if got, want := runLine(t, table, "ab a"), "2 1"; got != want {
		t.Errorf("translate(%q) = %q, want %q", "ab a", got, want)
	}
}

func TestApplyBufferGrowth(t *testing.T) {
	// Output longer than input: the buffer must grow without
	// corrupting the second token.
	table := buildTable(t, [][2]string{
		{"x", "yy"},
	})

	if got, want := runLine(t, table, "x x"), "yy yy"; got != want {
		t.Errorf("translate(%q) = %q, want %q", "x x", got, want)
	}
}

func TestApplyBufferShrink(t *testing.T) {
	table := buildTable(t, [][2]string{
		{"abc", "z"},
	})

	if got, want := runLine(t, table, "abc abc"), "z z"; got != want {
		t.Errorf("translate(%q) = %q, want %q", "abc abc", got, want)
	}
}

func TestApplyNoResubstitution(t *testing.T) {
	// a->b runs first, then b->c. The 'b' produced by the first rule
	// is locked and must not be rewritten by the second; the original
	// 'b' still is.
	table := buildTable(t, [][2]string{
		{"a", "b"},
		{"b", "c"},
	})

	if got, want := runLine(t, table, "a b"), "b c"; got != want {
		t.Errorf("translate(%q) = %q, want %q", "a b", got, want)
	}
}

func TestApplySeparatorPropagation(t *testing.T) {
	// A pattern spanning a former separator: the output's placeholder
	// inherits the original separator character.
	table := buildTable(t, [][2]string{
		{"a#b", "x#y"},
	})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"space kept", "a b", "x y"},
		{"period kept", "a.b", "x.y"},
		{"comma kept", "a,b", "x,y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runLine(t, table, tt.in); got != tt.want {
				t.Errorf("translate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyLastSeparatorWins(t *testing.T) {
	// Known limitation carried over from the original rule format: a
	// pattern spanning two distinct separators keeps only the last one.
	table := buildTable(t, [][2]string{
		{"a#b#c", "x#y"},
	})

	if got, want := runLine(t, table, "a b.c"), "x.y"; got != want {
		t.Errorf("translate(%q) = %q, want %q", "a b.c", got, want)
	}
}

func TestApplySkipsLockedLiteralPlaceholder(t *testing.T) {
	// A literal '#' in the input is locked at preparation time, so a
	// rule matching across it must not fire.
	table := buildTable(t, [][2]string{
		{"a#b", "Z"},
	})

	if got, want := runLine(t, table, "a#b"), "a#b"; got != want {
		t.Errorf("translate(%q) = %q, want %q", "a#b", got, want)
	}
}

func TestApplyStableTieBreak(t *testing.T) {
	// Two rules with identical input patterns (possible after
	// direction reversal of a many-to-one table): the earlier rule in
	// source order must win.
	table := buildTable(t, [][2]string{
		{"z", "first"},
		{"z", "second"},
	})

	if got, want := runLine(t, table, "z"), "first"; got != want {
		t.Errorf("translate(%q) = %q, want %q", "z", got, want)
	}
}

func TestApplyCursorSkipsProducedToken(t *testing.T) {
	// A freshly produced token is not reconsidered for the current
	// rule: a->aa must not cascade on its own output.
	table := buildTable(t, [][2]string{
		{"a", "aa"},
	})

	if got, want := runLine(t, table, "aaa"), "aaaaaa"; got != want {
		t.Errorf("translate(%q) = %q, want %q", "aaa", got, want)
	}
}

func TestApplyIdentityWhenNoRuleMatches(t *testing.T) {
	table := buildTable(t, [][2]string{
		{"q", "z"},
	})

	tests := []string{
		"abc def",
		"a.b,c d",
		" leading and trailing ",
		". , ",
	}
	for _, in := range tests {
		if got := runLine(t, table, in); got != in {
			t.Errorf("translate(%q) = %q, want identity", in, got)
		}
	}
}

func TestApplySubstitutionCount(t *testing.T) {
	table := buildTable(t, [][2]string{
		{"a", "1"},
	})

	b := Prepare("a a a", '#')
	if got := Apply(b, table, '#', nil); got != 3 {
		t.Errorf("Apply() = %d substitutions, want 3", got)
	}
}

func TestTranslateMultiLine(t *testing.T) {
	table := buildTable(t, [][2]string{
		{"a", "1"},
		{"ab", "2"},
	})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty input", "", ""},
		{"single line", "ab a", "2 1"},
		{"empty line preserved between lines", "ab\n\na", "2\n\n1"},
		{"whitespace-only line becomes empty", "ab\n   \na", "2\n\n1"},
		{"trailing newline preserved", "ab\n", "2\n"},
		{"crlf line endings", "ab\r\na", "2\n1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Translate(tt.in, table, nil)
			if err != nil {
				t.Fatalf("Translate() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Translate(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestTranslateNilTable(t *testing.T) {
	if _, err := Translate("abc", nil, nil); err == nil {
		t.Error("Translate() with nil table should return error")
	}
}

func TestTranslateSeparatorFallback(t *testing.T) {
	// Space, period, comma and the zero rune are unusable separators;
	// the engine falls back to the default.
	table := buildTable(t, [][2]string{
		{"a", "1"},
	})

	for _, sep := range []rune{0, ' ', '.', ','} {
		got, err := Translate("a b", table, &Options{Separator: sep})
		if err != nil {
			t.Fatalf("Translate() error = %v", err)
		}
		if want := "1 b"; got != want {
			t.Errorf("Translate with separator %q = %q, want %q", sep, got, want)
		}
	}
}

func TestTranslateCustomSeparator(t *testing.T) {
	// With '@' as placeholder, a literal '#' in the input is ordinary
	// content and a rule may consume it.
	table := buildTable(t, [][2]string{
		{"#", "H"},
	})

	got, err := Translate("a#b", table, &Options{Separator: '@'})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if want := "aHb"; got != want {
		t.Errorf("Translate(%q) = %q, want %q", "a#b", got, want)
	}
}
