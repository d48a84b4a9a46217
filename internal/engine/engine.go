// Package engine implements the substitution core: a longest-match-first
// rewrite pass over a per-line buffer that keeps the working characters,
// a locked mask and the original-separator record in lock-step while
// patterns of differing lengths grow and shrink the line in place.
package engine

import (
	"strings"
	"time"

	"github.com/voynichkit/bitrans/internal/common"
	"github.com/voynichkit/bitrans/internal/debug"
)

// Translate runs the full prepare/apply/emit pipeline over every line
// of text. Lines are split on '\n' (a lone trailing '\r' is stripped);
// lines that are empty or all-whitespace pass through as empty output
// lines without touching the pipeline, so boundary padding never leaks
// into blank lines.
//
// Translate never fails on content: characters no rule matches simply
// pass through unchanged.
func Translate(text string, t *Table, opts *Options) (string, error) {
	if t == nil {
		return "", common.ErrUnknownTable
	}
	if opts == nil {
		opts = &Options{}
	}
	sep := opts.Separator
	if sep == 0 || sep == ' ' || sep == '.' || sep == ',' {
		sep = common.DefaultSeparator
	}
	if text == "" {
		return "", nil
	}

	lines := strings.Split(text, "\n")

	start := time.Now()
	opts.Debug.Emit("translate", "Start", debug.TranslateStartData{
		Lines:     len(lines),
		Rules:     len(t.Inputs),
		Direction: debug.FormatDirection(t.Direction),
		Separator: string(sep),
		Strict:    opts.Strict,
	})

	totalSubs := 0
	out := make([]string, len(lines))
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			out[i] = ""
			continue
		}

		opts.Debug.Emit("translate", "LineStart", debug.LineStartData{
			Index:  i,
			Length: len(line),
			Text:   line,
		})
		if opts.Strict {
			reportStrict(line, t, opts.Debug, i)
		}

		buf := Prepare(line, sep)
		subs := Apply(buf, t, sep, opts.Debug)
		out[i] = Emit(buf, sep)
		releaseLineBuffer(buf)

		totalSubs += subs
		opts.Debug.Emit("translate", "LineEnd", debug.LineEndData{
			Index:         i,
			Length:        len(out[i]),
			Substitutions: subs,
			Text:          out[i],
		})
	}

	result := strings.Join(out, "\n")
	opts.Debug.Emit("translate", "End", debug.TranslateEndData{
		LinesOut:      len(out),
		Substitutions: totalSubs,
		ElapsedMs:     time.Since(start).Milliseconds(),
		BytesWritten:  len(result),
	})
	return result, nil
}

// Apply performs one full substitution pass over buf and returns the
// number of substitutions made. Each rule in t.Order (longest input
// first, rule-source order for ties) completes a full left-to-right
// scan before the next rule starts; rules are never interleaved
// mid-scan, which is what makes longest-match-wins deterministic for
// overlapping pattern sets.
//
// For each eligible match the buffer window is grown or shrunk to the
// output length across all three tracks, the output is written, and
// every written non-placeholder position is locked so no later (shorter)
// rule can rewrite it. A placeholder written by the output stays free
// and inherits the original separator captured from the match window;
// when the window spanned several placeholders the last one seen wins
// (known limitation of the rule format, kept as-is).
func Apply(buf *LineBuffer, t *Table, sep rune, session *debug.Session) int {
	subs := 0
	for _, idx := range t.Order {
		in := t.Inputs[idx]
		out := t.Outputs[idx]
		ilen := len(in)
		olen := len(out)
		if ilen == 0 {
			continue
		}

		for pos := 0; pos+ilen <= buf.Len(); {
			if !matchAt(buf, pos, in) {
				pos++
				continue
			}

			// Freeness check and separator capture over the match window.
			free := true
			sepkeep := ' '
			for j := 0; j < ilen; j++ {
				if buf.locked[pos+j] {
					free = false
					break
				}
				if buf.chars[pos+j] == sep {
					sepkeep = buf.orig[pos+j]
				}
			}
			if !free {
				pos++
				continue
			}

			delta := olen - ilen
			if delta > 0 {
				buf.insertBlanks(pos+ilen, delta)
			} else if delta < 0 {
				buf.deleteRange(pos+olen, -delta)
			}

			keptSep := false
			for j := 0; j < olen; j++ {
				buf.chars[pos+j] = out[j]
				if out[j] == sep {
					buf.orig[pos+j] = sepkeep
					buf.locked[pos+j] = false
					keptSep = true
				} else {
					buf.orig[pos+j] = common.NotSeparator
					buf.locked[pos+j] = true
				}
			}

			if session != nil {
				data := debug.SubstituteData{
					Rule:   idx,
					Pos:    pos,
					Input:  string(in),
					Output: string(out),
					Delta:  delta,
				}
				if keptSep {
					data.KeptSep = string(sepkeep)
				}
				session.Emit("engine", "Substitute", data)
			}

			subs++
			// Jump past the freshly written window: a produced token is
			// not reconsidered for the current rule, but stays visible
			// to rules later in the order.
			pos += olen
		}
	}
	return subs
}

// matchAt reports whether pat occurs verbatim at pos. The placeholder
// is an ordinary symbol here, so rules may match across what were
// originally separators.
func matchAt(buf *LineBuffer, pos int, pat []rune) bool {
	for j, r := range pat {
		if buf.chars[pos+j] != r {
			return false
		}
	}
	return true
}

// reportStrict emits a StrictSkip event for each rune of line outside
// the table's input alphabet. Separators are exempt.
func reportStrict(line string, t *Table, session *debug.Session, lineIdx int) {
	if session == nil || t.Alphabet == nil {
		return
	}
	for pos, r := range line {
		if r == ' ' || r == '.' || r == ',' {
			continue
		}
		if !t.Alphabet[r] {
			session.Emit("engine", "StrictSkip", debug.StrictSkipData{
				Line: lineIdx,
				Pos:  pos,
				Char: string(r),
			})
		}
	}
}
