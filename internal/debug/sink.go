package debug

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Sink is the interface for debug output destinations.
type Sink interface {
	Write(event Event) error
	Flush() error
	Close() error
}

// JSONSink writes events in JSON Lines format.
type JSONSink struct {
	w       *bufio.Writer
	encoder *json.Encoder
}

// NewJSONSink creates a new JSON Lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	return &JSONSink{
		w:       bw,
		encoder: json.NewEncoder(bw),
	}
}

// Write encodes and writes an event as a JSON line.
func (s *JSONSink) Write(event Event) error {
	return s.encoder.Encode(event)
}

// Flush writes any buffered data to the underlying writer.
func (s *JSONSink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *JSONSink) Close() error {
	return s.Flush()
}

// PrettySink writes events in human-readable format.
type PrettySink struct {
	w *bufio.Writer
}

// NewPrettySink creates a new pretty-format sink writing to w.
func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{
		w: bufio.NewWriter(w),
	}
}

// Write formats and writes an event in human-readable format.
func (s *PrettySink) Write(event Event) error {
	fmt.Fprintf(s.w, "[%s] [%s/%s] session=%s\n", event.Timestamp, event.Phase, event.Event, event.SessionID)

	switch d := event.Data.(type) {
	case TranslateStartData:
		fmt.Fprintf(s.w, "  lines=%d rules=%d direction=%s separator=%q strict=%v\n",
			d.Lines, d.Rules, d.Direction, d.Separator, d.Strict)
	case TranslateEndData:
		fmt.Fprintf(s.w, "  lines_out=%d substitutions=%d elapsed=%dms bytes=%d\n",
			d.LinesOut, d.Substitutions, d.ElapsedMs, d.BytesWritten)
	case LineStartData:
		fmt.Fprintf(s.w, "  line=%d len=%d text=%q\n", d.Index, d.Length, d.Text)
	case LineEndData:
		fmt.Fprintf(s.w, "  line=%d len=%d substitutions=%d text=%q\n",
			d.Index, d.Length, d.Substitutions, d.Text)
	case SubstituteData:
		fmt.Fprintf(s.w, "  rule=%d pos=%d %q -> %q delta=%+d", d.Rule, d.Pos, d.Input, d.Output, d.Delta)
		if d.KeptSep != "" {
			fmt.Fprintf(s.w, " kept_sep=%q", d.KeptSep)
		}
		fmt.Fprintln(s.w)
	case StrictSkipData:
		fmt.Fprintf(s.w, "  line=%d pos=%d char=%q not in input alphabet\n", d.Line, d.Pos, d.Char)
	case map[string]interface{}:
		for k, v := range d {
			fmt.Fprintf(s.w, "  %s: %v\n", k, v)
		}
	case map[string]int64:
		for k, v := range d {
			fmt.Fprintf(s.w, "  %s: %d\n", k, v)
		}
	default:
		fmt.Fprintf(s.w, "  data: %+v\n", d)
	}

	return nil
}

// Flush writes any buffered data to the underlying writer.
func (s *PrettySink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *PrettySink) Close() error {
	return s.Flush()
}

// NopSink discards all events. Useful in tests.
type NopSink struct{}

// Write discards the event.
func (NopSink) Write(Event) error { return nil }

// Flush does nothing.
func (NopSink) Flush() error { return nil }

// Close does nothing.
func (NopSink) Close() error { return nil }
