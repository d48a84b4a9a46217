package bitrans

import (
	"fmt"

	"github.com/voynichkit/bitrans/internal/common"
)

// Direction selects which side of a key/value rule pair is treated as
// match input versus replacement output.
type Direction int

const (
	// Forward reads each rule-source pair as key -> value
	Forward Direction = common.Forward
	// Reverse reads each rule-source pair as value -> key
	Reverse Direction = common.Reverse
)

// String returns the human-readable direction name.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// valid reports whether d is one of the two recognized directions.
func (d Direction) valid() bool {
	return d == Forward || d == Reverse
}

// ParseDirection parses "forward" or "reverse" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "forward":
		return Forward, nil
	case "reverse":
		return Reverse, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Entry is one key/value pair of an ordered rule source. Insertion
// order is significant: it breaks ties between equal-length patterns
// during substitution.
type Entry struct {
	Key   string
	Value string
}

// DefaultSeparator is the placeholder substituted for spaces, periods
// and commas while matching rules against a line.
const DefaultSeparator = common.DefaultSeparator

// Common errors returned by the bitrans package.
// The values are shared with the internal packages so errors.Is works
// across package boundaries.
var (
	// ErrUnknownTable is returned when a table is nil or a named table cannot be found
	ErrUnknownTable = common.ErrUnknownTable

	// ErrInvalidDirection is returned when a direction is neither Forward nor Reverse
	ErrInvalidDirection = common.ErrInvalidDirection

	// ErrBadTableFormat is returned when a rules file has an invalid format
	ErrBadTableFormat = common.ErrBadTableFormat

	// ErrEmptyTable is returned when a rules file contains no usable rules
	ErrEmptyTable = common.ErrEmptyTable
)

// Option configures translation behavior.
type Option func(*options)

type options struct {
	separator *rune
	strict    bool
	debug     interface{}
}

func defaultOptions() *options {
	return &options{}
}

// WithSeparator sets the placeholder character standing in for spaces,
// periods and commas while matching. The default is '#'.
//
// The separator must not itself be a space, period or comma; such
// values (and the zero rune) are ignored and the default is used.
// Pick a character that never occurs in either alphabet of the rule
// set, otherwise rules will match positions that were originally
// spacing.
func WithSeparator(sep rune) Option {
	return func(opts *options) {
		opts.separator = &sep
	}
}

// WithStrict enables strict alphabet checking: characters of the input
// that appear in no rule's match pattern are reported to the debug
// session. Strict mode is diagnostic only and never changes the
// translation result.
func WithStrict(strict bool) Option {
	return func(opts *options) {
		opts.strict = strict
	}
}

// WithDebug attaches a debug session to the translation. The session
// must come from the internal debug package (created via the CLI or
// the BITRANS_DEBUG environment switch); any other value is ignored.
func WithDebug(session interface{}) Option {
	return func(opts *options) {
		opts.debug = session
	}
}
