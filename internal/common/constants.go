// Package common provides shared constants and types for internal packages.
// These constants must match the public API in the bitrans package.
package common

import "errors"

// Direction values (must match public API in bitrans package)
const (
	// Forward reads each rule-source pair as key -> value
	Forward = 0
	// Reverse reads each rule-source pair as value -> key
	Reverse = 1
)

// DefaultSeparator is the placeholder substituted for spaces, periods and
// commas while matching. The original tables never use it as an alphabet
// symbol.
const DefaultSeparator = '#'

// NotSeparator marks a buffer position whose character was never a
// space, period or comma.
const NotSeparator = '+'

// Common errors (must match public API in bitrans package)
var (
	// ErrUnknownTable is returned when a table is nil or a named table cannot be found
	ErrUnknownTable = errors.New("unknown table")
	// ErrInvalidDirection is returned when a direction is neither Forward nor Reverse
	ErrInvalidDirection = errors.New("invalid direction")
	// ErrBadTableFormat is returned when a rules file has an invalid format
	ErrBadTableFormat = errors.New("bad table format")
	// ErrEmptyTable is returned when a rules file contains no usable rules
	ErrEmptyTable = errors.New("empty table")
)
