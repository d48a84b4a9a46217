// Package parser implements bitrans rule-file (BIT format) parsing.
//
// A rules file starts with a header line beginning "#=BIT". Every
// following line is either blank, a comment ("#=..."), a visual
// separator ("------..."), or a data line of the form
//
//	<input><whitespace><output>[<whitespace><extra fields>]
//
// Extra fields are ignored. Data lines with fewer than two fields are
// skipped rather than rejected, matching the reference loader.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/voynichkit/bitrans/internal/common"
)

const (
	// headerSignature must prefix the first non-empty line of a rules file
	headerSignature = "#=BIT"
	// commentPrefix marks comment lines after the header
	commentPrefix = "#="
	// rulePrefix marks visual separator lines between rule groups
	rulePrefix = "------"

	// Buffer size constants
	defaultBufferSize = 64 * 1024
	maxBufferSize     = 4 * 1024 * 1024
)

// Entry is a single key/value pair of a rule source, in file order.
type Entry struct {
	Key   string
	Value string
}

// RuleSet is a parsed rules file: the ordered entries plus collected
// metadata. Order is significant: it is the tie-break for equal-length
// patterns during substitution.
type RuleSet struct {
	// Entries holds the key/value pairs in file order. A duplicate key
	// later in the file overrides the earlier value in place.
	Entries []Entry

	// Header is the full header line, trimmed
	Header string

	// Comments contains the "#=" comment lines found after the header
	Comments []string

	// Warnings contains any non-fatal issues encountered during parsing
	Warnings []string
}

// Parse reads a BIT rules file from the provided reader.
// It returns common.ErrBadTableFormat if the header is missing and
// common.ErrEmptyTable if no data line yields a rule.
func Parse(r io.Reader) (*RuleSet, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, defaultBufferSize), maxBufferSize)

	rs := &RuleSet{}

	header, err := readHeaderLine(scanner)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(header, headerSignature) {
		return nil, fmt.Errorf("%w: invalid header %q", common.ErrBadTableFormat, header)
	}
	rs.Header = header

	// index of each key in Entries, for duplicate override
	seen := make(map[string]int)

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, commentPrefix):
			rs.Comments = append(rs.Comments, line)
			continue
		case strings.HasPrefix(line, rulePrefix):
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			rs.Warnings = append(rs.Warnings,
				fmt.Sprintf("line %d: skipped, fewer than two fields: %q", lineNum, line))
			continue
		}

		key, value := fields[0], fields[1]
		if at, dup := seen[key]; dup {
			// Later definitions win but keep the original position,
			// preserving the tie-break order of the first occurrence.
			rs.Entries[at].Value = value
			continue
		}
		seen[key] = len(rs.Entries)
		rs.Entries = append(rs.Entries, Entry{Key: key, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading rules: %w", err)
	}

	if len(rs.Entries) == 0 {
		return nil, fmt.Errorf("%w: no valid rules found", common.ErrEmptyTable)
	}

	return rs, nil
}

// readHeaderLine reads the first non-empty line from the scanner.
func readHeaderLine(scanner *bufio.Scanner) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("error reading header: %w", err)
		}
		return "", fmt.Errorf("%w: empty rules data", common.ErrBadTableFormat)
	}

	headerLine := strings.TrimSpace(scanner.Text())

	// Strip UTF-8 BOM from the first line if present.
	// Some table files in the wild carry a UTF-8 BOM (U+FEFF).
	const utf8BOM = "\uFEFF"
	headerLine = strings.TrimPrefix(headerLine, utf8BOM)
	if headerLine == "" {
		for scanner.Scan() {
			headerLine = strings.TrimSpace(scanner.Text())
			if headerLine != "" {
				break
			}
		}
		if headerLine == "" {
			return "", fmt.Errorf("%w: empty rules data", common.ErrBadTableFormat)
		}
	}

	return headerLine, nil
}
