// Package bitrans provides bidirectional, rule-driven transliteration
// of symbol strings, as used for manuscript transliteration systems.
//
// A Table maps tokens of one alphabet to tokens of another. Translate
// rewrites text token by token, preferring the longest matching
// pattern, while spacing and punctuation survive the rewrite: they are
// replaced by a placeholder during matching and restored afterwards
// unless a rule consumed them. Every table works in both directions.
//
// Characters no rule matches pass through unchanged; translation never
// fails on content.
package bitrans

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/voynichkit/bitrans/internal/debug"
	"github.com/voynichkit/bitrans/internal/engine"
	"github.com/voynichkit/bitrans/internal/parser"
)

// ParseTable reads a BIT rules file from the provided reader and
// compiles it for the Forward direction. Use Reversed or a Translator
// to translate the other way. The returned Table is immutable and safe
// for concurrent use across goroutines.
//
// Example:
//
//	file, err := os.Open("sta-eva.bit")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//
//	table, err := bitrans.ParseTable(file)
//	if err != nil {
//	    log.Fatal(err)
//	}
func ParseTable(r io.Reader) (*Table, error) {
	rs, err := parser.Parse(r)
	if err != nil {
		return nil, err
	}
	return convertRuleSet(rs)
}

// ParseTableBytes compiles a BIT rules file from byte data.
func ParseTableBytes(data []byte) (*Table, error) {
	return ParseTable(bytes.NewReader(data))
}

// LoadTable loads and compiles a rules file from the local filesystem.
func LoadTable(filePath string) (*Table, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer f.Close()

	table, err := ParseTable(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rules %s: %w", filePath, err)
	}
	table.Name = trimTableExt(path.Base(strings.ReplaceAll(filePath, "\\", "/")))
	return table, nil
}

// LoadTableFS loads a rules file from a filesystem at the specified
// path. The returned Table is immutable and safe for concurrent use.
//
// Path traversal (e.g., "../") is not allowed for security reasons.
//
// Example with embed.FS:
//
//	//go:embed tables/*.bit
//	var tables embed.FS
//
//	table, err := bitrans.LoadTableFS(tables, "tables/sta-eva.bit")
//	if err != nil {
//	    log.Fatal(err)
//	}
func LoadTableFS(fsys fs.FS, tablePath string) (*Table, error) {
	if fsys == nil {
		return nil, fmt.Errorf("filesystem cannot be nil")
	}

	clean, err := cleanFSPath(tablePath)
	if err != nil {
		return nil, err
	}

	file, err := fsys.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer file.Close()

	table, err := ParseTable(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rules %s: %w", clean, err)
	}

	// Set table name based on filename (without extension).
	// Use path package for fs.FS paths (not filepath).
	table.Name = trimTableExt(path.Base(clean))

	return table, nil
}

// cleanFSPath validates and cleans a path for use with fs.FS.
// It ensures the path is valid according to fs.ValidPath rules and
// prevents directory traversal attacks.
func cleanFSPath(p string) (string, error) {
	if p == "" {
		return "", errors.New("path cannot be empty")
	}
	// fs.FS disallows leading slash and uses '/' only
	if strings.HasPrefix(p, "/") {
		return "", errors.New("absolute paths not allowed")
	}
	if strings.ContainsRune(p, '\\') {
		return "", errors.New("backslashes not allowed in fs paths")
	}
	if !fs.ValidPath(p) {
		// rejects ".", ".." segments, empty elements, etc.
		return "", fmt.Errorf("invalid fs path: %s", p)
	}
	clean := path.Clean(p) // purely slash semantics
	if clean == "." || strings.HasPrefix(clean, "../") {
		return "", errors.New("path traversal not allowed")
	}
	return clean, nil
}

// trimTableExt strips the conventional .bit extension from a file name.
func trimTableExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

// convertRuleSet compiles a parsed rule set into a forward Table.
func convertRuleSet(rs *parser.RuleSet) (*Table, error) {
	if rs == nil {
		return nil, ErrEmptyTable
	}
	entries := make([]Entry, len(rs.Entries))
	for i, e := range rs.Entries {
		entries[i] = Entry{Key: e.Key, Value: e.Value}
	}
	return NewTable(entries, Forward)
}

// Translate rewrites text using the table's rules and direction.
//
// Input is processed line by line; blank lines pass through as blank
// lines. Within a line, rules apply longest input pattern first, and a
// position rewritten once is never rewritten again in the same
// translation. Spacing and punctuation that no rule consumed are
// restored verbatim.
func Translate(text string, t *Table, opts ...Option) (string, error) {
	if t == nil {
		return "", ErrUnknownTable
	}
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return engine.Translate(text, t.compiled(), options.toInternal())
}

// toInternal converts public options to the engine's representation.
func (o *options) toInternal() *engine.Options {
	engineOpts := &engine.Options{Strict: o.strict}
	if o.separator != nil {
		engineOpts.Separator = *o.separator
	}
	if s, ok := o.debug.(*debug.Session); ok {
		engineOpts.Debug = s
	}
	return engineOpts
}
