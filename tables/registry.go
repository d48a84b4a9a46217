// Package tables bundles the transliteration tables shipped with
// bitrans and exposes them by name.
//
// The tables are embedded BIT rule files described by a YAML manifest.
// Load compiles a table through the default table cache, so repeated
// lookups of the same table are cheap.
package tables

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/voynichkit/bitrans"
)

//go:embed data/*.bit
var dataFS embed.FS

//go:embed manifest.yaml
var manifestRaw []byte

// Info describes one bundled table.
type Info struct {
	// Name is the lookup key, e.g. "sta-eva"
	Name string `yaml:"name"`
	// File is the rule file path inside the embedded filesystem
	File string `yaml:"file"`
	// Description is a one-line summary of the mapping
	Description string `yaml:"description"`
	// Source names where the table derives from
	Source string `yaml:"source"`
}

type manifest struct {
	Tables []Info `yaml:"tables"`
}

// registry maps table names to their manifest entries. The manifest is
// embedded, so a parse failure is a build defect and panics at init.
var registry = func() map[string]Info {
	var m manifest
	if err := yaml.Unmarshal(manifestRaw, &m); err != nil {
		panic(fmt.Sprintf("tables: invalid embedded manifest: %v", err))
	}
	reg := make(map[string]Info, len(m.Tables))
	for _, info := range m.Tables {
		reg[info.Name] = info
	}
	return reg
}()

// Names returns the names of all bundled tables, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the manifest entry for name.
func Lookup(name string) (Info, bool) {
	info, ok := registry[name]
	return info, ok
}

// Bytes returns the raw rule-file contents for name.
func Bytes(name string) ([]byte, error) {
	info, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", bitrans.ErrUnknownTable, name)
	}
	data, err := dataFS.ReadFile(info.File)
	if err != nil {
		return nil, fmt.Errorf("reading bundled table %q: %w", name, err)
	}
	return data, nil
}

// Load compiles the bundled table with the given name for the Forward
// direction, going through the default table cache. The returned table
// is shared; treat it as read-only and use Reversed for the other
// direction.
func Load(name string) (*bitrans.Table, error) {
	data, err := Bytes(name)
	if err != nil {
		return nil, err
	}
	table, err := bitrans.ParseTableCached(data)
	if err != nil {
		return nil, fmt.Errorf("compiling bundled table %q: %w", name, err)
	}
	if table.Name == "" {
		table.Name = name
	}
	return table, nil
}
