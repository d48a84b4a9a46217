// Command bitrans translates text between transliteration alphabets
// using BIT rule tables.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"github.com/voynichkit/bitrans"
	"github.com/voynichkit/bitrans/internal/debug"
	"github.com/voynichkit/bitrans/tables"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		tableName   string
		separator   string
		reverse     bool
		strict      bool
		export      bool
		listTables  bool
		showVersion bool
		showHelp    bool
		debugMode   bool
		debugFile   string
		debugPretty bool
	)

	pflag.StringVarP(&tableName, "table", "t", "sta-eva", "Bundled table name or path to a BIT rules file")
	pflag.StringVarP(&separator, "separator", "p", "#", "Placeholder character used for spacing while matching")
	pflag.BoolVarP(&reverse, "reverse", "r", false, "Translate in the reverse direction (value -> key)")
	pflag.BoolVar(&strict, "strict", false, "Report characters outside the table's input alphabet (diagnostic only)")
	pflag.BoolVar(&export, "export", false, "Write the compiled table in BIT format to stdout and exit")
	pflag.BoolVar(&listTables, "list-tables", false, "List bundled tables and exit")
	pflag.BoolVarP(&showVersion, "version", "v", false, "Show version information")
	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help message")
	pflag.BoolVar(&debugMode, "debug", false, "Enable debug mode (outputs to stderr)")
	pflag.StringVar(&debugFile, "debug-file", "", "Write debug output to file instead of stderr")
	pflag.BoolVar(&debugPretty, "debug-pretty", false, "Use pretty format for debug output (default: JSON)")
	pflag.Parse()

	if showHelp {
		printHelp()
		return 0
	}

	if showVersion {
		fmt.Printf("bitrans version %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}

	if listTables {
		for _, name := range tables.Names() {
			info, _ := tables.Lookup(name)
			fmt.Printf("%-12s %s\n", name, info.Description)
		}
		return 0
	}

	sep, err := parseSeparatorRune(separator)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing separator: %v\n", err)
		return 1
	}

	table, err := resolveTable(tableName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading table: %v\n", err)
		return 1
	}
	if reverse {
		table = table.Reversed()
	}

	if export {
		if _, err := table.WriteTo(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing table: %v\n", err)
			return 1
		}
		return 0
	}

	text, err := inputText(pflag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		return 1
	}

	// Setup debug if enabled
	var session *debug.Session
	if debugMode || debugFile != "" || os.Getenv("BITRANS_DEBUG") == "1" {
		debug.SetEnabled(true)
		debug.InitFromEnv()

		var output io.Writer = os.Stderr
		if debugFile != "" {
			file, err := os.Create(debugFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating debug file: %v\n", err)
				return 1
			}
			defer file.Close()
			output = file
		}

		var sink debug.Sink
		if debugPretty || os.Getenv("BITRANS_DEBUG_PRETTY") == "1" {
			sink = debug.NewPrettySink(output)
		} else {
			sink = debug.NewJSONSink(output)
		}

		session = debug.NewSession(sink)
		if session != nil {
			defer session.Close()
		}
	}

	translateOpts := []bitrans.Option{
		bitrans.WithSeparator(sep),
		bitrans.WithStrict(strict),
	}
	if session != nil {
		translateOpts = append(translateOpts, bitrans.WithDebug(session))
	}

	output, err := bitrans.Translate(text, table, translateOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error translating: %v\n", err)
		return 1
	}

	fmt.Println(output)
	return 0
}

// inputText joins command-line arguments, or reads stdin when no
// arguments are given, so the tool works as a pipe filter.
func inputText(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

// resolveTable resolves a table reference: a bundled table name first,
// then a literal path, then the path with a .bit extension, then the
// tables/ directory.
func resolveTable(name string) (*bitrans.Table, error) {
	if _, ok := tables.Lookup(name); ok {
		return tables.Load(name)
	}
	return bitrans.LoadTable(resolveTablePath(name))
}

// resolveTablePath resolves a table path from either a full path or a
// bare table name.
func resolveTablePath(tablePath string) string {
	if strings.HasSuffix(tablePath, ".bit") {
		return tablePath
	}

	if _, err := os.Stat(tablePath); err == nil {
		return tablePath
	}

	withExt := tablePath + ".bit"
	if _, err := os.Stat(withExt); err == nil {
		return withExt
	}

	inTables := "tables/" + tablePath + ".bit"
	if _, err := os.Stat(inTables); err == nil {
		return inTables
	}

	// Default to original path (will fail with better error later)
	return tablePath
}

// parseSeparatorRune parses the separator flag value which can be in
// various formats:
// - Literal character (e.g., "#", "@")
// - Escaped Unicode: "\uXXXX", "\UXXXXXXXX"
// - Unicode notation: "U+XXXX"
// - Decimal: "35"
// - Hexadecimal: "0x23"
func parseSeparatorRune(s string) (rune, error) {
	if s == "" {
		return 0, fmt.Errorf("separator cannot be empty")
	}

	// Try literal character first (single rune)
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	// Try each format parser
	if r, ok := parseEscapedUnicode(s); ok {
		return r, nil
	}
	if r, ok := parseUnicodeNotation(s); ok {
		return r, nil
	}
	if r, ok := parseHexadecimal(s); ok {
		return r, nil
	}
	if r, ok := parseDecimal(s); ok {
		return r, nil
	}

	return 0, fmt.Errorf("invalid rune format: %s", s)
}

// validateRune checks if a rune is valid UTF-8 and not a surrogate
func validateRune(r rune) (rune, bool) {
	if r < 0 || r > utf8.MaxRune {
		return 0, false
	}
	// Reject UTF-16 surrogates
	if r >= 0xD800 && r <= 0xDFFF {
		return 0, false
	}
	return r, true
}

func parseEscapedUnicode(s string) (rune, bool) {
	// \uXXXX format - must be exactly 6 characters
	if strings.HasPrefix(s, "\\u") && len(s) == 6 {
		code, err := strconv.ParseInt(s[2:], 16, 32)
		if err == nil {
			return validateRune(rune(code))
		}
	}
	// \UXXXXXXXX format - must be exactly 10 characters
	if strings.HasPrefix(s, "\\U") && len(s) == 10 {
		code, err := strconv.ParseInt(s[2:], 16, 32)
		if err == nil {
			return validateRune(rune(code))
		}
	}
	return 0, false
}

func parseUnicodeNotation(s string) (rune, bool) {
	if strings.HasPrefix(s, "U+") || strings.HasPrefix(s, "u+") {
		code, err := strconv.ParseInt(s[2:], 16, 32)
		if err == nil {
			return validateRune(rune(code))
		}
	}
	return 0, false
}

func parseHexadecimal(s string) (rune, bool) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		code, err := strconv.ParseInt(s[2:], 16, 32)
		if err == nil {
			return validateRune(rune(code))
		}
	}
	return 0, false
}

func parseDecimal(s string) (rune, bool) {
	code, err := strconv.ParseInt(s, 10, 32)
	if err == nil {
		return validateRune(rune(code))
	}
	return 0, false
}

func printHelp() {
	fmt.Println("bitrans - bidirectional transliteration tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  bitrans [flags] [text]")
	fmt.Println()
	fmt.Println("Reads text from the arguments, or from stdin when none are given.")
	fmt.Println()
	fmt.Println("Flags:")
	pflag.PrintDefaults()
	fmt.Println()
	fmt.Println("Separator formats:")
	fmt.Println("  Literal: -p '#'")
	fmt.Println("  Unicode escape: -p '\\u0023'")
	fmt.Println("  Unicode notation: -p 'U+0023'")
	fmt.Println("  Decimal: -p '35'")
	fmt.Println("  Hexadecimal: -p '0x23'")
}
