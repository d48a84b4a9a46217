package debug

// TranslateStartData contains information about the start of a translation.
type TranslateStartData struct {
	Lines     int    `json:"lines"`
	Rules     int    `json:"rules"`
	Direction string `json:"direction"`
	Separator string `json:"separator"`
	Strict    bool   `json:"strict,omitempty"`
}

// TranslateEndData contains information about the end of a translation.
type TranslateEndData struct {
	LinesOut      int   `json:"lines_out"`
	Substitutions int   `json:"substitutions"`
	ElapsedMs     int64 `json:"elapsed_ms"`
	BytesWritten  int   `json:"bytes_written"`
}

// LineStartData contains information about one prepared input line.
type LineStartData struct {
	Index  int    `json:"index"`
	Length int    `json:"length"`
	Text   string `json:"text"`
}

// LineEndData contains information about one emitted output line.
type LineEndData struct {
	Index         int    `json:"index"`
	Length        int    `json:"length"`
	Substitutions int    `json:"substitutions"`
	Text          string `json:"text"`
}

// SubstituteData contains information about a single rule application.
type SubstituteData struct {
	Rule    int    `json:"rule"`
	Pos     int    `json:"pos"`
	Input   string `json:"input"`
	Output  string `json:"output"`
	Delta   int    `json:"delta"`
	KeptSep string `json:"kept_sep,omitempty"`
}

// StrictSkipData reports a character outside the table's input alphabet,
// emitted only when strict matching is requested. Strict mode never
// changes the translation result.
type StrictSkipData struct {
	Line int    `json:"line"`
	Pos  int    `json:"pos"`
	Char string `json:"char"`
}
