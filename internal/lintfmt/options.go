package lintfmt

// PrettyOpts configures human-readable output of findings.
type PrettyOpts struct {
	Color           bool
	ShowSuggestions bool
	MaxFindings     int // 0 - no limit
	MaxWords        int // window truncation threshold, 0 - default
}

// JSONOpts configures JSON output of findings.
type JSONOpts struct {
	IncludeWindows     bool // add the extracted context window per finding
	IncludeSuggestions bool
	Max                int // output truncation, findings are not dropped from the session
}
