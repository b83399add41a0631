package lintfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"warden/internal/lint"
	"warden/internal/session"
	"warden/internal/source"
	"warden/internal/window"
)

// Pretty renders the unified finding sequence with sentence-window context.
// For each finding it prints:
//
//	<start>-<end>: <SEV> <CATEGORY> [<rule>]: <message>
//	    <sentence window>
//	    <underline marking every highlight, ^~~~ for the current one>
//
// followed by suggestions when enabled.
func Pretty(w io.Writer, text *source.Text, sess *session.Session, opts PrettyOpts) {
	sevColor := map[lint.Severity]*color.Color{
		lint.SevError:   color.New(color.FgRed, color.Bold),
		lint.SevWarning: color.New(color.FgYellow, color.Bold),
		lint.SevInfo:    color.New(color.FgCyan),
	}
	underlineColor := color.New(color.FgRed, color.Bold)
	suggestionColor := color.New(color.FgGreen)
	if !opts.Color {
		for _, c := range sevColor {
			c.DisableColor()
		}
		underlineColor.DisableColor()
		suggestionColor.DisableColor()
	}

	refs := sess.Refs()
	items := sess.Items()
	shown := 0
	for _, it := range items {
		if opts.MaxFindings > 0 && shown >= opts.MaxFindings {
			fmt.Fprintf(w, "... and %d more\n", len(items)-shown)
			break
		}
		shown++

		ref := it.Ref()
		sp := ref.Span()
		switch {
		case it.Err != nil:
			e := it.Err
			sev := sevColor[e.Severity]
			fmt.Fprintf(w, "%s: %s %s [%s]: %s\n", sp, sev.Sprint(e.Severity), e.Cat, e.RuleID, e.Message)
		case it.Sugg != nil:
			sg := it.Sugg
			sev := sevColor[lint.SevInfo]
			fmt.Fprintf(w, "%s: %s STYLE [%s]: %s\n", sp, sev.Sprint("SUGGEST"), sg.ID, sg.Explanation)
		}

		win, ok := window.Extract(text, ref, refs, window.Options{MaxWords: opts.MaxWords})
		if ok {
			fmt.Fprintf(w, "    %s\n", win.Text)
			if line := underline(win); line != "" {
				fmt.Fprintf(w, "    %s\n", underlineColor.Sprint(line))
			}
		}

		if opts.ShowSuggestions {
			if it.Err != nil {
				for _, s := range it.Err.Suggestions {
					fmt.Fprintf(w, "    %s %s\n", suggestionColor.Sprint("fix:"), s)
				}
			}
			if it.Sugg != nil {
				fmt.Fprintf(w, "    %s %s\n", suggestionColor.Sprint("fix:"), it.Sugg.Replacement)
			}
		}
	}
}

// Short prints one line per finding without context windows.
func Short(w io.Writer, sess *session.Session) {
	for _, it := range sess.Items() {
		ref := it.Ref()
		switch {
		case it.Err != nil:
			fmt.Fprintf(w, "%s %s %s %s\n", ref.Span(), it.Err.Severity, it.Err.RuleID, it.Err.Message)
		case it.Sugg != nil:
			fmt.Fprintf(w, "%s SUGGEST %s %s -> %s\n", ref.Span(), it.Sugg.ID, it.Sugg.Original, it.Sugg.Replacement)
		}
	}
}

// underline builds the marker line under a window: display-width-aware, with
// '^' opening the current highlight and '~' filling every highlighted run.
func underline(win *window.Window) string {
	if len(win.Highlights) == 0 {
		return ""
	}

	var b strings.Builder
	col := 0
	for _, h := range win.Highlights {
		startCol := runewidth.StringWidth(win.Text[:h.Start])
		width := runewidth.StringWidth(win.Text[h.Start:h.End])
		if width < 1 {
			width = 1
		}
		if startCol < col {
			// Overlapping highlight already covered.
			continue
		}
		b.WriteString(strings.Repeat(" ", startCol-col))
		if h.Current {
			b.WriteString("^")
			if width > 1 {
				b.WriteString(strings.Repeat("~", width-1))
			}
		} else {
			b.WriteString(strings.Repeat("~", width))
		}
		col = startCol + width
	}
	return strings.TrimRight(b.String(), " ")
}
