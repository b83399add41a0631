package lintfmt

import (
	"encoding/json"
	"io"
	"unicode/utf8"

	"warden/internal/session"
	"warden/internal/source"
	"warden/internal/window"
)

type jsonHighlight struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Category string `json:"category"`
	Current  bool   `json:"current,omitempty"`
}

type jsonWindow struct {
	Text   string `json:"text"`
	Origin uint32 `json:"origin"`
	// ContentLen is the scalar length of the window content without the
	// ellipsis affixes; origin+content_len addresses the source text.
	ContentLen int             `json:"content_len"`
	Truncated  bool            `json:"truncated,omitempty"`
	Highlights []jsonHighlight `json:"highlights,omitempty"`
}

type jsonFinding struct {
	Kind        string      `json:"kind"`
	Start       uint32      `json:"start"`
	End         uint32      `json:"end"`
	Severity    string      `json:"severity,omitempty"`
	Category    string      `json:"category"`
	RuleID      string      `json:"rule_id,omitempty"`
	Message     string      `json:"message,omitempty"`
	Suggestions []string    `json:"suggestions,omitempty"`
	Replacement string      `json:"replacement,omitempty"`
	Window      *jsonWindow `json:"window,omitempty"`
}

type jsonOutput struct {
	Findings  []jsonFinding `json:"findings"`
	Total     int           `json:"total"`
	Truncated bool          `json:"truncated,omitempty"`
}

// JSON emits the unified sequence as a single JSON document.
func JSON(w io.Writer, text *source.Text, sess *session.Session, opts JSONOpts) error {
	refs := sess.Refs()
	items := sess.Items()

	out := jsonOutput{Total: len(items)}
	for _, it := range items {
		if opts.Max > 0 && len(out.Findings) >= opts.Max {
			out.Truncated = true
			break
		}

		ref := it.Ref()
		sp := ref.Span()
		f := jsonFinding{
			Kind:     ref.Kind().String(),
			Start:    sp.Start,
			End:      sp.End,
			Category: ref.Category(),
		}
		switch {
		case it.Err != nil:
			f.Severity = it.Err.Severity.String()
			f.RuleID = it.Err.RuleID
			f.Message = it.Err.Message
			if opts.IncludeSuggestions {
				f.Suggestions = it.Err.Suggestions
			}
		case it.Sugg != nil:
			f.RuleID = it.Sugg.ID
			f.Message = it.Sugg.Explanation
			if opts.IncludeSuggestions {
				f.Replacement = it.Sugg.Replacement
			}
		}

		if opts.IncludeWindows {
			if win, ok := window.Extract(text, ref, refs, window.Options{}); ok {
				jw := &jsonWindow{
					Text:       win.Text,
					Origin:     win.Origin,
					ContentLen: utf8.RuneCountInString(win.Content()),
					Truncated:  win.Truncated,
				}
				for _, h := range win.Highlights {
					jw.Highlights = append(jw.Highlights, jsonHighlight{
						Start:    h.Start,
						End:      h.End,
						Category: h.Category,
						Current:  h.Current,
					})
				}
				f.Window = jw
			}
		}

		out.Findings = append(out.Findings, f)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
