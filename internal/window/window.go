// Package window extracts the bounded display context around a finding: the
// sentence or list item containing its span, with every finding inside that
// range annotated as a highlight. Windows are computed fresh per request and
// never cached across edits.
package window

import (
	"strings"

	"warden/internal/drift"
	"warden/internal/lint"
	"warden/internal/source"
)

// DefaultMaxWords bounds the window size; longer sentences are truncated
// around the target so popover rendering cost stays fixed.
const DefaultMaxWords = 40

// ellipsis affixes mark truncated window edges.
const (
	ellipsisPrefix = "... "
	ellipsisSuffix = " ..."
)

// keepAround is roughly how many words survive on each side of the target
// when a window exceeds MaxWords.
const keepAround = 15

// Options tunes extraction.
type Options struct {
	// MaxWords caps the window word count; zero means DefaultMaxWords.
	MaxWords int
}

// Highlight is one finding's range relative to Window.Text, in bytes.
type Highlight struct {
	Start    int
	End      int
	Category string
	// Current marks the finding the window was extracted for. At most one
	// highlight per window carries it.
	Current bool
}

// Window is the renderable context for one finding.
type Window struct {
	// Text is what gets rendered. When Truncated it carries ellipsis
	// affixes that have no counterpart in the source text.
	Text string
	// Origin is the scalar offset of the window's first content scalar in
	// the source text. Origin plus the scalar length of Content never
	// exceeds the source scalar count; Text may, since the affixes sit
	// outside the mapping.
	Origin     uint32
	Highlights []Highlight
	Truncated  bool

	// Byte bounds of the content inside Text, affixes excluded.
	contentStart int
	contentEnd   int
}

// Content returns the window text without the ellipsis affixes, the part
// Origin actually maps into the source.
func (w *Window) Content() string {
	return w.Text[w.contentStart:w.contentEnd]
}

// Extract builds the display window for target within text. all carries
// every live finding; the ones falling inside the window become highlights.
// Returns false when the target span is stale for this text, in which case
// the caller renders the bare message without context.
func Extract(text *source.Text, target lint.Ref, all []lint.Ref, opts Options) (*Window, bool) {
	maxWords := opts.MaxWords
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	total := text.ScalarCount()
	span := drift.Correct(target.Span(), expectedText(target), text)
	if span.Start >= total {
		// Stale span: the text shrank past it since the finding was computed.
		return nil, false
	}

	runes := []rune(text.String())
	spanStart := int(span.Start)

	winStart := scanBackward(runes, spanStart)
	winStart = skipLeadingMarker(runes, winStart)
	winEnd := scanForward(runes, spanStart)
	if winEnd < winStart {
		winEnd = winStart
	}

	keepStart, keepEnd, truncated := truncate(runes, winStart, winEnd, spanStart, maxWords)

	var b strings.Builder
	if truncated && keepStart > winStart {
		b.WriteString(ellipsisPrefix)
	}
	prefixLen := b.Len()
	b.WriteString(string(runes[keepStart:keepEnd]))
	contentEnd := b.Len()
	if truncated && keepEnd < winEnd {
		b.WriteString(ellipsisSuffix)
	}

	w := &Window{
		Text:         b.String(),
		Origin:       uint32(keepStart),
		Truncated:    truncated,
		contentStart: prefixLen,
		contentEnd:   contentEnd,
	}
	w.Highlights = collectHighlights(text, runes, target, all, keepStart, keepEnd, prefixLen)
	return w, true
}

// expectedText recovers the drift anchor for a finding: style suggestions
// carry the original text directly, grammar findings may quote it in the
// message.
func expectedText(ref lint.Ref) string {
	switch r := ref.(type) {
	case *lint.Error:
		if s, ok := drift.ExpectedFromMessage(r.Message); ok {
			return s
		}
	case *lint.Suggestion:
		return r.Original
	}
	return ""
}
