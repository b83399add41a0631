package window

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"warden/internal/lint"
	"warden/internal/source"
)

func mustText(t *testing.T, s string) *source.Text {
	t.Helper()
	text, err := source.NewText(s)
	if err != nil {
		t.Fatalf("NewText(%q): %v", s, err)
	}
	return text
}

func grammarErr(start, end uint32, rule string) *lint.Error {
	return &lint.Error{
		Range:    source.Span{Start: start, End: end},
		Message:  "finding " + rule,
		Cat:      "GRAMMAR",
		Severity: lint.SevError,
		RuleID:   rule,
	}
}

func currentHighlight(t *testing.T, w *Window) Highlight {
	t.Helper()
	var current *Highlight
	for i := range w.Highlights {
		if w.Highlights[i].Current {
			if current != nil {
				t.Fatal("window has more than one current highlight")
			}
			current = &w.Highlights[i]
		}
	}
	if current == nil {
		t.Fatal("window has no current highlight")
	}
	return *current
}

func TestExtract_SentenceWindow(t *testing.T) {
	text := mustText(t, "Hello world. This is bad grammer here. Next.")
	target := grammarErr(25, 32, "spell")

	w, ok := Extract(text, target, []lint.Ref{target}, Options{})
	if !ok {
		t.Fatal("Extract() reported stale span")
	}
	if w.Text != "This is bad grammer here." {
		t.Errorf("window text = %q, want %q", w.Text, "This is bad grammer here.")
	}
	if w.Origin != 13 {
		t.Errorf("origin = %d, want 13", w.Origin)
	}
	if w.Truncated {
		t.Error("window unexpectedly truncated")
	}
	if len(w.Highlights) != 1 {
		t.Fatalf("got %d highlights, want 1", len(w.Highlights))
	}
	h := currentHighlight(t, w)
	if got := w.Text[h.Start:h.End]; got != "grammer" {
		t.Errorf("highlighted text = %q, want %q", got, "grammer")
	}
}

func TestExtract_OtherFindingsBecomeHighlights(t *testing.T) {
	text := mustText(t, "This iss bad grammer here.")
	first := grammarErr(5, 8, "spell-iss")
	second := grammarErr(13, 20, "spell-grammer")

	w, ok := Extract(text, second, []lint.Ref{first, second}, Options{})
	if !ok {
		t.Fatal("Extract() reported stale span")
	}
	if len(w.Highlights) != 2 {
		t.Fatalf("got %d highlights, want 2", len(w.Highlights))
	}
	h := currentHighlight(t, w)
	if got := w.Text[h.Start:h.End]; got != "grammer" {
		t.Errorf("current highlight = %q, want %q", got, "grammer")
	}
	other := w.Highlights[0]
	if other.Current {
		other = w.Highlights[1]
	}
	if got := w.Text[other.Start:other.End]; got != "iss" {
		t.Errorf("secondary highlight = %q, want %q", got, "iss")
	}
}

func TestExtract_ListItem(t *testing.T) {
	text := mustText(t, "Shopping list:\n- fresh bred from the bakery\n- two apples")
	// "bred" sits at scalars 23..27.
	target := grammarErr(23, 27, "spell")

	w, ok := Extract(text, target, []lint.Ref{target}, Options{})
	if !ok {
		t.Fatal("Extract() reported stale span")
	}
	if w.Text != "fresh bred from the bakery" {
		t.Errorf("window text = %q", w.Text)
	}
	h := currentHighlight(t, w)
	if got := w.Text[h.Start:h.End]; got != "bred" {
		t.Errorf("highlighted text = %q, want %q", got, "bred")
	}
}

func TestExtract_NumberedListItem(t *testing.T) {
	text := mustText(t, "Steps:\n1. mix teh batter well\n2. bake it")
	// "teh" at scalars 14..17.
	target := grammarErr(14, 17, "spell")

	w, ok := Extract(text, target, []lint.Ref{target}, Options{})
	if !ok {
		t.Fatal("Extract() reported stale span")
	}
	if w.Text != "mix teh batter well" {
		t.Errorf("window text = %q", w.Text)
	}
}

func TestExtract_ParagraphBreakBoundary(t *testing.T) {
	text := mustText(t, "first paragraph no terminator\n\nsecond paragraph with grammer mistake")
	// "grammer" at scalars 55..62.
	target := grammarErr(55, 62, "spell")

	w, ok := Extract(text, target, []lint.Ref{target}, Options{})
	if !ok {
		t.Fatal("Extract() reported stale span")
	}
	if w.Text != "second paragraph with grammer mistake" {
		t.Errorf("window text = %q", w.Text)
	}
}

func TestExtract_ForwardStopsAtNewline(t *testing.T) {
	text := mustText(t, "no terminator on this lne\nnext line")
	// "lne" at scalars 22..25.
	target := grammarErr(22, 25, "spell")

	w, ok := Extract(text, target, []lint.Ref{target}, Options{})
	if !ok {
		t.Fatal("Extract() reported stale span")
	}
	if w.Text != "no terminator on this lne" {
		t.Errorf("window text = %q", w.Text)
	}
}

func TestExtract_Truncation(t *testing.T) {
	// 60 words, the target is word 50 (0-based index 49).
	words := make([]string, 60)
	for i := range words {
		words[i] = fmt.Sprintf("word%02d", i)
	}
	words[49] = "targett"
	text := mustText(t, strings.Join(words, " ")+".")

	// Each word is 6 scalars plus a space separator.
	start := uint32(49 * 7)
	target := grammarErr(start, start+7, "spell")

	w, ok := Extract(text, target, []lint.Ref{target}, Options{MaxWords: 40})
	if !ok {
		t.Fatal("Extract() reported stale span")
	}
	if !w.Truncated {
		t.Fatal("window not marked truncated")
	}
	if !strings.Contains(w.Text, "...") {
		t.Error("truncated window lacks ellipsis")
	}
	if !strings.Contains(w.Text, "targett") {
		t.Error("truncated window lost the target word")
	}
	if got := len(strings.Fields(strings.Trim(w.Text, ". "))); got > 40 {
		t.Errorf("truncated window still has %d words", got)
	}
	h := currentHighlight(t, w)
	if got := w.Text[h.Start:h.End]; got != "targett" {
		t.Errorf("highlighted text = %q, want %q", got, "targett")
	}

	// Origin maps the content, not the affixes: origin plus the content
	// scalar count must stay inside the source text.
	content := w.Content()
	if strings.Contains(content, "...") {
		t.Errorf("Content() still carries an affix: %q", content)
	}
	if end := int(w.Origin) + utf8.RuneCountInString(content); end > int(text.ScalarCount()) {
		t.Errorf("origin %d + content scalars pushes to %d, past total %d",
			w.Origin, end, text.ScalarCount())
	}
	if got, _ := text.Slice(source.Span{Start: w.Origin, End: w.Origin + uint32(utf8.RuneCountInString(content))}); got != content {
		t.Errorf("source slice at origin = %q, want %q", got, content)
	}
}

func TestWindow_ContentWithoutTruncation(t *testing.T) {
	text := mustText(t, "This is bad grammer here.")
	target := grammarErr(12, 19, "spell")

	w, ok := Extract(text, target, []lint.Ref{target}, Options{})
	if !ok {
		t.Fatal("Extract() reported stale span")
	}
	if w.Content() != w.Text {
		t.Errorf("Content() = %q, want full text %q", w.Content(), w.Text)
	}
}

func TestExtract_StaleSpan(t *testing.T) {
	text := mustText(t, "short text.")
	target := grammarErr(50, 55, "spell")

	if _, ok := Extract(text, target, []lint.Ref{target}, Options{}); ok {
		t.Error("Extract() accepted a stale span")
	}
}

func TestExtract_EmptyText(t *testing.T) {
	text := mustText(t, "")
	target := grammarErr(0, 0, "spell")

	if _, ok := Extract(text, target, []lint.Ref{target}, Options{}); ok {
		t.Error("Extract() produced a window for empty text")
	}
}

func TestExtract_DriftedTargetRecovered(t *testing.T) {
	// The finding was computed before "xx" was inserted at the front; its
	// message quotes the original word, which drift correction relocates.
	text := mustText(t, "xxplease spel this right.")
	target := &lint.Error{
		Range:    source.Span{Start: 7, End: 11},
		Message:  "Did you mean to spell `spel` this way?",
		Cat:      "SPELLING",
		Severity: lint.SevWarning,
		RuleID:   "spell",
	}

	w, ok := Extract(text, target, []lint.Ref{target}, Options{})
	if !ok {
		t.Fatal("Extract() reported stale span")
	}
	h := currentHighlight(t, w)
	if got := w.Text[h.Start:h.End]; got != "spel" {
		t.Errorf("highlighted text = %q, want %q", got, "spel")
	}
}

func TestExtract_MultiScalarGraphemes(t *testing.T) {
	text := mustText(t, "Alert ❗️ bad grammer here.")
	// "Alert " is 6 scalars, the emoji cluster is 2 more, " bad " another 5,
	// so "grammer" covers scalars 13..20.
	target := grammarErr(13, 20, "spell")

	w, ok := Extract(text, target, []lint.Ref{target}, Options{})
	if !ok {
		t.Fatal("Extract() reported stale span")
	}
	h := currentHighlight(t, w)
	if got := w.Text[h.Start:h.End]; got != "grammer" {
		t.Errorf("highlighted text = %q, want %q", got, "grammer")
	}
}
