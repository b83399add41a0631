// Package sentence holds the shared sentence-boundary heuristics: terminator
// and list-marker classification, document segmentation, and detection of
// complete sentences worth analyzing. No natural-language disambiguation is
// attempted beyond these rules.
package sentence

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinWordsForAnalysis is the minimum word count before a sentence is worth
// sending to the grammar engine; shorter fragments are usually still being
// typed.
const MinWordsForAnalysis = 5

// IsTerminator reports whether r ends a sentence. Covers ASCII punctuation,
// the ellipsis, and common CJK sentence endings.
func IsTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '…', '。', '！', '？':
		return true
	}
	return false
}

// IsBullet reports whether r is a list bullet glyph. '-' and '*' are only
// bullets when followed by whitespace; callers check that separately.
func IsBullet(r rune) bool {
	switch r {
	case '-', '*', '•', '◦', '▪', '▸', '►', '‣', '⁃':
		return true
	}
	return false
}

// Segment is one logically independent piece of a document: a sentence run,
// a paragraph, or a list item. Offsets are in Unicode scalars.
type Segment struct {
	Start uint32
	End   uint32
}

// Split cuts text into segments at paragraph breaks, bullet list items, and
// numbered list items ("1. ", "a) "). Sentence-terminal punctuation does not
// split here; a segment may hold several sentences. Empty segments are
// dropped.
func Split(text string) []Segment {
	runes := []rune(text)
	segments := make([]Segment, 0)
	start := 0
	i := 0

	flush := func(end int) {
		if start >= end {
			return
		}
		if strings.TrimSpace(string(runes[start:end])) == "" {
			return
		}
		segments = append(segments, Segment{Start: uint32(start), End: uint32(end)})
	}

	for i < len(runes) {
		r := runes[i]

		// Paragraph break: two or more consecutive newlines.
		if r == '\n' && i+1 < len(runes) && (runes[i+1] == '\n' || runes[i+1] == '\r') {
			flush(i)
			for i < len(runes) && (runes[i] == '\n' || runes[i] == '\r') {
				i++
			}
			start = i
			continue
		}

		// Bullet at the start of a line, followed by whitespace.
		if IsBullet(r) && atLineStart(runes, i) && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			flush(i)
			start = i
			i++
			continue
		}

		// Numbered list item at the start of a line: digit or letter, then
		// '.' or ')', then whitespace.
		if (unicode.IsDigit(r) || isASCIILetter(r)) && atLineStart(runes, i) &&
			i+2 < len(runes) && (runes[i+1] == '.' || runes[i+1] == ')') && unicode.IsSpace(runes[i+2]) {
			flush(i)
			start = i
			i += 2
			continue
		}

		i++
	}
	flush(len(runes))
	return segments
}

// SentenceSpan is one complete sentence, offsets in Unicode scalars.
type SentenceSpan struct {
	Text      string
	Start     uint32
	End       uint32
	WordCount int
}

// Complete extracts the complete sentences of text: runs ending in a
// terminator or a paragraph break with at least MinWordsForAnalysis words.
func Complete(text string) []SentenceSpan {
	sentences := make([]SentenceSpan, 0)
	runes := []rune(text)
	start := 0
	var current strings.Builder

	for i, r := range runes {
		current.WriteRune(r)

		isBreak := r == '\n' && len(strings.TrimSpace(current.String())) > 1
		if !IsTerminator(r) && !isBreak {
			continue
		}

		trimmed := strings.TrimSpace(current.String())
		words := len(strings.Fields(trimmed))
		if trimmed != "" && words >= MinWordsForAnalysis {
			sentences = append(sentences, SentenceSpan{
				Text:      trimmed,
				Start:     uint32(start),
				End:       uint32(i + 1),
				WordCount: words,
			})
		}
		start = i + 1
		current.Reset()
	}
	return sentences
}

// EndsComplete reports whether text ends with a complete sentence, the
// signal used to decide when a field is worth re-analyzing.
func EndsComplete(text string) bool {
	trimmed := strings.TrimRight(text, " \t\n\r")
	if trimmed == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(trimmed)
	if !IsTerminator(last) {
		return false
	}
	sentences := Complete(text)
	if len(sentences) == 0 {
		return false
	}
	return sentences[len(sentences)-1].WordCount >= MinWordsForAnalysis
}

func atLineStart(runes []rune, i int) bool {
	for j := i - 1; j >= 0; j-- {
		if runes[j] == '\n' {
			return true
		}
		if !unicode.IsSpace(runes[j]) {
			return false
		}
	}
	return true
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
