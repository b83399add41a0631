package window

import (
	"unicode"

	"warden/internal/sentence"
)

// scanBackward walks left from the span start and returns the scalar index
// where the containing sentence or list item begins. Boundaries, in the
// order they are recognized at each position:
//   - terminal punctuation immediately followed by whitespace, a newline, or
//     the span start itself;
//   - ':' immediately followed by a newline (section or list header);
//   - two consecutive newlines (paragraph break);
//   - a single newline whose line begins, after indentation, with a list
//     marker. List items read as independent sentences.
func scanBackward(runes []rune, spanStart int) int {
	for i := spanStart - 1; i >= 0; i-- {
		r := runes[i]

		if sentence.IsTerminator(r) {
			next := i + 1
			if next == spanStart || (next < len(runes) && unicode.IsSpace(runes[next])) {
				return next
			}
		}

		if r == ':' && i+1 < len(runes) && runes[i+1] == '\n' {
			return i + 1
		}

		if r == '\n' {
			if i > 0 && runes[i-1] == '\n' {
				return i + 1
			}
			j := i + 1
			for j < len(runes) && runes[j] != '\n' && unicode.IsSpace(runes[j]) {
				j++
			}
			if j < len(runes) && startsListMarker(runes, j) {
				return i + 1
			}
		}
	}
	return 0
}

// scanForward walks right from the span start and returns the scalar index
// one past the window end: the first terminal punctuation mark is included,
// a newline is not.
func scanForward(runes []rune, spanStart int) int {
	for i := spanStart; i < len(runes); i++ {
		if sentence.IsTerminator(runes[i]) {
			return i + 1
		}
		if runes[i] == '\n' {
			return i
		}
	}
	return len(runes)
}

// startsListMarker reports whether the rune at i opens a list item: a bullet
// glyph, '-' or '*' followed by whitespace, or a digit.
func startsListMarker(runes []rune, i int) bool {
	r := runes[i]
	if r == '-' || r == '*' {
		return i+1 < len(runes) && unicode.IsSpace(runes[i+1])
	}
	if sentence.IsBullet(r) {
		return true
	}
	return unicode.IsDigit(r)
}

// skipLeadingMarker advances past indentation and a leading list marker so
// the window begins at the item's content rather than its bullet or number.
func skipLeadingMarker(runes []rune, start int) int {
	i := start
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i >= len(runes) {
		return i
	}

	r := runes[i]
	switch {
	case (r == '-' || r == '*') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]):
		i += 2
	case sentence.IsBullet(r) && i+1 < len(runes) && unicode.IsSpace(runes[i+1]):
		i += 2
	case unicode.IsDigit(r):
		j := i
		for j < len(runes) && unicode.IsDigit(runes[j]) {
			j++
		}
		if j < len(runes) && (runes[j] == '.' || runes[j] == ')') &&
			j+1 < len(runes) && unicode.IsSpace(runes[j+1]) {
			i = j + 2
		}
	}

	for i < len(runes) && runes[i] != '\n' && unicode.IsSpace(runes[i]) {
		i++
	}
	return i
}

// truncate narrows [winStart, winEnd) to about keepAround words on each side
// of the word containing the target when the window exceeds maxWords. Words
// are split on plain spaces, matching how the popover measures them.
func truncate(runes []rune, winStart, winEnd, spanStart, maxWords int) (int, int, bool) {
	type word struct {
		start int
		end   int
	}
	words := make([]word, 0, 48)
	i := winStart
	for i < winEnd {
		for i < winEnd && runes[i] == ' ' {
			i++
		}
		if i >= winEnd {
			break
		}
		w := word{start: i}
		for i < winEnd && runes[i] != ' ' {
			i++
		}
		w.end = i
		words = append(words, w)
	}

	if len(words) <= maxWords {
		return winStart, winEnd, false
	}

	targetIdx := 0
	for idx, w := range words {
		if spanStart >= w.start && spanStart < w.end {
			targetIdx = idx
			break
		}
		if w.start > spanStart {
			break
		}
		targetIdx = idx
	}

	lo := targetIdx - keepAround
	if lo < 0 {
		lo = 0
	}
	hi := targetIdx + keepAround
	if hi > len(words)-1 {
		hi = len(words) - 1
	}
	return words[lo].start, words[hi].end, true
}
