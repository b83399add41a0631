package window

import (
	"sort"
	"unicode/utf8"

	"warden/internal/drift"
	"warden/internal/lint"
	"warden/internal/source"
)

// collectHighlights converts every finding fully contained in the kept
// scalar range [keepStart, keepEnd) into a byte range relative to the window
// text. Each span is drift-corrected before containment is decided. The
// finding matching the target's identity becomes the single current
// highlight.
func collectHighlights(text *source.Text, runes []rune, target lint.Ref, all []lint.Ref, keepStart, keepEnd, prefixLen int) []Highlight {
	// Cumulative byte widths of the kept runes: byteAt[k] is the byte offset
	// of scalar keepStart+k within the window content.
	byteAt := make([]int, keepEnd-keepStart+1)
	for k := 0; k < keepEnd-keepStart; k++ {
		byteAt[k+1] = byteAt[k] + utf8.RuneLen(runes[keepStart+k])
	}

	targetKey := target.Key()
	currentSeen := false
	out := make([]Highlight, 0, len(all))
	for _, ref := range all {
		sp := drift.Correct(ref.Span(), expectedText(ref), text)
		if int(sp.Start) < keepStart || int(sp.End) > keepEnd {
			continue
		}
		h := Highlight{
			Start:    prefixLen + byteAt[int(sp.Start)-keepStart],
			End:      prefixLen + byteAt[int(sp.End)-keepStart],
			Category: ref.Category(),
		}
		if !currentSeen && ref.Key() == targetKey {
			h.Current = true
			currentSeen = true
		}
		out = append(out, h)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}
