package source

import (
	"unicode/utf8"

	"fortio.org/safecast"
	"github.com/rivo/uniseg"
)

// Text is an immutable snapshot of the monitored field's content. The engine
// never retains one across calls; collaborators hand over a fresh snapshot
// with every request.
type Text struct {
	str     string
	scalars uint32
}

// NewText wraps a string. Returns an error only when the scalar count does
// not fit the span offset type.
func NewText(s string) (*Text, error) {
	n, err := safecast.Conv[uint32](utf8.RuneCountInString(s))
	if err != nil {
		return nil, err
	}
	return &Text{str: s, scalars: n}, nil
}

func (t *Text) String() string {
	return t.str
}

// ScalarCount returns the number of Unicode scalar values in the text.
func (t *Text) ScalarCount() uint32 {
	return t.scalars
}

// ScalarToByte converts a scalar offset to a byte index on a grapheme
// cluster boundary. An offset landing inside a multi-scalar cluster (emoji
// plus variation selector, combining marks) resolves to the boundary
// immediately before that cluster. ScalarCount() maps to len(text).
// Offsets past the end report false; the caller treats the span as unusable
// for this text rather than clamping.
func (t *Text) ScalarToByte(off uint32) (int, bool) {
	if off > t.scalars {
		return 0, false
	}
	if off == t.scalars {
		return len(t.str), true
	}
	var seen uint32
	byteIdx := 0
	state := -1
	rest := t.str
	for len(rest) > 0 {
		cluster, tail, _, st := uniseg.FirstGraphemeClusterInString(rest, state)
		n := uint32(utf8.RuneCountInString(cluster))
		if seen+n > off {
			// off is at or inside this cluster; snap to its start
			return byteIdx, true
		}
		seen += n
		byteIdx += len(cluster)
		rest, state = tail, st
	}
	return byteIdx, true
}

// ByteToScalar is the inverse of ScalarToByte for boundary-aligned byte
// indexes: it counts the scalars preceding i.
func (t *Text) ByteToScalar(i int) uint32 {
	if i > len(t.str) {
		i = len(t.str)
	}
	return uint32(utf8.RuneCountInString(t.str[:i]))
}

// Slice extracts the substring covered by sp using exact scalar offsets (no
// grapheme snapping). Reports false when the span does not fit the text.
func (t *Text) Slice(sp Span) (string, bool) {
	start, ok := t.scalarByteOffset(sp.Start)
	if !ok {
		return "", false
	}
	end, ok := t.scalarByteOffset(sp.End)
	if !ok {
		return "", false
	}
	return t.str[start:end], true
}

// Replace splices replacement over the scalars covered by sp and returns the
// resulting string. Reports false when the span does not fit the text.
func (t *Text) Replace(sp Span, replacement string) (string, bool) {
	start, ok := t.scalarByteOffset(sp.Start)
	if !ok {
		return "", false
	}
	end, ok := t.scalarByteOffset(sp.End)
	if !ok {
		return "", false
	}
	return t.str[:start] + replacement + t.str[end:], true
}

// scalarByteOffset maps a scalar offset to its exact byte position,
// independent of grapheme boundaries.
func (t *Text) scalarByteOffset(off uint32) (int, bool) {
	if off > t.scalars {
		return 0, false
	}
	var seen uint32
	for i := range t.str {
		if seen == off {
			return i, true
		}
		seen++
	}
	if seen == off {
		return len(t.str), true
	}
	return 0, false
}
