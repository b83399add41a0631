// Package drift recovers spans whose offsets no longer match the text they
// were computed against. A span drifts when a nearby edit (usually a prior
// suggestion application) shifted the text before the span list caught up.
//
// Correction is deliberately bounded: a probe window of a few scalars around
// the recorded start. Relocating a highlight to the wrong word silently is
// worse than leaving a visibly stale one, so anything beyond the window is
// returned unchanged.
package drift

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"warden/internal/source"
)

// maxShift bounds the probe window: offsets start±1 .. start±maxShift.
const maxShift = 5

// Correct verifies sp against text and relocates it when the expected
// substring sits within the probe window. expected comes from
// ExpectedFromMessage; when it is empty there is nothing to verify against
// and the span is returned unchanged.
func Correct(sp source.Span, expected string, text *source.Text) source.Span {
	if expected == "" {
		return sp
	}
	if current, ok := text.Slice(sp); ok && scalarEqual(current, expected) {
		return sp
	}

	length := sp.Len()
	// Nearest candidates first: a one-scalar shift from a single edit is the
	// common case.
	for k := 1; k <= maxShift; k++ {
		for _, delta := range [2]int64{int64(k), int64(-k)} {
			cand := sp.ShiftBy(delta)
			if cand == sp {
				continue
			}
			cand.End = cand.Start + length
			if got, ok := text.Slice(cand); ok && scalarEqual(got, expected) {
				return cand
			}
		}
	}
	return sp
}

// scalarEqual compares under NFC because host applications may normalize
// composed characters while performing the replacement.
func scalarEqual(a, b string) bool {
	if a == b {
		return true
	}
	return norm.NFC.String(a) == norm.NFC.String(b)
}

// ExpectedFromMessage recovers the text a grammar finding was computed
// against from its message, relying on the engine's habit of quoting the
// original word in backticks ("Did you mean to spell `staand` this way?").
// This is a best-effort signal, not a contract: no backticks means drift
// correction is unavailable for that finding.
func ExpectedFromMessage(msg string) (string, bool) {
	open := strings.IndexByte(msg, '`')
	if open < 0 {
		return "", false
	}
	rest := msg[open+1:]
	end := strings.IndexByte(rest, '`')
	if end < 0 {
		return "", false
	}
	quoted := rest[:end]
	if quoted == "" {
		return "", false
	}
	return quoted, true
}
