package source

import (
	"fmt"
)

// Span is a half-open [Start, End) range counted in Unicode scalar values,
// the offset unit reported by the grammar engine.
type Span struct {
	Start uint32
	End   uint32
}

// ErrInvalidSpan is returned by NewSpan when start > end.
var ErrInvalidSpan = fmt.Errorf("source: span start exceeds end")

// NewSpan validates the range at construction time; malformed spans never
// enter the engine.
func NewSpan(start, end uint32) (Span, error) {
	if start > end {
		return Span{}, fmt.Errorf("%w: %d > %d", ErrInvalidSpan, start, end)
	}
	return Span{Start: start, End: end}, nil
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Contains reports whether other lies fully inside s.
func (s Span) Contains(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Cover extends s to include other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

func (s Span) ShiftLeft(n uint32) Span {
	if n > s.Start {
		return s
	}
	return Span{Start: s.Start - n, End: s.End - n}
}

func (s Span) ShiftRight(n uint32) Span {
	return Span{Start: s.Start + n, End: s.End + n}
}

// ShiftBy moves both ends by a signed delta. A delta that would push Start
// below zero leaves the span unchanged; misapplying a rebase is worse than
// keeping a stale offset.
func (s Span) ShiftBy(delta int64) Span {
	start := int64(s.Start) + delta
	end := int64(s.End) + delta
	if start < 0 || end < start {
		return s
	}
	return Span{Start: uint32(start), End: uint32(end)}
}
