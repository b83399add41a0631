package session

import (
	"warden/internal/lint"
	"warden/internal/source"
)

// EditRequest is what the session hands the host-side replacement mechanism:
// the span to replace and the text to put there. The session learns the
// outcome only through ConfirmEdit, because hosts may adjust whitespace or
// casing and the true replacement length is known only after the edit.
type EditRequest struct {
	Span        source.Span
	Replacement string
}

type pendingEdit struct {
	key string
	req EditRequest
}

// RequestEdit arms the single in-flight edit latch and returns the request
// to forward to the host. It refuses while another edit is outstanding, and
// refuses items with nothing to apply (grammar findings without
// suggestions).
func (s *Session) RequestEdit(it Item) (EditRequest, bool) {
	if s.pending != nil || !it.Valid() {
		return EditRequest{}, false
	}
	var replacement string
	switch {
	case it.Err != nil:
		if len(it.Err.Suggestions) == 0 {
			return EditRequest{}, false
		}
		replacement = it.Err.Suggestions[0]
	case it.Sugg != nil:
		replacement = it.Sugg.Replacement
	}
	ref := it.Ref()
	req := EditRequest{Span: ref.Span(), Replacement: replacement}
	s.pending = &pendingEdit{key: it.identity(), req: req}
	return req, true
}

// ConfirmEdit completes the in-flight edit with the length the host actually
// applied and rebases the remaining findings. Reports false when no edit was
// outstanding.
func (s *Session) ConfirmEdit(appliedLen int64) bool {
	if s.pending == nil {
		return false
	}
	key := s.pending.key
	s.pending = nil
	s.applyByKey(key, appliedLen)
	return true
}

// CancelEdit releases the latch without touching the collections, for hosts
// that report a failed or abandoned replacement.
func (s *Session) CancelEdit() {
	s.pending = nil
}

// EditInFlight reports whether a requested edit is awaiting confirmation;
// the overlay uses it to suppress further apply actions.
func (s *Session) EditInFlight() bool {
	return s.pending != nil
}

// ApplyEdit removes the applied finding and rebases every remaining span
// that starts at or after the replaced range's end by
// replacementLen - span length. Applying an item that is no longer in the
// session is a no-op: a double-click racing the confirmation callback must
// not corrupt offsets.
func (s *Session) ApplyEdit(applied Item, replacementLen int64) {
	if !applied.Valid() {
		return
	}
	s.applyByKey(applied.identity(), replacementLen)
}

func (s *Session) applyByKey(key string, replacementLen int64) {
	span, ok := s.remove(key)
	if !ok {
		return
	}
	delta := replacementLen - int64(span.Len())
	if delta != 0 {
		s.rebase(span.End, delta)
	}
	s.clampCursor(s.Len())
}

// rebase shifts every span starting at or after edited range end. Spans
// before it are untouched; a span inside the replaced region can only be
// the one that was just removed.
func (s *Session) rebase(editedEnd uint32, delta int64) {
	for i := range s.grammar {
		if s.grammar[i].Range.Start >= editedEnd {
			s.grammar[i].Range = s.grammar[i].Range.ShiftBy(delta)
		}
	}
	for i := range s.style {
		if s.style[i].Range.Start >= editedEnd {
			s.style[i].Range = s.style[i].Range.ShiftBy(delta)
		}
	}
}

// RemoveMatching drops every finding the predicate selects: a rule id for
// "ignore rule", a single key for dismiss or add-to-dictionary. No rebase
// happens because no text changed. Returns how many findings were removed.
func (s *Session) RemoveMatching(pred func(lint.Ref) bool) int {
	removed := 0

	grammar := s.grammar[:0]
	for i := range s.grammar {
		if pred(&s.grammar[i]) {
			removed++
			continue
		}
		grammar = append(grammar, s.grammar[i])
	}
	s.grammar = grammar

	style := s.style[:0]
	for i := range s.style {
		if pred(&s.style[i]) {
			removed++
			continue
		}
		style = append(style, s.style[i])
	}
	s.style = style

	s.clampCursor(s.Len())
	return removed
}

// remove deletes the finding with the given key from its collection and
// returns the span it occupied.
func (s *Session) remove(key string) (source.Span, bool) {
	for i := range s.grammar {
		if s.grammar[i].Key() == key {
			span := s.grammar[i].Range
			s.grammar = append(s.grammar[:i], s.grammar[i+1:]...)
			return span, true
		}
	}
	for i := range s.style {
		if s.style[i].Key() == key {
			span := s.style[i].Range
			s.style = append(s.style[:i], s.style[i+1:]...)
			return span, true
		}
	}
	return source.Span{}, false
}
