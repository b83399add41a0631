// Package session owns the two finding collections for one open overlay and
// sequences them into a single cyclable list. The session is the only code
// allowed to mutate spans (rebasing after a confirmed edit); everything else
// sees read-only views.
package session

import (
	"sort"

	"warden/internal/lint"
)

// Item is one entry of the unified sequence: a grammar finding or a style
// suggestion. Exactly one field is set. Items are a derived view over the
// session's collections, recomputed on demand, never stored.
type Item struct {
	Err  *lint.Error
	Sugg *lint.Suggestion

	// key freezes the finding's identity at view creation. The pointers
	// above alias session storage that rebasing reshuffles; applying an
	// already-removed item must match the identity it had when the view was
	// built, not whatever the pointer happens to alias now.
	key string
}

// Ref returns the finding behind the item.
func (it Item) Ref() lint.Ref {
	if it.Err != nil {
		return it.Err
	}
	if it.Sugg != nil {
		return it.Sugg
	}
	return nil
}

// Valid reports whether the item points at a finding.
func (it Item) Valid() bool {
	return it.Err != nil || it.Sugg != nil
}

// identity returns the frozen key when the item came from Items, falling
// back to the live ref for caller-constructed items.
func (it Item) identity() string {
	if it.key != "" {
		return it.key
	}
	if ref := it.Ref(); ref != nil {
		return ref.Key()
	}
	return ""
}

// Session holds the grammar and style findings for one overlay session plus
// the navigation cursor. It is not safe for concurrent use; the overlay
// drives it from a single goroutine.
type Session struct {
	grammar []lint.Error
	style   []lint.Suggestion
	cursor  int
	pending *pendingEdit
}

// New copies both collections into a session. The caller's slices are not
// retained.
func New(grammar []lint.Error, style []lint.Suggestion) *Session {
	s := &Session{
		grammar: make([]lint.Error, len(grammar)),
		style:   make([]lint.Suggestion, len(style)),
	}
	copy(s.grammar, grammar)
	copy(s.style, style)
	return s
}

// Len is the unified sequence length: always len(grammar)+len(style).
func (s *Session) Len() int {
	return len(s.grammar) + len(s.style)
}

// Errors exposes the live grammar findings for re-rendering underlines.
// Callers must not mutate the returned slice.
func (s *Session) Errors() []lint.Error {
	return s.grammar
}

// Suggestions exposes the live style suggestions.
func (s *Session) Suggestions() []lint.Suggestion {
	return s.style
}

// Items merges both collections ordered by span start. Ties keep input
// order within each collection, grammar before style on exact start ties
// (fixed, documented tie-break).
func (s *Session) Items() []Item {
	items := make([]Item, 0, s.Len())
	for i := range s.grammar {
		items = append(items, Item{Err: &s.grammar[i], key: s.grammar[i].Key()})
	}
	for i := range s.style {
		items = append(items, Item{Sugg: &s.style[i], key: s.style[i].Key()})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Ref().Span().Start < items[j].Ref().Span().Start
	})
	return items
}

// Refs returns the unified sequence as read-only refs, the shape the window
// extractor consumes.
func (s *Session) Refs() []lint.Ref {
	items := s.Items()
	refs := make([]lint.Ref, len(items))
	for i, it := range items {
		refs[i] = it.Ref()
	}
	return refs
}

// Position reports the cursor as ("i", "n") for navigation chrome.
func (s *Session) Position() (int, int) {
	return s.cursor, s.Len()
}

// Current returns the item under the cursor.
func (s *Session) Current() (Item, bool) {
	items := s.Items()
	if len(items) == 0 {
		return Item{}, false
	}
	s.clampCursor(len(items))
	return items[s.cursor], true
}

// Next advances the cursor cyclically. With zero or one item it is a no-op
// returning the same item.
func (s *Session) Next() (Item, bool) {
	return s.step(1)
}

// Prev moves the cursor back cyclically.
func (s *Session) Prev() (Item, bool) {
	return s.step(-1)
}

func (s *Session) step(delta int) (Item, bool) {
	items := s.Items()
	n := len(items)
	if n == 0 {
		return Item{}, false
	}
	if n == 1 {
		s.cursor = 0
		return items[0], true
	}
	s.clampCursor(n)
	s.cursor = (s.cursor + delta + n) % n
	return items[s.cursor], true
}

func (s *Session) clampCursor(n int) {
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}
