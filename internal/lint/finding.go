package lint

import (
	"fmt"

	"warden/internal/source"
)

// Kind tags the two finding streams the overlay merges.
type Kind uint8

const (
	// KindGrammar marks findings produced by the grammar engine.
	KindGrammar Kind = iota
	// KindStyle marks rewrite suggestions produced by the style engine.
	KindStyle
)

func (k Kind) String() string {
	switch k {
	case KindGrammar:
		return "grammar"
	case KindStyle:
		return "style"
	}
	return "unknown"
}

// Ref is the read-only view shared by both finding streams. The overlay
// renders through it without caring which engine produced the span.
type Ref interface {
	Span() source.Span
	Kind() Kind
	// Key identifies a finding across drift and rebase: two refs with the
	// same key are the same finding.
	Key() string
	// Category names the finding class used for highlight styling.
	Category() string
}

// Error is one grammar-engine finding. The engine treats it as read-only
// except for span rebasing after a confirmed edit.
type Error struct {
	Range       source.Span
	Message     string
	Cat         string
	Severity    Severity
	RuleID      string
	Suggestions []string
}

func (e *Error) Span() source.Span { return e.Range }
func (e *Error) Kind() Kind        { return KindGrammar }
func (e *Error) Category() string  { return e.Cat }

func (e *Error) Key() string {
	return fmt.Sprintf("g:%s:%s", e.Range, e.RuleID)
}

// Suggestion is one style-engine rewrite proposal.
type Suggestion struct {
	Range       source.Span
	Original    string
	Replacement string
	Explanation string
	ID          string
}

func (s *Suggestion) Span() source.Span { return s.Range }
func (s *Suggestion) Kind() Kind        { return KindStyle }
func (s *Suggestion) Category() string  { return "STYLE" }

func (s *Suggestion) Key() string {
	return fmt.Sprintf("s:%s:%s", s.Range, s.ID)
}
