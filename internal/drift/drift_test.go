package drift

import (
	"testing"

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

func TestCorrect(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		span     source.Span
		expected string
		want     source.Span
	}{
		{
			name:     "no drift returns span unchanged",
			text:     "did you mean staand here",
			span:     source.Span{Start: 13, End: 19},
			expected: "staand",
			want:     source.Span{Start: 13, End: 19},
		},
		{
			name:     "shift of two scalars is recovered",
			text:     "xxdid you mean staand here",
			span:     source.Span{Start: 13, End: 19},
			expected: "staand",
			want:     source.Span{Start: 15, End: 21},
		},
		{
			name:     "shift left of one scalar is recovered",
			text:     "id you mean staand here",
			span:     source.Span{Start: 13, End: 19},
			expected: "staand",
			want:     source.Span{Start: 12, End: 18},
		},
		{
			name: "expected text no longer present keeps original",
			// The word was already fixed to "stand"; nothing within the
			// probe window matches "staand".
			text:     "did you mean stand here",
			span:     source.Span{Start: 13, End: 19},
			expected: "staand",
			want:     source.Span{Start: 13, End: 19},
		},
		{
			name:     "no expected substring keeps original",
			text:     "some text entirely",
			span:     source.Span{Start: 5, End: 9},
			expected: "",
			want:     source.Span{Start: 5, End: 9},
		},
		{
			name:     "drift beyond window keeps original",
			text:     "0123456789staand tail padding",
			span:     source.Span{Start: 2, End: 8},
			expected: "staand",
			want:     source.Span{Start: 2, End: 8},
		},
		{
			name:     "span past end of text keeps original",
			text:     "short",
			span:     source.Span{Start: 40, End: 46},
			expected: "staand",
			want:     source.Span{Start: 40, End: 46},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Correct(tt.span, tt.expected, mustText(t, tt.text))
			if got != tt.want {
				t.Errorf("Correct(%v, %q) = %v, want %v", tt.span, tt.expected, got, tt.want)
			}
		})
	}
}

func TestCorrect_NormalizedComparison(t *testing.T) {
	// Field holds the decomposed form; the finding quoted the precomposed
	// one. NFC comparison must treat them as the same word, so no probing
	// happens and the span stays put.
	text := mustText(t, "café time")
	span := source.Span{Start: 0, End: 5}
	got := Correct(span, "café", text)
	if got != span {
		t.Errorf("Correct() = %v, want unchanged %v", got, span)
	}
}

func TestExpectedFromMessage(t *testing.T) {
	tests := []struct {
		name   string
		msg    string
		want   string
		wantOK bool
	}{
		{
			name:   "quoted word",
			msg:    "Did you mean to spell `staand` this way?",
			want:   "staand",
			wantOK: true,
		},
		{
			name:   "first quoted run wins",
			msg:    "Replace `teh` with `the`.",
			want:   "teh",
			wantOK: true,
		},
		{name: "no backticks", msg: "Possible missing comma."},
		{name: "unterminated backtick", msg: "Check `this"},
		{name: "empty quoted run", msg: "Weird `` message"},
		{name: "empty message", msg: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExpectedFromMessage(tt.msg)
			if ok != tt.wantOK {
				t.Fatalf("ExpectedFromMessage(%q) ok = %v, want %v", tt.msg, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ExpectedFromMessage(%q) = %q, want %q", tt.msg, got, tt.want)
			}
		})
	}
}
