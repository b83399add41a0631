package lintfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"warden/internal/lint"
	"warden/internal/session"
	"warden/internal/source"
)

func sessionFor(t *testing.T) (*source.Text, *session.Session) {
	t.Helper()
	text, err := source.NewText("Hello world. This is bad grammer here. Next.")
	if err != nil {
		t.Fatal(err)
	}
	errs := []lint.Error{{
		Range:       source.Span{Start: 25, End: 32},
		Message:     "Did you mean to spell `grammer` this way?",
		Cat:         "SPELLING",
		Severity:    lint.SevWarning,
		RuleID:      "spell-1",
		Suggestions: []string{"grammar"},
	}}
	suggs := []lint.Suggestion{{
		Range:       source.Span{Start: 0, End: 5},
		Original:    "Hello",
		Replacement: "Hi",
		Explanation: "more casual",
		ID:          "style-1",
	}}
	return text, session.New(errs, suggs)
}

func TestPretty(t *testing.T) {
	text, sess := sessionFor(t)
	var buf bytes.Buffer
	Pretty(&buf, text, sess, PrettyOpts{ShowSuggestions: true})

	out := buf.String()
	for _, want := range []string{
		"WARNING SPELLING [spell-1]",
		"This is bad grammer here.",
		"fix: grammar",
		"SUGGEST STYLE [style-1]",
		"fix: Hi",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// The underline's caret column must sit under "grammer".
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if strings.HasSuffix(line, "This is bad grammer here.") && i+1 < len(lines) {
			marker := lines[i+1]
			caret := strings.IndexByte(marker, '^')
			word := strings.Index(line, "grammer")
			if caret != word {
				t.Errorf("caret at column %d, want %d:\n%s\n%s", caret, word, line, marker)
			}
		}
	}
}

func TestPretty_MaxFindings(t *testing.T) {
	text, sess := sessionFor(t)
	var buf bytes.Buffer
	Pretty(&buf, text, sess, PrettyOpts{MaxFindings: 1})

	if !strings.Contains(buf.String(), "and 1 more") {
		t.Errorf("output missing truncation notice:\n%s", buf.String())
	}
}

func TestShort(t *testing.T) {
	_, sess := sessionFor(t)
	var buf bytes.Buffer
	Short(&buf, sess)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Short() produced %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "style-1") {
		t.Errorf("first line should be the earliest span: %q", lines[0])
	}
	if !strings.Contains(lines[1], "spell-1") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestJSON(t *testing.T) {
	text, sess := sessionFor(t)
	var buf bytes.Buffer
	if err := JSON(&buf, text, sess, JSONOpts{IncludeWindows: true, IncludeSuggestions: true}); err != nil {
		t.Fatal(err)
	}

	var out struct {
		Findings []struct {
			Kind   string `json:"kind"`
			RuleID string `json:"rule_id"`
			Window *struct {
				Text string `json:"text"`
			} `json:"window"`
		} `json:"findings"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Total != 2 || len(out.Findings) != 2 {
		t.Fatalf("total = %d, findings = %d", out.Total, len(out.Findings))
	}
	if out.Findings[0].Kind != "style" {
		t.Errorf("first finding kind = %q, want style (earliest span)", out.Findings[0].Kind)
	}
	grammar := out.Findings[1]
	if grammar.Window == nil || grammar.Window.Text != "This is bad grammer here." {
		t.Errorf("grammar window = %+v", grammar.Window)
	}
}
