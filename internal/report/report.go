// Package report defines the interchange format between the external
// grammar/style engines and the overlay: the findings for one text snapshot,
// keyed by a hash of that snapshot so stale reports are rejected instead of
// silently rendering drifted spans.
package report

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"warden/internal/lint"
	"warden/internal/source"
)

// SchemaVersion - increment when the payload format changes.
const SchemaVersion uint16 = 1

var (
	// ErrSchema marks a payload written by an incompatible version.
	ErrSchema = errors.New("report: unsupported schema version")
	// ErrStale marks a report whose text hash no longer matches the text.
	ErrStale = errors.New("report: text changed since report was generated")
)

// ErrorRecord is the wire form of one grammar finding.
type ErrorRecord struct {
	Start       uint32   `json:"start"`
	End         uint32   `json:"end"`
	Message     string   `json:"message"`
	Category    string   `json:"category"`
	Severity    string   `json:"severity"`
	RuleID      string   `json:"rule_id"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// SuggestionRecord is the wire form of one style suggestion.
type SuggestionRecord struct {
	Start       uint32 `json:"start"`
	End         uint32 `json:"end"`
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
	Explanation string `json:"explanation,omitempty"`
	ID          string `json:"id"`
}

// Report pairs a text snapshot hash with the findings computed against it.
type Report struct {
	Schema      uint16             `json:"schema"`
	GeneratedAt time.Time          `json:"generated_at"`
	TextHash    []byte             `json:"text_hash"`
	Errors      []ErrorRecord      `json:"errors"`
	Suggestions []SuggestionRecord `json:"suggestions,omitempty"`
}

// HashText produces the snapshot digest a report is keyed by.
func HashText(text *source.Text) []byte {
	sum := sha256.Sum256([]byte(text.String()))
	return sum[:]
}

// Build assembles a report for the given findings.
func Build(text *source.Text, errs []lint.Error, suggs []lint.Suggestion) *Report {
	r := &Report{
		Schema:      SchemaVersion,
		GeneratedAt: time.Now().UTC(),
		TextHash:    HashText(text),
		Errors:      make([]ErrorRecord, 0, len(errs)),
		Suggestions: make([]SuggestionRecord, 0, len(suggs)),
	}
	for _, e := range errs {
		r.Errors = append(r.Errors, ErrorRecord{
			Start:       e.Range.Start,
			End:         e.Range.End,
			Message:     e.Message,
			Category:    e.Cat,
			Severity:    e.Severity.String(),
			RuleID:      e.RuleID,
			Suggestions: e.Suggestions,
		})
	}
	for _, sg := range suggs {
		r.Suggestions = append(r.Suggestions, SuggestionRecord{
			Start:       sg.Range.Start,
			End:         sg.Range.End,
			Original:    sg.Original,
			Replacement: sg.Replacement,
			Explanation: sg.Explanation,
			ID:          sg.ID,
		})
	}
	return r
}

// Findings converts wire records back to engine types, dropping records with
// malformed spans (start > end). Spans beyond the current text length are
// kept: staleness is the drift corrector's problem, not the codec's.
func (r *Report) Findings() ([]lint.Error, []lint.Suggestion) {
	errs := make([]lint.Error, 0, len(r.Errors))
	for _, rec := range r.Errors {
		span, err := source.NewSpan(rec.Start, rec.End)
		if err != nil {
			continue
		}
		errs = append(errs, lint.Error{
			Range:       span,
			Message:     rec.Message,
			Cat:         rec.Category,
			Severity:    lint.ParseSeverity(rec.Severity),
			RuleID:      rec.RuleID,
			Suggestions: rec.Suggestions,
		})
	}
	suggs := make([]lint.Suggestion, 0, len(r.Suggestions))
	for _, rec := range r.Suggestions {
		span, err := source.NewSpan(rec.Start, rec.End)
		if err != nil {
			continue
		}
		suggs = append(suggs, lint.Suggestion{
			Range:       span,
			Original:    rec.Original,
			Replacement: rec.Replacement,
			Explanation: rec.Explanation,
			ID:          rec.ID,
		})
	}
	return errs, suggs
}

// Encode serializes the report for path: JSON for .json files, msgpack
// otherwise.
func Encode(r *Report, path string) ([]byte, error) {
	if isJSONPath(path) {
		return json.MarshalIndent(r, "", "  ")
	}
	return msgpack.Marshal(r)
}

// Decode parses report bytes using the format implied by path.
func Decode(data []byte, path string) (*Report, error) {
	var r Report
	var err error
	if isJSONPath(path) {
		err = json.Unmarshal(data, &r)
	} else {
		err = msgpack.Unmarshal(data, &r)
	}
	if err != nil {
		return nil, fmt.Errorf("decode report %s: %w", filepath.Base(path), err)
	}
	if r.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, r.Schema, SchemaVersion)
	}
	return &r, nil
}

// Save writes the report next to the text it describes.
func Save(r *Report, path string) error {
	data, err := Encode(r, path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a report and verifies it still matches text. A nil text skips
// the hash check.
func Load(path string, text *source.Text) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Decode(data, path)
	if err != nil {
		return nil, err
	}
	if text != nil && !r.Matches(text) {
		return nil, fmt.Errorf("%w: %s", ErrStale, filepath.Base(path))
	}
	return r, nil
}

// Matches reports whether the report was generated against text.
func (r *Report) Matches(text *source.Text) bool {
	return bytes.Equal(r.TextHash, HashText(text))
}

func isJSONPath(path string) bool {
	return filepath.Ext(path) == ".json"
}
