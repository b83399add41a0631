package main

import (
	"fmt"

	"warden/internal/lint"
	"warden/internal/report"
	"warden/internal/session"
	"warden/internal/source"
)

// loadSession reads a text file and its report, verifies the report still
// describes this text, and builds a finding session with deduplication and
// config filters applied.
func loadSession(textPath, reportPath string, cfg *projectConfig) (*source.Text, *session.Session, error) {
	text, _, err := source.LoadFile(textPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %q: %w", textPath, err)
	}
	rep, err := report.Load(reportPath, text)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load report %q: %w", reportPath, err)
	}
	errs, suggs := rep.Findings()
	errs = lint.DedupOverlapping(errs)
	lint.SortStable(errs)
	sess := session.New(errs, suggs)
	applyConfigFilters(sess, cfg)
	return text, sess, nil
}
