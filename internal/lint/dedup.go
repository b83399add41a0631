package lint

import (
	"sort"
	"strings"

	"warden/internal/source"
)

// categoryPriority ranks finding categories when two engines flag the same
// span. GRAMMAR is the most specific, TYPO the least useful because it
// usually duplicates a SPELLING finding for the same word.
func categoryPriority(cat string) uint8 {
	switch strings.ToUpper(cat) {
	case "GRAMMAR":
		return 10
	case "SPELLING":
		return 9
	case "PUNCTUATION":
		return 8
	case "STYLE":
		return 7
	case "FORMATTING":
		return 6
	case "TYPO":
		return 5
	}
	return 1
}

// DedupOverlapping collapses findings that share an exact span, keeping the
// one with the highest category priority and, on ties, the highest severity.
// The result is sorted by span start.
func DedupOverlapping(errors []Error) []Error {
	if len(errors) <= 1 {
		return errors
	}

	groups := make(map[source.Span][]Error)
	order := make([]source.Span, 0, len(errors))
	for _, e := range errors {
		if _, seen := groups[e.Range]; !seen {
			order = append(order, e.Range)
		}
		groups[e.Range] = append(groups[e.Range], e)
	}

	out := make([]Error, 0, len(order))
	for _, sp := range order {
		group := groups[sp]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			pi, pj := categoryPriority(group[i].Cat), categoryPriority(group[j].Cat)
			if pi != pj {
				return pi > pj
			}
			return group[i].Severity > group[j].Severity
		})
		out = append(out, group[0])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Range.Start < out[j].Range.Start
	})
	return out
}

// SortStable orders findings by (start, end, severity desc, rule id) for
// deterministic output.
func SortStable(errors []Error) {
	sort.SliceStable(errors, func(i, j int) bool {
		ei, ej := errors[i], errors[j]
		if ei.Range.Start != ej.Range.Start {
			return ei.Range.Start < ej.Range.Start
		}
		if ei.Range.End != ej.Range.End {
			return ei.Range.End < ej.Range.End
		}
		if ei.Severity != ej.Severity {
			return ei.Severity > ej.Severity
		}
		return ei.RuleID < ej.RuleID
	})
}

// HasErrors reports whether any finding is SevError.
func HasErrors(errors []Error) bool {
	for i := range errors {
		if errors[i].Severity >= SevError {
			return true
		}
	}
	return false
}
