// Package catalogue derives the analyst's view of a test-case collection:
// the filtered subset, the visible page, and the active selection. Every
// derived value is recomputed from the immutable collection and the current
// filter state; nothing is patched incrementally.
package catalogue

import (
	"strings"

	"amlscope/internal/screening"
	dErrors "amlscope/pkg/domain-errors"
	pstrings "amlscope/pkg/platform/strings"
)

// All is the no-op value for every enumerated predicate.
const All = "all"

// Match status predicate values.
const (
	MatchMatched    = "matched"
	MatchNotMatched = "not_matched"
)

// FilterState holds the four simultaneously active predicates.
type FilterState struct {
	Text        string `json:"text"`
	RiskLevel   string `json:"risk_level"`
	MatchStatus string `json:"match_status"`
	EdgeCase    string `json:"edge_case"`
}

// DefaultFilter passes every record through.
func DefaultFilter() FilterState {
	return FilterState{RiskLevel: All, MatchStatus: All, EdgeCase: All}
}

// ParseFilterState normalises raw query values. Empty enumerations mean All.
// Risk and match values outside their closed sets are rejected; edge-case
// values are free-form because the option set is derived from the data.
func ParseFilterState(text, risk, match, edge string) (FilterState, error) {
	q := FilterState{
		Text:        text,
		RiskLevel:   orAll(strings.TrimSpace(risk)),
		MatchStatus: orAll(strings.TrimSpace(match)),
		EdgeCase:    orAll(edge),
	}
	if q.RiskLevel != All && !screening.RiskLabel(q.RiskLevel).Valid() {
		return FilterState{}, dErrors.New(dErrors.CodeValidation, "risk must be one of all, no_match, clear, medium, high")
	}
	switch q.MatchStatus {
	case All, MatchMatched, MatchNotMatched:
	default:
		return FilterState{}, dErrors.New(dErrors.CodeValidation, "match must be one of all, matched, not_matched")
	}
	return q, nil
}

func orAll(v string) string {
	if v == "" {
		return All
	}
	return v
}

// Filter returns the records satisfying every active predicate, in their
// original order. The input slice is never modified.
func Filter(records []screening.TestCase, q FilterState) []screening.TestCase {
	out := make([]screening.TestCase, 0, len(records))
	for _, r := range records {
		if q.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether r passes all four predicates.
func (q FilterState) Matches(r screening.TestCase) bool {
	if q.Text != "" && !pstrings.ContainsFold(haystack(r), q.Text) {
		return false
	}
	if active(q.RiskLevel) && string(r.Output.OverallRiskLabel) != q.RiskLevel {
		return false
	}
	if active(q.MatchStatus) {
		want := q.MatchStatus == MatchMatched
		if r.Output.IsSubjectMatch != want {
			return false
		}
	}
	if active(q.EdgeCase) {
		if r.Input.EdgeCaseReason == "" || r.Input.EdgeCaseReason != q.EdgeCase {
			return false
		}
	}
	return true
}

func active(v string) bool { return v != "" && v != All }

// haystack is the text searched by the free-text predicate.
func haystack(r screening.TestCase) string {
	return r.Title + " " + strings.Join(r.Input.SubjectNames, " ")
}

// EdgeCaseOptions lists All followed by each distinct non-empty edge-case
// reason across records, in first-seen order.
func EdgeCaseOptions(records []screening.TestCase) []string {
	reasons := make([]string, 0, len(records))
	for _, r := range records {
		reasons = append(reasons, r.Input.EdgeCaseReason)
	}
	return append([]string{All}, pstrings.DedupeNonEmpty(reasons)...)
}
