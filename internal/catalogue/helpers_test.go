package catalogue

import (
	"context"
	"fmt"

	"amlscope/internal/screening"
)

func testCase(file string, idx int, title string, risk screening.RiskLabel, matched bool, edge string, names ...string) screening.TestCase {
	return screening.TestCase{
		Title: title,
		Input: screening.TestCaseInput{
			Title:          title,
			SubjectNames:   names,
			EdgeCaseReason: edge,
		},
		Output: screening.Result{
			IsSubjectMatch:   matched,
			OverallRiskLabel: risk,
			Decision:         "needs_manual_review",
		},
		SubjectSlug: file,
		SourceFile:  file + ".json",
		RecordIndex: idx,
	}
}

// sampleCatalogue mixes labels, match flags, and edge cases.
func sampleCatalogue() []screening.TestCase {
	return []screening.TestCase{
		testCase("john_smith", 0, "Broker charged with fraud", screening.RiskHigh, true, "", "John Smith"),
		testCase("john_smith", 1, "Local charity gala", screening.RiskClear, false, "ambiguous_name", "John Smith", "J. Smith"),
		testCase("maria_lopez", 0, "Mayor investigated", screening.RiskMedium, true, "missing_dob", "Maria Lopez"),
		testCase("maria_lopez", 1, "Bribery trial opens", screening.RiskHigh, true, "ambiguous_name", "Maria Lopez"),
		testCase("wei_chen", 0, "Startup funding round", screening.RiskNoMatch, false, "", "Wei Chen"),
	}
}

// manyCases returns n records that all match the default filter.
func manyCases(n int) []screening.TestCase {
	out := make([]screening.TestCase, n)
	for i := range out {
		out[i] = testCase("bulk", i, fmt.Sprintf("Article %02d", i), screening.RiskClear, false, "")
	}
	return out
}

type recordingHandoff struct {
	results []screening.Result
	err     error
}

func (h *recordingHandoff) Put(_ context.Context, r screening.Result) error {
	if h.err != nil {
		return h.err
	}
	h.results = append(h.results, r)
	return nil
}
