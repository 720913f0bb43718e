package catalogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amlscope/internal/screening"
	dErrors "amlscope/pkg/domain-errors"
)

func titles(records []screening.TestCase) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

func TestFilterDefaultPassesEverything(t *testing.T) {
	records := sampleCatalogue()
	assert.Equal(t, records, Filter(records, DefaultFilter()))
	assert.Equal(t, records, Filter(records, FilterState{}), "empty predicates behave like all")
}

func TestFilterIsOrderPreservingSubsetAndIdempotent(t *testing.T) {
	records := sampleCatalogue()
	snapshot := append([]screening.TestCase(nil), records...)

	states := []FilterState{
		{Text: "smith", RiskLevel: All, MatchStatus: All, EdgeCase: All},
		{RiskLevel: "high", MatchStatus: MatchMatched, EdgeCase: All},
		{RiskLevel: All, MatchStatus: MatchNotMatched, EdgeCase: "ambiguous_name"},
		{Text: "zzz", RiskLevel: All, MatchStatus: All, EdgeCase: All},
	}
	for _, q := range states {
		once := Filter(records, q)
		assert.Equal(t, once, Filter(records, q), "filter must be idempotent for %+v", q)

		// every result appears in the source, in increasing source position
		pos := -1
		for _, r := range once {
			found := -1
			for i, src := range records {
				if src.Key() == r.Key() {
					found = i
					break
				}
			}
			require.NotEqual(t, -1, found)
			assert.Greater(t, found, pos)
			pos = found
		}
	}
	assert.Equal(t, snapshot, records, "source collection must not be mutated")
}

func TestFilterByRiskLevel(t *testing.T) {
	records := []screening.TestCase{
		testCase("a", 0, "first", screening.RiskHigh, true, ""),
		testCase("a", 1, "second", screening.RiskClear, false, ""),
		testCase("a", 2, "third", screening.RiskMedium, true, ""),
		testCase("a", 3, "fourth", screening.RiskHigh, true, ""),
	}
	got := Filter(records, FilterState{RiskLevel: "high", MatchStatus: All, EdgeCase: All})
	assert.Equal(t, []string{"first", "fourth"}, titles(got))
}

func TestFilterTextSearch(t *testing.T) {
	records := sampleCatalogue()

	t.Run("matches title case-insensitively", func(t *testing.T) {
		got := Filter(records, FilterState{Text: "BRIBERY"})
		assert.Equal(t, []string{"Bribery trial opens"}, titles(got))
	})

	t.Run("matches subject names", func(t *testing.T) {
		got := Filter(records, FilterState{Text: "j. smith"})
		assert.Equal(t, []string{"Local charity gala"}, titles(got))
	})

	t.Run("spans the title and name boundary", func(t *testing.T) {
		got := Filter(records, FilterState{Text: "round wei"})
		assert.Equal(t, []string{"Startup funding round"}, titles(got))
	})
}

func TestFilterByMatchStatus(t *testing.T) {
	records := sampleCatalogue()
	matched := Filter(records, FilterState{MatchStatus: MatchMatched})
	notMatched := Filter(records, FilterState{MatchStatus: MatchNotMatched})

	assert.Len(t, matched, 3)
	assert.Len(t, notMatched, 2)
	for _, r := range matched {
		assert.True(t, r.Output.IsSubjectMatch)
	}
}

func TestFilterByEdgeCaseExcludesRecordsWithoutReason(t *testing.T) {
	records := sampleCatalogue()
	got := Filter(records, FilterState{EdgeCase: "ambiguous_name"})
	assert.Equal(t, []string{"Local charity gala", "Bribery trial opens"}, titles(got))

	assert.Empty(t, Filter(records, FilterState{EdgeCase: "not_a_reason"}))
}

func TestFilterPredicatesAreAnded(t *testing.T) {
	records := sampleCatalogue()
	got := Filter(records, FilterState{
		Text:        "maria",
		RiskLevel:   "high",
		MatchStatus: MatchMatched,
		EdgeCase:    "ambiguous_name",
	})
	assert.Equal(t, []string{"Bribery trial opens"}, titles(got))
}

func TestParseFilterState(t *testing.T) {
	q, err := ParseFilterState("smith", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, FilterState{Text: "smith", RiskLevel: All, MatchStatus: All, EdgeCase: All}, q)

	q, err = ParseFilterState("", "medium", "not_matched", "missing_dob")
	require.NoError(t, err)
	assert.Equal(t, "medium", q.RiskLevel)
	assert.Equal(t, "missing_dob", q.EdgeCase)

	_, err = ParseFilterState("", "critical", "", "")
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation))

	_, err = ParseFilterState("", "", "maybe", "")
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation))
}

func TestEdgeCaseOptions(t *testing.T) {
	records := sampleCatalogue()
	want := []string{All, "ambiguous_name", "missing_dob"}
	assert.Equal(t, want, EdgeCaseOptions(records))

	// derived from the whole collection, not from a filtered view
	narrowed := Filter(records, FilterState{EdgeCase: "missing_dob"})
	require.Len(t, narrowed, 1)
	assert.Equal(t, want, EdgeCaseOptions(records))

	assert.Equal(t, []string{All}, EdgeCaseOptions(nil))
}
