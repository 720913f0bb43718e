package screening

import (
	"fmt"
	"strconv"
	"strings"
)

// TestCase is a fixture pairing the input fed to the screening pipeline with
// the verdict it produced.
type TestCase struct {
	Title       string        `json:"title"`
	Input       TestCaseInput `json:"input"`
	Output      Result        `json:"output"`
	SubjectSlug string        `json:"subject_slug"`
	SourceFile  string        `json:"source_file"`
	RecordIndex int           `json:"record_index"`
}

type TestCaseInput struct {
	Title                      string   `json:"title"`
	Summary                    string   `json:"summary"`
	SubjectNames               []string `json:"subject_names"`
	ContainsDOB                *bool    `json:"contains_dob,omitempty"`
	DOBValue                   *string  `json:"dob_value,omitempty"`
	ContainsAgePhrase          *bool    `json:"contains_age_phrase,omitempty"`
	Sentiment                  string   `json:"sentiment,omitempty"`
	AdverseMediaClassification string   `json:"adverse_media_classification,omitempty"`
	EdgeCaseReason             string   `json:"edge_case_reason,omitempty"`
	ArticleLink                string   `json:"article_link"`
}

// Key returns the identity of the record within a catalogue.
func (t TestCase) Key() RecordKey {
	return RecordKey{SourceFile: t.SourceFile, RecordIndex: t.RecordIndex}
}

// RecordKey identifies a test case by the file it came from and its
// position within that file.
type RecordKey struct {
	SourceFile  string
	RecordIndex int
}

// String renders the key as "<source_file>-<record_index>".
func (k RecordKey) String() string {
	return k.SourceFile + "-" + strconv.Itoa(k.RecordIndex)
}

// ParseRecordKey reverses RecordKey.String. The index follows the last dash,
// so file names may themselves contain dashes.
func ParseRecordKey(s string) (RecordKey, error) {
	i := strings.LastIndex(s, "-")
	if i <= 0 || i == len(s)-1 {
		return RecordKey{}, fmt.Errorf("malformed record key %q", s)
	}
	idx, err := strconv.Atoi(s[i+1:])
	if err != nil || idx < 0 {
		return RecordKey{}, fmt.Errorf("malformed record index in key %q", s)
	}
	return RecordKey{SourceFile: s[:i], RecordIndex: idx}, nil
}
