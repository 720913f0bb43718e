// Package screening defines the records exchanged with the screening service
// and browsed by analysts: one verdict per (subject, article) pair, plus the
// test-case fixtures that wrap a verdict with the input that produced it.
package screening

// Result is the verdict for one subject screened against one article.
// Decoding is lenient: any nested facet may be absent and every nullable
// scalar is a pointer, so partial payloads render instead of failing.
type Result struct {
	IsSubjectMatch       bool      `json:"is_subject_match"`
	MatchConfidence      float64   `json:"match_confidence"`
	OverallRiskLabel     RiskLabel `json:"overall_risk_label"`
	Decision             string    `json:"decision"`
	HumanReadableSummary string    `json:"human_readable_summary"`
	AuditNotes           string    `json:"audit_notes"`
	Details              Details   `json:"details"`
}

// Inconsistent reports a verdict that claims no_match yet flags the subject
// as matched. Such results are displayed as-is, never rejected.
func (r Result) Inconsistent() bool {
	return r.OverallRiskLabel == RiskNoMatch && r.IsSubjectMatch
}

// Details groups the six independent analysis facets.
type Details struct {
	Metadata    *ArticleMetadata `json:"metadata,omitempty"`
	People      *People          `json:"people,omitempty"`
	Context     *Context         `json:"context,omitempty"`
	NameMatch   *NameMatch       `json:"name_match,omitempty"`
	DOBAge      *DOBAge          `json:"dob_age,omitempty"`
	Sentiment   *Sentiment       `json:"sentiment,omitempty"`
	ArticleText *string          `json:"article_text,omitempty"`
}

type ArticleMetadata struct {
	Title         *string `json:"title,omitempty"`
	PublishedDate *string `json:"published_date,omitempty"`
	Section       *string `json:"section,omitempty"`
	SourceDomain  *string `json:"source_domain,omitempty"`
	IsRecent      *bool   `json:"is_recent,omitempty"`
	Reasoning     *string `json:"reasoning,omitempty"`
}

type People struct {
	MainPerson  *string  `json:"main_person,omitempty"`
	OtherPeople []string `json:"other_people,omitempty"`
	AuthorNames []string `json:"author_names,omitempty"`
	Reasoning   *string  `json:"reasoning,omitempty"`
}

type Context struct {
	Locations                []string    `json:"locations,omitempty"`
	Organisations            []string    `json:"organisations,omitempty"`
	RolesOrOccupations       []string    `json:"roles_or_occupations,omitempty"`
	SubjectContextConsistent Consistency `json:"subject_context_consistent"`
	Confidence               *float64    `json:"confidence,omitempty"`
	Reasoning                *string     `json:"reasoning,omitempty"`
}

// NameMatch fields are always populated by the screening service when the
// facet exists. Confidence stays a pointer so a malformed payload degrades
// to a placeholder rather than a fabricated 0%.
type NameMatch struct {
	SubjectNameNormalized string   `json:"subject_name_normalized"`
	ArticlePrimaryNames   []string `json:"article_primary_names"`
	IsNamePotentialMatch  bool     `json:"is_name_potential_match"`
	Confidence            *float64 `json:"confidence"`
	Reasoning             string   `json:"reasoning"`
}

type DOBAge struct {
	DOBInArticle         *string     `json:"dob_in_article,omitempty"`
	AgeInArticle         *float64    `json:"age_in_article,omitempty"`
	AgePhrase            *string     `json:"age_phrase,omitempty"`
	IsDOBOrAgeConsistent Consistency `json:"is_dob_or_age_consistent"`
	Confidence           *float64    `json:"confidence,omitempty"`
	Reasoning            *string     `json:"reasoning,omitempty"`
}

// HasDOBOrAge reports whether the article yielded any date-of-birth or age
// evidence, independent of whether that evidence was consistent.
func (d *DOBAge) HasDOBOrAge() bool {
	if d == nil {
		return false
	}
	return (d.DOBInArticle != nil && *d.DOBInArticle != "") || d.AgeInArticle != nil
}

type Sentiment struct {
	OverallSentiment  string   `json:"overall_sentiment"`
	IsAdverseMedia    bool     `json:"is_adverse_media"`
	AdverseCategories []string `json:"adverse_categories,omitempty"`
	KeyPositives      []string `json:"key_positives,omitempty"`
	KeyNegatives      []string `json:"key_negatives,omitempty"`
	Reasoning         *string  `json:"reasoning,omitempty"`
}

// Request is the body submitted to the screening service.
type Request struct {
	Name string  `json:"name"`
	URL  string  `json:"url"`
	DOB  *string `json:"dob,omitempty"`
}
