// Package facets projects a screening verdict into the fixed set of panels
// the detail view renders. Projection is total: absent facets, null scalars,
// and missing lists all degrade to placeholder text.
package facets

// Placeholder stands in for any missing scalar.
const Placeholder = "—"

// EmptyListMarker is shown for a missing or empty list without its own text.
const EmptyListMarker = "None identified"

// Tone is the colour class of a badge.
type Tone string

const (
	ToneDanger  Tone = "danger"
	ToneWarning Tone = "warning"
	ToneSuccess Tone = "success"
	ToneNeutral Tone = "neutral"
)

// Facet keys in display order.
const (
	KeyMetadata  = "metadata"
	KeyPeople    = "people"
	KeyContext   = "context"
	KeyNameMatch = "name_match"
	KeyDOBAge    = "dob_age"
	KeySentiment = "sentiment"
)

type Badge struct {
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

// Field is one labelled value. List fields carry Items (never nil) and show
// their empty text in Value when there is nothing to list.
type Field struct {
	Label string   `json:"label"`
	Value string   `json:"value"`
	Items []string `json:"items,omitempty"`
	List  bool     `json:"list,omitempty"`
	Empty bool     `json:"empty"`
}

// FacetView is one analytical panel.
type FacetView struct {
	Key       string  `json:"key"`
	Title     string  `json:"title"`
	Badges    []Badge `json:"badges"`
	Fields    []Field `json:"fields"`
	Summary   string  `json:"summary,omitempty"`
	Reasoning string  `json:"reasoning"`
}

// Field returns the field with the given label.
func (f FacetView) Field(label string) (Field, bool) {
	for _, fl := range f.Fields {
		if fl.Label == label {
			return fl, true
		}
	}
	return Field{}, false
}

// Verdict is the executive summary shown above the facets.
type Verdict struct {
	Match          Badge  `json:"match"`
	Risk           Badge  `json:"risk"`
	RiskLevel      string `json:"risk_level"`
	Confidence     int    `json:"confidence"`
	ConfidenceText string `json:"confidence_text"`
	ConfidenceTone Tone   `json:"confidence_tone"`
	Decision       string `json:"decision"`
	Summary        string `json:"summary"`
	// Inconsistent flags a no_match verdict that still claims a subject match.
	Inconsistent bool `json:"inconsistent"`
}

// RiskFactor is one adverse category surfaced in the overview.
type RiskFactor struct {
	Category string `json:"category"`
	Badge    Badge  `json:"badge"`
}

// TimelineStep is one stage of the screening pipeline as shown in the audit trail.
type TimelineStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Report is the complete detail-view projection of one verdict.
type Report struct {
	Verdict     Verdict        `json:"verdict"`
	Facets      []FacetView    `json:"facets"`
	RiskFactors []RiskFactor   `json:"risk_factors"`
	AuditNotes  string         `json:"audit_notes"`
	Timeline    []TimelineStep `json:"timeline"`
	ArticleText string         `json:"article_text,omitempty"`
}

// Facet returns the panel with the given key.
func (r Report) Facet(key string) (FacetView, bool) {
	for _, f := range r.Facets {
		if f.Key == key {
			return f, true
		}
	}
	return FacetView{}, false
}

// Timeline is the same for every verdict; it documents the pipeline stages.
var timeline = []TimelineStep{
	{Title: "Article Metadata Analysis", Description: "Article information extracted and validated"},
	{Title: "Identity Verification", Description: "Name matching and DOB analysis completed"},
	{Title: "Context Analysis", Description: "Locations, organisations, and roles cross-checked"},
	{Title: "Sentiment Analysis", Description: "Adverse content and risk factors assessed"},
	{Title: "Final Decision", Description: "Risk assessment completed and decision rendered"},
}
