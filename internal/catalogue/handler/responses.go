package handler

import (
	"strings"

	"amlscope/internal/analysis"
	"amlscope/internal/catalogue"
	"amlscope/internal/facets"
	"amlscope/internal/screening"
)

// CatalogueResponse is the gallery state plus a preview of the selection.
type CatalogueResponse struct {
	catalogue.View
	Cards   []Card   `json:"cards"`
	Preview *Preview `json:"preview"`
}

// Card is the summary rendered for one visible record.
type Card struct {
	Key        string       `json:"key"`
	Title      string       `json:"title"`
	Risk       facets.Badge `json:"risk"`
	Match      bool         `json:"match"`
	Confidence string       `json:"confidence"`
	Decision   string       `json:"decision"`
	EdgeCase   string       `json:"edge_case,omitempty"`
	Selected   bool         `json:"selected"`
}

// Preview is the side panel for the selected record.
type Preview struct {
	Key        string       `json:"key"`
	Title      string       `json:"title"`
	Risk       facets.Badge `json:"risk"`
	Decision   string       `json:"decision"`
	Confidence string       `json:"confidence"`
	Summary    string       `json:"summary"`
	Article    string       `json:"article_link,omitempty"`
}

// AnalyzeResponse is returned by POST /catalogue/analyze.
type AnalyzeResponse struct {
	analysis.Ticket
	Key string `json:"key"`
}

// TestsResponse matches the screening service's GET /tests payload.
type TestsResponse struct {
	Results []screening.TestCase `json:"results"`
}

// FromView builds the response for a gallery view. Raw records go out with
// their list fields as [] rather than null.
func FromView(v catalogue.View) CatalogueResponse {
	visible := make([]screening.TestCase, len(v.Page.Visible))
	for i, tc := range v.Page.Visible {
		visible[i] = withLists(tc)
	}
	v.Page.Visible = visible
	if v.Selected != nil {
		sel := withLists(*v.Selected)
		v.Selected = &sel
	}

	resp := CatalogueResponse{View: v, Cards: make([]Card, 0, len(v.Page.Visible))}
	var selected string
	if v.Selected != nil {
		selected = v.Selected.Key().String()
		p := preview(*v.Selected)
		resp.Preview = &p
	}
	for _, tc := range v.Page.Visible {
		c := card(tc)
		c.Selected = c.Key == selected
		resp.Cards = append(resp.Cards, c)
	}
	return resp
}

// withLists copies tc with nil non-omitempty lists set to empty.
func withLists(tc screening.TestCase) screening.TestCase {
	if tc.Input.SubjectNames == nil {
		tc.Input.SubjectNames = []string{}
	}
	if nm := tc.Output.Details.NameMatch; nm != nil && nm.ArticlePrimaryNames == nil {
		cp := *nm
		cp.ArticlePrimaryNames = []string{}
		tc.Output.Details.NameMatch = &cp
	}
	return tc
}

func card(tc screening.TestCase) Card {
	return Card{
		Key:        tc.Key().String(),
		Title:      tc.Title,
		Risk:       riskBadge(tc.Output.OverallRiskLabel),
		Match:      tc.Output.IsSubjectMatch,
		Confidence: confidence(tc.Output.MatchConfidence),
		Decision:   decision(tc.Output.Decision),
		EdgeCase:   tc.Input.EdgeCaseReason,
	}
}

func preview(tc screening.TestCase) Preview {
	summary := strings.TrimSpace(tc.Output.HumanReadableSummary)
	if summary == "" {
		summary = facets.Placeholder
	}
	return Preview{
		Key:        tc.Key().String(),
		Title:      tc.Title,
		Risk:       riskBadge(tc.Output.OverallRiskLabel),
		Decision:   decision(tc.Output.Decision),
		Confidence: confidence(tc.Output.MatchConfidence),
		Summary:    summary,
		Article:    tc.Input.ArticleLink,
	}
}

func riskBadge(l screening.RiskLabel) facets.Badge {
	l = l.OrDefault()
	return facets.Badge{Label: strings.ToUpper(string(l)), Tone: facets.RiskTone(l)}
}

func confidence(v float64) string {
	return facets.PercentText(&v)
}

func decision(code string) string {
	if d := facets.Humanise(code); d != "" {
		return d
	}
	return facets.Placeholder
}
