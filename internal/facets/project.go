package facets

import (
	"strconv"
	"strings"

	"amlscope/internal/screening"
	pstrings "amlscope/pkg/platform/strings"
)

// Project builds the full report for one verdict. It never fails: each
// facet tolerates being absent or partially populated.
func Project(r screening.Result) Report {
	d := r.Details
	report := Report{
		Verdict: verdict(r),
		Facets: []FacetView{
			metadata(d.Metadata),
			people(d.People),
			contextFacet(d.Context),
			nameMatch(d.NameMatch),
			dobAge(d.DOBAge),
			sentiment(d.Sentiment, r.OverallRiskLabel),
		},
		RiskFactors: riskFactors(d.Sentiment),
		AuditNotes:  r.AuditNotes,
		Timeline:    append([]TimelineStep(nil), timeline...),
	}
	if strings.TrimSpace(report.AuditNotes) == "" {
		report.AuditNotes = Placeholder
	}
	if d.ArticleText != nil {
		report.ArticleText = *d.ArticleText
	}
	return report
}

func verdict(r screening.Result) Verdict {
	level := r.OverallRiskLabel.OrDefault()
	pct := Percent(r.MatchConfidence)

	v := Verdict{
		Risk:           Badge{Label: strings.ToUpper(string(level)), Tone: RiskTone(level)},
		RiskLevel:      Humanise(string(level)),
		Confidence:     pct,
		ConfidenceText: strconv.Itoa(pct) + "%",
		ConfidenceTone: ConfidenceTone(pct),
		Decision:       Humanise(r.Decision),
		Summary:        r.HumanReadableSummary,
		Inconsistent:   r.Inconsistent(),
	}
	if v.Decision == "" {
		v.Decision = Placeholder
	}
	if strings.TrimSpace(v.Summary) == "" {
		v.Summary = Placeholder
	}
	if r.IsSubjectMatch {
		v.Match = Badge{Label: "MATCH", Tone: ToneSuccess}
	} else {
		v.Match = Badge{Label: "NO MATCH", Tone: ToneNeutral}
	}
	return v
}

func metadata(m *screening.ArticleMetadata) FacetView {
	if m == nil {
		m = &screening.ArticleMetadata{}
	}
	return FacetView{
		Key:    KeyMetadata,
		Title:  "Article Metadata",
		Badges: []Badge{},
		Fields: []Field{
			scalar("Title", m.Title),
			scalar("Published", m.PublishedDate),
			scalar("Source", m.SourceDomain),
			scalar("Section", m.Section),
			yesNo("Recent Article", m.IsRecent),
		},
		Reasoning: reasoning(m.Reasoning),
	}
}

func people(p *screening.People) FacetView {
	if p == nil {
		p = &screening.People{}
	}
	return FacetView{
		Key:    KeyPeople,
		Title:  "People Mentioned in Article",
		Badges: []Badge{},
		Fields: []Field{
			scalar("Main Person", p.MainPerson),
			list("Other People", p.OtherPeople, "No other people identified"),
			list("Authors", p.AuthorNames, "No authors identified"),
		},
		Reasoning: reasoning(p.Reasoning),
	}
}

// contextFacet defaults a missing confidence to 0% where the identity facets
// show the placeholder instead. Analysts have always seen 0% here.
func contextFacet(c *screening.Context) FacetView {
	if c == nil {
		c = &screening.Context{}
	}
	var confidence float64
	if c.Confidence != nil {
		confidence = *c.Confidence
	}
	return FacetView{
		Key:    KeyContext,
		Title:  "Contextual Analysis",
		Badges: []Badge{contextBadge(c.SubjectContextConsistent)},
		Fields: []Field{
			list("Locations", pstrings.DedupeAndTrim(c.Locations), "No locations identified"),
			list("Organisations", pstrings.DedupeAndTrim(c.Organisations), "No organizations identified"),
			list("Roles", pstrings.DedupeAndTrim(c.RolesOrOccupations), "No roles identified"),
			{Label: "Confidence", Value: strconv.Itoa(Percent(confidence)) + "%"},
		},
		Reasoning: reasoning(c.Reasoning),
	}
}

func contextBadge(c screening.Consistency) Badge {
	switch c {
	case screening.Consistent:
		return Badge{Label: "Yes", Tone: ToneSuccess}
	case screening.Inconsistent:
		return Badge{Label: "No", Tone: ToneDanger}
	default:
		return Badge{Label: "No Data", Tone: ToneNeutral}
	}
}

func nameMatch(n *screening.NameMatch) FacetView {
	if n == nil {
		n = &screening.NameMatch{}
	}
	badge := Badge{Label: "No Match", Tone: ToneNeutral}
	summary := "No match found"
	if n.IsNamePotentialMatch {
		badge = Badge{Label: "Match", Tone: ToneSuccess}
		summary = "Potential match identified"
	}
	return FacetView{
		Key:    KeyNameMatch,
		Title:  "Name Matching Analysis",
		Badges: []Badge{badge},
		Fields: []Field{
			plain("Subject Name (Normalized)", n.SubjectNameNormalized),
			list("Article Names Found", n.ArticlePrimaryNames, "No names identified"),
			{Label: "Confidence", Value: PercentText(n.Confidence), Empty: n.Confidence == nil},
		},
		Summary:   summary,
		Reasoning: reasoning(&n.Reasoning),
	}
}

func dobAge(d *screening.DOBAge) FacetView {
	present := d.HasDOBOrAge()
	if d == nil {
		d = &screening.DOBAge{}
	}
	summary := "No age/DOB information available"
	if present {
		summary = "Age/DOB information found"
	}
	return FacetView{
		Key:    KeyDOBAge,
		Title:  "Date of Birth Analysis",
		Badges: []Badge{dobBadge(d.IsDOBOrAgeConsistent)},
		Fields: []Field{
			scalar("DOB in Article", d.DOBInArticle),
			number("Age in Article", d.AgeInArticle),
			scalar("Age Phrase", d.AgePhrase),
			{Label: "Confidence", Value: PercentText(d.Confidence), Empty: d.Confidence == nil},
		},
		Summary:   summary,
		Reasoning: reasoning(d.Reasoning),
	}
}

func dobBadge(c screening.Consistency) Badge {
	switch c {
	case screening.Consistent:
		return Badge{Label: "Consistent", Tone: ToneSuccess}
	case screening.Inconsistent:
		return Badge{Label: "Inconsistent", Tone: ToneDanger}
	default:
		return Badge{Label: "No Data", Tone: ToneNeutral}
	}
}

func sentiment(s *screening.Sentiment, risk screening.RiskLabel) FacetView {
	if s == nil {
		s = &screening.Sentiment{}
	}
	level := risk.OrDefault()
	overall := Placeholder
	if strings.TrimSpace(s.OverallSentiment) != "" {
		overall = strings.ToUpper(s.OverallSentiment)
	}
	adverse := Badge{Label: "No", Tone: ToneSuccess}
	if s.IsAdverseMedia {
		adverse = Badge{Label: "Yes", Tone: ToneDanger}
	}
	return FacetView{
		Key:   KeySentiment,
		Title: "Sentiment & Risk Analysis",
		Badges: []Badge{
			{Label: strings.ToUpper(string(level)), Tone: RiskTone(level)},
			{Label: overall, Tone: SentimentTone(s.OverallSentiment)},
			adverse,
		},
		Fields: []Field{
			{Label: "Adverse Media", Value: adverse.Label},
			list("Adverse Categories", s.AdverseCategories, "No adverse categories identified"),
			list("Key Negatives", s.KeyNegatives, "No negative factors identified"),
			list("Key Positives", s.KeyPositives, "No positive factors identified"),
		},
		Reasoning: reasoning(s.Reasoning),
	}
}

func riskFactors(s *screening.Sentiment) []RiskFactor {
	out := []RiskFactor{}
	if s == nil {
		return out
	}
	for _, c := range s.AdverseCategories {
		out = append(out, RiskFactor{
			Category: Humanise(c),
			Badge:    Badge{Label: "High Risk", Tone: ToneDanger},
		})
	}
	return out
}
