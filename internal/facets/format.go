package facets

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"amlscope/internal/screening"
)

// Percent renders a [0,1] confidence as a whole percentage, rounding half
// away from zero. The scaled value is first snapped to six decimals so that
// binary float error (0.145*100 = 14.4999...) does not flip the rounding.
func Percent(v float64) int {
	scaled := v * 100
	scaled = math.Round(scaled*1e6) / 1e6
	return int(math.Round(scaled))
}

// PercentText renders a nullable confidence, using the placeholder when absent.
func PercentText(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return strconv.Itoa(Percent(*v)) + "%"
}

// ConfidenceTone colours the match-probability gauge.
func ConfidenceTone(percent int) Tone {
	switch {
	case percent > 75:
		return ToneDanger
	case percent > 50:
		return ToneWarning
	default:
		return ToneSuccess
	}
}

// RiskTone maps a risk label to its badge colour. Unknown labels are neutral.
func RiskTone(l screening.RiskLabel) Tone {
	switch l {
	case screening.RiskHigh:
		return ToneDanger
	case screening.RiskMedium:
		return ToneWarning
	case screening.RiskClear:
		return ToneSuccess
	default:
		return ToneNeutral
	}
}

// SentimentTone maps an overall sentiment to its badge colour. Anything
// other than negative or positive is neutral.
func SentimentTone(s string) Tone {
	switch strings.ToLower(s) {
	case "negative":
		return ToneDanger
	case "positive":
		return ToneSuccess
	default:
		return ToneNeutral
	}
}

// Humanise turns a snake_case code into capitalised words:
// "needs_manual_review" becomes "Needs Manual Review".
func Humanise(code string) string {
	words := strings.Fields(strings.ReplaceAll(code, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func text(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return Placeholder
	}
	return *s
}

func scalar(label string, s *string) Field {
	v := text(s)
	return Field{Label: label, Value: v, Empty: v == Placeholder}
}

func plain(label, s string) Field {
	return scalar(label, &s)
}

func list(label string, items []string, emptyText string) Field {
	if items == nil {
		items = []string{}
	}
	if emptyText == "" {
		emptyText = EmptyListMarker
	}
	f := Field{Label: label, Items: items, List: true}
	if len(items) == 0 {
		f.Value, f.Empty = emptyText, true
		return f
	}
	f.Value = strings.Join(items, ", ")
	return f
}

func yesNo(label string, b *bool) Field {
	switch {
	case b == nil:
		return Field{Label: label, Value: Placeholder, Empty: true}
	case *b:
		return Field{Label: label, Value: "Yes"}
	default:
		return Field{Label: label, Value: "No"}
	}
}

func number(label string, v *float64) Field {
	if v == nil {
		return Field{Label: label, Value: Placeholder, Empty: true}
	}
	return Field{Label: label, Value: strconv.FormatFloat(*v, 'f', -1, 64)}
}

func reasoning(s *string) string { return text(s) }
