package screening

// RiskLabel is the overall severity assigned to a verdict.
type RiskLabel string

const (
	RiskNoMatch RiskLabel = "no_match"
	RiskClear   RiskLabel = "clear"
	RiskMedium  RiskLabel = "medium"
	RiskHigh    RiskLabel = "high"
)

// RiskLabels lists the known labels in ascending severity.
var RiskLabels = []RiskLabel{RiskNoMatch, RiskClear, RiskMedium, RiskHigh}

// Valid reports whether l is one of the known labels. Unknown labels are
// still carried verbatim through decoding and display.
func (l RiskLabel) Valid() bool {
	switch l {
	case RiskNoMatch, RiskClear, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// Severity orders labels for comparison; unknown labels rank with no_match.
func (l RiskLabel) Severity() int {
	switch l {
	case RiskClear:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return 0
	}
}

// OrDefault substitutes no_match for an empty label.
func (l RiskLabel) OrDefault() RiskLabel {
	if l == "" {
		return RiskNoMatch
	}
	return l
}

func (l RiskLabel) String() string { return string(l) }
