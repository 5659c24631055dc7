package core

// RiskLabel is the discrete band a composite score falls into.
type RiskLabel string

const (
	RiskNone     RiskLabel = "No Risk"
	RiskModerate RiskLabel = "Moderate Similarity"
	RiskWarning  RiskLabel = "Warning"
	RiskPossible RiskLabel = "Possible Risk"
)

// Band lower bounds. Each bound is inclusive.
const (
	ModerateBound = 0.60
	WarningBound  = 0.70
	PossibleBound = 0.80
)

// ScoreTolerance absorbs float error in fused scores when comparing against
// a bound, so 0.2*0.6 + 0.8*0.6 still counts as 0.60.
const ScoreTolerance = 1e-9

// AtLeast reports whether score reaches bound within ScoreTolerance.
func AtLeast(score, bound float64) bool {
	return score+ScoreTolerance >= bound
}

// RiskFor maps a composite score to its risk band.
func RiskFor(score float64) RiskLabel {
	switch {
	case AtLeast(score, PossibleBound):
		return RiskPossible
	case AtLeast(score, WarningBound):
		return RiskWarning
	case AtLeast(score, ModerateBound):
		return RiskModerate
	default:
		return RiskNone
	}
}
