package report

// Tier is the risk bucket derived from an AbuseIPDB confidence score.
type Tier string

const (
	TierClean    Tier = "CLEAN"
	TierLow      Tier = "LOW RISK"
	TierModerate Tier = "MODERATE RISK"
	TierHigh     Tier = "HIGH RISK"
)

// Classify maps an abuse confidence score (0-100) onto a risk tier.
func Classify(score int) Tier {
	switch {
	case score == 0:
		return TierClean
	case score < 25:
		return TierLow
	case score < 75:
		return TierModerate
	default:
		return TierHigh
	}
}
