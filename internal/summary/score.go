package summary

import "coldstart/internal/models"

// Confidence maps a rating count to a [0,1] trust score for a signal mean.
// Monotonic, saturates at 8 ratings. Note Confidence(0) == 0.2 by the raw
// formula; BuildSummary overrides that to 0 for unrated signals, since an
// unrated signal carries no information at all. Both call sites depend on
// their respective behavior, so the override lives there, not here.
func Confidence(count int) float64 {
	c := 0.2 + float64(count)*0.1
	if c > 1 {
		return 1
	}
	return c
}

// ComputeVerdict picks one of the four configured verdict strings from the
// unweighted mean of per-signal means. totalCount is the number of ratings
// across all signals; when it is zero the "no ratings" verdict wins regardless
// of overallAvg.
func ComputeVerdict(overallAvg float64, totalCount int, verdicts models.Verdicts) string {
	switch {
	case totalCount == 0:
		return verdicts.None
	case overallAvg >= 3.8:
		return verdicts.Good
	case overallAvg >= 3.0:
		return verdicts.Mixed
	default:
		return verdicts.Bad
	}
}
