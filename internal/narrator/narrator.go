// Package narrator renders aggregated venue summaries as short natural-language
// text: a per-venue recap, a shareable team briefing and a one-line comparison
// against a viewer's personal averages. Pure functions over SignalSummary
// values; nothing here touches storage.
package narrator

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"coldstart/internal/models"
)

const (
	// NoReportsFallback is returned verbatim by GenerateSummary when no
	// signal has any ratings.
	NoReportsFallback = "No reports yet — be the first to rate this rink."

	maxSummarySentences  = 4
	maxBriefingSentences = 5
	maxSummaryTipLength  = 100
	notableSignalCount   = 3
)

// GenerateSummary produces a 1–4 sentence recap of a venue from its signal
// summaries, most recent tips and verdict string.
func GenerateSummary(signals []models.SignalSummary, tips []models.Tip, verdict string, contributionCount int) string {
	if !anyRated(signals) {
		return NoReportsFallback
	}

	var sentences []string
	if opener := verdictOpener(verdict, contributionCount); opener != "" {
		sentences = append(sentences, opener)
	}

	for _, s := range notableSignals(signals, notableSignalCount) {
		sentences = append(sentences, withConsensusNote(signalSentence(s.SignalName, s.MeanValue), s))
	}

	if len(tips) > 0 && len(sentences) < maxSummarySentences &&
		utf8.RuneCountInString(tips[0].Text) <= maxSummaryTipLength {
		sentences = append(sentences, fmt.Sprintf("Tip: %q", tips[0].Text))
	}

	if len(sentences) > maxSummarySentences {
		sentences = sentences[:maxSummarySentences]
	}
	return strings.Join(sentences, " ")
}

// GenerateBriefing produces the 3–5 sentence shareable variant aimed at a
// team. Parking and cold lead whenever they are rated, then the single
// strongest remaining signal, then a tip. Unlike GenerateSummary the tip text
// has no length cap here.
func GenerateBriefing(signals []models.SignalSummary, tips []models.Tip, venueName string) string {
	if !anyRated(signals) {
		return fmt.Sprintf("No reports yet for %s.", venueName)
	}

	sentences := []string{fmt.Sprintf("Here's what hockey parents report about %s:", venueName)}

	for _, lead := range []string{"parking", "cold"} {
		if s, ok := findSignal(signals, lead); ok && s.Count > 0 {
			sentences = append(sentences, signalSentence(s.SignalName, s.MeanValue))
		}
	}

	if s, ok := highestRemaining(signals); ok {
		sentences = append(sentences, signalSentence(s.SignalName, s.MeanValue))
	}

	if len(tips) > 0 && len(sentences) < maxBriefingSentences {
		sentences = append(sentences, fmt.Sprintf("Tip: %q", tips[0].Text))
	}

	if len(sentences) > maxBriefingSentences {
		sentences = sentences[:maxBriefingSentences]
	}
	return strings.Join(sentences, " ")
}

// SignalComparison renders a single sentence comparing a venue's signal value
// against the viewer's personal average across venues. Empty string when the
// signal is unknown or the venue has no ratings for it.
func SignalComparison(signalName string, venueValue float64, venueCount int, personalAverage float64) string {
	if _, ok := phrases[signalName]; !ok || venueCount == 0 {
		return ""
	}

	label := signalLabel(signalName)
	diff := venueValue - personalAverage
	switch {
	case math.Abs(diff) < 0.3:
		return fmt.Sprintf("%s here (%.1f/5) is similar to your average.", label, venueValue)
	case diff > 0:
		return fmt.Sprintf("%s here (%.1f/5) is better than your average of %.1f.", label, venueValue, personalAverage)
	default:
		return fmt.Sprintf("%s here (%.1f/5) is below your usual %.1f.", label, venueValue, personalAverage)
	}
}

// verdictOpener picks the framing sentence by substring match on the verdict
// text, so category-specific verdict strings keep working as long as they
// contain one of the three markers. No match means no opener.
func verdictOpener(verdict string, contributionCount int) string {
	switch {
	case strings.Contains(verdict, "Good"):
		return fmt.Sprintf("Parents like this spot overall (%d reports).", contributionCount)
	case strings.Contains(verdict, "Mixed"):
		return fmt.Sprintf("Reviews are mixed on this one (%d reports).", contributionCount)
	case strings.Contains(verdict, "Heads up"):
		return fmt.Sprintf("Heads up before you commit (%d reports).", contributionCount)
	default:
		return ""
	}
}

// notableSignals returns up to n signals with at least two ratings, ranked by
// distance of the mean from the neutral midpoint 3. Very good and very bad
// both count as notable. Ties keep input order.
func notableSignals(signals []models.SignalSummary, n int) []models.SignalSummary {
	notable := make([]models.SignalSummary, 0, len(signals))
	for _, s := range signals {
		if s.Count >= 2 {
			notable = append(notable, s)
		}
	}
	sort.SliceStable(notable, func(i, j int) bool {
		return math.Abs(notable[i].MeanValue-3) > math.Abs(notable[j].MeanValue-3)
	})
	if len(notable) > n {
		notable = notable[:n]
	}
	return notable
}

// withConsensusNote appends a parenthetical note when ratings clearly agree or
// clearly diverge; middling spreads get no note.
func withConsensusNote(sentence string, s models.SignalSummary) string {
	var note string
	switch {
	case s.Stddev > 1.2:
		note = "opinions vary widely"
	case s.Stddev < 0.5 && s.Count >= 5:
		note = "parents agree"
	default:
		return sentence
	}
	return fmt.Sprintf("%s (%s)", strings.TrimSuffix(sentence, "."), note) + "."
}

// highestRemaining picks the highest-value signal with at least two ratings,
// excluding the parking and cold leads the briefing already covers.
func highestRemaining(signals []models.SignalSummary) (models.SignalSummary, bool) {
	var best models.SignalSummary
	found := false
	for _, s := range signals {
		if s.SignalName == "parking" || s.SignalName == "cold" || s.Count < 2 {
			continue
		}
		if !found || s.MeanValue > best.MeanValue {
			best = s
			found = true
		}
	}
	return best, found
}

func findSignal(signals []models.SignalSummary, name string) (models.SignalSummary, bool) {
	for _, s := range signals {
		if s.SignalName == name {
			return s, true
		}
	}
	return models.SignalSummary{}, false
}

func anyRated(signals []models.SignalSummary) bool {
	for _, s := range signals {
		if s.Count > 0 {
			return true
		}
	}
	return false
}
