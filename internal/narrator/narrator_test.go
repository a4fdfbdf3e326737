package narrator

import (
	"strings"
	"testing"
	"time"

	"coldstart/internal/models"
)

func sig(name string, mean float64, count int, stddev float64) models.SignalSummary {
	return models.SignalSummary{SignalName: name, MeanValue: mean, Count: count, Stddev: stddev}
}

func tip(text string) models.Tip {
	return models.Tip{ID: 1, VenueID: 1, Text: text, CreatedAt: time.Now()}
}

func TestGenerateSummaryNoReportsFallback(t *testing.T) {
	signals := []models.SignalSummary{
		sig("parking", 0, 0, 0),
		sig("cold", 0, 0, 0),
	}

	got := GenerateSummary(signals, nil, "No ratings yet", 0)
	if got != "No reports yet — be the first to rate this rink." {
		t.Errorf("got %q, want exact fallback", got)
	}

	// A tip alone does not change the fallback: signals drive it.
	got = GenerateSummary(signals, []models.Tip{tip("hi")}, "No ratings yet", 1)
	if got != NoReportsFallback {
		t.Errorf("got %q, want exact fallback even with tips present", got)
	}
}

func TestGenerateSummaryOpenerSelection(t *testing.T) {
	signals := []models.SignalSummary{sig("parking", 4.5, 6, 0.4)}

	tests := []struct {
		verdict string
		want    string
	}{
		{"Good rink overall", "Parents like this spot overall"},
		{"Good field overall", "Parents like this spot overall"},
		{"Mixed reviews", "Reviews are mixed"},
		{"Heads up before you go", "Heads up before you commit"},
	}
	for _, tt := range tests {
		got := GenerateSummary(signals, nil, tt.verdict, 6)
		if !strings.Contains(got, tt.want) {
			t.Errorf("verdict %q: got %q, want opener containing %q", tt.verdict, got, tt.want)
		}
	}

	// Unmatched verdict text: no opener, straight to signal sentences.
	got := GenerateSummary(signals, nil, "Totally fine", 6)
	if !strings.HasPrefix(got, "Parking is easy here") {
		t.Errorf("got %q, want no opener for unmatched verdict", got)
	}
}

func TestGenerateSummaryNeverExceedsFourSentences(t *testing.T) {
	// Seven notable signals plus a short tip: output still caps at 4.
	signals := []models.SignalSummary{
		sig("parking", 5.0, 10, 0.3),
		sig("cold", 1.0, 10, 0.3),
		sig("food_nearby", 4.8, 10, 0.3),
		sig("chaos", 1.2, 10, 0.3),
		sig("family_friendly", 4.9, 10, 0.3),
		sig("locker_rooms", 1.1, 10, 0.3),
		sig("pro_shop", 4.7, 10, 0.3),
	}
	tips := []models.Tip{tip("Short tip text")}

	got := GenerateSummary(signals, tips, "Good rink overall", 71)
	// Opener plus three signal sentences hit the cap, so the fourth-ranked
	// signal and the tip must both be cut.
	if !strings.Contains(got, "Parents like this spot overall") {
		t.Errorf("got %q, want the verdict opener", got)
	}
	if n := strings.Count(got, "/5)"); n != 3 {
		t.Errorf("got %d signal sentences (%q), want exactly 3", n, got)
	}
	if strings.Contains(got, "Short tip text") {
		t.Errorf("got %q, tip must be dropped once the cap is reached", got)
	}
}

func TestGenerateSummaryRanksByDistanceFromMidpoint(t *testing.T) {
	// cold (|1.4-3| = 1.6) beats parking (|4.2-3| = 1.2) beats food (|3.5-3| = 0.5).
	signals := []models.SignalSummary{
		sig("parking", 4.2, 6, 0.4),
		sig("food_nearby", 3.5, 6, 0.4),
		sig("cold", 1.4, 6, 0.4),
	}

	got := GenerateSummary(signals, nil, "unmatched", 18)
	coldIdx := strings.Index(got, "freezing")
	parkingIdx := strings.Index(got, "Parking")
	if coldIdx == -1 || parkingIdx == -1 || coldIdx > parkingIdx {
		t.Errorf("got %q, want cold sentence before parking sentence", got)
	}
}

func TestGenerateSummarySkipsSingleRatingSignals(t *testing.T) {
	signals := []models.SignalSummary{
		sig("parking", 5.0, 1, 0), // count < 2, not notable
		sig("cold", 4.0, 3, 0.4),
	}

	got := GenerateSummary(signals, nil, "unmatched", 4)
	if strings.Contains(got, "Parking") {
		t.Errorf("got %q, single-rating signal must not produce a sentence", got)
	}
}

func TestGenerateSummaryConsensusNotes(t *testing.T) {
	divisive := []models.SignalSummary{sig("parking", 4.0, 6, 1.5)}
	got := GenerateSummary(divisive, nil, "unmatched", 6)
	if !strings.Contains(got, "(opinions vary widely)") {
		t.Errorf("got %q, want wide-variance note for stddev 1.5", got)
	}

	unanimous := []models.SignalSummary{sig("parking", 4.0, 6, 0.3)}
	got = GenerateSummary(unanimous, nil, "unmatched", 6)
	if !strings.Contains(got, "(parents agree)") {
		t.Errorf("got %q, want agreement note for stddev 0.3 with 6 ratings", got)
	}

	// Tight spread but too few ratings for the agreement note.
	fewRatings := []models.SignalSummary{sig("parking", 4.0, 3, 0.3)}
	got = GenerateSummary(fewRatings, nil, "unmatched", 3)
	if strings.Contains(got, "(parents agree)") {
		t.Errorf("got %q, agreement note requires at least 5 ratings", got)
	}
}

func TestGenerateSummaryTipLengthCap(t *testing.T) {
	signals := []models.SignalSummary{sig("parking", 4.5, 3, 0.4)}
	longText := strings.Repeat("x", 101)

	got := GenerateSummary(signals, []models.Tip{tip(longText)}, "unmatched", 4)
	if strings.Contains(got, longText) {
		t.Errorf("tip longer than 100 chars leaked into summary: %q", got)
	}

	shortText := "Door 3 is closest to rink B"
	got = GenerateSummary(signals, []models.Tip{tip(shortText)}, "unmatched", 4)
	if !strings.Contains(got, shortText) {
		t.Errorf("got %q, want short tip included", got)
	}
}

func TestGenerateSummaryUnknownSignalFallsBack(t *testing.T) {
	signals := []models.SignalSummary{sig("wifi_quality", 4.5, 3, 0.4)}

	got := GenerateSummary(signals, nil, "unmatched", 3)
	if !strings.Contains(got, "Wifi quality: 4.5/5.") {
		t.Errorf("got %q, want generic sentence for unknown signal", got)
	}
}

func TestGenerateBriefing(t *testing.T) {
	signals := []models.SignalSummary{
		sig("parking", 2.6, 5, 0.6),
		sig("cold", 1.8, 4, 0.5),
		sig("food_nearby", 4.6, 3, 0.4),
		sig("pro_shop", 4.9, 1, 0), // count < 2, ineligible as the extra signal
	}
	longText := strings.Repeat("bring layers and a thermos ", 6)
	tips := []models.Tip{tip(longText)}

	got := GenerateBriefing(signals, tips, "Icehouse North")

	if !strings.HasPrefix(got, "Here's what hockey parents report about Icehouse North:") {
		t.Errorf("got %q, want the briefing opener", got)
	}
	for _, want := range []string{"Parking is manageable", "freezing", "Good food options nearby"} {
		if !strings.Contains(got, want) {
			t.Errorf("got %q, want substring %q", got, want)
		}
	}
	// Unlike the summary, the briefing has no tip length cap.
	if !strings.Contains(got, longText) {
		t.Errorf("got %q, want long tip included in briefing", got)
	}
	if strings.Contains(got, "pro shop") {
		t.Errorf("got %q, single-rating signal must not appear", got)
	}
}

func TestGenerateBriefingFallback(t *testing.T) {
	signals := []models.SignalSummary{sig("parking", 0, 0, 0)}

	got := GenerateBriefing(signals, nil, "Icehouse North")
	if got != "No reports yet for Icehouse North." {
		t.Errorf("got %q, want exact fallback", got)
	}
}

func TestSignalComparison(t *testing.T) {
	tests := []struct {
		name            string
		signal          string
		value           float64
		count           int
		personalAverage float64
		want            string // substring; empty means exact empty string
	}{
		{"unknown signal", "zamboni_quality", 4.0, 5, 3.0, ""},
		{"zero count", "parking", 4.0, 0, 3.0, ""},
		{"similar", "parking", 3.2, 5, 3.0, "similar to your average"},
		{"similar boundary", "parking", 3.29, 5, 3.0, "similar to your average"},
		{"better", "parking", 4.2, 5, 3.4, "better than your average of 3.4"},
		{"below", "cold", 2.0, 5, 3.6, "below your usual 3.6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SignalComparison(tt.signal, tt.value, tt.count, tt.personalAverage)
			if tt.want == "" {
				if got != "" {
					t.Errorf("got %q, want empty string", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("got %q, want substring %q", got, tt.want)
			}
		})
	}
}
