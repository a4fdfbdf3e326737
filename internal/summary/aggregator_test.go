package summary

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"coldstart/internal/models"
)

var hockeyConfig = models.VenueConfig{
	Category: "hockey",
	Signals:  []string{"parking", "cold", "food_nearby", "chaos", "family_friendly", "locker_rooms", "pro_shop"},
	Verdicts: testVerdicts,
}

func ns(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func nullNS() sql.NullString {
	return sql.NullString{}
}

func findSummary(t *testing.T, sum *models.VenueSummary, name string) models.SignalSummary {
	t.Helper()
	for _, s := range sum.Signals {
		if s.SignalName == name {
			return s
		}
	}
	t.Fatalf("signal %q missing from summary", name)
	return models.SignalSummary{}
}

func TestBuildSummaryPrefersRecentWindow(t *testing.T) {
	rows := []models.SignalAggregateRow{
		{
			Signal: "parking",
			Value:  ns("3.0"), Count: 20, Stddev: ns("1.1"),
			RecentValue: ns("4.5"), RecentCount: 5, RecentStddev: ns("0.4"),
		},
	}

	sum, err := BuildSummary(1, rows, nil, nil, nil, time.Now(), hockeyConfig)
	if err != nil {
		t.Fatalf("BuildSummary returned error: %v", err)
	}

	parking := findSummary(t, sum, "parking")
	if parking.MeanValue != 4.5 {
		t.Errorf("MeanValue = %v, want 4.5 (recent aggregate must win)", parking.MeanValue)
	}
	if parking.Count != 5 {
		t.Errorf("Count = %d, want 5", parking.Count)
	}
	if parking.Stddev != 0.4 {
		t.Errorf("Stddev = %v, want 0.4", parking.Stddev)
	}
}

func TestBuildSummaryFallsBackToAllTime(t *testing.T) {
	rows := []models.SignalAggregateRow{
		{
			Signal: "parking",
			Value:  ns("3.2"), Count: 12, Stddev: ns("0.9"),
			RecentValue: nullNS(), RecentCount: 0, RecentStddev: nullNS(),
		},
	}

	sum, err := BuildSummary(1, rows, nil, nil, nil, time.Now(), hockeyConfig)
	if err != nil {
		t.Fatalf("BuildSummary returned error: %v", err)
	}

	parking := findSummary(t, sum, "parking")
	if parking.MeanValue != 3.2 || parking.Count != 12 || parking.Stddev != 0.9 {
		t.Errorf("got %+v, want all-time values 3.2/12/0.9", parking)
	}
}

func TestBuildSummaryUnratedSignalInvariant(t *testing.T) {
	// No input rows at all: every configured signal still appears, zeroed.
	sum, err := BuildSummary(1, nil, nil, nil, nil, time.Now(), hockeyConfig)
	if err != nil {
		t.Fatalf("BuildSummary returned error: %v", err)
	}

	if len(sum.Signals) != len(hockeyConfig.Signals) {
		t.Fatalf("got %d signals, want %d", len(sum.Signals), len(hockeyConfig.Signals))
	}
	for _, s := range sum.Signals {
		if s.Count != 0 || s.MeanValue != 0 || s.Confidence != 0 || s.Stddev != 0 {
			t.Errorf("unrated signal %q = %+v, want all zeros", s.SignalName, s)
		}
	}
	if sum.Verdict != testVerdicts.None {
		t.Errorf("Verdict = %q, want %q", sum.Verdict, testVerdicts.None)
	}
	if sum.ContributionCount != 0 {
		t.Errorf("ContributionCount = %d, want 0", sum.ContributionCount)
	}
	if sum.LastUpdatedAt != nil {
		t.Errorf("LastUpdatedAt = %v, want nil", sum.LastUpdatedAt)
	}
	if sum.ConfirmedThisSeason {
		t.Error("ConfirmedThisSeason = true, want false for empty venue")
	}
}

func TestBuildSummaryRatedSignalConfidence(t *testing.T) {
	rows := []models.SignalAggregateRow{
		{Signal: "parking", Value: ns("4.0"), Count: 3, Stddev: ns("0.5")},
	}

	sum, err := BuildSummary(1, rows, nil, nil, nil, time.Now(), hockeyConfig)
	if err != nil {
		t.Fatalf("BuildSummary returned error: %v", err)
	}

	parking := findSummary(t, sum, "parking")
	if math.Abs(parking.Confidence-0.5) > 1e-9 {
		t.Errorf("Confidence = %v, want 0.5 for count 3", parking.Confidence)
	}
}

func TestBuildSummaryContributionCount(t *testing.T) {
	rows := []models.SignalAggregateRow{
		{Signal: "parking", Value: ns("4.0"), Count: 3, Stddev: ns("0.5")},
		{Signal: "cold", Value: ns("2.0"), Count: 2, Stddev: ns("0.7")},
	}
	tips := []models.TipRow{
		{ID: 1, VenueID: 1, Text: "Get there early", CreatedAt: time.Now()},
		{ID: 2, VenueID: 1, Text: "Rink 2 is warmer", CreatedAt: time.Now()},
	}

	sum, err := BuildSummary(1, rows, tips, nil, nil, time.Now(), hockeyConfig)
	if err != nil {
		t.Fatalf("BuildSummary returned error: %v", err)
	}

	if sum.ContributionCount != 7 {
		t.Errorf("ContributionCount = %d, want 7 (3+2 ratings + 2 tips)", sum.ContributionCount)
	}
}

func TestBuildSummaryVerdictUsesUnweightedMeanOfMeans(t *testing.T) {
	// 4.6 with 2 ratings and 3.0 with 200 ratings average to 3.8: good,
	// because the mean of means ignores per-signal counts.
	rows := []models.SignalAggregateRow{
		{Signal: "parking", Value: ns("4.6"), Count: 2, Stddev: ns("0.5")},
		{Signal: "cold", Value: ns("3.0"), Count: 200, Stddev: ns("1.0")},
	}

	sum, err := BuildSummary(1, rows, nil, nil, nil, time.Now(), hockeyConfig)
	if err != nil {
		t.Fatalf("BuildSummary returned error: %v", err)
	}

	if sum.Verdict != testVerdicts.Good {
		t.Errorf("Verdict = %q, want %q", sum.Verdict, testVerdicts.Good)
	}
}

func TestBuildSummaryLastUpdatedAndSeason(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ratingTime := now.AddDate(0, -8, 0)
	tipTime := now.AddDate(0, -2, 0)

	sum, err := BuildSummary(1, nil, nil, &ratingTime, &tipTime, now, hockeyConfig)
	if err != nil {
		t.Fatalf("BuildSummary returned error: %v", err)
	}
	if sum.LastUpdatedAt == nil || !sum.LastUpdatedAt.Equal(tipTime) {
		t.Errorf("LastUpdatedAt = %v, want %v (newer of the two)", sum.LastUpdatedAt, tipTime)
	}
	if !sum.ConfirmedThisSeason {
		t.Error("ConfirmedThisSeason = false, want true for 2-month-old activity")
	}

	// Only the old rating: outside the 6-month window.
	sum, err = BuildSummary(1, nil, nil, &ratingTime, nil, now, hockeyConfig)
	if err != nil {
		t.Fatalf("BuildSummary returned error: %v", err)
	}
	if sum.LastUpdatedAt == nil || !sum.LastUpdatedAt.Equal(ratingTime) {
		t.Errorf("LastUpdatedAt = %v, want %v", sum.LastUpdatedAt, ratingTime)
	}
	if sum.ConfirmedThisSeason {
		t.Error("ConfirmedThisSeason = true, want false for 8-month-old activity")
	}
}

func TestBuildSummaryTipShaping(t *testing.T) {
	flagCount := 2
	respText := "We added more benches."
	respName := "rink_ops"
	respRole := "operator"
	tips := []models.TipRow{
		{
			ID: 1, VenueID: 1, Text: "Snack bar closes at 7",
			AuthorName: "sarah", AuthorLifetimeCount: 12,
			FlagCount: &flagCount, CreatedAt: time.Now(),
			OperatorResponseText: &respText,
			OperatorResponseName: &respName,
			OperatorResponseRole: &respRole,
		},
		{
			ID: 2, VenueID: 1, Text: "Bring quarters for lockers",
			AuthorName: "mike", AuthorLifetimeCount: 3,
			FlagCount: nil, CreatedAt: time.Now(),
		},
	}

	sum, err := BuildSummary(1, nil, tips, nil, nil, time.Now(), hockeyConfig)
	if err != nil {
		t.Fatalf("BuildSummary returned error: %v", err)
	}
	if len(sum.Tips) != 2 {
		t.Fatalf("got %d tips, want 2", len(sum.Tips))
	}

	first := sum.Tips[0]
	if first.ContributorBadge != "Trusted" {
		t.Errorf("ContributorBadge = %q, want Trusted at 12 lifetime ratings", first.ContributorBadge)
	}
	if first.FlagCount != 2 {
		t.Errorf("FlagCount = %d, want 2", first.FlagCount)
	}
	if first.OperatorResponse == nil || first.OperatorResponse.Text != respText {
		t.Errorf("OperatorResponse = %+v, want text %q", first.OperatorResponse, respText)
	}

	second := sum.Tips[1]
	if second.ContributorBadge != "" {
		t.Errorf("ContributorBadge = %q, want empty at 3 lifetime ratings", second.ContributorBadge)
	}
	if second.FlagCount != 0 {
		t.Errorf("FlagCount = %d, want 0 for nil flag count", second.FlagCount)
	}
	if second.OperatorResponse != nil {
		t.Errorf("OperatorResponse = %+v, want nil", second.OperatorResponse)
	}
	// Order preserved as supplied.
	if first.ID != 1 || second.ID != 2 {
		t.Error("tips were reordered; input order must be preserved")
	}
}

func TestBuildSummaryMalformedNumeric(t *testing.T) {
	rows := []models.SignalAggregateRow{
		{Signal: "parking", Value: ns("not-a-number"), Count: 4, Stddev: ns("0.5")},
	}

	if _, err := BuildSummary(1, rows, nil, nil, nil, time.Now(), hockeyConfig); err == nil {
		t.Fatal("BuildSummary accepted a malformed aggregate value, want error")
	}
}

func TestBuildSummaryRoundsMeanToTenth(t *testing.T) {
	rows := []models.SignalAggregateRow{
		{Signal: "parking", Value: ns("4.4444444"), Count: 9, Stddev: ns("0.6")},
	}

	sum, err := BuildSummary(1, rows, nil, nil, nil, time.Now(), hockeyConfig)
	if err != nil {
		t.Fatalf("BuildSummary returned error: %v", err)
	}
	if got := findSummary(t, sum, "parking").MeanValue; got != 4.4 {
		t.Errorf("MeanValue = %v, want 4.4", got)
	}
}
