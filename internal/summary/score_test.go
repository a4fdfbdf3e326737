package summary

import (
	"math"
	"testing"

	"coldstart/internal/models"
)

var testVerdicts = models.Verdicts{
	Good:  "Good rink overall",
	Mixed: "Mixed reviews",
	Bad:   "Heads up before you go",
	None:  "No ratings yet",
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		count int
		want  float64
	}{
		{0, 0.2}, // raw formula; BuildSummary overrides this for unrated signals
		{1, 0.3},
		{2, 0.4},
		{5, 0.7},
		{8, 1.0},
		{9, 1.0},
		{100, 1.0},
	}
	for _, tt := range tests {
		got := Confidence(tt.count)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Confidence(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestComputeVerdict(t *testing.T) {
	tests := []struct {
		name       string
		overallAvg float64
		totalCount int
		want       string
	}{
		{"no ratings", 0, 0, testVerdicts.None},
		{"no ratings ignores average", 4.9, 0, testVerdicts.None},
		{"good boundary inclusive", 3.8, 5, testVerdicts.Good},
		{"above good", 4.6, 1, testVerdicts.Good},
		{"mixed boundary inclusive", 3.0, 5, testVerdicts.Mixed},
		{"just under good", 3.79, 5, testVerdicts.Mixed},
		{"just under mixed", 2.9, 5, testVerdicts.Bad},
		{"bottom", 1.0, 20, testVerdicts.Bad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeVerdict(tt.overallAvg, tt.totalCount, testVerdicts); got != tt.want {
				t.Errorf("ComputeVerdict(%v, %d) = %q, want %q", tt.overallAvg, tt.totalCount, got, tt.want)
			}
		})
	}
}
