package models

import "time"

// SignalSummary is the derived per-signal aggregate. Computed fresh on every
// request, never persisted. count == 0 implies mean 0 and confidence 0.
type SignalSummary struct {
	SignalName string  `json:"signal_name"`
	MeanValue  float64 `json:"mean_value"` // rounded to 0.1
	Count      int     `json:"count"`
	Confidence float64 `json:"confidence"` // [0,1]
	Stddev     float64 `json:"stddev"`
}

// VenueSummary is the top-level derived object returned to API clients and fed
// to the narrator. One SignalSummary per configured signal, rated or not.
type VenueSummary struct {
	VenueID             int64           `json:"venue_id"`
	Verdict             string          `json:"verdict"`
	Signals             []SignalSummary `json:"signals"`
	Tips                []Tip           `json:"tips"` // newest first, as supplied
	ContributionCount   int             `json:"contribution_count"`
	LastUpdatedAt       *time.Time      `json:"last_updated_at"`
	ConfirmedThisSeason bool            `json:"confirmed_this_season"`
}
