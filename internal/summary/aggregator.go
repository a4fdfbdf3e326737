package summary

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"time"

	"coldstart/internal/models"
)

// trustedBadgeThreshold is the lifetime rating count at which a tip author
// gets the "Trusted" badge.
const trustedBadgeThreshold = 10

// confirmedWindow is how far back lastUpdatedAt may lie for a venue to count
// as confirmed this season.
const confirmedWindow = 6 * 30 * 24 * time.Hour

// BuildSummary turns raw per-signal aggregate rows and tip rows for one venue
// into a VenueSummary. Pure: no I/O, no shared state, safe to call
// concurrently for different venues.
//
// Per-signal resolution prefers the last-12-months aggregate whenever it has
// at least one rating and falls back to all-time otherwise, so a signal's
// displayed value can shift as old ratings age out of the window even with no
// new input. Signals configured for the venue's category but absent from the
// input are emitted with zero value, count and confidence rather than omitted.
func BuildSummary(venueID int64, rows []models.SignalAggregateRow, tips []models.TipRow,
	lastSignalAt, lastTipAt *time.Time, now time.Time, cfg models.VenueConfig) (*models.VenueSummary, error) {

	bySignal := make(map[string]models.SignalAggregateRow, len(rows))
	for _, row := range rows {
		bySignal[row.Signal] = row
	}

	signals := make([]models.SignalSummary, 0, len(cfg.Signals))
	totalRatings := 0
	ratedSum := 0.0
	ratedSignals := 0

	for _, name := range cfg.Signals {
		row, ok := bySignal[name]
		if !ok {
			signals = append(signals, models.SignalSummary{SignalName: name})
			continue
		}

		mean, stddev, count, err := resolveSignal(row)
		if err != nil {
			return nil, fmt.Errorf("signal %q: %w", name, err)
		}

		s := models.SignalSummary{
			SignalName: name,
			MeanValue:  roundTenth(mean),
			Count:      count,
			Stddev:     stddev,
		}
		if count > 0 {
			s.Confidence = Confidence(count)
			ratedSum += s.MeanValue
			ratedSignals++
			totalRatings += count
		} else {
			// Unrated signal: zero across the board, raw formula does not apply.
			s.MeanValue = 0
			s.Confidence = 0
			s.Stddev = 0
		}
		signals = append(signals, s)
	}

	overallAvg := 0.0
	if ratedSignals > 0 {
		overallAvg = ratedSum / float64(ratedSignals)
	}

	shaped := shapeTips(tips)

	lastUpdated := latest(lastSignalAt, lastTipAt)
	confirmed := lastUpdated != nil && now.Sub(*lastUpdated) <= confirmedWindow

	return &models.VenueSummary{
		VenueID:             venueID,
		Verdict:             ComputeVerdict(overallAvg, totalRatings, cfg.Verdicts),
		Signals:             signals,
		Tips:                shaped,
		ContributionCount:   totalRatings + len(shaped),
		LastUpdatedAt:       lastUpdated,
		ConfirmedThisSeason: confirmed,
	}, nil
}

// resolveSignal picks the recent window when it has data, all-time otherwise,
// and coerces the string-typed numeric columns.
func resolveSignal(row models.SignalAggregateRow) (mean, stddev float64, count int, err error) {
	if row.RecentCount > 0 {
		mean, err = parseNumeric(row.RecentValue)
		if err != nil {
			return 0, 0, 0, err
		}
		stddev, err = parseNumeric(row.RecentStddev)
		if err != nil {
			return 0, 0, 0, err
		}
		return mean, stddev, int(row.RecentCount), nil
	}

	mean, err = parseNumeric(row.Value)
	if err != nil {
		return 0, 0, 0, err
	}
	stddev, err = parseNumeric(row.Stddev)
	if err != nil {
		return 0, 0, 0, err
	}
	return mean, stddev, int(row.Count), nil
}

// parseNumeric coerces an AVG/STDDEV column. Postgres hands these back as
// numeric strings; NULL (stddev of a single rating) is treated as 0.
func parseNumeric(ns sql.NullString) (float64, error) {
	if !ns.Valid || ns.String == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(ns.String, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed aggregate value %q: %w", ns.String, err)
	}
	return v, nil
}

// shapeTips converts repository tip rows into the API tip shape. Rows arrive
// newest first and are passed through in that order.
func shapeTips(rows []models.TipRow) []models.Tip {
	tips := make([]models.Tip, 0, len(rows))
	for _, row := range rows {
		tip := models.Tip{
			ID:              row.ID,
			VenueID:         row.VenueID,
			Text:            row.Text,
			ContributorType: row.ContributorType,
			Context:         row.Context,
			AuthorName:      row.AuthorName,
			CreatedAt:       row.CreatedAt,
		}
		if row.FlagCount != nil {
			tip.FlagCount = *row.FlagCount
		}
		if row.AuthorLifetimeCount >= trustedBadgeThreshold {
			tip.ContributorBadge = "Trusted"
		}
		if row.OperatorResponseText != nil {
			resp := &models.OperatorResponse{Text: *row.OperatorResponseText}
			if row.OperatorResponseName != nil {
				resp.Name = *row.OperatorResponseName
			}
			if row.OperatorResponseRole != nil {
				resp.Role = *row.OperatorResponseRole
			}
			tip.OperatorResponse = resp
		}
		tips = append(tips, tip)
	}
	return tips
}

func latest(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.After(*a):
		return b
	default:
		return a
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
