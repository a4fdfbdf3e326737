package models

import (
	"database/sql"
	"time"
)

// SignalRating represents a row in the 'signal_ratings' table. Rows are
// insert-only; a rating is never updated after it is written.
type SignalRating struct {
	ID              int64     `db:"id" json:"id"`
	VenueID         int64     `db:"venue_id" json:"venue_id"`
	SignalName      string    `db:"signal_name" json:"signal_name"`
	Value           int       `db:"value" json:"value"` // 1..5
	ContributorType string    `db:"contributor_type" json:"contributor_type"`
	Context         *string   `db:"context" json:"context,omitempty"` // e.g. "weekend tournament"
	AuthorID        int64     `db:"author_id" json:"author_id"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// SignalAggregateRow is the per-signal aggregate shape returned by the rating
// repository: one row per signal that has at least one rating, carrying both
// the all-time and the last-12-months AVG/COUNT/STDDEV. Postgres returns AVG
// and STDDEV as numeric, which sqlx scans as strings; the summary package owns
// the coercion, so the string typing is part of this contract.
type SignalAggregateRow struct {
	Signal       string         `db:"signal_name"`
	Value        sql.NullString `db:"all_value"`
	Count        int64          `db:"all_count"`
	Stddev       sql.NullString `db:"all_stddev"`
	RecentValue  sql.NullString `db:"recent_value"`
	RecentCount  int64          `db:"recent_count"`
	RecentStddev sql.NullString `db:"recent_stddev"`
}

// CreateRatingInput represents input for submitting one signal rating.
type CreateRatingInput struct {
	SignalName      string  `json:"signal_name" binding:"required"`
	Value           int     `json:"value" binding:"required,min=1,max=5"`
	ContributorType string  `json:"contributor_type" binding:"required,oneof=parent player coach operator"`
	Context         *string `json:"context"`
}
