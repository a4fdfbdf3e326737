package models

import "time"

// Tip is the API shape of one free-text contribution, as embedded in a
// VenueSummary. Built from a TipRow by the aggregator; never persisted.
type Tip struct {
	ID               int64             `json:"id"`
	VenueID          int64             `json:"venue_id"`
	Text             string            `json:"text"`
	ContributorType  string            `json:"contributor_type"`
	Context          *string           `json:"context,omitempty"`
	AuthorName       string            `json:"author_name"`
	ContributorBadge string            `json:"contributor_badge,omitempty"` // "Trusted" at >=10 lifetime ratings
	FlagCount        int               `json:"flag_count"`
	OperatorResponse *OperatorResponse `json:"operator_response,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// OperatorResponse is a venue operator's reply attached to a tip. Append-only:
// once written it is never edited or removed.
type OperatorResponse struct {
	Text string `json:"text"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// TipRow is the joined row shape the tip repository hands to the aggregator:
// the tip itself plus author metadata and the optional operator response.
type TipRow struct {
	ID                   int64      `db:"id"`
	VenueID              int64      `db:"venue_id"`
	Text                 string     `db:"text"`
	ContributorType      string     `db:"contributor_type"`
	Context              *string    `db:"context"`
	AuthorID             *int64     `db:"author_id"`
	AuthorName           string     `db:"author_name"`
	AuthorLifetimeCount  int64      `db:"author_lifetime_count"`
	OperatorResponseText *string    `db:"operator_response_text"`
	OperatorResponseName *string    `db:"operator_response_name"`
	OperatorResponseRole *string    `db:"operator_response_role"`
	FlagCount            *int       `db:"flag_count"`
	CreatedAt            time.Time  `db:"created_at"`
	HiddenAt             *time.Time `db:"hidden_at"`
}

// CreateTipInput represents input for posting a tip.
type CreateTipInput struct {
	Text            string  `json:"text" binding:"required,max=280"`
	ContributorType string  `json:"contributor_type" binding:"required,oneof=parent player coach operator"`
	Context         *string `json:"context"`
}

// OperatorResponseInput represents input for replying to a tip.
type OperatorResponseInput struct {
	Text string `json:"text" binding:"required,max=500"`
}
