package models

import "time"

// Venue represents a row in the 'venues' table.
type Venue struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Category  string    `db:"category" json:"category"` // "hockey" or "baseball"
	City      string    `db:"city" json:"city"`
	Address   *string   `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// VenueConfig is the per-category configuration: which signals every summary
// must carry and the four verdict strings. Data, not code: new categories are
// new config records, not new logic.
type VenueConfig struct {
	Category string   `yaml:"-" json:"category"`
	Signals  []string `yaml:"signals" json:"signals"`
	Verdicts Verdicts `yaml:"verdicts" json:"verdicts"`
}

type Verdicts struct {
	Good  string `yaml:"good" json:"good"`
	Mixed string `yaml:"mixed" json:"mixed"`
	Bad   string `yaml:"bad" json:"bad"`
	None  string `yaml:"none" json:"none"`
}

// CreateVenueInput represents input for creating a venue.
type CreateVenueInput struct {
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category" binding:"required"`
	City     string  `json:"city" binding:"required"`
	Address  *string `json:"address"`
}
