package repository

import (
	"database/sql"
	"errors"
	"time"

	"coldstart/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type RatingRepository interface {
	InsertRating(rating *models.SignalRating) error
	// GetSignalAggregates returns one row per signal with at least one rating
	// for the venue, carrying all-time and last-12-months AVG/COUNT/STDDEV.
	// The numeric columns arrive as strings; the summary package coerces them.
	GetSignalAggregates(venueID int64) ([]models.SignalAggregateRow, error)
	LastRatingTime(venueID int64) (*time.Time, error)
	AuthorLifetimeCount(authorID int64) (int64, error)
	CountRatings() (int, error)
}

type ratingRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewRatingRepository(db *sqlx.DB, logger *zap.Logger) RatingRepository {
	return &ratingRepository{db: db, logger: logger}
}

func (r *ratingRepository) InsertRating(rating *models.SignalRating) error {
	query := `INSERT INTO signal_ratings (venue_id, signal_name, value, contributor_type, context, author_id)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	return r.db.QueryRowx(query, rating.VenueID, rating.SignalName, rating.Value,
		rating.ContributorType, rating.Context, rating.AuthorID).StructScan(rating)
}

func (r *ratingRepository) GetSignalAggregates(venueID int64) ([]models.SignalAggregateRow, error) {
	// STDDEV over a single row is NULL; the aggregator treats NULL as 0.
	query := `
		SELECT
			signal_name,
			AVG(value)                                                                    AS all_value,
			COUNT(*)                                                                      AS all_count,
			STDDEV(value)                                                                 AS all_stddev,
			AVG(value)    FILTER (WHERE created_at >= NOW() - INTERVAL '12 months')       AS recent_value,
			COUNT(*)      FILTER (WHERE created_at >= NOW() - INTERVAL '12 months')       AS recent_count,
			STDDEV(value) FILTER (WHERE created_at >= NOW() - INTERVAL '12 months')       AS recent_stddev
		FROM signal_ratings
		WHERE venue_id = $1
		GROUP BY signal_name
	`

	rows := []models.SignalAggregateRow{}
	if err := r.db.Select(&rows, query, venueID); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ratingRepository) LastRatingTime(venueID int64) (*time.Time, error) {
	var ts time.Time
	query := `SELECT created_at FROM signal_ratings WHERE venue_id = $1 ORDER BY created_at DESC LIMIT 1`
	err := r.db.Get(&ts, query, venueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ts, nil
}

func (r *ratingRepository) AuthorLifetimeCount(authorID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(DISTINCT venue_id) FROM signal_ratings WHERE author_id = $1`
	err := r.db.Get(&count, query, authorID)
	return count, err
}

func (r *ratingRepository) CountRatings() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM signal_ratings`)
	return count, err
}
