package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coldstart/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

var ErrTipNotFound = errors.New("tip not found")

// recentTipLimit caps how many tips feed one venue summary.
const recentTipLimit = 20

type TipRepository interface {
	InsertTip(tip *models.TipRow) error
	// GetRecentTips returns up to 20 most recent non-hidden tips for the
	// venue, newest first, joined with author lifetime rating counts and any
	// operator response.
	GetRecentTips(venueID int64) ([]models.TipRow, error)
	FlagTip(tipID int64) error
	AddOperatorResponse(tipID int64, text, name, role string) error
	LastTipTime(venueID int64) (*time.Time, error)
	CountTips() (int, error)
}

type tipRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewTipRepository(db *sqlx.DB, logger *zap.Logger) TipRepository {
	return &tipRepository{db: db, logger: logger}
}

func (r *tipRepository) InsertTip(tip *models.TipRow) error {
	query := `INSERT INTO tips (venue_id, text, contributor_type, context, author_id)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	return r.db.QueryRowx(query, tip.VenueID, tip.Text, tip.ContributorType,
		tip.Context, tip.AuthorID).StructScan(tip)
}

func (r *tipRepository) GetRecentTips(venueID int64) ([]models.TipRow, error) {
	query := `
		SELECT
			t.id,
			t.venue_id,
			t.text,
			t.contributor_type,
			t.context,
			t.author_id,
			COALESCE(u.username, 'Anonymous') AS author_name,
			COALESCE(lifetime.venue_count, 0) AS author_lifetime_count,
			t.operator_response_text,
			t.operator_response_name,
			t.operator_response_role,
			t.flag_count,
			t.created_at,
			t.hidden_at
		FROM tips t
		LEFT JOIN users u ON t.author_id = u.id
		LEFT JOIN (
			SELECT author_id, COUNT(DISTINCT venue_id) AS venue_count
			FROM signal_ratings
			GROUP BY author_id
		) lifetime ON lifetime.author_id = t.author_id
		WHERE t.venue_id = $1 AND t.hidden_at IS NULL
		ORDER BY t.created_at DESC
		LIMIT $2
	`

	tips := []models.TipRow{}
	if err := r.db.Select(&tips, query, venueID, recentTipLimit); err != nil {
		return nil, err
	}
	return tips, nil
}

// FlagTip increments a tip's flag count. The count only ever goes up; review
// and hiding are an operator decision, not automatic.
func (r *tipRepository) FlagTip(tipID int64) error {
	query := `UPDATE tips SET flag_count = COALESCE(flag_count, 0) + 1 WHERE id = $1`
	result, err := r.db.Exec(query, tipID)
	if err != nil {
		r.logger.Error("Failed to flag tip", zap.Int64("tip_id", tipID), zap.Error(err))
		return err
	}
	return requireRow(result, tipID)
}

// AddOperatorResponse attaches an operator reply to a tip. Append-only: an
// existing response is never overwritten.
func (r *tipRepository) AddOperatorResponse(tipID int64, text, name, role string) error {
	query := `
		UPDATE tips
		SET operator_response_text = $1, operator_response_name = $2, operator_response_role = $3
		WHERE id = $4 AND operator_response_text IS NULL
	`
	result, err := r.db.Exec(query, text, name, role, tipID)
	if err != nil {
		r.logger.Error("Failed to add operator response", zap.Int64("tip_id", tipID), zap.Error(err))
		return err
	}
	return requireRow(result, tipID)
}

func (r *tipRepository) LastTipTime(venueID int64) (*time.Time, error) {
	var ts time.Time
	query := `SELECT created_at FROM tips WHERE venue_id = $1 AND hidden_at IS NULL ORDER BY created_at DESC LIMIT 1`
	err := r.db.Get(&ts, query, venueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ts, nil
}

func (r *tipRepository) CountTips() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM tips WHERE hidden_at IS NULL`)
	return count, err
}

func requireRow(result sql.Result, tipID int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %d", ErrTipNotFound, tipID)
	}
	return nil
}
