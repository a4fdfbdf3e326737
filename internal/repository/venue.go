package repository

import (
	"database/sql"
	"errors"

	"coldstart/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

var ErrVenueNotFound = errors.New("venue not found")

type VenueRepository interface {
	CreateVenue(venue *models.Venue) error
	GetVenueByID(id int64) (*models.Venue, error)
	ListVenues(category, city string) ([]*models.Venue, error)
	CountVenues() (int, error)
}

type venueRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewVenueRepository(db *sqlx.DB, logger *zap.Logger) VenueRepository {
	return &venueRepository{db: db, logger: logger}
}

func (r *venueRepository) CreateVenue(venue *models.Venue) error {
	query := `INSERT INTO venues (name, category, city, address)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	return r.db.QueryRowx(query, venue.Name, venue.Category, venue.City, venue.Address).StructScan(venue)
}

func (r *venueRepository) GetVenueByID(id int64) (*models.Venue, error) {
	var venue models.Venue
	query := `SELECT id, name, category, city, address, created_at FROM venues WHERE id = $1`
	err := r.db.Get(&venue, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) ListVenues(category, city string) ([]*models.Venue, error) {
	query := `SELECT id, name, category, city, address, created_at FROM venues WHERE 1=1`
	args := []interface{}{}

	if category != "" {
		args = append(args, category)
		query += ` AND category = $1`
	}
	if city != "" {
		args = append(args, city)
		if len(args) == 1 {
			query += ` AND city = $1`
		} else {
			query += ` AND city = $2`
		}
	}
	query += ` ORDER BY name ASC`

	venues := []*models.Venue{}
	if err := r.db.Select(&venues, query, args...); err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *venueRepository) CountVenues() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM venues`)
	return count, err
}
