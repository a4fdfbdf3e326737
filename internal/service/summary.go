package service

import (
	"errors"
	"fmt"
	"time"

	"coldstart/internal/config"
	"coldstart/internal/models"
	"coldstart/internal/narrator"
	"coldstart/internal/repository"
	"coldstart/internal/summary"

	"go.uber.org/zap"
)

var ErrUnknownCategory = errors.New("unknown venue category")

// SummaryService is the seam between persistence and the pure aggregation
// core: it gathers the raw rows for one venue and hands them to the summary
// and narrator packages. It holds no state of its own, so concurrent requests
// for different venues need no coordination.
type SummaryService interface {
	VenueSummary(venueID int64) (*models.VenueSummary, *models.Venue, error)
	SummaryText(venueID int64) (string, error)
	Briefing(venueID int64) (string, error)
	Comparison(venueID int64, signalName string, personalAverage float64) (string, error)
}

type summaryService struct {
	venueRepo  repository.VenueRepository
	ratingRepo repository.RatingRepository
	tipRepo    repository.TipRepository
	cfg        *config.Config
	logger     *zap.Logger
	now        func() time.Time
}

func NewSummaryService(venueRepo repository.VenueRepository, ratingRepo repository.RatingRepository,
	tipRepo repository.TipRepository, cfg *config.Config, logger *zap.Logger) SummaryService {
	return &summaryService{
		venueRepo:  venueRepo,
		ratingRepo: ratingRepo,
		tipRepo:    tipRepo,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *summaryService) VenueSummary(venueID int64) (*models.VenueSummary, *models.Venue, error) {
	venue, err := s.venueRepo.GetVenueByID(venueID)
	if err != nil {
		return nil, nil, err
	}

	catCfg, ok := s.cfg.CategoryConfig(venue.Category)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownCategory, venue.Category)
	}

	rows, err := s.ratingRepo.GetSignalAggregates(venueID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load signal aggregates: %w", err)
	}

	tips, err := s.tipRepo.GetRecentTips(venueID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load tips: %w", err)
	}

	lastRatingAt, err := s.ratingRepo.LastRatingTime(venueID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load last rating time: %w", err)
	}

	lastTipAt, err := s.tipRepo.LastTipTime(venueID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load last tip time: %w", err)
	}

	sum, err := summary.BuildSummary(venueID, rows, tips, lastRatingAt, lastTipAt, s.now(), catCfg)
	if err != nil {
		s.logger.Error("Failed to build venue summary", zap.Int64("venue_id", venueID), zap.Error(err))
		return nil, nil, err
	}
	return sum, venue, nil
}

func (s *summaryService) SummaryText(venueID int64) (string, error) {
	sum, _, err := s.VenueSummary(venueID)
	if err != nil {
		return "", err
	}
	return narrator.GenerateSummary(sum.Signals, sum.Tips, sum.Verdict, sum.ContributionCount), nil
}

func (s *summaryService) Briefing(venueID int64) (string, error) {
	sum, venue, err := s.VenueSummary(venueID)
	if err != nil {
		return "", err
	}
	return narrator.GenerateBriefing(sum.Signals, sum.Tips, venue.Name), nil
}

func (s *summaryService) Comparison(venueID int64, signalName string, personalAverage float64) (string, error) {
	sum, _, err := s.VenueSummary(venueID)
	if err != nil {
		return "", err
	}
	for _, sig := range sum.Signals {
		if sig.SignalName == signalName {
			return narrator.SignalComparison(signalName, sig.MeanValue, sig.Count, personalAverage), nil
		}
	}
	return "", nil
}
