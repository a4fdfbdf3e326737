package handler

import (
	"errors"
	"net/http"

	"coldstart/internal/config"
	"coldstart/internal/models"
	"coldstart/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RatingHandler interface {
	SubmitRating(c *gin.Context)
}

type ratingHandler struct {
	ratingRepo repository.RatingRepository
	venueRepo  repository.VenueRepository
	cfg        *config.Config
	logger     *zap.Logger
}

func NewRatingHandler(ratingRepo repository.RatingRepository, venueRepo repository.VenueRepository,
	cfg *config.Config, logger *zap.Logger) RatingHandler {
	return &ratingHandler{ratingRepo: ratingRepo, venueRepo: venueRepo, cfg: cfg, logger: logger}
}

// SubmitRating handles POST /api/venues/:id/ratings
func (h *ratingHandler) SubmitRating(c *gin.Context) {
	venueID, ok := venueIDParam(c, h.logger)
	if !ok {
		return
	}

	var req models.CreateRatingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for rating", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	venue, err := h.venueRepo.GetVenueByID(venueID)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
			return
		}
		h.logger.Error("Failed to get venue for rating", zap.Int64("venue_id", venueID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit rating"})
		return
	}

	// Only signals configured for the venue's category are accepted.
	catCfg, _ := h.cfg.CategoryConfig(venue.Category)
	if !containsSignal(catCfg.Signals, req.SignalName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown signal for this venue: " + req.SignalName})
		return
	}

	rating := &models.SignalRating{
		VenueID:         venueID,
		SignalName:      req.SignalName,
		Value:           req.Value,
		ContributorType: req.ContributorType,
		Context:         req.Context,
		AuthorID:        c.MustGet("user_id").(int64),
	}
	if err := h.ratingRepo.InsertRating(rating); err != nil {
		h.logger.Error("Failed to insert rating", zap.Int64("venue_id", venueID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit rating"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"rating": rating})
}

func containsSignal(signals []string, name string) bool {
	for _, s := range signals {
		if s == name {
			return true
		}
	}
	return false
}
