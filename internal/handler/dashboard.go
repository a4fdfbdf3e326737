package handler

import (
	"net/http"

	"coldstart/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler interface {
	GetDashboard(c *gin.Context)
}

type dashboardHandler struct {
	venueRepo  repository.VenueRepository
	ratingRepo repository.RatingRepository
	tipRepo    repository.TipRepository
	logger     *zap.Logger
}

func NewDashboardHandler(venueRepo repository.VenueRepository, ratingRepo repository.RatingRepository,
	tipRepo repository.TipRepository, logger *zap.Logger) DashboardHandler {
	return &dashboardHandler{venueRepo: venueRepo, ratingRepo: ratingRepo, tipRepo: tipRepo, logger: logger}
}

// DashboardStats represents the site-wide statistics for the dashboard
type DashboardStats struct {
	TotalVenues        int     `json:"total_venues"`
	TotalRatings       int     `json:"total_ratings"`
	TotalTips          int     `json:"total_tips"`
	RatingsPerVenue    float64 `json:"ratings_per_venue"`
	TotalContributions int     `json:"total_contributions"`
}

// GetDashboard handles GET /api/dashboard
func (h *dashboardHandler) GetDashboard(c *gin.Context) {
	venues, err := h.venueRepo.CountVenues()
	if err != nil {
		h.logger.Error("Failed to count venues for dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dashboard data"})
		return
	}

	ratings, err := h.ratingRepo.CountRatings()
	if err != nil {
		h.logger.Error("Failed to count ratings for dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dashboard data"})
		return
	}

	tips, err := h.tipRepo.CountTips()
	if err != nil {
		h.logger.Error("Failed to count tips for dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dashboard data"})
		return
	}

	perVenue := 0.0
	if venues > 0 {
		perVenue = float64(ratings) / float64(venues)
	}

	stats := DashboardStats{
		TotalVenues:        venues,
		TotalRatings:       ratings,
		TotalTips:          tips,
		RatingsPerVenue:    perVenue,
		TotalContributions: ratings + tips,
	}

	c.JSON(http.StatusOK, stats)
}
