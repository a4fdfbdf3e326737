package handler

import (
	"errors"
	"net/http"
	"strconv"

	"coldstart/internal/config"
	"coldstart/internal/models"
	"coldstart/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VenueHandler interface {
	CreateVenue(c *gin.Context)
	ListVenues(c *gin.Context)
	GetVenueByID(c *gin.Context)
}

type venueHandler struct {
	venueRepo repository.VenueRepository
	cfg       *config.Config
	logger    *zap.Logger
}

func NewVenueHandler(venueRepo repository.VenueRepository, cfg *config.Config, logger *zap.Logger) VenueHandler {
	return &venueHandler{venueRepo: venueRepo, cfg: cfg, logger: logger}
}

// CreateVenue handles POST /api/venues
func (h *venueHandler) CreateVenue(c *gin.Context) {
	var req models.CreateVenueInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for venue creation", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := h.cfg.CategoryConfig(req.Category); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category: " + req.Category})
		return
	}

	venue := &models.Venue{
		Name:     req.Name,
		Category: req.Category,
		City:     req.City,
		Address:  req.Address,
	}
	if err := h.venueRepo.CreateVenue(venue); err != nil {
		h.logger.Error("Failed to create venue", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create venue"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"venue": venue})
}

// ListVenues handles GET /api/venues
// Query parameters:
// - category: filter by category (optional)
// - city: filter by city (optional)
func (h *venueHandler) ListVenues(c *gin.Context) {
	category := c.Query("category")
	city := c.Query("city")

	venues, err := h.venueRepo.ListVenues(category, city)
	if err != nil {
		h.logger.Error("Failed to list venues", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve venues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"venues": venues})
}

// GetVenueByID handles GET /api/venues/:id
func (h *venueHandler) GetVenueByID(c *gin.Context) {
	id, ok := venueIDParam(c, h.logger)
	if !ok {
		return
	}

	venue, err := h.venueRepo.GetVenueByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
			return
		}
		h.logger.Error("Failed to get venue", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve venue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"venue": venue})
}

// venueIDParam parses the :id path parameter, writing the 400 response itself
// when the value is not numeric.
func venueIDParam(c *gin.Context, logger *zap.Logger) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid venue ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid venue ID"})
		return 0, false
	}
	return id, true
}
