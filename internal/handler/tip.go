package handler

import (
	"errors"
	"net/http"
	"strconv"

	"coldstart/internal/models"
	"coldstart/internal/notifier"
	"coldstart/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TipHandler interface {
	SubmitTip(c *gin.Context)
	FlagTip(c *gin.Context)
	RespondToTip(c *gin.Context)
}

type tipHandler struct {
	tipRepo   repository.TipRepository
	venueRepo repository.VenueRepository
	bot       *notifier.Bot
	logger    *zap.Logger
}

func NewTipHandler(tipRepo repository.TipRepository, venueRepo repository.VenueRepository,
	bot *notifier.Bot, logger *zap.Logger) TipHandler {
	return &tipHandler{tipRepo: tipRepo, venueRepo: venueRepo, bot: bot, logger: logger}
}

// SubmitTip handles POST /api/venues/:id/tips
func (h *tipHandler) SubmitTip(c *gin.Context) {
	venueID, ok := venueIDParam(c, h.logger)
	if !ok {
		return
	}

	var req models.CreateTipInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for tip", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	venue, err := h.venueRepo.GetVenueByID(venueID)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
			return
		}
		h.logger.Error("Failed to get venue for tip", zap.Int64("venue_id", venueID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit tip"})
		return
	}

	authorID := c.MustGet("user_id").(int64)
	tip := &models.TipRow{
		VenueID:         venueID,
		Text:            req.Text,
		ContributorType: req.ContributorType,
		Context:         req.Context,
		AuthorID:        &authorID,
	}
	if err := h.tipRepo.InsertTip(tip); err != nil {
		h.logger.Error("Failed to insert tip", zap.Int64("venue_id", venueID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit tip"})
		return
	}

	h.bot.TipPosted(venue.Name, tip.Text)

	c.JSON(http.StatusCreated, gin.H{"tip": tip})
}

// FlagTip handles POST /api/tips/:id/flag
func (h *tipHandler) FlagTip(c *gin.Context) {
	tipID, ok := tipIDParam(c, h.logger)
	if !ok {
		return
	}

	if err := h.tipRepo.FlagTip(tipID); err != nil {
		if errors.Is(err, repository.ErrTipNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tip not found"})
			return
		}
		h.logger.Error("Failed to flag tip", zap.Int64("tip_id", tipID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to flag tip"})
		return
	}

	h.bot.TipFlagged("a venue you operate", tipID)

	c.JSON(http.StatusOK, gin.H{"message": "Tip flagged"})
}

// RespondToTip handles POST /api/tips/:id/response. Operator-only; the role
// check happens in the route group middleware.
func (h *tipHandler) RespondToTip(c *gin.Context) {
	tipID, ok := tipIDParam(c, h.logger)
	if !ok {
		return
	}

	var req models.OperatorResponseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for operator response", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := c.MustGet("username").(string)
	role := c.MustGet("role").(string)

	if err := h.tipRepo.AddOperatorResponse(tipID, req.Text, username, role); err != nil {
		if errors.Is(err, repository.ErrTipNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tip not found or already answered"})
			return
		}
		h.logger.Error("Failed to add operator response", zap.Int64("tip_id", tipID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Response added"})
}

func tipIDParam(c *gin.Context, logger *zap.Logger) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid tip ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tip ID"})
		return 0, false
	}
	return id, true
}
