package handler

import (
	"errors"
	"net/http"
	"strconv"

	"coldstart/internal/repository"
	"coldstart/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SummaryHandler interface {
	GetSummary(c *gin.Context)
	GetSummaryText(c *gin.Context)
	GetBriefing(c *gin.Context)
	GetComparison(c *gin.Context)
	ExportSummary(c *gin.Context)
}

type summaryHandler struct {
	summaries service.SummaryService
	exports   service.ExportService
	logger    *zap.Logger
}

func NewSummaryHandler(summaries service.SummaryService, exports service.ExportService, logger *zap.Logger) SummaryHandler {
	return &summaryHandler{summaries: summaries, exports: exports, logger: logger}
}

// GetSummary handles GET /api/venues/:id/summary, returning the VenueSummary as JSON.
func (h *summaryHandler) GetSummary(c *gin.Context) {
	venueID, ok := venueIDParam(c, h.logger)
	if !ok {
		return
	}

	sum, _, err := h.summaries.VenueSummary(venueID)
	if err != nil {
		h.writeSummaryError(c, venueID, err)
		return
	}

	c.JSON(http.StatusOK, sum)
}

// GetSummaryText handles GET /api/venues/:id/summary/text, the short recap.
func (h *summaryHandler) GetSummaryText(c *gin.Context) {
	venueID, ok := venueIDParam(c, h.logger)
	if !ok {
		return
	}

	text, err := h.summaries.SummaryText(venueID)
	if err != nil {
		h.writeSummaryError(c, venueID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

// GetBriefing handles GET /api/venues/:id/briefing, the shareable team variant.
func (h *summaryHandler) GetBriefing(c *gin.Context) {
	venueID, ok := venueIDParam(c, h.logger)
	if !ok {
		return
	}

	text, err := h.summaries.Briefing(venueID)
	if err != nil {
		h.writeSummaryError(c, venueID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

// GetComparison handles GET /api/venues/:id/comparison?signal=parking&personal_average=3.4
func (h *summaryHandler) GetComparison(c *gin.Context) {
	venueID, ok := venueIDParam(c, h.logger)
	if !ok {
		return
	}

	signal := c.Query("signal")
	if signal == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'signal' is required"})
		return
	}
	personalAvg, err := strconv.ParseFloat(c.Query("personal_average"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'personal_average' must be a number"})
		return
	}

	text, err := h.summaries.Comparison(venueID, signal, personalAvg)
	if err != nil {
		h.writeSummaryError(c, venueID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

// ExportSummary handles GET /api/venues/:id/export, an xlsx download.
func (h *summaryHandler) ExportSummary(c *gin.Context) {
	venueID, ok := venueIDParam(c, h.logger)
	if !ok {
		return
	}

	workbook, filename, err := h.exports.VenueWorkbook(venueID)
	if err != nil {
		h.writeSummaryError(c, venueID, err)
		return
	}

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		h.logger.Error("Failed to serialize workbook", zap.Int64("venue_id", venueID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export summary"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *summaryHandler) writeSummaryError(c *gin.Context, venueID int64, err error) {
	if errors.Is(err, repository.ErrVenueNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}
	h.logger.Error("Failed to build venue summary", zap.Int64("venue_id", venueID), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
}
