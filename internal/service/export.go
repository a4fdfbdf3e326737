package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExportService renders a venue's summary as an xlsx workbook for operators
// who want the numbers offline.
type ExportService interface {
	VenueWorkbook(venueID int64) (*excelize.File, string, error)
}

type exportService struct {
	summaries SummaryService
	logger    *zap.Logger
}

func NewExportService(summaries SummaryService, logger *zap.Logger) ExportService {
	return &exportService{summaries: summaries, logger: logger}
}

// VenueWorkbook builds the workbook and a suggested filename.
func (s *exportService) VenueWorkbook(venueID int64) (*excelize.File, string, error) {
	sum, venue, err := s.summaries.VenueSummary(venueID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Summary"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "Venue")
	f.SetCellValue(sheet, "B1", venue.Name)
	f.SetCellValue(sheet, "A2", "Verdict")
	f.SetCellValue(sheet, "B2", sum.Verdict)
	f.SetCellValue(sheet, "A3", "Contributions")
	f.SetCellValue(sheet, "B3", sum.ContributionCount)
	if sum.LastUpdatedAt != nil {
		f.SetCellValue(sheet, "A4", "Last updated")
		f.SetCellValue(sheet, "B4", sum.LastUpdatedAt.Format("2006-01-02"))
	}

	headers := []string{"Signal", "Mean", "Count", "Confidence", "Stddev"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 6)
		f.SetCellValue(sheet, cell, h)
	}
	for i, sig := range sum.Signals {
		row := 7 + i
		values := []interface{}{sig.SignalName, sig.MeanValue, sig.Count, sig.Confidence, sig.Stddev}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	if len(sum.Tips) > 0 {
		tipSheet := "Tips"
		if _, err := f.NewSheet(tipSheet); err != nil {
			s.logger.Error("Failed to add tips sheet", zap.Error(err))
			return nil, "", err
		}
		f.SetCellValue(tipSheet, "A1", "Posted")
		f.SetCellValue(tipSheet, "B1", "Author")
		f.SetCellValue(tipSheet, "C1", "Tip")
		f.SetCellValue(tipSheet, "D1", "Flags")
		f.SetCellValue(tipSheet, "E1", "Operator response")
		for i, tip := range sum.Tips {
			row := i + 2
			f.SetCellValue(tipSheet, fmt.Sprintf("A%d", row), tip.CreatedAt.Format("2006-01-02"))
			f.SetCellValue(tipSheet, fmt.Sprintf("B%d", row), tip.AuthorName)
			f.SetCellValue(tipSheet, fmt.Sprintf("C%d", row), tip.Text)
			f.SetCellValue(tipSheet, fmt.Sprintf("D%d", row), tip.FlagCount)
			if tip.OperatorResponse != nil {
				f.SetCellValue(tipSheet, fmt.Sprintf("E%d", row), tip.OperatorResponse.Text)
			}
		}
	}

	filename := fmt.Sprintf("coldstart-venue-%d.xlsx", venueID)
	return f, filename, nil
}
