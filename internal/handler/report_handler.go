package handler

import (
	"time"

	"ppe-inventory-ws/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportRepo repository.ReportRepository
}

func NewReportHandler(reportRepo repository.ReportRepository) *ReportHandler {
	return &ReportHandler{reportRepo: reportRepo}
}

// GetMovement returns daily dispensed vs received totals for a date range.
// Defaults to the last 30 days. Rendering stays client-side.
// GET /api/v1/reports/movement?start_date=2026-08-01&end_date=2026-08-29
func (h *ReportHandler) GetMovement(c *fiber.Ctx) error {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -30)

	if s := c.Query("start_date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid start_date format, use YYYY-MM-DD"})
		}
		startDate = parsed
	}
	if e := c.Query("end_date"); e != "" {
		parsed, err := time.Parse("2006-01-02", e)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid end_date format, use YYYY-MM-DD"})
		}
		// Include the whole end day
		endDate = parsed.Add(24*time.Hour - time.Second)
	}

	data, err := h.reportRepo.GetMovement(startDate, endDate)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build movement report"})
	}

	return c.JSON(data)
}
