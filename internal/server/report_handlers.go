package server

import (
	"time"

	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetReport handles GET /api/report?startDate&endDate. Admin only.
func (s *Server) GetReport(c *fiber.Ctx) error {
	start, err := parseReportDate(c.Query("startDate"))
	if err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid or missing startDate (expected YYYY-MM-DD)"))
	}
	end, err := parseReportDate(c.Query("endDate"))
	if err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid or missing endDate (expected YYYY-MM-DD)"))
	}

	report, err := s.reportService.ActivityReport(c.UserContext(), start, end)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(report)
}

func parseReportDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}
