package service

import (
	"context"
	"time"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
)

// ReportService builds activity reports over a date range.
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new ReportService.
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// ActivityReport returns all posts and comments created inside [start, end].
// The end bound is inclusive through the whole day when it carries no time
// component, matching how callers pass plain dates.
func (s *ReportService) ActivityReport(ctx context.Context, start, end time.Time) (*models.ActivityReport, error) {
	if end.Before(start) {
		return nil, models.NewValidationError("endDate must not be before startDate")
	}
	defer observability.ObserveReport(time.Now())

	if end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}

	posts, err := s.reportRepo.PostsInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	comments, err := s.reportRepo.CommentsInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.ReportPost{}
	}
	if comments == nil {
		comments = []models.ReportComment{}
	}
	return &models.ActivityReport{Posts: posts, Comments: comments}, nil
}
