package service

import (
	"context"
	"testing"
	"time"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportRepoStub struct {
	postsInRangeFn    func(context.Context, time.Time, time.Time) ([]models.ReportPost, error)
	commentsInRangeFn func(context.Context, time.Time, time.Time) ([]models.ReportComment, error)
}

func (s *reportRepoStub) PostsInRange(ctx context.Context, start, end time.Time) ([]models.ReportPost, error) {
	return s.postsInRangeFn(ctx, start, end)
}
func (s *reportRepoStub) CommentsInRange(ctx context.Context, start, end time.Time) ([]models.ReportComment, error) {
	return s.commentsInRangeFn(ctx, start, end)
}

func noopReportRepo() *reportRepoStub {
	return &reportRepoStub{
		postsInRangeFn: func(context.Context, time.Time, time.Time) ([]models.ReportPost, error) {
			return nil, nil
		},
		commentsInRangeFn: func(context.Context, time.Time, time.Time) ([]models.ReportComment, error) {
			return nil, nil
		},
	}
}

func TestReportService_InvertedRange(t *testing.T) {
	t.Parallel()

	svc := NewReportService(noopReportRepo())
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -7)

	_, err := svc.ActivityReport(context.Background(), start, end)
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestReportService_EmptyRangesAreEmptySlices(t *testing.T) {
	t.Parallel()

	svc := NewReportService(noopReportRepo())
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	report, err := svc.ActivityReport(context.Background(), start, start.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.NotNil(t, report.Posts)
	assert.NotNil(t, report.Comments)
	assert.Empty(t, report.Posts)
	assert.Empty(t, report.Comments)
}

func TestReportService_EndDateCoversWholeDay(t *testing.T) {
	t.Parallel()

	var gotEnd time.Time
	repo := noopReportRepo()
	repo.postsInRangeFn = func(_ context.Context, _, end time.Time) ([]models.ReportPost, error) {
		gotEnd = end
		return nil, nil
	}
	svc := NewReportService(repo)

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
	_, err := svc.ActivityReport(context.Background(), start, end)
	require.NoError(t, err)

	assert.True(t, gotEnd.After(end.Add(23*time.Hour)),
		"a plain end date should include activity from that whole day")
}
