// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"time"

	"quill/internal/models"

	"gorm.io/gorm"
)

// ReportRepository aggregates activity inside a date range.
type ReportRepository interface {
	PostsInRange(ctx context.Context, start, end time.Time) ([]models.ReportPost, error)
	CommentsInRange(ctx context.Context, start, end time.Time) ([]models.ReportComment, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository returns a new ReportRepository implementation.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) PostsInRange(ctx context.Context, start, end time.Time) ([]models.ReportPost, error) {
	var rows []models.ReportPost
	err := r.db.WithContext(ctx).
		Table("posts").
		Select("posts.id, posts.title, posts.content, "+
			"(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) AS likes_count, "+
			"posts.created_at, users.id AS user_id, users.firstname, users.lastname").
		Joins("JOIN users ON users.id = posts.createdby").
		Where("posts.created_at BETWEEN ? AND ? AND posts.deleted_at IS NULL", start, end).
		Order("posts.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}

func (r *reportRepository) CommentsInRange(ctx context.Context, start, end time.Time) ([]models.ReportComment, error) {
	var rows []models.ReportComment
	err := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.post_id, comments.content, "+
			"(SELECT COUNT(*) FROM comment_likes WHERE comment_likes.comment_id = comments.id) AS likes_count, "+
			"comments.created_at, users.id AS user_id, users.firstname, users.lastname").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.created_at BETWEEN ? AND ? AND comments.deleted_at IS NULL", start, end).
		Order("comments.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}
