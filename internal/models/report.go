package models

import "time"

// ReportPost is one post row in an activity report.
type ReportPost struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     uint      `json:"user_id"`
	FirstName  string    `gorm:"column:firstname" json:"firstname"`
	LastName   string    `gorm:"column:lastname" json:"lastname"`
}

// ReportComment is one comment row in an activity report.
type ReportComment struct {
	ID         uint      `json:"id"`
	PostID     uint      `json:"post_id"`
	Content    string    `json:"content"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     uint      `json:"user_id"`
	FirstName  string    `gorm:"column:firstname" json:"firstname"`
	LastName   string    `gorm:"column:lastname" json:"lastname"`
}

// ActivityReport aggregates posts and comments created inside a date range.
type ActivityReport struct {
	Posts    []ReportPost    `json:"posts"`
	Comments []ReportComment `json:"comments"`
}
