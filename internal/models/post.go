// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents an authored post. CreatedBy is immutable after creation.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Image    string `json:"image,omitempty"`
	CreatedBy uint  `gorm:"column:createdby;not null;index" json:"createdby"`
	User     User   `gorm:"foreignKey:CreatedBy" json:"user,omitempty"`
	// Author is the owning user's username, joined at query time.
	Author string `gorm:"->" json:"author,omitempty"`
	// LikesCount and CommentsCount are not persisted; computed at query time.
	LikesCount    int `gorm:"->" json:"likes_count"`
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the requesting user liked this post (computed).
	Liked bool `gorm:"->" json:"liked"`
	// Likes is the set of user IDs that liked the post; populated on detail
	// and toggle responses only.
	Likes     []uint         `gorm:"-" json:"likes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
