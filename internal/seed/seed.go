// Package seed populates the database with fake data for development.
package seed

import (
	"fmt"
	"log"
	"math/rand"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the login password of every seeded account.
const DefaultPassword = "password123"

// Seeder generates fake users, posts, comments and likes.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a Seeder against the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll removes all seeded data. Hard deletes so reseeding starts clean.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.CommentLike{},
		&models.PostLike{},
		&models.Comment{},
		&models.Post{},
		&models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	log.Println("database cleared")
	return nil
}

// SeedUsers creates n accounts plus one known admin (admin@quill.dev).
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := []models.User{{
		FirstName: "Ada",
		LastName:  "Admin",
		Username:  "admin",
		Email:     "admin@quill.dev",
		Password:  string(hash),
		IsAdmin:   true,
	}}
	for i := 0; i < n; i++ {
		users = append(users, models.User{
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Username:  fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:     fmt.Sprintf("user%d_%s", i, gofakeit.Email()),
			Password:  string(hash),
		})
	}

	if err := s.db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("seeding users: %w", err)
	}
	log.Printf("seeded %d users", len(users))
	return users, nil
}

// SeedContent creates posts with comments and like sets spread across users.
func (s *Seeder) SeedContent(users []models.User, numPosts int) error {
	if len(users) == 0 {
		return fmt.Errorf("no users to attach content to")
	}

	var posts []models.Post
	for i := 0; i < numPosts; i++ {
		posts = append(posts, models.Post{
			Title:     gofakeit.Sentence(5),
			Content:   gofakeit.Paragraph(1, 3, 12, " "),
			CreatedBy: users[rand.Intn(len(users))].ID,
		})
	}
	if err := s.db.Create(&posts).Error; err != nil {
		return fmt.Errorf("seeding posts: %w", err)
	}

	var comments []models.Comment
	var postLikes []models.PostLike
	var commentLikes []models.CommentLike

	for _, post := range posts {
		for i := 0; i < rand.Intn(5); i++ {
			comments = append(comments, models.Comment{
				Content: gofakeit.Sentence(10),
				UserID:  users[rand.Intn(len(users))].ID,
				PostID:  post.ID,
			})
		}
		for i := 0; i < rand.Intn(8); i++ {
			postLikes = append(postLikes, models.PostLike{
				UserID: users[rand.Intn(len(users))].ID,
				PostID: post.ID,
			})
		}
	}
	if len(comments) > 0 {
		if err := s.db.Create(&comments).Error; err != nil {
			return fmt.Errorf("seeding comments: %w", err)
		}
	}
	for _, comment := range comments {
		for i := 0; i < rand.Intn(4); i++ {
			commentLikes = append(commentLikes, models.CommentLike{
				UserID:    users[rand.Intn(len(users))].ID,
				CommentID: comment.ID,
			})
		}
	}

	// Random pairs can collide; the conflict clause keeps the like sets proper sets.
	onConflict := clause.OnConflict{DoNothing: true}
	if len(postLikes) > 0 {
		if err := s.db.Clauses(onConflict).Create(&postLikes).Error; err != nil {
			return fmt.Errorf("seeding post likes: %w", err)
		}
	}
	if len(commentLikes) > 0 {
		if err := s.db.Clauses(onConflict).Create(&commentLikes).Error; err != nil {
			return fmt.Errorf("seeding comment likes: %w", err)
		}
	}

	log.Printf("seeded %d posts, %d comments, %d post likes, %d comment likes",
		len(posts), len(comments), len(postLikes), len(commentLikes))
	return nil
}
