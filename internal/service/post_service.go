package service

import (
	"context"
	"strings"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
)

const (
	maxTitleLen   = 300
	maxContentLen = 50000
)

// PostService handles post lifecycle and the post like set.
type PostService struct {
	postRepo repository.PostRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID  uint
	Title   string
	Content string
	Image   string
}

type UpdatePostInput struct {
	ActorID      uint
	ActorIsAdmin bool
	PostID       uint
	Title        *string `json:"title"`
	Content      *string `json:"content"`
	Image        *string `json:"image"`
}

// NewPostService creates a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{postRepo: postRepo, isAdmin: isAdmin}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	post := &models.Post{
		Title:     in.Title,
		Content:   in.Content,
		Image:     in.Image,
		CreatedBy: in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset, currentUserID)
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.ListByUser(ctx, userID, limit, offset, currentUserID)
}

func (s *PostService) SearchPosts(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.postRepo.Search(ctx, query, limit, offset)
}

// authorize resolves the owner-or-admin rule against fresh store state.
// Existence is decided before permission, so a missing post is a not-found
// error even for callers that would not have been allowed.
func (s *PostService) authorize(ctx context.Context, actorID uint, actorIsAdmin bool, postID uint, action string) error {
	owner, err := s.postRepo.GetOwner(ctx, postID)
	if err != nil {
		return err
	}
	if owner == actorID || actorIsAdmin {
		return nil
	}
	if s.isAdmin != nil {
		admin, err := s.isAdmin(ctx, actorID)
		if err != nil {
			return err
		}
		if admin {
			return nil
		}
	}
	return models.NewForbiddenError("You can only " + action + " your own posts")
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if err := s.authorize(ctx, in.ActorID, in.ActorIsAdmin, in.PostID, "update"); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		if len(title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		fields["title"] = title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, models.NewValidationError("Content cannot be empty")
		}
		if len(*in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		fields["content"] = *in.Content
	}
	if in.Image != nil {
		fields["image"] = *in.Image
	}
	if len(fields) == 0 {
		return nil, models.NewValidationError("No updatable fields provided")
	}
	return s.postRepo.UpdateFields(ctx, in.PostID, fields)
}

func (s *PostService) DeletePost(ctx context.Context, actorID uint, actorIsAdmin bool, postID uint) error {
	if err := s.authorize(ctx, actorID, actorIsAdmin, postID, "delete"); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike flips the caller's membership in the post's like set and returns
// the post with the fresh count and set.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetOwner(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if liked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
		observability.LikeToggles.WithLabelValues("post", "unlike").Inc()
	} else {
		if err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return nil, err
		}
		observability.LikeToggles.WithLabelValues("post", "like").Inc()
	}
	return s.postRepo.GetByID(ctx, postID, userID)
}
