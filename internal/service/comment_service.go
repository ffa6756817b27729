package service

import (
	"context"
	"strings"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
)

const maxCommentLen = 10000

// CommentService handles comment lifecycle and the comment like set.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo, isAdmin: isAdmin}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Content too long (max 10000 characters)")
	}

	// The parent post must exist before we attach anything to it.
	if _, err := s.postRepo.GetOwner(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: in.Content,
		UserID:  in.UserID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID, in.UserID)
}

func (s *CommentService) GetComment(ctx context.Context, id uint, currentUserID uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id, currentUserID)
}

func (s *CommentService) GetPostComments(ctx context.Context, postID uint, currentUserID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetOwner(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, currentUserID)
}

// authorize resolves the comment guard against fresh store state: admins, the
// comment's author and the parent post's owner may act. Existence is decided
// before permission.
func (s *CommentService) authorize(ctx context.Context, actorID uint, actorIsAdmin bool, commentID uint, action string) error {
	own, err := s.commentRepo.GetOwnership(ctx, commentID)
	if err != nil {
		return err
	}
	if actorIsAdmin || own.CommentOwner == actorID || own.PostOwner == actorID {
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
	return models.NewForbiddenError("You cannot " + action + " this comment")
}

func (s *CommentService) UpdateComment(ctx context.Context, actorID uint, actorIsAdmin bool, commentID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Content too long (max 10000 characters)")
	}
	if err := s.authorize(ctx, actorID, actorIsAdmin, commentID, "update"); err != nil {
		return nil, err
	}
	return s.commentRepo.Update(ctx, commentID, content)
}

func (s *CommentService) DeleteComment(ctx context.Context, actorID uint, actorIsAdmin bool, commentID uint) error {
	if err := s.authorize(ctx, actorID, actorIsAdmin, commentID, "delete"); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}

// ToggleLike flips the caller's membership in the comment's like set and
// returns the comment with the fresh count and set.
func (s *CommentService) ToggleLike(ctx context.Context, userID, commentID uint) (*models.Comment, error) {
	if _, err := s.commentRepo.GetOwnership(ctx, commentID); err != nil {
		return nil, err
	}

	liked, err := s.commentRepo.IsLiked(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}
	if liked {
		if err := s.commentRepo.Unlike(ctx, userID, commentID); err != nil {
			return nil, err
		}
		observability.LikeToggles.WithLabelValues("comment", "unlike").Inc()
	} else {
		if err := s.commentRepo.Like(ctx, userID, commentID); err != nil {
			return nil, err
		}
		observability.LikeToggles.WithLabelValues("comment", "like").Inc()
	}
	return s.commentRepo.GetByID(ctx, commentID, userID)
}
