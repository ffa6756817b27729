package service

import (
	"context"
	"testing"

	"quill/internal/models"
	"quill/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment) error
	getByIDFn      func(context.Context, uint, uint) (*models.Comment, error)
	getOwnershipFn func(context.Context, uint) (*repository.CommentOwnership, error)
	listByPostFn   func(context.Context, uint, uint) ([]*models.Comment, error)
	updateFn       func(context.Context, uint, string) (*models.Comment, error)
	deleteFn       func(context.Context, uint) error
	isLikedFn      func(context.Context, uint, uint) (bool, error)
	likeFn         func(context.Context, uint, uint) error
	unlikeFn       func(context.Context, uint, uint) error
	likeSetFn      func(context.Context, uint) ([]uint, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *commentRepoStub) GetOwnership(ctx context.Context, id uint) (*repository.CommentOwnership, error) {
	return s.getOwnershipFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID, currentUserID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, currentUserID)
}
func (s *commentRepoStub) Update(ctx context.Context, id uint, content string) (*models.Comment, error) {
	return s.updateFn(ctx, id, content)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) IsLiked(ctx context.Context, userID, commentID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, commentID)
}
func (s *commentRepoStub) Like(ctx context.Context, userID, commentID uint) error {
	return s.likeFn(ctx, userID, commentID)
}
func (s *commentRepoStub) Unlike(ctx context.Context, userID, commentID uint) error {
	return s.unlikeFn(ctx, userID, commentID)
}
func (s *commentRepoStub) LikeSet(ctx context.Context, commentID uint) ([]uint, error) {
	return s.likeSetFn(ctx, commentID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(context.Context, *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		getOwnershipFn: func(context.Context, uint) (*repository.CommentOwnership, error) {
			return &repository.CommentOwnership{CommentOwner: 1, PostOwner: 2}, nil
		},
		listByPostFn: func(context.Context, uint, uint) ([]*models.Comment, error) { return nil, nil },
		updateFn: func(_ context.Context, id uint, content string) (*models.Comment, error) {
			return &models.Comment{ID: id, Content: content}, nil
		},
		deleteFn:  func(context.Context, uint) error { return nil },
		isLikedFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
		likeFn:    func(context.Context, uint, uint) error { return nil },
		unlikeFn:  func(context.Context, uint, uint) error { return nil },
		likeSetFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
	}
}

func TestCommentService_CreateComment(t *testing.T) {
	t.Parallel()

	t.Run("missing parent post is 404", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		posts.getOwnerFn = func(_ context.Context, id uint) (uint, error) {
			return 0, models.NewNotFoundError("Post", id)
		}
		comments := noopCommentRepo()
		comments.createFn = func(context.Context, *models.Comment) error {
			t.Fatal("create must not run when the parent post is missing")
			return nil
		}
		svc := NewCommentService(comments, posts, notAdmin)
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 99, Content: "hi"})
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("blank content", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), noopPostRepo(), notAdmin)
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 5, Content: "   "})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("success stamps author and post", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		var created *models.Comment
		comments.createFn = func(_ context.Context, c *models.Comment) error {
			created = c
			c.ID = 3
			return nil
		}
		svc := NewCommentService(comments, noopPostRepo(), notAdmin)
		comment, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 5, Content: "hi"})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, uint(1), created.UserID)
		assert.Equal(t, uint(5), created.PostID)
		assert.Equal(t, uint(3), comment.ID)
	})
}

func TestCommentService_DeleteComment_Guard(t *testing.T) {
	t.Parallel()

	ownership := func(commentOwner, postOwner uint) func(context.Context, uint) (*repository.CommentOwnership, error) {
		return func(context.Context, uint) (*repository.CommentOwnership, error) {
			return &repository.CommentOwnership{CommentOwner: commentOwner, PostOwner: postOwner}, nil
		}
	}

	t.Run("missing comment is 404", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getOwnershipFn = func(_ context.Context, id uint) (*repository.CommentOwnership, error) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		svc := NewCommentService(comments, noopPostRepo(), notAdmin)
		err := svc.DeleteComment(context.Background(), 1, false, 99)
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("stranger forbidden, no mutation", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getOwnershipFn = ownership(1, 2)
		comments.deleteFn = func(context.Context, uint) error {
			t.Fatal("delete must not run when the guard denies")
			return nil
		}
		svc := NewCommentService(comments, noopPostRepo(), notAdmin)
		err := svc.DeleteComment(context.Background(), 3, false, 7)
		assertAppErrorCode(t, err, models.CodeForbidden)
	})

	t.Run("comment owner allowed", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getOwnershipFn = ownership(1, 2)
		svc := NewCommentService(comments, noopPostRepo(), notAdmin)
		require.NoError(t, svc.DeleteComment(context.Background(), 1, false, 7))
	})

	t.Run("parent post owner allowed", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getOwnershipFn = ownership(1, 2)
		svc := NewCommentService(comments, noopPostRepo(), notAdmin)
		require.NoError(t, svc.DeleteComment(context.Background(), 2, false, 7))
	})

	t.Run("admin allowed", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getOwnershipFn = ownership(1, 2)
		svc := NewCommentService(comments, noopPostRepo(), notAdmin)
		require.NoError(t, svc.DeleteComment(context.Background(), 3, true, 7))
	})
}

func TestCommentService_UpdateComment_ValidatesBeforeGuard(t *testing.T) {
	t.Parallel()

	comments := noopCommentRepo()
	comments.getOwnershipFn = func(context.Context, uint) (*repository.CommentOwnership, error) {
		t.Fatal("ownership lookup must not run for empty content")
		return nil, nil
	}
	svc := NewCommentService(comments, noopPostRepo(), notAdmin)
	_, err := svc.UpdateComment(context.Background(), 1, false, 7, "")
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestCommentService_ToggleLike_Pair(t *testing.T) {
	t.Parallel()

	likes := map[uint]bool{}
	comments := noopCommentRepo()
	comments.isLikedFn = func(_ context.Context, userID, _ uint) (bool, error) {
		return likes[userID], nil
	}
	comments.likeFn = func(_ context.Context, userID, _ uint) error {
		likes[userID] = true
		return nil
	}
	comments.unlikeFn = func(_ context.Context, userID, _ uint) error {
		delete(likes, userID)
		return nil
	}
	comments.getByIDFn = func(_ context.Context, id, _ uint) (*models.Comment, error) {
		return &models.Comment{ID: id, LikesCount: len(likes)}, nil
	}
	svc := NewCommentService(comments, noopPostRepo(), notAdmin)

	comment, err := svc.ToggleLike(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, comment.LikesCount)

	comment, err = svc.ToggleLike(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, comment.LikesCount)
}
