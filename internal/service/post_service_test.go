package service

import (
	"context"
	"strings"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, uint, uint) (*models.Post, error)
	getOwnerFn     func(context.Context, uint) (uint, error)
	listFn         func(context.Context, int, int, uint) ([]*models.Post, error)
	listByUserFn   func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	searchFn       func(context.Context, string, int, int) ([]*models.Post, error)
	updateFieldsFn func(context.Context, uint, map[string]interface{}) (*models.Post, error)
	deleteFn       func(context.Context, uint) error
	isLikedFn      func(context.Context, uint, uint) (bool, error)
	likeFn         func(context.Context, uint, uint) error
	unlikeFn       func(context.Context, uint, uint) error
	likeSetFn      func(context.Context, uint) ([]uint, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetOwner(ctx context.Context, id uint) (uint, error) {
	return s.getOwnerFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listByUserFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) Search(ctx context.Context, q string, limit, offset int) ([]*models.Post, error) {
	return s.searchFn(ctx, q, limit, offset)
}
func (s *postRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*models.Post, error) {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) LikeSet(ctx context.Context, postID uint) ([]uint, error) {
	return s.likeSetFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		getOwnerFn:   func(context.Context, uint) (uint, error) { return 1, nil },
		listFn:       func(context.Context, int, int, uint) ([]*models.Post, error) { return nil, nil },
		listByUserFn: func(context.Context, uint, int, int, uint) ([]*models.Post, error) { return nil, nil },
		searchFn:     func(context.Context, string, int, int) ([]*models.Post, error) { return nil, nil },
		updateFieldsFn: func(_ context.Context, id uint, _ map[string]interface{}) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		deleteFn:  func(context.Context, uint) error { return nil },
		isLikedFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
		likeFn:    func(context.Context, uint, uint) error { return nil },
		unlikeFn:  func(context.Context, uint, uint) error { return nil },
		likeSetFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
	}
}

func notAdmin(context.Context, uint) (bool, error) { return false, nil }

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   CreatePostInput
	}{
		{"missing title", CreatePostInput{UserID: 1, Content: "C"}},
		{"missing content", CreatePostInput{UserID: 1, Title: "T"}},
		{"blank title", CreatePostInput{UserID: 1, Title: "   ", Content: "C"}},
		{"title too long", CreatePostInput{UserID: 1, Title: strings.Repeat("x", 301), Content: "C"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			repo := noopPostRepo()
			repo.createFn = func(context.Context, *models.Post) error {
				t.Fatal("create must not be called on validation failure")
				return nil
			}
			_, err := NewPostService(repo, notAdmin).CreatePost(context.Background(), tc.in)
			assertAppErrorCode(t, err, models.CodeValidation)
		})
	}
}

func TestPostService_CreatePost_SetsOwner(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	var created *models.Post
	repo.createFn = func(_ context.Context, p *models.Post) error {
		created = p
		p.ID = 5
		return nil
	}

	post, err := NewPostService(repo, notAdmin).CreatePost(context.Background(), CreatePostInput{
		UserID: 7, Title: "T", Content: "C",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, uint(7), created.CreatedBy)
	assert.Equal(t, uint(5), post.ID)
}

func TestPostService_DeletePost_Guard(t *testing.T) {
	t.Parallel()

	t.Run("missing post is 404 even for strangers", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.getOwnerFn = func(_ context.Context, id uint) (uint, error) {
			return 0, models.NewNotFoundError("Post", id)
		}
		err := NewPostService(repo, notAdmin).DeletePost(context.Background(), 2, false, 99)
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("non-owner non-admin forbidden, no mutation", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.getOwnerFn = func(context.Context, uint) (uint, error) { return 1, nil }
		repo.deleteFn = func(context.Context, uint) error {
			t.Fatal("delete must not run when the guard denies")
			return nil
		}
		err := NewPostService(repo, notAdmin).DeletePost(context.Background(), 2, false, 5)
		assertAppErrorCode(t, err, models.CodeForbidden)
	})

	t.Run("owner allowed", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.getOwnerFn = func(context.Context, uint) (uint, error) { return 2, nil }
		require.NoError(t, NewPostService(repo, notAdmin).DeletePost(context.Background(), 2, false, 5))
	})

	t.Run("claim admin flag allowed", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.getOwnerFn = func(context.Context, uint) (uint, error) { return 1, nil }
		require.NoError(t, NewPostService(repo, notAdmin).DeletePost(context.Background(), 2, true, 5))
	})

	t.Run("fresh admin lookup allowed", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.getOwnerFn = func(context.Context, uint) (uint, error) { return 1, nil }
		isAdmin := func(_ context.Context, userID uint) (bool, error) { return userID == 2, nil }
		require.NoError(t, NewPostService(repo, isAdmin).DeletePost(context.Background(), 2, false, 5))
	})
}

func TestPostService_UpdatePost(t *testing.T) {
	t.Parallel()

	title := "New title"

	t.Run("non-owner forbidden before validation runs", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.getOwnerFn = func(context.Context, uint) (uint, error) { return 1, nil }
		_, err := NewPostService(repo, notAdmin).UpdatePost(context.Background(), UpdatePostInput{
			ActorID: 2, PostID: 5, Title: &title,
		})
		assertAppErrorCode(t, err, models.CodeForbidden)
	})

	t.Run("owner with no fields", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.getOwnerFn = func(context.Context, uint) (uint, error) { return 2, nil }
		_, err := NewPostService(repo, notAdmin).UpdatePost(context.Background(), UpdatePostInput{
			ActorID: 2, PostID: 5,
		})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("owner partial update", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.getOwnerFn = func(context.Context, uint) (uint, error) { return 2, nil }
		var gotFields map[string]interface{}
		repo.updateFieldsFn = func(_ context.Context, id uint, fields map[string]interface{}) (*models.Post, error) {
			gotFields = fields
			return &models.Post{ID: id, Title: "New title"}, nil
		}
		post, err := NewPostService(repo, notAdmin).UpdatePost(context.Background(), UpdatePostInput{
			ActorID: 2, PostID: 5, Title: &title,
		})
		require.NoError(t, err)
		assert.Equal(t, "New title", post.Title)
		assert.Equal(t, map[string]interface{}{"title": "New title"}, gotFields)
	})
}

func TestPostService_ToggleLike(t *testing.T) {
	t.Parallel()

	t.Run("missing post is 404", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.getOwnerFn = func(_ context.Context, id uint) (uint, error) {
			return 0, models.NewNotFoundError("Post", id)
		}
		_, err := NewPostService(repo, notAdmin).ToggleLike(context.Background(), 1, 99)
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("double toggle restores the original state", func(t *testing.T) {
		t.Parallel()
		likes := map[uint]bool{}
		repo := noopPostRepo()
		repo.isLikedFn = func(_ context.Context, userID, _ uint) (bool, error) {
			return likes[userID], nil
		}
		repo.likeFn = func(_ context.Context, userID, _ uint) error {
			likes[userID] = true
			return nil
		}
		repo.unlikeFn = func(_ context.Context, userID, _ uint) error {
			delete(likes, userID)
			return nil
		}
		repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, LikesCount: len(likes)}, nil
		}
		svc := NewPostService(repo, notAdmin)

		post, err := svc.ToggleLike(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.Equal(t, 1, post.LikesCount)

		post, err = svc.ToggleLike(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.Equal(t, 0, post.LikesCount)
	})
}

func TestPostService_SearchPosts_EmptyQuery(t *testing.T) {
	t.Parallel()

	_, err := NewPostService(noopPostRepo(), notAdmin).SearchPosts(context.Background(), "", 20, 0)
	assertAppErrorCode(t, err, models.CodeValidation)
}
