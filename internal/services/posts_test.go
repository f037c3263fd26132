package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"watog/internal/db"
	"watog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func postStore() *fakeStore {
	return &fakeStore{
		findCategory: func(ctx context.Context, id uint) (*models.Category, error) {
			if id == 1 {
				return &models.Category{ID: 1, Type: "surgery"}, nil
			}
			return nil, db.ErrNotFound
		},
		createPost: func(ctx context.Context, post *models.Post) error {
			post.ID = 10
			return nil
		},
	}
}

func TestCreatePost_URL(t *testing.T) {
	svc := NewPostService(postStore(), nil, 10)

	post, err := svc.CreatePost(context.Background(), &models.User{ID: 2}, CreatePostInput{
		Picture:     "https://img.example.com/a.jpg",
		Description: "*first* shift",
		CategoryID:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(10), post.ID)
	assert.Equal(t, uint(2), post.UserID)
	assert.Contains(t, post.DescriptionHTML, "<em>first</em>")
}

func TestCreatePost_Rejects(t *testing.T) {
	svc := NewPostService(postStore(), nil, 10)

	tests := []struct {
		name    string
		in      CreatePostInput
		wantErr error
	}{
		{"unknown category", CreatePostInput{Picture: "https://a.io/x.png", CategoryID: 9}, ErrCategoryNotFound},
		{"bad url", CreatePostInput{Picture: "javascript:alert(1)", CategoryID: 1}, ErrInvalidPicture},
		{"empty picture", CreatePostInput{CategoryID: 1}, ErrInvalidPicture},
		{"upload without storage", CreatePostInput{Upload: bytes.NewReader(pngHeader), CategoryID: 1}, ErrUploadDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(context.Background(), &models.User{ID: 2}, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreatePost_Upload(t *testing.T) {
	pictures := &fakePictures{}
	svc := NewPostService(postStore(), pictures, 10)

	post, err := svc.CreatePost(context.Background(), &models.User{ID: 2}, CreatePostInput{
		Upload:     bytes.NewReader(pngHeader),
		CategoryID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "image/png", pictures.contentType)
	assert.Equal(t, ".png", pictures.ext)
	assert.Equal(t, "https://cdn.example.com/posts/x.png", post.Picture)
}

func TestCreatePost_UploadValidation(t *testing.T) {
	svc := NewPostService(postStore(), &fakePictures{}, 10)

	_, err := svc.CreatePost(context.Background(), &models.User{ID: 2}, CreatePostInput{
		Upload:     strings.NewReader("just some text"),
		CategoryID: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidPicture)

	big := append(append([]byte{}, pngHeader...), make([]byte, MaxPictureSize)...)
	_, err = svc.CreatePost(context.Background(), &models.User{ID: 2}, CreatePostInput{
		Upload:     bytes.NewReader(big),
		CategoryID: 1,
	})
	assert.ErrorIs(t, err, ErrPictureTooLarge)
}

func TestGetPost_HidesBanned(t *testing.T) {
	store := &fakeStore{
		findPost: func(ctx context.Context, id uint) (*models.Post, error) {
			switch id {
			case 1:
				return &models.Post{ID: 1}, nil
			case 2:
				return &models.Post{ID: 2, Banned: true}, nil
			}
			return nil, db.ErrNotFound
		},
	}
	svc := NewPostService(store, nil, 10)

	_, err := svc.GetPost(context.Background(), 1)
	assert.NoError(t, err)
	_, err = svc.GetPost(context.Background(), 2)
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = svc.GetPost(context.Background(), 3)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestListPosts_Limits(t *testing.T) {
	var got db.PostFilter
	store := &fakeStore{
		listPosts: func(ctx context.Context, filter db.PostFilter) ([]models.Post, error) {
			got = filter
			return []models.Post{{ID: 1, Description: "**hi**"}}, nil
		},
	}
	svc := NewPostService(store, nil, 10)

	posts, err := svc.ListPosts(context.Background(), db.PostFilter{Limit: 500, Offset: -3, CategoryID: 2})
	require.NoError(t, err)
	assert.Equal(t, db.PostFilter{Limit: 100, Offset: 0, CategoryID: 2}, got)
	assert.Contains(t, posts[0].DescriptionHTML, "<strong>hi</strong>")

	_, err = svc.ListPosts(context.Background(), db.PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, 20, got.Limit)
}

func TestVote(t *testing.T) {
	votes := map[uint]bool{}
	post := &models.Post{ID: 5, UserID: 8}
	store := &fakeStore{
		findPost: func(ctx context.Context, id uint) (*models.Post, error) {
			return post, nil
		},
		createVote: func(ctx context.Context, vote *models.Vote, ownerID uint) error {
			assert.Equal(t, uint(8), ownerID)
			if votes[vote.UserID] {
				return db.ErrDuplicate
			}
			votes[vote.UserID] = true
			post.UpVoteCount++
			post.VoteScore++
			return nil
		},
	}
	svc := NewPostService(store, nil, 10)

	updated, err := svc.Vote(context.Background(), &models.User{ID: 2}, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.UpVoteCount)

	_, err = svc.Vote(context.Background(), &models.User{ID: 2}, 5, false)
	assert.ErrorIs(t, err, ErrAlreadyVoted)
}

func TestReport(t *testing.T) {
	reported := map[uint]bool{}
	store := &fakeStore{
		findPost: func(ctx context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		createReport: func(ctx context.Context, report *models.Report, banThreshold int) (bool, error) {
			assert.Equal(t, 3, banThreshold)
			if reported[report.UserID] {
				return false, db.ErrDuplicate
			}
			reported[report.UserID] = true
			return len(reported) >= banThreshold, nil
		},
	}
	svc := NewPostService(store, nil, 3)

	_, err := svc.Report(context.Background(), &models.User{ID: 1}, 5, "rude", "")
	assert.ErrorIs(t, err, ErrInvalidReportType)

	report, err := svc.Report(context.Background(), &models.User{ID: 1}, 5, "spam", "ads")
	require.NoError(t, err)
	assert.Equal(t, "spam", report.Type)

	_, err = svc.Report(context.Background(), &models.User{ID: 1}, 5, "other", "")
	assert.ErrorIs(t, err, ErrAlreadyReported)
}

func TestListCategories_Cached(t *testing.T) {
	calls := 0
	store := postStore()
	store.listCategories = func(ctx context.Context) ([]models.Category, error) {
		calls++
		return []models.Category{{ID: 1, Type: "surgery"}, {ID: 2, Type: "pediatrics"}}, nil
	}
	store.findCategory = func(ctx context.Context, id uint) (*models.Category, error) {
		t.Fatal("cached category should not hit the store")
		return nil, nil
	}
	svc := NewPostService(store, nil, 10)

	for range 2 {
		categories, err := svc.ListCategories(context.Background())
		require.NoError(t, err)
		assert.Len(t, categories, 2)
	}
	assert.Equal(t, 1, calls)

	_, err := svc.CreatePost(context.Background(), &models.User{ID: 3}, CreatePostInput{
		Picture:    "https://img.example.com/a.jpg",
		CategoryID: 2,
	})
	require.NoError(t, err)
}

func TestListCategories_ErrorNotCached(t *testing.T) {
	calls := 0
	store := postStore()
	store.listCategories = func(ctx context.Context) ([]models.Category, error) {
		calls++
		if calls == 1 {
			return nil, assert.AnError
		}
		return []models.Category{{ID: 1}}, nil
	}
	svc := NewPostService(store, nil, 10)

	_, err := svc.ListCategories(context.Background())
	assert.ErrorIs(t, err, assert.AnError)

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 1)
	assert.Equal(t, 2, calls)
}
