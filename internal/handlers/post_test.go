package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"watog/internal/db"
	"watog/internal/models"
	"watog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_JSON(t *testing.T) {
	var got services.CreatePostInput
	posts := &fakePosts{
		createPost: func(ctx context.Context, user *models.User, in services.CreatePostInput) (*models.Post, error) {
			got = in
			return &models.Post{ID: 3, Picture: in.Picture, CategoryID: in.CategoryID, UserID: user.ID}, nil
		},
	}
	r := newEngine()
	r.POST("/posts", withUser, NewPostHandler(posts).Create)

	w := doJSON(r, http.MethodPost, "/posts", `{"picture":"https://a.io/x.png","description":"hi","category_id":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://a.io/x.png", got.Picture)
	assert.Equal(t, uint(2), got.CategoryID)
	assert.Nil(t, got.Upload)

	w = doJSON(r, http.MethodPost, "/posts", `{"picture":"https://a.io/x.png"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status":false,"error":{"msg":"Invalid request","data":{"category_id":"required"}}}`, w.Body.String())
}

func TestCreatePost_Multipart(t *testing.T) {
	var uploaded []byte
	posts := &fakePosts{
		createPost: func(ctx context.Context, user *models.User, in services.CreatePostInput) (*models.Post, error) {
			require.NotNil(t, in.Upload)
			uploaded, _ = io.ReadAll(in.Upload)
			return &models.Post{ID: 4, CategoryID: in.CategoryID}, nil
		},
	}
	r := newEngine()
	r.POST("/posts", withUser, NewPostHandler(posts).Create)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("category_id", "1"))
	require.NoError(t, mw.WriteField("description", "ward round"))
	part, err := mw.CreateFormFile("picture", "a.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/posts", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), uploaded)
}

func TestListPosts(t *testing.T) {
	var got db.PostFilter
	posts := &fakePosts{
		listPosts: func(ctx context.Context, filter db.PostFilter) ([]models.Post, error) {
			got = filter
			return []models.Post{{ID: 1}}, nil
		},
	}
	r := newEngine()
	r.GET("/posts", withUser, NewPostHandler(posts).List)

	w := doJSON(r, http.MethodGet, "/posts?category_id=2&limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, db.PostFilter{CategoryID: 2, Limit: 5}, got)

	w = doJSON(r, http.MethodGet, "/posts?limit=ten", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostDetail(t *testing.T) {
	posts := &fakePosts{
		getPost: func(ctx context.Context, id uint) (*models.Post, error) {
			if id == 1 {
				return &models.Post{ID: 1, DescriptionHTML: "<p>hi</p>"}, nil
			}
			return nil, services.ErrPostNotFound
		},
	}
	r := newEngine()
	r.GET("/posts/:id", withUser, NewPostHandler(posts).Detail)

	w := doJSON(r, http.MethodGet, "/posts/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<p>hi</p>", decode(t, w)["data"].(map[string]any)["description_html"])

	w = doJSON(r, http.MethodGet, "/posts/2", "")
	assert.JSONEq(t, `{"status":false,"error":"post_not_found"}`, w.Body.String())
}

func TestVoteAndReport(t *testing.T) {
	voted := false
	posts := &fakePosts{
		vote: func(ctx context.Context, user *models.User, postID uint, commend bool) (*models.Post, error) {
			if voted {
				return nil, services.ErrAlreadyVoted
			}
			voted = true
			return &models.Post{ID: postID, UpVoteCount: 1, VoteScore: 1}, nil
		},
		report: func(ctx context.Context, user *models.User, postID uint, typ, description string) (*models.Report, error) {
			if typ != "spam" {
				return nil, services.ErrInvalidReportType
			}
			return &models.Report{ID: 1, PostID: postID, UserID: user.ID, Type: typ}, nil
		},
	}
	r := newEngine()
	h := NewVoteHandler(posts)
	r.POST("/posts/:id/vote", withUser, h.Vote)
	r.POST("/posts/:id/report", withUser, h.Report)

	w := doJSON(r, http.MethodPost, "/posts/7/vote", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/posts/7/vote", `{"commend":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["data"].(map[string]any)["up_vote_count"])

	w = doJSON(r, http.MethodPost, "/posts/7/vote", `{"commend":false}`)
	assert.JSONEq(t, `{"status":false,"error":"already_voted"}`, w.Body.String())

	w = doJSON(r, http.MethodPost, "/posts/7/report", `{"type":"rude"}`)
	assert.JSONEq(t, `{"status":false,"error":"invalid_report_type"}`, w.Body.String())

	w = doJSON(r, http.MethodPost, "/posts/7/report", `{"type":"spam","description":"ads"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListCategories(t *testing.T) {
	posts := &fakePosts{
		listCategories: func(ctx context.Context) ([]models.Category, error) {
			return []models.Category{{ID: 1, Type: "surgery"}}, nil
		},
	}
	r := newEngine()
	r.GET("/categories", NewCategoryHandler(posts).List)

	w := doJSON(r, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)
}
