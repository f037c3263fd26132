package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"
	"time"
	"watog/internal/db"
	"watog/internal/logger"
	"watog/internal/models"
	"watog/internal/utils"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MaxPictureSize       = 10 << 20
	defaultPostListLimit = 20
	maxPostListLimit     = 100

	// 分类只在启动时写入，缓存可以放心拉长
	categoryCacheTTL = 10 * time.Minute
	categoryCacheKey = "categories"
)

// PictureStore persists uploaded picture bytes and returns a public URL.
type PictureStore interface {
	Put(ctx context.Context, data []byte, contentType, ext string) (string, error)
}

// CreatePostInput 发帖参数，Picture 与 Upload 二选一，Upload 优先
type CreatePostInput struct {
	Picture     string
	Upload      io.Reader
	Description string
	CategoryID  uint
}

type PostService struct {
	store        PostStore
	pictures     PictureStore
	banThreshold int
	categories   *utils.Cache[[]models.Category]
}

// NewPostService creates the post service. pictures may be nil when object
// storage is not configured; uploads are then rejected.
func NewPostService(store PostStore, pictures PictureStore, banThreshold int) *PostService {
	return &PostService{
		store:        store,
		pictures:     pictures,
		banThreshold: banThreshold,
		categories:   utils.NewCache[[]models.Category](1, categoryCacheTTL),
	}
}

func (s *PostService) ListCategories(ctx context.Context) ([]models.Category, error) {
	if categories, ok := s.categories.Get(categoryCacheKey); ok {
		return categories, nil
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.categories.Set(categoryCacheKey, categories)
	return categories, nil
}

// checkCategory uses the cached category list when present and falls back
// to the store otherwise.
func (s *PostService) checkCategory(ctx context.Context, id uint) error {
	if categories, ok := s.categories.Get(categoryCacheKey); ok {
		if slices.ContainsFunc(categories, func(c models.Category) bool { return c.ID == id }) {
			return nil
		}
	}

	if _, err := s.store.FindCategory(ctx, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("find category: %w", err)
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, user *models.User, in CreatePostInput) (*models.Post, error) {
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	picture, err := s.resolvePicture(ctx, in)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Picture:     picture,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		UserID:      user.ID,
	}
	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	logger.Log.Infow("post created", "post_id", post.ID, "user_id", user.ID)
	render(post)
	return post, nil
}

func (s *PostService) resolvePicture(ctx context.Context, in CreatePostInput) (string, error) {
	if in.Upload == nil {
		u, err := url.ParseRequestURI(strings.TrimSpace(in.Picture))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", ErrInvalidPicture
		}
		return u.String(), nil
	}

	if s.pictures == nil {
		return "", ErrUploadDisabled
	}

	data, err := io.ReadAll(io.LimitReader(in.Upload, MaxPictureSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxPictureSize {
		return "", ErrPictureTooLarge
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", ErrInvalidPicture
	}

	return s.pictures.Put(ctx, data, mtype.String(), mtype.Extension())
}

// GetPost hides banned posts.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.visiblePost(ctx, id)
	if err != nil {
		return nil, err
	}
	render(post)
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, filter db.PostFilter) ([]models.Post, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPostListLimit
	}
	filter.Limit = min(filter.Limit, maxPostListLimit)
	filter.Offset = max(filter.Offset, 0)

	posts, err := s.store.ListPosts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	for i := range posts {
		render(&posts[i])
	}
	return posts, nil
}

// Vote records a single up or down vote and returns the updated post.
func (s *PostService) Vote(ctx context.Context, user *models.User, postID uint, commend bool) (*models.Post, error) {
	post, err := s.visiblePost(ctx, postID)
	if err != nil {
		return nil, err
	}

	vote := &models.Vote{UserID: user.ID, PostID: post.ID, Commend: commend}
	if err := s.store.CreateVote(ctx, vote, post.UserID); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrAlreadyVoted
		}
		return nil, fmt.Errorf("create vote: %w", err)
	}

	return s.GetPost(ctx, post.ID)
}

func (s *PostService) Report(ctx context.Context, user *models.User, postID uint, typ, description string) (*models.Report, error) {
	if !slices.Contains(models.ReportTypes, typ) {
		return nil, ErrInvalidReportType
	}

	post, err := s.visiblePost(ctx, postID)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		UserID:      user.ID,
		PostID:      post.ID,
		Type:        typ,
		Description: description,
	}
	banned, err := s.store.CreateReport(ctx, report, s.banThreshold)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrAlreadyReported
		}
		return nil, fmt.Errorf("create report: %w", err)
	}
	if banned {
		logger.Log.Warnw("post banned after reports", "post_id", post.ID, "threshold", s.banThreshold)
	}
	return report, nil
}

func (s *PostService) visiblePost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.store.FindPost(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	if post.Banned {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func render(post *models.Post) {
	post.DescriptionHTML = utils.RenderMarkdown(post.Description)
}
