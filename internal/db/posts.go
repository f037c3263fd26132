package db

import (
	"context"
	"errors"
	"watog/internal/models"

	"gorm.io/gorm"
)

// PostFilter 帖子列表查询条件
type PostFilter struct {
	CategoryID uint
	UserID     uint
	Limit      int
	Offset     int
}

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *Store) FindPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// ListPosts returns visible (not banned) posts, newest first.
func (s *Store) ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	query := s.db.WithContext(ctx).Where("banned = ?", false)
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}

	posts := make([]models.Post, 0)
	err := query.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&posts).Error
	return posts, err
}

// TopPostsByUser orders by up vote count only.
func (s *Store) TopPostsByUser(ctx context.Context, userID uint, limit int) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("up_vote_count DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	err := s.db.WithContext(ctx).Order("id").Find(&categories).Error
	return categories, err
}

func (s *Store) FindCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

// CreateVote stores the vote and applies it to the post counters and to
// the post owner's vote score in one transaction.
func (s *Store) CreateVote(ctx context.Context, vote *models.Vote, ownerID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Where("user_id = ? AND post_id = ?", vote.UserID, vote.PostID).First(&existing).Error
		if err == nil {
			return ErrDuplicate
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(vote).Error; err != nil {
			return duplicate(err)
		}

		delta := 1
		counter := "up_vote_count"
		if !vote.Commend {
			delta = -1
			counter = "down_vote_count"
		}

		if err := tx.Model(&models.Post{}).Where("id = ?", vote.PostID).UpdateColumns(map[string]any{
			counter:      gorm.Expr(counter+" + ?", 1),
			"vote_score": gorm.Expr("vote_score + ?", delta),
		}).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", ownerID).
			UpdateColumn("vote_score", gorm.Expr("vote_score + ?", delta)).
			Error
	})
}

// CreateReport stores the report, bumps the post's report counter and bans
// the post once the counter reaches banThreshold. It reports whether the
// post is banned afterwards.
func (s *Store) CreateReport(ctx context.Context, report *models.Report, banThreshold int) (bool, error) {
	var banned bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Report
		err := tx.Where("user_id = ? AND post_id = ?", report.UserID, report.PostID).First(&existing).Error
		if err == nil {
			return ErrDuplicate
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(report).Error; err != nil {
			return duplicate(err)
		}

		if err := tx.Model(&models.Post{}).Where("id = ?", report.PostID).
			UpdateColumn("report_count", gorm.Expr("report_count + ?", 1)).Error; err != nil {
			return err
		}

		if banThreshold <= 0 {
			return nil
		}
		res := tx.Model(&models.Post{}).
			Where("id = ? AND report_count >= ? AND banned = ?", report.PostID, banThreshold, false).
			UpdateColumn("banned", true)
		if res.Error != nil {
			return res.Error
		}
		banned = res.RowsAffected > 0
		return nil
	})
	return banned, err
}
