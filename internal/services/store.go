package services

import (
	"context"
	"watog/internal/db"
	"watog/internal/models"
)

// UserStore is the persistence surface used by the account services.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByLogin(ctx context.Context, identifier string) (*models.User, error)
	UserExists(ctx context.Context, email string, userName *string) (bool, error)
	UpdateUser(ctx context.Context, user *models.User, updates map[string]any) error
	CountUsersAbove(ctx context.Context, score float64) (int64, error)
	ListUsers(ctx context.Context, filter db.UserFilter) ([]models.PublicUser, error)
	TopPostsByUser(ctx context.Context, userID uint, limit int) ([]models.Post, error)
}

type VerifyStore interface {
	CreateVerify(ctx context.Context, verify *models.Verify) error
	FindVerify(ctx context.Context, code, typ string, userID *uint) (*models.Verify, error)
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User, updates map[string]any) error
}

type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) error
	FindPost(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context, filter db.PostFilter) ([]models.Post, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	FindCategory(ctx context.Context, id uint) (*models.Category, error)
	CreateVote(ctx context.Context, vote *models.Vote, ownerID uint) error
	CreateReport(ctx context.Context, report *models.Report, banThreshold int) (bool, error)
}
