package handlers

import (
	"context"
	"net/url"
	"watog/internal/db"
	"watog/internal/models"
	"watog/internal/services"
)

// AccountService is implemented by *services.AccountService.
type AccountService interface {
	Signup(ctx context.Context, in services.SignupInput) (*models.User, error)
	Login(ctx context.Context, identifier, password string) (string, *models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	Me(ctx context.Context, user *models.User) (*services.MeView, error)
	ListAccounts(ctx context.Context, query url.Values) ([]models.PublicUser, error)
	EditSelf(ctx context.Context, user *models.User, patch map[string]any) (*models.User, error)
}

// VerificationService is implemented by *services.VerificationService.
type VerificationService interface {
	RequestEmailCode(ctx context.Context, user *models.User) (string, error)
	RequestSMSCode(ctx context.Context, user *models.User) (string, error)
	RedeemEmail(ctx context.Context, code string) (*models.User, error)
	RedeemSMS(ctx context.Context, code string, user *models.User) (*models.User, error)
}

// PostService is implemented by *services.PostService.
type PostService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreatePost(ctx context.Context, user *models.User, in services.CreatePostInput) (*models.Post, error)
	GetPost(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context, filter db.PostFilter) ([]models.Post, error)
	Vote(ctx context.Context, user *models.User, postID uint, commend bool) (*models.Post, error)
	Report(ctx context.Context, user *models.User, postID uint, typ, description string) (*models.Report, error)
}
