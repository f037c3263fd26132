package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"watog/internal/db"
	"watog/internal/logger"
	"watog/internal/models"
	"watog/internal/utils"
)

// SignupInput carries the validated signup payload.
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	UserName  *string
	CellPhone string
	Country   string
	Hospital  string
}

// AccountService handles signup, login and the authentication gate.
type AccountService struct {
	store  UserStore
	tokens *TokenService
}

func NewAccountService(store UserStore, tokens *TokenService) *AccountService {
	return &AccountService{store: store, tokens: tokens}
}

func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if in.UserName != nil && strings.TrimSpace(*in.UserName) == "" {
		in.UserName = nil
	}
	if in.UserName != nil && !validUserName(*in.UserName) {
		return nil, ErrInvalidUserName
	}

	exists, err := s.store.UserExists(ctx, in.Email, in.UserName)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:     in.Email,
		Password:  hash,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		UserName:  in.UserName,
		CellPhone: in.CellPhone,
		Country:   in.Country,
		Hospital:  in.Hospital,
		Settings:  models.DefaultSettings,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		// 并发注册时由唯一索引兜底
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Log.Infow("user signed up", "user_id", user.ID)
	return user, nil
}

// 用户名不能长得像邮箱，否则会和别人的邮箱登录冲突
func validUserName(name string) bool {
	return !strings.Contains(name, "@")
}

// Login accepts either the email or the user name as identifier.
func (s *AccountService) Login(ctx context.Context, identifier, password string) (string, *models.User, error) {
	if identifier == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.store.FindUserByLogin(ctx, identifier)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// Authenticate resolves a bearer token to a live account.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	email, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidUser
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *AccountService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
