package db

import (
	"context"
	"errors"
	"strings"
	"watog/internal/models"
)

// UserFilter 用户列表查询条件，空字段不参与过滤
type UserFilter struct {
	Limit     int
	Offset    int
	FirstName string
	LastName  string
	Country   string
	Hospital  string
	Name      string // 同时匹配 first_name / last_name
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return duplicate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *Store) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// FindUserByLogin matches the identifier against email first, then user name.
// An email match always wins over another account's user name.
func (s *Store) FindUserByLogin(ctx context.Context, identifier string) (*models.User, error) {
	user, err := s.FindUserByEmail(ctx, identifier)
	if !errors.Is(err, ErrNotFound) {
		return user, err
	}

	var byName models.User
	if err := s.db.WithContext(ctx).Where("user_name = ?", identifier).First(&byName).Error; err != nil {
		return nil, notFound(err)
	}
	return &byName, nil
}

// UserExists reports whether the email, or the user name when given, is taken.
// The email is also checked against existing user names.
func (s *Store) UserExists(ctx context.Context, email string, userName *string) (bool, error) {
	query := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ? OR user_name = ?", email, email)
	if userName != nil && *userName != "" {
		query = query.Or("user_name = ?", *userName)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User, updates map[string]any) error {
	return duplicate(s.db.WithContext(ctx).Model(user).Updates(updates).Error)
}

// CountUsersAbove counts users with a strictly greater vote score.
func (s *Store) CountUsersAbove(ctx context.Context, score float64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("vote_score > ?", score).
		Count(&count).Error
	return count, err
}

func (s *Store) ListUsers(ctx context.Context, filter UserFilter) ([]models.PublicUser, error) {
	query := s.db.WithContext(ctx).Model(&models.User{}).Select(models.PublicUserColumns)

	if filter.FirstName != "" {
		query = query.Where("first_name = ?", filter.FirstName)
	}
	if filter.LastName != "" {
		query = query.Where("last_name = ?", filter.LastName)
	}
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}
	if filter.Hospital != "" {
		query = query.Where("hospital = ?", filter.Hospital)
	}
	if filter.Name != "" {
		like := "%" + escapeLike(strings.ToLower(filter.Name)) + "%"
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like)
	}

	users := make([]models.PublicUser, 0)
	err := query.Order("id").Limit(filter.Limit).Offset(filter.Offset).Find(&users).Error
	return users, err
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return r.Replace(s)
}
