package db

import (
	"context"
	"watog/internal/models"
)

func (s *Store) CreateVerify(ctx context.Context, verify *models.Verify) error {
	return s.db.WithContext(ctx).Create(verify).Error
}

// FindVerify returns the newest code of the given type. When userID is
// non-nil the lookup is restricted to codes owned by that user.
func (s *Store) FindVerify(ctx context.Context, code, typ string, userID *uint) (*models.Verify, error) {
	query := s.db.WithContext(ctx).Where("code = ? AND type = ?", code, typ)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var verify models.Verify
	if err := query.Order("created_at DESC").First(&verify).Error; err != nil {
		return nil, notFound(err)
	}
	return &verify, nil
}
