package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"watog/internal/db"
	"watog/internal/logger"
	"watog/internal/models"
)

// Keys the client may never set through self-edit.
var strippedFields = []string{
	"password",
	"email_verified_date",
	"sms_verified_date",
	"proof_of_status_date",
}

var editableFields = []string{
	"first_name",
	"last_name",
	"user_name",
	"cell_phone",
	"country",
	"hospital",
	"picture_profile",
	"picture_cover",
	"settings",
}

// EditSelf validates the whole patch before applying any of it. Unknown
// keys are ignored.
func (s *AccountService) EditSelf(ctx context.Context, user *models.User, patch map[string]any) (*models.User, error) {
	for _, key := range strippedFields {
		delete(patch, key)
	}

	updates := make(map[string]any)
	for _, key := range editableFields {
		value, ok := patch[key]
		if !ok {
			continue
		}

		switch key {
		case "settings":
			str, ok := value.(string)
			if !ok || !json.Valid([]byte(str)) {
				return nil, ErrInvalidSettings
			}
			updates[key] = str
		case "user_name":
			// null or "" clears the alias
			if value == nil {
				updates[key] = nil
				continue
			}
			str, ok := value.(string)
			if !ok {
				return nil, ErrInvalidField
			}
			if str == "" {
				updates[key] = nil
			} else if !validUserName(str) {
				return nil, ErrInvalidUserName
			} else {
				updates[key] = str
			}
		case "cell_phone":
			str, ok := value.(string)
			if !ok {
				return nil, ErrInvalidField
			}
			updates[key] = str
			// a new number must be verified again
			if str != user.CellPhone && user.SmsVerifiedDate != nil {
				updates["sms_verified_date"] = nil
			}
		default:
			str, ok := value.(string)
			if !ok {
				return nil, ErrInvalidField
			}
			updates[key] = str
		}
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.store.UpdateUser(ctx, user, updates); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	logger.Log.Infow("profile updated", "user_id", user.ID, "fields", len(updates))

	updated, err := s.store.FindUserByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	return updated, nil
}
