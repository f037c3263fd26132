package models

import (
	"time"
)

const (
	VerifyTypeEmail = "email"
	VerifyTypeSMS   = "sms"
)

// Verify is a one-time verification code. Rows are kept after redemption;
// replays are rejected by the owner's *_verified_date, not by the row.
type Verify struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Type      string    `gorm:"size:10;not null;index:idx_verify_code" json:"type"`
	Code      string    `gorm:"size:32;not null;index:idx_verify_code" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
