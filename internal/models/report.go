package models

import (
	"time"
)

// ReportTypes 允许的举报类型
var ReportTypes = []string{"spam", "violence", "sex", "other"}

type Report struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_report_user_post" json:"user_id"` // Reporter
	PostID      uint      `gorm:"not null;uniqueIndex:idx_report_user_post;index" json:"post_id"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	Description string    `gorm:"size:500" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
