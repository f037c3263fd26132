package models

import (
	"time"
)

type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_vote_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_vote_user_post;index" json:"post_id"`
	Commend   bool      `gorm:"not null" json:"commend"` // true: up vote, false: down vote
	CreatedAt time.Time `json:"created_at"`
}
