package models

import (
	"time"
)

type Post struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Picture       string    `gorm:"not null" json:"picture"`
	Description   string    `gorm:"type:text" json:"description"`
	CategoryID    uint      `gorm:"not null;index" json:"category_id"`
	Category      Category  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	User          User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	VoteScore     float64   `gorm:"default:0" json:"vote_score"` // up_vote_count - down_vote_count
	UpVoteCount   int       `gorm:"not null;default:0;index" json:"up_vote_count"`
	DownVoteCount int       `gorm:"not null;default:0" json:"down_vote_count"`
	ReportCount   int       `gorm:"not null;default:0" json:"report_count"`
	Banned        bool      `gorm:"default:false;index" json:"banned"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	DescriptionHTML string `gorm:"-" json:"description_html"`
}
