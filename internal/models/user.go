package models

import (
	"time"
)

// DefaultSettings 新用户注册时写入的默认设置
const DefaultSettings = `{"notifications":{"vote":true,"participate":true,"spam_mark":true}}`

type User struct {
	ID                uint       `gorm:"primaryKey"`
	FirstName         string     `gorm:"size:100"`
	LastName          string     `gorm:"size:100"`
	UserName          *string    `gorm:"uniqueIndex;size:100"` // Optional login alias
	Email             string     `gorm:"uniqueIndex;not null"`
	Password          string     `gorm:"not null"` // Hash
	CellPhone         string     `gorm:"size:32"`
	Country           string     `gorm:"size:100;index"`
	Hospital          string     `gorm:"size:200;index"`
	PictureProfile    string
	PictureCover      string
	VoteScore         float64    `gorm:"default:0;index"`
	Settings          string     `gorm:"type:text"`
	EmailVerifiedDate *time.Time
	SmsVerifiedDate   *time.Time
	ProofOfStatusDate *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	// No DeletedAt, users are never removed
}

// Profile is the outbound view of a User. Password is intentionally absent.
type Profile struct {
	ID                uint       `json:"id"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	UserName          *string    `json:"user_name"`
	Email             string     `json:"email"`
	CellPhone         string     `json:"cell_phone"`
	Country           string     `json:"country"`
	Hospital          string     `json:"hospital"`
	PictureProfile    string     `json:"picture_profile"`
	PictureCover      string     `json:"picture_cover"`
	VoteScore         float64    `json:"vote_score"`
	Settings          string     `json:"settings"`
	EmailVerifiedDate *time.Time `json:"email_verified_date"`
	SmsVerifiedDate   *time.Time `json:"sms_verified_date"`
	ProofOfStatusDate *time.Time `json:"proof_of_status_date"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// PublicUser 用户列表接口返回的字段集合
type PublicUser struct {
	ID             uint   `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Country        string `json:"country"`
	Hospital       string `json:"hospital"`
	CellPhone      string `json:"cell_phone"`
	PictureProfile string `json:"picture_profile"`
	PictureCover   string `json:"picture_cover"`
}

// PublicUserColumns lists the columns selected for PublicUser, in order.
var PublicUserColumns = []string{
	"id", "first_name", "last_name", "country", "hospital",
	"cell_phone", "picture_profile", "picture_cover",
}

func (u *User) Profile() Profile {
	return Profile{
		ID:                u.ID,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		UserName:          u.UserName,
		Email:             u.Email,
		CellPhone:         u.CellPhone,
		Country:           u.Country,
		Hospital:          u.Hospital,
		PictureProfile:    u.PictureProfile,
		PictureCover:      u.PictureCover,
		VoteScore:         u.VoteScore,
		Settings:          u.Settings,
		EmailVerifiedDate: u.EmailVerifiedDate,
		SmsVerifiedDate:   u.SmsVerifiedDate,
		ProofOfStatusDate: u.ProofOfStatusDate,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
