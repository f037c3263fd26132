package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidUser        = errors.New("invalid user")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidSettings    = errors.New("settings must be a valid JSON string")
	ErrInvalidQuery       = errors.New("invalid query value")
	ErrInvalidField       = errors.New("profile fields must be strings")
	ErrInvalidUserName    = errors.New("user name must not contain @")

	ErrInvalidCode     = errors.New("invalid verification code")
	ErrExpiredCode     = errors.New("verification code expired")
	ErrAlreadyVerified = errors.New("already verified")
	ErrNoCellPhone     = errors.New("no cell phone on account")

	ErrCategoryNotFound  = errors.New("category not found")
	ErrPostNotFound      = errors.New("post not found")
	ErrAlreadyVoted      = errors.New("already voted")
	ErrAlreadyReported   = errors.New("already reported")
	ErrInvalidReportType = errors.New("invalid report type")
	ErrInvalidPicture    = errors.New("picture must be an http(s) URL or an image upload")
	ErrPictureTooLarge   = errors.New("picture exceeds 10MB")
	ErrUploadDisabled    = errors.New("picture uploads are not configured")
)

// QueryNotAllowedError lists the listing parameters outside the allow-list.
type QueryNotAllowedError struct {
	Query map[string]string
}

func (e *QueryNotAllowedError) Error() string {
	keys := make([]string, 0, len(e.Query))
	for k := range e.Query {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "query not allowed: " + strings.Join(keys, ", ")
}
