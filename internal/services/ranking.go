package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"watog/internal/db"
	"watog/internal/models"
)

const (
	topPostsLimit     = 5
	defaultListLimit  = 10
	maxListLimit      = 100
	queryKeyLimit     = "limit"
	queryKeyOffset    = "offset"
	queryKeyFirstName = "first_name"
	queryKeyLastName  = "last_name"
	queryKeyCountry   = "country"
	queryKeyHospital  = "hospital"
	queryKeyName      = "name"
)

var allowedQueries = map[string]bool{
	queryKeyLimit:     true,
	queryKeyOffset:    true,
	queryKeyFirstName: true,
	queryKeyLastName:  true,
	queryKeyCountry:   true,
	queryKeyHospital:  true,
	queryKeyName:      true,
}

// MeView 当前用户的资料，附带排名和最受欢迎的帖子
type MeView struct {
	models.Profile
	VoteRank  int64         `json:"vote_rank"`
	GoodPosts []models.Post `json:"good_posts"`
}

// Rank is one plus the number of users with a strictly higher vote score,
// so tied users share a rank.
func (s *AccountService) Rank(ctx context.Context, user *models.User) (int64, error) {
	above, err := s.store.CountUsersAbove(ctx, user.VoteScore)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return above + 1, nil
}

func (s *AccountService) TopPosts(ctx context.Context, userID uint) ([]models.Post, error) {
	posts, err := s.store.TopPostsByUser(ctx, userID, topPostsLimit)
	if err != nil {
		return nil, fmt.Errorf("top posts: %w", err)
	}
	return posts, nil
}

func (s *AccountService) Me(ctx context.Context, user *models.User) (*MeView, error) {
	rank, err := s.Rank(ctx, user)
	if err != nil {
		return nil, err
	}
	posts, err := s.TopPosts(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &MeView{
		Profile:   user.Profile(),
		VoteRank:  rank,
		GoodPosts: posts,
	}, nil
}

// ListAccounts rejects the whole request when any key is outside the
// allow-list. Repeated keys use their first value.
func (s *AccountService) ListAccounts(ctx context.Context, query url.Values) ([]models.PublicUser, error) {
	rejected := make(map[string]string)
	for key, values := range query {
		if !allowedQueries[key] {
			rejected[key] = first(values)
		}
	}
	if len(rejected) > 0 {
		return nil, &QueryNotAllowedError{Query: rejected}
	}

	filter := db.UserFilter{
		Limit:     defaultListLimit,
		FirstName: query.Get(queryKeyFirstName),
		LastName:  query.Get(queryKeyLastName),
		Country:   query.Get(queryKeyCountry),
		Hospital:  query.Get(queryKeyHospital),
		Name:      query.Get(queryKeyName),
	}

	if raw := query.Get(queryKeyLimit); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return nil, fmt.Errorf("%w: limit=%q", ErrInvalidQuery, raw)
		}
		filter.Limit = min(limit, maxListLimit)
	}
	if raw := query.Get(queryKeyOffset); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return nil, fmt.Errorf("%w: offset=%q", ErrInvalidQuery, raw)
		}
		filter.Offset = offset
	}

	users, err := s.store.ListUsers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
