package services

import (
	"context"
	"watog/internal/db"
	"watog/internal/models"
)

type fakeStore struct {
	createUser      func(ctx context.Context, user *models.User) error
	findUserByID    func(ctx context.Context, id uint) (*models.User, error)
	findUserByEmail func(ctx context.Context, email string) (*models.User, error)
	findUserByLogin func(ctx context.Context, identifier string) (*models.User, error)
	userExists      func(ctx context.Context, email string, userName *string) (bool, error)
	updateUser      func(ctx context.Context, user *models.User, updates map[string]any) error
	countUsersAbove func(ctx context.Context, score float64) (int64, error)
	listUsers       func(ctx context.Context, filter db.UserFilter) ([]models.PublicUser, error)
	topPostsByUser  func(ctx context.Context, userID uint, limit int) ([]models.Post, error)

	createVerify func(ctx context.Context, verify *models.Verify) error
	findVerify   func(ctx context.Context, code, typ string, userID *uint) (*models.Verify, error)

	createPost     func(ctx context.Context, post *models.Post) error
	findPost       func(ctx context.Context, id uint) (*models.Post, error)
	listPosts      func(ctx context.Context, filter db.PostFilter) ([]models.Post, error)
	listCategories func(ctx context.Context) ([]models.Category, error)
	findCategory   func(ctx context.Context, id uint) (*models.Category, error)
	createVote     func(ctx context.Context, vote *models.Vote, ownerID uint) error
	createReport   func(ctx context.Context, report *models.Report, banThreshold int) (bool, error)
}

func (f *fakeStore) CreateUser(ctx context.Context, user *models.User) error {
	return f.createUser(ctx, user)
}

func (f *fakeStore) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	return f.findUserByID(ctx, id)
}

func (f *fakeStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.findUserByEmail(ctx, email)
}

func (f *fakeStore) FindUserByLogin(ctx context.Context, identifier string) (*models.User, error) {
	return f.findUserByLogin(ctx, identifier)
}

func (f *fakeStore) UserExists(ctx context.Context, email string, userName *string) (bool, error) {
	return f.userExists(ctx, email, userName)
}

func (f *fakeStore) UpdateUser(ctx context.Context, user *models.User, updates map[string]any) error {
	return f.updateUser(ctx, user, updates)
}

func (f *fakeStore) CountUsersAbove(ctx context.Context, score float64) (int64, error) {
	return f.countUsersAbove(ctx, score)
}

func (f *fakeStore) ListUsers(ctx context.Context, filter db.UserFilter) ([]models.PublicUser, error) {
	return f.listUsers(ctx, filter)
}

func (f *fakeStore) TopPostsByUser(ctx context.Context, userID uint, limit int) ([]models.Post, error) {
	return f.topPostsByUser(ctx, userID, limit)
}

func (f *fakeStore) CreateVerify(ctx context.Context, verify *models.Verify) error {
	return f.createVerify(ctx, verify)
}

func (f *fakeStore) FindVerify(ctx context.Context, code, typ string, userID *uint) (*models.Verify, error) {
	return f.findVerify(ctx, code, typ, userID)
}

func (f *fakeStore) CreatePost(ctx context.Context, post *models.Post) error {
	return f.createPost(ctx, post)
}

func (f *fakeStore) FindPost(ctx context.Context, id uint) (*models.Post, error) {
	return f.findPost(ctx, id)
}

func (f *fakeStore) ListPosts(ctx context.Context, filter db.PostFilter) ([]models.Post, error) {
	return f.listPosts(ctx, filter)
}

func (f *fakeStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	return f.listCategories(ctx)
}

func (f *fakeStore) FindCategory(ctx context.Context, id uint) (*models.Category, error) {
	return f.findCategory(ctx, id)
}

func (f *fakeStore) CreateVote(ctx context.Context, vote *models.Vote, ownerID uint) error {
	return f.createVote(ctx, vote, ownerID)
}

func (f *fakeStore) CreateReport(ctx context.Context, report *models.Report, banThreshold int) (bool, error) {
	return f.createReport(ctx, report, banThreshold)
}

type fakeMailer struct {
	to, link string
	err      error
}

func (f *fakeMailer) SendVerificationEmail(ctx context.Context, to, link string) error {
	f.to, f.link = to, link
	return f.err
}

type fakeSMS struct {
	to, body string
}

func (f *fakeSMS) Send(ctx context.Context, to, body string) error {
	f.to, f.body = to, body
	return nil
}

type fakePictures struct {
	data        []byte
	contentType string
	ext         string
}

func (f *fakePictures) Put(ctx context.Context, data []byte, contentType, ext string) (string, error) {
	f.data, f.contentType, f.ext = data, contentType, ext
	return "https://cdn.example.com/posts/x" + ext, nil
}
