package db

import (
	"context"
	"errors"
	"watog/internal/logger"
	"watog/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Open connects to PostgreSQL and runs migrations and seeding.
func Open(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	logger.Log.Info("database connection established")

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	logger.Log.Info("database migration completed")

	if err := seedCategories(context.Background(), conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate creates or updates all tables.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.Vote{},
		&models.Report{},
		&models.Verify{},
	)
}

func seedCategories(ctx context.Context, conn *gorm.DB) error {
	// 检查是否已有分类数据
	var count int64
	if err := conn.WithContext(ctx).Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Log.Debug("categories already seeded, skipping")
		return nil
	}

	categories := []models.Category{
		{Type: "surgery", Description: "Operating room and surgical practice"},
		{Type: "ward", Description: "Daily life on the ward"},
		{Type: "team", Description: "Colleagues and team pictures"},
		{Type: "other", Description: "Everything else"},
	}
	for _, category := range categories {
		if err := conn.WithContext(ctx).Create(&category).Error; err != nil {
			logger.Log.Errorw("failed to create category", "type", category.Type, "err", err)
		}
	}
	logger.Log.Info("initial categories created")
	return nil
}

// Store wraps the gorm handle and exposes the queries the services need.
type Store struct {
	db *gorm.DB
}

func NewStore(conn *gorm.DB) *Store {
	return &Store{db: conn}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func duplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
