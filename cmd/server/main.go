package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"watog/internal/config"
	"watog/internal/db"
	"watog/internal/logger"
	"watog/internal/router"
	"watog/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := logger.Initialize(cfg.App.LogLevel); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.App.GinMode)

	reporter := services.NewErrorReporter(cfg.Sentry)
	defer reporter.Flush(2 * time.Second)

	// Initialize Database
	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		logger.Log.Fatalw("failed to connect database", "err", err)
	}
	store := db.NewStore(conn)

	var pictures services.PictureStore
	if cfg.Storage.Enabled() {
		s3Storage, err := services.NewS3Storage(context.Background(), cfg.Storage)
		if err != nil {
			logger.Log.Fatalw("failed to init picture storage", "err", err)
		}
		pictures = s3Storage
	} else {
		logger.Log.Warn("picture storage disabled: uploads will be rejected")
	}

	tokens := services.NewTokenService(cfg.Security.JWTSecret, cfg.Security.JWTTTL)
	accounts := services.NewAccountService(store, tokens)
	verification := services.NewVerificationService(
		store,
		services.NewMailService(cfg.Email),
		services.NewSMSService(cfg.SMS),
		cfg.App.Domain,
	)
	posts := services.NewPostService(store, pictures, cfg.App.ReportBanThreshold)

	r := router.New(router.Deps{
		Accounts:     accounts,
		Verification: verification,
		Posts:        posts,
		Reporter:     reporter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infow("watog server starting", "port", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalw("server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Errorw("server forced to shutdown", "err", err)
	}

	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Log.Info("server exited")
}
