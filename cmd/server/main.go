package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/vidhub/api/internal/adapters/handler/http"
	"github.com/vidhub/api/internal/adapters/repository/postgres"
	"github.com/vidhub/api/internal/adapters/storage/s3"
	"github.com/vidhub/api/internal/config"
	"github.com/vidhub/api/internal/core/services"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	media, err := s3.NewMediaStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to init media store", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	videoRepo := postgres.NewVideoRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	likeRepo := postgres.NewLikeRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	tweetRepo := postgres.NewTweetRepository(db)
	playlistRepo := postgres.NewPlaylistRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db)

	hasher := services.NewBcryptHasher()
	tokens := services.NewTokenService(cfg)

	authSvc := services.NewAuthService(userRepo, hasher, tokens, media, logger)
	userSvc := services.NewUserService(userRepo, media, logger)
	videoSvc := services.NewVideoService(videoRepo, userRepo, media, logger)
	commentSvc := services.NewCommentService(commentRepo, videoRepo)
	likeSvc := services.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	subscriptionSvc := services.NewSubscriptionService(subscriptionRepo, userRepo)
	tweetSvc := services.NewTweetService(tweetRepo, userRepo)
	playlistSvc := services.NewPlaylistService(playlistRepo, videoRepo)
	dashboardSvc := services.NewDashboardService(dashboardRepo, videoRepo)

	gate := http.NewAuthGate(tokens, userRepo)
	handler := http.NewHandler(http.Handlers{
		Auth:         http.NewAuthHandler(authSvc, cfg.CookieDomain, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		User:         http.NewUserHandler(userSvc),
		Video:        http.NewVideoHandler(videoSvc),
		Comment:      http.NewCommentHandler(commentSvc),
		Like:         http.NewLikeHandler(likeSvc),
		Subscription: http.NewSubscriptionHandler(subscriptionSvc),
		Tweet:        http.NewTweetHandler(tweetSvc),
		Playlist:     http.NewPlaylistHandler(playlistSvc),
		Dashboard:    http.NewDashboardHandler(dashboardSvc),
	}, gate)

	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: handler}

	go func() {
		logger.Info("server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}
