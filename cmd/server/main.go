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

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/AnshRaj112/moments-backend/internal/config"
	"github.com/AnshRaj112/moments-backend/internal/handlers"
	"github.com/AnshRaj112/moments-backend/internal/logging"
	"github.com/AnshRaj112/moments-backend/internal/metrics"
	"github.com/AnshRaj112/moments-backend/internal/routes"
	"github.com/AnshRaj112/moments-backend/internal/services"
	"github.com/AnshRaj112/moments-backend/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	var (
		m    *metrics.Metrics
		opts = []store.Option{store.WithLimits(cfg.MaxMoments, cfg.MaxReplies)}
	)
	if cfg.MetricsEnabled {
		m = metrics.New()
		opts = append(opts, store.WithObserver(m))
	}

	feed := store.New(opts...)
	if m != nil {
		m.RegisterFeed(feed.Stats)
	}
	maxMoments, maxReplies := feed.Limits()
	logger.Info("feed store ready", zap.Int("max_moments", maxMoments), zap.Int("max_replies", maxReplies))

	// Image hosting is optional; without it images stay inline data URIs.
	var images handlers.ImageHost
	if cfg.CloudinaryEnabled() {
		svc, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			logger.Warn("Cloudinary unavailable, images will be stored inline", zap.Error(err))
		} else {
			images = svc
			logger.Info("Cloudinary image hosting enabled", zap.String("folder", cfg.CloudinaryFolder))
		}
	} else {
		logger.Info("Cloudinary credentials not found, images will be stored inline")
	}

	h := handlers.New(feed, images, logger)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(cfg, h, m, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("moments backend listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Environment),
			zap.Strings("allowed_origins", cfg.AllowedOrigins),
			zap.Bool("metrics", m != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
