package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sefazor/ourphotos-accounts/internal/config"
	"github.com/sefazor/ourphotos-accounts/internal/repository"
	"github.com/sefazor/ourphotos-accounts/internal/service"
	"github.com/sefazor/ourphotos-accounts/pkg/database"
	"github.com/sefazor/ourphotos-accounts/pkg/logger"
	"github.com/sefazor/ourphotos-accounts/pkg/ratelimit"
)

// reset codes are deleted this long after they expire
const purgeRetention = 24 * time.Hour

func main() {
	envErr := godotenv.Load()

	cfg := config.LoadConfig()

	log, err := logger.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Warn("no .env file loaded, using process environment", zap.Error(envErr))
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	// Initialize database
	db, err := database.NewDatabase(cfg.DatabaseURL, cfg.Development)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var limiter service.ResetLimiter
	if cfg.RedisURL != "" {
		client, err := newRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		limiter = ratelimit.NewResetLimiter(client, ratelimit.ResetConfig{
			RequestMax:    cfg.Reset.RequestsPerWindow,
			RequestWindow: cfg.Reset.RequestWindow,
			ConfirmMax:    cfg.Reset.ConfirmAttempts,
			ConfirmWindow: cfg.Reset.ConfirmWindow,
		})
		log.Info("reset throttling enabled",
			zap.Int("requests", cfg.Reset.RequestsPerWindow),
			zap.Duration("request_window", cfg.Reset.RequestWindow),
			zap.Int("attempts", cfg.Reset.ConfirmAttempts),
			zap.Duration("attempt_window", cfg.Reset.ConfirmWindow),
		)
	} else {
		log.Warn("REDIS_URL not set, reset throttling limited to the per-IP route guard")
	}

	app, err := initializeAPI(cfg, db, limiter, log)
	if err != nil {
		log.Fatal("failed to build api", zap.Error(err))
	}

	go purgeExpiredCodes(ctx, db, cfg.Reset.CodeTTL, log)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	log.Info("account service listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func purgeExpiredCodes(ctx context.Context, db *gorm.DB, interval time.Duration, log *zap.Logger) {
	codes := repository.NewResetCodeRepository(db)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := codes.DeleteExpired(time.Now().Add(-purgeRetention))
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("purging reset codes failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("purged reset codes", zap.Int64("count", n))
			}
		}
	}
}
