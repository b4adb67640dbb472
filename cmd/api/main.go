// @title                       Users Service API
// @version                     1.0
// @description                 User accounts and JWT authentication.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	_ "github.com/99minutos/users-service/docs"
	"github.com/99minutos/users-service/internal/api"
	"github.com/99minutos/users-service/internal/api/handler"
	"github.com/99minutos/users-service/internal/api/middleware"
	"github.com/99minutos/users-service/internal/core/security"
	"github.com/99minutos/users-service/internal/core/service"
	"github.com/99minutos/users-service/internal/infrastructure/config"
	"github.com/99minutos/users-service/internal/infrastructure/db/mongo"
	"github.com/99minutos/users-service/internal/infrastructure/db/redis"
	"github.com/99minutos/users-service/internal/infrastructure/queue"
	"github.com/99minutos/users-service/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("users service stopped")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		boot := zerolog.New(os.Stderr)
		boot.Error().Err(err).Msg("invalid configuration")
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: cfg.AppName,
	})

	// --- Storage ---
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  cfg.AppName,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	users := mongo.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}

	var (
		rdb     *goredis.Client
		limiter middleware.Limiter
	)
	if cfg.RateLimit.Enabled {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
		} else {
			defer rdb.Close()
			limiter = redis.NewRateLimiter(rdb, "rl:"+cfg.AppName, cfg.RateLimit.Requests, cfg.RateLimit.Window)
		}
	}

	// --- Core ---
	pool := queue.NewHashPool(cfg.Hash.Workers, security.NewBcryptHasher(cfg.Hash.Cost), log)
	poolCtx, stopPool := context.WithCancel(context.Background())
	defer stopPool()
	pool.Start(poolCtx)

	tokens, err := service.NewTokenService(security.NewCodec(), service.TokenConfig{
		AccessSecret:  cfg.JWT.SecretKey,
		RefreshSecret: cfg.JWT.SecretRefreshKey,
		Algorithm:     cfg.JWT.Algorithm,
		AccessTTL:     cfg.JWT.AccessTTL(),
		RefreshTTL:    cfg.JWT.RefreshTTL(),
	})
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		Users:        service.NewUserService(users, pool, log),
		Auth:         service.NewAuthService(users, pool, tokens, log),
		Tokens:       tokens,
		Reader:       users,
		Health:       handler.NewHealthHandler(db, rdb),
		Limiter:      limiter,
		AllowedHosts: cfg.AllowedHosts,
		Log:          log,
	})

	// --- Serve ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
