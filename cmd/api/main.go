package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gatehouse/auth-api/internal/api"
	"github.com/gatehouse/auth-api/internal/api/handler"
	"github.com/gatehouse/auth-api/internal/core/domain"
	"github.com/gatehouse/auth-api/internal/core/service"
	"github.com/gatehouse/auth-api/internal/infrastructure/config"
	mongodb "github.com/gatehouse/auth-api/internal/infrastructure/db/mongo"
	redisdb "github.com/gatehouse/auth-api/internal/infrastructure/db/redis"
	"github.com/gatehouse/auth-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// A store that cannot be reached at startup is fatal: the service never
	// runs in a degraded, unseeded state.
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer func() { _ = rdb.Close() }()

	// --- Explicitly constructed dependency graph, no ambient singletons ---
	users := mongodb.NewUserRepository(db)
	roles := mongodb.NewRoleRepository(db)
	tokens := service.NewJWTTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	throttle := redisdb.NewLoginThrottle(rdb)
	auth := service.NewAuthService(users, roles, tokens, throttle)

	// Seeding completes before the listener opens.
	if err := roles.EnsureSeeded(ctx, domain.PrimitiveRoles()); err != nil {
		log.Fatal().Err(err).Msg("seed primitive roles")
	}
	log.Info().Msg("primitive roles seeded")

	if err := auth.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("provision bootstrap admin")
	}

	e := api.NewRouter(api.Deps{
		Log:    log,
		DB:     db,
		Redis:  rdb,
		Users:  users,
		Roles:  roles,
		Tokens: tokens,
		Auth:   auth,
		Cookie: handler.CookieConfig{
			Name:   cfg.Auth.CookieName,
			MaxAge: cfg.Auth.CookieMaxAge,
		},
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("auth api listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
