package main

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mtcleaning/account-service/internal/api"
	"github.com/mtcleaning/account-service/internal/api/handler"
	"github.com/mtcleaning/account-service/internal/core/ports"
	"github.com/mtcleaning/account-service/internal/core/service"
	mongostore "github.com/mtcleaning/account-service/internal/infrastructure/db/mongo"
	redisstore "github.com/mtcleaning/account-service/internal/infrastructure/db/redis"
	"github.com/mtcleaning/account-service/internal/infrastructure/supabase"
	"github.com/mtcleaning/account-service/internal/pkg/config"
)

// bootstrap wires adapters, the account service and the router. The returned
// cleanup closes every connection that was opened.
func bootstrap(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*echo.Echo, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	backend := supabase.New(supabase.Config{
		URL:            cfg.Supabase.URL,
		AnonKey:        cfg.Supabase.AnonKey,
		ServiceRoleKey: cfg.Supabase.ServiceRoleKey,
		Timeout:        cfg.Supabase.Timeout,
	})
	if missing := backend.Missing(); missing != "" {
		log.Warn().Str("env", missing).Msg("backend credentials incomplete, privileged requests will fail")
	}

	checks := map[string]handler.DependencyCheck{
		"supabase": backend.Health,
		"mongodb":  nil,
		"redis":    nil,
	}

	var audit ports.AuditRepository
	if cfg.Mongo.URI != "" {
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  cfg.Mongo.AppName,
			Timeout:  cfg.Mongo.Timeout,
		})
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		})

		repo := mongostore.NewAuditRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("audit indexes: %w", err)
		}
		audit = repo
		checks["mongodb"] = mongostore.Pinger(client)
		log.Info().Str("database", cfg.Mongo.Database).Msg("audit trail enabled")
	} else {
		log.Warn().Msg("MONGO_URI not set, audit trail disabled")
	}

	var limiter ports.RateLimiter
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Timeout:  cfg.Redis.Timeout,
		})
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() {
			if err := rdb.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close")
			}
		})

		limiter = redisstore.NewRateLimiter(rdb, cfg.RateLimit.PerMinute)
		checks["redis"] = redisstore.Pinger(rdb)
		log.Info().Int("per_minute", cfg.RateLimit.PerMinute).Msg("rate limiting enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, rate limiting disabled")
	}

	accounts := service.NewAccountService(backend, audit, log)

	e := api.NewRouter(api.Dependencies{
		Accounts: accounts,
		Limiter:  limiter,
		Checks:   checks,
		Log:      log,
	})

	return e, cleanup, nil
}
