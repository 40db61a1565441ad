// @title                       Account Service API
// @version                     1.0
// @description                 Privileged account management for the cleaning-operations dashboard.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Caller's session token, as "Bearer <token>".
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mtcleaning/account-service/internal/pkg/config"
	"github.com/mtcleaning/account-service/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	app, cleanup, err := bootstrap(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap")
	}
	defer cleanup()

	addr := net.JoinHostPort("", cfg.Port)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("http server listening")
		errCh <- app.Start(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
		}
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}
}
