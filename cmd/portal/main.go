// Command portal serves the ClaimWise insurance portal API.
//
// @title                       ClaimWise Insurance Portal API
// @version                     1.0
// @description                 Role-scoped dashboards, record management and the claim workflow.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by the token returned by /auth/login.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claimwise/insurance-portal/internal/api"
	"github.com/claimwise/insurance-portal/internal/core/service"
	"github.com/claimwise/insurance-portal/internal/infrastructure/db/memory"
	"github.com/claimwise/insurance-portal/internal/infrastructure/db/redis"
	"github.com/claimwise/insurance-portal/internal/infrastructure/queue"
	"github.com/claimwise/insurance-portal/internal/infrastructure/seed"
	"github.com/claimwise/insurance-portal/internal/pkg/config"
	"github.com/claimwise/insurance-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "insurance-portal",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := memory.NewStore(logger.Component("store"))
	creds := memory.NewCredentialRegistry()
	auth := service.NewAuthService(creds, store, service.AuthConfig{
		JWTSecret:  cfg.Auth.JWTSecret,
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	})

	if cfg.Portal.SeedDemoData {
		if err := seed.Load(ctx, store, auth, logger.Component("seed")); err != nil {
			log.Fatal().Err(err).Msg("failed to seed demo data")
		}
	}

	sessions := service.NewSessionManager(auth, cfg.Auth.LoginLatency, logger.Component("session"))
	claims := service.NewClaimService(store, logger.Component("claims"))
	records := service.NewRecordService(store, logger.Component("records"))
	dashboards := service.NewDashboardService(store, sessions, logger.Component("dashboard"))

	dispatcher := queue.NewDispatcher(cfg.Dispatcher.Workers, claims, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	deps := api.Deps{
		Log:        logger.Component("http"),
		Store:      store,
		Sessions:   sessions,
		Auth:       auth,
		Dashboards: dashboards,
		Records:    records,
		Claims:     claims,
		Dispatcher: dispatcher,
	}

	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect to redis")
		}
		defer client.Close()

		idem := redis.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL)
		deps.Idempotency = idem
		deps.Redis = idem
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency keys enabled")
	}

	e := api.NewRouter(deps)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	dispatcher.Wait()
	log.Info().Msg("server stopped")
}
