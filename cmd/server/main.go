// Package main is the entry point for the flight result pipeline service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	pipelinehttp "github.com/faresight/flight-result-pipeline/internal/adapter/http"
	"github.com/faresight/flight-result-pipeline/internal/adapter/http/middleware"
	"github.com/faresight/flight-result-pipeline/internal/adapter/upstream"
	"github.com/faresight/flight-result-pipeline/internal/auth"
	"github.com/faresight/flight-result-pipeline/internal/config"
	"github.com/faresight/flight-result-pipeline/internal/infrastructure/logger"
	"github.com/faresight/flight-result-pipeline/internal/infrastructure/storage"
	"github.com/faresight/flight-result-pipeline/internal/infrastructure/timeutil"
	"github.com/faresight/flight-result-pipeline/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := logger.New(cfg.Logging)
	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("upstream", cfg.Upstream.BaseURL).
		Msg("Configuration loaded")

	// Persisted state: Redis when enabled, process memory otherwise.
	persist := buildStore(cfg, log)

	clock := timeutil.NewRealClock()
	tokens := auth.NewStore(clock)
	client := upstream.NewClient(cfg.Upstream, log)
	flow := auth.NewFlow(client, tokens, persist, cfg.Auth.AppSecret, log)
	session := usecase.NewSession(tokens, client, persist, cfg.Search, log)

	bootstrap(flow, session, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.Logger)
	pipelinehttp.RegisterRoutes(e, pipelinehttp.NewHandler(session, client))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, log)
}

// buildStore selects the persisted-state backend.
func buildStore(cfg *config.Config, log *logger.Logger) storage.Store {
	if !cfg.Redis.Enabled {
		return storage.NewMemory()
	}
	store, err := storage.NewRedis(cfg.Redis.Conn)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, falling back to memory store")
		return storage.NewMemory()
	}
	log.Info().Str("addr", cfg.Redis.Conn.Addr).Msg("Using Redis persisted state")
	return store
}

// bootstrap restores persisted state and acquires the app token. A failed
// acquisition is not fatal: searches fail with Unauthorized until a token
// is obtained, and the handler surfaces that distinctly.
func bootstrap(flow *auth.Flow, session *usecase.Session, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	session.RestoreLastCriteria(ctx)

	if flow.RestorePersisted(ctx) {
		return
	}
	if _, err := flow.AcquireAppToken(ctx); err != nil {
		log.Warn().Err(err).Msg("App token acquisition failed at startup")
	}
}

// gracefulShutdown blocks until an interrupt, then drains the server.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
	log.Info().Msg("Server stopped")
}
