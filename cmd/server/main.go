// Package main is the entry point for the cheapest fare API.
//
//	@title						Cheapest Fly API
//	@version					1.0.0
//	@description				Looks up the cheapest one-way flight fare between two airports on a given date.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/flight-search/cheapest-fly/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
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

	// Import generated docs for swagger
	_ "github.com/flight-search/cheapest-fly/docs"

	farehttp "github.com/flight-search/cheapest-fly/internal/adapter/http"
	"github.com/flight-search/cheapest-fly/internal/adapter/http/middleware"
	"github.com/flight-search/cheapest-fly/internal/adapter/provider"
	"github.com/flight-search/cheapest-fly/internal/config"
	"github.com/flight-search/cheapest-fly/internal/infrastructure/logger"
	"github.com/flight-search/cheapest-fly/internal/infrastructure/retry"
	"github.com/flight-search/cheapest-fly/internal/infrastructure/timeutil"
	"github.com/flight-search/cheapest-fly/internal/usecase"
)

const (
	serviceName     = "cheapest-fly-api"
	shutdownTimeout = 10 * time.Second
	startupTimeout  = 5 * time.Second
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		EnableCaller: cfg.IsDevelopment(),
		ServiceName:  serviceName,
	})

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("timezone", cfg.Location().String()).
		Msg("Configuration loaded")

	// The API answers from Ryanair; pointing it at itself would loop.
	if cfg.Fares.Source != config.SourceRyanair {
		log.Warn().Str("source", cfg.Fares.Source).Msg("Ignoring FARE_SOURCE, the API always uses ryanair")
		cfg.Fares.Source = config.SourceRyanair
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	lookup, closeLookup, err := provider.NewLookup(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up fare lookup")
	}
	defer func() {
		if err := closeLookup(); err != nil {
			log.Error().Err(err).Msg("Error closing fare lookup")
		}
	}()

	search := usecase.NewFareSearchUseCase(lookup, usecase.FareSearchConfig{
		LookupTimeout: cfg.Timeouts.FareLookup,
		Retry:         retry.Backoff(cfg.Retry.MaxAttempts, cfg.Retry.InitialDelay, cfg.Retry.MaxDelay),
		Logger:        log,
	})
	validator := usecase.NewFormValidator(timeutil.NewRealClock(), cfg.Location())

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	recovery := middleware.DefaultRecoveryConfig()
	recovery.DisablePrintStack = cfg.IsProduction()
	middleware.Setup(e, log, recovery)

	farehttp.RegisterRoutes(e, farehttp.NewFareHandler(search, validator))
	farehttp.RegisterSwagger(e)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Str("provider", lookup.Name()).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, log)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
