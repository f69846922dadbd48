package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"foodlink/internal/adapter/repo"
	"foodlink/internal/auth"
	"foodlink/internal/http/handlers"
	"foodlink/internal/http/httpapi"
	"foodlink/internal/infra"
	"foodlink/internal/infra/geoip"
	"foodlink/internal/middleware"
	"foodlink/migrations"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	// Apply schema migrations over a short-lived database/sql handle.
	migrationDB, err := infra.OpenMigrationDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrations.Migrate(migrationDB); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}
	_ = migrationDB.Close()

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenIssuer, cfg.TokenTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid token configuration")
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	var lookup middleware.CountryLookup
	if resolver != nil {
		lookup = resolver.CountryCode
	}

	app := handlers.NewApp(
		repo.NewUserRepository(dbpool),
		repo.NewDonationRepository(dbpool),
		tokens,
		logger,
	)

	router := httpapi.NewRouter(app, tokens, cfg, logger, lookup)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
