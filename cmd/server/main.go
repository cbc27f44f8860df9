// Package main initializes and starts the Skycast HTTP server, setting up
// configuration, logging, the database connection, repositories, services,
// the session registry, and the upstream weather client.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/avolkov/skycast/internal/config"
	"github.com/avolkov/skycast/internal/db"
	"github.com/avolkov/skycast/internal/logger"
	"github.com/avolkov/skycast/internal/repository"
	"github.com/avolkov/skycast/internal/server/handler/http"
	"github.com/avolkov/skycast/internal/service"
	"github.com/avolkov/skycast/internal/session"
	"github.com/avolkov/skycast/internal/weather"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Environment variables from a local .env take effect before Parse.
	_ = godotenv.Load()

	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories for users and search history.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	searchRepo := repository.NewPostgresSearchRepository(postgresDB)

	// The session registry is owned here and injected; no ambient globals.
	sessions := session.NewRegistry()

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, sessions, zapLogger)
	profileService := service.NewProfileService(userRepo)
	historyService := service.NewHistoryService(searchRepo)

	// Upstream weather provider client.
	weatherClient := weather.NewClient(options.WeatherAPIKey, options.WeatherBaseURL)
	if options.WeatherAPIKey == "" {
		zapLogger.Warn("weather API key is not configured; weather endpoints will fail")
	}

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService, Log: zapLogger}
	profileHandler := &http.ProfileHandler{ProfileService: profileService, Log: zapLogger}
	historyHandler := &http.HistoryHandler{HistoryService: historyService, Log: zapLogger}
	weatherHandler := &http.WeatherHandler{Provider: weatherClient, History: historyService, Log: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, profileHandler, historyHandler, weatherHandler, sessions, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
