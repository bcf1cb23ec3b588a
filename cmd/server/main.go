package main

import (
	"context"
	"errors"
	"fmt"
	"map-routing-service/internal/adapters/artifacts"
	"map-routing-service/internal/api"
	"map-routing-service/internal/app"
	"map-routing-service/internal/config"
	"map-routing-service/internal/platform/obs"
	"map-routing-service/internal/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (Nominatim, OSRM, caches, file store) behind
// ports and starts the HTTP server.
func main() {
	foundEnv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := obs.NewLogger(cfg.AppEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if !foundEnv {
		logger.Info("no .env file found (using environment variables)")
	}

	geocoder, closeGeocoder, err := app.NewGeocoder(cfg, logger)
	if err != nil {
		logger.Fatal("failed to wire geocoder", zap.Error(err))
	}
	defer closeGeocoder()

	router, closeRouter, err := app.NewRouteProvider(cfg, logger)
	if err != nil {
		logger.Fatal("failed to wire route provider", zap.Error(err))
	}
	defer closeRouter()

	store, err := artifacts.NewFileStore(cfg.ArtifactDir)
	if err != nil {
		logger.Fatal("failed to open artifact store", zap.Error(err))
	}

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	planner := services.NewRoutePlanner(geocoder, router, store, cfg.MapZoom)
	handler := api.NewRouter(planner, store, logger)

	// Write timeout covers two geocode calls and one route call on a cold cache.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      3*cfg.HTTPTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server forced shutdown", zap.Error(err))
	}
}
