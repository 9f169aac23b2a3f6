// backend-go/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shelfwatch/backend-go/internal/api"
	"github.com/shelfwatch/backend-go/internal/cache"
	"github.com/shelfwatch/backend-go/internal/config"
	"github.com/shelfwatch/backend-go/internal/domain"
	"github.com/shelfwatch/backend-go/internal/export"
	"github.com/shelfwatch/backend-go/internal/forecast"
	"github.com/shelfwatch/backend-go/internal/ops"
	"github.com/shelfwatch/backend-go/internal/quality"
	"github.com/shelfwatch/backend-go/internal/reorder"
	"github.com/shelfwatch/backend-go/internal/repository"
	"github.com/shelfwatch/backend-go/internal/repository/postgres"
	"github.com/shelfwatch/backend-go/internal/service"
	"github.com/shelfwatch/backend-go/internal/storage"
	"github.com/shelfwatch/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Repositories
	salesRepo := repository.NewSalesRepository(db.DB)
	inventoryRepo := repository.NewInventoryRepository(db.DB)
	supplierRepo := repository.NewSupplierRepository(db.DB)
	cleanupRepo := repository.NewCleanupRepository(db.DB)

	// Core engine. The forecast-trigger gate also blocks on medium
	// severity; the dashboard status endpoint reports the same gate.
	calc := forecast.NewCalculator(forecast.Params{
		DefaultLeadTimeDays: cfg.Forecast.DefaultLeadTimeDays,
		VelocityWindowDays:  cfg.Forecast.VelocityWindowDays,
		ForecastHorizonDays: cfg.Forecast.ForecastHorizonDays,
		ReorderHorizonDays:  cfg.Forecast.ReorderHorizonDays,
		RiskWindowDays:      cfg.Forecast.RiskWindowDays,
		MinSaleRecords:      cfg.Forecast.MinSaleRecords,
	})
	gate := quality.NewGate(cleanupRepo, domain.SeverityHigh, domain.SeverityMedium)
	aggregator := reorder.NewAggregator(calc, gate, inventoryRepo, salesRepo, supplierRepo)

	// Cache (noop when disabled)
	reorderCache, err := cache.NewReorderCache(cfg.Cache)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to redis")
	}

	// Optional snapshot export to object storage
	var archiver *export.Archiver
	if cfg.Export.Enabled {
		store, err := storage.NewMinioClient(cfg.Export)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to initialize export storage")
		}
		archiver = export.NewArchiver(store)
	}

	// Services
	services := &api.Services{
		ReorderService: service.NewReorderService(aggregator, reorderCache, archiver),
		QualityService: service.NewQualityService(gate),
	}

	// HTTP servers
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	opsSrv := ops.NewServer(cfg.Server.OpsPort, db.DB)
	go opsSrv.Start()

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := opsSrv.Shutdown(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("Ops server forced to shutdown")
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
