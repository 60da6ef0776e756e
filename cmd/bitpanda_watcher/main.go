package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"bitpanda_watcher/internal/client"
	"bitpanda_watcher/internal/config"
	domain "bitpanda_watcher/internal/domain/entity"
	"bitpanda_watcher/internal/infrastructure/restapi"
	"bitpanda_watcher/internal/pkg/logger"
	"bitpanda_watcher/internal/pkg/metrics"
	"bitpanda_watcher/internal/pkg/utils"
	"bitpanda_watcher/internal/service"
)

func main() {
	log := logger.Bootstrap()

	zapLogger, err := logger.NewZapLogger()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	// Optional .env for local development; ignored when absent.
	if err := godotenv.Load(); err == nil {
		log.Info("Loaded environment from .env file")
	}

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The API key can live outside the config file.
	if key := os.Getenv("BITPANDA_API_KEY"); key != "" {
		cfg.Bitpanda.APIKey = key
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.ApplyConfig(log, cfg.Logging)
	zapLogger.Info("Configuration loaded",
		zap.String("path", cfgPath),
		zap.String("currency", cfg.Poller.Currency),
		zap.Strings("categories", cfg.Poller.Categories),
		zap.Duration("interval", cfg.Interval()))

	metrics.MustRegisterMetrics()

	bitpandaClient := client.NewBitpandaClient(cfg.Bitpanda, zapLogger)
	zapLogger.Info("Bitpanda client initialized", zap.String("baseURL", cfg.Bitpanda.BaseURL))

	tickerService := service.NewTickerService(bitpandaClient, cfg.TickerCacheTTL(), zapLogger)

	coordinator, err := service.NewCoordinator(bitpandaClient, tickerService, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize coordinator", zap.Error(err))
	}
	coordinator.AddObserver(func(snap *domain.Snapshot) {
		for cat, cs := range snap.Categories {
			value, _ := cs.TotalValue.Round(2).Float64()
			metrics.SetCategoryValue(string(cat), cfg.Poller.Currency, value)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The first cycle runs synchronously so the service never starts serving
	// with an empty snapshot. A failure here usually means a bad API key.
	startupCtx, startupCancel := context.WithTimeout(ctx, 2*time.Minute)
	err = coordinator.Refresh(startupCtx)
	startupCancel()
	if err != nil {
		zapLogger.Fatal("Initial wallet fetch failed", zap.Error(err))
	}
	zapLogger.Info("Initial wallet snapshot ready")

	go coordinator.Run(ctx)

	router := restapi.SetupRouter(coordinator, cfg, zapLogger)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	// Stop the poller first so no cycle publishes mid-shutdown.
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
