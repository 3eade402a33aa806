package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bazarfresh/backend/config"
	httpDelivery "github.com/bazarfresh/backend/internal/delivery/http"
	"github.com/bazarfresh/backend/internal/infrastructure/openrouter"
	"github.com/bazarfresh/backend/internal/infrastructure/supabase"
	"github.com/bazarfresh/backend/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting bazarfresh backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("model", cfg.OpenRouter.Model),
	)

	// Infrastructure clients
	store := supabase.NewClient(cfg.Supabase, logger.Named("supabase"))
	model := openrouter.NewClient(cfg.OpenRouter, logger.Named("openrouter"))

	// Usecase layer
	matcher := usecase.NewInventoryMatcher(store, logger.Named("matcher"))
	reconciler := usecase.NewReconciler(matcher, logger.Named("reconciler"))
	classifier := usecase.NewIntentClassifier(model, logger.Named("classifier"))
	dispatcher := usecase.NewDispatcher(
		classifier,
		reconciler,
		store,
		store,
		model,
		cfg.Supabase.RecipeMatchCount,
		logger.Named("dispatcher"),
	)

	// HTTP delivery
	handler := httpDelivery.NewHandler(dispatcher)
	router := httpDelivery.SetupRouter(cfg, handler, logger.Named("http"))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

// newLogger builds the application logger for the configured environment.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Server.Environment == "development" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zapCfg.Level = level

	return zapCfg.Build(zap.Fields(zap.String("service", "bazarfresh-backend")))
}
