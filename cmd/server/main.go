package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dws-labs/transcript-core/internal/app"
	"github.com/dws-labs/transcript-core/internal/config"
	"github.com/dws-labs/transcript-core/internal/database"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	migrateOnly := flag.Bool("migrate", false, "Apply database migrations and exit")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if *migrateOnly {
		cfg, err := config.Load(*configPath)
		if err != nil {
			logger.Fatal("failed to load config", zap.Error(err))
		}
		if err := database.EnsureSchema(cfg); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
		logger.Info("migration complete")
		return
	}

	application, err := app.New(logger, *configPath)
	if err != nil {
		logger.Fatal("failed to initialize app", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    application.Addr(),
		Handler: application.Router(),
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	application.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
