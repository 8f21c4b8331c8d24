package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/jmcalero-dev/Vectora/internal/app"
	"github.com/jmcalero-dev/Vectora/internal/config"
	"github.com/jmcalero-dev/Vectora/internal/logging"
)

func main() {
	// SIGINT/SIGTERM prevent the next cycle from starting; in-flight work
	// finishes its current record.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	application, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatalw("startup failed", "error", err)
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil {
		logger.Fatalw("worker exited", "error", err)
	}
	logger.Infow("shutdown complete")
}
