package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/MhmdALii1/employee-management-system/internal/app"
	"github.com/MhmdALii1/employee-management-system/internal/bootstrap"
	"github.com/MhmdALii1/employee-management-system/internal/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := bootstrap.NewLogger(cfg.App)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunSeed(ctx, cfg, logger); err != nil {
		logger.Error("seed failed", zap.Error(err))
		os.Exit(1)
	}
}
