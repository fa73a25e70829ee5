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
	"github.com/MhmdALii1/employee-management-system/internal/shared/apperror"
	"github.com/gin-gonic/gin"
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

	apperror.Init()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// build dependency + routes
	cleanup, err := app.BuildApp(r, cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	auditLogger := bootstrap.NewStdoutAuditLogger(logger)
	if err := bootstrap.StartHTTPServer(ctx, r, cfg.HTTP, auditLogger, logger); err != nil {
		logger.Error("http server stopped", zap.Error(err))
		os.Exit(1)
	}
}
