package app

import (
	"context"

	"github.com/MhmdALii1/employee-management-system/internal/config"
	"github.com/MhmdALii1/employee-management-system/internal/migrate"
	"github.com/MhmdALii1/employee-management-system/internal/seed"
	"github.com/MhmdALii1/employee-management-system/internal/shared/connection"
	"go.uber.org/zap"
)

// RunSeed migrates the schema and replaces all data with the reference set.
func RunSeed(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger = logger.Named("app.seed")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, logger)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := migrate.Run(gormDB); err != nil {
		return err
	}

	_, err = seed.Run(ctx, gormDB, logger)
	return err
}
