package app

import (
	"github.com/MhmdALii1/employee-management-system/internal/config"
	"github.com/MhmdALii1/employee-management-system/internal/metrics"
	"github.com/MhmdALii1/employee-management-system/internal/migrate"
	"github.com/MhmdALii1/employee-management-system/internal/shared/connection"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and mounts every module on router.
// The returned cleanup closes the connections.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		if err := migrate.Run(gormDB); err != nil {
			sqlDB.Close()
			return nil, err
		}
		logger.Info("schema migrated")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis, logger)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, idempotency keys are ignored")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	registerModules(router, modules{
		sqlDB:    sqlDB,
		gormDB:   gormDB,
		rdb:      rdb,
		cfg:      cfg,
		registry: reg,
		metrics:  metrics.NewMetrics(reg),
		logger:   logger,
	})

	cleanup := func() {
		if rdb != nil {
			if err := rdb.Close(); err != nil {
				logger.Warn("redis close failed", zap.Error(err))
			}
		}
		if err := sqlDB.Close(); err != nil {
			logger.Warn("database close failed", zap.Error(err))
		}
	}
	return cleanup, nil
}
