package app

import (
	"database/sql"
	"net/http"

	"github.com/MhmdALii1/employee-management-system/internal/bootstrap"
	"github.com/MhmdALii1/employee-management-system/internal/config"
	"github.com/MhmdALii1/employee-management-system/internal/employee"
	"github.com/MhmdALii1/employee-management-system/internal/metrics"
	"github.com/MhmdALii1/employee-management-system/internal/middleware"
	"github.com/MhmdALii1/employee-management-system/internal/timesheet"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

type modules struct {
	sqlDB    *sql.DB
	gormDB   *gorm.DB
	rdb      *redis.Client // optional
	cfg      *config.Config
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func registerModules(router *gin.Engine, m modules) {
	router.Use(
		middleware.ContextLogger(m.logger),
		middleware.Metrics(m.metrics),
	)

	// --- Repositories ---
	employeeRepo := employee.NewRepository(m.gormDB)
	timesheetRepo := timesheet.NewRepository(m.gormDB)

	// --- Services ---
	employeeService := employee.NewService(m.sqlDB, employeeRepo, m.logger)
	timesheetService := timesheet.NewService(m.sqlDB, timesheetRepo, m.logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, employee.HandlerConfig{
		PageSize:   m.cfg.Query.EmployeePageSize,
		Rejections: m.metrics,
	}, m.logger)
	timesheetHandler := timesheet.NewHandler(timesheetService, timesheet.HandlerConfig{
		PageSize:   m.cfg.Query.TimesheetPageSize,
		Rejections: m.metrics,
		Reports:    m.metrics,
	}, m.logger)
	healthHandler := bootstrap.NewHealthHandler(m.sqlDB, m.rdb, m.logger)

	writeGuards := []gin.HandlerFunc{
		middleware.RateLimitByIP(rate.Limit(m.cfg.HTTP.RateLimit), m.cfg.HTTP.RateBurst),
		middleware.Idempotency(m.rdb, m.cfg.Redis.IdempotencyTTL, m.logger),
	}

	// --- Routes Registration ---
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/employees")
	})
	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})))

	employee.RegisterRoutes(router, employeeHandler, writeGuards...)
	timesheet.RegisterRoutes(router, timesheetHandler, writeGuards...)
}
