package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/MhmdALii1/employee-management-system/internal/shared/apperror"
	"github.com/MhmdALii1/employee-management-system/internal/shared/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports readiness of the database and, when configured,
// Redis.
type HealthHandler struct {
	db     Pinger
	rdb    *redis.Client
	logger *zap.Logger
}

func NewHealthHandler(db Pinger, rdb *redis.Client, logger ...*zap.Logger) *HealthHandler {
	l := zap.L().Named("health")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("health")
	}
	return &HealthHandler{db: db, rdb: rdb, logger: l}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"database": "ok"}
	healthy := true

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("database ping failed", zap.Error(err))
		checks["database"] = "down"
		healthy = false
	}

	if h.rdb != nil {
		checks["redis"] = "ok"
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			h.logger.Warn("redis ping failed", zap.Error(err))
			checks["redis"] = "down"
			healthy = false
		}
	}

	if !healthy {
		e := apperror.ErrServiceUnavailable
		response.Error(c, e.HTTPStatus, e.Code, e.Message, checks)
		return
	}
	response.Success(c, http.StatusOK, checks, nil)
}
