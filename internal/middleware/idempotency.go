package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MhmdALii1/employee-management-system/internal/shared/apperror"
	"github.com/MhmdALii1/employee-management-system/internal/shared/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	ReplayedHeader    = "Idempotent-Replayed"

	idempotencyLockTTL = 30 * time.Second
)

// storedResponse is what a finished submission leaves behind in redis.
type storedResponse struct {
	Status      int    `json:"status"`
	Location    string `json:"location,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func idempotencyKeys(c *gin.Context, key string) (cacheKey, lockKey string) {
	cacheKey = fmt.Sprintf("idemp:%s:%s:%s", c.Request.URL.Path, c.ClientIP(), key)
	return cacheKey, cacheKey + ":lock"
}

// Idempotency makes a POST carrying an Idempotency-Key safe to resend: the
// first response is stored for ttl and replayed for repeats, while a repeat
// arriving during the first one gets 409. Requests without the header, and
// every request when rdb is nil, pass straight through. Redis failures
// fail open.
func Idempotency(rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) gin.HandlerFunc {
	l := zap.L().Named("middleware.idempotency")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("middleware.idempotency")
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if rdb == nil || key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey, lockKey := idempotencyKeys(c, key)

		val, err := rdb.Get(ctx, cacheKey).Bytes()
		switch {
		case err == nil:
			var stored storedResponse
			if err := json.Unmarshal(val, &stored); err == nil {
				replay(c, stored)
				return
			}
			l.Warn("discarding unreadable idempotency entry", zap.String("key", cacheKey))
		case !errors.Is(err, redis.Nil):
			l.Warn("idempotency lookup failed", zap.String("key", cacheKey), zap.Error(err))
			c.Next()
			return
		}

		locked, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			l.Warn("idempotency lock failed", zap.String("key", lockKey), zap.Error(err))
			c.Next()
			return
		}
		if !locked {
			response.AbortWithError(c,
				apperror.ErrRequestInProgress.HTTPStatus,
				apperror.ErrRequestInProgress.Code,
				apperror.ErrRequestInProgress.Message,
			)
			return
		}
		defer func() {
			if err := rdb.Del(ctx, lockKey).Err(); err != nil {
				l.Warn("idempotency unlock failed", zap.String("key", lockKey), zap.Error(err))
			}
		}()

		w := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		status := w.Status()
		if status >= http.StatusInternalServerError {
			return
		}

		payload, err := json.Marshal(storedResponse{
			Status:      status,
			Location:    w.Header().Get("Location"),
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
		})
		if err != nil {
			l.Error("idempotency encode failed", zap.Error(err))
			return
		}
		if err := rdb.Set(ctx, cacheKey, payload, ttl).Err(); err != nil {
			l.Warn("idempotency store failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
}

func replay(c *gin.Context, stored storedResponse) {
	c.Header(ReplayedHeader, "true")
	if stored.Location != "" {
		c.Header("Location", stored.Location)
	}
	if len(stored.Body) == 0 {
		c.AbortWithStatus(stored.Status)
		return
	}
	contentType := stored.ContentType
	if contentType == "" {
		contentType = "application/json; charset=utf-8"
	}
	c.Data(stored.Status, contentType, stored.Body)
	c.Abort()
}
