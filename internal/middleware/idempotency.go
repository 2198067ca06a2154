package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyLockTTL  = 30 * time.Second
	idempotencyCacheTTL = 24 * time.Hour
)

// replayWriter tees the response body so a successful outcome can be
// cached for replay.
type replayWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *replayWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency shields duplicate POSTs (double-tapped check-in buttons,
// client retries) behind a redis lock keyed by the Idempotency-Key header.
// A successful response body is cached under the key, so a retry replays
// the original answer instead of re-running the handler. Requests without
// the header pass through untouched.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		if cached, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			c.Abort()
			return
		}

		// Short expiry so a crashed worker cannot wedge the key forever
		isNew, _ := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()

		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "Your request is still being processed, please wait.",
			})
			return
		}

		w := &replayWriter{ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		// Only a success is worth replaying; a failure releases the lock so
		// the client can retry with the same key.
		if status := w.Status(); status >= http.StatusOK && status < http.StatusMultipleChoices {
			rdb.Set(ctx, cacheKey, w.body.String(), idempotencyCacheTTL)
		}
		rdb.Del(ctx, lockKey)
	}
}
