package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthed-zw/backend/utils"
)

const activityKeyPrefix = "activity:requests:"

// ActivityRecorder counts API requests per day in Redis. Best effort; a
// Redis outage never affects the request. The diagnostic endpoint reads the
// counter back.
func ActivityRecorder() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		rc := utils.GetRedis()
		if rc == nil {
			return
		}
		key := activityKeyPrefix + time.Now().Format("2006-01-02")
		c, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := rc.Incr(c, key).Err(); err == nil {
			// Keep two days so "today" survives midnight rollover reads.
			rc.Expire(c, key, 48*time.Hour)
		}
	}
}

// RequestsToday returns today's request count, zero when unavailable.
func RequestsToday() int64 {
	rc := utils.GetRedis()
	if rc == nil {
		return 0
	}
	c, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	n, err := rc.Get(c, activityKeyPrefix+time.Now().Format("2006-01-02")).Int64()
	if err != nil {
		return 0
	}
	return n
}
