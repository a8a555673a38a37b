package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthed-zw/backend/middleware"
)

// tokenTTL is how long issued session tokens stay valid.
const tokenTTL = 72 * time.Hour

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

func getUsername(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(middleware.ContextUsernameKey)
	if !exists {
		return "", false
	}
	name, _ := value.(string)
	return name, name != ""
}

// nowStamp returns the creation timestamp format used for KV records.
func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
