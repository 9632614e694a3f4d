package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDHeader = "X-User-Id"

const userIDContextKey = "caller_user_id"

// Identity extracts the opaque caller identifier from the X-User-Id
// header. Authentication itself is handled upstream; an absent header
// means the caller is a guest.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := strings.TrimSpace(c.GetHeader(userIDHeader)); userID != "" {
			c.Set(userIDContextKey, userID)
		}
		c.Next()
	}
}

// CallerID returns the caller identifier, or nil for guests.
func CallerID(c *gin.Context) *string {
	if val, ok := c.Get(userIDContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return &id
		}
	}
	return nil
}
