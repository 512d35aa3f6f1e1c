package middleware

import (
	"fmt"
	"time"

	"github.com/ariebrainware/gym-portal/monitoring"
	"github.com/ariebrainware/gym-portal/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger records every request as an ENDPOINT_CALL security
// event and feeds the request metrics. Events are persisted when
// util.SetSecurityLoggerDB was called during startup.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		monitoring.Get().ObserveRequest(c.Request.Method, route, status, duration)

		userID, _ := GetUserID(c)
		roleID, _ := GetRoleID(c)

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        route,
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"query":       c.Request.URL.RawQuery,
		}
		if userID != 0 {
			details["user_id"] = userID
		}
		if roleID != 0 {
			details["role_id"] = roleID
		}

		uid := ""
		if userID != 0 {
			uid = fmt.Sprintf("%d", userID)
		}
		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventEndpointCall,
			UserID:    uid,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			RequestID: GetRequestID(c),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		})
	}
}
