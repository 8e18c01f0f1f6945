package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// EventCapturer is the slice of the analytics client this middleware needs.
type EventCapturer interface {
	IsEnabled() bool
	Capture(distinctID string, event string, properties map[string]any)
}

// analyticsSkippedPaths contains paths that should never produce events.
var analyticsSkippedPaths = map[string]bool{
	"/health": true,
}

// AnalyticsMiddleware creates a Gin middleware handler that captures one
// event per successful authenticated request, keyed by the acting user ID.
// Unauthenticated and failed requests produce nothing.
func AnalyticsMiddleware(capturer EventCapturer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if capturer == nil || !capturer.IsEnabled() || analyticsSkippedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// The auth middleware runs inside Next; by now the user ID is in the
		// request context for any authenticated route.
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		// Event name from the route pattern, e.g.
		// "/api/v1/expenses/:id/approve" -> "api_v1_expenses_:id_approve".
		event := strings.TrimPrefix(c.FullPath(), "/")
		event = strings.ReplaceAll(event, "/", "_")
		if event == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		capturer.Capture(userID, event, props)
	}
}
