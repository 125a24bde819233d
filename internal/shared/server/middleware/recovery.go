package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"recipe-backend/internal/shared/server/respond"
	"recipe-backend/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 error envelope. A panic that
// escapes a store operation leaves the store unlocked, so the request that
// triggered it is the only casualty.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			storeOp, _ := c.Get("storeOp")
			telemetry.Error("request.panic", map[string]any{
				"request_id": RequestIDFromContext(c),
				"panic":      rec,
				"route":      c.FullPath(),
				"store_op":   storeOp,
				"method":     c.Request.Method,
				"stack":      string(debug.Stack()),
			})
			respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected server error", nil)
		}()
		c.Next()
	}
}
