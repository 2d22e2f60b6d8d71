package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nexus-project-api/internal/response"
)

// Recovery turns a panic into a 500 envelope. Route pattern and caller are
// logged so the failing task or project request can be found again.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			fields := []zap.Field{
				zap.String("panic", fmt.Sprintf("%v", rec)),
				zap.String("route", c.FullPath()),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Stack("stacktrace"),
			}
			if userID, ok := UserID(c); ok {
				fields = append(fields, zap.String("user_id", userID.String()))
			}
			logger.Error("Panic recovered", fields...)

			if c.Writer.Written() {
				// headers already went out (websocket upgrade or partial body)
				c.Abort()
				return
			}
			response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
			c.Abort()
		}()

		c.Next()
	}
}
