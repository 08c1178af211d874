package errors

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sprintsync/sprintsync-api/internal/logger"
)

// Recovery converts panics into a 500 with the standard error body.
// When hideDetails is set (production) the panic value is not echoed back.
func Recovery(log *logger.Logger, hideDetails bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithContext(c.Request.Context()).WithComponent("http").Error("application error",
			slog.String("error", fmt.Sprint(recovered)),
			slog.String("method", c.Request.Method),
			slog.String("url", c.Request.URL.String()),
			slog.String("ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		)

		body := &APIError{Error: "Internal Server Error", Message: "Something went wrong"}
		if !hideDetails {
			body.Message = fmt.Sprint(recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}

// NoRoute answers unknown routes.
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":  "Route not found",
		"method": c.Request.Method,
		"url":    c.Request.URL.RequestURI(),
	})
}
