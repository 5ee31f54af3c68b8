package middleware

import (
	"log/slog"
	"net/http"

	"scooter-rental/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if !err.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := err.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}

		switch status := c.Writer.Status(); status {
		case http.StatusOK:
			c.JSON(http.StatusInternalServerError, httperr.New(c, http.StatusInternalServerError, "Internal server error"))
		case http.StatusNotFound:
			c.JSON(status, httperr.New(c, status, "Not found"))
		case http.StatusMethodNotAllowed:
			c.JSON(status, httperr.New(c, status, "Method not allowed"))
		default:
			c.Status(status)
			c.Writer.WriteHeaderNow()
		}
	}
}

func CustomRecovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorContext(c.Request.Context(), "recovered from panic", "error", err, "path", c.Request.URL.Path)

				c.AbortWithStatusJSON(http.StatusInternalServerError, httperr.New(c, http.StatusInternalServerError, "Internal server error"))
			}
		}()
		c.Next()
	}
}
