package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"field-rental/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

var internalError = httperr.New(http.StatusInternalServerError, "INTERNAL", "Internal server error")

// ErrorHandler renders the last public error when a handler recorded one without
// writing a body, and logs the full chain of anything that ended as a 5xx.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		pub := lastPublic(c)
		var resp httperr.Response
		if pub != nil {
			resp = pub.Meta.(httperr.Response)
		}
		if pub != nil && resp.Status >= http.StatusInternalServerError {
			slog.ErrorContext(c.Request.Context(), "request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"code", resp.Error.Code,
				"error", fmt.Sprintf("%+v", pub.Err))
		}

		if c.Writer.Written() {
			return
		}
		if pub != nil {
			c.JSON(resp.Status, resp)
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		if len(c.Errors) > 0 {
			c.JSON(internalError.Status, internalError)
		}
	}
}

// lastPublic returns the newest public error whose Meta is an httperr.Response.
func lastPublic(c *gin.Context) *gin.Error {
	for i := len(c.Errors) - 1; i >= 0; i-- {
		e := c.Errors[i]
		if !e.IsType(gin.ErrorTypePublic) {
			continue
		}
		if _, ok := e.Meta.(httperr.Response); ok {
			return e
		}
	}
	return nil
}

// CustomRecovery turns a handler panic into a 500 with the usual error envelope.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.ErrorContext(c.Request.Context(), "recovered from panic",
					"panic", rec,
					"method", c.Request.Method,
					"path", c.Request.URL.Path)
				c.AbortWithStatusJSON(internalError.Status, internalError)
			}
		}()
		c.Next()
	}
}
