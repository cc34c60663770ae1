package server

import (
	"fmt"
	"net/http"
	"time"

	"token-exchange/services/exchange/helpers"
	"token-exchange/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	fields := map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	}
	if caller, ok := helpers.CallerFrom(c); ok {
		fields["caller"] = caller.Hex()
	}
	utils.Info("HTTP Request", fields)
}

// CallerMiddleware authenticates the caller from the X-Account header.
// Requests without a valid account are rejected with 401.
func CallerMiddleware(c *gin.Context) {
	raw := c.GetHeader(helpers.CallerHeader)
	if raw == "" {
		utils.JSONError(c, http.StatusUnauthorized, fmt.Errorf("missing %s header", helpers.CallerHeader), "caller account required")
		c.Abort()
		return
	}

	caller, err := helpers.ParseAccount(raw)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, err, "caller account required")
		utils.Warn("CallerMiddleware: rejected caller", map[string]any{"header": raw})
		c.Abort()
		return
	}

	c.Set(helpers.CallerKey, caller)
	c.Next()
}
