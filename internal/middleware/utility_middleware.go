package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/utils"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// CORSMiddleware configures CORS headers. An empty list or "*" allows any origin.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	allowAll := len(allowedOrigins) == 0
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
	}
	if allowAll {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
	}

	return cors.New(config)
}

// RequestIDMiddleware adds a request ID to each request, reusing the caller's
// X-Request-ID when present.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID))
		c.Next()
	}
}

// GetRequestID returns the id set by RequestIDMiddleware, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// LoggingMiddleware logs every request once it has been served.
func LoggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.LogAPIRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start), GetRequestID(c))
		for _, ginErr := range c.Errors {
			if appErr, ok := ginErr.Err.(*models.AppError); ok && appErr.Kind == models.KindInternal {
				log.WithRequestID(GetRequestID(c)).WithError(appErr).Error("request failed")
			}
		}
	}
}

// RecoveryMiddleware turns a panic into the standard JSON 500 body.
func RecoveryMiddleware(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.WithRequestID(GetRequestID(c)).WithFields(map[string]interface{}{
			"panic": fmt.Sprint(recovered),
			"stack": string(debug.Stack()),
		}).Error("panic while serving request")

		utils.ErrorResponse(c, http.StatusInternalServerError, models.CodeInternalError,
			fmt.Sprintf("Internal server error: %v", recovered))
		c.Abort()
	})
}
