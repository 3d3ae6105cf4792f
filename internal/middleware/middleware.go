// Package middleware provides the HTTP middleware stack
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"legalvoice/internal/logger"
	"legalvoice/internal/utils"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestLogKey   = "request_log"
)

// RequestLogger tags every request with a request ID (taken from
// X-Request-ID or generated), echoes it back and logs the outcome.
func RequestLogger(log *logrus.Entry) gin.HandlerFunc {
	log = logger.OrDiscard(log)

	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Header(RequestIDHeader, reqID)

		entry := log.WithFields(logrus.Fields{
			"req_id": reqID,
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		})
		c.Set(requestLogKey, entry)

		c.Next()

		status := c.Writer.Status()
		entry = entry.WithFields(logrus.Fields{
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"remote_ip":  c.ClientIP(),
		})
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request completed")
		case status >= http.StatusBadRequest:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
	}
}

// Log returns the request-scoped entry set by RequestLogger, or a discarding
// one when the middleware is not installed.
func Log(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(requestLogKey); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return logger.OrDiscard(nil)
}

// Recovery turns a panic into a JSON 500
func Recovery(log *logrus.Entry) gin.HandlerFunc {
	log = logger.OrDiscard(log)

	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithFields(logrus.Fields{
			"path":  c.Request.URL.Path,
			"panic": recovered,
		}).Error("panic recovered")
		utils.Error(c, http.StatusInternalServerError, "something broke")
		c.Abort()
	})
}

// CORS allows a single browser origin, with credentials
func CORS(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Setup installs request logging, recovery and CORS in that order
func Setup(r *gin.Engine, log *logrus.Entry, origin string) {
	r.Use(RequestLogger(log))
	r.Use(Recovery(log))
	r.Use(CORS(origin))
}
