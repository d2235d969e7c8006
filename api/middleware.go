// Package api - HTTP middleware
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"rating-engine/internal/errors"
)

const (
	headerRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"

	corsAllowHeaders = "authorization, x-client-info, apikey, content-type"
)

// requestID tags every request with an ID, reusing the caller's if present.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// cors adds permissive CORS headers and answers preflight requests.
func cors(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// rateLimit rejects requests once the shared token bucket is empty.
func (s *Server) rateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			s.fail(c, errors.New(errors.TypeRateLimited, "Too many requests"))
			return
		}
		c.Next()
	}
}

// accessLog logs one line per request and records its latency.
func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		s.metrics.observeRequest(route, c.Request.Method, status, elapsed)

		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", elapsed),
			zap.String(ctxRequestID, c.GetString(ctxRequestID)))
	}
}

// recovery turns a panic into a generic 500.
func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.fail(c, errors.Internal("panic in handler", fmt.Errorf("%v", recovered)))
	})
}
