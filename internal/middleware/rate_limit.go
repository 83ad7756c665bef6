package middleware

import (
	"net/http"

	"customer-chatbot/internal/metrics"
	"customer-chatbot/internal/utils"
	"customer-chatbot/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Limiter decides whether a client key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// RateLimit rejects requests over quota with 429. A nil limiter disables it.
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		if !limiter.Allow(c.ClientIP()) {
			metrics.RateLimitedTotal.Inc()
			logger.Log.Warn("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", RequestID(c)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				utils.NewErrorResponse(http.StatusTooManyRequests, "Too many requests, please slow down"))
			return
		}
		c.Next()
	}
}
