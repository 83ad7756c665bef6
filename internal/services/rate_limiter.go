package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"customer-chatbot/internal/metrics"
	"customer-chatbot/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// incrWindow bumps the counter for one window and sets its expiry on first use.
var incrWindow = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

const defaultRateLimitPrefix = "chatbot:ratelimit"

// FixedWindowLimiter counts requests per client in Redis so that every
// server instance shares the same quota.
type FixedWindowLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

func NewFixedWindowLimiter(client *redis.Client, prefix string, limit int, window time.Duration) (*FixedWindowLimiter, error) {
	if client == nil {
		return nil, errors.New("rate limiter requires a redis client")
	}
	if limit <= 0 || window < time.Millisecond {
		return nil, errors.New("rate limiter requires positive limit and window")
	}
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		prefix = defaultRateLimitPrefix
	}
	return &FixedWindowLimiter{client: client, prefix: prefix, limit: int64(limit), window: window}, nil
}

func (l *FixedWindowLimiter) windowKey(client string, now time.Time) string {
	return fmt.Sprintf("%s:%s:%d", l.prefix, client, now.UnixMilli()/l.window.Milliseconds())
}

// Allow reports whether client is still within its quota. While Redis is
// unreachable requests are let through and the error is logged and counted.
func (l *FixedWindowLimiter) Allow(client string) bool {
	if l == nil {
		return false
	}
	if client = strings.TrimSpace(client); client == "" {
		client = "unknown"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n, err := incrWindow.Run(ctx, l.client, []string{l.windowKey(client, time.Now())}, l.window.Milliseconds()).Int64()
	if err != nil {
		metrics.RateLimiterErrors.Inc()
		logger.Log.Warn("Rate limiter unavailable, allowing request",
			zap.String("client", client),
			zap.Error(err))
		return true
	}
	return n <= l.limit
}
