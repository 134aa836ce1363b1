package serverutils

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"election-assistant-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// WindowCounter is the subset of the Redis client the limiter needs.
type WindowCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

type RateLimiterConfig struct {
	// Requests allowed per client per window; 0 disables the limiter
	Limit  int
	Window time.Duration
	Prefix string
}

// RateLimiter counts requests per client IP in fixed windows. When Redis
// cannot be reached the request is let through.
func RateLimiter(counter WindowCounter, cfg RateLimiterConfig, log logger.ILogger) fiber.Handler {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "ratelimit"
	}

	return func(ctx *fiber.Ctx) error {
		if counter == nil || cfg.Limit <= 0 {
			return ctx.Next()
		}

		now := time.Now()
		window := now.Truncate(cfg.Window)
		key := fmt.Sprintf("%s:%s:%d", cfg.Prefix, ctx.IP(), window.Unix())

		rctx, cancel := context.WithTimeout(ctx.UserContext(), 200*time.Millisecond)
		defer cancel()

		count, err := counter.Incr(rctx, key).Result()
		if err != nil {
			log.Warn("RateLimiter", "Redis unavailable, allowing request", map[string]interface{}{"error": err.Error()})
			return ctx.Next()
		}
		if count == 1 {
			if err := counter.Expire(rctx, key, cfg.Window).Err(); err != nil {
				log.Warn("RateLimiter", "Failed to set window expiry", map[string]interface{}{"key": key, "error": err.Error()})
			}
		}

		remaining := cfg.Limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		ctx.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		ctx.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if int(count) > cfg.Limit {
			retry := window.Add(cfg.Window).Sub(now)
			ctx.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(retry.Seconds())+1))
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many messages, please slow down")
		}
		return ctx.Next()
	}
}
