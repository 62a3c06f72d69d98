package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CounterStore is the injected counter service behind the rate limiter. The
// increment must be atomic across concurrent requests for the same key.
type CounterStore interface {
	// Increment atomically increments the counter at key, sets its expiry to
	// ttl, and returns the new count.
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RedisCounter implements CounterStore on Redis.
type RedisCounter struct {
	client *redis.Client
}

// NewRedisCounter creates a Redis-backed CounterStore.
func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

// Increment runs INCR and EXPIRE in one pipeline so two concurrent requests
// can never both observe the pre-increment count.
func (c *RedisCounter) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := c.client.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incrCmd.Val(), nil
}

// RateLimitConfig defines configuration for one rate-limited endpoint.
type RateLimitConfig struct {
	// Window is the fixed time window for rate limiting.
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window.
	Limit int
	// KeyPrefix namespaces counter keys per endpoint.
	KeyPrefix string
}

// RateLimiter gates expensive calls with a fixed-window counter keyed by
// (identity, endpoint, window start).
type RateLimiter struct {
	store  CounterStore
	config RateLimitConfig
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter instance.
func NewRateLimiter(store CounterStore, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		store:  store,
		config: config,
		now:    time.Now,
	}
}

// NewGenerationRateLimiter creates the limiter for meal-plan generation
// (10 requests per hour).
func NewGenerationRateLimiter(store CounterStore) *RateLimiter {
	return NewRateLimiter(store, RateLimitConfig{
		Window:    time.Hour,
		Limit:     10,
		KeyPrefix: "rate_limit:generate",
	})
}

// IsAllowed checks whether a request from the given identity is allowed.
// Returns: allowed, remaining requests, reset time, error. The window start
// is a deterministic function of wall-clock time; counts reset at each
// boundary rather than sliding.
func (rl *RateLimiter) IsAllowed(ctx context.Context, identity string) (bool, int, time.Time, error) {
	now := rl.now()
	windowStart := now.Truncate(rl.config.Window)
	resetAt := windowStart.Add(rl.config.Window)
	key := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, identity, windowStart.Unix())

	count, err := rl.store.Increment(ctx, key, rl.config.Window)
	if err != nil {
		return false, 0, resetAt, err
	}

	remaining := rl.config.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return int(count) <= rl.config.Limit, remaining, resetAt, nil
}

// Middleware returns a Gin middleware enforcing the limit per authenticated
// user. A counter-store failure fails open: the request proceeds, remaining
// is reported as 0, and the failure is logged. Quota enforcement is a cost
// control, not a security boundary.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		identity := fmt.Sprintf("%v", userID)
		allowed, remaining, resetAt, err := rl.IsAllowed(c.Request.Context(), identity)
		if err != nil {
			log.Printf("rate limit check failed: %v", err)
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Header("X-RateLimit-Remaining", "0")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 0 {
				retryAfter = 0
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded, please try again later",
				"retry_after": retryAfter,
				"reset_at":    resetAt.Unix(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
