package api

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/reporthub/reporthub-api/config"
	"github.com/reporthub/reporthub-api/models"
)

// Counter is the small slice of redis the rate limiter needs
type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// RedisCounter implements Counter on a go-redis client
type RedisCounter struct {
	Client redis.Cmdable
}

// NewRedisCounter connects to addr
func NewRedisCounter(addr, password string) *RedisCounter {
	return &RedisCounter{Client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})}
}

func (c *RedisCounter) Incr(ctx context.Context, key string) (int64, error) {
	return c.Client.Incr(ctx, key).Result()
}

func (c *RedisCounter) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.Client.Expire(ctx, key, ttl).Err()
}

func (c *RedisCounter) TTL(ctx context.Context, key string) (time.Duration, error) {
	return c.Client.TTL(ctx, key).Result()
}

// ReportRateLimiter caps how many reports one citizen may file per window
type ReportRateLimiter struct {
	Counter Counter
	Limit   int64
	Window  time.Duration
	Prefix  string
}

// NewReportRateLimiter returns a daily limiter
func NewReportRateLimiter(c Counter, limit int) *ReportRateLimiter {
	return &ReportRateLimiter{
		Counter: c,
		Limit:   int64(limit),
		Window:  24 * time.Hour,
		Prefix:  "report-limit",
	}
}

// Middleware must run behind the Authenticator, it keys the count on the verified email
func (l *ReportRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := EmailFromContext(r.Context())
		if !ok {
			config.ErrorStatus("missing caller identity", http.StatusUnauthorized, w, nil)
			return
		}

		ctx, cancel := WithQueryTimeout(r.Context())
		defer cancel()

		key := l.Prefix + ":" + email
		count, err := l.Counter.Incr(ctx, key)
		if err != nil {
			config.ErrorStatus("failed to increment report count", http.StatusInternalServerError, w, err)
			return
		}
		if count == 1 {
			if err := l.Counter.Expire(ctx, key, l.Window); err != nil {
				config.ErrorStatus("failed to set report count expiry", http.StatusInternalServerError, w, err)
				return
			}
		}

		if count > l.Limit {
			retryAfter, err := l.Counter.TTL(ctx, key)
			if err != nil {
				zap.S().Warnw("failed to read report limit ttl", "email", email, "error", err)
			}
			zap.S().Infow("report rate limit exceeded", "email", email, "count", count)
			WriteJSON(w, http.StatusTooManyRequests, models.RateLimitResponse{
				Error:      "rate limit exceeded",
				RetryAfter: retryAfter.Seconds(),
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
