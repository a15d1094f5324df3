package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"recipe-api/internal/auth"
	"recipe-api/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// FailPolicy decides what happens when the limiter backend is unavailable.
type FailPolicy int

const (
	// FailOpen lets requests through when Redis errors.
	FailOpen FailPolicy = iota
	// FailClosed rejects requests with 503 when Redis errors.
	FailClosed
)

// CheckRateLimit counts a hit for resource/id in a fixed window.
// Returns true if allowed, false if the limit is exceeded.
func CheckRateLimit(ctx context.Context, rdb redis.Cmdable, resource, id string, limit int, window time.Duration) (bool, error) {
	if rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)

	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if cnt == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return cnt <= int64(limit), nil
}

// RateLimit enforces limit requests per window for each client under resource.
// Clients are keyed by authenticated user when known, otherwise by remote IP.
func RateLimit(rdb redis.Cmdable, resource string, limit int, window time.Duration, policy FailPolicy, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := clientKey(r)

			allowed, err := CheckRateLimit(r.Context(), rdb, resource, id, limit, window)
			if err != nil {
				if policy == FailClosed {
					logger.Warn().Err(err).Str("resource", resource).Msg("rate limit unavailable, rejecting request")
					writeLimitError(w, r, http.StatusServiceUnavailable, "rate limit unavailable")
					return
				}
				logger.Warn().Err(err).Str("resource", resource).Msg("rate limit unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			if !allowed {
				rateLimitRejects.WithLabelValues(resource).Inc()
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				writeLimitError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if id, ok := auth.IdentityFromContext(r.Context()); ok {
		return "user:" + strconv.FormatInt(id.UserID, 10)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func writeLimitError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		Error:         model.ErrCodeRateLimited,
		Message:       message,
		CorrelationID: GetRequestID(r.Context()),
	})
}
