package middleware

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/eventhub/platform/internal/transport/http/response"
)

// IPLimiter is the redis-backed fixed-window counter.
type IPLimiter interface {
	AllowRequest(ctx context.Context, ip string, limit int, window time.Duration) (bool, error)
}

// RateLimit throttles by client IP. The limiter fails open, so a redis
// outage never turns into a denial of service from our own side.
func RateLimit(limiter IPLimiter, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			ok, _ := limiter.AllowRequest(r.Context(), ip, limit, window)
			if !ok {
				response.JSON(w, http.StatusTooManyRequests, map[string]string{
					"message": "too many requests",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
