package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/tinto-app/backend/internal/api/respond"
)

// NewRateLimitMiddleware applies a service-wide token bucket. Requests
// beyond the configured rate receive 429.
func NewRateLimitMiddleware(rps float64, burst int) mux.MiddlewareFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				respond.WriteError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
