package pacer

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// KeyFunc defines a function to extract the identifier (IP, API Key, UserID) from the request.
type KeyFunc func(r *http.Request) string

// Middleware is a standard Go net/http middleware admitting requests through
// a Gate. It can be used with any framework that supports the standard library.
func Middleware(gate Gate, keyFunc KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				http.Error(w, "Bad Request", http.StatusBadRequest)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()

			allowed, retryAfter, err := gate.Allow(ctx, key)
			if err != nil {
				// fail-open
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				if retryAfter > 0 {
					secs := (retryAfter + time.Second - 1) / time.Second
					w.Header().Set("Retry-After", strconv.FormatInt(int64(secs), 10))
				}
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "Too many requests",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
