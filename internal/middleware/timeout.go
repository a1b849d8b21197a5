package middleware

import (
	"net/http"
	"time"
)

const timeoutBody = `{"error":"Request timed out"}`

// Timeout cuts off handlers that run longer than timeout with a 503 JSON
// error. Handlers under it must set their own Content-Type when they do not
// answer with JSON.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return func(next http.Handler) http.Handler {
		limited := http.TimeoutHandler(next, timeout, timeoutBody)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// TimeoutHandler writes its body straight to w without headers of its own.
			w.Header().Set("Content-Type", "application/json")
			limited.ServeHTTP(w, r)
		})
	}
}
