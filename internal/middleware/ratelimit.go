package middleware

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pville/moodlog/internal/apperror"
)

// ipWindow tracks how many requests one client IP has made in the current
// fixed window.
type ipWindow struct {
	count   int
	startAt time.Time
}

// RateLimit returns middleware allowing at most maxRequests per client IP
// per window, answering 429 beyond that. State is in-memory per process;
// the limits guard the credential and generation endpoints, where a rough
// single-node bound is enough.
func RateLimit(maxRequests int, window time.Duration) echo.MiddlewareFunc {
	var (
		mu      sync.Mutex
		windows = map[string]*ipWindow{}
	)

	// Reap stale windows periodically so idle IPs don't accumulate.
	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			mu.Lock()
			cutoff := time.Now().Add(-2 * window)
			for ip, w := range windows {
				if w.startAt.Before(cutoff) {
					delete(windows, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			now := time.Now()

			mu.Lock()
			w, ok := windows[ip]
			if !ok || now.Sub(w.startAt) > window {
				windows[ip] = &ipWindow{count: 1, startAt: now}
				mu.Unlock()
				return next(c)
			}
			w.count++
			over := w.count > maxRequests
			mu.Unlock()

			if over {
				return apperror.NewRateLimited("Rate limit exceeded. Please try again later.")
			}
			return next(c)
		}
	}
}
