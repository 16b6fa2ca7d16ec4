package blogshell

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// SearchLimiter rate-limits search requests per IP address with a sliding
// window.
type SearchLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
	stop   chan struct{}
	once   sync.Once
}

// NewSearchLimiter creates a SearchLimiter that allows max requests per
// window. Call Stop to release its cleanup goroutine.
func NewSearchLimiter(max int, window time.Duration) *SearchLimiter {
	l := &SearchLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		stop:   make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *SearchLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
		}
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for ip, hits := range l.hits {
			if kept := prune(hits, cutoff); len(kept) == 0 {
				delete(l.hits, ip)
			} else {
				l.hits[ip] = kept
			}
		}
		l.mu.Unlock()
	}
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// Allow records a request from ip and reports whether it is within the limit.
func (l *SearchLimiter) Allow(ip string) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := prune(l.hits[ip], now.Add(-l.window))
	if len(kept) >= l.max {
		l.hits[ip] = kept
		return false
	}
	l.hits[ip] = append(kept, now)
	return true
}

// Stop ends the cleanup goroutine.
func (l *SearchLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// Middleware limits requests that carry a search term. Plain page views
// pass through.
func (l *SearchLimiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.QueryParam("q") == "" || l.Allow(c.RealIP()) {
			return next(c)
		}
		c.Response().Header().Set("Retry-After", "60")
		return c.String(http.StatusTooManyRequests, "Too many searches, slow down.")
	}
}
