package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/heartmarshall/bookmarks-backend/internal/metrics"
	"github.com/heartmarshall/bookmarks-backend/pkg/ctxutil"
)

// RateLimiter counts requests per scope and client IP in fixed windows.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type window struct {
	start time.Time
	size  time.Duration
	count int
}

// NewRateLimiter creates a limiter that drops finished windows every
// cleanupInterval. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := newRateLimiter(time.Now)
	go rl.cleanup(cleanupInterval)
	return rl
}

func newRateLimiter(now func() time.Time) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		now:     now,
		stop:    make(chan struct{}),
	}
}

// Stop terminates the background cleanup. It is safe to call twice.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit allows max requests per window for each client IP within scope.
// A non-positive max or window disables limiting.
func (rl *RateLimiter) Limit(scope string, max int, size time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if max <= 0 || size <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ctxutil.ClientIPFromCtx(r.Context())
			if ip == "" {
				ip = clientIP(r)
			}

			if wait, ok := rl.take(scope+"|"+ip, max, size); !ok {
				metrics.RateLimitedTotal.WithLabelValues(scope).Inc()
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				writeError(w, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// take records a request for key. When the window is full it returns the
// time left until the window resets.
func (rl *RateLimiter) take(key string, max int, size time.Duration) (time.Duration, bool) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	win, ok := rl.windows[key]
	if !ok || now.Sub(win.start) >= size {
		win = &window{start: now, size: size}
		rl.windows[key] = win
	}
	if win.count >= max {
		return win.start.Add(size).Sub(now), false
	}
	win.count++
	return 0, true
}

func (rl *RateLimiter) sweep() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, win := range rl.windows {
		if now.Sub(win.start) >= win.size {
			delete(rl.windows, key)
		}
	}
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}
