package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/AnshuShetty/HotelManagementBackend/pkg/logger"
)

type KeyExtractor func(r *http.Request) string

type ClientRateLimiter struct {
	mu        sync.RWMutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	extractor KeyExtractor
	log       *logger.Logger
	stopCh    chan struct{}
}

func NewClientRateLimiter(limit int, window time.Duration, extractor KeyExtractor, log *logger.Logger) *ClientRateLimiter {
	limiter := &ClientRateLimiter{
		requests:  make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		extractor: extractor,
		log:       log,
		stopCh:    make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *ClientRateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for key, timestamps := range rl.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *ClientRateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *ClientRateLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	now := time.Now()

	rl.mu.RLock()
	timestamps := rl.requests[key]
	rl.mu.RUnlock()

	validTimestamps := make([]time.Time, 0)
	for _, ts := range timestamps {
		if now.Sub(ts) < rl.window {
			validTimestamps = append(validTimestamps, ts)
		}
	}

	if len(validTimestamps) >= rl.limit {
		return false
	}

	validTimestamps = append(validTimestamps, now)

	rl.mu.Lock()
	rl.requests[key] = validTimestamps
	rl.mu.Unlock()

	return true
}

func ClientRateLimit(limiter *ClientRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := limiter.extractor(r)

			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(key) {
				rejectRateLimited(w, limiter.log, r, key)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rejectRateLimited(w http.ResponseWriter, log *logger.Logger, r *http.Request, key string) {
	log.Warn("Rate limit exceeded",
		"request_id", requestIDFromContext(r.Context()),
		"client", key,
		"path", r.URL.Path,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"error":"Rate limit exceeded"}`))
}

// RemoteAddrExtractor keys rate limiting by client IP.
func RemoteAddrExtractor(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
