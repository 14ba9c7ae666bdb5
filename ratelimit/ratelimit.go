// Package ratelimit implements a fixed-window in-memory request counter. It
// is an in-process, single-instance limiter: replicas of the server do not
// share state.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Result describes the outcome of a single Check call.
type Result struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}

type window struct {
	count     int
	resetTime time.Time
}

// Limiter counts requests per key within fixed windows. A background sweep
// removes expired windows so the table stays bounded; the sweep never blocks
// Check callers beyond the shared mutex.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
	done    chan struct{}
}

// New starts a limiter whose sweep runs every sweepInterval. Call Stop to
// terminate the sweep goroutine.
func New(sweepInterval time.Duration) *Limiter {
	l := &Limiter{
		windows: make(map[string]*window),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go l.sweep(sweepInterval)
	return l
}

// Check records a request for key against limit requests per windowDur.
// A missing or expired window starts a fresh one with count 1. When the limit
// is reached the call is denied and the reset time is left untouched so the
// caller can surface a retry-after hint.
func (l *Limiter) Check(key string, limit int, windowDur time.Duration) Result {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.After(w.resetTime) {
		reset := now.Add(windowDur)
		l.windows[key] = &window{count: 1, resetTime: reset}
		return Result{Allowed: true, Remaining: limit - 1, ResetTime: reset}
	}

	if w.count >= limit {
		return Result{Allowed: false, Remaining: 0, ResetTime: w.resetTime}
	}

	w.count++
	return Result{Allowed: true, Remaining: limit - w.count, ResetTime: w.resetTime}
}

// Stop terminates the background sweep. The limiter stays usable; expired
// windows are then reclaimed lazily by Check.
func (l *Limiter) Stop() {
	close(l.done)
}

func (l *Limiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.removeExpired(l.now())
		}
	}
}

func (l *Limiter) removeExpired(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, w := range l.windows {
		if now.After(w.resetTime) {
			delete(l.windows, key)
		}
	}
}

// ClientIP extracts the address used as a rate-limit key: the first hop of
// X-Forwarded-For, then X-Real-Ip, then the connection's remote address.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if i := strings.Index(forwarded, ","); i >= 0 {
			forwarded = forwarded[:i]
		}
		return strings.TrimSpace(forwarded)
	}

	if realIP := r.Header.Get("X-Real-Ip"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
