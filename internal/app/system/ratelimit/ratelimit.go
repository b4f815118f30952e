// internal/app/system/ratelimit/ratelimit.go

// Package ratelimit throttles login attempts per client IP and per email.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter counts hits per key in fixed windows. Safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	hits    map[string]*bucket
	limit   int
	window  time.Duration
	now     func() time.Time
	stop    chan struct{}
	stopped sync.Once
}

type bucket struct {
	n       int
	resetAt time.Time
}

// New returns a limiter allowing limit hits per window and starts its
// janitor goroutine. Call Stop to end it.
func New(limit int, window time.Duration) *Limiter {
	l := &Limiter{
		hits:   make(map[string]*bucket),
		limit:  limit,
		window: window,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	go l.janitor(2 * window)
	return l
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.hits[key]
	if !ok || !now.Before(b.resetAt) {
		l.hits[key] = &bucket{n: 1, resetAt: now.Add(l.window)}
		return true
	}
	if b.n >= l.limit {
		return false
	}
	b.n++
	return true
}

// Remaining returns how many hits key has left in its current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.hits[key]
	if !ok || !l.now().Before(b.resetAt) {
		return l.limit
	}
	return max(l.limit-b.n, 0)
}

// Reset forgets key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	delete(l.hits, key)
	l.mu.Unlock()
}

// Stop ends the janitor goroutine.
func (l *Limiter) Stop() {
	l.stopped.Do(func() { close(l.stop) })
}

func (l *Limiter) janitor(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-t.C:
			l.mu.Lock()
			now := l.now()
			for k, b := range l.hits {
				if !now.Before(b.resetAt) {
					delete(l.hits, k)
				}
			}
			l.mu.Unlock()
		}
	}
}

// ClientIP returns the caller's IP, preferring the first X-Forwarded-For
// entry, then X-Real-IP, then RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// LoginLimiter combines an IP limiter and an email limiter.
type LoginLimiter struct {
	byIP    *Limiter
	byEmail *Limiter
}

// NewLoginLimiter allows ipLimit attempts per IP per minute and emailLimit
// attempts per email per five minutes. Non-positive values use 10 and 5.
func NewLoginLimiter(ipLimit, emailLimit int) *LoginLimiter {
	if ipLimit <= 0 {
		ipLimit = 10
	}
	if emailLimit <= 0 {
		emailLimit = 5
	}
	return &LoginLimiter{
		byIP:    New(ipLimit, time.Minute),
		byEmail: New(emailLimit, 5*time.Minute),
	}
}

// Check records an attempt and returns false plus a user-facing message when
// the caller must wait.
func (ll *LoginLimiter) Check(r *http.Request, email string) (bool, string) {
	if !ll.byIP.Allow(ClientIP(r)) {
		return false, "Terlalu banyak percobaan masuk. Tunggu satu menit lalu coba lagi."
	}
	if key := strings.ToLower(strings.TrimSpace(email)); key != "" {
		if !ll.byEmail.Allow(key) {
			return false, "Terlalu banyak percobaan untuk akun ini. Tunggu beberapa menit."
		}
	}
	return true, ""
}

// Succeeded clears the email counter after a successful sign-in.
func (ll *LoginLimiter) Succeeded(email string) {
	if key := strings.ToLower(strings.TrimSpace(email)); key != "" {
		ll.byEmail.Reset(key)
	}
}

// Stop ends both janitors.
func (ll *LoginLimiter) Stop() {
	ll.byIP.Stop()
	ll.byEmail.Stop()
}
