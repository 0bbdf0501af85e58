// Package ratelimit bounds request rates per client identity with a fixed
// window counter. Counters live in process memory; horizontally scaled
// instances each keep their own window, which is an accepted drift, not a
// correctness target.
package ratelimit

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config is a named rate-limit policy.
type Config struct {
	Limit  int
	Window time.Duration
}

// Policy constants per endpoint class.
var (
	Auth     = Config{Limit: 5, Window: 15 * time.Minute}
	Mutation = Config{Limit: 30, Window: time.Minute}
	Query    = Config{Limit: 100, Window: time.Minute}
	API      = Config{Limit: 60, Window: time.Minute}
)

// Result reports the outcome of a check. Remaining and Reset are populated
// whether or not the request was allowed, so callers can always emit
// rate-limit headers.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

type entry struct {
	count int
	reset time.Time
}

// Limiter is an injectable fixed-window counter store. Construct one per
// process (or per test) and pass it into the router.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

func New() *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		now:     time.Now,
		done:    make(chan struct{}),
	}
}

// NewWithClock lets tests control time.
func NewWithClock(now func() time.Time) *Limiter {
	l := New()
	l.now = now
	return l
}

// Check records a request for identity under cfg. A fresh window starts when
// none exists or the previous one has elapsed.
func (l *Limiter) Check(identity string, cfg Config) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[identity]
	if !ok || !e.reset.After(now) {
		e = &entry{count: 1, reset: now.Add(cfg.Window)}
		l.entries[identity] = e
		return Result{Allowed: true, Limit: cfg.Limit, Remaining: cfg.Limit - 1, Reset: e.reset}
	}

	e.count++
	if e.count > cfg.Limit {
		return Result{Allowed: false, Limit: cfg.Limit, Remaining: 0, Reset: e.reset}
	}
	return Result{Allowed: true, Limit: cfg.Limit, Remaining: cfg.Limit - e.count, Reset: e.reset}
}

// StartSweep drops expired entries every interval to bound memory. Expired
// entries also self-correct on next access, so the sweep is housekeeping
// only.
func (l *Limiter) StartSweep(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.sweep()
			case <-l.done:
				return
			}
		}
	}()
}

func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.done) })
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for id, e := range l.entries {
		if !e.reset.After(now) {
			delete(l.entries, id)
		}
	}
}

// Identity derives the rate-limit key for a request: the authenticated user
// id when present, otherwise the client IP from standard proxy headers.
func Identity(r *http.Request, userID string) string {
	if userID != "" {
		return "user:" + userID
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if ip := strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0]); ip != "" {
			return "ip:" + ip
		}
	}
	if ip := r.Header.Get("X-Real-Ip"); ip != "" {
		return "ip:" + ip
	}
	if ip := r.Header.Get("CF-Connecting-Ip"); ip != "" {
		return "ip:" + ip
	}
	return "ip:unknown"
}
