// Package ratelimit provides per-client request limiting using a token
// bucket per client address.
package ratelimit

import (
	"sync"
	"time"
)

// Config holds rate limiting configuration. Limit requests are allowed per
// Window per client, with Burst extra capacity for short spikes.
type Config struct {
	Enabled         bool
	Limit           int
	Window          time.Duration
	Burst           int
	CleanupInterval time.Duration
}

// Info reports the limit state accompanying one decision.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	mu         sync.Mutex
	tokens     float64
	capacity   float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	lastAccess time.Time
}

// take refills for elapsed time, then consumes one token if available.
// Returns the decision, the remaining tokens, and when the bucket refills.
func (b *bucket) take(now time.Time) (bool, float64, time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens = min(b.capacity, b.tokens+now.Sub(b.lastRefill).Seconds()*b.refillRate)
	b.lastRefill = now
	b.lastAccess = now

	allowed := b.tokens >= 1
	if allowed {
		b.tokens--
	}

	reset := now
	if b.tokens < b.capacity {
		secondsToFull := (b.capacity - b.tokens) / b.refillRate
		reset = now.Add(time.Duration(secondsToFull * float64(time.Second)))
	}
	return allowed, b.tokens, reset
}

// Limiter manages one token bucket per client.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	cfg     *Config
	ticker  *time.Ticker
	stop    chan struct{}
}

// NewLimiter creates a limiter; a nil config loads from the environment.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = LoadConfig()
	}
	l := &Limiter{
		buckets: make(map[string]*bucket),
		cfg:     cfg,
	}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		l.ticker = time.NewTicker(cfg.CleanupInterval)
		l.stop = make(chan struct{})
		go l.cleanupLoop()
	}
	return l
}

// Allow decides whether one request from the client may proceed.
func (l *Limiter) Allow(clientID string) (bool, Info) {
	if !l.cfg.Enabled || l.cfg.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	allowed, remaining, reset := l.getBucket(clientID).take(time.Now())
	info := Info{
		Allowed:   allowed,
		Limit:     l.cfg.Limit,
		Remaining: int(remaining),
		ResetTime: reset,
	}
	if !allowed {
		if retry := time.Until(reset); retry > 0 {
			info.RetryAfter = retry
		}
	}
	return allowed, info
}

func (l *Limiter) getBucket(key string) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}
	capacity := float64(l.cfg.Limit + l.cfg.Burst)
	now := time.Now()
	b := &bucket{
		tokens:     capacity,
		capacity:   capacity,
		refillRate: float64(l.cfg.Limit) / l.cfg.Window.Seconds(),
		lastRefill: now,
		lastAccess: now,
	}
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.ticker.C:
			l.evictIdle(time.Now().Add(-time.Hour))
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops buckets idle since before the cutoff so one-off clients
// do not accumulate forever.
func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		b.mu.Lock()
		idle := b.lastAccess.Before(cutoff)
		b.mu.Unlock()
		if idle {
			delete(l.buckets, key)
		}
	}
}

// Stop halts the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
	if l.stop != nil {
		close(l.stop)
	}
}
