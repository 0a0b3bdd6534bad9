// Package ratelimit limits expensive requests per client using token buckets
// from golang.org/x/time/rate.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter manages one token bucket per client.
type Limiter struct {
	config  *Config
	mu      sync.Mutex
	buckets map[string]*clientBucket
	now     func() time.Time

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration. A nil
// config disables limiting.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{}
	}

	l := &Limiter{
		config:  config,
		buckets: make(map[string]*clientBucket),
		now:     time.Now,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanup()
	}
	return l
}

// Allow reports whether a request from clientID to path may proceed.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	cfg := l.config
	if !cfg.Enabled || cfg.Limit <= 0 || cfg.Window <= 0 || cfg.Whitelist[clientID] || !Matches(path, method, cfg.Endpoints) {
		return true, Info{Allowed: true}
	}

	lim := l.bucket(clientID)
	now := l.now()

	if lim.AllowN(now, 1) {
		return true, Info{
			Allowed:   true,
			Limit:     cfg.Limit,
			Remaining: int(lim.TokensAt(now)),
		}
	}

	r := lim.ReserveN(now, 1)
	retryAfter := r.DelayFrom(now)
	r.CancelAt(now)

	return false, Info{
		Allowed:    false,
		Limit:      cfg.Limit,
		Remaining:  0,
		RetryAfter: retryAfter,
	}
}

// bucket gets or creates the token bucket for clientID.
func (l *Limiter) bucket(clientID string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[clientID]
	if !ok {
		burst := l.config.Burst
		if burst <= 0 {
			burst = l.config.Limit
		}
		every := l.config.Window / time.Duration(l.config.Limit)
		b = &clientBucket{limiter: rate.NewLimiter(rate.Every(every), burst)}
		l.buckets[clientID] = b
	}
	b.lastSeen = l.now()
	return b.limiter
}

func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.evictIdle()
		case <-l.cleanupStop:
			return
		}
	}
}

// evictIdle drops buckets unused for longer than IdleTTL.
func (l *Limiter) evictIdle() {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	for id, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, id)
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupTicker != nil {
			l.cleanupTicker.Stop()
		}
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
