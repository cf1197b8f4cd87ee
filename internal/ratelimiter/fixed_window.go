package ratelimiter

import (
	"sync"
	"time"
)

// FixedWindowRateLimiter allows limit requests per key in each window. A key's
// window starts with its first request.
type FixedWindowRateLimiter struct {
	sync.Mutex
	clients   map[string]*window
	limit     int
	window    time.Duration
	now       func() time.Time
	nextSweep time.Time
}

type window struct {
	start time.Time
	count int
}

func NewFixedWindowLimiter(limit int, w time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		window:  w,
		now:     time.Now,
	}
}

// Allow reports whether key may proceed and, if not, how long until its window resets.
func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	now := rl.now()
	rl.evict(now)

	c, ok := rl.clients[key]
	if !ok {
		c = &window{start: now}
		rl.clients[key] = c
	}
	if c.count < rl.limit {
		c.count++
		return true, 0
	}
	return false, c.start.Add(rl.window).Sub(now)
}

// evict drops expired windows, at most once per window length.
func (rl *FixedWindowRateLimiter) evict(now time.Time) {
	if now.Before(rl.nextSweep) {
		return
	}
	rl.nextSweep = now.Add(rl.window)
	for key, c := range rl.clients {
		if now.Sub(c.start) >= rl.window {
			delete(rl.clients, key)
		}
	}
}
