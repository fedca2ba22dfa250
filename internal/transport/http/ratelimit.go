package httptransport

import (
	"sync"
	"time"
)

// writeLimiter enforces a minimum interval between XP writes per wallet.
// The client already throttles itself to the same window, so a hit here
// means a misbehaving or duplicated client.
type writeLimiter struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
	now    func() time.Time
}

func newWriteLimiter(window time.Duration) *writeLimiter {
	return &writeLimiter{
		window: window,
		last:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// Allow reports whether a write for the wallet may proceed and, if so,
// records it.
func (l *writeLimiter) Allow(address string) bool {
	if l.window <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if t, ok := l.last[address]; ok && now.Sub(t) < l.window {
		return false
	}
	if len(l.last) > 10000 {
		l.prune(now)
	}
	l.last[address] = now
	return true
}

func (l *writeLimiter) prune(now time.Time) {
	for addr, t := range l.last {
		if now.Sub(t) >= l.window {
			delete(l.last, addr)
		}
	}
}
