package wallet

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Default unlock throttle: five failed attempts, then one more every 30s.
const (
	DefaultUnlockBurst    = 5
	DefaultUnlockInterval = 30 * time.Second
)

// unlockThrottle limits failed password attempts per wallet using a token
// bucket. Only failures take tokens; a success forgets the wallet.
type unlockThrottle struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newUnlockThrottle(interval time.Duration, burst int) *unlockThrottle {
	if interval <= 0 {
		interval = DefaultUnlockInterval
	}
	if burst <= 0 {
		burst = DefaultUnlockBurst
	}
	return &unlockThrottle{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(interval),
		burst:    burst,
	}
}

// blocked reports whether name has used up its failed attempts. Names
// with no recorded failures are not tracked.
func (t *unlockThrottle) blocked(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.limiters[name]
	if !ok {
		return false
	}
	if l.Tokens() >= float64(t.burst) {
		// Fully refilled: nothing left to remember.
		delete(t.limiters, name)
		return false
	}
	return l.Tokens() < 1
}

// fail records a failed attempt for name.
func (t *unlockThrottle) fail(name string) {
	t.limiter(name).Allow()
}

// reset forgets the failures recorded for name.
func (t *unlockThrottle) reset(name string) {
	t.mu.Lock()
	delete(t.limiters, name)
	t.mu.Unlock()
}

func (t *unlockThrottle) limiter(name string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.limiters[name]
	if !ok {
		l = rate.NewLimiter(t.limit, t.burst)
		t.limiters[name] = l
	}
	return l
}
