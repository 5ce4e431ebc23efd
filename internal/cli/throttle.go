// internal/cli/throttle.go
package cli

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// loginThrottle slows repeated password attempts per email, on top of the
// hard attempt cap enforced by the login loop.
type loginThrottle struct {
	attempts map[string]*rate.Limiter
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
}

func newLoginThrottle(interval time.Duration, burst int) *loginThrottle {
	return &loginThrottle{
		attempts: make(map[string]*rate.Limiter),
		rate:     rate.Every(interval),
		burst:    burst,
	}
}

func (t *loginThrottle) limiter(email string) *rate.Limiter {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	l, exists := t.attempts[email]
	if !exists {
		l = rate.NewLimiter(t.rate, t.burst)
		t.attempts[email] = l
	}
	return l
}

// Delay returns how long the caller must wait before the next attempt for
// this email, consuming one token.
func (t *loginThrottle) Delay(email string) time.Duration {
	return t.limiter(email).Reserve().Delay()
}
