package limiter

import (
	"context"
	"math/rand"
	"time"
)

// RateLimiter spaces out network requests to the same host.
// Responsibilities:
// - Bookkeep each hostname's last fetch timestamp
// - Compute the remaining delay for a hostname given base delay and jitter
// - Block the caller until that delay elapsed
type RateLimiter interface {
	ResolveDelay(host string) time.Duration
	MarkLastFetchAsNow(host string)
	Wait(ctx context.Context, host string) error
}

// HostRateLimiter is the sequential RateLimiter. Requests are issued one at a
// time, so it keeps no locks and must not be shared across goroutines.
type HostRateLimiter struct {
	baseDelay   time.Duration
	jitter      time.Duration
	hostTimings map[string]hostTiming
	rng         *rand.Rand
	now         func() time.Time
}

func NewHostRateLimiter(baseDelay, jitter time.Duration, randomSeed int64) *HostRateLimiter {
	return &HostRateLimiter{
		baseDelay:   baseDelay,
		jitter:      jitter,
		hostTimings: make(map[string]hostTiming),
		rng:         rand.New(rand.NewSource(randomSeed)),
		now:         time.Now,
	}
}

// SetClock allows injecting a fake clock for testing
func (r *HostRateLimiter) SetClock(now func() time.Time) {
	r.now = now
}

// Mark the given host lastFetch to now
func (r *HostRateLimiter) MarkLastFetchAsNow(host string) {
	r.hostTimings[host] = hostTiming{lastFetchAt: r.now()}
}

// Compute the remaining delay for given host
// FinalDelay = BaseDelay + Jitter - elapsed since last fetch
func (r *HostRateLimiter) ResolveDelay(host string) time.Duration {
	currentHostTiming, exists := r.hostTimings[host]

	// return no delay if the host not registered yet
	if !exists {
		return 0
	}

	finalDelay := r.baseDelay + r.computeJitter()
	elapsed := r.now().Sub(currentHostTiming.lastFetchAt)
	if elapsed < finalDelay {
		return finalDelay - elapsed
	}
	return 0
}

// Wait blocks until the host may be fetched again or ctx is done.
func (r *HostRateLimiter) Wait(ctx context.Context, host string) error {
	delay := r.ResolveDelay(host)
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *HostRateLimiter) BaseDelay() time.Duration {
	return r.baseDelay
}

func (r *HostRateLimiter) Jitter() time.Duration {
	return r.jitter
}

// Returns a pseudo-random duration in [0, jitter)
func (r *HostRateLimiter) computeJitter() time.Duration {
	if r.jitter <= 0 {
		return 0
	}
	return time.Duration(r.rng.Int63n(int64(r.jitter)))
}
