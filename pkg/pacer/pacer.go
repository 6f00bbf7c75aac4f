// Package pacer spaces outgoing requests to a single site.
package pacer

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum delay between requests and a longer cooldown
// after every N requests. The delay holds both between request starts and
// between the end of one download (reported with Done) and the next start.
// One Pacer should be shared by everything that talks to the same host.
type Pacer struct {
	limiter       *rate.Limiter
	delay         time.Duration
	cooldownEvery int
	cooldown      time.Duration

	// sleep and now are replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time

	mu       sync.Mutex
	requests int
	lastDone time.Time
}

// New returns a Pacer. A zero delay disables spacing and a zero
// cooldownEvery disables cooldowns.
func New(delay time.Duration, cooldownEvery int, cooldown time.Duration) *Pacer {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Pacer{
		limiter:       rate.NewLimiter(limit, 1),
		delay:         delay,
		cooldownEvery: cooldownEvery,
		cooldown:      cooldown,
		sleep:         sleepContext,
		now:           time.Now,
	}
}

// Wait counts one request and blocks until it may be sent. Every
// cooldownEvery-th request first sits out the cooldown period.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	p.requests++
	n := p.requests
	p.mu.Unlock()

	if p.cooldownEvery > 0 && p.cooldown > 0 && n%p.cooldownEvery == 0 {
		if err := p.sleep(ctx, p.cooldown); err != nil {
			return err
		}
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	last := p.lastDone
	p.mu.Unlock()
	if p.delay <= 0 || last.IsZero() {
		return nil
	}
	if gap := p.delay - p.now().Sub(last); gap > 0 {
		return p.sleep(ctx, gap)
	}
	return nil
}

// Done records that a download finished, failed or not. The next Wait
// keeps at least the delay after it.
func (p *Pacer) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastDone = p.now()
}

// Requests reports how many requests have passed through Wait.
func (p *Pacer) Requests() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests
}

// Cooldowns reports how many cooldown pauses have been scheduled so far.
func (p *Pacer) Cooldowns() int {
	if p.cooldownEvery <= 0 || p.cooldown <= 0 {
		return 0
	}
	return p.Requests() / p.cooldownEvery
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
