package flow

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ResendWindow is how long the resend action stays hidden after a code request.
const ResendWindow = 60 * time.Second

// Cooldown is the client-side resend countdown. It is a display aid only;
// nothing in the request path consults it.
type Cooldown struct {
	mu      sync.Mutex
	window  time.Duration
	now     func() time.Time
	started time.Time
	running bool
}

// NewCooldown returns a stopped cooldown. A nil clock uses time.Now.
func NewCooldown(window time.Duration, now func() time.Time) *Cooldown {
	if now == nil {
		now = time.Now
	}
	return &Cooldown{window: window, now: now}
}

// Restart begins a new window from the current time.
func (c *Cooldown) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = c.now()
	c.running = true
}

// Stop discards the countdown; used when the owning stage is replaced.
func (c *Cooldown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
}

func (c *Cooldown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Remaining is zero when stopped or elapsed.
func (c *Cooldown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remainingLocked()
}

func (c *Cooldown) remainingLocked() time.Duration {
	if !c.running {
		return 0
	}
	left := c.window - c.now().Sub(c.started)
	if left < 0 {
		return 0
	}
	return left
}

// CanResend reports whether the resend affordance should be shown.
func (c *Cooldown) CanResend() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running && c.remainingLocked() == 0
}

// Label is the text shown next to the code input, empty when stopped.
func (c *Cooldown) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return ""
	}
	left := c.remainingLocked()
	if left == 0 {
		return "Didn't get the code? Resend code"
	}
	return fmt.Sprintf("Resend code in %ds", int((left+time.Second-1)/time.Second))
}

// Watch calls fn every interval with the remaining time until the window
// elapses, the cooldown is stopped, or ctx is done.
func (c *Cooldown) Watch(ctx context.Context, interval time.Duration, fn func(time.Duration)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		left := c.Remaining()
		fn(left)
		if left == 0 {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
