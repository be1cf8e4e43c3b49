package security

import (
	"time"

	"github.com/dshills/keywarden/internal/event"
)

// ExpiredPayload is published on the event bus when an elevated
// session exceeds its maximum duration and is downgraded.
type ExpiredPayload struct {
	// PreviousLevel is the level held before the downgrade.
	PreviousLevel Level

	// Elapsed is how long the session had been running.
	Elapsed time.Duration
}

// CheckSession applies the lazy expiry check: if the elapsed session
// time exceeds the maximum and the level is elevated, the level is
// forced down to LevelUser and an expiry event is emitted. Returns
// true if a downgrade happened. There is no background timer; expiry
// is detected at point of use.
func (c *Context) CheckSession() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checkSessionLocked()
}

func (c *Context) checkSessionLocked() bool {
	if c.level <= LevelUser || !c.sessionExpiredLocked() {
		return false
	}

	prev := c.level
	elapsed := c.now().Sub(c.sessionStart)
	c.level = LevelUser

	c.logger.Warn("authorization session expired after %s, downgraded from %s to %s",
		elapsed.Round(time.Second), prev, LevelUser)
	if c.bus != nil {
		c.bus.Publish(event.TypeSessionExpired, ExpiredPayload{
			PreviousLevel: prev,
			Elapsed:       elapsed,
		})
	}
	return true
}

func (c *Context) sessionExpiredLocked() bool {
	return c.now().Sub(c.sessionStart) > c.maxSession
}

func (c *Context) remainingLocked() time.Duration {
	remaining := c.maxSession - c.now().Sub(c.sessionStart)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SessionRemaining returns how much elevated session time is left.
func (c *Context) SessionRemaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remainingLocked()
}

// ResetSession restarts the session clock without changing the level.
func (c *Context) ResetSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionStart = c.now()
}
