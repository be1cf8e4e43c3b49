// Package security tracks build mode, authorization level, session
// timing and feature flags for debug access control. A Context is
// created once at process start and passed explicitly to every
// privileged query; there is no ambient global state.
package security

import (
	"fmt"
	"sync"
	"time"

	"github.com/dshills/keywarden/internal/event"
	"github.com/dshills/keywarden/internal/logging"
)

// Context is the process-wide authorization state.
type Context struct {
	mu sync.Mutex

	mode         BuildMode
	level        Level
	sessionStart time.Time
	maxSession   time.Duration

	now    func() time.Time
	logger *logging.Logger
	bus    *event.Bus
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used for authorization decisions.
func WithLogger(l *logging.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// WithBus sets the event bus for expiry notifications.
func WithBus(b *event.Bus) Option {
	return func(c *Context) { c.bus = b }
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Context) { c.now = now }
}

// NewContext creates a security context for the given build mode.
// The authorization level starts at LevelUser and the session clock
// starts now. maxSession bounds how long an elevated level stays valid.
func NewContext(mode BuildMode, maxSession time.Duration, opts ...Option) *Context {
	c := &Context{
		mode:       mode,
		level:      LevelUser,
		maxSession: maxSession,
		now:        time.Now,
		logger:     logging.Null,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.sessionStart = c.now()
	return c
}

// BuildMode returns the build mode. It never changes after construction.
func (c *Context) BuildMode() BuildMode {
	return c.mode
}

// ceiling returns the highest level the build mode permits.
// Release builds cap at LevelUser; this is applied on every query so a
// long-lived process can never be tricked by a stale elevated level.
func (c *Context) ceiling() Level {
	if c.mode == Release {
		return LevelUser
	}
	return LevelAdmin
}

// Level returns the current effective authorization level after the
// lazy session check and the build-mode ceiling are applied.
func (c *Context) Level() Level {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.checkSessionLocked()
	return minLevel(c.level, c.ceiling())
}

// Authorize requests an authorization level and returns the level
// actually granted: the minimum of the request and the build-mode
// ceiling. Escalation above LevelUser restarts the session clock.
func (c *Context) Authorize(requested Level) Level {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.checkSessionLocked()

	granted := minLevel(requested, c.ceiling())
	if granted > c.level {
		c.sessionStart = c.now()
		c.logger.Info("authorization escalated to %s for %s session", granted, c.maxSession)
	} else if granted < requested {
		c.logger.Warn("authorization request for %s denied: %s build caps at %s",
			requested, c.mode, granted)
	}
	c.level = granted
	return granted
}

// Revoke drops the authorization level back to LevelUser.
func (c *Context) Revoke() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.level > LevelUser {
		c.logger.Info("authorization revoked")
	}
	c.level = LevelUser
}

// Permits reports whether the current effective level meets min.
func (c *Context) Permits(min Level) bool {
	return c.Level() >= min
}

// Status returns a one-line summary for logging and inspection.
func (c *Context) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.checkSessionLocked()
	return fmt.Sprintf("mode=%s level=%s session_valid=%t session_remaining=%s",
		c.mode, minLevel(c.level, c.ceiling()), !c.sessionExpiredLocked(), c.remainingLocked())
}
