package security

import (
	"sync"

	"github.com/dshills/keywarden/internal/dispatch"
	"github.com/dshills/keywarden/internal/logging"
)

// DispatchGuard implements dispatch.Guard on top of a security
// Context and the feature flag store. Handlers in the debug context
// require LevelDeveloper, handlers in the admin context require
// LevelAdmin, and a handler bound to a feature flag is additionally
// denied while that flag is disabled.
type DispatchGuard struct {
	mu     sync.RWMutex
	ctx    *Context
	flags  *Flags
	byID   map[string]string
	logger *logging.Logger
}

// NewDispatchGuard creates a guard over the given context and flag
// store. flags and logger may be nil.
func NewDispatchGuard(ctx *Context, flags *Flags, logger *logging.Logger) *DispatchGuard {
	if logger == nil {
		logger = logging.Null
	}
	return &DispatchGuard{
		ctx:    ctx,
		flags:  flags,
		byID:   make(map[string]string),
		logger: logger,
	}
}

// BindFlag ties a handler identifier to a feature flag. The handler
// is denied while the flag is disabled, on top of the level check.
func (g *DispatchGuard) BindFlag(handlerID, flag string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.byID[handlerID] = flag
}

// requiredLevel maps a dispatch context to the authorization level it
// demands. Unprivileged contexts demand nothing but are mapped anyway
// so the guard stays total.
func requiredLevel(ctx dispatch.Context) Level {
	switch ctx {
	case dispatch.ContextAdmin:
		return LevelAdmin
	case dispatch.ContextDebug:
		return LevelDeveloper
	default:
		return LevelUser
	}
}

// Allow implements dispatch.Guard.
func (g *DispatchGuard) Allow(id string, ctx dispatch.Context) bool {
	if !g.ctx.Permits(requiredLevel(ctx)) {
		g.logger.Debug("handler %q denied: context %s requires %s, have %s",
			id, ctx, requiredLevel(ctx), g.ctx.Level())
		return false
	}

	g.mu.RLock()
	flag, bound := g.byID[id]
	g.mu.RUnlock()

	if bound && g.flags != nil && !g.flags.IsEnabled(flag) {
		g.logger.Debug("handler %q denied: flag %q disabled", id, flag)
		return false
	}
	return true
}
