package dispatch

import (
	"fmt"

	"github.com/dshills/keywarden/internal/input/key"
)

// Context classifies a handler for authorization purposes.
type Context int

const (
	// ContextSystem is for system-level handlers (pause, exit, admin toggle).
	ContextSystem Context = iota

	// ContextGame is for core game functionality.
	ContextGame

	// ContextDebug is for debug and development tools.
	ContextDebug

	// ContextAdmin is for administrative and cheat functions.
	ContextAdmin
)

// String returns the context name.
func (c Context) String() string {
	switch c {
	case ContextSystem:
		return "system"
	case ContextGame:
		return "game"
	case ContextDebug:
		return "debug"
	case ContextAdmin:
		return "admin"
	default:
		return fmt.Sprintf("Context(%d)", c)
	}
}

// Privileged reports whether handlers in this context require an
// authorization check before they may run.
func (c Context) Privileged() bool {
	return c == ContextDebug || c == ContextAdmin
}

// Priority tiers. Higher values dispatch first.
const (
	// PriorityCritical is for system handlers that must always win.
	PriorityCritical = 100

	// PriorityAdmin is for admin and cheat handlers.
	PriorityAdmin = 40

	// PriorityDebug is for debug tooling handlers.
	PriorityDebug = 30

	// PriorityGame is for game state handlers.
	PriorityGame = 20

	// PriorityLow is for convenience shortcuts.
	PriorityLow = 10
)

// Handler attempts to consume key events. Implementations are shared
// read-only by the registry across every chord they claim; a handler
// needing internal mutable state must provide its own interior
// synchronization.
type Handler interface {
	// ID returns the unique identifier used for conflict detection.
	ID() string

	// Description returns a human-readable summary of what the handler does.
	Description() string

	// Priority returns the priority tier (higher dispatches first).
	Priority() int

	// Context returns the authorization classification.
	Context() Context

	// HandledKeys returns every chord this handler claims.
	HandledKeys() []key.Chord

	// Handle attempts to consume the event. Returning true stops the
	// dispatch scan for this event.
	Handle(ev key.Event) bool
}

// FuncHandler adapts a function into a Handler.
type FuncHandler struct {
	id   string
	desc string
	prio int
	ctx  Context
	keys []key.Chord
	fn   func(ev key.Event) bool
}

// NewFunc creates a handler from descriptor fields and a function.
func NewFunc(id, desc string, prio int, ctx Context, keys []key.Chord, fn func(ev key.Event) bool) *FuncHandler {
	return &FuncHandler{
		id:   id,
		desc: desc,
		prio: prio,
		ctx:  ctx,
		keys: keys,
		fn:   fn,
	}
}

// ID implements Handler.
func (h *FuncHandler) ID() string { return h.id }

// Description implements Handler.
func (h *FuncHandler) Description() string { return h.desc }

// Priority implements Handler.
func (h *FuncHandler) Priority() int { return h.prio }

// Context implements Handler.
func (h *FuncHandler) Context() Context { return h.ctx }

// HandledKeys implements Handler.
func (h *FuncHandler) HandledKeys() []key.Chord {
	keys := make([]key.Chord, len(h.keys))
	copy(keys, h.keys)
	return keys
}

// Handle implements Handler.
func (h *FuncHandler) Handle(ev key.Event) bool {
	if h.fn == nil {
		return false
	}
	return h.fn(ev)
}
