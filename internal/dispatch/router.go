package dispatch

import (
	"fmt"

	"github.com/dshills/keywarden/internal/input/key"
	"github.com/dshills/keywarden/internal/logging"
)

// Guard authorizes privileged handlers before they may run. A nil
// guard on the router allows everything, which is only appropriate in
// tests.
type Guard interface {
	// Allow reports whether the identified handler, in the given
	// context, may run right now.
	Allow(id string, ctx Context) bool
}

// GuardFunc adapts a function into a Guard.
type GuardFunc func(id string, ctx Context) bool

// Allow implements Guard.
func (f GuardFunc) Allow(id string, ctx Context) bool {
	return f(id, ctx)
}

// Outcome reports the result of dispatching one key event.
type Outcome struct {
	// Key is the dispatched chord.
	Key key.Chord

	// Consumed is true if some handler consumed the event.
	Consumed bool

	// HandlerID identifies the consuming handler when Consumed.
	HandlerID string

	// Denied lists handlers skipped by the authorization guard.
	Denied []string
}

// String returns "consumed by <id>" or "unhandled".
func (o Outcome) String() string {
	if o.Consumed {
		return fmt.Sprintf("consumed by %s", o.HandlerID)
	}
	return "unhandled"
}

// Router dispatches key events against the registry's binding table.
type Router struct {
	registry *Registry
	guard    Guard
	metrics  *Metrics
	logger   *logging.Logger
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithGuard sets the authorization guard for privileged contexts.
func WithGuard(g Guard) RouterOption {
	return func(r *Router) { r.guard = g }
}

// WithMetrics sets the dispatch metrics collector.
func WithMetrics(m *Metrics) RouterOption {
	return func(r *Router) { r.metrics = m }
}

// WithRouterLogger sets the router logger.
func WithRouterLogger(l *logging.Logger) RouterOption {
	return func(r *Router) { r.logger = l }
}

// NewRouter creates a router over the given registry.
func NewRouter(registry *Registry, opts ...RouterOption) *Router {
	r := &Router{
		registry: registry,
		logger:   logging.Null,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dispatch routes one key event. Handlers are tried in stored order
// (priority descending, registration order ascending); privileged
// contexts are checked against the guard first, and a denied handler
// is skipped without consuming the event. The scan stops at the first
// handler that reports consumption, so at most one handler observably
// acts per event. A chord with no claimants is the normal "unhandled"
// outcome, not an error.
func (r *Router) Dispatch(ev key.Event) Outcome {
	chord := ev.Chord()
	outcome := Outcome{Key: chord}

	trace := r.registry.debugEnabled()
	if trace {
		r.logger.Debug("dispatching key %s", chord)
	}

	for _, h := range r.registry.HandlersFor(chord) {
		if h.Context().Privileged() && r.guard != nil && !r.guard.Allow(h.ID(), h.Context()) {
			outcome.Denied = append(outcome.Denied, h.ID())
			if trace {
				r.logger.Debug("handler %q denied for key %s", h.ID(), chord)
			}
			continue
		}

		if h.Handle(ev) {
			outcome.Consumed = true
			outcome.HandlerID = h.ID()
			if trace {
				r.logger.Debug("key %s consumed by %q", chord, h.ID())
			}
			break
		}
	}

	if !outcome.Consumed && trace {
		r.logger.Debug("key %s unhandled", chord)
	}
	if r.metrics != nil {
		r.metrics.Record(outcome)
	}
	return outcome
}
