package dispatch

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/keywarden/internal/event"
	"github.com/dshills/keywarden/internal/input/key"
	"github.com/dshills/keywarden/internal/logging"
)

// binding pairs a handler with its registration sequence number, used
// to break priority ties deterministically.
type binding struct {
	h   Handler
	seq uint64
}

// Registry owns the mapping from key chords to the handlers claiming
// them. Registration never rejects conflicting claims; conflicts are
// recorded and logged, and the priority order decides dispatch.
type Registry struct {
	mu sync.RWMutex

	// bindings maps each chord to its claimants, sorted by priority
	// descending then registration order ascending.
	bindings map[key.Chord][]binding

	// handlers indexes registered handlers by identifier.
	handlers map[string]Handler

	// conflictLog grows append-only for the process lifetime.
	conflictLog []Conflict

	nextSeq      uint64
	debugLogging bool
	logger       *logging.Logger
	bus          *event.Bus
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l *logging.Logger) RegistryOption {
	return func(r *Registry) { r.logger = l }
}

// WithBus sets the event bus for registration and conflict notifications.
func WithBus(b *event.Bus) RegistryOption {
	return func(r *Registry) { r.bus = b }
}

// NewRegistry creates an empty handler registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		bindings: make(map[key.Chord][]binding),
		handlers: make(map[string]Handler),
		logger:   logging.Null,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetDebugLogging enables per-event dispatch tracing.
func (r *Registry) SetDebugLogging(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debugLogging = enabled
	if enabled {
		r.logger.Info("input debug logging enabled")
	}
}

func (r *Registry) debugEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.debugLogging
}

// RegistryPayload is published on the event bus for handler
// registration and unregistration.
type RegistryPayload struct {
	ID   string
	Keys []key.Chord
}

// Register adds a handler, inserting it into the binding entry of
// every chord it claims. It fails with ErrDuplicateHandler if the
// identifier is already registered, leaving the registry unchanged.
// Conflicting claims are recorded, not rejected.
func (r *Registry) Register(h Handler) error {
	if h == nil {
		return ErrNilHandler
	}
	id := h.ID()
	if id == "" {
		return fmt.Errorf("%w: empty identifier", ErrNilHandler)
	}
	keys := dedupeChords(h.HandledKeys())
	if len(keys) == 0 {
		return fmt.Errorf("%w: %q", ErrNoKeys, id)
	}

	r.mu.Lock()

	if _, exists := r.handlers[id]; exists {
		r.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrDuplicateHandler, id)
	}

	r.nextSeq++
	b := binding{h: h, seq: r.nextSeq}

	var conflicts []Conflict
	for _, chord := range keys {
		r.bindings[chord] = append(r.bindings[chord], b)
		r.sortEntryLocked(chord)

		if c, ok := Detect(chord, r.handlersForLocked(chord)); ok {
			r.conflictLog = append(r.conflictLog, c)
			conflicts = append(conflicts, c)
		}
	}
	r.handlers[id] = h
	r.mu.Unlock()

	r.logger.Info("registered handler %q for keys %v", id, chordStrings(keys))
	for _, c := range conflicts {
		r.logger.Warn("input conflict detected: %s", c)
		if r.bus != nil {
			r.bus.Publish(event.TypeConflictDetected, c)
		}
	}
	if r.bus != nil {
		r.bus.Publish(event.TypeHandlerRegistered, RegistryPayload{ID: id, Keys: keys})
	}
	return nil
}

// Unregister removes a handler from every binding entry it appears in.
// Unknown identifiers are a no-op so teardown stays idempotent. The
// append-only conflict log is not rewritten; the live conflict view
// reflects the new binding table.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()

	if _, exists := r.handlers[id]; !exists {
		r.mu.Unlock()
		return
	}

	var keys []key.Chord
	for chord, entry := range r.bindings {
		filtered := entry[:0]
		removed := false
		for _, b := range entry {
			if b.h.ID() == id {
				removed = true
				continue
			}
			filtered = append(filtered, b)
		}
		if !removed {
			continue
		}
		keys = append(keys, chord)
		if len(filtered) == 0 {
			delete(r.bindings, chord)
			continue
		}
		r.bindings[chord] = filtered
		r.sortEntryLocked(chord)
	}
	delete(r.handlers, id)
	r.mu.Unlock()

	r.logger.Info("unregistered handler %q", id)
	if r.bus != nil {
		r.bus.Publish(event.TypeHandlerUnregistered, RegistryPayload{ID: id, Keys: keys})
	}
}

// sortEntryLocked restores the ordering invariant for one binding
// entry: priority descending, then registration sequence ascending.
// Caller must hold the write lock.
func (r *Registry) sortEntryLocked(chord key.Chord) {
	entry := r.bindings[chord]
	sort.SliceStable(entry, func(i, j int) bool {
		if entry[i].h.Priority() != entry[j].h.Priority() {
			return entry[i].h.Priority() > entry[j].h.Priority()
		}
		return entry[i].seq < entry[j].seq
	})
}

func (r *Registry) handlersForLocked(chord key.Chord) []Handler {
	entry := r.bindings[chord]
	handlers := make([]Handler, len(entry))
	for i, b := range entry {
		handlers[i] = b.h
	}
	return handlers
}

// HandlersFor returns the handlers claiming a chord in dispatch order.
// The returned slice is a copy; the handler references stay shared.
func (r *Registry) HandlersFor(chord key.Chord) []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlersForLocked(chord)
}

// Primary returns the highest-priority handler for a chord, or nil.
func (r *Registry) Primary(chord key.Chord) Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry := r.bindings[chord]
	if len(entry) == 0 {
		return nil
	}
	return entry[0].h
}

// Handler returns a registered handler by identifier.
func (r *Registry) Handler(id string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[id]
	return h, ok
}

// Has reports whether an identifier is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.Handler(id)
	return ok
}

// Stats is a point-in-time snapshot of registry state, computed from
// the current binding table rather than cached counters.
type Stats struct {
	// TotalHandlers is the number of registered handlers.
	TotalHandlers int

	// TotalKeys is the number of chords with at least one claimant.
	TotalKeys int

	// TotalConflicts is the number of chords with two or more claimants.
	TotalConflicts int

	// ByContext counts registered handlers per context.
	ByContext map[Context]int
}

// Stats returns current registry statistics.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st := Stats{
		TotalHandlers: len(r.handlers),
		TotalKeys:     len(r.bindings),
		ByContext:     make(map[Context]int),
	}
	for _, entry := range r.bindings {
		if len(entry) > 1 {
			st.TotalConflicts++
		}
	}
	for _, h := range r.handlers {
		st.ByContext[h.Context()]++
	}
	return st
}

// ConflictLog returns a copy of the append-only conflict log.
func (r *Registry) ConflictLog() []Conflict {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log := make([]Conflict, len(r.conflictLog))
	copy(log, r.conflictLog)
	return log
}

// ConflictsByKey returns the live conflict view derived from the
// current binding table: one record per chord with >= 2 claimants.
func (r *Registry) ConflictsByKey() map[key.Chord]Conflict {
	r.mu.RLock()
	defer r.mu.RUnlock()

	view := make(map[key.Chord]Conflict)
	for chord := range r.bindings {
		if c, ok := Detect(chord, r.handlersForLocked(chord)); ok {
			view[chord] = c
		}
	}
	return view
}

// Summary returns each bound chord with its claimants as
// "id (p:N)" strings in dispatch order.
func (r *Registry) Summary() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summary := make(map[string][]string, len(r.bindings))
	for chord, entry := range r.bindings {
		info := make([]string, len(entry))
		for i, b := range entry {
			info[i] = fmt.Sprintf("%s (p:%d)", b.h.ID(), b.h.Priority())
		}
		summary[chord.String()] = info
	}
	return summary
}

// Clear removes all handlers and the conflict log.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings = make(map[key.Chord][]binding)
	r.handlers = make(map[string]Handler)
	r.conflictLog = nil
	r.logger.Info("cleared all input handlers")
}

func dedupeChords(keys []key.Chord) []key.Chord {
	seen := make(map[key.Chord]bool, len(keys))
	out := keys[:0:0]
	for _, c := range keys {
		if c.IsZero() || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func chordStrings(keys []key.Chord) []string {
	out := make([]string, len(keys))
	for i, c := range keys {
		out[i] = c.String()
	}
	return out
}
