package dispatch_test

import (
	"testing"

	"github.com/dshills/keywarden/internal/dispatch"
	"github.com/dshills/keywarden/internal/input/key"
)

// recordingHandler tracks how often it was invoked.
type recordingHandler struct {
	id      string
	prio    int
	ctx     dispatch.Context
	keys    []key.Chord
	consume bool
	calls   int
}

func (h *recordingHandler) ID() string              { return h.id }
func (h *recordingHandler) Description() string     { return h.id }
func (h *recordingHandler) Priority() int           { return h.prio }
func (h *recordingHandler) Context() dispatch.Context { return h.ctx }
func (h *recordingHandler) HandledKeys() []key.Chord  { return h.keys }
func (h *recordingHandler) Handle(key.Event) bool {
	h.calls++
	return h.consume
}

func TestDispatchUnboundKeyIsUnhandled(t *testing.T) {
	r := dispatch.NewRegistry()
	router := dispatch.NewRouter(r)

	out := router.Dispatch(key.NewSpecialEvent(key.KeyF7, key.ModNone))
	if out.Consumed {
		t.Error("unbound key must not be consumed")
	}
	if out.String() != "unhandled" {
		t.Errorf("expected unhandled, got %q", out.String())
	}
}

func TestDispatchStopsAtFirstConsumer(t *testing.T) {
	k := key.Of(key.KeyF9)
	high := &recordingHandler{id: "high", prio: dispatch.PriorityAdmin, ctx: dispatch.ContextGame, keys: []key.Chord{k}, consume: true}
	low := &recordingHandler{id: "low", prio: dispatch.PriorityGame, ctx: dispatch.ContextGame, keys: []key.Chord{k}, consume: true}

	r := dispatch.NewRegistry()
	if err := r.Register(low); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(high); err != nil {
		t.Fatal(err)
	}
	router := dispatch.NewRouter(r)

	out := router.Dispatch(key.NewSpecialEvent(key.KeyF9, key.ModNone))
	if !out.Consumed || out.HandlerID != "high" {
		t.Fatalf("expected high to consume, got %+v", out)
	}
	if high.calls != 1 {
		t.Errorf("high should be invoked once, got %d", high.calls)
	}
	if low.calls != 0 {
		t.Errorf("low must not run after consumption, got %d calls", low.calls)
	}
}

func TestDispatchFallsThroughDecliningHandlers(t *testing.T) {
	k := key.Of(key.KeyF3)
	decline := &recordingHandler{id: "decline", prio: dispatch.PriorityAdmin, ctx: dispatch.ContextGame, keys: []key.Chord{k}}
	accept := &recordingHandler{id: "accept", prio: dispatch.PriorityGame, ctx: dispatch.ContextGame, keys: []key.Chord{k}, consume: true}

	r := dispatch.NewRegistry()
	if err := r.Register(decline); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(accept); err != nil {
		t.Fatal(err)
	}
	router := dispatch.NewRouter(r)

	out := router.Dispatch(key.NewSpecialEvent(key.KeyF3, key.ModNone))
	if !out.Consumed || out.HandlerID != "accept" {
		t.Fatalf("expected accept to consume, got %+v", out)
	}
	if decline.calls != 1 {
		t.Errorf("declining handler should still be offered the event, got %d calls", decline.calls)
	}
}

func TestGuardSkipsDeniedPrivilegedHandlers(t *testing.T) {
	k := key.Of(key.KeyF1)
	debug := &recordingHandler{id: "debug_viz", prio: dispatch.PriorityDebug, ctx: dispatch.ContextDebug, keys: []key.Chord{k}, consume: true}
	game := &recordingHandler{id: "help", prio: dispatch.PriorityGame, ctx: dispatch.ContextGame, keys: []key.Chord{k}, consume: true}

	r := dispatch.NewRegistry()
	if err := r.Register(debug); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(game); err != nil {
		t.Fatal(err)
	}

	denyAll := dispatch.GuardFunc(func(string, dispatch.Context) bool { return false })
	router := dispatch.NewRouter(r, dispatch.WithGuard(denyAll))

	out := router.Dispatch(key.NewSpecialEvent(key.KeyF1, key.ModNone))
	if !out.Consumed || out.HandlerID != "help" {
		t.Fatalf("expected the unprivileged handler to consume, got %+v", out)
	}
	if debug.calls != 0 {
		t.Error("denied privileged handler must not run")
	}
	if len(out.Denied) != 1 || out.Denied[0] != "debug_viz" {
		t.Errorf("expected denied list [debug_viz], got %v", out.Denied)
	}
}

func TestGuardIgnoresUnprivilegedContexts(t *testing.T) {
	k := key.OfRune('p')
	pause := &recordingHandler{id: "pause", prio: dispatch.PriorityCritical, ctx: dispatch.ContextSystem, keys: []key.Chord{k}, consume: true}

	r := dispatch.NewRegistry()
	if err := r.Register(pause); err != nil {
		t.Fatal(err)
	}

	denyAll := dispatch.GuardFunc(func(string, dispatch.Context) bool { return false })
	router := dispatch.NewRouter(r, dispatch.WithGuard(denyAll))

	out := router.Dispatch(key.NewRuneEvent('p', key.ModNone))
	if !out.Consumed || out.HandlerID != "pause" {
		t.Fatalf("system handlers must bypass the guard, got %+v", out)
	}
}

func TestGuardAllowsAuthorizedHandler(t *testing.T) {
	k := key.Of(key.KeyF9)
	cheat := &recordingHandler{id: "cheat_menu", prio: dispatch.PriorityAdmin, ctx: dispatch.ContextAdmin, keys: []key.Chord{k}, consume: true}

	r := dispatch.NewRegistry()
	if err := r.Register(cheat); err != nil {
		t.Fatal(err)
	}

	guard := dispatch.GuardFunc(func(id string, ctx dispatch.Context) bool {
		return ctx == dispatch.ContextAdmin && id == "cheat_menu"
	})
	router := dispatch.NewRouter(r, dispatch.WithGuard(guard))

	out := router.Dispatch(key.NewSpecialEvent(key.KeyF9, key.ModNone))
	if !out.Consumed || out.HandlerID != "cheat_menu" {
		t.Fatalf("authorized admin handler should run, got %+v", out)
	}
}

func TestDispatchRecordsMetrics(t *testing.T) {
	k := key.Of(key.KeyF2)
	h := &recordingHandler{id: "panel", prio: dispatch.PriorityDebug, ctx: dispatch.ContextGame, keys: []key.Chord{k}, consume: true}

	r := dispatch.NewRegistry()
	if err := r.Register(h); err != nil {
		t.Fatal(err)
	}
	m := dispatch.NewMetrics()
	router := dispatch.NewRouter(r, dispatch.WithMetrics(m))

	router.Dispatch(key.NewSpecialEvent(key.KeyF2, key.ModNone))
	router.Dispatch(key.NewSpecialEvent(key.KeyF8, key.ModNone))

	snap := m.Snapshot()
	if snap.TotalDispatches != 2 || snap.TotalConsumed != 1 || snap.TotalUnhandled != 1 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	ks := m.KeyStats(k)
	if ks == nil || ks.Consumed != 1 || ks.LastHandler != "panel" {
		t.Errorf("unexpected key stats: %+v", ks)
	}
}
