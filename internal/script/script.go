// Package script loads key handlers written in Lua. A script declares
// the keys it claims and a handle function:
//
//	keys = { "F5", "ctrl+r" }
//	priority = 10
//	context = "game"
//	description = "reload level"
//
//	function handle(key)
//	    return key == "F5"
//	end
//
// Scripts run in a sandboxed interpreter with no file, OS or module
// loading access.
package script

import (
	"errors"
	"fmt"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keywarden/internal/dispatch"
	"github.com/dshills/keywarden/internal/input/key"
	"github.com/dshills/keywarden/internal/logging"
)

// Script errors.
var (
	// ErrNoHandleFunction indicates the script defines no handle function.
	ErrNoHandleFunction = errors.New("script: no handle function")

	// ErrNoKeys indicates the script declares no keys table.
	ErrNoKeys = errors.New("script: no keys declared")

	// ErrClosed indicates the handler's interpreter was closed.
	ErrClosed = errors.New("script: handler closed")
)

// Handler is a key handler backed by a Lua script. The interpreter is
// not goroutine-safe, so every call into it is serialized.
type Handler struct {
	id   string
	desc string
	prio int
	ctx  dispatch.Context
	keys []key.Chord

	mu     sync.Mutex
	l      *lua.LState
	closed bool

	logger *logging.Logger
}

// Option configures script loading.
type Option func(*Handler)

// WithLogger sets the logger for script errors.
func WithLogger(l *logging.Logger) Option {
	return func(h *Handler) { h.logger = l }
}

// Load compiles a script from source and reads its declarations.
func Load(id, source string, opts ...Option) (*Handler, error) {
	h := &Handler{
		id:     id,
		prio:   dispatch.PriorityLow,
		ctx:    dispatch.ContextGame,
		logger: logging.Null,
	}
	for _, opt := range opts {
		opt(h)
	}

	l := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(l)
	installSandbox(l)

	if err := l.DoString(source); err != nil {
		l.Close()
		return nil, fmt.Errorf("script %q: %w", id, err)
	}
	if err := h.readDeclarations(l); err != nil {
		l.Close()
		return nil, err
	}

	h.l = l
	return h, nil
}

// LoadFile loads a script from a file.
func LoadFile(id, path string, opts ...Option) (*Handler, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script %q: %w", id, err)
	}
	return Load(id, string(source), opts...)
}

// openSafeLibraries opens base, table, string and math only. io, os,
// debug and package stay closed.
func openSafeLibraries(l *lua.LState) {
	lua.OpenBase(l)
	lua.OpenTable(l)
	lua.OpenString(l)
	lua.OpenMath(l)
}

// installSandbox removes the base functions that load code from
// outside the script source.
func installSandbox(l *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		l.SetGlobal(name, lua.LNil)
	}
}

// readDeclarations pulls keys, priority, context and description from
// the script's globals and validates the handle function.
func (h *Handler) readDeclarations(l *lua.LState) error {
	if fn := l.GetGlobal("handle"); fn.Type() != lua.LTFunction {
		return fmt.Errorf("%w in %q", ErrNoHandleFunction, h.id)
	}

	keysVal, ok := l.GetGlobal("keys").(*lua.LTable)
	if !ok {
		return fmt.Errorf("%w in %q", ErrNoKeys, h.id)
	}
	var parseErr error
	keysVal.ForEach(func(_, v lua.LValue) {
		if parseErr != nil {
			return
		}
		chord, err := key.Parse(v.String())
		if err != nil {
			parseErr = fmt.Errorf("script %q: %w", h.id, err)
			return
		}
		h.keys = append(h.keys, chord)
	})
	if parseErr != nil {
		return parseErr
	}
	if len(h.keys) == 0 {
		return fmt.Errorf("%w in %q", ErrNoKeys, h.id)
	}

	if prio, ok := l.GetGlobal("priority").(lua.LNumber); ok {
		h.prio = int(prio)
	}
	if ctxName, ok := l.GetGlobal("context").(lua.LString); ok {
		ctx, err := parseContext(string(ctxName))
		if err != nil {
			return fmt.Errorf("script %q: %w", h.id, err)
		}
		h.ctx = ctx
	}
	if desc, ok := l.GetGlobal("description").(lua.LString); ok {
		h.desc = string(desc)
	}
	if h.desc == "" {
		h.desc = "scripted handler " + h.id
	}
	return nil
}

func parseContext(s string) (dispatch.Context, error) {
	switch s {
	case "system":
		return dispatch.ContextSystem, nil
	case "game":
		return dispatch.ContextGame, nil
	case "debug":
		return dispatch.ContextDebug, nil
	case "admin":
		return dispatch.ContextAdmin, nil
	default:
		return dispatch.ContextGame, fmt.Errorf("unknown context %q", s)
	}
}

// ID implements dispatch.Handler.
func (h *Handler) ID() string { return h.id }

// Description implements dispatch.Handler.
func (h *Handler) Description() string { return h.desc }

// Priority implements dispatch.Handler.
func (h *Handler) Priority() int { return h.prio }

// Context implements dispatch.Handler.
func (h *Handler) Context() dispatch.Context { return h.ctx }

// HandledKeys implements dispatch.Handler.
func (h *Handler) HandledKeys() []key.Chord {
	keys := make([]key.Chord, len(h.keys))
	copy(keys, h.keys)
	return keys
}

// Handle implements dispatch.Handler. The event's canonical chord
// string is passed to the script's handle function; a script error
// declines the event rather than failing dispatch.
func (h *Handler) Handle(ev key.Event) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}

	err := h.l.CallByParam(lua.P{
		Fn:      h.l.GetGlobal("handle"),
		NRet:    1,
		Protect: true,
	}, lua.LString(ev.Chord().String()))
	if err != nil {
		h.logger.Error("script %q failed: %v", h.id, err)
		return false
	}

	ret := h.l.Get(-1)
	h.l.Pop(1)
	return lua.LVAsBool(ret)
}

// Close shuts the interpreter down. The handler declines all events
// afterwards.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.l.Close()
	h.closed = true
}
