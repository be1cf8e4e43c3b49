package security

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/keywarden/internal/event"
	"github.com/dshills/keywarden/internal/logging"
)

// Standard feature flag names.
const (
	FlagDebugVisualization = "debug.visualization"
	FlagDebugPanel         = "debug.panel"
	FlagCheatMenu          = "cheat.menu"
	FlagConsoleOutput      = "console.output"
	FlagGridControls       = "grid.controls"
	FlagWaveSelection      = "wave.selection"
	FlagSpawnRateControls  = "spawnrate.controls"
)

type flagState struct {
	enabled bool
	min     Level
}

// Flags is the feature flag store. Each flag carries the minimum
// authorization level required to toggle it. Flags are independent
// and live only for the process lifetime.
type Flags struct {
	mu     sync.RWMutex
	flags  map[string]flagState
	logger *logging.Logger
	bus    *event.Bus
}

// FlagChangedPayload is published on the event bus when a flag is set.
type FlagChangedPayload struct {
	Name     string
	Previous bool
	Value    bool
	Level    Level
}

// NewFlags creates an empty flag store. logger and bus may be nil.
func NewFlags(logger *logging.Logger, bus *event.Bus) *Flags {
	if logger == nil {
		logger = logging.Null
	}
	return &Flags{
		flags:  make(map[string]flagState),
		logger: logger,
		bus:    bus,
	}
}

// Define registers a flag with its initial value and the minimum
// authorization level required to toggle it. Redefining a flag
// replaces its state.
func (f *Flags) Define(name string, enabled bool, min Level) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flags[name] = flagState{enabled: enabled, min: min}
}

// IsEnabled reports whether a flag is enabled. Unknown flags are
// disabled. No side effects.
func (f *Flags) IsEnabled(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.flags[name].enabled
}

// MinLevel returns the minimum level required to toggle a flag.
func (f *Flags) MinLevel(name string) (Level, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	st, ok := f.flags[name]
	return st.min, ok
}

// Set changes a flag's value on behalf of a caller holding the given
// authorization level. Returns the previous value for auditing.
// Fails with ErrUnknownFlag for undefined flags and with
// ErrInsufficientAuthorization when the level is below the flag's
// minimum; the flag is unchanged on failure.
func (f *Flags) Set(name string, value bool, requesting Level) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, ok := f.flags[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
	}
	if requesting < st.min {
		f.logger.Warn("flag %q change denied: requires %s, caller has %s", name, st.min, requesting)
		return st.enabled, fmt.Errorf("%w: flag %q requires %s", ErrInsufficientAuthorization, name, st.min)
	}

	prev := st.enabled
	st.enabled = value
	f.flags[name] = st

	if prev != value {
		f.logger.Info("flag %q set to %t", name, value)
		if f.bus != nil {
			f.bus.Publish(event.TypeFlagChanged, FlagChangedPayload{
				Name:     name,
				Previous: prev,
				Value:    value,
				Level:    requesting,
			})
		}
	}
	return prev, nil
}

// Names returns all defined flag names, sorted.
func (f *Flags) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.flags))
	for name := range f.flags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns the current enabled state of every flag.
func (f *Flags) Snapshot() map[string]bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	snap := make(map[string]bool, len(f.flags))
	for name, st := range f.flags {
		snap[name] = st.enabled
	}
	return snap
}

// AnyEnabled reports whether any flag is currently enabled.
func (f *Flags) AnyEnabled() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, st := range f.flags {
		if st.enabled {
			return true
		}
	}
	return false
}

// Seed defines the standard flag set and applies build-mode defaults:
// everything starts disabled, development builds enable the debug
// flags, and the cheat menu additionally requires the context to hold
// LevelAdmin at seeding time. Toggling debug flags later requires
// LevelDeveloper; the cheat menu requires LevelAdmin.
func Seed(ctx *Context, logger *logging.Logger, bus *event.Bus) *Flags {
	f := NewFlags(logger, bus)

	dev := ctx.BuildMode() == Development

	f.Define(FlagDebugVisualization, dev, LevelDeveloper)
	f.Define(FlagDebugPanel, dev, LevelDeveloper)
	f.Define(FlagConsoleOutput, dev, LevelDeveloper)
	f.Define(FlagGridControls, dev, LevelDeveloper)
	f.Define(FlagWaveSelection, dev, LevelDeveloper)
	f.Define(FlagSpawnRateControls, dev, LevelDeveloper)
	f.Define(FlagCheatMenu, dev && ctx.Permits(LevelAdmin), LevelAdmin)

	if dev {
		f.logger.Info("development feature flags seeded (cheat menu requires admin)")
	}
	return f
}
