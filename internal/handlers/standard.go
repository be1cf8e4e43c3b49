package handlers

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/keywarden/internal/dispatch"
	"github.com/dshills/keywarden/internal/logging"
	"github.com/dshills/keywarden/internal/report"
	"github.com/dshills/keywarden/internal/security"
)

// Deps carries everything the standard handler set needs.
type Deps struct {
	State    *State
	Security *security.Context
	Flags    *security.Flags
	Registry *dispatch.Registry
	Metrics  *dispatch.Metrics
	Logger   *logging.Logger

	// Out receives the inspection report. Defaults to os.Stdout.
	Out io.Writer
}

// Standard returns the full standard handler set in registration order.
func Standard(d Deps) []dispatch.Handler {
	if d.Logger == nil {
		d.Logger = logging.Null
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}

	builder := report.Builder{
		Registry: d.Registry,
		Metrics:  d.Metrics,
		Security: d.Security,
		Flags:    d.Flags,
	}

	return []dispatch.Handler{
		NewAdminToggle(d.Security, d.Logger),
		Visualization(d.State, d.Logger),
		Panel(d.State, d.Logger),
		GridModeHandler(d.State, d.Logger),
		GridBorderHandler(d.State, d.Logger),
		CheatMenu(d.State, d.Logger),
		Status(d.Security, d.Flags, d.Logger),
		NewInspector(builder, d.Out, d.Logger),
	}
}

// Install registers the standard set into the registry and binds the
// flag-gated handlers on the guard. Registration stops at the first
// failure.
func Install(reg *dispatch.Registry, guard *security.DispatchGuard, d Deps) error {
	d.Registry = reg
	for _, h := range Standard(d) {
		if err := reg.Register(h); err != nil {
			return fmt.Errorf("install standard handlers: %w", err)
		}
	}

	if guard != nil {
		guard.BindFlag(IDDebugVisualization, security.FlagDebugVisualization)
		guard.BindFlag(IDDebugPanel, security.FlagDebugPanel)
		guard.BindFlag(IDCheatMenu, security.FlagCheatMenu)
	}
	return nil
}
