package handlers

import (
	"github.com/dshills/keywarden/internal/dispatch"
	"github.com/dshills/keywarden/internal/input/key"
	"github.com/dshills/keywarden/internal/logging"
)

// Handler identifiers for the standard set.
const (
	IDDebugVisualization = "debug_visualization"
	IDDebugPanel         = "debug_panel"
	IDGridMode           = "grid_mode"
	IDGridBorder         = "grid_border"
	IDGridControls       = "grid_controls"
	IDCheatMenu          = "cheat_menu"
	IDAdminToggle        = "admin_toggle"
	IDSecurityStatus     = "security_status"
	IDInputInspector     = "input_inspector"
)

// Visualization returns the F1 handler toggling debug visualization.
func Visualization(state *State, logger *logging.Logger) dispatch.Handler {
	return dispatch.NewFunc(IDDebugVisualization, "toggle debug visualization",
		dispatch.PriorityDebug, dispatch.ContextDebug,
		[]key.Chord{key.Of(key.KeyF1)},
		func(key.Event) bool {
			on := state.ToggleVisualization()
			logger.Info("debug visualization %s", onOff(on))
			return true
		})
}

// Panel returns the F2 handler toggling the debug panel.
func Panel(state *State, logger *logging.Logger) dispatch.Handler {
	return dispatch.NewFunc(IDDebugPanel, "toggle debug panel",
		dispatch.PriorityDebug, dispatch.ContextDebug,
		[]key.Chord{key.Of(key.KeyF2)},
		func(key.Event) bool {
			on := state.TogglePanel()
			logger.Info("debug panel %s", onOff(on))
			return true
		})
}

// CheatMenu returns the F9 handler toggling the cheat menu.
func CheatMenu(state *State, logger *logging.Logger) dispatch.Handler {
	return dispatch.NewFunc(IDCheatMenu, "toggle cheat menu",
		dispatch.PriorityAdmin, dispatch.ContextAdmin,
		[]key.Chord{key.Of(key.KeyF9)},
		func(key.Event) bool {
			on := state.ToggleCheatMenu()
			logger.Info("cheat menu %s", onOff(on))
			return true
		})
}

func onOff(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
