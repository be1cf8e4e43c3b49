package handlers

import (
	"github.com/dshills/keywarden/internal/dispatch"
	"github.com/dshills/keywarden/internal/input/key"
	"github.com/dshills/keywarden/internal/logging"
)

// GridModeHandler returns the F3 handler cycling the grid draw mode.
func GridModeHandler(state *State, logger *logging.Logger) dispatch.Handler {
	return dispatch.NewFunc(IDGridMode, "cycle grid draw mode",
		dispatch.PriorityGame, dispatch.ContextGame,
		[]key.Chord{key.Of(key.KeyF3)},
		func(key.Event) bool {
			mode := state.CycleGridMode()
			logger.Info("grid mode: %s", mode)
			return true
		})
}

// GridBorderHandler returns the F4 handler toggling the grid border.
func GridBorderHandler(state *State, logger *logging.Logger) dispatch.Handler {
	return dispatch.NewFunc(IDGridBorder, "toggle grid border",
		dispatch.PriorityGame, dispatch.ContextGame,
		[]key.Chord{key.Of(key.KeyF4)},
		func(key.Event) bool {
			on := state.ToggleGridBorder()
			logger.Info("grid border %s", onOff(on))
			return true
		})
}

// GridControls returns a single handler claiming both F3 and F4,
// branching on the event key. It is an alternative to the two
// single-key grid handlers; installing both variants is a deliberate
// conflict the registry will record.
func GridControls(state *State, logger *logging.Logger) dispatch.Handler {
	return dispatch.NewFunc(IDGridControls, "grid mode and border controls",
		dispatch.PriorityGame, dispatch.ContextGame,
		[]key.Chord{key.Of(key.KeyF3), key.Of(key.KeyF4)},
		func(ev key.Event) bool {
			switch ev.Key {
			case key.KeyF3:
				logger.Info("grid mode: %s", state.CycleGridMode())
			case key.KeyF4:
				logger.Info("grid border %s", onOff(state.ToggleGridBorder()))
			default:
				return false
			}
			return true
		})
}
