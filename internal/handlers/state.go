// Package handlers provides the standard debug and game key handler
// set: visualization and panel toggles, grid controls, the cheat menu,
// the admin session toggle, and the status and inspector keys.
package handlers

import (
	"fmt"
	"sync"
)

// GridMode selects how the placement grid is drawn.
type GridMode int

const (
	// GridNormal hides grid internals.
	GridNormal GridMode = iota

	// GridDebug shows cell occupancy and pathing cost.
	GridDebug

	// GridPlacement highlights valid placement cells.
	GridPlacement
)

// String returns the grid mode name.
func (m GridMode) String() string {
	switch m {
	case GridNormal:
		return "normal"
	case GridDebug:
		return "debug"
	case GridPlacement:
		return "placement"
	default:
		return fmt.Sprintf("GridMode(%d)", m)
	}
}

// Next returns the following mode in the cycle normal, debug, placement.
func (m GridMode) Next() GridMode {
	switch m {
	case GridNormal:
		return GridDebug
	case GridDebug:
		return GridPlacement
	default:
		return GridNormal
	}
}

// State holds the toggles the standard handlers flip. Handlers run on
// the dispatch path, so every access is synchronized.
type State struct {
	mu sync.Mutex

	visualization bool
	panel         bool
	cheatMenu     bool
	gridMode      GridMode
	gridBorder    bool
}

// NewState creates state with everything off and the grid in normal mode.
func NewState() *State {
	return &State{}
}

// ToggleVisualization flips the debug visualization and returns the new value.
func (s *State) ToggleVisualization() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visualization = !s.visualization
	return s.visualization
}

// TogglePanel flips the debug panel and returns the new value.
func (s *State) TogglePanel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panel = !s.panel
	return s.panel
}

// ToggleCheatMenu flips the cheat menu and returns the new value.
func (s *State) ToggleCheatMenu() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cheatMenu = !s.cheatMenu
	return s.cheatMenu
}

// CycleGridMode advances the grid mode and returns the new mode.
func (s *State) CycleGridMode() GridMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gridMode = s.gridMode.Next()
	return s.gridMode
}

// ToggleGridBorder flips the grid border and returns the new value.
func (s *State) ToggleGridBorder() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gridBorder = !s.gridBorder
	return s.gridBorder
}

// Snapshot is a point-in-time copy of the toggle state.
type Snapshot struct {
	Visualization bool
	Panel         bool
	CheatMenu     bool
	GridMode      GridMode
	GridBorder    bool
}

// Snapshot returns the current toggle state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Visualization: s.visualization,
		Panel:         s.panel,
		CheatMenu:     s.cheatMenu,
		GridMode:      s.gridMode,
		GridBorder:    s.gridBorder,
	}
}
