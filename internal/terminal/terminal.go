// Package terminal delivers key events from a tcell screen to the
// dispatcher.
package terminal

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keywarden/internal/input/key"
	"github.com/dshills/keywarden/internal/logging"
)

// Source owns the terminal screen and pumps key events.
type Source struct {
	screen tcell.Screen
	logger *logging.Logger
}

// NewSource initializes the terminal screen.
func NewSource(logger *logging.Logger) (*Source, error) {
	if logger == nil {
		logger = logging.Null
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	screen.Clear()

	return &Source{screen: screen, logger: logger}, nil
}

// Run pumps key events to deliver until the context is canceled or the
// screen shuts down. Resize events are absorbed with a sync; mouse and
// paste events are ignored.
func (s *Source) Run(ctx context.Context, deliver func(key.Event)) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go s.screen.ChannelEvents(events, quit)
	defer close(quit)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch e := ev.(type) {
			case *tcell.EventKey:
				if kev, ok := Translate(e); ok {
					deliver(kev)
				}
			case *tcell.EventResize:
				s.screen.Sync()
			}
		}
	}
}

// Close restores the terminal.
func (s *Source) Close() {
	s.screen.Fini()
}

// Translate converts a tcell key event into a key event. The second
// return is false for events with no chord representation.
func Translate(e *tcell.EventKey) (key.Event, bool) {
	mods := translateMods(e.Modifiers())

	switch e.Key() {
	case tcell.KeyRune:
		return key.NewRuneEvent(e.Rune(), mods), true
	case tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, mods), true
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods), true
	case tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods), true
	case tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete, mods), true
	case tcell.KeyInsert:
		return key.NewSpecialEvent(key.KeyInsert, mods), true
	case tcell.KeyHome:
		return key.NewSpecialEvent(key.KeyHome, mods), true
	case tcell.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd, mods), true
	case tcell.KeyPgUp:
		return key.NewSpecialEvent(key.KeyPageUp, mods), true
	case tcell.KeyPgDn:
		return key.NewSpecialEvent(key.KeyPageDown, mods), true
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods), true
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, mods), true
	case tcell.KeyF1:
		return key.NewSpecialEvent(key.KeyF1, mods), true
	case tcell.KeyF2:
		return key.NewSpecialEvent(key.KeyF2, mods), true
	case tcell.KeyF3:
		return key.NewSpecialEvent(key.KeyF3, mods), true
	case tcell.KeyF4:
		return key.NewSpecialEvent(key.KeyF4, mods), true
	case tcell.KeyF5:
		return key.NewSpecialEvent(key.KeyF5, mods), true
	case tcell.KeyF6:
		return key.NewSpecialEvent(key.KeyF6, mods), true
	case tcell.KeyF7:
		return key.NewSpecialEvent(key.KeyF7, mods), true
	case tcell.KeyF8:
		return key.NewSpecialEvent(key.KeyF8, mods), true
	case tcell.KeyF9:
		return key.NewSpecialEvent(key.KeyF9, mods), true
	case tcell.KeyF10:
		return key.NewSpecialEvent(key.KeyF10, mods), true
	case tcell.KeyF11:
		return key.NewSpecialEvent(key.KeyF11, mods), true
	case tcell.KeyF12:
		return key.NewSpecialEvent(key.KeyF12, mods), true
	}

	// Control-letter combinations arrive as dedicated tcell keys, not
	// as a rune with a modifier. Fold them back to rune chords so
	// "ctrl+r" specs match what the terminal sends.
	if k := e.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		r := rune('a' + (k - tcell.KeyCtrlA))
		return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
	}

	return key.Event{}, false
}

func translateMods(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}
