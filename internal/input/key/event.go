package key

import "time"

// Event represents a single key press event delivered by the input source.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Mods contains the active modifier keys.
	Mods Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewEvent creates a key event with the current timestamp.
func NewEvent(k Key, r rune, mods Modifier) Event {
	return Event{
		Key:       k,
		Rune:      r,
		Mods:      mods,
		Timestamp: time.Now(),
	}
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{
		Key:       KeyRune,
		Rune:      r,
		Mods:      mods,
		Timestamp: time.Now(),
	}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{
		Key:       k,
		Mods:      mods,
		Timestamp: time.Now(),
	}
}

// Chord returns the chord identifying this event's key press.
// Timestamps do not participate in identity.
func (e Event) Chord() Chord {
	return Chord{Key: e.Key, Rune: e.Rune, Mods: e.Mods}
}

// String returns the canonical chord representation.
func (e Event) String() string {
	return e.Chord().String()
}

// Matches checks if this event matches a key specification string.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Chord() == parsed
}
