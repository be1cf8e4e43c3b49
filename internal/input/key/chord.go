package key

import "strings"

// Chord identifies one physical key press plus its modifier mask.
// It is comparable and immutable, suitable for use as a map key.
type Chord struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune chords.
	Rune rune

	// Mods contains the active modifier keys.
	Mods Modifier
}

// Of creates a chord for a special key with no modifiers.
func Of(k Key) Chord {
	return Chord{Key: k}
}

// OfRune creates a chord for a character key with no modifiers.
func OfRune(r rune) Chord {
	return Chord{Key: KeyRune, Rune: r}
}

// With returns a copy of the chord with the given modifiers added.
func (c Chord) With(mods Modifier) Chord {
	c.Mods = c.Mods.With(mods)
	return c
}

// IsRune returns true if this is a character key chord.
func (c Chord) IsRune() bool {
	return c.Key == KeyRune && c.Rune != 0
}

// IsZero returns true if the chord identifies no key.
func (c Chord) IsZero() bool {
	return c.Key == KeyNone && c.Rune == 0 && c.Mods == ModNone
}

// String returns a canonical representation like "F1", "Ctrl+F12" or "Ctrl+c".
func (c Chord) String() string {
	var parts []string
	if c.Mods.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if c.Mods.HasAlt() {
		parts = append(parts, "Alt")
	}
	if c.Mods.HasMeta() {
		parts = append(parts, "Meta")
	}
	// Shift is part of the character itself for rune chords.
	if c.Mods.HasShift() && !c.IsRune() {
		parts = append(parts, "Shift")
	}

	var name string
	switch {
	case c.Key == KeyRune && c.Rune == ' ':
		name = "Space"
	case c.Key == KeyRune:
		name = string(c.Rune)
	default:
		name = c.Key.String()
	}
	parts = append(parts, name)

	return strings.Join(parts, "+")
}
