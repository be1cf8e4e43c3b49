package key

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse parses a key specification like "f1", "ctrl+f12", "`" or "ctrl+shift+p"
// into a Chord. Modifier names come before the key name, separated by "+".
func Parse(spec string) (Chord, error) {
	if spec == "" {
		return Chord{}, fmt.Errorf("empty key specification")
	}

	// A literal "+" key has no separator semantics.
	if spec == "+" {
		return OfRune('+'), nil
	}

	parts := strings.Split(spec, "+")

	// A trailing separator means the key itself is "+", e.g. "ctrl++".
	last := parts[len(parts)-1]
	if last == "" {
		if len(parts) < 2 {
			return Chord{}, fmt.Errorf("invalid key specification %q", spec)
		}
		last = "+"
		parts = parts[:len(parts)-1]
	}

	var mods Modifier
	for _, part := range parts[:len(parts)-1] {
		mod := ModifierFromName(strings.TrimSpace(part))
		if mod == ModNone {
			return Chord{}, fmt.Errorf("unknown modifier %q in %q", part, spec)
		}
		mods = mods.With(mod)
	}

	name := strings.TrimSpace(last)
	if name == "" {
		name = last
	}

	// Named special key.
	if k := FromName(name); k != KeyNone {
		return Chord{Key: k, Mods: mods}, nil
	}

	// Single character key.
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return Chord{Key: KeyRune, Rune: r, Mods: mods}, nil
	}

	return Chord{}, fmt.Errorf("unknown key name %q in %q", name, spec)
}

// MustParse parses a key specification and panics on error.
// Intended for statically known specifications at registration time.
func MustParse(spec string) Chord {
	c, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return c
}
