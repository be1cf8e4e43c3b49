package key_test

import (
	"testing"

	"github.com/dshills/keywarden/internal/input/key"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		k    key.Key
		want string
	}{
		{key.KeyF1, "F1"},
		{key.KeyF12, "F12"},
		{key.KeyEscape, "Escape"},
		{key.KeyEnter, "Enter"},
		{key.KeySpace, "Space"},
	}

	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestFromName(t *testing.T) {
	if got := key.FromName("f9"); got != key.KeyF9 {
		t.Errorf("FromName(f9) = %v, want KeyF9", got)
	}
	if got := key.FromName("F9"); got != key.KeyF9 {
		t.Errorf("FromName(F9) = %v, want KeyF9", got)
	}
	if got := key.FromName("nope"); got != key.KeyNone {
		t.Errorf("FromName(nope) = %v, want KeyNone", got)
	}
}

func TestIsFunctionKey(t *testing.T) {
	if !key.KeyF1.IsFunctionKey() {
		t.Error("expected F1 to be a function key")
	}
	if !key.KeyF12.IsFunctionKey() {
		t.Error("expected F12 to be a function key")
	}
	if key.KeyEnter.IsFunctionKey() {
		t.Error("expected Enter not to be a function key")
	}
}

func TestModifierHas(t *testing.T) {
	m := key.ModCtrl.With(key.ModShift)

	if !m.HasCtrl() {
		t.Error("expected Ctrl")
	}
	if !m.HasShift() {
		t.Error("expected Shift")
	}
	if m.HasAlt() {
		t.Error("did not expect Alt")
	}
}

func TestModifierWithout(t *testing.T) {
	m := key.ModCtrl.With(key.ModAlt).Without(key.ModCtrl)

	if m.HasCtrl() {
		t.Error("expected Ctrl removed")
	}
	if !m.HasAlt() {
		t.Error("expected Alt kept")
	}
}

func TestChordString(t *testing.T) {
	tests := []struct {
		c    key.Chord
		want string
	}{
		{key.Of(key.KeyF1), "F1"},
		{key.Of(key.KeyF12).With(key.ModCtrl), "Ctrl+F12"},
		{key.OfRune('`'), "`"},
		{key.OfRune(' '), "Space"},
		{key.OfRune('c').With(key.ModCtrl), "Ctrl+c"},
	}

	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Chord.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestChordComparable(t *testing.T) {
	a := key.Of(key.KeyF1)
	b := key.Of(key.KeyF1)
	c := key.Of(key.KeyF1).With(key.ModCtrl)

	if a != b {
		t.Error("expected identical chords to compare equal")
	}
	if a == c {
		t.Error("expected modified chord to differ")
	}

	m := map[key.Chord]int{a: 1}
	if m[b] != 1 {
		t.Error("expected chord to work as map key")
	}
}

func TestEventChord(t *testing.T) {
	ev := key.NewSpecialEvent(key.KeyF9, key.ModNone)
	if ev.Chord() != key.Of(key.KeyF9) {
		t.Errorf("Event.Chord() = %v, want F9", ev.Chord())
	}

	rev := key.NewRuneEvent('`', key.ModNone)
	if rev.Chord() != key.OfRune('`') {
		t.Errorf("Event.Chord() = %v, want backtick", rev.Chord())
	}
}

func TestEventMatches(t *testing.T) {
	ev := key.NewSpecialEvent(key.KeyF12, key.ModCtrl)

	if !ev.Matches("ctrl+f12") {
		t.Error("expected Ctrl+F12 to match spec")
	}
	if ev.Matches("f12") {
		t.Error("did not expect bare F12 to match")
	}
}
