package terminal_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keywarden/internal/input/key"
	"github.com/dshills/keywarden/internal/terminal"
)

func TestTranslateFunctionKey(t *testing.T) {
	ev, ok := terminal.Translate(tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone))
	if !ok {
		t.Fatal("F1 should translate")
	}
	if ev.Chord() != key.Of(key.KeyF1) {
		t.Errorf("expected F1 chord, got %s", ev)
	}
}

func TestTranslateModifiedFunctionKey(t *testing.T) {
	ev, ok := terminal.Translate(tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModCtrl))
	if !ok {
		t.Fatal("Ctrl+F12 should translate")
	}
	want := key.Of(key.KeyF12).With(key.ModCtrl)
	if ev.Chord() != want {
		t.Errorf("expected %s, got %s", want, ev)
	}
}

func TestTranslateRune(t *testing.T) {
	ev, ok := terminal.Translate(tcell.NewEventKey(tcell.KeyRune, '`', tcell.ModNone))
	if !ok {
		t.Fatal("backtick should translate")
	}
	if ev.Chord() != key.OfRune('`') {
		t.Errorf("expected backtick chord, got %s", ev)
	}
}

func TestTranslateCtrlLetter(t *testing.T) {
	ev, ok := terminal.Translate(tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl))
	if !ok {
		t.Fatal("Ctrl+R should translate")
	}
	want := key.OfRune('r').With(key.ModCtrl)
	if ev.Chord() != want {
		t.Errorf("expected %s, got %s", want, ev)
	}
	if !ev.Matches("ctrl+r") {
		t.Error("translated event should match the ctrl+r spec")
	}
}

func TestTranslateSpecialKeys(t *testing.T) {
	cases := []struct {
		in   tcell.Key
		want key.Key
	}{
		{tcell.KeyEscape, key.KeyEscape},
		{tcell.KeyEnter, key.KeyEnter},
		{tcell.KeyTab, key.KeyTab},
		{tcell.KeyBackspace2, key.KeyBackspace},
		{tcell.KeyUp, key.KeyUp},
		{tcell.KeyPgDn, key.KeyPageDown},
	}
	for _, tc := range cases {
		ev, ok := terminal.Translate(tcell.NewEventKey(tc.in, 0, tcell.ModNone))
		if !ok {
			t.Errorf("key %v should translate", tc.in)
			continue
		}
		if ev.Key != tc.want {
			t.Errorf("key %v: expected %s, got %s", tc.in, tc.want, ev.Key)
		}
	}
}
