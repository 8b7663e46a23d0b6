// Package source adapts host key events to the dispatch vocabulary.
//
// Terminals report key presses only, so the tcell and bubbletea adapters
// emit KindDown events; ExpandTerminal synthesizes the press half of the
// train for character strokes. Hosts that need real releases read the
// keyboard directly with the evdev Reader.
package source

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hotkeys/key"
)

// namedTcellKeys maps tcell's named keys. tcell aliases the C0 controls
// onto names (KeyCtrlI is KeyTab, KeyCtrlM is KeyEnter); the named key
// wins because the terminal cannot tell the two apart.
var namedTcellKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// FromTcell translates a tcell key event. The result is always KindDown;
// keys tcell has no name for come back as KeyNone and match nothing. The
// original event rides along in Native.
func FromTcell(ev *tcell.EventKey) key.Event {
	out := key.Event{
		Mods:   modsFromTcell(ev.Modifiers()),
		Kind:   key.KindDown,
		Time:   ev.When(),
		Native: ev,
	}

	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		out.Key = key.KeyRune
		out.Rune = ev.Rune()
	case k == tcell.KeyCtrlSpace:
		out.Key = key.KeyRune
		out.Rune = ' '
		out.Mods = out.Mods.With(key.ModCtrl)
	default:
		if named, ok := namedTcellKeys[k]; ok {
			out.Key = named
		} else if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			// The remaining C0 controls are ctrl chords.
			out.Key = key.KeyRune
			out.Rune = 'a' + rune(k-tcell.KeyCtrlA)
			out.Mods = out.Mods.With(key.ModCtrl)
		}
	}

	return key.Normalize(out)
}

// ExpandTerminal returns the event train hosts expect from one terminal
// stroke: the down plus a synthetic press for character-producing keys.
func ExpandTerminal(ev key.Event) []key.Event {
	if ev.Kind != key.KindDown || !ev.IsRune() ||
		ev.Mods.Has(key.ModCtrl|key.ModAlt|key.ModMeta) {
		return []key.Event{ev}
	}
	return []key.Event{ev, ev.WithKind(key.KindPress)}
}

func modsFromTcell(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}
