// Package simulate fabricates key events for tests, demos and remote
// control. Fabricated events carry real timestamps and play through a
// Manager exactly like host events.
package simulate

import (
	"time"

	"github.com/dshills/hotkeys"
	"github.com/dshills/hotkeys/engine"
	"github.com/dshills/hotkeys/key"
)

// Dispatcher is the Manager-shaped surface Play drives. *hotkeys.Manager
// satisfies it.
type Dispatcher interface {
	HandleKeydown(ev key.Event, scope hotkeys.Scope) engine.Result
	HandleKeypress(ev key.Event, scope hotkeys.Scope) engine.Result
	HandleKeyup(ev key.Event, scope hotkeys.Scope) engine.Result
}

// Keydown fabricates a keydown event from a key spec. The spec must be
// valid; fabricators are for tests and tools where a bad spec is a bug.
func Keydown(spec string) key.Event {
	return stamp(key.MustParse(spec), key.KindDown)
}

// Keypress fabricates a keypress event from a key spec.
func Keypress(spec string) key.Event {
	return stamp(key.MustParse(spec), key.KindPress)
}

// Keyup fabricates a keyup event from a key spec.
func Keyup(spec string) key.Event {
	return stamp(key.MustParse(spec), key.KindUp)
}

// Stroke fabricates the physical event train for one key: down, press
// for character-producing strokes, then up. Ctrl, alt and meta chords
// produce no character, so no press.
func Stroke(spec string) []key.Event {
	return strokeEvents(key.MustParse(spec))
}

// Type fabricates Strokes for each rune of text. Upper-case runes
// normalize to shifted strokes the way Parse does.
func Type(text string) []key.Event {
	var evs []key.Event
	for _, r := range text {
		pattern := key.Normalize(key.Event{Key: key.KeyRune, Rune: r})
		evs = append(evs, strokeEvents(pattern)...)
	}
	return evs
}

// Play drives each event through the Dispatcher method matching its kind
// and collects the results in order.
func Play(d Dispatcher, scope hotkeys.Scope, evs []key.Event) []engine.Result {
	results := make([]engine.Result, 0, len(evs))
	for _, ev := range evs {
		switch ev.Kind {
		case key.KindPress:
			results = append(results, d.HandleKeypress(ev, scope))
		case key.KindUp:
			results = append(results, d.HandleKeyup(ev, scope))
		default:
			results = append(results, d.HandleKeydown(ev, scope))
		}
	}
	return results
}

func strokeEvents(pattern key.Event) []key.Event {
	evs := []key.Event{stamp(pattern, key.KindDown)}
	if pattern.IsRune() && !pattern.Mods.Has(key.ModCtrl|key.ModAlt|key.ModMeta) {
		evs = append(evs, stamp(pattern, key.KindPress))
	}
	return append(evs, stamp(pattern, key.KindUp))
}

func stamp(pattern key.Event, kind key.Kind) key.Event {
	ev := pattern.WithKind(kind)
	ev.Time = time.Now()
	return ev
}
