package key

import (
	"fmt"
	"time"
	"unicode"
)

// Event is a single keyboard event.
//
// Key, Rune and Mods form the stroke identity used for matching. Kind is
// the event type. Native carries the untranslated host event (a tcell
// event, a tea.KeyMsg, an evdev event); the library stores it but never
// inspects it.
type Event struct {
	// Key identifies a special key, or KeyRune for characters.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Mods contains the held modifier keys.
	Mods Modifier

	// Kind is the event type (keydown, keypress, keyup).
	Kind Kind

	// Time is when the event occurred.
	Time time.Time

	// Native is the host event this one was translated from, if any.
	Native any
}

// NewEvent creates an event stamped with the current time.
func NewEvent(k Key, r rune, mods Modifier) Event {
	return Event{Key: k, Rune: r, Mods: mods, Time: time.Now()}
}

// NewRuneEvent creates a character event stamped with the current time.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Mods: mods, Time: time.Now()}
}

// NewSpecialEvent creates a special-key event stamped with the current time.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Mods: mods, Time: time.Now()}
}

// WithKind returns a copy of e with the given kind.
func (e Event) WithKind(k Kind) Event {
	e.Kind = k
	return e
}

// IsRune reports whether this is a character event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsModified reports whether a modifier is held. Shift alone does not
// count for character events, where it is part of the character.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Mods&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Mods != ModNone
}

// SameStroke reports whether two events are the same physical stroke.
// Kind, Time and Native are not compared. Both sides are normalized, so
// an upper-case rune event matches its shift+lower-case form.
func (e Event) SameStroke(other Event) bool {
	a, b := Normalize(e), Normalize(other)
	return a.Key == b.Key && a.Rune == b.Rune && a.Mods == b.Mods
}

// ID returns the canonical spec string for the stroke, e.g. "a",
// "ctrl+s", "alt+f4", "shift+tab", "space". Parsing the result yields an
// event with the same stroke identity.
func (e Event) ID() string {
	n := Normalize(e)

	var name string
	switch {
	case n.Key == KeyRune && n.Rune == ' ':
		name = "space"
	case n.Key == KeyRune && n.Rune == '+':
		name = "plus"
	case n.Key == KeyRune:
		name = string(n.Rune)
	default:
		name = n.Key.String()
	}

	if mods := n.Mods.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// String returns the canonical stroke spec; it does not include the kind.
func (e Event) String() string {
	return e.ID()
}

// Normalize returns the canonical form of an event's stroke identity:
// upper-case letter runes become shift+lower-case, and the rune of a
// ctrl combination is lowered. Kind, Time and Native pass through.
func Normalize(e Event) Event {
	if e.Key != KeyRune {
		return e
	}
	if unicode.IsUpper(e.Rune) {
		e.Rune = unicode.ToLower(e.Rune)
		e.Mods = e.Mods.With(ModShift)
	} else if e.Mods.Has(ModCtrl) {
		e.Rune = unicode.ToLower(e.Rune)
	}
	return e
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("key.Event{%s %s rune=%q mods=%q}",
		e.Kind.String(), e.Key.String(), e.Rune, e.Mods.String())
}
