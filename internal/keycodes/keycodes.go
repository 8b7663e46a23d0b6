// Package keycodes maps the key vocabulary to linux input event codes.
// The tables are plain data and portable; only the evdev and uinput
// consumers are linux-specific.
package keycodes

import "github.com/dshills/hotkeys/key"

// Codes from linux/input-event-codes.h for the keys the vocabulary can
// express.
var specialCodes = map[key.Key]uint16{
	key.KeyEscape:    1,
	key.KeyBackspace: 14,
	key.KeyTab:       15,
	key.KeyEnter:     28,
	key.KeyHome:      102,
	key.KeyUp:        103,
	key.KeyPageUp:    104,
	key.KeyLeft:      105,
	key.KeyRight:     106,
	key.KeyEnd:       107,
	key.KeyDown:      108,
	key.KeyPageDown:  109,
	key.KeyInsert:    110,
	key.KeyDelete:    111,
	key.KeyF1:        59,
	key.KeyF2:        60,
	key.KeyF3:        61,
	key.KeyF4:        62,
	key.KeyF5:        63,
	key.KeyF6:        64,
	key.KeyF7:        65,
	key.KeyF8:        66,
	key.KeyF9:        67,
	key.KeyF10:       68,
	key.KeyF11:       87,
	key.KeyF12:       88,
}

var runeCodes = map[rune]uint16{
	'1': 2, '2': 3, '3': 4, '4': 5, '5': 6,
	'6': 7, '7': 8, '8': 9, '9': 10, '0': 11,
	'-': 12, '=': 13,
	'q': 16, 'w': 17, 'e': 18, 'r': 19, 't': 20,
	'y': 21, 'u': 22, 'i': 23, 'o': 24, 'p': 25,
	'[': 26, ']': 27,
	'a': 30, 's': 31, 'd': 32, 'f': 33, 'g': 34,
	'h': 35, 'j': 36, 'k': 37, 'l': 38,
	';': 39, '\'': 40, '`': 41, '\\': 43,
	'z': 44, 'x': 45, 'c': 46, 'v': 47, 'b': 48,
	'n': 49, 'm': 50,
	',': 51, '.': 52, '/': 53,
	' ': 57,
}

// Left and right variants of each modifier key.
var modifierCodes = map[uint16]key.Modifier{
	29:  key.ModCtrl,  // KEY_LEFTCTRL
	97:  key.ModCtrl,  // KEY_RIGHTCTRL
	42:  key.ModShift, // KEY_LEFTSHIFT
	54:  key.ModShift, // KEY_RIGHTSHIFT
	56:  key.ModAlt,   // KEY_LEFTALT
	100: key.ModAlt,   // KEY_RIGHTALT
	125: key.ModMeta,  // KEY_LEFTMETA
	126: key.ModMeta,  // KEY_RIGHTMETA
}

// eventsByCode reverses the two forward tables at init.
var eventsByCode = func() map[uint16]key.Event {
	m := make(map[uint16]key.Event, len(specialCodes)+len(runeCodes))
	for k, code := range specialCodes {
		m[code] = key.Event{Key: k}
	}
	for r, code := range runeCodes {
		m[code] = key.Event{Key: key.KeyRune, Rune: r}
	}
	return m
}()

// ToEvdev returns the linux code for the event's main key. Modifiers are
// separate keys on a physical keyboard; use ModifierCodes for them.
// Upper-case runes map through their lower-case key.
func ToEvdev(ev key.Event) (uint16, bool) {
	if ev.Key == key.KeyRune {
		code, ok := runeCodes[ev.Rune]
		if !ok && ev.Rune >= 'A' && ev.Rune <= 'Z' {
			code, ok = runeCodes[ev.Rune+('a'-'A')]
		}
		return code, ok
	}
	code, ok := specialCodes[ev.Key]
	return code, ok
}

// FromEvdev returns the pattern event for a linux code. Modifier keys and
// unmapped codes report ok false; callers track modifier state themselves.
func FromEvdev(code uint16) (key.Event, bool) {
	ev, ok := eventsByCode[code]
	return ev, ok
}

// ToUinput returns the event's key code for the uinput virtual keyboard.
// uinput shares the linux code space.
func ToUinput(ev key.Event) (int, bool) {
	code, ok := ToEvdev(ev)
	return int(code), ok
}

// ModifierFromCode identifies modifier keys in a raw event stream.
func ModifierFromCode(code uint16) (key.Modifier, bool) {
	mod, ok := modifierCodes[code]
	return mod, ok
}

// ModifierCodes returns the left-hand key code for each modifier set in
// mods, in press order: ctrl, alt, shift, meta.
func ModifierCodes(mods key.Modifier) []uint16 {
	var codes []uint16
	if mods.Has(key.ModCtrl) {
		codes = append(codes, 29)
	}
	if mods.Has(key.ModAlt) {
		codes = append(codes, 56)
	}
	if mods.Has(key.ModShift) {
		codes = append(codes, 42)
	}
	if mods.Has(key.ModMeta) {
		codes = append(codes, 125)
	}
	return codes
}
