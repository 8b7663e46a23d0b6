package key

import (
	"fmt"
	"strings"
)

// Key identifies a non-character key. Character keys use KeyRune with the
// character carried in Event.Rune.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Editing and navigation keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// KeyRune marks a character key. The character lives in Event.Rune.
	KeyRune
)

// keyNames holds the canonical lower-case name for each special key.
var keyNames = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

// keysByName is the reverse of keyNames, built at init.
var keysByName = func() map[string]Key {
	m := make(map[string]Key, len(keyNames))
	for k, name := range keyNames {
		m[name] = k
	}
	return m
}()

// String returns the canonical lower-case name of the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyRune:
		return "rune"
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", uint16(k))
}

// KeyFromName resolves a canonical key name (case-insensitive).
// Returns KeyNone if the name is not a special key; aliases are handled
// by Parse, not here.
func KeyFromName(name string) Key {
	if k, ok := keysByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k
	}
	return KeyNone
}

// IsSpecial reports whether k names a non-character key.
func (k Key) IsSpecial() bool {
	return k != KeyNone && k != KeyRune
}

// IsFunction reports whether k is one of F1 through F12.
func (k Key) IsFunction() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsArrow reports whether k is an arrow key.
func (k Key) IsArrow() bool {
	return k >= KeyUp && k <= KeyRight
}

// IsNavigation reports whether k moves the cursor or viewport.
func (k Key) IsNavigation() bool {
	return k.IsArrow() || k == KeyHome || k == KeyEnd || k == KeyPageUp || k == KeyPageDown
}
