package key

import "strings"

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModCtrl indicates the Control key.
	ModCtrl Modifier = 1 << iota

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModShift indicates the Shift key.
	ModShift

	// ModMeta indicates the Meta key (Cmd on macOS, Win/Super elsewhere).
	ModMeta
)

// Has reports whether m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns m with mod removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// String returns the canonical rendering, e.g. "ctrl+alt".
// Order is always ctrl, alt, shift, meta.
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	parts := make([]string, 0, 4)
	if m.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "meta")
	}
	return strings.Join(parts, "+")
}

// modifiersByName maps modifier spellings (lower-case) to Modifier values.
// Includes the platform aliases hosts tend to produce in config files.
var modifiersByName = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"win":     ModMeta,
	"super":   ModMeta,
}

// ModifierFromName resolves a modifier spelling (case-insensitive).
// Returns ModNone if the name is not a modifier.
func ModifierFromName(name string) Modifier {
	if m, ok := modifiersByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m
	}
	return ModNone
}
