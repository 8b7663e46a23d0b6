// Package key defines the keyboard vocabulary used throughout hotkeys.
//
// An Event pairs a physical key identity (Key, Rune, Modifiers) with an
// event kind (keydown, keypress, keyup) and an opaque Native payload from
// the host that produced it. Matching compares key identity only; two
// events with different kinds or timestamps can still be the same stroke.
//
// Key specifications are lower-case strings in the "ctrl+s" dialect:
//
//	"a", "@", "space", "escape", "f5"
//	"ctrl+s", "alt+f4", "ctrl+shift+p", "meta+k"
//
// A Sequence is an ordered series of strokes, written space-separated:
//
//	"g g", "ctrl+k ctrl+c"
//
// Parsing is case-insensitive and accepts common aliases ("esc", "return",
// "pgup", "cmd", "option"); Normalize folds host quirks such as upper-case
// rune events into the canonical form so that lookups are layout-stable.
package key
