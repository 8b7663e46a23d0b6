package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors.
var (
	ErrEmptySpec       = errors.New("empty key spec")
	ErrUnknownKey      = errors.New("unknown key")
	ErrUnknownModifier = errors.New("unknown modifier")
)

// Parse parses a key specification into an Event pattern.
//
// Supported forms:
//   - single characters: "a", "A", "1", "@"
//   - key names and aliases: "enter", "escape", "esc", "f5", "space"
//   - with modifiers: "ctrl+s", "alt+f4", "ctrl+shift+p", "meta+k"
//
// Parsing is case-insensitive. The returned Event has zero Kind and Time:
// it is a pattern for matching, not an occurrence. Upper-case letters
// normalize to shift+lower-case.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	// A lone character, including "+" itself.
	if runes := []rune(spec); len(runes) == 1 {
		return runePattern(runes[0], ModNone), nil
	}

	parts := strings.Split(spec, "+")
	if len(parts) == 1 {
		return keyPattern(parts[0], ModNone)
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: %q in %q", ErrUnknownModifier, p, spec)
		}
		mods = mods.With(mod)
	}
	return keyPattern(parts[len(parts)-1], mods)
}

// MustParse parses a key specification and panics on error. Use only for
// known-valid specs in initialization code.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic("key: invalid spec " + spec + ": " + err.Error())
	}
	return ev
}

// keyPattern resolves the key token of a spec against names, aliases and
// single characters, in that order.
func keyPattern(token string, mods Modifier) (Event, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Event{}, fmt.Errorf("%w: empty key token", ErrUnknownKey)
	}
	lower := strings.ToLower(token)

	if k := KeyFromName(lower); k != KeyNone {
		return Event{Key: k, Mods: mods}, nil
	}
	if a, ok := lookupAlias(lower); ok {
		if a.key != KeyNone {
			return Event{Key: a.key, Mods: mods}, nil
		}
		return runePattern(a.r, mods), nil
	}
	if runes := []rune(token); len(runes) == 1 {
		return runePattern(runes[0], mods), nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrUnknownKey, token)
}

// runePattern builds a normalized character pattern.
func runePattern(r rune, mods Modifier) Event {
	return Normalize(Event{Key: KeyRune, Rune: r, Mods: mods})
}
