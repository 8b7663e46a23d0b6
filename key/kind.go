package key

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the event type of a key event.
type Kind uint8

const (
	// KindDown is a key press (the default for bindings).
	KindDown Kind = iota

	// KindPress is a character-producing press, emitted between down and up
	// for rune keys.
	KindPress

	// KindUp is a key release.
	KindUp
)

// ErrUnknownKind is returned by ParseKind for unrecognized names.
var ErrUnknownKind = errors.New("unknown event kind")

// String returns the DOM-style name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDown:
		return "keydown"
	case KindPress:
		return "keypress"
	case KindUp:
		return "keyup"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind resolves "keydown"/"keypress"/"keyup" (case-insensitive);
// the short forms "down"/"press"/"up" are accepted as well.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keydown", "down":
		return KindDown, nil
	case "keypress", "press":
		return KindPress, nil
	case "keyup", "up":
		return KindUp, nil
	default:
		return KindDown, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}
