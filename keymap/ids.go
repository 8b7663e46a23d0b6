package keymap

import "github.com/google/uuid"

// ComponentID identifies one registration within an engine. IDs are
// opaque; callers hold them only to update or remove the registration.
type ComponentID string

// FocusTreeID identifies one focus tree (a focused region of the host UI
// and the components registered while it held focus).
type FocusTreeID string

// NewComponentID mints a fresh component identity.
func NewComponentID() ComponentID {
	return ComponentID(uuid.New().String())
}

// NewFocusTreeID mints a fresh focus tree identity.
func NewFocusTreeID() FocusTreeID {
	return FocusTreeID(uuid.New().String())
}
