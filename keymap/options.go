package keymap

import "github.com/dshills/hotkeys/key"

// Options configures a registration. The zero value is usable: bindings
// fire on keydown with priority 0.
type Options struct {
	// Priority orders bindings when several match the same stroke;
	// higher wins.
	Priority int

	// Description is shown in help surfaces.
	Description string

	// On selects the event kind the bindings fire on. Zero means keydown.
	On key.Kind

	// Group labels the registration for help surfaces and logs.
	Group string
}

// EventOptions configures event-level behavior for global registrations.
type EventOptions struct {
	// Ignore, when set, is consulted before matching; returning true
	// skips the event entirely for this registration.
	Ignore func(ev key.Event) bool
}
