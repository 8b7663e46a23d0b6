package engine

import (
	"github.com/dshills/hotkeys/key"
	"github.com/dshills/hotkeys/keymap"
)

// Result reports what a dispatch did. The zero Result means nothing
// happened: no binding matched, or the event was only recorded.
type Result struct {
	// Handled reports whether a binding's handler ran.
	Handled bool

	// StopPropagation tells the host to stop bubbling the native event.
	// It is set alongside Handled for matched bindings.
	StopPropagation bool

	// Action is the action whose handler ran, when Handled.
	Action keymap.Action

	// Err is the handler's error, or a recovered handler panic.
	Err error
}

// CurrentEvent is the focus engine's snapshot of the event most recently
// processed on the focus path.
type CurrentEvent struct {
	// Event is the event as dispatched, Kind stamped.
	Event key.Event

	// Kind records the dispatch entry point (keydown, keypress, keyup).
	Kind key.Kind

	// Handled reports whether a handler ran for the event.
	Handled bool
}

// History is the oracle's verdict for a queried event.
type History uint8

const (
	// HistoryUnseen means the focus engine never processed the event.
	HistoryUnseen History = iota

	// HistorySeen means the event was processed but no handler ran.
	HistorySeen

	// HistoryHandled means a handler consumed the event.
	HistoryHandled
)

// String returns "unseen", "seen", or "handled".
func (h History) String() string {
	switch h {
	case HistorySeen:
		return "seen"
	case HistoryHandled:
		return "handled"
	default:
		return "unseen"
	}
}

// HistoryQuery answers whether an event was already seen or handled on
// the focus path. The global engine consults it before matching so a
// keystroke consumed by a focused component is not replayed globally.
type HistoryQuery func(ev key.Event, kind key.Kind) History
