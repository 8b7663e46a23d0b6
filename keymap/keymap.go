package keymap

import (
	"sort"

	"github.com/dshills/hotkeys/key"
)

// Action is a symbolic action name, e.g. "save" or "quit".
type Action string

// Map binds actions to key specs. Each spec may be a single stroke
// ("ctrl+s") or a space-separated sequence ("g g").
type Map map[Action][]string

// Handler is invoked when a binding for its action matches. The error is
// carried back to the dispatching caller uninterpreted.
type Handler func(ev key.Event) error

// Handlers binds actions to handler functions.
type Handlers map[Action]Handler

// Actions returns the map's action names sorted for deterministic
// iteration.
func (m Map) Actions() []Action {
	names := make([]Action, 0, len(m))
	for a := range m {
		names = append(names, a)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Actions returns the handler actions sorted for deterministic iteration.
func (h Handlers) Actions() []Action {
	names := make([]Action, 0, len(h))
	for a := range h {
		names = append(names, a)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Merge returns a new Map containing m's entries overlaid with other's.
func (m Map) Merge(other Map) Map {
	out := make(Map, len(m)+len(other))
	for a, specs := range m {
		out[a] = append([]string(nil), specs...)
	}
	for a, specs := range other {
		out[a] = append([]string(nil), specs...)
	}
	return out
}
