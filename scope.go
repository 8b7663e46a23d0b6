package hotkeys

import (
	"fmt"

	"github.com/dshills/hotkeys/keymap"
)

// Scope tags a dispatched event with its routing target. Hosts construct
// one per event with FocusScope or Ambient; the Manager never infers the
// scope from the event itself.
type Scope struct {
	tree      keymap.FocusTreeID
	component keymap.ComponentID
	focus     bool
}

// FocusScope routes the event through a focus tree, entering at the
// component that observed it.
func FocusScope(tree keymap.FocusTreeID, component keymap.ComponentID) Scope {
	return Scope{tree: tree, component: component, focus: true}
}

// Ambient tags an event that did not originate in any focus-scoped
// region. The Manager records it and returns the zero Result.
func Ambient() Scope {
	return Scope{}
}

// IsFocus reports whether the scope names a focus tree.
func (s Scope) IsFocus() bool {
	return s.focus
}

// Tree returns the named focus tree, the zero ID for ambient scopes.
func (s Scope) Tree() keymap.FocusTreeID {
	return s.tree
}

// Component returns the observing component, the zero ID for ambient
// scopes.
func (s Scope) Component() keymap.ComponentID {
	return s.component
}

// String renders the scope for logs.
func (s Scope) String() string {
	if !s.focus {
		return "ambient"
	}
	return fmt.Sprintf("focus(%s/%s)", s.tree, s.component)
}
