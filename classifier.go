package hotkeys

import "github.com/dshills/hotkeys/keymap"

// Classifier decides whether a focus tree should be dispatched on the
// focus path. Implementations must be pure: no side effects, no state
// mutation, the same answer for the same tree until the tree's lifecycle
// changes.
type Classifier interface {
	IsFocusScoped(tree keymap.FocusTreeID) bool
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(tree keymap.FocusTreeID) bool

// IsFocusScoped implements Classifier.
func (f ClassifierFunc) IsFocusScoped(tree keymap.FocusTreeID) bool {
	return f(tree)
}

// liveTreeClassifier is the default: a tree is focus-scoped exactly while
// the focus engine considers it live. Events for retired trees fall
// through to ambient recording.
type liveTreeClassifier struct {
	focus FocusEngine
}

func (c liveTreeClassifier) IsFocusScoped(tree keymap.FocusTreeID) bool {
	return c.focus.IsLive(tree)
}
