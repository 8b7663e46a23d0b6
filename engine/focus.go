package engine

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dshills/hotkeys/key"
	"github.com/dshills/hotkeys/keymap"
)

// registration is one component's compiled bindings.
type registration struct {
	id  keymap.ComponentID
	set *keymap.Set
}

// focusTree is one live focus tree: component registrations in mount
// order, outermost first.
type focusTree struct {
	id         keymap.FocusTreeID
	components []*registration
}

// match walks the tree from the observing component outward. The first
// exact match wins; the bool reports whether any walked component holds a
// longer binding this sequence is a prefix of.
func (t *focusTree) match(seq key.Sequence, kind key.Kind, from keymap.ComponentID) (*keymap.Binding, keymap.Handler, bool) {
	start := len(t.components) - 1
	for i, r := range t.components {
		if r.id == from {
			start = i
			break
		}
	}

	prefix := false
	for i := start; i >= 0; i-- {
		b, h, p := matchSet(t.components[i].set, seq, kind)
		if b != nil {
			return b, h, false
		}
		prefix = prefix || p
	}
	return nil, nil, prefix
}

// Focus scopes hotkey registrations to focus trees and dispatches events
// within them.
type Focus struct {
	mu  sync.RWMutex
	cfg Config
	log *logrus.Entry

	trees     map[keymap.FocusTreeID]*focusTree
	active    keymap.FocusTreeID
	hasActive bool

	pend        *pending
	pendingTree keymap.FocusTreeID

	current *CurrentEvent
	closed  bool
}

// NewFocus creates a focus engine.
func NewFocus(cfg Config) *Focus {
	cfg = cfg.withDefaults()
	f := &Focus{
		cfg:   cfg,
		log:   cfg.Logger.WithField("component", "engine.focus"),
		trees: make(map[keymap.FocusTreeID]*focusTree),
	}
	f.pend = newPending(cfg.SequenceTimeout, f.expirePending)
	return f
}

// Activate starts a new live focus tree and makes it current. Hosts call
// it when a scoped region gains focus.
func (f *Focus) Activate() keymap.FocusTreeID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ""
	}
	return f.activateLocked()
}

func (f *Focus) activateLocked() keymap.FocusTreeID {
	id := keymap.NewFocusTreeID()
	f.trees[id] = &focusTree{id: id}
	f.active = id
	f.hasActive = true
	f.log.WithField("tree", id).Debug("focus tree activated")
	return id
}

// Deactivate retires a focus tree. Subsequent dispatches naming the tree
// yield the zero Result; any partial sequence match in it is cancelled.
func (f *Focus) Deactivate(tree keymap.FocusTreeID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.trees[tree]; !ok {
		return
	}
	delete(f.trees, tree)
	if f.active == tree {
		f.active = ""
		f.hasActive = false
	}
	if f.pendingTree == tree {
		f.pend.clear()
	}
	f.log.WithField("tree", tree).Debug("focus tree deactivated")
}

// ActiveTree returns the current focus tree, false when none is live.
func (f *Focus) ActiveTree() (keymap.FocusTreeID, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.active, f.hasActive
}

// IsLive reports whether a tree is registered and not yet deactivated.
func (f *Focus) IsLive(tree keymap.FocusTreeID) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.trees[tree]
	return ok
}

// AddHotkeys registers a component in the current tree, activating one if
// none is live. The most recently added component is innermost. Nil maps
// register as empty.
func (f *Focus) AddHotkeys(m keymap.Map, h keymap.Handlers, opts *keymap.Options) keymap.ComponentID {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ""
	}
	if !f.hasActive {
		f.activateLocked()
	}

	id := keymap.NewComponentID()
	t := f.trees[f.active]
	t.components = append(t.components, &registration{
		id:  id,
		set: compileRegistration(f.log, m, h, opts),
	})
	f.log.WithField("tree", f.active).WithField("componentID", id).Debug("hotkeys added")
	return id
}

// UpdateHotkeys replaces a component's registration. Unknown trees or
// components are a no-op; the change takes effect for the next event.
func (f *Focus) UpdateHotkeys(tree keymap.FocusTreeID, component keymap.ComponentID, m keymap.Map, h keymap.Handlers, opts *keymap.Options) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	t, ok := f.trees[tree]
	if !ok {
		f.log.WithField("tree", tree).Debug("update for unknown focus tree")
		return
	}
	for _, r := range t.components {
		if r.id == component {
			r.set = compileRegistration(f.log, m, h, opts)
			return
		}
	}
	f.log.WithField("componentID", component).Debug("update for unknown component")
}

// RemoveHotkeys detaches a component and cancels any partial sequence
// match in its tree. It returns true when the tree remains live with
// other components registered, the signal that the removal notice should
// keep propagating outward.
func (f *Focus) RemoveHotkeys(tree keymap.FocusTreeID, component keymap.ComponentID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.trees[tree]
	if !ok {
		return false
	}
	for i, r := range t.components {
		if r.id != component {
			continue
		}
		t.components = append(t.components[:i], t.components[i+1:]...)
		if f.pendingTree == tree {
			f.pend.clear()
		}
		f.log.WithField("tree", tree).WithField("componentID", component).Debug("hotkeys removed")
		return len(t.components) > 0
	}
	return false
}

// HandleKeydown dispatches a keydown event within a focus tree.
func (f *Focus) HandleKeydown(ev key.Event, tree keymap.FocusTreeID, component keymap.ComponentID) Result {
	return f.dispatch(ev.WithKind(key.KindDown), tree, component)
}

// HandleKeypress dispatches a keypress event within a focus tree.
func (f *Focus) HandleKeypress(ev key.Event, tree keymap.FocusTreeID, component keymap.ComponentID) Result {
	return f.dispatch(ev.WithKind(key.KindPress), tree, component)
}

// HandleKeyup dispatches a keyup event within a focus tree.
func (f *Focus) HandleKeyup(ev key.Event, tree keymap.FocusTreeID, component keymap.ComponentID) Result {
	return f.dispatch(ev.WithKind(key.KindUp), tree, component)
}

func (f *Focus) dispatch(ev key.Event, tree keymap.FocusTreeID, component keymap.ComponentID) Result {
	f.mu.Lock()

	if f.closed {
		f.mu.Unlock()
		return Result{}
	}
	t, ok := f.trees[tree]
	if !ok {
		f.mu.Unlock()
		f.log.WithField("tree", tree).Debug("dispatch to stale focus tree")
		return Result{}
	}

	f.current = &CurrentEvent{Event: ev, Kind: ev.Kind}

	// A sequence never spans focus trees.
	if f.pendingTree != tree {
		f.pend.clear()
		f.pendingTree = tree
	}

	seq := append(f.pend.take(ev.Kind), ev)
	b, h, prefix := t.match(seq, ev.Kind, component)
	if b == nil && !prefix && len(seq) > 1 {
		// The armed prefix is dead, but the event may start a sequence
		// of its own.
		seq = key.Sequence{ev}
		b, h, prefix = t.match(seq, ev.Kind, component)
	}

	switch {
	case b != nil:
		f.pend.drop(ev.Kind)
		f.current.Handled = true
		action := b.Action
		rec := f.cfg.Recover
		log := f.log
		f.mu.Unlock()
		err := invoke(rec, log, action, h, ev)
		return Result{Handled: true, StopPropagation: true, Action: action, Err: err}

	case prefix:
		f.pend.arm(ev.Kind, seq)
		f.mu.Unlock()
		return Result{}

	default:
		f.pend.drop(ev.Kind)
		f.mu.Unlock()
		return Result{}
	}
}

// expirePending flushes partial matches after SequenceTimeout.
func (f *Focus) expirePending() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || f.pend.empty() {
		return
	}
	f.log.Debug("pending key sequence timed out")
	f.pend.clear()
}

// CurrentEvent returns the snapshot of the most recently processed event,
// false before any event.
func (f *Focus) CurrentEvent() (CurrentEvent, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.current == nil {
		return CurrentEvent{}, false
	}
	return *f.current, true
}

// Close stops the engine. Further dispatches return the zero Result.
func (f *Focus) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	f.pend.clear()
}
