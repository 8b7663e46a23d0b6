package hotkeys

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dshills/hotkeys/engine"
	"github.com/dshills/hotkeys/journal"
	"github.com/dshills/hotkeys/key"
	"github.com/dshills/hotkeys/keymap"
)

// FocusEngine is the focus-path collaborator contract. *engine.Focus is
// the production implementation.
type FocusEngine interface {
	Activate() keymap.FocusTreeID
	Deactivate(tree keymap.FocusTreeID)
	ActiveTree() (keymap.FocusTreeID, bool)
	IsLive(tree keymap.FocusTreeID) bool
	AddHotkeys(m keymap.Map, h keymap.Handlers, opts *keymap.Options) keymap.ComponentID
	UpdateHotkeys(tree keymap.FocusTreeID, component keymap.ComponentID, m keymap.Map, h keymap.Handlers, opts *keymap.Options)
	RemoveHotkeys(tree keymap.FocusTreeID, component keymap.ComponentID) bool
	HandleKeydown(ev key.Event, tree keymap.FocusTreeID, component keymap.ComponentID) engine.Result
	HandleKeypress(ev key.Event, tree keymap.FocusTreeID, component keymap.ComponentID) engine.Result
	HandleKeyup(ev key.Event, tree keymap.FocusTreeID, component keymap.ComponentID) engine.Result
	CurrentEvent() (engine.CurrentEvent, bool)
	Close()
}

// GlobalEngine is the global-path collaborator contract. *engine.Global
// is the production implementation.
type GlobalEngine interface {
	AddHotkeys(m keymap.Map, h keymap.Handlers, opts *keymap.Options, evOpts *keymap.EventOptions) keymap.ComponentID
	UpdateHotkeys(component keymap.ComponentID, m keymap.Map, h keymap.Handlers, opts *keymap.Options, evOpts *keymap.EventOptions)
	RemoveHotkeys(component keymap.ComponentID) bool
	HandleKeydown(ev key.Event) engine.Result
	HandleKeypress(ev key.Event) engine.Result
	HandleKeyup(ev key.Event) engine.Result
	Close()
}

// LastEvent is the record of the most recent event dispatched outside
// the focus path.
type LastEvent struct {
	// Event is the event as dispatched, Kind stamped and Native payload
	// preserved.
	Event key.Event

	// Kind records the dispatch entry point.
	Kind key.Kind
}

// Manager coordinates the focus and global engines. Construct one with
// New, or use the package default via GetManager.
type Manager struct {
	mu  sync.RWMutex
	log *logrus.Entry

	focus      FocusEngine
	global     GlobalEngine
	classifier Classifier
	journal    journal.Recorder

	last   *LastEvent
	closed bool
}

// New creates a Manager. A nil cfg means DefaultConfig.
func New(cfg *Config) *Manager {
	var c Config
	if cfg != nil {
		c = *cfg
	} else {
		c = *DefaultConfig()
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
		c.Logger.SetLevel(logrus.WarnLevel)
	}

	ecfg := engine.Config{
		SequenceTimeout: c.SequenceTimeout,
		Logger:          c.Logger,
		Recover:         c.Recover,
	}

	m := &Manager{
		log:     c.Logger.WithField("component", "manager"),
		journal: c.Journal,
	}
	m.focus = engine.NewFocus(ecfg)
	m.global = engine.NewGlobal(ecfg, m.QueryEventHistory)
	m.classifier = c.Classifier
	if m.classifier == nil {
		m.classifier = liveTreeClassifier{focus: m.focus}
	}
	return m
}

// Close shuts down both engines. Further dispatches return the zero
// Result; Close is idempotent.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()

	m.focus.Close()
	m.global.Close()
	m.log.Debug("manager closed")
}

// AddHotkeys registers a component's bindings in the current focus tree
// and returns its ComponentID. Nil maps register as empty.
func (m *Manager) AddHotkeys(km keymap.Map, h keymap.Handlers, opts *keymap.Options) keymap.ComponentID {
	return m.focus.AddHotkeys(km, h, opts)
}

// UpdateHotkeys replaces a focus component's registration in place.
func (m *Manager) UpdateHotkeys(tree keymap.FocusTreeID, component keymap.ComponentID, km keymap.Map, h keymap.Handlers, opts *keymap.Options) {
	m.focus.UpdateHotkeys(tree, component, km, h, opts)
}

// RemoveHotkeys detaches a focus component. The boolean is the focus
// engine's propagation signal, returned unmodified.
func (m *Manager) RemoveHotkeys(tree keymap.FocusTreeID, component keymap.ComponentID) bool {
	return m.focus.RemoveHotkeys(tree, component)
}

// ActivateFocusTree starts a new live focus tree and makes it current.
func (m *Manager) ActivateFocusTree() keymap.FocusTreeID {
	return m.focus.Activate()
}

// DeactivateFocusTree retires a focus tree.
func (m *Manager) DeactivateFocusTree(tree keymap.FocusTreeID) {
	m.focus.Deactivate(tree)
}

// AddGlobalHotkeys registers a global component and returns its
// ComponentID.
func (m *Manager) AddGlobalHotkeys(km keymap.Map, h keymap.Handlers, opts *keymap.Options, evOpts *keymap.EventOptions) keymap.ComponentID {
	return m.global.AddHotkeys(km, h, opts, evOpts)
}

// UpdateGlobalHotkeys replaces a global component's registration.
func (m *Manager) UpdateGlobalHotkeys(component keymap.ComponentID, km keymap.Map, h keymap.Handlers, opts *keymap.Options, evOpts *keymap.EventOptions) {
	m.global.UpdateHotkeys(component, km, h, opts, evOpts)
}

// RemoveGlobalHotkeys unregisters a global component. The boolean is the
// global engine's answer, returned unmodified.
func (m *Manager) RemoveGlobalHotkeys(component keymap.ComponentID) bool {
	return m.global.RemoveHotkeys(component)
}

// HandleKeydown routes a keydown event per its scope.
func (m *Manager) HandleKeydown(ev key.Event, scope Scope) engine.Result {
	return m.dispatch(ev.WithKind(key.KindDown), scope)
}

// HandleKeypress routes a keypress event per its scope.
func (m *Manager) HandleKeypress(ev key.Event, scope Scope) engine.Result {
	return m.dispatch(ev.WithKind(key.KindPress), scope)
}

// HandleKeyup routes a keyup event per its scope.
func (m *Manager) HandleKeyup(ev key.Event, scope Scope) engine.Result {
	return m.dispatch(ev.WithKind(key.KindUp), scope)
}

// dispatch routes one event. Focus-tagged events whose tree the
// Classifier confirms are delegated to the focus engine and its Result
// returned exactly; every other event is recorded as the LastEventSeen
// and yields the zero Result.
func (m *Manager) dispatch(ev key.Event, scope Scope) engine.Result {
	if m.isClosed() {
		return engine.Result{}
	}

	if scope.IsFocus() && m.classifier.IsFocusScoped(scope.Tree()) {
		var res engine.Result
		switch ev.Kind {
		case key.KindPress:
			res = m.focus.HandleKeypress(ev, scope.Tree(), scope.Component())
		case key.KindUp:
			res = m.focus.HandleKeyup(ev, scope.Tree(), scope.Component())
		default:
			res = m.focus.HandleKeydown(ev, scope.Tree(), scope.Component())
		}
		m.journalize(ev, "focus", res)
		return res
	}

	m.record(ev, scope)
	m.journalize(ev, "ambient", engine.Result{})
	return engine.Result{}
}

// HandleGlobalKeydown forwards a keydown event to the global engine.
func (m *Manager) HandleGlobalKeydown(ev key.Event) engine.Result {
	return m.dispatchGlobal(ev.WithKind(key.KindDown))
}

// HandleGlobalKeypress forwards a keypress event to the global engine.
func (m *Manager) HandleGlobalKeypress(ev key.Event) engine.Result {
	return m.dispatchGlobal(ev.WithKind(key.KindPress))
}

// HandleGlobalKeyup forwards a keyup event to the global engine.
func (m *Manager) HandleGlobalKeyup(ev key.Event) engine.Result {
	return m.dispatchGlobal(ev.WithKind(key.KindUp))
}

// dispatchGlobal forwards unconditionally: no Classifier, no recording.
func (m *Manager) dispatchGlobal(ev key.Event) engine.Result {
	if m.isClosed() {
		return engine.Result{}
	}

	var res engine.Result
	switch ev.Kind {
	case key.KindPress:
		res = m.global.HandleKeypress(ev)
	case key.KindUp:
		res = m.global.HandleKeyup(ev)
	default:
		res = m.global.HandleKeydown(ev)
	}
	m.journalize(ev, "global", res)
	return res
}

// LastEventSeen returns a copy of the most recent event recorded outside
// the focus path, nil before any.
func (m *Manager) LastEventSeen() *LastEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.last == nil {
		return nil
	}
	cp := *m.last
	return &cp
}

// QueryEventHistory reports whether an event matching ev and kind was
// seen or handled on the focus path. It reads the focus engine's
// CurrentEvent snapshot and never mutates it; the global engine holds it
// as its HistoryQuery.
func (m *Manager) QueryEventHistory(ev key.Event, kind key.Kind) engine.History {
	cur, ok := m.focus.CurrentEvent()
	if !ok {
		return engine.HistoryUnseen
	}
	if !cur.Event.SameStroke(ev) || cur.Kind != kind {
		return engine.HistoryUnseen
	}
	if cur.Handled {
		return engine.HistoryHandled
	}
	return engine.HistorySeen
}

func (m *Manager) isClosed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

// record stores the LastEventSeen for an event that bypassed the focus
// path. Unknown or retired scopes land here too; that is routine UI
// teardown, not an error.
func (m *Manager) record(ev key.Event, scope Scope) {
	m.mu.Lock()
	if !m.closed {
		m.last = &LastEvent{Event: ev, Kind: ev.Kind}
	}
	m.mu.Unlock()

	m.log.WithFields(logrus.Fields{
		"key":   ev.ID(),
		"kind":  ev.Kind.String(),
		"scope": scope.String(),
	}).Debug("recorded ambient event")
}

// journalize appends one dispatch record, best-effort.
func (m *Manager) journalize(ev key.Event, scope string, res engine.Result) {
	if m.journal == nil {
		return
	}
	err := m.journal.Record(journal.Entry{
		At:      time.Now(),
		Key:     ev.ID(),
		Kind:    ev.Kind.String(),
		Scope:   scope,
		Action:  string(res.Action),
		Handled: res.Handled,
	})
	if err != nil {
		m.log.WithError(err).Debug("journal append failed")
	}
}
