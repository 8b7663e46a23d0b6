package engine

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dshills/hotkeys/key"
	"github.com/dshills/hotkeys/keymap"
)

// globalRegistration holds one component's registration and its event
// options.
type globalRegistration struct {
	id     keymap.ComponentID
	set    *keymap.Set
	evOpts keymap.EventOptions
}

// globalBinding is one entry of the merged match list.
type globalBinding struct {
	binding keymap.Binding
	handler keymap.Handler
	owner   keymap.ComponentID
}

// Global matches hotkeys without focus scoping. It consults an injected
// HistoryQuery before matching and skips events the focus path already
// handled.
type Global struct {
	mu  sync.RWMutex
	cfg Config
	log *logrus.Entry

	history HistoryQuery

	order  []keymap.ComponentID
	comps  map[keymap.ComponentID]*globalRegistration
	merged []globalBinding

	pend   *pending
	closed bool
}

// NewGlobal creates a global engine. history may be nil, in which case no
// events are skipped.
func NewGlobal(cfg Config, history HistoryQuery) *Global {
	cfg = cfg.withDefaults()
	g := &Global{
		cfg:     cfg,
		log:     cfg.Logger.WithField("component", "engine.global"),
		history: history,
		comps:   make(map[keymap.ComponentID]*globalRegistration),
	}
	g.pend = newPending(cfg.SequenceTimeout, g.expirePending)
	return g
}

// AddHotkeys registers a global component. Nil maps register as empty.
func (g *Global) AddHotkeys(m keymap.Map, h keymap.Handlers, opts *keymap.Options, evOpts *keymap.EventOptions) keymap.ComponentID {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return ""
	}
	id := keymap.NewComponentID()
	r := &globalRegistration{id: id, set: compileRegistration(g.log, m, h, opts)}
	if evOpts != nil {
		r.evOpts = *evOpts
	}
	g.comps[id] = r
	g.order = append(g.order, id)
	g.rebuildLocked()
	g.log.WithField("componentID", id).Debug("global hotkeys added")
	return id
}

// UpdateHotkeys replaces a global component's registration. Unknown
// components are a no-op.
func (g *Global) UpdateHotkeys(component keymap.ComponentID, m keymap.Map, h keymap.Handlers, opts *keymap.Options, evOpts *keymap.EventOptions) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}
	r, ok := g.comps[component]
	if !ok {
		g.log.WithField("componentID", component).Debug("update for unknown global component")
		return
	}
	r.set = compileRegistration(g.log, m, h, opts)
	r.evOpts = keymap.EventOptions{}
	if evOpts != nil {
		r.evOpts = *evOpts
	}
	g.rebuildLocked()
}

// RemoveHotkeys unregisters a global component, cancelling any partial
// sequence match. It returns true when the component was registered.
func (g *Global) RemoveHotkeys(component keymap.ComponentID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.comps[component]; !ok {
		return false
	}
	delete(g.comps, component)
	for i, id := range g.order {
		if id == component {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	g.pend.clear()
	g.rebuildLocked()
	g.log.WithField("componentID", component).Debug("global hotkeys removed")
	return true
}

// rebuildLocked flattens all registrations into one priority-ordered
// match list. Registration order breaks priority ties.
func (g *Global) rebuildLocked() {
	g.merged = g.merged[:0]
	for _, id := range g.order {
		r := g.comps[id]
		for i := range r.set.Bindings {
			b := r.set.Bindings[i]
			h, ok := r.set.HandlerFor(b.Action)
			if !ok {
				continue
			}
			g.merged = append(g.merged, globalBinding{binding: b, handler: h, owner: id})
		}
	}
	sort.SliceStable(g.merged, func(i, j int) bool {
		return g.merged[i].binding.Options.Priority > g.merged[j].binding.Options.Priority
	})
}

// matchMerged is matchSet over the flattened list.
func matchMerged(merged []globalBinding, seq key.Sequence, kind key.Kind) (*globalBinding, bool) {
	prefix := false
	for i := range merged {
		gb := &merged[i]
		if gb.binding.Options.On != kind {
			continue
		}
		if gb.binding.Sequence.Equals(seq) {
			return gb, false
		}
		if len(gb.binding.Sequence) > len(seq) && gb.binding.Sequence.HasPrefix(seq) {
			prefix = true
		}
	}
	return nil, prefix
}

// HandleKeydown dispatches a keydown event globally.
func (g *Global) HandleKeydown(ev key.Event) Result {
	return g.dispatch(ev.WithKind(key.KindDown))
}

// HandleKeypress dispatches a keypress event globally.
func (g *Global) HandleKeypress(ev key.Event) Result {
	return g.dispatch(ev.WithKind(key.KindPress))
}

// HandleKeyup dispatches a keyup event globally.
func (g *Global) HandleKeyup(ev key.Event) Result {
	return g.dispatch(ev.WithKind(key.KindUp))
}

func (g *Global) dispatch(ev key.Event) Result {
	g.mu.Lock()

	if g.closed {
		g.mu.Unlock()
		return Result{}
	}

	for _, id := range g.order {
		r := g.comps[id]
		if r.evOpts.Ignore != nil && r.evOpts.Ignore(ev) {
			g.mu.Unlock()
			g.log.WithField("key", ev.ID()).Debug("event vetoed by ignore option")
			return Result{}
		}
	}

	if g.history != nil && g.history(ev, ev.Kind) == HistoryHandled {
		g.mu.Unlock()
		g.log.WithField("key", ev.ID()).Debug("event already handled in focus scope")
		return Result{}
	}

	seq := append(g.pend.take(ev.Kind), ev)
	gb, prefix := matchMerged(g.merged, seq, ev.Kind)
	if gb == nil && !prefix && len(seq) > 1 {
		seq = key.Sequence{ev}
		gb, prefix = matchMerged(g.merged, seq, ev.Kind)
	}

	switch {
	case gb != nil:
		g.pend.drop(ev.Kind)
		action := gb.binding.Action
		handler := gb.handler
		rec := g.cfg.Recover
		log := g.log
		g.mu.Unlock()
		err := invoke(rec, log, action, handler, ev)
		return Result{Handled: true, StopPropagation: true, Action: action, Err: err}

	case prefix:
		g.pend.arm(ev.Kind, seq)
		g.mu.Unlock()
		return Result{}

	default:
		g.pend.drop(ev.Kind)
		g.mu.Unlock()
		return Result{}
	}
}

// expirePending flushes partial matches after SequenceTimeout.
func (g *Global) expirePending() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed || g.pend.empty() {
		return
	}
	g.log.Debug("pending key sequence timed out")
	g.pend.clear()
}

// Close stops the engine. Further dispatches return the zero Result.
func (g *Global) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}
	g.closed = true
	g.pend.clear()
}
