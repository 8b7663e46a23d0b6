package keymap

import (
	"fmt"
	"sort"

	"github.com/dshills/hotkeys/key"
)

// Binding is one compiled key binding.
type Binding struct {
	Action   Action
	Sequence key.Sequence
	Options  Options
}

// String renders the binding for logs and help surfaces.
func (b Binding) String() string {
	return fmt.Sprintf("%s -> %s", b.Sequence.String(), b.Action)
}

// Set is a compiled registration: parsed bindings in match order plus the
// handlers that serve them.
type Set struct {
	// Bindings is sorted by priority (highest first); insertion order
	// breaks ties.
	Bindings []Binding

	// Handlers holds the action handlers for this registration.
	Handlers Handlers
}

// Compile parses a registration into a Set. Nil maps compile to an empty
// Set. Unparsable specs and bindings whose action has no handler are
// dropped and reported as Issues; a handler without any binding is
// reported but kept (it may be bound later by an update).
func Compile(m Map, h Handlers, opts *Options) (*Set, []Issue) {
	return CompileWith(m, h, nil, opts)
}

// CompileWith is Compile with per-action options, typically the options
// loaded alongside a Map by LoadFile. An action missing from perAction
// falls back to def.
func CompileWith(m Map, h Handlers, perAction map[Action]Options, def *Options) (*Set, []Issue) {
	var issues []Issue

	if m == nil {
		m = Map{}
	}
	if h == nil {
		h = Handlers{}
	}
	var fallback Options
	if def != nil {
		fallback = *def
	}

	set := &Set{Handlers: h}
	for _, action := range m.Actions() {
		if _, ok := h[action]; !ok {
			issues = append(issues, Issue{
				Severity:   SeverityWarning,
				Action:     action,
				Message:    "binding has no handler",
				Suggestion: nearestAction(action, h.Actions()),
			})
			continue
		}
		opts := fallback
		if o, ok := perAction[action]; ok {
			opts = o
		}
		for _, spec := range m[action] {
			seq, err := key.ParseSequence(spec)
			if err != nil {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Action:   action,
					Spec:     spec,
					Message:  err.Error(),
				})
				continue
			}
			if len(seq) == 0 {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Action:   action,
					Spec:     spec,
					Message:  "empty key spec",
				})
				continue
			}
			set.Bindings = append(set.Bindings, Binding{
				Action:   action,
				Sequence: seq,
				Options:  opts,
			})
		}
	}

	for _, action := range h.Actions() {
		if _, ok := m[action]; !ok {
			issues = append(issues, Issue{
				Severity:   SeverityWarning,
				Action:     action,
				Message:    "handler has no key binding",
				Suggestion: nearestAction(action, m.Actions()),
			})
		}
	}

	sort.SliceStable(set.Bindings, func(i, j int) bool {
		return set.Bindings[i].Options.Priority > set.Bindings[j].Options.Priority
	})

	return set, issues
}

// HandlerFor returns the handler registered for an action.
func (s *Set) HandlerFor(a Action) (Handler, bool) {
	h, ok := s.Handlers[a]
	return h, ok
}

// Empty reports whether the set has no bindings.
func (s *Set) Empty() bool {
	return s == nil || len(s.Bindings) == 0
}
