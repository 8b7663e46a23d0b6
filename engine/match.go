package engine

import (
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/dshills/hotkeys/key"
	"github.com/dshills/hotkeys/keymap"
)

// matchSet scans a compiled set for a binding firing on kind whose
// sequence exactly matches seq. Bindings are already priority-sorted, so
// the first exact match wins. The bool reports whether seq is a strict
// prefix of any candidate, meaning the caller should wait for more keys.
func matchSet(set *keymap.Set, seq key.Sequence, kind key.Kind) (*keymap.Binding, keymap.Handler, bool) {
	if set.Empty() {
		return nil, nil, false
	}
	prefix := false
	for i := range set.Bindings {
		b := &set.Bindings[i]
		if b.Options.On != kind {
			continue
		}
		if b.Sequence.Equals(seq) {
			if h, ok := set.HandlerFor(b.Action); ok {
				return b, h, prefix
			}
			continue
		}
		if len(b.Sequence) > len(seq) && b.Sequence.HasPrefix(seq) {
			prefix = true
		}
	}
	return nil, nil, prefix
}

// invoke runs a handler, converting a panic into an error when recovery
// is enabled.
func invoke(recoverPanics bool, log *logrus.Entry, action keymap.Action, h keymap.Handler, ev key.Event) (err error) {
	if recoverPanics {
		defer func() {
			if r := recover(); r != nil {
				stack := make([]byte, 4096)
				n := runtime.Stack(stack, false)
				err = fmt.Errorf("handler panic for %s: %v\n%s", action, r, stack[:n])
				log.WithField("action", action).WithField("panic", r).Error("handler panicked")
			}
		}()
	}
	return h(ev)
}

// compileRegistration compiles a registration and logs its issues. Bad
// entries are dropped, not fatal; the registration always succeeds.
func compileRegistration(log *logrus.Entry, m keymap.Map, h keymap.Handlers, opts *keymap.Options) *keymap.Set {
	set, issues := keymap.Compile(m, h, opts)
	for _, issue := range issues {
		entry := log.WithField("action", issue.Action)
		if issue.Severity == keymap.SeverityError {
			entry.Warn(issue.String())
		} else {
			entry.Debug(issue.String())
		}
	}
	return set
}
