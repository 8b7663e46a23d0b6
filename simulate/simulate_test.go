package simulate

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/dshills/hotkeys"
	"github.com/dshills/hotkeys/engine"
	"github.com/dshills/hotkeys/key"
	"github.com/dshills/hotkeys/keymap"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestFabricators(t *testing.T) {
	down := Keydown("ctrl+s")
	if down.Kind != key.KindDown || down.ID() != "ctrl+s" {
		t.Errorf("Keydown(ctrl+s) = %v", down)
	}
	if down.Time.IsZero() {
		t.Error("Keydown() time is zero, want stamped")
	}
	if press := Keypress("a"); press.Kind != key.KindPress {
		t.Errorf("Keypress(a).Kind = %v, want press", press.Kind)
	}
	if up := Keyup("escape"); up.Kind != key.KindUp {
		t.Errorf("Keyup(escape).Kind = %v, want up", up.Kind)
	}
}

func TestStroke(t *testing.T) {
	tests := []struct {
		spec  string
		kinds []key.Kind
	}{
		{"a", []key.Kind{key.KindDown, key.KindPress, key.KindUp}},
		{"shift+a", []key.Kind{key.KindDown, key.KindPress, key.KindUp}},
		{"ctrl+s", []key.Kind{key.KindDown, key.KindUp}},
		{"escape", []key.Kind{key.KindDown, key.KindUp}},
		{"alt+x", []key.Kind{key.KindDown, key.KindUp}},
	}
	for _, tt := range tests {
		evs := Stroke(tt.spec)
		if len(evs) != len(tt.kinds) {
			t.Errorf("Stroke(%s) produced %d events, want %d", tt.spec, len(evs), len(tt.kinds))
			continue
		}
		for i, want := range tt.kinds {
			if evs[i].Kind != want {
				t.Errorf("Stroke(%s)[%d].Kind = %v, want %v", tt.spec, i, evs[i].Kind, want)
			}
		}
	}
}

func TestType(t *testing.T) {
	evs := Type("Hi")
	// H is shift+h (3 events), i is bare (3 events).
	if len(evs) != 6 {
		t.Fatalf("Type(Hi) produced %d events, want 6", len(evs))
	}
	if !evs[0].Mods.Has(key.ModShift) || evs[0].Rune != 'h' {
		t.Errorf("Type(Hi)[0] = %v, want shift+h", evs[0])
	}
	if evs[3].Mods != key.ModNone || evs[3].Rune != 'i' {
		t.Errorf("Type(Hi)[3] = %v, want i", evs[3])
	}
}

type kindCall struct {
	kind  key.Kind
	scope hotkeys.Scope
}

type spyDispatcher struct {
	calls []kindCall
}

func (s *spyDispatcher) HandleKeydown(ev key.Event, scope hotkeys.Scope) engine.Result {
	s.calls = append(s.calls, kindCall{key.KindDown, scope})
	return engine.Result{Handled: true}
}

func (s *spyDispatcher) HandleKeypress(ev key.Event, scope hotkeys.Scope) engine.Result {
	s.calls = append(s.calls, kindCall{key.KindPress, scope})
	return engine.Result{}
}

func (s *spyDispatcher) HandleKeyup(ev key.Event, scope hotkeys.Scope) engine.Result {
	s.calls = append(s.calls, kindCall{key.KindUp, scope})
	return engine.Result{}
}

func TestPlayRoutesByKind(t *testing.T) {
	spy := &spyDispatcher{}
	scope := hotkeys.Ambient()

	results := Play(spy, scope, Stroke("a"))
	if len(results) != 3 {
		t.Fatalf("Play() returned %d results, want 3", len(results))
	}
	if !results[0].Handled || results[1].Handled || results[2].Handled {
		t.Errorf("Play() results = %+v, want only keydown handled", results)
	}
	want := []key.Kind{key.KindDown, key.KindPress, key.KindUp}
	for i, call := range spy.calls {
		if call.kind != want[i] {
			t.Errorf("call %d kind = %v, want %v", i, call.kind, want[i])
		}
		if call.scope != scope {
			t.Errorf("call %d scope = %v, want %v", i, call.scope, scope)
		}
	}
}

func TestPlayDrivesManager(t *testing.T) {
	m := hotkeys.New(&hotkeys.Config{Logger: testLogger()})
	defer m.Close()

	var saved int
	tree := m.ActivateFocusTree()
	comp := m.AddHotkeys(
		keymap.Map{"save": {"ctrl+s"}},
		keymap.Handlers{"save": func(ev key.Event) error { saved++; return nil }},
		nil,
	)

	results := Play(m, hotkeys.FocusScope(tree, comp), Stroke("ctrl+s"))
	if len(results) != 2 {
		t.Fatalf("Play() returned %d results, want 2", len(results))
	}
	if !results[0].Handled {
		t.Error("keydown result not handled")
	}
	if results[1].Handled {
		t.Error("keyup result handled, want miss")
	}
	if saved != 1 {
		t.Errorf("handler ran %d times, want 1", saved)
	}
}
