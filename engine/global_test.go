package engine

import (
	"testing"
	"time"

	"github.com/dshills/hotkeys/key"
	"github.com/dshills/hotkeys/keymap"
)

func TestGlobalDispatch(t *testing.T) {
	g := NewGlobal(testConfig(), nil)
	defer g.Close()

	calls := 0
	g.AddHotkeys(
		keymap.Map{"mute": {"ctrl+m"}},
		keymap.Handlers{"mute": func(key.Event) error { calls++; return nil }},
		nil, nil,
	)

	res := g.HandleKeydown(key.MustParse("ctrl+m"))
	if !res.Handled || res.Action != "mute" {
		t.Fatalf("Result = %+v, want mute handled", res)
	}
	if calls != 1 {
		t.Errorf("handler calls = %d, want 1", calls)
	}
	if res := g.HandleKeydown(key.MustParse("ctrl+x")); res != (Result{}) {
		t.Errorf("unbound key Result = %+v, want zero", res)
	}
}

func TestGlobalPriority(t *testing.T) {
	g := NewGlobal(testConfig(), nil)
	defer g.Close()

	var fired []string
	g.AddHotkeys(
		keymap.Map{"low": {"ctrl+p"}},
		keymap.Handlers{"low": func(key.Event) error { fired = append(fired, "low"); return nil }},
		&keymap.Options{Priority: 1}, nil,
	)
	g.AddHotkeys(
		keymap.Map{"high": {"ctrl+p"}},
		keymap.Handlers{"high": func(key.Event) error { fired = append(fired, "high"); return nil }},
		&keymap.Options{Priority: 10}, nil,
	)

	res := g.HandleKeydown(key.MustParse("ctrl+p"))
	if res.Action != "high" {
		t.Errorf("Action = %s, want high", res.Action)
	}
	if len(fired) != 1 || fired[0] != "high" {
		t.Errorf("fired = %v, want [high]", fired)
	}
}

func TestGlobalRegistrationOrderBreaksTies(t *testing.T) {
	g := NewGlobal(testConfig(), nil)
	defer g.Close()

	var fired []string
	g.AddHotkeys(
		keymap.Map{"first": {"ctrl+t"}},
		keymap.Handlers{"first": func(key.Event) error { fired = append(fired, "first"); return nil }},
		nil, nil,
	)
	g.AddHotkeys(
		keymap.Map{"second": {"ctrl+t"}},
		keymap.Handlers{"second": func(key.Event) error { fired = append(fired, "second"); return nil }},
		nil, nil,
	)

	res := g.HandleKeydown(key.MustParse("ctrl+t"))
	if res.Action != "first" {
		t.Errorf("Action = %s, want first (earlier registration)", res.Action)
	}
}

func TestGlobalHistorySkip(t *testing.T) {
	verdict := HistoryUnseen
	history := func(key.Event, key.Kind) History { return verdict }

	g := NewGlobal(testConfig(), history)
	defer g.Close()

	calls := 0
	g.AddHotkeys(
		keymap.Map{"mute": {"ctrl+m"}},
		keymap.Handlers{"mute": func(key.Event) error { calls++; return nil }},
		nil, nil,
	)

	verdict = HistoryHandled
	if res := g.HandleKeydown(key.MustParse("ctrl+m")); res != (Result{}) {
		t.Errorf("handled-elsewhere Result = %+v, want zero", res)
	}
	if calls != 0 {
		t.Fatalf("handler ran for an event the focus path consumed")
	}

	// Seen but unhandled events still match globally.
	verdict = HistorySeen
	if res := g.HandleKeydown(key.MustParse("ctrl+m")); !res.Handled {
		t.Errorf("seen-only Result = %+v, want handled", res)
	}
	verdict = HistoryUnseen
	if res := g.HandleKeydown(key.MustParse("ctrl+m")); !res.Handled {
		t.Errorf("unseen Result = %+v, want handled", res)
	}
	if calls != 2 {
		t.Errorf("handler calls = %d, want 2", calls)
	}
}

func TestGlobalIgnore(t *testing.T) {
	g := NewGlobal(testConfig(), nil)
	defer g.Close()

	calls := 0
	comp := g.AddHotkeys(
		keymap.Map{"mute": {"ctrl+m"}},
		keymap.Handlers{"mute": func(key.Event) error { calls++; return nil }},
		nil,
		&keymap.EventOptions{Ignore: func(ev key.Event) bool { return ev.Rune == 'm' }},
	)

	if res := g.HandleKeydown(key.MustParse("ctrl+m")); res != (Result{}) {
		t.Errorf("ignored Result = %+v, want zero", res)
	}
	if calls != 0 {
		t.Fatal("handler ran for a vetoed event")
	}

	// Dropping the ignore option on update opens the gate.
	g.UpdateHotkeys(comp,
		keymap.Map{"mute": {"ctrl+m"}},
		keymap.Handlers{"mute": func(key.Event) error { calls++; return nil }},
		nil, nil,
	)
	if res := g.HandleKeydown(key.MustParse("ctrl+m")); !res.Handled {
		t.Errorf("Result = %+v, want handled after update", res)
	}
	if calls != 1 {
		t.Errorf("handler calls = %d, want 1", calls)
	}
}

func TestGlobalSequence(t *testing.T) {
	g := NewGlobal(testConfig(), nil)
	defer g.Close()

	calls := 0
	g.AddHotkeys(
		keymap.Map{"exit": {"ctrl+x ctrl+c"}},
		keymap.Handlers{"exit": func(key.Event) error { calls++; return nil }},
		nil, nil,
	)

	if res := g.HandleKeydown(key.MustParse("ctrl+x")); res != (Result{}) {
		t.Fatalf("prefix Result = %+v, want zero", res)
	}
	res := g.HandleKeydown(key.MustParse("ctrl+c"))
	if !res.Handled || res.Action != "exit" || calls != 1 {
		t.Fatalf("Result = %+v, calls = %d", res, calls)
	}
}

func TestGlobalSequenceTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.SequenceTimeout = 20 * time.Millisecond
	g := NewGlobal(cfg, nil)
	defer g.Close()

	calls := 0
	g.AddHotkeys(
		keymap.Map{"exit": {"ctrl+x ctrl+c"}},
		keymap.Handlers{"exit": func(key.Event) error { calls++; return nil }},
		nil, nil,
	)

	g.HandleKeydown(key.MustParse("ctrl+x"))
	time.Sleep(80 * time.Millisecond)
	if res := g.HandleKeydown(key.MustParse("ctrl+c")); res.Handled {
		t.Fatalf("Result = %+v, want zero after timeout", res)
	}
	if calls != 0 {
		t.Errorf("handler calls = %d, want 0", calls)
	}
}

func TestGlobalRemove(t *testing.T) {
	g := NewGlobal(testConfig(), nil)
	defer g.Close()

	calls := 0
	comp := g.AddHotkeys(
		keymap.Map{"mute": {"ctrl+m"}},
		keymap.Handlers{"mute": func(key.Event) error { calls++; return nil }},
		nil, nil,
	)

	if !g.RemoveHotkeys(comp) {
		t.Error("RemoveHotkeys(registered) = false, want true")
	}
	if g.RemoveHotkeys(comp) {
		t.Error("RemoveHotkeys(already removed) = true, want false")
	}
	if res := g.HandleKeydown(key.MustParse("ctrl+m")); res.Handled {
		t.Errorf("Result = %+v, want zero after removal", res)
	}
	if calls != 0 {
		t.Errorf("handler calls = %d, want 0", calls)
	}
}

func TestGlobalRemoveCancelsPending(t *testing.T) {
	g := NewGlobal(testConfig(), nil)
	defer g.Close()

	calls := 0
	g.AddHotkeys(
		keymap.Map{"exit": {"ctrl+x ctrl+c"}},
		keymap.Handlers{"exit": func(key.Event) error { calls++; return nil }},
		nil, nil,
	)
	other := g.AddHotkeys(nil, nil, nil, nil)

	g.HandleKeydown(key.MustParse("ctrl+x"))
	g.RemoveHotkeys(other)

	if res := g.HandleKeydown(key.MustParse("ctrl+c")); res.Handled {
		t.Fatalf("Result = %+v, want zero after cancellation", res)
	}
}

func TestGlobalKindRouting(t *testing.T) {
	g := NewGlobal(testConfig(), nil)
	defer g.Close()

	released := 0
	g.AddHotkeys(
		keymap.Map{"release": {"space"}},
		keymap.Handlers{"release": func(key.Event) error { released++; return nil }},
		&keymap.Options{On: key.KindUp}, nil,
	)

	if res := g.HandleKeydown(key.MustParse("space")); res.Handled {
		t.Error("keydown matched a keyup binding")
	}
	if res := g.HandleKeyup(key.MustParse("space")); !res.Handled {
		t.Error("keyup did not match a keyup binding")
	}
	if released != 1 {
		t.Errorf("handler calls = %d, want 1", released)
	}
}

func TestGlobalClose(t *testing.T) {
	g := NewGlobal(testConfig(), nil)

	calls := 0
	g.AddHotkeys(
		keymap.Map{"mute": {"ctrl+m"}},
		keymap.Handlers{"mute": func(key.Event) error { calls++; return nil }},
		nil, nil,
	)

	g.Close()
	g.Close() // idempotent

	if res := g.HandleKeydown(key.MustParse("ctrl+m")); res != (Result{}) {
		t.Errorf("Result = %+v, want zero after Close", res)
	}
	if id := g.AddHotkeys(nil, nil, nil, nil); id != "" {
		t.Errorf("AddHotkeys after Close = %q, want empty", id)
	}
	if calls != 0 {
		t.Errorf("handler calls = %d, want 0", calls)
	}
}
