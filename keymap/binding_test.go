package keymap

import (
	"testing"

	"github.com/dshills/hotkeys/key"
)

func nopHandler(key.Event) error { return nil }

func TestCompileNilMaps(t *testing.T) {
	set, issues := Compile(nil, nil, nil)
	if set == nil {
		t.Fatal("Compile(nil, nil, nil) returned nil set")
	}
	if !set.Empty() {
		t.Errorf("set has %d bindings, want 0", len(set.Bindings))
	}
	if len(issues) != 0 {
		t.Errorf("issues = %v, want none", issues)
	}
}

func TestCompileBasic(t *testing.T) {
	m := Map{
		"save": {"ctrl+s"},
		"top":  {"g g"},
	}
	h := Handlers{
		"save": nopHandler,
		"top":  nopHandler,
	}

	set, issues := Compile(m, h, nil)
	if len(issues) != 0 {
		t.Fatalf("issues = %v, want none", issues)
	}
	if len(set.Bindings) != 2 {
		t.Fatalf("bindings = %d, want 2", len(set.Bindings))
	}

	var save *Binding
	for i := range set.Bindings {
		if set.Bindings[i].Action == "save" {
			save = &set.Bindings[i]
		}
	}
	if save == nil {
		t.Fatal("no binding compiled for save")
	}
	if !save.Sequence.Equals(key.MustParseSequence("ctrl+s")) {
		t.Errorf("save sequence = %q, want %q", save.Sequence, "ctrl+s")
	}
	if _, ok := set.HandlerFor("top"); !ok {
		t.Error("HandlerFor(top) not found")
	}
}

func TestCompileWithPrioritySort(t *testing.T) {
	m := Map{
		"low":  {"x"},
		"high": {"x"},
		"mid":  {"y"},
	}
	h := Handlers{"low": nopHandler, "high": nopHandler, "mid": nopHandler}
	perAction := map[Action]Options{
		"high": {Priority: 10},
		"mid":  {Priority: 5},
	}

	set, issues := CompileWith(m, h, perAction, nil)
	if len(issues) != 0 {
		t.Fatalf("issues = %v, want none", issues)
	}
	if len(set.Bindings) != 3 {
		t.Fatalf("bindings = %d, want 3", len(set.Bindings))
	}

	got := []Action{set.Bindings[0].Action, set.Bindings[1].Action, set.Bindings[2].Action}
	want := []Action{"high", "mid", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestCompileDefaultOptions(t *testing.T) {
	m := Map{"a": {"x"}, "b": {"y"}}
	h := Handlers{"a": nopHandler, "b": nopHandler}
	set, _ := Compile(m, h, &Options{Priority: 5})
	for _, b := range set.Bindings {
		if b.Options.Priority != 5 {
			t.Errorf("binding %s priority = %d, want 5", b.Action, b.Options.Priority)
		}
	}
}

func TestCompileDropsUnhandledActions(t *testing.T) {
	m := Map{"save": {"ctrl+s"}, "orphan": {"ctrl+o"}}
	h := Handlers{"save": nopHandler}

	set, issues := Compile(m, h, nil)
	if len(set.Bindings) != 1 {
		t.Fatalf("bindings = %d, want 1", len(set.Bindings))
	}
	if set.Bindings[0].Action != "save" {
		t.Errorf("kept binding = %s, want save", set.Bindings[0].Action)
	}

	found := false
	for _, i := range issues {
		if i.Action == "orphan" && i.Severity == SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Errorf("no warning for orphan binding, issues = %v", issues)
	}
}

func TestCompileBadSpec(t *testing.T) {
	m := Map{"save": {"ctrl+s", "hyper+s"}}
	h := Handlers{"save": nopHandler}

	set, issues := Compile(m, h, nil)
	if len(set.Bindings) != 1 {
		t.Fatalf("bindings = %d, want 1 (bad spec dropped)", len(set.Bindings))
	}
	errSeen := false
	for _, i := range issues {
		if i.Severity == SeverityError && i.Spec == "hyper+s" {
			errSeen = true
		}
	}
	if !errSeen {
		t.Errorf("no error issue for bad spec, issues = %v", issues)
	}
}

func TestCompileHandlerWithoutBinding(t *testing.T) {
	m := Map{"save": {"ctrl+s"}}
	h := Handlers{"save": nopHandler, "quit": nopHandler}

	_, issues := Compile(m, h, nil)
	found := false
	for _, i := range issues {
		if i.Action == "quit" && i.Severity == SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Errorf("no warning for unbound handler, issues = %v", issues)
	}
}
