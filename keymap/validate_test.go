package keymap

import (
	"strings"
	"testing"
)

func TestValidateClean(t *testing.T) {
	m := Map{"save": {"ctrl+s"}, "quit": {"ctrl+q"}}
	h := Handlers{"save": nopHandler, "quit": nopHandler}

	res := Validate(m, h)
	if len(res.Issues) != 0 {
		t.Errorf("issues = %v, want none", res.Issues)
	}
	if res.HasErrors() {
		t.Error("HasErrors() = true, want false")
	}
}

func TestValidateBadSpec(t *testing.T) {
	m := Map{"save": {"hyper+s"}}
	h := Handlers{"save": nopHandler}

	res := Validate(m, h)
	if !res.HasErrors() {
		t.Fatal("HasErrors() = false, want true")
	}
	found := false
	for _, i := range res.Issues {
		if i.Severity == SeverityError && i.Spec == "hyper+s" {
			found = true
		}
	}
	if !found {
		t.Errorf("no error issue for bad spec, issues = %v", res.Issues)
	}
}

func TestValidateSuggestsNearestAction(t *testing.T) {
	m := Map{"sav": {"ctrl+s"}}
	h := Handlers{"save": nopHandler}

	res := Validate(m, h)
	var forBinding, forHandler *Issue
	for i := range res.Issues {
		switch res.Issues[i].Action {
		case "sav":
			forBinding = &res.Issues[i]
		case "save":
			forHandler = &res.Issues[i]
		}
	}
	if forBinding == nil || forBinding.Suggestion != "save" {
		t.Errorf("binding issue = %+v, want suggestion save", forBinding)
	}
	if forHandler == nil || forHandler.Suggestion != "sav" {
		t.Errorf("handler issue = %+v, want suggestion sav", forHandler)
	}
}

func TestValidateNoSuggestionWhenTooFar(t *testing.T) {
	m := Map{"zzzzzzzz": {"ctrl+s"}}
	h := Handlers{"save": nopHandler}

	res := Validate(m, h)
	for _, i := range res.Issues {
		if i.Action == "zzzzzzzz" && i.Suggestion != "" {
			t.Errorf("suggestion = %q, want none", i.Suggestion)
		}
	}
}

func TestIssueString(t *testing.T) {
	i := Issue{
		Severity:   SeverityWarning,
		Action:     "sav",
		Spec:       "ctrl+s",
		Message:    "binding has no handler",
		Suggestion: "save",
	}
	s := i.String()
	for _, want := range []string{"warning", "sav", "ctrl+s", "did you mean"} {
		if !strings.Contains(s, want) {
			t.Errorf("Issue.String() = %q, missing %q", s, want)
		}
	}
}

func TestValidationResultString(t *testing.T) {
	res := Validate(Map{"sav": {"ctrl+s"}}, Handlers{"save": nopHandler})
	s := res.String()
	if !strings.Contains(s, "sav") {
		t.Errorf("String() = %q, missing action name", s)
	}

	clean := Validate(Map{"save": {"ctrl+s"}}, Handlers{"save": nopHandler})
	if got := clean.String(); got != "no issues found" {
		t.Errorf("clean String() = %q, want %q", got, "no issues found")
	}
}
