package keymap

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/dshills/hotkeys/key"
)

// Severity classifies a validation issue.
type Severity uint8

const (
	// SeverityWarning marks an issue the registration survives.
	SeverityWarning Severity = iota

	// SeverityError marks an entry that was dropped.
	SeverityError
)

// String returns "warning" or "error".
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Issue is one problem found in a registration.
type Issue struct {
	Severity   Severity
	Action     Action
	Spec       string
	Message    string
	Suggestion string
}

// String renders the issue for logs.
func (i Issue) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s", i.Severity, i.Action)
	if i.Spec != "" {
		fmt.Fprintf(&sb, " (%q)", i.Spec)
	}
	sb.WriteString(": ")
	sb.WriteString(i.Message)
	if i.Suggestion != "" {
		fmt.Fprintf(&sb, " (did you mean %q?)", i.Suggestion)
	}
	return sb.String()
}

// ValidationResult aggregates the issues found in one registration.
type ValidationResult struct {
	Issues []Issue
}

// HasErrors reports whether any issue is an error.
func (r *ValidationResult) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// String returns a human-readable summary.
func (r *ValidationResult) String() string {
	if len(r.Issues) == 0 {
		return "no issues found"
	}
	lines := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		lines[i] = "  - " + issue.String()
	}
	return fmt.Sprintf("%d issue(s):\n%s", len(r.Issues), strings.Join(lines, "\n"))
}

// Validate checks a registration without compiling it: every spec must
// parse, and every action should appear in both maps. Near-miss action
// names get a suggestion.
func Validate(m Map, h Handlers) *ValidationResult {
	res := &ValidationResult{}

	for _, action := range m.Actions() {
		for _, spec := range m[action] {
			if _, err := key.ParseSequence(spec); err != nil {
				res.Issues = append(res.Issues, Issue{
					Severity: SeverityError,
					Action:   action,
					Spec:     spec,
					Message:  err.Error(),
				})
			}
		}
		if _, ok := h[action]; !ok {
			res.Issues = append(res.Issues, Issue{
				Severity:   SeverityWarning,
				Action:     action,
				Message:    "binding has no handler",
				Suggestion: nearestAction(action, h.Actions()),
			})
		}
	}

	for _, action := range h.Actions() {
		if _, ok := m[action]; !ok {
			res.Issues = append(res.Issues, Issue{
				Severity:   SeverityWarning,
				Action:     action,
				Message:    "handler has no key binding",
				Suggestion: nearestAction(action, m.Actions()),
			})
		}
	}

	return res
}

// maxSuggestDistance bounds how far a name can be from a candidate and
// still be offered as a suggestion.
const maxSuggestDistance = 3

// nearestAction returns the candidate closest to name by edit distance,
// or "" when nothing is close enough.
func nearestAction(name Action, candidates []Action) string {
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, c := range candidates {
		if c == name {
			continue
		}
		d := levenshtein.ComputeDistance(string(name), string(c))
		if d < bestDist {
			best = string(c)
			bestDist = d
		}
	}
	return best
}
