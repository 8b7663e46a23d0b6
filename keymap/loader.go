package keymap

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/hotkeys/key"
)

// ErrInvalidDocument is returned for files that are not a keymap document.
var ErrInvalidDocument = errors.New("invalid keymap document")

// LoadFile reads a JSON keymap document:
//
//	{
//	  "bindings": [
//	    {"action": "save", "keys": ["ctrl+s"], "description": "Save", "priority": 2, "on": "keydown"}
//	  ]
//	}
//
// It returns the action map plus per-action options for hosts that surface
// descriptions or priorities. Unknown fields are ignored; a malformed
// document or an unparsable "on" value is an error. Key specs are NOT
// validated here; Compile and Validate own that, so a file with a bad spec
// still loads and the rest of its bindings survive.
func LoadFile(path string) (Map, map[Action]Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read keymap file: %w", err)
	}
	return parseDocument(data)
}

func parseDocument(data []byte) (Map, map[Action]Options, error) {
	if !gjson.ValidBytes(data) {
		return nil, nil, fmt.Errorf("%w: not valid JSON", ErrInvalidDocument)
	}
	bindings := gjson.GetBytes(data, "bindings")
	if !bindings.Exists() || !bindings.IsArray() {
		return nil, nil, fmt.Errorf("%w: missing bindings array", ErrInvalidDocument)
	}

	m := Map{}
	opts := map[Action]Options{}
	var loadErr error

	bindings.ForEach(func(_, entry gjson.Result) bool {
		action := Action(entry.Get("action").String())
		if action == "" {
			loadErr = fmt.Errorf("%w: binding without action", ErrInvalidDocument)
			return false
		}

		for _, k := range entry.Get("keys").Array() {
			if spec := k.String(); spec != "" {
				m[action] = append(m[action], spec)
			}
		}

		o := Options{
			Description: entry.Get("description").String(),
			Priority:    int(entry.Get("priority").Int()),
			Group:       entry.Get("group").String(),
		}
		if on := entry.Get("on"); on.Exists() {
			kind, err := key.ParseKind(on.String())
			if err != nil {
				loadErr = fmt.Errorf("%w: action %q: %v", ErrInvalidDocument, action, err)
				return false
			}
			o.On = kind
		}
		if o != (Options{}) {
			opts[action] = o
		}
		return true
	})

	if loadErr != nil {
		return nil, nil, loadErr
	}
	return m, opts, nil
}

// SaveFile writes a Map (and optional per-action options) as a JSON keymap
// document, one bindings entry per action in sorted order.
func SaveFile(path string, m Map, opts map[Action]Options) error {
	doc := []byte(`{"bindings":[]}`)

	for _, action := range m.Actions() {
		entry := map[string]any{
			"action": string(action),
			"keys":   m[action],
		}
		if o, ok := opts[action]; ok {
			if o.Description != "" {
				entry["description"] = o.Description
			}
			if o.Priority != 0 {
				entry["priority"] = o.Priority
			}
			if o.Group != "" {
				entry["group"] = o.Group
			}
			if o.On != key.KindDown {
				entry["on"] = o.On.String()
			}
		}

		var err error
		doc, err = sjson.SetBytes(doc, "bindings.-1", entry)
		if err != nil {
			return fmt.Errorf("encode keymap entry %q: %w", action, err)
		}
	}

	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("write keymap file: %w", err)
	}
	return nil
}
