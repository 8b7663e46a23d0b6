package key

import (
	"errors"
	"testing"
)

func TestParseSingleCharacter(t *testing.T) {
	tests := []struct {
		spec     string
		wantRune rune
		wantMods Modifier
	}{
		{"a", 'a', ModNone},
		{"A", 'a', ModShift},
		{"1", '1', ModNone},
		{"@", '@', ModNone},
		{"+", '+', ModNone},
	}

	for _, tt := range tests {
		ev, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if ev.Key != KeyRune {
			t.Errorf("Parse(%q) key = %v, want KeyRune", tt.spec, ev.Key)
		}
		if ev.Rune != tt.wantRune {
			t.Errorf("Parse(%q) rune = %q, want %q", tt.spec, ev.Rune, tt.wantRune)
		}
		if ev.Mods != tt.wantMods {
			t.Errorf("Parse(%q) mods = %v, want %v", tt.spec, ev.Mods, tt.wantMods)
		}
	}
}

func TestParseSpecialKeys(t *testing.T) {
	tests := []struct {
		spec    string
		wantKey Key
	}{
		{"enter", KeyEnter},
		{"Enter", KeyEnter},
		{"escape", KeyEscape},
		{"tab", KeyTab},
		{"backspace", KeyBackspace},
		{"delete", KeyDelete},
		{"insert", KeyInsert},
		{"home", KeyHome},
		{"end", KeyEnd},
		{"pageup", KeyPageUp},
		{"pagedown", KeyPageDown},
		{"up", KeyUp},
		{"down", KeyDown},
		{"left", KeyLeft},
		{"right", KeyRight},
		{"f1", KeyF1},
		{"f12", KeyF12},
	}

	for _, tt := range tests {
		ev, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if ev.Key != tt.wantKey {
			t.Errorf("Parse(%q) key = %v, want %v", tt.spec, ev.Key, tt.wantKey)
		}
	}
}

func TestParseAliases(t *testing.T) {
	tests := []struct {
		spec     string
		wantKey  Key
		wantRune rune
	}{
		{"esc", KeyEscape, 0},
		{"return", KeyEnter, 0},
		{"cr", KeyEnter, 0},
		{"del", KeyDelete, 0},
		{"ins", KeyInsert, 0},
		{"pgup", KeyPageUp, 0},
		{"pgdn", KeyPageDown, 0},
		{"arrowup", KeyUp, 0},
		{"arrowleft", KeyLeft, 0},
		{"space", KeyRune, ' '},
		{"spacebar", KeyRune, ' '},
		{"plus", KeyRune, '+'},
	}

	for _, tt := range tests {
		ev, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if ev.Key != tt.wantKey {
			t.Errorf("Parse(%q) key = %v, want %v", tt.spec, ev.Key, tt.wantKey)
		}
		if tt.wantRune != 0 && ev.Rune != tt.wantRune {
			t.Errorf("Parse(%q) rune = %q, want %q", tt.spec, ev.Rune, tt.wantRune)
		}
	}
}

func TestParseModifiers(t *testing.T) {
	tests := []struct {
		spec     string
		wantKey  Key
		wantRune rune
		wantMods Modifier
	}{
		{"ctrl+s", KeyRune, 's', ModCtrl},
		{"Ctrl+S", KeyRune, 's', ModCtrl},
		{"alt+f", KeyRune, 'f', ModAlt},
		{"ctrl+alt+x", KeyRune, 'x', ModCtrl | ModAlt},
		{"ctrl+shift+p", KeyRune, 'p', ModCtrl | ModShift},
		{"ctrl+enter", KeyEnter, 0, ModCtrl},
		{"alt+f4", KeyF4, 0, ModAlt},
		{"meta+k", KeyRune, 'k', ModMeta},
		{"cmd+k", KeyRune, 'k', ModMeta},
		{"option+left", KeyLeft, 0, ModAlt},
		{"shift+tab", KeyTab, 0, ModShift},
		{"ctrl+space", KeyRune, ' ', ModCtrl},
		{"ctrl+plus", KeyRune, '+', ModCtrl},
	}

	for _, tt := range tests {
		ev, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if ev.Key != tt.wantKey {
			t.Errorf("Parse(%q) key = %v, want %v", tt.spec, ev.Key, tt.wantKey)
		}
		if ev.Rune != tt.wantRune {
			t.Errorf("Parse(%q) rune = %q, want %q", tt.spec, ev.Rune, tt.wantRune)
		}
		if ev.Mods != tt.wantMods {
			t.Errorf("Parse(%q) mods = %v, want %v", tt.spec, ev.Mods, tt.wantMods)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantErr error
	}{
		{"empty", "", ErrEmptySpec},
		{"whitespace", "   ", ErrEmptySpec},
		{"unknown key", "ctrl+frobnicate", ErrUnknownKey},
		{"unknown modifier", "hyper+s", ErrUnknownModifier},
		{"bare unknown name", "frobnicate", ErrUnknownKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.spec)
			if err == nil {
				t.Fatalf("Parse(%q) error = nil, want %v", tt.spec, tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.wantErr)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	specs := []string{
		"a", "ctrl+s", "alt+f4", "ctrl+shift+p", "shift+tab",
		"space", "escape", "meta+k", "ctrl+alt+delete",
	}

	for _, spec := range specs {
		ev, err := Parse(spec)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", spec, err)
		}
		again, err := Parse(ev.ID())
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", ev.ID(), err)
		}
		if !ev.SameStroke(again) {
			t.Errorf("round trip of %q: %q != %q", spec, ev.ID(), again.ID())
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse with invalid spec did not panic")
		}
	}()
	MustParse("hyper+nope")
}
