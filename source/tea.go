package source

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dshills/hotkeys/key"
)

// namedTeaKeys maps bubbletea's named key types to stroke patterns.
// Modifier-carrying names resolve to the base key plus the modifier.
var namedTeaKeys = map[tea.KeyType]key.Event{
	tea.KeyEnter:          {Key: key.KeyEnter},
	tea.KeyTab:            {Key: key.KeyTab},
	tea.KeyShiftTab:       {Key: key.KeyTab, Mods: key.ModShift},
	tea.KeyEscape:         {Key: key.KeyEscape},
	tea.KeyBackspace:      {Key: key.KeyBackspace},
	tea.KeyDelete:         {Key: key.KeyDelete},
	tea.KeyInsert:         {Key: key.KeyInsert},
	tea.KeyHome:           {Key: key.KeyHome},
	tea.KeyEnd:            {Key: key.KeyEnd},
	tea.KeyPgUp:           {Key: key.KeyPageUp},
	tea.KeyPgDown:         {Key: key.KeyPageDown},
	tea.KeyUp:             {Key: key.KeyUp},
	tea.KeyDown:           {Key: key.KeyDown},
	tea.KeyLeft:           {Key: key.KeyLeft},
	tea.KeyRight:          {Key: key.KeyRight},
	tea.KeyCtrlUp:         {Key: key.KeyUp, Mods: key.ModCtrl},
	tea.KeyCtrlDown:       {Key: key.KeyDown, Mods: key.ModCtrl},
	tea.KeyCtrlLeft:       {Key: key.KeyLeft, Mods: key.ModCtrl},
	tea.KeyCtrlRight:      {Key: key.KeyRight, Mods: key.ModCtrl},
	tea.KeyCtrlHome:       {Key: key.KeyHome, Mods: key.ModCtrl},
	tea.KeyCtrlEnd:        {Key: key.KeyEnd, Mods: key.ModCtrl},
	tea.KeyCtrlPgUp:       {Key: key.KeyPageUp, Mods: key.ModCtrl},
	tea.KeyCtrlPgDown:     {Key: key.KeyPageDown, Mods: key.ModCtrl},
	tea.KeyShiftUp:        {Key: key.KeyUp, Mods: key.ModShift},
	tea.KeyShiftDown:      {Key: key.KeyDown, Mods: key.ModShift},
	tea.KeyShiftLeft:      {Key: key.KeyLeft, Mods: key.ModShift},
	tea.KeyShiftRight:     {Key: key.KeyRight, Mods: key.ModShift},
	tea.KeyCtrlShiftUp:    {Key: key.KeyUp, Mods: key.ModCtrl | key.ModShift},
	tea.KeyCtrlShiftDown:  {Key: key.KeyDown, Mods: key.ModCtrl | key.ModShift},
	tea.KeyCtrlShiftLeft:  {Key: key.KeyLeft, Mods: key.ModCtrl | key.ModShift},
	tea.KeyCtrlShiftRight: {Key: key.KeyRight, Mods: key.ModCtrl | key.ModShift},
	tea.KeySpace:          {Key: key.KeyRune, Rune: ' '},
	tea.KeyCtrlAt:         {Key: key.KeyRune, Rune: ' ', Mods: key.ModCtrl},
	tea.KeyF1:             {Key: key.KeyF1},
	tea.KeyF2:             {Key: key.KeyF2},
	tea.KeyF3:             {Key: key.KeyF3},
	tea.KeyF4:             {Key: key.KeyF4},
	tea.KeyF5:             {Key: key.KeyF5},
	tea.KeyF6:             {Key: key.KeyF6},
	tea.KeyF7:             {Key: key.KeyF7},
	tea.KeyF8:             {Key: key.KeyF8},
	tea.KeyF9:             {Key: key.KeyF9},
	tea.KeyF10:            {Key: key.KeyF10},
	tea.KeyF11:            {Key: key.KeyF11},
	tea.KeyF12:            {Key: key.KeyF12},
}

// FromTea translates a bubbletea key message. The result is always
// KindDown; bracketed paste and key types outside the vocabulary come
// back as zero-key events that match nothing.
func FromTea(msg tea.KeyMsg) key.Event {
	out := key.Event{
		Kind:   key.KindDown,
		Time:   time.Now(),
		Native: msg,
	}
	if msg.Alt {
		out.Mods = out.Mods.With(key.ModAlt)
	}
	if msg.Paste {
		return out
	}

	switch t := msg.Type; {
	case t == tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return out
		}
		out.Key = key.KeyRune
		out.Rune = msg.Runes[0]
	default:
		if pattern, ok := namedTeaKeys[t]; ok {
			out.Key = pattern.Key
			out.Rune = pattern.Rune
			out.Mods = out.Mods.With(pattern.Mods)
		} else if t >= tea.KeyCtrlA && t <= tea.KeyCtrlZ {
			// C0 controls bubbletea has no higher-level name for.
			out.Key = key.KeyRune
			out.Rune = 'a' + rune(t-tea.KeyCtrlA)
			out.Mods = out.Mods.With(key.ModCtrl)
		}
	}

	return key.Normalize(out)
}
