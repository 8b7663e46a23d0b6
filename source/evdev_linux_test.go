//go:build linux

package source

import (
	"io"
	"testing"

	evdev "github.com/gvalkov/golang-evdev"
	"github.com/sirupsen/logrus"

	"github.com/dshills/hotkeys/key"
)

func testReader() *Reader {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Reader{log: log}
}

func rawKey(code uint16, value int32) *evdev.InputEvent {
	return &evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value}
}

func TestTranslatePlainKey(t *testing.T) {
	r := testReader()

	ev, ok := r.translate(rawKey(31, evdevKeyDown)) // KEY_S
	if !ok || ev.ID() != "s" || ev.Kind != key.KindDown {
		t.Errorf("translate(s down) = %v %v, ok %v", ev.ID(), ev.Kind, ok)
	}
	ev, ok = r.translate(rawKey(31, evdevKeyUp))
	if !ok || ev.Kind != key.KindUp {
		t.Errorf("translate(s up) = %v, ok %v, want keyup", ev.Kind, ok)
	}
	ev, ok = r.translate(rawKey(31, evdevKeyRepeat))
	if !ok || ev.Kind != key.KindDown {
		t.Errorf("translate(s repeat) = %v, ok %v, want keydown", ev.Kind, ok)
	}
}

func TestTranslateFoldsModifiers(t *testing.T) {
	r := testReader()

	if _, ok := r.translate(rawKey(29, evdevKeyDown)); ok { // KEY_LEFTCTRL
		t.Error("modifier press produced an event")
	}
	ev, ok := r.translate(rawKey(31, evdevKeyDown))
	if !ok || ev.ID() != "ctrl+s" {
		t.Errorf("translate(s with ctrl held) = %q, want ctrl+s", ev.ID())
	}
	if _, ok := r.translate(rawKey(29, evdevKeyUp)); ok {
		t.Error("modifier release produced an event")
	}
	ev, _ = r.translate(rawKey(31, evdevKeyDown))
	if ev.ID() != "s" {
		t.Errorf("translate(s after ctrl release) = %q, want s", ev.ID())
	}
}

func TestTranslateShiftedKey(t *testing.T) {
	r := testReader()

	r.translate(rawKey(42, evdevKeyDown)) // KEY_LEFTSHIFT
	ev, ok := r.translate(rawKey(30, evdevKeyDown))
	if !ok || ev.ID() != "shift+a" {
		t.Errorf("translate(a with shift held) = %q, want shift+a", ev.ID())
	}
}

func TestTranslateSkipsNonKeys(t *testing.T) {
	r := testReader()

	if _, ok := r.translate(&evdev.InputEvent{Type: evdev.EV_SYN}); ok {
		t.Error("EV_SYN produced an event")
	}
	if _, ok := r.translate(rawKey(999, evdevKeyDown)); ok {
		t.Error("unmapped code produced an event")
	}
}
