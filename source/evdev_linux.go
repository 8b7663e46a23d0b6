//go:build linux

package source

import (
	"context"
	"fmt"
	"time"

	evdev "github.com/gvalkov/golang-evdev"
	"github.com/sirupsen/logrus"

	"github.com/dshills/hotkeys/internal/keycodes"
	"github.com/dshills/hotkeys/key"
)

// Raw key event values on the wire: release, press, autorepeat.
const (
	evdevKeyUp     = 0
	evdevKeyDown   = 1
	evdevKeyRepeat = 2
)

// Reader translates a /dev/input/event* device into key events. Unlike
// the terminal adapters it sees real releases, so it emits KindUp and
// treats autorepeat as another KindDown. Modifier keys never surface as
// events; they fold into the Mods of the keys pressed while held.
type Reader struct {
	device *evdev.InputDevice
	log    *logrus.Logger
	held   key.Modifier
}

// OpenReader opens an input device, e.g. "/dev/input/event3". A nil log
// falls back to a warn-level logger.
func OpenReader(devicePath string, log *logrus.Logger) (*Reader, error) {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	dev, err := evdev.Open(devicePath)
	if err != nil {
		return nil, fmt.Errorf("open input device %s: %w", devicePath, err)
	}
	log.WithFields(logrus.Fields{
		"component": "source",
		"device":    dev.Name,
		"path":      devicePath,
	}).Debug("input device opened")
	return &Reader{device: dev, log: log}, nil
}

// Grab claims the device exclusively; grabbed events stop reaching the
// rest of the system.
func (r *Reader) Grab() error {
	return r.device.Grab()
}

// Release undoes Grab.
func (r *Reader) Release() error {
	return r.device.Release()
}

// ReadLoop blocks reading events and calls emit for each translated key
// stroke until the context is canceled or the device read fails. The
// device read itself cannot be interrupted; cancellation takes effect at
// the next event.
func (r *Reader) ReadLoop(ctx context.Context, emit func(key.Event)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, err := r.device.ReadOne()
		if err != nil {
			return fmt.Errorf("read %s: %w", r.device.Name, err)
		}
		if ev, ok := r.translate(raw); ok {
			emit(ev)
		}
	}
}

// translate folds one raw event into the reader's modifier state or
// produces a key event. Repeats count as another down.
func (r *Reader) translate(raw *evdev.InputEvent) (key.Event, bool) {
	if raw.Type != evdev.EV_KEY {
		return key.Event{}, false
	}

	if mod, ok := keycodes.ModifierFromCode(raw.Code); ok {
		switch raw.Value {
		case evdevKeyDown:
			r.held = r.held.With(mod)
		case evdevKeyUp:
			r.held = r.held.Without(mod)
		}
		return key.Event{}, false
	}

	pattern, ok := keycodes.FromEvdev(raw.Code)
	if !ok {
		r.log.WithFields(logrus.Fields{
			"component": "source",
			"code":      raw.Code,
		}).Debug("unmapped key code")
		return key.Event{}, false
	}

	kind := key.KindDown
	if raw.Value == evdevKeyUp {
		kind = key.KindUp
	}
	pattern.Mods = r.held
	pattern.Kind = kind
	pattern.Time = time.Unix(int64(raw.Time.Sec), int64(raw.Time.Usec)*1000)
	pattern.Native = raw
	return key.Normalize(pattern), true
}

// Close releases the device file.
func (r *Reader) Close() error {
	return r.device.File.Close()
}
