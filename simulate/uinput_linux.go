//go:build linux

package simulate

import (
	"fmt"

	"github.com/bendahl/uinput"

	"github.com/dshills/hotkeys/internal/keycodes"
	"github.com/dshills/hotkeys/key"
)

// Injector taps keys on a virtual uinput keyboard, feeding events back
// into the OS input stack. Requires write access to /dev/uinput.
type Injector struct {
	keyboard uinput.Keyboard
}

// NewInjector creates the virtual keyboard device.
func NewInjector() (*Injector, error) {
	kb, err := uinput.CreateKeyboard("/dev/uinput", []byte("hotkeys-injector"))
	if err != nil {
		return nil, fmt.Errorf("create virtual keyboard: %w", err)
	}
	return &Injector{keyboard: kb}, nil
}

// Tap presses and releases the keys of spec: modifiers down in ctrl,
// alt, shift, meta order, the main key tapped, modifiers released in
// reverse.
func (in *Injector) Tap(spec string) error {
	pattern, err := key.Parse(spec)
	if err != nil {
		return err
	}
	code, ok := keycodes.ToUinput(pattern)
	if !ok {
		return fmt.Errorf("no keycode for %q", spec)
	}

	mods := keycodes.ModifierCodes(pattern.Mods)
	for _, m := range mods {
		if err := in.keyboard.KeyDown(int(m)); err != nil {
			return fmt.Errorf("press modifier for %q: %w", spec, err)
		}
	}
	if err := in.keyboard.KeyPress(code); err != nil {
		return fmt.Errorf("tap %q: %w", spec, err)
	}
	for i := len(mods) - 1; i >= 0; i-- {
		if err := in.keyboard.KeyUp(int(mods[i])); err != nil {
			return fmt.Errorf("release modifier for %q: %w", spec, err)
		}
	}
	return nil
}

// Close removes the virtual device.
func (in *Injector) Close() error {
	return in.keyboard.Close()
}
