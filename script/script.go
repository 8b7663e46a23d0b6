// Package script loads hotkey bindings from Lua configuration files.
//
// A script runs once, at load time, in its own sandboxed interpreter. It
// declares bindings through the hotkeys module:
//
//	hotkeys.bind("save", "ctrl+s", "meta+s")
//	hotkeys.global("mute", "meta+shift+m")
//	hotkeys.describe("save", "write the current buffer")
//	hotkeys.on("save", function(ev)
//	    print("saving after " .. ev.key)
//	end)
//
// Handlers registered with hotkeys.on keep running inside the interpreter
// every time their binding fires, so a Bindings value stays live until
// Close is called.
package script

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hotkeys/key"
	"github.com/dshills/hotkeys/keymap"
)

// ErrClosed is returned by script handlers that fire after Close.
var ErrClosed = errors.New("script bindings closed")

// Bindings holds everything a script declared, ready to hand to a Manager.
// Keymap and Handlers register with the focus engine, Global and
// GlobalHandlers with the global engine. Options carries per-action
// metadata from hotkeys.describe.
//
// The zero value is not usable; obtain a Bindings from Load.
type Bindings struct {
	Keymap         keymap.Map
	Handlers       keymap.Handlers
	Global         keymap.Map
	GlobalHandlers keymap.Handlers
	Options        map[keymap.Action]keymap.Options

	// mu serializes all access to the interpreter. gopher-lua states are
	// not goroutine-safe and handlers may fire from the host's dispatch
	// loop long after Load returns.
	mu     sync.Mutex
	state  *lua.LState
	sealed bool
	closed bool
}

// Load executes the Lua file at path and collects the bindings it
// declares. The returned Bindings owns a live interpreter; callers must
// Close it once the bindings are unregistered.
func Load(path string, log *logrus.Logger) (*Bindings, error) {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	b := &Bindings{
		Keymap:         keymap.Map{},
		Handlers:       keymap.Handlers{},
		Global:         keymap.Map{},
		GlobalHandlers: keymap.Handlers{},
		Options:        map[keymap.Action]keymap.Options{},
		state:          L,
	}

	// Lua functions are collected first and wrapped after the script
	// finishes, so declaration order inside the file does not matter.
	luaHandlers := map[keymap.Action]*lua.LFunction{}

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"bind": func(L *lua.LState) int {
			action, specs := b.checkBindArgs(L, "bind")
			b.Keymap[action] = append(b.Keymap[action], specs...)
			return 0
		},
		"global": func(L *lua.LState) int {
			action, specs := b.checkBindArgs(L, "global")
			b.Global[action] = append(b.Global[action], specs...)
			return 0
		},
		"on": func(L *lua.LState) int {
			b.loadTimeOnly(L, "on")
			action := keymap.Action(L.CheckString(1))
			luaHandlers[action] = L.CheckFunction(2)
			return 0
		},
		"describe": func(L *lua.LState) int {
			b.loadTimeOnly(L, "describe")
			action := keymap.Action(L.CheckString(1))
			text := L.CheckString(2)
			o := b.Options[action]
			o.Description = text
			b.Options[action] = o
			return 0
		},
	})
	L.SetGlobal("hotkeys", mod)

	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("run script %s: %w", path, err)
	}
	b.sealed = true

	for action, fn := range luaHandlers {
		h := b.handler(action, fn)
		bound := false
		if _, ok := b.Keymap[action]; ok {
			b.Handlers[action] = h
			bound = true
		}
		if _, ok := b.Global[action]; ok {
			b.GlobalHandlers[action] = h
			bound = true
		}
		if !bound {
			log.WithFields(logrus.Fields{
				"component": "script",
				"action":    action,
				"path":      path,
			}).Warn("handler for action with no binding")
			b.Handlers[action] = h
		}
	}

	log.WithFields(logrus.Fields{
		"component": "script",
		"path":      path,
		"bindings":  len(b.Keymap),
		"global":    len(b.Global),
		"handlers":  len(luaHandlers),
	}).Debug("script loaded")

	return b, nil
}

// checkBindArgs validates a bind/global call: an action name followed by
// one or more key specs. Bad specs fail the script at load time rather
// than surfacing later as registration warnings.
func (b *Bindings) checkBindArgs(L *lua.LState, name string) (keymap.Action, []string) {
	b.loadTimeOnly(L, name)
	action := keymap.Action(L.CheckString(1))
	n := L.GetTop()
	if n < 2 {
		L.RaiseError("hotkeys.%s(%s): at least one key spec required", name, action)
	}
	specs := make([]string, 0, n-1)
	for i := 2; i <= n; i++ {
		spec := L.CheckString(i)
		if _, err := key.ParseSequence(spec); err != nil {
			L.RaiseError("hotkeys.%s(%s): %s", name, action, err.Error())
		}
		specs = append(specs, spec)
	}
	return action, specs
}

// loadTimeOnly rejects module calls made from inside a running handler.
// Declarations mutate the exported maps, which the host reads without a
// lock once Load returns.
func (b *Bindings) loadTimeOnly(L *lua.LState, name string) {
	if b.sealed {
		L.RaiseError("hotkeys.%s: declarations are allowed only at load time", name)
	}
}

// handler wraps a Lua function as a keymap.Handler. The wrapper converts
// the event to a Lua table and calls the function with the interpreter
// lock held. Lua errors come back as handler errors.
func (b *Bindings) handler(action keymap.Action, fn *lua.LFunction) keymap.Handler {
	return func(ev key.Event) error {
		b.mu.Lock()
		defer b.mu.Unlock()

		if b.closed {
			return ErrClosed
		}

		L := b.state
		tbl := L.NewTable()
		L.SetField(tbl, "key", lua.LString(ev.ID()))
		L.SetField(tbl, "kind", lua.LString(ev.Kind.String()))
		if ev.Rune != 0 {
			L.SetField(tbl, "rune", lua.LString(string(ev.Rune)))
		}

		L.Push(fn)
		L.Push(tbl)
		if err := L.PCall(1, 0, nil); err != nil {
			return fmt.Errorf("script handler %s: %w", action, err)
		}
		return nil
	}
}

// Close releases the interpreter. Close is idempotent; handlers invoked
// afterwards return ErrClosed without touching the Lua state.
func (b *Bindings) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.state.Close()
	return nil
}
