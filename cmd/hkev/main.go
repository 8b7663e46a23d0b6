// Package main is an event inspector for the hotkeys library. It opens a
// raw terminal, translates every key event, and prints how the Manager
// routes it against a sample registration.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/dshills/hotkeys"
	"github.com/dshills/hotkeys/engine"
	"github.com/dshills/hotkeys/key"
	"github.com/dshills/hotkeys/keymap"
	"github.com/dshills/hotkeys/source"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	log := logrus.New()
	log.SetOutput(io.Discard)

	mgr := hotkeys.New(&hotkeys.Config{
		Logger:          log,
		SequenceTimeout: time.Duration(opts.TimeoutMS) * time.Millisecond,
		Recover:         true,
	})
	defer mgr.Close()

	// Sample registrations so routing decisions have something to hit.
	tree := mgr.ActivateFocusTree()
	comp := mgr.AddHotkeys(keymap.Map{
		"save": {"ctrl+s"},
		"top":  {"g g"},
		"mark": {"m"},
		"fail": {"ctrl+e"},
	}, keymap.Handlers{
		"save": func(key.Event) error { return nil },
		"top":  func(key.Event) error { return nil },
		"mark": func(key.Event) error { return nil },
		"fail": func(key.Event) error { return errors.New("synthetic handler failure") },
	}, nil)
	mgr.AddGlobalHotkeys(keymap.Map{
		"reset": {"ctrl+alt+r"},
	}, keymap.Handlers{
		"reset": func(key.Event) error { return nil },
	}, nil, nil)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	insp := &inspector{screen: screen, mgr: mgr, tree: tree, comp: comp}
	insp.draw()

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			insp.draw()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				return 0
			}
			insp.handle(ev)
		case nil:
			return 0
		}
	}
}

type options struct {
	TimeoutMS int
}

func parseFlags() options {
	var opts options

	flag.IntVar(&opts.TimeoutMS, "timeout", 1000, "Multi-key sequence timeout in milliseconds")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "hkev - hotkeys event inspector\n\n")
		fmt.Fprintf(os.Stderr, "Usage: hkev [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nPress keys to watch them translate and route; ctrl+c quits.\n")
	}

	flag.Parse()
	return opts
}

// inspector owns the screen and the scrollback of inspected events.
type inspector struct {
	screen tcell.Screen
	mgr    *hotkeys.Manager
	tree   keymap.FocusTreeID
	comp   keymap.ComponentID
	lines  []string
}

// handle translates one tcell event, dispatches it on the focus path and
// then the global path, and records one line per synthesized event.
func (i *inspector) handle(tev *tcell.EventKey) {
	ev := source.FromTcell(tev)
	if ev.Key == key.KeyNone {
		i.push("(unmapped terminal key)")
		i.draw()
		return
	}

	for _, e := range source.ExpandTerminal(ev) {
		res := i.dispatchFocus(e)
		gres := i.dispatchGlobal(e)
		verdict := i.mgr.QueryEventHistory(e, e.Kind)

		i.push(fmt.Sprintf("%-16s %-9s focus=%-18s global=%-18s history=%s",
			e.ID(), e.Kind, resultWord(res), resultWord(gres), verdict))
	}
	i.draw()
}

func (i *inspector) dispatchFocus(ev key.Event) engine.Result {
	scope := hotkeys.FocusScope(i.tree, i.comp)
	switch ev.Kind {
	case key.KindPress:
		return i.mgr.HandleKeypress(ev, scope)
	case key.KindUp:
		return i.mgr.HandleKeyup(ev, scope)
	default:
		return i.mgr.HandleKeydown(ev, scope)
	}
}

func (i *inspector) dispatchGlobal(ev key.Event) engine.Result {
	switch ev.Kind {
	case key.KindPress:
		return i.mgr.HandleGlobalKeypress(ev)
	case key.KindUp:
		return i.mgr.HandleGlobalKeyup(ev)
	default:
		return i.mgr.HandleGlobalKeydown(ev)
	}
}

func resultWord(res engine.Result) string {
	if !res.Handled {
		return "pass"
	}
	if res.Err != nil {
		return fmt.Sprintf("%s!err", res.Action)
	}
	return fmt.Sprintf("handled(%s)", res.Action)
}

func (i *inspector) push(line string) {
	i.lines = append(i.lines, line)
	_, height := i.screen.Size()
	max := height - 4
	if max < 1 {
		max = 1
	}
	if len(i.lines) > max {
		i.lines = i.lines[len(i.lines)-max:]
	}
}

func (i *inspector) draw() {
	i.screen.Clear()

	bold := tcell.StyleDefault.Bold(true)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	drawText(i.screen, 0, 0, bold, "hotkeys event inspector")
	drawText(i.screen, 0, 1, dim, "focus: ctrl+s save / g g top / m mark / ctrl+e fail   global: ctrl+alt+r reset   ctrl+c quits")

	for n, line := range i.lines {
		drawText(i.screen, 0, 3+n, tcell.StyleDefault, line)
	}
	i.screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for n, r := range []rune(text) {
		screen.SetContent(x+n, y, r, nil, style)
	}
}
