package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/hotkeys"
	"github.com/dshills/hotkeys/engine"
	"github.com/dshills/hotkeys/key"
	"github.com/dshills/hotkeys/keymap"
	"github.com/dshills/hotkeys/script"
	"github.com/dshills/hotkeys/source"
)

const paneScroll = 64

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	paneTitleStyle   = lipgloss.NewStyle().Bold(true)
	paneStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	focusedPaneStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
	helpStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
	statusBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
)

// remoteKeyMsg carries one event from the websocket source into Update.
type remoteKeyMsg struct {
	ev key.Event
}

// paneState is shared between the model and the pane's handlers. Handlers
// close over the pointer, so their output survives bubbletea's model
// copying.
type paneState struct {
	name     string
	lines    []string
	keymap   keymap.Map
	handlers keymap.Handlers

	tree keymap.FocusTreeID
	comp keymap.ComponentID
}

func (p *paneState) append(line string) {
	p.lines = append(p.lines, line)
	if len(p.lines) > paneScroll {
		p.lines = p.lines[len(p.lines)-paneScroll:]
	}
}

// sharedState carries handler effects that belong to the whole UI rather
// than one pane.
type sharedState struct {
	quit     bool
	help     bool
	nextPane bool
}

type model struct {
	mgr    *hotkeys.Manager
	panes  []*paneState
	shared *sharedState

	globalMap keymap.Map
	descs     map[keymap.Action]string

	focus       int
	last        engine.Result
	lastKey     string
	lastVerdict engine.History
	width       int
	height      int
}

func newModel(mgr *hotkeys.Manager, b *script.Bindings, fileMap keymap.Map, fileOpts map[keymap.Action]keymap.Options) model {
	shared := &sharedState{}
	editor := &paneState{name: "Editor", lines: []string{"type here; ctrl+s saves, g g jumps to top, m sets a mark"}}
	browser := &paneState{name: "Browser", lines: []string{"enter opens, r refreshes, backspace goes up"}}

	descs := map[keymap.Action]string{
		"save":      "Save the buffer",
		"top":       "Jump to the top",
		"mark":      "Set a mark",
		"open":      "Open the selected entry",
		"refresh":   "Refresh the listing",
		"parent":    "Go to the parent directory",
		"next-pane": "Cycle pane focus",
		"help":      "Toggle this help panel",
		"quit":      "Quit the demo",
	}

	editor.keymap = keymap.Map{
		"save": {"ctrl+s"},
		"top":  {"g g"},
		"mark": {"m"},
	}
	editor.handlers = keymap.Handlers{
		"save": func(key.Event) error { editor.append("saved buffer"); return nil },
		"top":  func(key.Event) error { editor.append("jumped to top"); return nil },
		"mark": func(key.Event) error { editor.append("mark set"); return nil },
	}

	browser.keymap = keymap.Map{
		"open":    {"enter"},
		"refresh": {"r"},
		"parent":  {"backspace"},
	}
	browser.handlers = keymap.Handlers{
		"open":    func(key.Event) error { browser.append("opened entry"); return nil },
		"refresh": func(key.Event) error { browser.append("refreshed listing"); return nil },
		"parent":  func(key.Event) error { browser.append("up to parent"); return nil },
	}

	globalMap := keymap.Map{
		"quit":      {"ctrl+q"},
		"help":      {"?", "f1"},
		"next-pane": {"tab"},
	}
	globalHandlers := keymap.Handlers{
		"quit":      func(key.Event) error { shared.quit = true; return nil },
		"help":      func(key.Event) error { shared.help = !shared.help; return nil },
		"next-pane": func(key.Event) error { shared.nextPane = true; return nil },
	}

	if b != nil {
		editor.keymap = editor.keymap.Merge(b.Keymap)
		for a, h := range b.Handlers {
			editor.handlers[a] = h
		}
		globalMap = globalMap.Merge(b.Global)
		for a, h := range b.GlobalHandlers {
			globalHandlers[a] = h
		}
		for a, o := range b.Options {
			if o.Description != "" {
				descs[a] = o.Description
			}
		}
	}

	// Keymap documents bind specs, not code. Actions without a script or
	// built-in handler get an echo into the editor pane.
	editor.keymap = editor.keymap.Merge(fileMap)
	for a := range fileMap {
		if _, ok := editor.handlers[a]; !ok {
			action := a
			editor.handlers[action] = func(key.Event) error {
				editor.append(string(action) + " fired")
				return nil
			}
		}
	}
	for a, o := range fileOpts {
		if o.Description != "" {
			descs[a] = o.Description
		}
	}

	mgr.AddGlobalHotkeys(globalMap, globalHandlers, nil, nil)

	m := model{
		mgr:       mgr,
		panes:     []*paneState{editor, browser},
		shared:    shared,
		globalMap: globalMap,
		descs:     descs,
	}
	m.focusPane(0)
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		ev := source.FromTea(msg)
		if ev.Key == key.KeyNone {
			return m, nil
		}
		m.dispatchKey(ev)
		return m.afterDispatch()
	case remoteKeyMsg:
		m.dispatchRemote(msg.ev)
		return m.afterDispatch()
	}
	return m, nil
}

// afterDispatch applies handler side effects that Update owns: quitting
// and pane focus changes.
func (m model) afterDispatch() (tea.Model, tea.Cmd) {
	if m.shared.quit {
		return m, tea.Quit
	}
	if m.shared.nextPane {
		m.shared.nextPane = false
		m.focusPane((m.focus + 1) % len(m.panes))
	}
	return m, nil
}

// dispatchKey routes a terminal event the way a host loop would: each
// expanded event goes to the focused pane's scope, then to the global
// registration, which skips strokes the focus path already handled.
func (m *model) dispatchKey(ev key.Event) {
	pane := m.panes[m.focus]
	events := source.ExpandTerminal(ev)

	var results []engine.Result
	for i, e := range events {
		results = append(results, m.focusResult(e, pane))
		if i == 0 {
			m.lastVerdict = m.mgr.QueryEventHistory(e, e.Kind)
		}
		results = append(results, m.globalResult(e))
	}

	m.last = pickResult(results)
	m.lastKey = fmt.Sprintf("%s %s", ev.ID(), ev.Kind)
}

// dispatchRemote routes a websocket event. Remote events carry no focus
// scope; they are recorded as ambient and offered to the global
// registration.
func (m *model) dispatchRemote(ev key.Event) {
	switch ev.Kind {
	case key.KindPress:
		m.mgr.HandleKeypress(ev, hotkeys.Ambient())
	case key.KindUp:
		m.mgr.HandleKeyup(ev, hotkeys.Ambient())
	default:
		m.mgr.HandleKeydown(ev, hotkeys.Ambient())
	}

	m.last = m.globalResult(ev)
	m.lastKey = fmt.Sprintf("%s %s (remote)", ev.ID(), ev.Kind)
	m.lastVerdict = m.mgr.QueryEventHistory(ev, ev.Kind)
}

func (m *model) focusResult(ev key.Event, pane *paneState) engine.Result {
	scope := hotkeys.FocusScope(pane.tree, pane.comp)
	switch ev.Kind {
	case key.KindPress:
		return m.mgr.HandleKeypress(ev, scope)
	case key.KindUp:
		return m.mgr.HandleKeyup(ev, scope)
	default:
		return m.mgr.HandleKeydown(ev, scope)
	}
}

func (m *model) globalResult(ev key.Event) engine.Result {
	switch ev.Kind {
	case key.KindPress:
		return m.mgr.HandleGlobalKeypress(ev)
	case key.KindUp:
		return m.mgr.HandleGlobalKeyup(ev)
	default:
		return m.mgr.HandleGlobalKeydown(ev)
	}
}

// focusPane retires the current pane's focus tree and registers the
// target pane under a fresh one.
func (m *model) focusPane(idx int) {
	old := m.panes[m.focus]
	if old.tree != "" {
		m.mgr.DeactivateFocusTree(old.tree)
		old.tree = ""
		old.comp = ""
	}

	m.focus = idx
	pane := m.panes[idx]
	pane.tree = m.mgr.ActivateFocusTree()
	pane.comp = m.mgr.AddHotkeys(pane.keymap, pane.handlers, nil)
}

// pickResult chooses the result worth showing: the last handled one,
// otherwise the last overall.
func pickResult(results []engine.Result) engine.Result {
	for i := len(results) - 1; i >= 0; i-- {
		if results[i].Handled {
			return results[i]
		}
	}
	if len(results) == 0 {
		return engine.Result{}
	}
	return results[len(results)-1]
}

func (m model) View() string {
	if m.width == 0 {
		return "starting..."
	}

	title := titleStyle.Render("hotkeys demo")

	paneWidth := (m.width - 8) / 2
	if paneWidth < 10 {
		paneWidth = 10
	}
	paneHeight := m.height - 7
	if paneHeight < 3 {
		paneHeight = 3
	}

	var body string
	if m.shared.help {
		body = helpStyle.Width(m.width - 4).Render(m.helpView())
	} else {
		rendered := make([]string, 0, len(m.panes))
		for i, p := range m.panes {
			style := paneStyle
			if i == m.focus {
				style = focusedPaneStyle
			}
			rendered = append(rendered, style.Width(paneWidth).Height(paneHeight).Render(renderPane(p, paneWidth, paneHeight)))
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}

	status := statusBarStyle.Render(padRight(truncate(m.statusLine(), m.width-2), m.width-2))
	footer := footerStyle.Render("tab switch pane / ? help / ctrl+q quit")

	return strings.Join([]string{title, body, status, footer}, "\n")
}

func renderPane(p *paneState, width, height int) string {
	lines := []string{paneTitleStyle.Render(p.name)}

	visible := height - 1
	start := 0
	if len(p.lines) > visible {
		start = len(p.lines) - visible
	}
	for _, line := range p.lines[start:] {
		lines = append(lines, truncate(line, width))
	}
	return strings.Join(lines, "\n")
}

func (m model) statusLine() string {
	parts := []string{fmt.Sprintf("focus: %s", m.panes[m.focus].name)}

	if m.lastKey != "" {
		disp := fmt.Sprintf("last: %s", m.lastKey)
		if m.last.Handled {
			disp += fmt.Sprintf(" -> %s", m.last.Action)
			if m.last.Err != nil {
				disp += fmt.Sprintf(" (error: %v)", m.last.Err)
			}
		} else {
			disp += " -> unhandled"
		}
		parts = append(parts, disp, fmt.Sprintf("history: %s", m.lastVerdict))
	}

	if le := m.mgr.LastEventSeen(); le != nil {
		parts = append(parts, fmt.Sprintf("ambient: %s %s", le.Event.ID(), le.Kind))
	}

	return strings.Join(parts, " | ")
}

func (m model) helpView() string {
	var b strings.Builder

	b.WriteString(paneTitleStyle.Render("Global") + "\n")
	for _, a := range m.globalMap.Actions() {
		fmt.Fprintf(&b, "  %-16s %s\n", strings.Join(m.globalMap[a], " / "), m.describe(a))
	}

	for _, p := range m.panes {
		b.WriteString("\n" + paneTitleStyle.Render(p.name) + "\n")
		for _, a := range p.keymap.Actions() {
			fmt.Fprintf(&b, "  %-16s %s\n", strings.Join(p.keymap[a], " / "), m.describe(a))
		}
	}

	b.WriteString("\npress ? or f1 to close")
	return b.String()
}

func (m model) describe(a keymap.Action) string {
	if d, ok := m.descs[a]; ok {
		return d
	}
	return string(a)
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
