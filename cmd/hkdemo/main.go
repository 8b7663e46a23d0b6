// Package main is an interactive demo of the hotkeys dispatch library:
// two focusable panes, pane-scoped and global bindings, an optional Lua
// binding file, an optional sqlite journal and an optional websocket
// remote source.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dshills/hotkeys"
	"github.com/dshills/hotkeys/config"
	"github.com/dshills/hotkeys/journal"
	"github.com/dshills/hotkeys/key"
	"github.com/dshills/hotkeys/keymap"
	"github.com/dshills/hotkeys/script"
	"github.com/dshills/hotkeys/simulate"
)

var (
	flagConfig  string
	flagJournal string
	flagScript  string
	flagRemote  string
)

var rootCmd = &cobra.Command{
	Use:   "hkdemo",
	Short: "Interactive demo of the hotkeys dispatch library",
	Long: `hkdemo runs a small two-pane TUI wired through the hotkeys Manager.

TAB moves focus between the panes; each pane carries its own focus tree
and bindings. Ctrl+Q quits and ? (or F1) toggles the help panel from the
global registration. The status bar shows the last dispatch result, the
last event the Manager recorded outside focus routing, and the history
oracle's verdict for the last stroke.

Examples:
  hkdemo                         # defaults
  hkdemo --script bindings.lua   # add bindings from a Lua file
  hkdemo --journal demo.db       # record dispatches to sqlite
  hkdemo --remote 127.0.0.1:7117 # accept websocket events`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path to a hotkeys TOML config file")
	rootCmd.Flags().StringVar(&flagJournal, "journal", "", "record dispatches to this sqlite file")
	rootCmd.Flags().StringVar(&flagScript, "script", "", "load bindings from this Lua file")
	rootCmd.Flags().StringVar(&flagRemote, "remote", "", "serve a websocket event source on this address")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runDemo() error {
	if flagConfig != "" {
		os.Setenv("HOTKEYS_CONFIG", flagConfig)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The alternate screen owns stdout; logs would tear it.
	log := config.BuildLogger(cfg.Log)
	log.SetOutput(io.Discard)

	mcfg := &hotkeys.Config{
		Logger:          log,
		SequenceTimeout: time.Duration(cfg.Dispatch.SequenceTimeoutMS) * time.Millisecond,
		Recover:         true,
	}

	journalPath := flagJournal
	if journalPath == "" && cfg.Journal.Enabled {
		journalPath = cfg.Journal.Path
	}
	if journalPath != "" {
		jrnl, err := journal.Open(journalPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer jrnl.Close()
		mcfg.Journal = jrnl
	}

	mgr := hotkeys.New(mcfg)
	defer mgr.Close()

	scriptPath := flagScript
	if scriptPath == "" && cfg.Script.Enabled {
		scriptPath = cfg.Script.Path
	}
	var bindings *script.Bindings
	if scriptPath != "" {
		bindings, err = script.Load(scriptPath, log)
		if err != nil {
			return fmt.Errorf("load script: %w", err)
		}
		defer bindings.Close()
	}

	fileMap := keymap.Map{}
	fileOpts := map[keymap.Action]keymap.Options{}
	for _, path := range cfg.Keymap.Files {
		km, opts, err := keymap.LoadFile(path)
		if err != nil {
			return fmt.Errorf("load keymap %s: %w", path, err)
		}
		fileMap = fileMap.Merge(km)
		for a, o := range opts {
			fileOpts[a] = o
		}
	}

	p := tea.NewProgram(newModel(mgr, bindings, fileMap, fileOpts), tea.WithAltScreen())

	remoteAddr := flagRemote
	if remoteAddr == "" && cfg.Remote.Enabled {
		remoteAddr = cfg.Remote.Addr
	}
	if remoteAddr != "" {
		srv := &http.Server{
			Addr: remoteAddr,
			Handler: simulate.NewServer(func(ev key.Event) {
				p.Send(remoteKeyMsg{ev: ev})
			}, log),
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "remote source: %v\n", err)
			}
		}()
		defer srv.Shutdown(context.Background())
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
