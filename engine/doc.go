// Package engine provides the two matching engines behind the hotkeys
// Manager: a focus engine that scopes registrations to focus trees, and a
// global engine that matches everywhere.
//
// # Focus engine
//
// The Focus engine owns focus trees. A tree is started with Activate and
// retired with Deactivate; components register key bindings inside the
// current tree with AddHotkeys. Components in a tree are ordered by
// registration, most recent innermost, and dispatch walks the tree from
// the observing component outward until a binding matches.
//
// Every event the focus engine processes is snapshotted as the
// CurrentEvent, handled flag included. That snapshot is the raw material
// for the history oracle: callers that hold a HistoryQuery can ask whether
// a given keystroke was already seen or handled on the focus path.
//
// # Global engine
//
// The Global engine keeps a flat set of registrations with no tree
// structure. It is constructed with a HistoryQuery and skips any event the
// oracle reports as handled, so a keystroke consumed by a focused
// component is not replayed globally. Registrations may carry
// EventOptions; an Ignore predicate vetoes events for the whole engine.
//
// # Sequences
//
// Both engines support multi-key sequences ("g g", "ctrl+x ctrl+c"). A
// strict prefix of a bound sequence arms a pending state per event kind;
// the pending state is flushed when it completes, stops matching, or
// Config.SequenceTimeout elapses. Removing a registration cancels pending
// matches immediately.
//
// Handlers run synchronously on the dispatching goroutine, outside the
// engine lock. With Config.Recover set, a handler panic is captured and
// returned as Result.Err.
package engine
