// Package hotkeys coordinates keyboard shortcut handling between
// focus-scoped and global hotkey registrations.
//
// The Manager is the single entry point hosts integrate with. It owns two
// matching engines: a focus engine that scopes bindings to focus trees
// (a component registers bindings that apply only while its region of the
// UI has focus) and a global engine whose bindings match everywhere. The
// Manager routes each incoming event to exactly one of them and keeps the
// bookkeeping the two paths need to cooperate.
//
// # Routing
//
// Hosts tag each event with a Scope. A FocusScope names the focus tree
// and component that observed the event; Ambient marks an event that did
// not originate inside any focus-scoped region. On dispatch the Manager
// asks its Classifier whether the named tree is really focus-scoped
// (trees retire when their UI unmounts, and events for retired trees
// still arrive). Confirmed focus events go to the focus engine and its
// Result is returned untouched. Everything else is recorded as the
// LastEventSeen and produces the zero Result.
//
// Global dispatch (HandleGlobalKeydown and friends) is a separate path:
// it always forwards to the global engine, never consults the Classifier
// and never records. The global engine itself skips events the focus path
// already handled, which it learns through a history callback wired up at
// construction.
//
// # The package default
//
// Most hosts want exactly one Manager. GetManager lazily constructs a
// package-wide instance; ResetManager closes and discards it so the next
// GetManager starts from scratch (tests and hot-reload paths rely on
// this); SetManager swaps in a prepared instance.
//
// # Failure posture
//
// The Manager raises no failures of its own. Nil maps register as empty,
// events for unknown scopes are recorded silently, and handler errors or
// recovered panics travel back inside the Result for the host to
// interpret. Journaling, when configured, is best-effort and cannot
// affect dispatch.
package hotkeys
