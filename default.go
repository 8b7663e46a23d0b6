package hotkeys

import "sync"

// The package-default Manager. Hosts that want exactly one instance use
// these instead of threading a *Manager through their code.
var (
	defaultMu      sync.Mutex
	defaultManager *Manager
)

// GetManager returns the package-default Manager, constructing it with
// cfg on first call. Subsequent calls return the same instance and
// ignore cfg entirely.
func GetManager(cfg *Config) *Manager {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultManager == nil {
		defaultManager = New(cfg)
	}
	return defaultManager
}

// SetManager replaces the package-default Manager without closing the
// old one. Pass nil to clear it; the next GetManager constructs afresh.
func SetManager(m *Manager) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultManager = m
}

// ResetManager closes and discards the package-default Manager
// unconditionally, whatever state it is in. The next GetManager starts
// from scratch: fresh engines, no LastEventSeen.
func ResetManager() {
	defaultMu.Lock()
	m := defaultManager
	defaultManager = nil
	defaultMu.Unlock()

	if m != nil {
		m.Close()
	}
}
