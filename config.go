package hotkeys

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dshills/hotkeys/journal"
)

// Config configures a Manager.
type Config struct {
	// Logger receives Manager and engine diagnostics. A nil Logger is
	// replaced by a default logging at warn level; silence it entirely
	// with a logger writing to io.Discard (config.BuildLogger maps level
	// "none" to exactly that).
	Logger *logrus.Logger

	// SequenceTimeout is how long the engines wait for multi-key
	// sequences to complete. Zero disables the timeout.
	SequenceTimeout time.Duration

	// Classifier overrides the default live-tree classifier.
	Classifier Classifier

	// Journal, when set, receives one record per dispatched event.
	// Recording is best-effort and never affects dispatch.
	Journal journal.Recorder

	// Recover converts handler panics into Result.Err instead of letting
	// them unwind the dispatching goroutine.
	Recover bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SequenceTimeout: 1000 * time.Millisecond,
		Recover:         true,
	}
}
