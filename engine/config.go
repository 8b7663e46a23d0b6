package engine

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Config configures a matching engine.
type Config struct {
	// SequenceTimeout is how long to wait for multi-key sequences to
	// complete. Zero disables the timeout. Default: 1000ms.
	SequenceTimeout time.Duration

	// Logger receives engine diagnostics. A nil Logger is replaced by a
	// default logging at warn level.
	Logger *logrus.Logger

	// Recover converts handler panics into Result.Err instead of letting
	// them unwind the dispatching goroutine.
	Recover bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SequenceTimeout: 1000 * time.Millisecond,
		Recover:         true,
	}
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		c.Logger = l
	}
	return c
}
