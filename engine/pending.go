package engine

import (
	"time"

	"github.com/dshills/hotkeys/key"
)

// pending tracks partially matched sequences, one per event kind so a
// keyup mid-sequence cannot break a keydown sequence. All methods are
// called with the owning engine's lock held; expire is invoked from the
// timer goroutine and must take that lock itself.
type pending struct {
	seqs    map[key.Kind]key.Sequence
	timer   *time.Timer
	timeout time.Duration
	expire  func()
}

func newPending(timeout time.Duration, expire func()) *pending {
	return &pending{
		seqs:    make(map[key.Kind]key.Sequence),
		timeout: timeout,
		expire:  expire,
	}
}

// take returns the pending sequence for a kind, nil when none.
func (p *pending) take(kind key.Kind) key.Sequence {
	return p.seqs[kind]
}

// arm stores a partial match and restarts the completion timer.
func (p *pending) arm(kind key.Kind, seq key.Sequence) {
	p.seqs[kind] = seq
	p.stopTimer()
	if p.timeout > 0 {
		p.timer = time.AfterFunc(p.timeout, p.expire)
	}
}

// drop discards the pending sequence for one kind.
func (p *pending) drop(kind key.Kind) {
	delete(p.seqs, kind)
	if len(p.seqs) == 0 {
		p.stopTimer()
	}
}

// clear discards all pending state.
func (p *pending) clear() {
	clear(p.seqs)
	p.stopTimer()
}

func (p *pending) empty() bool {
	return len(p.seqs) == 0
}

func (p *pending) stopTimer() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
