// Package debounce coalesces bursts of search-as-you-type input into one run
// after a quiet period, and lets consumers discard results of superseded runs.
package debounce

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultDelay is the quiet period after the last keystroke
const DefaultDelay = 300 * time.Millisecond

// Debouncer holds a single pending run. Triggering again cancels the pending
// run; a run already in flight is not interrupted but its token stops being current.
type Debouncer struct {
	delay  time.Duration
	latest atomic.Uint64

	mu    sync.Mutex
	timer *time.Timer
}

// Token identifies one scheduled run
type Token struct {
	seq uint64
	d   *Debouncer
}

// Current reports whether no newer run has been requested since this token was issued
func (t Token) Current() bool {
	return t.d != nil && t.d.latest.Load() == t.seq
}

// New creates a debouncer. A non-positive delay uses DefaultDelay.
func New(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Delay returns the quiet period
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger schedules fn after the quiet period, replacing any pending run.
func (d *Debouncer) Trigger(fn func(Token)) Token {
	d.mu.Lock()
	defer d.mu.Unlock()

	token := d.next()
	d.stopLocked()
	d.timer = time.AfterFunc(d.delay, func() {
		if token.Current() {
			fn(token)
		}
	})
	return token
}

// Supersede cancels any pending run and invalidates in-flight tokens without
// scheduling anything. The returned token is current until the next call.
func (d *Debouncer) Supersede() Token {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	return d.next()
}

// Stop cancels any pending run
func (d *Debouncer) Stop() {
	d.Supersede()
}

func (d *Debouncer) next() Token {
	return Token{seq: d.latest.Add(1), d: d}
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
