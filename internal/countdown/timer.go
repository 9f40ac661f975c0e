// Package countdown implements the round clock shown in timed modes.
package countdown

import (
	"fmt"
	"time"
)

// Timer counts simulated time down to zero. It only moves when Advance is
// called from the game tick.
type Timer struct {
	remaining time.Duration
	running   bool
	visible   bool
}

// New creates a stopped, visible timer reading zero.
func New() *Timer {
	return &Timer{visible: true}
}

// Remaining returns the time left on the clock.
func (t *Timer) Remaining() time.Duration { return t.remaining }

// Running reports whether the timer is counting down.
func (t *Timer) Running() bool { return t.running }

// Visible reports whether the clock should be drawn.
func (t *Timer) Visible() bool { return t.visible }

// Start sets the clock to d, shows it and starts counting.
func (t *Timer) Start(d time.Duration) {
	t.remaining = max(d, 0)
	t.running = true
	t.visible = true
}

// Stop freezes the clock at its current value.
func (t *Timer) Stop() { t.running = false }

// Zero empties the clock and stops it.
func (t *Timer) Zero() {
	t.remaining = 0
	t.running = false
}

// HideDisplay hides the clock. Counting is unaffected.
func (t *Timer) HideDisplay() { t.visible = false }

// Advance counts dt off the clock. The timer stops when it reaches zero.
func (t *Timer) Advance(dt time.Duration) {
	if !t.running || dt <= 0 {
		return
	}
	t.remaining -= dt
	if t.remaining <= 0 {
		t.remaining = 0
		t.running = false
	}
}

// Format renders the remaining time as m:ss, rounding partial seconds up so
// the display reads 0:00 only when the clock is empty.
func (t *Timer) Format() string {
	secs := int((t.remaining + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
