// Package pomodoro is a plain countdown with three modes.
// It does not cycle into long breaks on its own: every break, long or
// short, is followed by a pomodoro.
package pomodoro

import (
	"fmt"
	"time"
)

type Mode string

const (
	Focus      Mode = "pomodoro"
	ShortBreak Mode = "shortBreak"
	LongBreak  Mode = "longBreak"
)

// Modes lists every mode in display order.
var Modes = []Mode{Focus, ShortBreak, LongBreak}

// Duration is the fixed length of a mode.
func (m Mode) Duration() time.Duration {
	switch m {
	case ShortBreak:
		return 5 * time.Minute
	case LongBreak:
		return 15 * time.Minute
	default:
		return 25 * time.Minute
	}
}

// next is the mode loaded once the countdown of m runs out
func (m Mode) next() Mode {
	if m == Focus {
		return ShortBreak
	}
	return Focus
}

type Timer struct {
	mode    Mode
	left    int // seconds
	running bool
}

// New returns a paused timer in pomodoro mode.
func New() *Timer {
	t := &Timer{}
	t.Switch(Focus)
	return t
}

func (t *Timer) Mode() Mode {
	return t.mode
}

// Remaining is the time left in whole seconds.
func (t *Timer) Remaining() int {
	return t.left
}

func (t *Timer) Running() bool {
	return t.running
}

// Switch loads the fixed duration of m and pauses.
func (t *Timer) Switch(m Mode) {
	t.mode = m
	t.Reset()
}

// Reset pauses and reloads the current mode's duration.
func (t *Timer) Reset() {
	t.running = false
	t.left = int(t.mode.Duration() / time.Second)
}

// Toggle flips between running and paused.
func (t *Timer) Toggle() {
	t.running = !t.running
}

// Tick advances the timer by one elapsed second. A paused timer is frozen.
// When a running timer is already at zero it stops, moves on to the next
// mode and returns true so the caller can play a sound.
func (t *Timer) Tick() (finished bool) {
	if !t.running {
		return false
	}
	if t.left > 0 {
		t.left--
		return false
	}
	t.Switch(t.mode.next())
	return true
}

// Format renders the remaining time as MM:SS.
func (t *Timer) Format() string {
	return fmt.Sprintf("%02d:%02d", t.left/60, t.left%60)
}
