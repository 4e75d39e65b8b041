// Package timer implements the pomodoro countdown engine.
package timer

import (
	"fmt"
	"time"
)

// Mode identifies which interval preset the engine is counting down.
type Mode int

const (
	ModeWork Mode = iota
	ModeBreak
)

// Interval presets. These are fixed by design; the app deliberately has no
// knobs for them.
const (
	WorkDuration  = 25 * time.Minute
	BreakDuration = 5 * time.Minute
)

// ModeNames maps modes to human-readable names.
var ModeNames = map[Mode]string{
	ModeWork:  "work",
	ModeBreak: "break",
}

// String returns the human-readable mode name.
func (m Mode) String() string {
	if name, ok := ModeNames[m]; ok {
		return name
	}
	return "unknown"
}

// Duration returns the preset countdown length for the mode.
func (m Mode) Duration() time.Duration {
	if m == ModeBreak {
		return BreakDuration
	}
	return WorkDuration
}

// Engine holds the countdown state: the current mode, the remaining whole
// seconds, and whether the countdown is running. It is pure state plus
// transitions; callers drive it with one Tick per wall-clock second.
//
// The engine is not safe for concurrent use. The TUI event loop is the only
// mutator, matching the single-threaded model of the app.
type Engine struct {
	mode      Mode
	remaining int
	running   bool
	paused    bool
}

// NewEngine creates an engine idle in work mode with the full work preset
// loaded, ready to start.
func NewEngine() *Engine {
	return &Engine{
		mode:      ModeWork,
		remaining: int(WorkDuration.Seconds()),
	}
}

// Start loads the preset for the given mode and begins running. Calling
// Start while a countdown is already running abandons it and restarts into
// the new mode.
func (e *Engine) Start(mode Mode) {
	e.mode = mode
	e.remaining = int(mode.Duration().Seconds())
	e.running = true
	e.paused = false
}

// Tick advances the countdown by one second. It returns true exactly once:
// on the tick that brings the remaining time to zero. Ticks while the engine
// is not running are ignored, and the remaining time never goes negative.
func (e *Engine) Tick() (completed bool) {
	if !e.running {
		return false
	}

	if e.remaining > 0 {
		e.remaining--
	}

	if e.remaining == 0 {
		e.running = false
		return true
	}
	return false
}

// Pause stops ticking without touching the remaining time. Pausing an
// engine that is not running has no effect.
func (e *Engine) Pause() {
	if e.running {
		e.paused = true
	}
	e.running = false
}

// Resume continues a paused countdown. A finished countdown cannot be
// resumed; it has to be restarted with Start.
func (e *Engine) Resume() {
	if e.remaining > 0 {
		e.running = true
		e.paused = false
	}
}

// Reset stops ticking and restores the preset for the current mode.
func (e *Engine) Reset() {
	e.running = false
	e.paused = false
	e.remaining = int(e.mode.Duration().Seconds())
}

// Mode returns the current interval mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Remaining returns the remaining whole seconds.
func (e *Engine) Remaining() int {
	return e.remaining
}

// Running reports whether the countdown is ticking.
func (e *Engine) Running() bool {
	return e.running
}

// Paused reports whether the countdown was stopped mid-interval with Pause,
// as opposed to being idle, reset, or finished. It holds even before the
// first tick, when the remaining time still equals the full preset.
func (e *Engine) Paused() bool {
	return e.paused
}

// Clock formats the remaining time as mm:ss.
func (e *Engine) Clock() string {
	minutes := e.remaining / 60
	seconds := e.remaining % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
