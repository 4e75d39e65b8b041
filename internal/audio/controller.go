package audio

import (
	"log/slog"

	"tomatone/internal/timer"
)

// Sink is the playback backend the controller drives. *Player implements
// it; tests substitute a fake.
type Sink interface {
	StartNoise() error
	StopNoise()
	PlayChime() error
	Close()
}

// Controller decides when the noise bed and the chime should sound.
//
// The rules: white noise plays while a work countdown is running and the
// user's noise toggle is on; breaks are always silent; the chime plays once
// per completed interval regardless of the toggle. Playback failures (no
// audio device, blocked output) are swallowed with a debug log, never
// surfaced to the user.
type Controller struct {
	logger  *slog.Logger
	sink    Sink
	enabled bool
}

// NewController creates a controller over the given sink. enabled is the
// master audio switch from the config; when false the controller never
// makes a sound.
func NewController(sink Sink, enabled bool, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		logger:  logger,
		sink:    sink,
		enabled: enabled,
	}
}

// Sync reconciles the noise bed with the current timer state and the user's
// noise toggle. Call it after every state change: start, pause, resume,
// reset, and toggle flips.
func (c *Controller) Sync(mode timer.Mode, running, noiseOn bool) {
	if c.enabled && mode == timer.ModeWork && running && noiseOn {
		if err := c.sink.StartNoise(); err != nil {
			c.logger.Debug("unable to start white noise", "error", err)
		}
		return
	}
	c.sink.StopNoise()
}

// Completed handles the end of an interval: the noise bed stops and the
// chime plays once, independent of the noise toggle.
func (c *Controller) Completed() {
	c.sink.StopNoise()

	if !c.enabled {
		return
	}
	if err := c.sink.PlayChime(); err != nil {
		c.logger.Debug("unable to play chime", "error", err)
	}
}

// Close releases the playback backend.
func (c *Controller) Close() {
	c.sink.Close()
}
