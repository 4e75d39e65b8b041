// Package audio provides the white-noise bed and completion chime.
// It uses the beep library to stream procedurally generated noise and
// to synthesize or play the end-of-interval chime, with volume control.
package audio
