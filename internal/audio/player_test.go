package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tomatone/internal/config"
)

// drain streams s to exhaustion, returning the total sample count and the
// peak absolute amplitude seen on the left channel.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()

	total := 0
	peak := 0.0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		total += n
		for _, sample := range buf[:n] {
			if a := math.Abs(sample[0]); a > peak {
				peak = a
			}
		}
		if !ok {
			return total, peak
		}
	}
}

func TestChimeStreamer_SynthLengthAndAmplitude(t *testing.T) {
	p := NewPlayer(config.AudioConfig{
		Enabled:        true,
		Volume:         100,
		ChimeFrequency: 880.0,
		ChimeDuration:  "600ms",
	}, nil)

	s, err := p.chimeStreamer()
	require.NoError(t, err)

	total, peak := drain(t, s)

	// 600ms at 44.1kHz
	assert.Equal(t, beep.SampleRate(44100).N(600*time.Millisecond), total)
	assert.Equal(t, 26460, total)

	// Sine at full scale through the -0.7 gain peaks at 0.3
	assert.InDelta(t, 0.3, peak, 0.01)
	assert.LessOrEqual(t, peak, 0.3+1e-9)
}

func TestChimeStreamer_LengthTracksDuration(t *testing.T) {
	p := NewPlayer(config.AudioConfig{
		Volume:         80,
		ChimeFrequency: 440.0,
		ChimeDuration:  "100ms",
	}, nil)

	s, err := p.chimeStreamer()
	require.NoError(t, err)

	total, _ := drain(t, s)
	assert.Equal(t, 4410, total)
}

func TestChimeStreamer_UnsupportedFileFallsBackToSynth(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chime.txt")
	require.NoError(t, os.WriteFile(path, []byte("not audio"), 0644))

	p := NewPlayer(config.AudioConfig{
		Volume:         80,
		ChimeFrequency: 880.0,
		ChimeDuration:  "100ms",
		ChimeFile:      path,
	}, nil)

	s, err := p.chimeStreamer()
	require.NoError(t, err)

	// The undecodable file is skipped and the synth chime is used instead
	total, peak := drain(t, s)
	assert.Equal(t, 4410, total)
	assert.InDelta(t, 0.3, peak, 0.01)
}

func TestLoadChime_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chime.txt")
	require.NoError(t, os.WriteFile(path, []byte("not audio"), 0644))

	p := NewPlayer(config.AudioConfig{Volume: 80, ChimeFile: path}, nil)

	_, err := p.loadChime(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported audio format")
}

func TestNewPlayer_InvalidChimeDurationUsesDefault(t *testing.T) {
	p := NewPlayer(config.AudioConfig{
		Volume:         80,
		ChimeFrequency: 880.0,
		ChimeDuration:  "bogus",
	}, nil)

	s, err := p.chimeStreamer()
	require.NoError(t, err)

	// Falls back to the 600ms default
	total, _ := drain(t, s)
	assert.Equal(t, 26460, total)
}
