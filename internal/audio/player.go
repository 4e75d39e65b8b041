package audio

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"tomatone/internal/config"
)

// chimeGain attenuates the synthesized sine so it peaks at 0.3, matching
// the noise bed's headroom.
const chimeGain = -0.7

// Player owns the speaker and the two sounds tomatone makes: the looping
// white-noise bed and the one-shot chime.
type Player struct {
	mu     sync.Mutex
	logger *slog.Logger

	// Volume control (0.0 to 1.0)
	volume float64

	// Whether speaker has been initialized
	initialized bool

	// Sample rate for the speaker
	sampleRate beep.SampleRate

	// White noise bed, paused while no work countdown is running.
	// Created lazily on first StartNoise.
	noiseAmplitude float64
	noiseCtrl      *beep.Ctrl

	// Chime parameters. If chimePath is set the chime is decoded from the
	// file, otherwise it is synthesized.
	chimeFreq float64
	chimeDur  time.Duration
	chimePath string

	// Decoded chime cache
	cache      map[string]*beep.Buffer
	cacheMutex sync.RWMutex
}

// NewPlayer creates a player from the audio configuration. The speaker is
// initialized lazily on first playback so that constructing a player on a
// machine without an audio device never fails.
func NewPlayer(cfg config.AudioConfig, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}

	chimeDur, err := time.ParseDuration(cfg.ChimeDuration)
	if err != nil || chimeDur <= 0 {
		chimeDur, _ = time.ParseDuration(config.DefaultChimeDuration)
	}

	volume := float64(cfg.Volume) / 100.0
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}

	return &Player{
		logger:         logger,
		volume:         volume,
		sampleRate:     beep.SampleRate(44100),
		noiseAmplitude: cfg.NoiseAmplitude,
		chimeFreq:      cfg.ChimeFrequency,
		chimeDur:       chimeDur,
		chimePath:      expandPath(cfg.ChimeFile),
		cache:          make(map[string]*beep.Buffer),
	}
}

// StartNoise begins (or unpauses) the looping white-noise bed.
func (p *Player) StartNoise() error {
	if err := p.ensureInitialized(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.noiseCtrl == nil {
		p.noiseCtrl = &beep.Ctrl{Streamer: Noise(p.noiseAmplitude)}
		speaker.Play(p.withVolume(p.noiseCtrl))
		p.logger.Debug("noise stream started", "amplitude", p.noiseAmplitude)
		return nil
	}

	speaker.Lock()
	p.noiseCtrl.Paused = false
	speaker.Unlock()
	return nil
}

// StopNoise pauses the white-noise bed. Safe to call when it never started.
func (p *Player) StopNoise() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.noiseCtrl == nil {
		return
	}

	speaker.Lock()
	p.noiseCtrl.Paused = true
	speaker.Unlock()
}

// PlayChime plays the end-of-interval chime once and returns without
// waiting for it to finish.
func (p *Player) PlayChime() error {
	return p.playChime(nil)
}

// PlayChimeAndWait plays the chime once and blocks until playback ends.
// Used by the chime preview command.
func (p *Player) PlayChimeAndWait() error {
	done := make(chan struct{})
	if err := p.playChime(func() { close(done) }); err != nil {
		return err
	}
	<-done
	return nil
}

// playChime queues the chime on the speaker. If finished is non-nil it is
// called from the speaker goroutine when the chime ends.
func (p *Player) playChime(finished func()) error {
	if err := p.ensureInitialized(); err != nil {
		return err
	}

	streamer, err := p.chimeStreamer()
	if err != nil {
		return err
	}

	streamer = p.withVolume(streamer)
	if finished != nil {
		streamer = beep.Seq(streamer, beep.Callback(finished))
	}

	speaker.Play(streamer)
	return nil
}

// chimeStreamer returns a fresh one-shot chime streamer: either the decoded
// chime file or a synthesized sine tone.
func (p *Player) chimeStreamer() (beep.Streamer, error) {
	if p.chimePath != "" {
		buffer, err := p.loadChime(p.chimePath)
		if err != nil {
			p.logger.Warn("failed to load chime file, falling back to synth", "path", p.chimePath, "error", err)
		} else {
			var streamer beep.Streamer = buffer.Streamer(0, buffer.Len())
			if buffer.Format().SampleRate != p.sampleRate {
				streamer = beep.Resample(4, buffer.Format().SampleRate, p.sampleRate, streamer)
			}
			return streamer, nil
		}
	}

	tone, err := generators.SineTone(p.sampleRate, p.chimeFreq)
	if err != nil {
		return nil, fmt.Errorf("failed to generate chime tone: %w", err)
	}

	return &effects.Gain{
		Streamer: beep.Take(p.sampleRate.N(p.chimeDur), tone),
		Gain:     chimeGain,
	}, nil
}

// loadChime loads and decodes a chime file, caching the result.
// Supports WAV, OGG, and MP3 formats.
func (p *Player) loadChime(path string) (*beep.Buffer, error) {
	p.cacheMutex.RLock()
	cached, ok := p.cache[path]
	p.cacheMutex.RUnlock()
	if ok {
		return cached, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chime file: %w", err)
	}
	defer func() { _ = f.Close() }()

	ext := strings.ToLower(filepath.Ext(path))

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode chime: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	p.cacheMutex.Lock()
	p.cache[path] = buffer
	p.cacheMutex.Unlock()

	return buffer, nil
}

// InvalidateChime removes the decoded chime for path from the cache so the
// next playback re-reads the file.
func (p *Player) InvalidateChime(path string) {
	p.cacheMutex.Lock()
	defer p.cacheMutex.Unlock()
	delete(p.cache, path)
}

// ChimePath returns the configured chime file path, if any.
func (p *Player) ChimePath() string {
	return p.chimePath
}

// Close stops all playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Close()
		p.initialized = false
		p.noiseCtrl = nil
	}
	p.logger.Debug("audio player closed")
}

// ensureInitialized initializes the speaker if not already done.
func (p *Player) ensureInitialized() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	// Use a reasonable buffer size for low latency
	bufferSize := p.sampleRate.N(time.Millisecond * 100)

	if err := speaker.Init(p.sampleRate, bufferSize); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	p.initialized = true
	p.logger.Debug("speaker initialized", "sample_rate", p.sampleRate)
	return nil
}

// withVolume applies the master volume to a streamer.
func (p *Player) withVolume(streamer beep.Streamer) beep.Streamer {
	if p.volume >= 1.0 {
		return streamer
	}
	return &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   volumeToDecibels(p.volume),
		Silent:   p.volume == 0,
	}
}

// volumeToDecibels converts a linear volume (0-1) to decibels.
// 0.5 = -6dB, 0.25 = -12dB, etc.
func volumeToDecibels(volume float64) float64 {
	if volume <= 0 {
		return -100 // Effectively silent
	}
	return 20 * math.Log10(volume)
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
