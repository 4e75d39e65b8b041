// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultVolume         = 80
	DefaultNoiseAmplitude = 0.12
	DefaultChimeFrequency = 880.0
	DefaultChimeDuration  = "600ms"
	DefaultExpireTimeout  = 5000
)

// Config represents the tomatone configuration.
//
// Countdown durations are intentionally absent: the work and break presets
// are fixed and live in the timer package.
type Config struct {
	Audio     AudioConfig     `toml:"audio"`
	Notify    NotifyConfig    `toml:"notify"`
	TUI       TUIConfig       `toml:"tui"`
	Clipboard ClipboardConfig `toml:"clipboard"`
}

// AudioConfig holds sound playback options.
type AudioConfig struct {
	Enabled        bool    `toml:"enabled"`         // Master switch for all sound
	Volume         int     `toml:"volume"`          // 0-100
	NoiseAmplitude float64 `toml:"noise_amplitude"` // White noise level, 0.0-1.0 (keep below 0.3 to avoid clipping)
	ChimeFrequency float64 `toml:"chime_frequency"` // Synth chime pitch in Hz
	ChimeDuration  string  `toml:"chime_duration"`  // Synth chime length (Go duration string)
	ChimeFile      string  `toml:"chime_file"`      // Optional WAV/OGG/MP3 file; empty = synthesized chime
}

// NotifyConfig holds desktop notification options.
type NotifyConfig struct {
	Enabled       bool `toml:"enabled"`
	ExpireTimeout int  `toml:"expire_timeout_ms"` // Notification timeout in milliseconds
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	NoiseDefault bool `toml:"noise_default"` // Initial state of the white-noise toggle
	ShowKeybinds bool `toml:"show_keybinds"`
}

// ClipboardConfig holds clipboard settings.
type ClipboardConfig struct {
	Command string `toml:"command"` // Auto-detected if empty
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Audio: AudioConfig{
			Enabled:        true,
			Volume:         DefaultVolume,
			NoiseAmplitude: DefaultNoiseAmplitude,
			ChimeFrequency: DefaultChimeFrequency,
			ChimeDuration:  DefaultChimeDuration,
			ChimeFile:      "",
		},
		Notify: NotifyConfig{
			Enabled:       true,
			ExpireTimeout: DefaultExpireTimeout,
		},
		TUI: TUIConfig{
			NoiseDefault: true,
			ShowKeybinds: true,
		},
		Clipboard: ClipboardConfig{
			Command: "", // Auto-detect
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tomatone", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
