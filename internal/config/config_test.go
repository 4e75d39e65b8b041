package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 80, cfg.Audio.Volume)
	assert.Equal(t, 0.12, cfg.Audio.NoiseAmplitude)
	assert.Equal(t, 880.0, cfg.Audio.ChimeFrequency)
	assert.Equal(t, "600ms", cfg.Audio.ChimeDuration)
	assert.Empty(t, cfg.Audio.ChimeFile)
	assert.True(t, cfg.Notify.Enabled)
	assert.Equal(t, 5000, cfg.Notify.ExpireTimeout)
	assert.True(t, cfg.TUI.NoiseDefault)
	assert.True(t, cfg.TUI.ShowKeybinds)
	assert.Empty(t, cfg.Clipboard.Command)
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Audio.Volume, cfg.Audio.Volume)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[audio]
enabled = false
volume = 40
noise_amplitude = 0.2
chime_frequency = 440.0
chime_duration = "1s"
chime_file = "~/sounds/bell.wav"

[notify]
enabled = false
expire_timeout_ms = 2500

[tui]
noise_default = false
show_keybinds = false

[clipboard]
command = "xclip"
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 40, cfg.Audio.Volume)
	assert.Equal(t, 0.2, cfg.Audio.NoiseAmplitude)
	assert.Equal(t, 440.0, cfg.Audio.ChimeFrequency)
	assert.Equal(t, "1s", cfg.Audio.ChimeDuration)
	assert.Equal(t, "~/sounds/bell.wav", cfg.Audio.ChimeFile)
	assert.False(t, cfg.Notify.Enabled)
	assert.Equal(t, 2500, cfg.Notify.ExpireTimeout)
	assert.False(t, cfg.TUI.NoiseDefault)
	assert.False(t, cfg.TUI.ShowKeybinds)
	assert.Equal(t, "xclip", cfg.Clipboard.Command)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[audio]
volume = 25
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Changed field
	assert.Equal(t, 25, cfg.Audio.Volume)

	// Unchanged fields should have defaults
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 880.0, cfg.Audio.ChimeFrequency)
	assert.True(t, cfg.Notify.Enabled)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `this is not valid toml [`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Audio.Volume = 55
	cfg.Audio.ChimeFile = "/tmp/bell.ogg"

	err := cfg.Save(path)
	require.NoError(t, err)

	// Reload and verify
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 55, loaded.Audio.Volume)
	assert.Equal(t, "/tmp/bell.ogg", loaded.Audio.ChimeFile)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/tomatone/config.toml", ConfigPath())
}

func TestConfigPathDefault(t *testing.T) {
	path := ConfigPath()
	assert.Contains(t, path, "tomatone/config.toml")
}
