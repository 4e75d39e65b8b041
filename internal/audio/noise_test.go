package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoise_SamplesBoundedByAmplitude(t *testing.T) {
	const amplitude = 0.12
	s := Noise(amplitude)

	samples := make([][2]float64, 1024)
	n, ok := s.Stream(samples)

	require.True(t, ok)
	require.Equal(t, len(samples), n)

	for i, sample := range samples {
		assert.LessOrEqual(t, sample[0], amplitude, "sample %d left channel", i)
		assert.GreaterOrEqual(t, sample[0], -amplitude, "sample %d left channel", i)
		// Mono source: both channels carry the same value
		assert.Equal(t, sample[0], sample[1], "sample %d", i)
	}
}

func TestNoise_NeverDrains(t *testing.T) {
	s := Noise(0.5)

	for i := 0; i < 100; i++ {
		samples := make([][2]float64, 512)
		n, ok := s.Stream(samples)
		require.True(t, ok)
		require.Equal(t, 512, n)
	}
}

func TestNoise_ClampsAmplitude(t *testing.T) {
	s := Noise(5.0)

	samples := make([][2]float64, 256)
	_, ok := s.Stream(samples)
	require.True(t, ok)

	for _, sample := range samples {
		assert.LessOrEqual(t, sample[0], 1.0)
		assert.GreaterOrEqual(t, sample[0], -1.0)
	}
}

func TestNoise_ZeroAmplitudeIsSilent(t *testing.T) {
	s := Noise(0)

	samples := make([][2]float64, 64)
	_, ok := s.Stream(samples)
	require.True(t, ok)

	for _, sample := range samples {
		assert.Zero(t, sample[0])
		assert.Zero(t, sample[1])
	}
}

func TestVolumeToDecibels(t *testing.T) {
	assert.InDelta(t, 0, volumeToDecibels(1.0), 0.001)
	assert.InDelta(t, -6.02, volumeToDecibels(0.5), 0.01)
	assert.InDelta(t, -12.04, volumeToDecibels(0.25), 0.01)
	assert.Equal(t, -100.0, volumeToDecibels(0))
	assert.Equal(t, -100.0, volumeToDecibels(-1))
}
