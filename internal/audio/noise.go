package audio

import (
	"math/rand/v2"

	"github.com/gopxl/beep/v2"
)

// Noise returns an endless stream of uniformly distributed white noise
// scaled to the given amplitude. Amplitudes above ~0.3 start to sound
// harsh on most speakers; the default config stays well below that.
func Noise(amplitude float64) beep.Streamer {
	if amplitude < 0 {
		amplitude = 0
	}
	if amplitude > 1 {
		amplitude = 1
	}

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := (rand.Float64()*2 - 1) * amplitude
			samples[i][0] = v
			samples[i][1] = v
		}
		return len(samples), true
	})
}
