package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ToneGenerator is a sine with its first two harmonics under an attack/release envelope.
// It streams until length samples have been produced
type ToneGenerator struct {
	sr      beep.SampleRate
	freq    float64
	gain    float64
	pos     int
	length  int
	attack  int
	release int
}

// NewToneGenerator creates a tone of duration d
func NewToneGenerator(sr beep.SampleRate, freq, gain float64, d, attack, release time.Duration) *ToneGenerator {
	return &ToneGenerator{
		sr:      sr,
		freq:    freq,
		gain:    gain,
		length:  sr.N(d),
		attack:  sr.N(attack),
		release: sr.N(release),
	}
}

func (g *ToneGenerator) envelope() float64 {
	switch {
	case g.attack > 0 && g.pos < g.attack:
		return float64(g.pos) / float64(g.attack)
	case g.release > 0 && g.pos >= g.length-g.release:
		return math.Max(float64(g.length-g.pos)/float64(g.release), 0)
	}
	return 1
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.length {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.length {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)

		sample := 0.0
		sample += 0.6 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.3 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.1 * math.Sin(2*math.Pi*g.freq*3*t)
		sample *= g.envelope() * g.gain

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}
