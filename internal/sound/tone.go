// Package sound synthesizes short arcade sound effects with beep.
// Nothing is sampled from disk; every effect is generated on the fly.
package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// Tone is a single note that sweeps from one frequency to another and
// decays linearly to silence over its duration.
type Tone struct {
	sr       beep.SampleRate
	from, to float64
	wave     Wave
	gain     float64
	pos      int
	total    int
	phase    float64
}

// NewTone creates a tone generator. from and to are in Hz.
func NewTone(sr beep.SampleRate, from, to float64, d time.Duration, wave Wave, gain float64) *Tone {
	return &Tone{
		sr:    sr,
		from:  from,
		to:    to,
		wave:  wave,
		gain:  math.Max(0, math.Min(1, gain)),
		total: sr.N(d),
	}
}

// Stream fills samples until the tone ends.
func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		progress := float64(t.pos) / float64(t.total)
		freq := t.from + (t.to-t.from)*progress
		t.phase += freq / float64(t.sr)
		t.phase -= math.Floor(t.phase)

		var v float64
		switch t.wave {
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}

		// Short attack avoids clicks; the rest decays to zero.
		attack := math.Min(float64(t.pos)/float64(t.sr.N(5*time.Millisecond)+1), 1)
		sample := v * t.gain * attack * (1 - progress)

		samples[i][0] = sample
		samples[i][1] = sample
		t.pos++
	}
	return len(samples), true
}

// Err always returns nil.
func (t *Tone) Err() error {
	return nil
}
