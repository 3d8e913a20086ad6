package sound

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/math-arcade/internal/core"
)

// Effect names a sound effect.
type Effect int

const (
	EffectNone Effect = iota
	EffectSlice
	EffectCoin
	EffectMiss
	EffectLevelUp
	EffectGameOver
)

// EffectFor maps a game event to its sound.
func EffectFor(ev core.Event) Effect {
	switch ev {
	case core.EventHit:
		return EffectSlice
	case core.EventCoins:
		return EffectCoin
	case core.EventMiss:
		return EffectMiss
	case core.EventLevelUp:
		return EffectLevelUp
	case core.EventGameOver:
		return EffectGameOver
	default:
		return EffectNone
	}
}

// Build returns a finite streamer for an effect, or nil for EffectNone.
func Build(sr beep.SampleRate, e Effect) beep.Streamer {
	switch e {
	case EffectSlice:
		// Quick downward swish
		return NewTone(sr, 1800, 400, 90*time.Millisecond, WaveTriangle, 0.5)
	case EffectCoin:
		// Two rising blips
		return beep.Seq(
			NewTone(sr, 988, 988, 70*time.Millisecond, WaveSquare, 0.25),
			NewTone(sr, 1319, 1319, 160*time.Millisecond, WaveSquare, 0.25),
		)
	case EffectMiss:
		return NewTone(sr, 220, 110, 250*time.Millisecond, WaveSquare, 0.3)
	case EffectLevelUp:
		return beep.Seq(
			NewTone(sr, 523, 523, 90*time.Millisecond, WaveSine, 0.5),
			NewTone(sr, 659, 659, 90*time.Millisecond, WaveSine, 0.5),
			NewTone(sr, 784, 784, 90*time.Millisecond, WaveSine, 0.5),
			NewTone(sr, 1047, 1047, 250*time.Millisecond, WaveSine, 0.5),
		)
	case EffectGameOver:
		return beep.Seq(
			NewTone(sr, 392, 392, 180*time.Millisecond, WaveTriangle, 0.5),
			NewTone(sr, 330, 330, 180*time.Millisecond, WaveTriangle, 0.5),
			NewTone(sr, 262, 196, 400*time.Millisecond, WaveTriangle, 0.5),
		)
	default:
		return nil
	}
}
