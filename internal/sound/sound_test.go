package sound

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/math-arcade/internal/core"
)

func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			if buf[j][0] < -1 || buf[j][0] > 1 || buf[j][1] < -1 || buf[j][1] > 1 {
				t.Fatalf("sample out of range: %v", buf[j])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("streamer never finished")
	return total
}

func TestToneLength(t *testing.T) {
	sr := beep.SampleRate(44100)
	tone := NewTone(sr, 440, 880, 100*time.Millisecond, WaveSine, 0.8)

	if got := drain(t, tone); got != sr.N(100*time.Millisecond) {
		t.Errorf("tone produced %d samples, expected %d", got, sr.N(100*time.Millisecond))
	}
	if tone.Err() != nil {
		t.Errorf("unexpected error: %v", tone.Err())
	}
}

func TestToneWaves(t *testing.T) {
	sr := beep.SampleRate(8000)
	for _, w := range []Wave{WaveSine, WaveSquare, WaveTriangle} {
		tone := NewTone(sr, 300, 300, 50*time.Millisecond, w, 2) // gain clamps to 1
		if drain(t, tone) == 0 {
			t.Errorf("wave %d produced no samples", w)
		}
	}
}

func TestEffectsAreFinite(t *testing.T) {
	sr := beep.SampleRate(22050)
	for _, e := range []Effect{EffectSlice, EffectCoin, EffectMiss, EffectLevelUp, EffectGameOver} {
		s := Build(sr, e)
		if s == nil {
			t.Fatalf("effect %d has no streamer", e)
		}
		if drain(t, s) == 0 {
			t.Errorf("effect %d is empty", e)
		}
	}
	if Build(sr, EffectNone) != nil {
		t.Error("EffectNone should build nothing")
	}
}

func TestEffectFor(t *testing.T) {
	tests := map[core.Event]Effect{
		core.EventHit:      EffectSlice,
		core.EventCoins:    EffectCoin,
		core.EventMiss:     EffectMiss,
		core.EventLevelUp:  EffectLevelUp,
		core.EventGameOver: EffectGameOver,
		core.EventNone:     EffectNone,
	}
	for ev, want := range tests {
		if got := EffectFor(ev); got != want {
			t.Errorf("EffectFor(%d) = %d, expected %d", ev, got, want)
		}
	}
}

func TestUninitializedPlayerIsSilent(t *testing.T) {
	p := NewPlayer(0.5)
	if p.Enabled() {
		t.Error("player should start disabled")
	}
	// None of these may touch the speaker.
	p.Play(EffectCoin)
	p.PlayEvents([]core.Event{core.EventHit, core.EventHit})
	p.Close()

	var nilPlayer *Player
	nilPlayer.Play(EffectCoin)
	nilPlayer.Close()
}
