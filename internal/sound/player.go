package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/math-arcade/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes effects onto the system speaker. A Player that failed to
// initialize, or was never asked to, silently drops every request.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer creates a player at the given volume (0..1).
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: math.Max(0, math.Min(1, volume)),
	}
}

// Initialize opens the speaker. Safe to call more than once.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether sounds will be heard.
func (p *Player) Enabled() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Play queues an effect.
func (p *Player) Play(e Effect) {
	if p == nil {
		return
	}
	s := Build(sampleRate, e)
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(p.withVolume(s))
	speaker.Unlock()
}

// PlayEvents plays the sound of each distinct event, once per tick.
func (p *Player) PlayEvents(events []core.Event) {
	seen := make(map[Effect]bool, len(events))
	for _, ev := range events {
		e := EffectFor(ev)
		if e == EffectNone || seen[e] {
			continue
		}
		seen[e] = true
		p.Play(e)
	}
}

func (p *Player) withVolume(s beep.Streamer) beep.Streamer {
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(math.Max(p.volume, 0.001)),
		Silent:   p.volume == 0,
	}
}

// Close stops everything still playing.
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
