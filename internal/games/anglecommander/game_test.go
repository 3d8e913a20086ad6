package anglecommander

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

func TestTarget(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, step := range []int{5, 15} {
		for i := 0; i < 500; i++ {
			got := Target(r, step)
			if got <= 0 || got > 360 || got%step != 0 {
				t.Fatalf("Target(step=%d) = %d", step, got)
			}
		}
	}
}

func newTestGame(t *testing.T, opts registry.Options) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	g := New(opts)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3})
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

// dialTo turns the dial to deg with the arrow keys.
func dialTo(g *Game, deg int) {
	for g.Dial()+10 <= deg {
		press(g, core.ActionUp)
	}
	for g.Dial() < deg {
		press(g, core.ActionRight)
	}
	for g.Dial() > deg {
		press(g, core.ActionLeft)
	}
}

func TestScoringBands(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		coins  int
		kind   engine.OutcomeKind
	}{
		{"exact", 0, 10, engine.OutcomePerfect},
		{"perfect edge", 3, 10, engine.OutcomePerfect},
		{"close", 7, 5, engine.OutcomeClose},
		{"close edge", 10, 5, engine.OutcomeClose},
		{"miss", 11, 0, engine.OutcomeMiss},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tally := &engine.Tally{}
			g := newTestGame(t, registry.Options{Rewards: tally})
			press(g)

			aim := g.target - tt.offset
			if aim < 0 {
				aim = g.target + tt.offset
			}
			dialTo(g, aim)
			res := press(g, core.ActionConfirm)

			if g.result.Kind != tt.kind || tally.Coins != tt.coins {
				t.Errorf("target %d dial %d: kind=%v coins=%d", g.target, g.Dial(), g.result.Kind, tally.Coins)
			}
			if (tt.coins > 0) != (res.State.Score > 0) {
				t.Errorf("score %d for coins %d", res.State.Score, tt.coins)
			}
		})
	}
}

func TestFullTurnCountsAsZero(t *testing.T) {
	g := newTestGame(t, registry.Options{})
	g.target = 360
	g.dial.Set(0)
	press(g, core.ActionConfirm)
	if g.result.Kind != engine.OutcomePerfect {
		t.Errorf("0° against 360° graded %v", g.result.Kind)
	}
}

func TestRoundsEndSession(t *testing.T) {
	g := newTestGame(t, registry.Options{Difficulty: config.DifficultyEasy})
	if g.target%15 != 0 {
		t.Fatalf("easy targets should snap to 15°, got %d", g.target)
	}

	var res core.StepResult
	for i := 0; i < 10; i++ {
		press(g, core.ActionConfirm)
		res = press(g, core.ActionConfirm)
	}
	if !res.State.GameOver {
		t.Fatal("ten rounds should end the session")
	}
	if len(res.Events) != 1 || res.Events[0] != core.EventGameOver {
		t.Errorf("events = %v, expected game over on the same step", res.Events)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
}

func TestPointerAim(t *testing.T) {
	g := newTestGame(t, registry.Options{})
	in := core.NewInputFrame()
	in.AddPointer(core.PointerSample{X: float64(g.cx), Y: float64(g.cy - 5), Kind: core.PointerPress})
	g.Step(in)
	if g.Dial() != 90 {
		t.Errorf("pointer straight above the centre should aim at 90°, dial=%d", g.Dial())
	}
}
