package factorninja

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

var t0 = time.Unix(1_700_000_000, 0)

func newTestGame(t *testing.T) (*Game, *engine.Tally) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	tally := &engine.Tally{}
	g := New(registry.Options{Rewards: tally})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	return g, tally
}

func frameAt(at time.Time) core.InputFrame {
	in := core.NewInputFrame()
	in.At = at
	return in
}

// swipeAcross returns a frame whose pointer crosses the cell holding p.
func swipeAcross(g *Game, p core.Vec2, at time.Time) core.InputFrame {
	x, y := g.view.ToScreen(p)
	in := frameAt(at)
	in.AddPointer(core.PointerSample{X: float64(x - 3), Y: float64(y), Kind: core.PointerPress})
	in.AddPointer(core.PointerSample{X: float64(x + 3), Y: float64(y), Kind: core.PointerDrag})
	return in
}

func TestSpawnAtInterval(t *testing.T) {
	g, _ := newTestGame(t)

	g.Step(frameAt(t0))
	g.Step(frameAt(t0.Add(1199 * time.Millisecond)))
	if g.numbers.Len() != 0 {
		t.Fatalf("nothing should spawn before 1200ms, got %d", g.numbers.Len())
	}

	g.Step(frameAt(t0.Add(1200 * time.Millisecond)))
	if g.numbers.Len() != 1 {
		t.Fatalf("expected one number at 1200ms, got %d", g.numbers.Len())
	}

	e := g.numbers.All()[0]
	if e.Value < 4 || e.Value > 50 {
		t.Errorf("spawned value %d outside 4..50", e.Value)
	}
	if e.Vel.Y >= 0 {
		t.Errorf("numbers should be thrown upward, vel=%v", e.Vel)
	}
}

func TestSpawnThenSliceYieldsOneOutcome(t *testing.T) {
	g, tally := newTestGame(t)

	g.Step(frameAt(t0))
	g.Step(frameAt(t0.Add(1200 * time.Millisecond)))
	e := g.numbers.All()[0]

	// Same stamp as the previous frame: dt is zero, nothing moves.
	res := g.Step(swipeAcross(g, e.Pos, t0.Add(1200*time.Millisecond)))

	if g.numbers.Len() != 0 {
		t.Fatalf("sliced number should be removed, %d left", g.numbers.Len())
	}
	if core.IsPrime(e.Value) {
		if g.score.Lives != 2 {
			t.Errorf("prime slice should cost a life, lives=%d", g.score.Lives)
		}
		if tally.Coins != 0 {
			t.Errorf("prime slice paid %d coins", tally.Coins)
		}
	} else {
		if res.State.Score != 10 || tally.Coins != 10 {
			t.Errorf("composite slice: score=%d coins=%d, expected 10/10", res.State.Score, tally.Coins)
		}
	}
	if g.particles.Len() != g.cfg.Gameplay.Particles {
		t.Errorf("expected %d particles, got %d", g.cfg.Gameplay.Particles, g.particles.Len())
	}
}

func TestSliceScoring(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		wantScore int
		wantLives int
		wantCoins int
		wantEvent core.Event
	}{
		{"composite", 12, 10, 3, 10, core.EventHit},
		{"prime", 13, 0, 2, 0, core.EventMiss},
		{"square", 49, 10, 3, 10, core.EventHit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, tally := newTestGame(t)
			g.Step(frameAt(t0))

			e := g.numbers.Add(KindNumber, engine.Entity{Pos: core.V(500, 400), Radius: 32, Value: tt.value})
			res := g.Step(swipeAcross(g, e.Pos, t0))

			if res.State.Score != tt.wantScore {
				t.Errorf("score = %d, expected %d", res.State.Score, tt.wantScore)
			}
			if g.score.Lives != tt.wantLives {
				t.Errorf("lives = %d, expected %d", g.score.Lives, tt.wantLives)
			}
			if tally.Coins != tt.wantCoins {
				t.Errorf("coins = %d, expected %d", tally.Coins, tt.wantCoins)
			}
			if len(res.Events) == 0 || res.Events[0] != tt.wantEvent {
				t.Errorf("events = %v, expected first %v", res.Events, tt.wantEvent)
			}
		})
	}
}

func TestSimultaneousSlices(t *testing.T) {
	g, tally := newTestGame(t)
	g.Step(frameAt(t0))

	g.numbers.Add(KindNumber, engine.Entity{Pos: core.V(480, 400), Radius: 32, Value: 8})
	g.numbers.Add(KindNumber, engine.Entity{Pos: core.V(520, 400), Radius: 32, Value: 9})
	g.Step(swipeAcross(g, core.V(500, 400), t0))

	if g.numbers.Len() != 0 || tally.Coins != 20 {
		t.Errorf("both numbers should be sliced: left=%d coins=%d", g.numbers.Len(), tally.Coins)
	}
}

func TestPrimesEndTheGame(t *testing.T) {
	g, _ := newTestGame(t)
	g.Step(frameAt(t0))

	var res core.StepResult
	for i := 0; i < 3; i++ {
		e := g.numbers.Add(KindNumber, engine.Entity{Pos: core.V(500, 400), Radius: 32, Value: 7})
		res = g.Step(swipeAcross(g, e.Pos, t0))
	}

	if !res.State.GameOver {
		t.Fatal("three prime slices should end the game")
	}
	if res.Events[len(res.Events)-1] != core.EventGameOver {
		t.Errorf("expected GameOver event, got %v", res.Events)
	}

	// Further input is ignored.
	g.numbers.Add(KindNumber, engine.Entity{Pos: core.V(500, 400), Radius: 32, Value: 12})
	if res := g.Step(swipeAcross(g, core.V(500, 400), t0)); res.State.Score != 0 {
		t.Error("a finished game should not score")
	}
}

func TestKeyboardBlade(t *testing.T) {
	g, tally := newTestGame(t)
	g.Step(frameAt(t0))

	g.numbers.Add(KindNumber, engine.Entity{Pos: g.cursor.Add(core.V(10, 0)), Radius: 32, Value: 20})
	in := frameAt(t0)
	in.Set(core.ActionRight)
	g.Step(in)

	if tally.Coins != 10 {
		t.Errorf("moving the blade through a composite should slice it, coins=%d", tally.Coins)
	}
}

func TestFallenNumbersAreRemoved(t *testing.T) {
	g, _ := newTestGame(t)
	g.Step(frameAt(t0))

	g.numbers.Add(KindNumber, engine.Entity{Pos: core.V(500, 995), Vel: core.V(0, 100), Radius: 32, Value: 12})
	g.Step(frameAt(t0.Add(100 * time.Millisecond)))

	if g.numbers.Count(KindNumber) != 0 {
		t.Error("a number below the despawn margin should be pruned")
	}
	if g.score.Lives != 3 {
		t.Error("letting a number fall should not cost a life")
	}
}

func TestPauseFreezesSpawning(t *testing.T) {
	g, _ := newTestGame(t)
	g.Step(frameAt(t0))

	pause := frameAt(t0.Add(100 * time.Millisecond))
	pause.Set(core.ActionPause)
	if res := g.Step(pause); !res.State.Paused {
		t.Fatal("expected paused state")
	}

	g.Step(frameAt(t0.Add(5 * time.Second)))
	if g.numbers.Len() != 0 {
		t.Error("nothing should spawn while paused")
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() (int, int) {
		g, _ := newTestGame(t)
		for i := 0; i < 600; i++ {
			in := core.NewInputFrame()
			if i%4 == 0 {
				in.Set(core.ActionRight)
			} else if i%4 == 2 {
				in.Set(core.ActionLeft)
			}
			g.Step(in)
		}
		return g.score.Score, g.numbers.Len()
	}

	s1, n1 := run()
	s2, n2 := run()
	if s1 != s2 || n1 != n2 {
		t.Errorf("determinism failed: (%d,%d) vs (%d,%d)", s1, n1, s2, n2)
	}
}

func TestRenderDrawsHUD(t *testing.T) {
	g, _ := newTestGame(t)
	g.Step(frameAt(t0))
	g.numbers.Add(KindNumber, engine.Entity{Pos: core.V(500, 400), Radius: 32, Value: 42})

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if got := screen.Row(0); !strings.Contains(got, "Score: 0") {
		t.Errorf("HUD row missing score: %q", got)
	}
	if !strings.Contains(screen.String(), "(42)") {
		t.Error("number entity not rendered")
	}
}

func TestRenderLabelOverCursor(t *testing.T) {
	g, _ := newTestGame(t)
	g.Step(frameAt(t0))
	pos := core.V(300, 300)
	g.numbers.Add(KindNumber, engine.Entity{Pos: pos, Radius: 32, Value: 4})

	screen := core.NewScreen(80, 24)
	g.cursor = pos
	g.Render(screen)
	if !strings.Contains(screen.String(), "(4)") {
		t.Errorf("label hidden by the cursor: %q", screen.String())
	}

	g.cursor = core.V(700, 600)
	g.Render(screen)
	x, y := g.view.ToScreen(g.cursor)
	if got := screen.Get(x, y); got != CursorChar {
		t.Errorf("cursor cell = %q, expected %q", got, CursorChar)
	}
}
