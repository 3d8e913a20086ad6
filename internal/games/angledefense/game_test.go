package angledefense

import (
	"testing"
	"time"

	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

func newTestGame(t *testing.T) (*Game, *engine.Tally) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	tally := &engine.Tally{}
	g := New(registry.Options{Rewards: tally})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	return g, tally
}

type clock struct {
	at time.Time
}

func (c *clock) step(g *Game, d time.Duration, actions ...core.Action) core.StepResult {
	c.at = c.at.Add(d)
	in := core.NewInputFrame()
	in.At = c.at
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func TestEnemiesSpawnOnTheRim(t *testing.T) {
	g, _ := newTestGame(t)
	c := &clock{at: time.Unix(1, 0)}
	c.step(g, 0)
	c.step(g, 2600*time.Millisecond)

	enemies := g.Enemies()
	if len(enemies) != 1 {
		t.Fatalf("expected one enemy after the spawn interval, got %d", len(enemies))
	}
	e := enemies[0]
	if !e.Polar || e.Distance != 100 || int(e.Angle)%5 != 0 {
		t.Errorf("enemy %+v should start on the rim at a 5° bearing", e)
	}
}

func TestShotDestroysAlignedEnemy(t *testing.T) {
	g, tally := newTestGame(t)
	c := &clock{at: time.Unix(1, 0)}
	c.step(g, 0)
	c.step(g, 2600*time.Millisecond)

	target := g.Enemies()[0]
	g.turret.Set(target.Angle + 2)
	res := c.step(g, 10*time.Millisecond, core.ActionFire)

	if len(g.Enemies()) != 0 {
		t.Fatal("a perfect shot should destroy the enemy")
	}
	if res.State.Score != 10 || tally.Coins != 10 {
		t.Errorf("score=%d coins=%d, expected the perfect reward", res.State.Score, tally.Coins)
	}
}

func TestShotOutsideBandMisses(t *testing.T) {
	g, tally := newTestGame(t)
	c := &clock{at: time.Unix(1, 0)}
	c.step(g, 0)
	c.step(g, 2600*time.Millisecond)

	target := g.Enemies()[0]
	g.turret.Set(target.Angle + 45)
	res := c.step(g, 10*time.Millisecond, core.ActionFire)

	if len(g.Enemies()) != 1 || tally.Coins != 0 {
		t.Fatal("a wide shot should leave the enemy alive")
	}
	if len(res.Events) == 0 || res.Events[0] != core.EventMiss {
		t.Errorf("events = %v, expected a miss", res.Events)
	}
}

func TestOneShotOneKill(t *testing.T) {
	g, _ := newTestGame(t)
	c := &clock{at: time.Unix(1, 0)}
	c.step(g, 0)

	for _, angle := range []float64{40, 44} {
		g.enemies.Add(KindEnemy, engine.Entity{Polar: true, Angle: angle, Distance: 80})
	}
	g.turret.Set(42)
	c.step(g, 10*time.Millisecond, core.ActionFire)

	if n := len(g.Enemies()); n != 1 {
		t.Errorf("one shot left %d enemies, expected 1", n)
	}
}

func TestEnemyReachingCoreCostsLife(t *testing.T) {
	g, _ := newTestGame(t)
	c := &clock{at: time.Unix(1, 0)}
	c.step(g, 0)

	g.enemies.Add(KindEnemy, engine.Entity{Polar: true, Angle: 10, Distance: 7, Vel: core.V(-8, 0)})
	res := c.step(g, 500*time.Millisecond)

	if g.score.Lives != 2 || len(g.Enemies()) != 0 {
		t.Fatalf("lives=%d enemies=%d after a breach", g.score.Lives, len(g.Enemies()))
	}
	if res.Events[0] != core.EventMiss {
		t.Errorf("events = %v", res.Events)
	}
}

func TestGameOverWhenLivesRunOut(t *testing.T) {
	g, _ := newTestGame(t)
	c := &clock{at: time.Unix(1, 0)}
	c.step(g, 0)

	var res core.StepResult
	for i := 0; i < 3; i++ {
		g.enemies.Add(KindEnemy, engine.Entity{Polar: true, Angle: 90, Distance: 1})
		res = c.step(g, 10*time.Millisecond)
	}
	if !res.State.GameOver {
		t.Fatal("three breaches should end the game")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
}

func TestPointerAimsAndFires(t *testing.T) {
	g, _ := newTestGame(t)
	c := &clock{at: time.Unix(1, 0)}
	c.step(g, 0)
	g.enemies.Add(KindEnemy, engine.Entity{Polar: true, Angle: 0, Distance: 60})

	in := core.NewInputFrame()
	c.at = c.at.Add(10 * time.Millisecond)
	in.At = c.at
	in.AddPointer(core.PointerSample{X: float64(g.cx + 10), Y: float64(g.cy), Kind: core.PointerPress})
	g.Step(in)

	if g.Heading() != 0 || len(g.Enemies()) != 0 {
		t.Errorf("heading=%d enemies=%d after clicking due east", g.Heading(), len(g.Enemies()))
	}
}
