// Package angledefense implements Angle Defense: enemies close in on a radar
// from every bearing, each tagged with its angle. Turn the turret to the
// bearing and fire before they reach the core.
package angledefense

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/games/quiz"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

// GameID is the registry key for Angle Defense.
const GameID = "angle-defense"

// KindEnemy tags radar enemies in the store.
const KindEnemy = "enemy"

const (
	radarRows = 9 // radar radius in rows
	flashTime = 250 * time.Millisecond
)

// Game implements Angle Defense.
type Game struct {
	opts    registry.Options
	cfg     config.AngleConfig
	diff    *config.DifficultyManager
	aim     engine.AimResolver
	session engine.Session

	enemies *engine.Store
	spawn   engine.SpawnTimer
	turret  *engine.ScalarControl

	score    engine.ScoreState
	coins    int
	kills    int
	gameOver bool

	last     engine.Outcome
	lastShot bool          // whether the latest shot hit
	flash    time.Duration // time left to show the latest shot

	cx, cy int
}

// New creates an Angle Defense instance.
func New(opts registry.Options) *Game {
	return &Game{opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Angle Defense"
}

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	var err error
	g.cfg, err = config.LoadAngle(g.opts.ConfigPath)
	if err != nil {
		g.cfg = config.DefaultAngleConfig()
	}
	config.ApplyAnglePreset(&g.cfg, g.opts.Difficulty)
	g.diff = config.NewDifficultyManager(g.cfg.Difficulty)

	acc := g.cfg.Accuracy
	g.aim = engine.AimResolver{
		Perfect:       acc.PerfectTolerance,
		Close:         acc.CloseTolerance,
		PerfectReward: acc.PerfectReward,
		CloseReward:   acc.CloseReward,
	}

	if g.enemies == nil {
		g.enemies = engine.NewStore(cfg.Seed)
	} else {
		g.enemies.Reset(cfg.Seed)
	}
	step := float64(core.Max(g.cfg.Targets.DialStep, 1))
	g.turret = engine.NewScalarControl(0, 360, step, true, 90)

	g.score = engine.ScoreState{Lives: g.cfg.Defense.Lives}
	g.coins = 0
	g.kills = 0
	g.gameOver = false
	g.flash = 0

	g.cx = cfg.ScreenW / 2
	g.cy = 2 + radarRows + 1

	g.session.Start(cfg.TickRate)
	g.spawn = engine.SpawnTimer{Interval: g.spawnInterval()}
}

func (g *Game) spawnInterval() time.Duration {
	base := time.Duration(g.cfg.Defense.SpawnIntervalMs) * time.Millisecond
	return g.diff.Interval(base, g.score.Score, g.session.Loop.Ticks())
}

// Heading returns the turret bearing in degrees.
func (g *Game) Heading() int {
	return g.turret.Int()
}

// Enemies returns the live enemies.
func (g *Game) Enemies() []engine.Entity {
	return g.enemies.All()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.session.TogglePause()
	}
	dt, ok := g.session.Frame(in.At)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	var events []core.Event
	g.enemies.Advance(dt)
	if g.flash > 0 {
		g.flash -= dt
	}

	// Every enemy that reached the core costs a life.
	reached := g.enemies.Prune(func(e engine.Entity) bool {
		return e.Distance <= g.cfg.Defense.CoreRadius
	})
	for range reached {
		events = append(events, core.EventMiss)
		if g.score.Miss() {
			g.finish()
			return core.StepResult{State: g.State(), Events: append(events, core.EventGameOver)}
		}
	}

	if g.spawn.Accumulate(dt) {
		g.spawnEnemy()
		g.spawn.Interval = g.spawnInterval()
	}

	g.steer(in)
	if in.Has(core.ActionFire) || in.Has(core.ActionConfirm) || g.clicked(in) {
		events = append(events, g.fire()...)
	}
	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) steer(in core.InputFrame) {
	fine := float64(core.Max(g.cfg.Targets.DialStep, 1))
	fast := float64(core.Max(g.cfg.Targets.FastStep, 1))
	switch {
	case in.Has(core.ActionLeft):
		g.turret.Nudge(fine)
	case in.Has(core.ActionRight):
		g.turret.Nudge(-fine)
	case in.Has(core.ActionUp):
		g.turret.Nudge(fast)
	case in.Has(core.ActionDown):
		g.turret.Nudge(-fast)
	}
	for _, p := range in.Pointer {
		if deg, ok := g.pointerAngle(p); ok && p.Kind != core.PointerRelease {
			g.turret.Set(deg)
		}
	}
}

// clicked reports a pointer press, which aims and fires in one go.
func (g *Game) clicked(in core.InputFrame) bool {
	for _, p := range in.Pointer {
		if p.Kind == core.PointerPress {
			return true
		}
	}
	return false
}

// pointerAngle reads a bearing from the radar centre. Cells are twice as
// tall as they are wide.
func (g *Game) pointerAngle(p core.PointerSample) (float64, bool) {
	dx := (p.X - float64(g.cx)) / 2
	dy := float64(g.cy) - p.Y
	if dx == 0 && dy == 0 {
		return 0, false
	}
	return core.NormalizeDegrees(math.Atan2(dy, dx) * 180 / math.Pi), true
}

// fire shoots along the turret heading. At most one enemy is destroyed.
func (g *Game) fire() []core.Event {
	g.flash = flashTime
	out, hit := g.aim.ResolveShot(g.turret.Value(), KindEnemy, g.enemies)
	g.last, g.lastShot = out, hit
	if !hit {
		g.score.Streak = 0
		return []core.Event{core.EventMiss}
	}

	g.kills++
	g.score.Hit(out.Reward)
	g.coins += engine.Apply(g.opts.Sink(), out)
	g.opts.Sink().AddXP(out.Reward)
	return []core.Event{core.EventHit, core.EventCoins}
}

// spawnEnemy places an enemy on the rim at a bearing that is a multiple of
// the target step.
func (g *Game) spawnEnemy() engine.Entity {
	d := g.cfg.Defense
	speed := g.diff.Speed(d.EnemySpeed, g.score.Score, g.session.Loop.Ticks())
	step := core.Max(g.cfg.Targets.Step, 1)
	return g.enemies.Spawn(KindEnemy, func(r *rand.Rand) engine.Entity {
		angle := float64(r.Intn(360/step) * step)
		return engine.Entity{
			Polar:    true,
			Angle:    angle,
			Distance: d.StartDistance,
			Vel:      core.V(-speed, 0),
			Label:    strconv.Itoa(int(angle)) + "°",
			Color:    core.ColorBrightRed,
		}
	})
}

func (g *Game) finish() {
	g.gameOver = true
	g.session.Stop()
}

// toScreen maps a radar bearing and distance to a cell.
func (g *Game) toScreen(angle, distance float64) (int, int) {
	r := distance / g.cfg.Defense.StartDistance * radarRows
	v := core.Polar(angle, r)
	return g.cx + int(math.Round(v.X*2)), g.cy + int(math.Round(v.Y))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	hud := fmt.Sprintf(" %s  Score: %d  Lives: %s  Kills: %d  Coins: +%d ",
		g.Title(), g.score.Score, strings.Repeat("♥", g.score.Lives), g.kills, g.coins)
	dst.DrawText(1, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	// Radar rings.
	for _, frac := range []float64{1, 0.5} {
		for deg := 0; deg < 360; deg += 4 {
			x, y := g.toScreen(float64(deg), g.cfg.Defense.StartDistance*frac)
			dst.SetColored(x, y, '·', core.ColorGreen)
		}
	}
	for deg := 0; deg < 360; deg += 90 {
		x, y := g.toScreen(float64(deg), g.cfg.Defense.StartDistance*1.15)
		label := strconv.Itoa(deg) + "°"
		dst.DrawTextColored(x-len(label)/2, y, label, core.ColorGray)
	}

	// Turret beam: bright right after a shot.
	beam, color := '·', core.ColorBrightCyan
	if g.flash > 0 {
		beam, color = '━', core.ColorBrightYellow
		if g.lastShot {
			beam = '*'
		}
	}
	dst.DrawRay(g.cx, g.cy, g.turret.Value(), radarRows, beam, color)
	dst.SetColored(g.cx, g.cy, '◉', core.ColorBrightWhite)

	for _, e := range g.enemies.All() {
		x, y := g.toScreen(e.Angle, e.Distance)
		dst.SetColored(x, y, 'ʘ', e.Color)
		dst.DrawTextColored(x+1, y, e.Label, core.ColorRed)
	}

	dst.DrawTextCentered(g.cy+radarRows+2, fmt.Sprintf("Turret %d°   ←/→ ±1°  ↑/↓ ±10°  Space to fire", g.Heading()))
	if g.flash > 0 && g.lastShot {
		dst.DrawTextCenteredColored(g.cy+radarRows+3, fmt.Sprintf("%s hit! Off by %.0f°  +%d", strings.ToUpper(g.last.Kind.String()), g.last.Diff, g.last.Reward), core.ColorBrightGreen)
	}

	if g.session.Paused() {
		quiz.DrawMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		quiz.DrawMessage(dst, "CORE BREACHED", fmt.Sprintf("Score: %d  Kills: %d | Press R to restart", g.score.Score, g.kills))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score.Score,
		GameOver: g.gameOver,
		Paused:   g.session.Paused(),
	}
}

func init() {
	registry.Register(GameID, func(opts registry.Options) registry.Game {
		return New(opts)
	})
}
