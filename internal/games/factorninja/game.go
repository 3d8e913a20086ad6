// Package factorninja implements Factor Ninja: numbers are tossed up from
// the bottom of the field and the player slices composites with the mouse
// (or a keyboard-steered blade) while leaving primes alone.
package factorninja

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

// GameID is the registry key for Factor Ninja.
const GameID = "factor-ninja"

// Entity kinds
const (
	KindNumber   = "number"
	KindParticle = "particle"
)

// Particle tuning, world units
const (
	particleTTL     = 800 * time.Millisecond
	particleGravity = 360.0
	particleMinV    = 120.0
	particleMaxV    = 420.0
)

// Visual characters for rendering
const (
	BladeChar    = '·'
	CursorChar   = '+'
	ParticleChar = '*'
)

// Game implements Factor Ninja.
type Game struct {
	opts    registry.Options
	cfg     config.FactorNinjaConfig
	diff    *config.DifficultyManager
	runtime core.RuntimeConfig
	view    engine.Viewport

	session   engine.Session
	numbers   *engine.Store
	particles *engine.Store
	trail     *engine.Trail
	resolver  *engine.SliceResolver
	spawn     engine.SpawnTimer
	score     engine.ScoreState

	cursor   core.Vec2 // keyboard blade position, world units
	sliced   int
	coins    int
	gameOver bool
}

// New creates a Factor Ninja instance.
func New(opts registry.Options) *Game {
	g := &Game{opts: opts}
	g.resolver = engine.NewSliceResolver(g.classify)
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Factor Ninja"
}

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg

	gameCfg, err := config.LoadFactorNinja(g.opts.ConfigPath)
	if err != nil {
		gameCfg = config.DefaultFactorNinjaConfig()
	}
	config.ApplyFactorNinjaPreset(&gameCfg, g.opts.Difficulty)
	g.cfg = gameCfg
	g.diff = config.NewDifficultyManager(gameCfg.Difficulty)

	g.view = engine.Viewport{
		WorldW:  gameCfg.World.Width,
		WorldH:  gameCfg.World.Height,
		ScreenW: cfg.ScreenW,
		ScreenH: cfg.ScreenH,
		Top:     1,
	}

	if g.numbers == nil {
		g.numbers = engine.NewStore(cfg.Seed)
		g.particles = engine.NewStore(cfg.Seed + 1)
		g.trail = engine.NewTrail(engine.DefaultTrailLen)
	} else {
		g.numbers.Reset(cfg.Seed)
		g.particles.Reset(cfg.Seed + 1)
		g.trail.Clear()
	}
	g.resolver.Reset()

	g.spawn = engine.SpawnTimer{Interval: g.spawnInterval()}
	g.score = engine.ScoreState{Lives: gameCfg.Gameplay.Lives}
	g.cursor = core.V(gameCfg.World.Width/2, gameCfg.World.Height/2)
	g.sliced = 0
	g.coins = 0
	g.gameOver = false

	g.session.Start(cfg.TickRate)
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

	// Move everything, then drop what fell away or burned out.
	g.numbers.Advance(dt)
	g.particles.Advance(dt)
	g.numbers.Prune(g.fellAway)
	g.particles.Prune(engine.Expired())

	if g.spawn.Accumulate(dt) {
		g.spawnNumber()
		g.spawn.Interval = g.spawnInterval()
	}

	var events []core.Event
	for _, o := range g.captureAndResolve(in) {
		events = append(events, g.apply(o)...)
		if g.gameOver {
			break
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

// captureAndResolve feeds every buffered blade movement into the trail and
// resolves each new segment as it arrives.
func (g *Game) captureAndResolve(in core.InputFrame) []engine.Outcome {
	var outcomes []engine.Outcome

	for _, p := range in.Pointer {
		if p.Kind == core.PointerRelease {
			g.trail.Clear()
			continue
		}
		if p.Kind == core.PointerPress {
			g.trail.Clear()
		}
		w := g.view.ToWorld(p.X, p.Y)
		g.trail.Append(engine.TrailPoint{X: w.X, Y: w.Y, At: p.At})
		outcomes = append(outcomes, g.resolver.Resolve(g.trail, g.numbers)...)
	}

	// Keyboard blade: each arrow press moves the cursor one cell.
	cellW, cellH := g.cellSize()
	var move core.Vec2
	switch {
	case in.Has(core.ActionLeft):
		move.X = -cellW
	case in.Has(core.ActionRight):
		move.X = cellW
	}
	switch {
	case in.Has(core.ActionUp):
		move.Y = -cellH
	case in.Has(core.ActionDown):
		move.Y = cellH
	}
	if move != (core.Vec2{}) {
		if g.trail.Len() == 0 {
			g.trail.Append(engine.TrailPoint{X: g.cursor.X, Y: g.cursor.Y, At: in.At})
		}
		g.cursor = core.V(
			core.ClampF(g.cursor.X+move.X, 0, g.cfg.World.Width),
			core.ClampF(g.cursor.Y+move.Y, 0, g.cfg.World.Height),
		)
		g.trail.Append(engine.TrailPoint{X: g.cursor.X, Y: g.cursor.Y, At: in.At})
		outcomes = append(outcomes, g.resolver.Resolve(g.trail, g.numbers)...)
	}

	return outcomes
}

// classify: composites are good slices, primes cost a life.
func (g *Game) classify(e engine.Entity) (engine.OutcomeKind, int) {
	if core.IsPrime(e.Value) {
		return engine.OutcomeBad, 0
	}
	return engine.OutcomeGood, g.cfg.Gameplay.SliceCoins
}

// apply credits one slice and bursts particles where it happened.
func (g *Game) apply(o engine.Outcome) []core.Event {
	g.burst(o)

	if o.Kind == engine.OutcomeBad {
		if g.score.Miss() {
			g.gameOver = true
			g.session.Stop()
			return []core.Event{core.EventMiss, core.EventGameOver}
		}
		return []core.Event{core.EventMiss}
	}

	g.sliced++
	g.score.Hit(g.cfg.Gameplay.SlicePoints)
	g.opts.Sink().AddXP(g.cfg.Gameplay.SlicePoints)
	if n := engine.Apply(g.opts.Sink(), o); n > 0 {
		g.coins += n
		return []core.Event{core.EventHit, core.EventCoins}
	}
	return []core.Event{core.EventHit}
}

func (g *Game) spawnNumber() {
	w := g.cfg.World
	sp := g.cfg.Spawn
	ph := g.cfg.Physics
	score, ticks := g.score.Score, g.session.Loop.Ticks()
	maxValue := g.diff.MaxValue(sp.MaxValue, score, ticks)
	speed := g.diff.Speed(1, score, ticks)

	g.numbers.Spawn(KindNumber, func(r *rand.Rand) engine.Entity {
		x := sp.Margin + r.Float64()*math.Max(w.Width-2*sp.Margin, 0)
		launch := ph.LaunchMin + r.Float64()*(ph.LaunchMax-ph.LaunchMin)
		vx := (w.Width/2-x)*ph.DriftFactor + (r.Float64()*2-1)*ph.DriftJitter
		return engine.Entity{
			Pos:    core.V(x, w.Height+sp.Margin),
			Vel:    core.V(vx*speed, -launch*math.Sqrt(speed)),
			Accel:  core.V(0, ph.Gravity*speed),
			Radius: sp.Radius,
			Value:  engine.IntBetween(r, sp.MinValue, maxValue),
		}
	})
}

// burst throws a ring of particles out of a sliced number.
func (g *Game) burst(o engine.Outcome) {
	n := g.cfg.Gameplay.Particles
	color := core.ColorBrightYellow
	if o.Kind == engine.OutcomeBad {
		color = core.ColorBrightRed
	}
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		g.particles.Spawn(KindParticle, func(r *rand.Rand) engine.Entity {
			speed := particleMinV + r.Float64()*(particleMaxV-particleMinV)
			return engine.Entity{
				Pos:    o.Entity.Pos,
				Vel:    core.V(math.Cos(angle)*speed, math.Sin(angle)*speed),
				Accel:  core.V(0, particleGravity),
				TTL:    particleTTL,
				HasTTL: true,
				Color:  color,
			}
		})
	}
}

// fellAway matches numbers that dropped below the field.
func (g *Game) fellAway(e engine.Entity) bool {
	return e.Pos.Y > g.cfg.World.Height+g.cfg.Spawn.DespawnMargin
}

func (g *Game) spawnInterval() time.Duration {
	base := time.Duration(g.cfg.Spawn.IntervalMs) * time.Millisecond
	return g.diff.Interval(base, g.score.Score, g.session.Loop.Ticks())
}

func (g *Game) cellSize() (float64, float64) {
	w, h := g.runtime.ScreenW, g.runtime.ScreenH-g.view.Top
	if w <= 0 || h <= 0 {
		return g.cfg.Spawn.Radius, g.cfg.Spawn.Radius
	}
	return g.cfg.World.Width / float64(w), g.cfg.World.Height / float64(h)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.view.ScreenW, g.view.ScreenH = dst.Width(), dst.Height()

	for _, p := range g.particles.All() {
		x, y := g.view.ToScreen(p.Pos)
		if y > 0 {
			dst.SetColored(x, y, ParticleChar, p.Color)
		}
	}

	for _, p := range g.trail.Points() {
		x, y := g.view.ToScreen(p.Vec())
		if y > 0 {
			dst.SetColored(x, y, BladeChar, core.ColorBrightCyan)
		}
	}
	cx, cy := g.view.ToScreen(g.cursor)
	if cy > 0 {
		dst.SetColored(cx, cy, CursorChar, core.ColorCyan)
	}

	// Labels go on top of the blade so values stay readable.
	for _, e := range g.numbers.All() {
		x, y := g.view.ToScreen(e.Pos)
		if y <= 0 || y >= dst.Height() {
			continue
		}
		label := fmt.Sprintf("(%d)", e.Value)
		dst.DrawTextColored(x-len(label)/2, y, label, core.ColorBrightWhite)
	}

	// HUD
	hud := fmt.Sprintf(" Score: %d  Lives: %s  Coins: +%d ", g.score.Score, hearts(g.score.Lives), g.coins)
	dst.DrawText(1, 0, hud)
	dst.DrawTextColored(dst.Width()-22, 0, "slice composites only", core.ColorGray)

	if g.session.Paused() {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  Sliced: %d  |  Press R to restart", g.score.Score, g.sliced))
	}
}

func hearts(n int) string {
	return strings.Repeat("♥", n)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
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
