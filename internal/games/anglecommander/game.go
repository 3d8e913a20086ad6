// Package anglecommander implements Angle Commander: a target angle is
// called out and the player turns a dial to match it. Perfect and close
// estimates pay coins.
package anglecommander

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/games/quiz"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

// GameID is the registry key for Angle Commander.
const GameID = "angle-commander"

const radius = 8 // protractor radius in rows

// Phase is the stage of a round.
type Phase int

const (
	PhaseEstimating Phase = iota
	PhaseResult
)

// Game implements Angle Commander.
type Game struct {
	opts    registry.Options
	cfg     config.AngleConfig
	aim     engine.AimResolver
	rng     *rand.Rand
	session engine.Session

	dial   *engine.ScalarControl
	target int
	phase  Phase
	result engine.Outcome

	score    engine.ScoreState
	round    int
	coins    int
	perfects int
	gameOver bool

	cx, cy int // protractor centre on screen
}

// New creates an Angle Commander instance.
func New(opts registry.Options) *Game {
	return &Game{opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Angle Commander"
}

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	var err error
	g.cfg, err = config.LoadAngle(g.opts.ConfigPath)
	if err != nil {
		g.cfg = config.DefaultAngleConfig()
	}
	config.ApplyAnglePreset(&g.cfg, g.opts.Difficulty)

	acc := g.cfg.Accuracy
	g.aim = engine.AimResolver{
		Perfect:       acc.PerfectTolerance,
		Close:         acc.CloseTolerance,
		PerfectReward: acc.PerfectReward,
		CloseReward:   acc.CloseReward,
	}
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.dial = engine.NewScalarControl(0, 360, float64(core.Max(g.cfg.Targets.DialStep, 1)), false, 0)

	g.score = engine.ScoreState{}
	g.round = 0
	g.coins = 0
	g.perfects = 0
	g.gameOver = false

	g.cx = cfg.ScreenW / 2
	g.cy = 3 + radius

	g.session.Start(cfg.TickRate)
	g.nextRound()
}

// Target returns the angle to match.
func Target(r *rand.Rand, step int) int {
	if step <= 0 {
		step = 5
	}
	t := r.Intn(360/step) * step
	if t == 0 {
		t = 360
	}
	return t
}

func (g *Game) nextRound() {
	g.target = Target(g.rng, g.cfg.Targets.Step)
	g.phase = PhaseEstimating
	g.result = engine.Outcome{}
}

// Dial returns the current dial setting in degrees.
func (g *Game) Dial() int {
	return g.dial.Int()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.session.TogglePause()
	}
	if _, ok := g.session.Frame(in.At); !ok {
		return core.StepResult{State: g.State()}
	}

	if g.phase == PhaseResult {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
			if g.cfg.Targets.Rounds > 0 && g.round >= g.cfg.Targets.Rounds {
				events := g.finish()
				return core.StepResult{State: g.State(), Events: events}
			}
			g.nextRound()
		}
		return core.StepResult{State: g.State()}
	}

	fine := float64(core.Max(g.cfg.Targets.DialStep, 1))
	fast := float64(core.Max(g.cfg.Targets.FastStep, 1))
	switch {
	case in.Has(core.ActionLeft):
		g.dial.Nudge(-fine)
	case in.Has(core.ActionRight):
		g.dial.Nudge(fine)
	case in.Has(core.ActionDown):
		g.dial.Nudge(-fast)
	case in.Has(core.ActionUp):
		g.dial.Nudge(fast)
	}
	for _, p := range in.Pointer {
		if p.Kind == core.PointerRelease {
			continue
		}
		if deg, ok := g.pointerAngle(p); ok {
			g.dial.Set(deg)
		}
	}

	var events []core.Event
	if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
		events = g.lockIn()
	}
	return core.StepResult{State: g.State(), Events: events}
}

// pointerAngle reads the dial angle under a pointer. Cells are twice as
// tall as they are wide.
func (g *Game) pointerAngle(p core.PointerSample) (float64, bool) {
	dx := (p.X - float64(g.cx)) / 2
	dy := float64(g.cy) - p.Y
	if dx == 0 && dy == 0 {
		return 0, false
	}
	return core.NormalizeDegrees(math.Atan2(dy, dx) * 180 / math.Pi), true
}

func (g *Game) lockIn() []core.Event {
	g.result = g.aim.Judge(g.dial.Value(), float64(g.target))
	g.phase = PhaseResult
	g.round++

	if g.result.Kind == engine.OutcomeMiss {
		g.score.Streak = 0
		return []core.Event{core.EventMiss}
	}
	if g.result.Kind == engine.OutcomePerfect {
		g.perfects++
	}
	g.score.Hit(g.result.Reward)
	g.coins += engine.Apply(g.opts.Sink(), g.result)
	g.opts.Sink().AddXP(g.result.Reward)
	return []core.Event{core.EventHit, core.EventCoins}
}

func (g *Game) finish() []core.Event {
	g.gameOver = true
	g.session.Stop()
	return []core.Event{core.EventGameOver}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	hud := fmt.Sprintf(" %s  Score: %d  Round: %d/%d  Coins: +%d ",
		g.Title(), g.score.Score, core.Min(g.round+1, g.cfg.Targets.Rounds), g.cfg.Targets.Rounds, g.coins)
	dst.DrawText(1, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	// Protractor rim with a tick every 30°.
	for deg := 0; deg < 360; deg += 5 {
		glyph, color := '·', core.ColorGray
		if deg%30 == 0 {
			glyph, color = '+', core.ColorWhite
		}
		v := core.Polar(float64(deg), radius)
		dst.SetColored(g.cx+int(math.Round(v.X*2)), g.cy+int(math.Round(v.Y)), glyph, color)
	}
	for _, deg := range []int{0, 90, 180, 270} {
		v := core.Polar(float64(deg), radius+1.5)
		label := fmt.Sprintf("%d°", deg)
		dst.DrawTextColored(g.cx+int(math.Round(v.X*2))-len(label)/2, g.cy+int(math.Round(v.Y)), label, core.ColorGray)
	}

	// Base arm and the player's arm.
	dst.DrawRay(g.cx, g.cy, 0, radius-1, '─', core.ColorGray)
	dst.DrawRay(g.cx, g.cy, g.dial.Value(), radius-1, '•', core.ColorBrightCyan)
	if g.phase == PhaseResult {
		dst.DrawRay(g.cx, g.cy, float64(g.target), radius-1, '◦', core.ColorBrightGreen)
	}
	dst.SetColored(g.cx, g.cy, '●', core.ColorBrightWhite)

	y := g.cy + radius + 2
	dst.DrawTextCenteredColored(y, fmt.Sprintf("Match this angle: %d°", g.target), core.ColorBrightYellow)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Your dial: %d°", g.Dial()))

	switch g.phase {
	case PhaseEstimating:
		dst.DrawTextCenteredColored(y+3, "←/→ ±1°  ↑/↓ ±10°  click to aim  Enter to lock in", core.ColorGray)
	case PhaseResult:
		var msg string
		var color core.Color
		switch g.result.Kind {
		case engine.OutcomePerfect:
			msg, color = fmt.Sprintf("PERFECT! Off by %.0f°  +%d coins", g.result.Diff, g.result.Reward), core.ColorBrightGreen
		case engine.OutcomeClose:
			msg, color = fmt.Sprintf("Close! Off by %.0f°  +%d coins", g.result.Diff, g.result.Reward), core.ColorBrightYellow
		default:
			msg, color = fmt.Sprintf("Missed by %.0f°", g.result.Diff), core.ColorBrightRed
		}
		dst.DrawTextCenteredColored(y+3, msg, color)
		dst.DrawTextCenteredColored(y+4, "Enter for the next angle", core.ColorGray)
	}

	if g.session.Paused() {
		quiz.DrawMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		stars := strings.Repeat("★", g.perfects)
		quiz.DrawMessage(dst, "MISSION COMPLETE", fmt.Sprintf("Score: %d  Perfect: %d %s | Press R to restart", g.score.Score, g.perfects, stars))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score.Score,
		GameOver: g.gameOver,
		Paused:   g.session.Paused(),
		Won:      g.gameOver,
	}
}

func init() {
	registry.Register(GameID, func(opts registry.Options) registry.Game {
		return New(opts)
	})
}
