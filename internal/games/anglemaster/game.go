// Package anglemaster implements Angle Master: a ten-round quiz that
// alternates between naming a drawn angle and spotting an angle among three
// drawings.
package anglemaster

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/games/quiz"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

// GameID is the registry key for Angle Master.
const GameID = "angle-master"

// Mode is the kind of round.
type Mode int

const (
	ModeGuessDegree Mode = iota // one drawing, four degree options
	ModeFindAngle               // three drawings, pick the requested one
)

// Angle pools per level.
var levelAngles = map[int][]int{
	1: {30, 45, 60, 90, 180},
	2: {15, 30, 45, 60, 75, 90, 105, 120, 135, 150, 180},
	3: {10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120, 130, 140, 150, 160, 170, 180},
}

// round is the drawing data of one question.
type round struct {
	mode    Mode
	target  int
	degrees []int // option angles in display order
}

// Game implements Angle Master.
type Game struct {
	opts registry.Options
	quiz quiz.Runner
}

// New creates an Angle Master instance.
func New(opts registry.Options) *Game {
	return &Game{opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Angle Master"
}

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	qc, err := config.LoadQuiz(GameID, g.opts.ConfigPath)
	if err != nil {
		qc = config.DefaultQuizConfig()
	}
	config.ApplyQuizPreset(&qc, g.opts.Difficulty)
	qc.StartLevel = levelForPreset(g.opts.Difficulty)

	g.quiz = quiz.Runner{
		Config:  qc,
		Rewards: g.opts.Sink(),
		Next:    generateRound,
	}
	g.quiz.Start(cfg, g.opts.Timer(quiz.DefaultSessionTime))
}

func levelForPreset(p config.DifficultyPreset) int {
	switch p {
	case config.DifficultyNormal:
		return 2
	case config.DifficultyHard:
		return 3
	default:
		return 1
	}
}

// generateRound builds a round from the level's angle pool.
func generateRound(r *rand.Rand, level int) quiz.Question {
	pool, ok := levelAngles[level]
	if !ok {
		pool = levelAngles[3]
	}
	target := engine.Pick(pool, r)

	mode := ModeGuessDegree
	count := 4
	if r.Float64() > 0.5 {
		mode = ModeFindAngle
		count = 3
	}

	degrees := engine.DistinctOptions(target, pool, count, r)
	options := make([]string, len(degrees))
	for i, d := range degrees {
		if mode == ModeGuessDegree {
			options[i] = fmt.Sprintf("%d°", d)
		} else {
			options[i] = string(rune('A' + i))
		}
	}

	prompt := "How many degrees is this angle?"
	if mode == ModeFindAngle {
		prompt = fmt.Sprintf("Which one is %d°?", target)
	}

	return quiz.Question{
		Prompt:  prompt,
		Options: options,
		Answer:  engine.IndexOf(degrees, target),
		Hint:    fmt.Sprintf("That was %d°.", target),
		Data:    round{mode: mode, target: target, degrees: degrees},
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	events := g.quiz.Step(in)
	return core.StepResult{State: g.State(), Events: events}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.quiz.DrawHUD(dst, g.Title())
	g.quiz.DrawPrompt(dst, 3)

	rd, _ := g.quiz.Question.Data.(round)
	armLen := core.Max(3, core.Min(8, (dst.Height()-12)))
	baseY := 5 + armLen
	color := core.ColorBrightWhite
	switch g.quiz.Verdict {
	case quiz.VerdictRight:
		color = core.ColorBrightGreen
	case quiz.VerdictWrong:
		color = core.ColorBrightRed
	}

	if rd.mode == ModeGuessDegree {
		drawAngle(dst, dst.Width()/2-armLen, baseY, float64(rd.target), armLen, color)
	} else {
		slot := dst.Width() / core.Max(len(rd.degrees), 1)
		short := core.Max(2, core.Min(armLen, slot/5))
		for i, d := range rd.degrees {
			cx := slot*i + slot/2
			c := core.ColorBrightWhite
			if g.quiz.Verdict != quiz.VerdictNone && i == g.quiz.Question.Answer {
				c = core.ColorBrightGreen
			}
			drawAngle(dst, cx, baseY, float64(d), short, c)
			dst.DrawTextColored(cx, baseY+1, string(rune('A'+i)), core.ColorYellow)
		}
	}

	g.quiz.DrawOptions(dst, baseY+3)
	g.quiz.DrawFeedback(dst, baseY+5)
	g.quiz.DrawOverlay(dst)
}

// drawAngle draws a vertex with a horizontal arm and an arm at deg.
func drawAngle(dst *core.Screen, x, y int, deg float64, length int, c core.Color) {
	dst.DrawRay(x, y, 0, length, '─', c)
	dst.DrawRay(x, y, deg, length, '•', c)
	dst.SetColored(x, y, '●', c)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.quiz.State()
}

func init() {
	registry.Register(GameID, func(opts registry.Options) registry.Game {
		return New(opts)
	})
}
