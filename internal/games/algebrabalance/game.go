// Package algebrabalance implements Algebra Balance: identical shapes on one
// pan of a scale balance a known weight on the other, and the player works
// out what one shape weighs.
package algebrabalance

import (
	"fmt"
	"math/rand"
	"slices"
	"strconv"
	"strings"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/games/quiz"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

// GameID is the registry key for Algebra Balance.
const GameID = "algebra-balance"

// Shape is the object stacked on the left pan.
type Shape struct {
	Name  string
	Glyph rune
	Color core.Color
}

var shapes = [3]Shape{
	{Name: "cube", Glyph: '■', Color: core.ColorBrightBlue},
	{Name: "sphere", Glyph: '●', Color: core.ColorBrightMagenta},
	{Name: "pyramid", Glyph: '▲', Color: core.ColorBrightYellow},
}

// Puzzle is one weighing: Count shapes of Weight each balance Total.
type Puzzle struct {
	Shape  Shape
	Count  int
	Weight int
	Total  int
}

// MaxWeight is the heaviest shape allowed at a level.
func MaxWeight(level int) int {
	return min(9+2*level, 50)
}

// Generate builds a puzzle for the level.
func Generate(r *rand.Rand, level int) Puzzle {
	count := engine.IntBetween(r, 2, 4)
	weight := engine.IntBetween(r, 2, MaxWeight(level)-1)
	return Puzzle{
		Shape:  shapes[level%len(shapes)],
		Count:  count,
		Weight: weight,
		Total:  count * weight,
	}
}

func nextPuzzle(r *rand.Rand, level int) quiz.Question {
	p := Generate(r, level)
	values := engine.NearbyOptions(p.Weight, -5, 5, 4, r)
	slices.Sort(values)

	options := make([]string, len(values))
	for i, v := range values {
		options[i] = strconv.Itoa(v)
	}
	return quiz.Question{
		Prompt:  fmt.Sprintf("What is the weight of one %s? Total weight is %d", p.Shape.Name, p.Total),
		Options: options,
		Answer:  engine.IndexOf(values, p.Weight),
		Hint:    fmt.Sprintf("%d ÷ %d = %d", p.Total, p.Count, p.Weight),
		Data:    p,
	}
}

// Game implements Algebra Balance.
type Game struct {
	opts registry.Options
	quiz quiz.Runner
}

// New creates an Algebra Balance instance.
func New(opts registry.Options) *Game {
	return &Game{opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Algebra Balance"
}

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	qc, err := config.LoadQuiz(GameID, g.opts.ConfigPath)
	if err != nil {
		qc = config.DefaultQuizConfig()
	}
	config.ApplyQuizPreset(&qc, g.opts.Difficulty)

	g.quiz = quiz.Runner{
		Config:   qc,
		Rewards:  g.opts.Sink(),
		Next:     nextPuzzle,
		Levelled: true,
	}
	g.quiz.Start(cfg, g.opts.Timer(quiz.DefaultSessionTime))
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

	p, _ := g.quiz.Question.Data.(Puzzle)
	cx := dst.Width() / 2
	beamY := 9
	const arm = 14

	// Fulcrum and beam
	dst.DrawHLine(cx-arm-4, beamY, 2*arm+9, '═')
	dst.DrawTextColored(cx, beamY+1, "▲", core.ColorGray)
	dst.DrawTextColored(cx-1, beamY+2, "███", core.ColorGray)

	// Left pan: the unknown shapes
	left := strings.Repeat(string(p.Shape.Glyph)+" ", p.Count)
	dst.DrawTextColored(cx-arm-len([]rune(left))/2, beamY-1, left, p.Shape.Color)
	dst.DrawText(cx-arm-4, beamY+1, "╰───────╯")

	// Right pan: the known weight
	label := fmt.Sprintf("[%d kg]", p.Total)
	dst.DrawTextColored(cx+arm-len(label)/2, beamY-1, label, core.ColorBrightWhite)
	dst.DrawText(cx+arm-4, beamY+1, "╰───────╯")

	if g.quiz.Verdict == quiz.VerdictRight {
		each := fmt.Sprintf("%c = %d kg", p.Shape.Glyph, p.Weight)
		dst.DrawTextCenteredColored(beamY+4, each, core.ColorBrightGreen)
	}

	g.quiz.DrawOptions(dst, beamY+6)
	g.quiz.DrawFeedback(dst, beamY+8)
	g.quiz.DrawOverlay(dst)
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
