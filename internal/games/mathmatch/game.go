// Package mathmatch implements Math Match: equations flash up on a card and
// the player swipes them true or false against the clock. Three correct
// answers in a row double the points.
package mathmatch

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/games/quiz"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

// GameID is the registry key for Math Match.
const GameID = "math-match"

// Scoring
const (
	ComboAt     = 3 // answer number in a streak that starts paying combo points
	ComboPoints = 20
	CoinDivisor = 5 // coins = points / CoinDivisor
)

// Equation is one card.
type Equation struct {
	Text    string
	IsTrue  bool
	Shown   int
	Correct int
}

// Game implements Math Match.
type Game struct {
	opts  registry.Options
	quiz  quiz.Runner
	swipe quiz.Swipe
}

// New creates a Math Match instance.
func New(opts registry.Options) *Game {
	return &Game{opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Math Match"
}

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	qc, err := config.LoadQuiz(GameID, g.opts.ConfigPath)
	if err != nil {
		qc = config.DefaultQuizConfig()
	}
	config.ApplyQuizPreset(&qc, g.opts.Difficulty)

	g.quiz = quiz.Runner{
		Config:  qc,
		Rewards: g.opts.Sink(),
		Next:    nextCard,
		Points: func(streak int) int {
			if streak+1 >= ComboAt {
				return ComboPoints
			}
			return qc.CorrectPoints
		},
		Coins: func(points, _ int) int {
			return points / CoinDivisor
		},
	}
	g.swipe.Reset()
	g.quiz.Start(cfg, g.opts.Timer(quiz.DefaultSessionTime))
}

// GenerateEquation draws a +, - or × equation that is shown correctly about
// half of the time.
func GenerateEquation(r *rand.Rand) Equation {
	a := r.Intn(20) + 1
	b := r.Intn(20) + 1
	var op string
	var result int

	switch r.Intn(3) {
	case 0:
		op, result = "+", a+b
	case 1:
		if a < b {
			a, b = b, a
		}
		op, result = "-", a-b
	default:
		a = r.Intn(10) + 1
		b = r.Intn(10) + 1
		op, result = "×", a*b
	}

	shown := result
	if r.Float64() <= 0.5 {
		off := r.Intn(3) + 1
		if r.Float64() > 0.5 {
			off = -off
		}
		shown += off
	}

	return Equation{
		Text:    fmt.Sprintf("%d %s %d = %d", a, op, b, shown),
		IsTrue:  shown == result,
		Shown:   shown,
		Correct: result,
	}
}

func nextCard(r *rand.Rand, _ int) quiz.Question {
	eq := GenerateEquation(r)
	answer := 0
	if eq.IsTrue {
		answer = 1
	}
	return quiz.Question{
		Prompt:  eq.Text,
		Options: []string{"✗ False", "✓ True"},
		Answer:  answer,
		Hint:    fmt.Sprintf("The answer is %d.", eq.Correct),
		Data:    eq,
	}
}

// Step advances the game by one tick. A horizontal mouse drag swipes the
// card: right for true, left for false.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	events := g.quiz.Step(g.swipe.Apply(in))
	return core.StepResult{State: g.State(), Events: events}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.quiz.DrawHUD(dst, g.Title())

	eq, _ := g.quiz.Question.Data.(Equation)
	cardW := core.Max(len([]rune(eq.Text))+10, 24)
	cardX := (dst.Width() - cardW) / 2
	cardY := 4
	dst.DrawBox(core.NewRect(cardX, cardY, cardW, 7))

	color := core.ColorBrightWhite
	switch g.quiz.Verdict {
	case quiz.VerdictRight:
		color = core.ColorBrightGreen
	case quiz.VerdictWrong:
		color = core.ColorBrightRed
	}
	dst.DrawTextCenteredColored(cardY+3, eq.Text, color)

	if g.quiz.Score.Streak >= ComboAt {
		dst.DrawTextCenteredColored(cardY-1, fmt.Sprintf("COMBO x%d!", g.quiz.Score.Streak/ComboAt+1), core.ColorOrange)
	}

	g.quiz.DrawOptions(dst, cardY+9)
	dst.DrawTextCenteredColored(cardY+11, "N / swipe left = false    Y / swipe right = true", core.ColorGray)
	g.quiz.DrawFeedback(dst, cardY+13)
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
