// Package datadetective implements Data Detective: read a bar chart against
// the clock and answer which bar is largest, smallest, or shows a value.
package datadetective

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/games/quiz"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

// GameID is the registry key for Data Detective.
const GameID = "data-detective"

// BarCount is the number of bars in every chart.
const BarCount = 4

var themes = []struct {
	Title  string
	Unit   string
	Labels []string
}{
	{Title: "Fruit sold today", Unit: "kg", Labels: []string{"Apples", "Bananas", "Cherries", "Grapes", "Lemons", "Mangoes", "Pears"}},
	{Title: "Visitors per city", Unit: "k", Labels: []string{"Paris", "Tokyo", "Cairo", "Lima", "Oslo", "Delhi", "Rome"}},
}

var barColors = [BarCount]core.Color{
	core.ColorBrightRed, core.ColorBrightYellow, core.ColorBrightGreen, core.ColorBrightCyan,
}

// QuestionKind selects what the player is asked about the chart.
type QuestionKind int

const (
	AskMax QuestionKind = iota
	AskMin
	AskValue
)

// Chart is one generated bar chart.
type Chart struct {
	Title  string
	Unit   string
	Labels []string
	Values []int
	Kind   QuestionKind
	Target int // bar index the question points at
}

// Generate builds a chart with distinct values so largest and smallest are
// always unambiguous.
func Generate(r *rand.Rand) Chart {
	theme := engine.Pick(themes, r)
	labels := append([]string(nil), theme.Labels...)
	engine.Shuffle(labels, r)
	labels = labels[:BarCount]

	values := make([]int, 0, BarCount)
	used := map[int]bool{}
	for len(values) < BarCount {
		v := engine.IntBetween(r, 20, 99)
		if used[v] {
			continue
		}
		used[v] = true
		values = append(values, v)
	}

	c := Chart{
		Title:  theme.Title,
		Unit:   theme.Unit,
		Labels: labels,
		Values: values,
		Kind:   QuestionKind(r.Intn(3)),
	}
	switch c.Kind {
	case AskMax:
		c.Target = argBest(values, func(a, b int) bool { return a > b })
	case AskMin:
		c.Target = argBest(values, func(a, b int) bool { return a < b })
	default:
		c.Target = r.Intn(BarCount)
	}
	return c
}

func argBest(values []int, better func(a, b int) bool) int {
	best := 0
	for i, v := range values {
		if better(v, values[best]) {
			best = i
		}
	}
	return best
}

// Prompt returns the question asked about the chart.
func (c Chart) Prompt() string {
	switch c.Kind {
	case AskMax:
		return "Which one has the highest value?"
	case AskMin:
		return "Which one has the lowest value?"
	default:
		return fmt.Sprintf("Which one shows %d %s?", c.Values[c.Target], c.Unit)
	}
}

func nextChart(r *rand.Rand, _ int) quiz.Question {
	c := Generate(r)
	return quiz.Question{
		Prompt:  c.Prompt(),
		Options: append([]string(nil), c.Labels...),
		Answer:  c.Target,
		Hint:    "Compare the bar lengths and read the numbers.",
		Data:    c,
	}
}

// Game implements Data Detective.
type Game struct {
	opts registry.Options
	quiz quiz.Runner
}

// New creates a Data Detective instance.
func New(opts registry.Options) *Game {
	return &Game{opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Data Detective"
}

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	qc, err := config.LoadQuiz(GameID, g.opts.ConfigPath)
	if err != nil {
		qc = config.DefaultQuizConfig()
		qc.Timed = true
	}
	config.ApplyQuizPreset(&qc, g.opts.Difficulty)

	g.quiz = quiz.Runner{
		Config:       qc,
		Rewards:      g.opts.Sink(),
		Next:         nextChart,
		RetryOnWrong: true,
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

	c, _ := g.quiz.Question.Data.(Chart)
	dst.DrawTextCenteredColored(3, c.Title, core.ColorBrightWhite)

	const labelW = 10
	maxBar := dst.Width() - labelW - 16
	if maxBar > 50 {
		maxBar = 50
	}
	x0 := (dst.Width() - labelW - maxBar - 6) / 2
	for i, v := range c.Values {
		y := 5 + i*2
		dst.DrawText(x0, y, fmt.Sprintf("%-*s", labelW, c.Labels[i]))
		n := v * maxBar / 100
		dst.DrawTextColored(x0+labelW, y, strings.Repeat("█", n), barColors[i])
		dst.DrawText(x0+labelW+n+1, y, strconv.Itoa(v))
	}

	g.quiz.DrawPrompt(dst, 14)
	g.quiz.DrawOptions(dst, 16)
	g.quiz.DrawFeedback(dst, 18)
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
