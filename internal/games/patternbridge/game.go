// Package patternbridge implements Pattern Bridge: a sequence forms a bridge
// with one plank missing, and the player fills the gap to cross. Sequences
// move from addition to subtraction, then doubling and Fibonacci-style sums
// as levels rise.
package patternbridge

import (
	"fmt"
	"math/rand"
	"slices"
	"strconv"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/games/quiz"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

// GameID is the registry key for Pattern Bridge.
const GameID = "pattern-bridge"

// SequenceLength is the number of planks in a bridge.
const SequenceLength = 5

// PatternType is the rule behind a sequence.
type PatternType int

const (
	Arithmetic PatternType = iota
	Geometric
	Fibonacci
)

// Pattern is one generated bridge.
type Pattern struct {
	Type     PatternType
	Sequence []int
	Missing  int
	Rule     string
}

// Answer returns the value of the missing plank.
func (p Pattern) Answer() int {
	return p.Sequence[p.Missing]
}

// Generate builds a sequence for the level:
// 1-5 addition, 6-10 subtraction, 11-20 multiplication, then a mix of
// multiplication and Fibonacci-style sums.
func Generate(r *rand.Rand, level int) Pattern {
	typ := Arithmetic
	if level > 10 {
		typ = Geometric
	}
	if level > 20 && r.Float64() > 0.5 {
		typ = Fibonacci
	}

	seq := make([]int, 0, SequenceLength)
	var rule string

	switch typ {
	case Arithmetic:
		step := r.Intn(5) + 1 + level/5
		start := r.Intn(10) + 1
		if level > 5 && level <= 10 {
			// Start high enough that every plank stays positive.
			start += step * (SequenceLength - 1)
			rule = fmt.Sprintf("- %d", step)
			step = -step
		} else {
			rule = fmt.Sprintf("+ %d", step)
		}
		for i := 0; i < SequenceLength; i++ {
			seq = append(seq, start+i*step)
		}
	case Geometric:
		factor := r.Intn(2) + 2
		rule = fmt.Sprintf("× %d", factor)
		cur := r.Intn(3) + 1
		for i := 0; i < SequenceLength; i++ {
			seq = append(seq, cur)
			cur *= factor
		}
	default:
		rule = "sum of the previous two"
		seq = append(seq, r.Intn(5)+1, r.Intn(5)+1)
		for i := 2; i < SequenceLength; i++ {
			seq = append(seq, seq[i-1]+seq[i-2])
		}
	}

	return Pattern{
		Type:     typ,
		Sequence: seq,
		Missing:  r.Intn(SequenceLength-1) + 1,
		Rule:     rule,
	}
}

func nextBridge(r *rand.Rand, level int) quiz.Question {
	p := Generate(r, level)
	values := engine.NearbyOptions(p.Answer(), -5, 4, 4, r)
	slices.Sort(values)

	options := make([]string, len(values))
	for i, v := range values {
		options[i] = strconv.Itoa(v)
	}
	return quiz.Question{
		Prompt:  "Which number completes the bridge?",
		Options: options,
		Answer:  engine.IndexOf(values, p.Answer()),
		Hint:    "The rule was " + p.Rule + ".",
		Data:    p,
	}
}

// Game implements Pattern Bridge.
type Game struct {
	opts registry.Options
	quiz quiz.Runner
}

// New creates a Pattern Bridge instance.
func New(opts registry.Options) *Game {
	return &Game{opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pattern Bridge"
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
		Next:     nextBridge,
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

	p, _ := g.quiz.Question.Data.(Pattern)
	const plankW = 7
	bridgeW := len(p.Sequence)*(plankW+1) + 8
	x0 := (dst.Width() - bridgeW) / 2
	y := 9

	// Cliffs
	dst.DrawRect(core.NewRect(x0, y+1, 4, 4), '▓')
	dst.DrawRect(core.NewRect(x0+bridgeW-4, y+1, 4, 4), '▓')

	walker := x0 + 1
	for i, v := range p.Sequence {
		px := x0 + 4 + i*(plankW+1)
		label := strconv.Itoa(v)
		color := core.ColorYellow
		if i == p.Missing {
			switch g.quiz.Verdict {
			case quiz.VerdictRight:
				color = core.ColorBrightGreen
			case quiz.VerdictWrong:
				label, color = "?", core.ColorBrightRed
			default:
				label, color = "?", core.ColorBrightCyan
			}
		}
		if i == p.Missing && g.quiz.Verdict == quiz.VerdictWrong {
			dst.DrawTextColored(px+plankW/2, y+2, "↓", core.ColorBrightRed)
		} else {
			dst.DrawTextColored(px, y+1, "═══════", core.ColorOrange)
		}
		dst.DrawTextColored(px+(plankW-len(label))/2, y, label, color)

		switch {
		case g.quiz.Verdict == quiz.VerdictRight:
			walker = x0 + bridgeW - 2
		case g.quiz.Verdict == quiz.VerdictWrong && i == p.Missing:
			walker = px + plankW/2
		}
	}
	walkerY := y - 1
	if g.quiz.Verdict == quiz.VerdictWrong {
		walkerY = y + 3
	}
	dst.SetColored(walker, walkerY, '☺', core.ColorBrightWhite)

	g.quiz.DrawOptions(dst, y+6)
	g.quiz.DrawFeedback(dst, y+8)
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
