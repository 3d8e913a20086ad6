package datadetective

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

func TestGenerateChart(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		c := Generate(r)
		if len(c.Labels) != BarCount || len(c.Values) != BarCount {
			t.Fatalf("chart has %d labels and %d values", len(c.Labels), len(c.Values))
		}
		seen := map[int]bool{}
		for _, v := range c.Values {
			if v < 20 || v > 99 || seen[v] {
				t.Fatalf("values %v must be distinct and in 20..99", c.Values)
			}
			seen[v] = true
		}
		target := c.Values[c.Target]
		for _, v := range c.Values {
			if c.Kind == AskMax && v > target {
				t.Fatalf("max target %d but %d is larger", target, v)
			}
			if c.Kind == AskMin && v < target {
				t.Fatalf("min target %d but %d is smaller", target, v)
			}
		}
	}
}

func TestPrompt(t *testing.T) {
	c := Chart{Unit: "kg", Values: []int{20, 30, 40, 50}, Kind: AskValue, Target: 2}
	if got := c.Prompt(); got != "Which one shows 40 kg?" {
		t.Errorf("Prompt() = %q", got)
	}
}

func TestWrongAnswerRetriesSameChart(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	tally := &engine.Tally{}
	g := New(registry.Options{Rewards: tally})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 2})

	if _, timed := g.quiz.Remaining(); !timed {
		t.Fatal("data detective should be timed")
	}

	chart := g.quiz.Question.Data.(Chart)
	in := core.NewInputFrame()
	in.At = time.Unix(1, 0)
	in.Set(core.ChoiceActions[(chart.Target+1)%BarCount])
	g.Step(in)

	in = core.NewInputFrame()
	in.At = time.Unix(3, 0)
	g.Step(in)

	again := g.quiz.Question.Data.(Chart)
	if again.Target != chart.Target || again.Values[0] != chart.Values[0] {
		t.Fatal("wrong answer should keep the same chart")
	}

	in = core.NewInputFrame()
	in.At = time.Unix(4, 0)
	in.Set(core.ChoiceActions[chart.Target])
	res := g.Step(in)
	if res.State.Score != 15 || tally.Coins != 15 {
		t.Errorf("score=%d coins=%d, expected 15/15", res.State.Score, tally.Coins)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), chart.Labels[0]) {
		t.Error("chart labels should be drawn")
	}
}
