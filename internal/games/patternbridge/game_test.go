package patternbridge

import (
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

func TestGenerateFollowsRule(t *testing.T) {
	r := rand.New(rand.NewSource(9))

	tests := []struct {
		name  string
		level int
		check func(seq []int) bool
	}{
		{"addition", 1, func(s []int) bool { return s[1]-s[0] > 0 && s[2]-s[1] == s[1]-s[0] }},
		{"subtraction", 8, func(s []int) bool { return s[1]-s[0] < 0 && s[4] > 0 && s[2]-s[1] == s[1]-s[0] }},
		{"geometric", 15, func(s []int) bool { return s[1]%s[0] == 0 && s[1]/s[0] == s[2]/s[1] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				p := Generate(r, tt.level)
				if len(p.Sequence) != SequenceLength {
					t.Fatalf("sequence length %d", len(p.Sequence))
				}
				if !tt.check(p.Sequence) {
					t.Fatalf("level %d sequence %v breaks its rule %q", tt.level, p.Sequence, p.Rule)
				}
				if p.Missing < 1 || p.Missing >= SequenceLength {
					t.Fatalf("missing index %d out of range", p.Missing)
				}
			}
		})
	}
}

func TestFibonacciLevels(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	sawFib := false
	for i := 0; i < 200; i++ {
		p := Generate(r, 25)
		if p.Type == Fibonacci {
			sawFib = true
			for j := 2; j < len(p.Sequence); j++ {
				if p.Sequence[j] != p.Sequence[j-1]+p.Sequence[j-2] {
					t.Fatalf("bad fibonacci sequence %v", p.Sequence)
				}
			}
		}
	}
	if !sawFib {
		t.Error("level 25 should sometimes produce fibonacci bridges")
	}
}

func TestOptionsArePositiveAndSorted(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for level := 1; level < 30; level++ {
		q := nextBridge(r, level)
		p := q.Data.(Pattern)
		if len(q.Options) != 4 {
			t.Fatalf("level %d: %d options", level, len(q.Options))
		}
		prev := 0
		for _, o := range q.Options {
			v, _ := strconv.Atoi(o)
			if v <= 0 || v <= prev {
				t.Fatalf("options %v must be positive and ascending", q.Options)
			}
			prev = v
		}
		if q.Options[q.Answer] != strconv.Itoa(p.Answer()) {
			t.Fatalf("answer %q != missing plank %d", q.Options[q.Answer], p.Answer())
		}
	}
}

func TestCorrectAnswerLevelsUp(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	tally := &engine.Tally{}
	g := New(registry.Options{Rewards: tally})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})

	in := core.NewInputFrame()
	in.At = time.Unix(1, 0)
	g.Step(in)

	in = core.NewInputFrame()
	in.At = time.Unix(2, 0)
	in.Set(core.ChoiceActions[g.quiz.Question.Answer])
	res := g.Step(in)

	if g.quiz.Level != 2 || res.State.Score != 10 || tally.Coins != 5 {
		t.Errorf("level=%d score=%d coins=%d", g.quiz.Level, res.State.Score, tally.Coins)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
}
