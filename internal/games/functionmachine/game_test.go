package functionmachine

import (
	"math/rand"
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

func TestGenerateRuleByLevel(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		if rule := GenerateRule(r, 2); rule.C != 0 || rule.M < 2 || rule.M > 5 {
			t.Fatalf("level 2 rule %+v", rule)
		}
		if rule := GenerateRule(r, 5); rule.M != 1 || rule.C < 1 || rule.C > 9 {
			t.Fatalf("level 5 rule %+v", rule)
		}
		if rule := GenerateRule(r, 9); rule.M < 2 || rule.M > 4 || rule.C < 1 || rule.C > 5 {
			t.Fatalf("level 9 rule %+v", rule)
		}
	}
}

func TestRuleString(t *testing.T) {
	tests := []struct {
		rule Rule
		want string
	}{
		{Rule{M: 3}, "Multiply by 3"},
		{Rule{M: 1, C: 4}, "Add 4"},
		{Rule{M: 2, C: 5}, "Multiply by 2 and add 5"},
	}
	for _, tt := range tests {
		if got := tt.rule.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, expected %q", tt.rule, got, tt.want)
		}
	}
}

func TestNewMachineTargetIsNotAProbe(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	for i := 0; i < 200; i++ {
		m := NewMachine(r, 1)
		if len(m.Probes) != 3 || !slices.IsSorted(m.Probes) {
			t.Fatalf("probes %v", m.Probes)
		}
		if slices.Contains(m.Probes, m.Target) {
			t.Fatalf("target %d is one of the probes %v", m.Target, m.Probes)
		}
	}
}

type clock struct {
	at time.Time
}

func (c *clock) frame(step time.Duration) core.InputFrame {
	c.at = c.at.Add(step)
	in := core.NewInputFrame()
	in.At = c.at
	return in
}

func newTestGame(t *testing.T) (*Game, *engine.Tally, *clock) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	tally := &engine.Tally{}
	g := New(registry.Options{Rewards: tally})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	c := &clock{at: time.Unix(100, 0)}
	g.Step(c.frame(0))
	return g, tally, c
}

func TestProbesRevealOutputs(t *testing.T) {
	g, _, c := newTestGame(t)
	m := g.Machine()

	for i := 0; i < 3; i++ {
		in := c.frame(10 * time.Millisecond)
		in.Set(core.ChoiceActions[i])
		g.Step(in)
		if _, busy := m.Running(); !busy {
			t.Fatalf("probe %d should be running", i)
		}
		g.Step(c.frame(time.Second))
	}

	if len(m.History) != 3 {
		t.Fatalf("history has %d rows, expected 3", len(m.History))
	}
	for _, p := range m.History {
		if p.Out != m.Rule.Apply(p.In) {
			t.Errorf("probe %d gave %d", p.In, p.Out)
		}
	}
	if m.Phase != PhaseDeduce {
		t.Error("using every probe should move to the deduce phase")
	}
}

func TestTypedAnswer(t *testing.T) {
	g, tally, c := newTestGame(t)
	m := g.Machine()

	in := c.frame(10 * time.Millisecond)
	in.Set(core.ActionConfirm)
	g.Step(in)
	if m.Phase != PhaseDeduce {
		t.Fatal("Enter should skip to the deduce phase")
	}

	// A wrong guess keeps the machine.
	in = c.frame(10 * time.Millisecond)
	in.AddRune('-')
	in.AddRune('1')
	in.Set(core.ActionConfirm)
	res := g.Step(in)
	if tally.Coins != 0 || res.State.Score != 0 {
		t.Fatal("wrong answer should not pay")
	}
	g.Step(c.frame(2 * time.Second))
	if g.Machine() != m {
		t.Fatal("wrong answer should retry the same machine")
	}

	answer := strconv.Itoa(m.Rule.Apply(m.Target))
	in = c.frame(10 * time.Millisecond)
	for _, r := range "9\b" + answer {
		in.AddRune(r)
	}
	in.Set(core.ActionConfirm)
	g.Step(in)

	if tally.Coins != 25 {
		t.Errorf("coins = %d, expected 20+5×1", tally.Coins)
	}
	g.Step(c.frame(2 * time.Second))
	if g.Machine() == m || g.quiz.Level != 2 {
		t.Error("a correct answer should move to the next level's machine")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
}
