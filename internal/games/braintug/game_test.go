package braintug

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/multiplayer"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

func TestGenerateProblem(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		p := GenerateProblem(r)
		if len(p.Options) != 4 || p.Correct() < 0 {
			t.Fatalf("problem %q options %v answer %d", p.Text, p.Options, p.Answer)
		}
		seen := map[int]bool{}
		for _, o := range p.Options {
			if o <= 0 || seen[o] || o < p.Answer-10 || o > p.Answer+10 {
				t.Fatalf("bad options %v for %d", p.Options, p.Answer)
			}
			seen[o] = true
		}
		if strings.Contains(p.Text, "-") && p.Answer <= 0 {
			t.Fatalf("subtraction %q gives %d", p.Text, p.Answer)
		}
	}
}

type match struct {
	g     *Game
	tally *engine.Tally
	at    time.Time
}

func newMatch(t *testing.T, mode multiplayer.MatchMode) *match {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	m := &match{tally: &engine.Tally{}, at: time.Unix(1, 0)}
	m.g = New(registry.Options{Rewards: m.tally, Mode: mode})
	m.g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 4})
	m.step(0, -1, -1)
	return m
}

// step advances by d with optional picks for each seat (-1 for none).
func (m *match) step(d time.Duration, p1, p2 int) core.StepResult {
	m.at = m.at.Add(d)
	in := core.NewMultiInputFrame()
	f1, f2 := core.NewInputFrame(), core.NewInputFrame()
	if p1 >= 0 {
		f1.Set(core.ChoiceActions[p1])
	}
	if p2 >= 0 {
		f2.Set(core.ChoiceActions[p2])
	}
	in.SetPlayer(core.Player1, f1)
	in.SetPlayer(core.Player2, f2)
	in.Stamp(m.at)
	return m.g.StepMulti(in)
}

func (m *match) right(id core.PlayerID) int {
	return m.g.Player(id).Problem.Correct()
}

func (m *match) wrong(id core.PlayerID) int {
	return (m.right(id) + 1) % 4
}

func TestPullsAndHulk(t *testing.T) {
	m := newMatch(t, multiplayer.MatchModeLocal)

	want := []int{-10, -20, -40, -50, -60}
	for i, rope := range want {
		m.step(10*time.Millisecond, m.right(core.Player1), -1)
		if m.g.Rope() != rope {
			t.Fatalf("pull %d: rope = %d, expected %d", i+1, m.g.Rope(), rope)
		}
	}
	if m.g.Player(core.Player1).Last != ActionPull {
		t.Error("streak should restart after a hulk pull")
	}
}

func TestSlipStunsPlayer(t *testing.T) {
	m := newMatch(t, multiplayer.MatchModeLocal)

	m.step(10*time.Millisecond, -1, m.wrong(core.Player2))
	if m.g.Rope() != -15 {
		t.Fatalf("P2 slip should move the rope toward P1, rope=%d", m.g.Rope())
	}
	p2 := m.g.Player(core.Player2)
	if !p2.Stunned() || p2.Last != ActionSlip {
		t.Fatal("a slip should stun")
	}

	m.step(10*time.Millisecond, -1, m.right(core.Player2))
	if m.g.Rope() != -15 {
		t.Fatal("stunned players cannot pull")
	}

	m.step(time.Second, -1, -1)
	if p2.Stunned() {
		t.Fatal("the stun should wear off after a second")
	}
	m.step(10*time.Millisecond, -1, m.right(core.Player2))
	if m.g.Rope() != -5 {
		t.Errorf("rope = %d after recovering", m.g.Rope())
	}
}

func TestPlayerOneWins(t *testing.T) {
	m := newMatch(t, multiplayer.MatchModeLocal)

	var res core.StepResult
	for i := 0; i < 20 && !res.State.GameOver; i++ {
		res = m.step(10*time.Millisecond, m.right(core.Player1), -1)
	}
	winner, over := m.g.Winner()
	if !over || winner != core.Player1 || !res.State.Won {
		t.Fatalf("winner=%v over=%v", winner, over)
	}
	if m.g.Rope() != -100 || m.tally.Coins != 50 {
		t.Errorf("rope=%d coins=%d", m.g.Rope(), m.tally.Coins)
	}

	screen := core.NewScreen(80, 24)
	m.g.Render(screen)
	if !strings.Contains(screen.String(), "P1 WINS!") {
		t.Error("expected the winner banner")
	}
}

func TestCPUAnswersOnItsOwn(t *testing.T) {
	m := newMatch(t, multiplayer.MatchModeSolo)
	if m.g.Mode() != multiplayer.MatchModeVsCPU {
		t.Fatal("solo Brain Tug should play against the CPU")
	}

	for i := 0; i < 10; i++ {
		m.step(500*time.Millisecond, -1, -1)
	}
	if m.g.Rope() == 0 {
		t.Error("the CPU should have answered within five seconds")
	}
}

func TestCPUWinPaysNothing(t *testing.T) {
	m := newMatch(t, multiplayer.MatchModeVsCPU)
	m.g.cfg.CPU.Accuracy = 1
	m.g.cfg.CPU.MinThinkMs, m.g.cfg.CPU.MaxThinkMs = 100, 100

	for i := 0; i < 200; i++ {
		if m.step(100*time.Millisecond, -1, -1).State.GameOver {
			break
		}
	}
	winner, over := m.g.Winner()
	if !over || winner != core.Player2 || m.tally.Coins != 0 {
		t.Errorf("winner=%v over=%v coins=%d", winner, over, m.tally.Coins)
	}
}
