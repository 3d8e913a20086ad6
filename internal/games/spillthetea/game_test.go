package spillthetea

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

func TestBuiltinPuzzles(t *testing.T) {
	ps := Puzzles()
	if len(ps) != 6 {
		t.Fatalf("expected 6 puzzles, got %d", len(ps))
	}
	valid := 0
	for _, p := range ps {
		if p.Valid {
			valid++
		}
		if p.Explanation == "" {
			t.Errorf("puzzle %q has no explanation", p.Conclusion)
		}
	}
	if valid != 2 {
		t.Errorf("expected 2 valid arguments, got %d", valid)
	}
}

func TestLoadPuzzlesRejectsIncomplete(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "[]"},
		{"no premises", "- conclusion: x\n  valid: true\n"},
		{"not yaml", "{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadPuzzles([]byte(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

type session struct {
	g     *Game
	tally *engine.Tally
	at    time.Time
}

func newSession(t *testing.T) *session {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	s := &session{tally: &engine.Tally{}, at: time.Unix(10, 0)}
	s.g = New(registry.Options{Rewards: s.tally})
	s.g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	return s
}

func (s *session) step(in core.InputFrame, d time.Duration) core.StepResult {
	s.at = s.at.Add(d)
	in.At = s.at
	return s.g.Step(in)
}

func (s *session) wait(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += 100 * time.Millisecond {
		s.step(core.NewInputFrame(), 100*time.Millisecond)
	}
}

func (s *session) judge(valid bool) core.StepResult {
	in := core.NewInputFrame()
	if valid {
		in.Set(core.ActionTrue)
	} else {
		in.Set(core.ActionFalse)
	}
	return s.step(in, 10*time.Millisecond)
}

func TestPremisesArriveBeforeDraft(t *testing.T) {
	s := newSession(t)
	s.step(core.NewInputFrame(), 0)

	s.wait(1600 * time.Millisecond)
	if n := len(s.g.Chat()); n != 1 || s.g.Drafting() {
		t.Fatalf("after one typing delay: %d messages, drafting=%v", n, s.g.Drafting())
	}

	// Answers before the draft appears are ignored.
	s.judge(true)
	if s.g.State().Score != 0 {
		t.Fatal("answer before the draft should be ignored")
	}

	s.wait(2500 * time.Millisecond)
	if !s.g.Drafting() {
		t.Fatal("conclusion should be drafted after the premises")
	}
}

func TestPlayThrough(t *testing.T) {
	s := newSession(t)
	s.step(core.NewInputFrame(), 0)

	wantScore, wantCoins := 0, 0
	for i, p := range Puzzles() {
		s.wait(4 * time.Second)
		if !s.g.Drafting() {
			t.Fatalf("puzzle %d never drafted", i+1)
		}
		res := s.judge(p.Valid)
		if p.Valid {
			wantScore += ValidFollowers
			wantCoins += ValidCoins
		} else {
			wantScore += HoaxFollowers
			wantCoins += HoaxCoins
		}
		if res.State.Score != wantScore {
			t.Fatalf("puzzle %d: followers %d, expected %d", i+1, res.State.Score, wantScore)
		}
		s.wait(2 * time.Second)
	}

	st := s.g.State()
	if !st.GameOver || !st.Won || s.tally.Coins != wantCoins {
		t.Errorf("state=%+v coins=%d, expected a win with %d coins", st, s.tally.Coins, wantCoins)
	}
	last := s.g.Chat()[len(s.g.Chat())-1]
	if !strings.Contains(last.Text, "Boss level") {
		t.Errorf("last message %q", last.Text)
	}
}

func TestWrongCallsCostReputation(t *testing.T) {
	s := newSession(t)
	s.step(core.NewInputFrame(), 0)
	first := Puzzles()[0]

	for i := 0; i < 3; i++ {
		s.wait(4 * time.Second)
		if !s.g.Drafting() {
			t.Fatalf("attempt %d: the conclusion should be shown again", i+1)
		}
		s.judge(!first.Valid)
	}

	if !s.g.State().GameOver || s.g.State().Won {
		t.Fatal("three wrong calls should end the chat")
	}
	last := s.g.Chat()[len(s.g.Chat())-1]
	if last.Sender != SenderSystem || !strings.Contains(last.Text, "kicked") {
		t.Errorf("last message %+v", last)
	}

	screen := core.NewScreen(80, 24)
	s.g.Render(screen)
}
