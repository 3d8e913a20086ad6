package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/economy"
	"github.com/vovakirdan/math-arcade/internal/multiplayer"
	"github.com/vovakirdan/math-arcade/internal/storage"
)

// stubGame records what the platform feeds it.
type stubGame struct {
	steps   int
	last    core.InputFrame
	overAt  int // step number that ends the game; 0 never ends
	score   int
	resets  int
	rewards func()
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++; g.steps = 0 }
func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState { return g.state() }
func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = in.Clone()
	if g.rewards != nil && g.steps == g.overAt {
		g.rewards()
	}
	return core.StepResult{State: g.state()}
}

func (g *stubGame) state() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.overAt > 0 && g.steps >= g.overAt}
}

// stubDuel is a two-seat stub.
type stubDuel struct {
	stubGame
	multi int
	p2    core.InputFrame
}

func (g *stubDuel) StepMulti(in core.MultiInputFrame) core.StepResult {
	g.multi++
	g.p2 = in.Player2().Clone()
	return g.Step(in.Player1())
}

type memBlobs map[string]string

func (m memBlobs) Get(key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", economy.ErrNotFound
	}
	return v, nil
}

func (m memBlobs) Put(key, value string) error {
	m[key] = value
	return nil
}

func quietDeps() Deps {
	return Deps{Logger: log.New(io.Discard)}
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestModelDropsStaleTicks(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, quietDeps(), core.DefaultConfig(), multiplayer.MatchModeSolo)
	m.Init()

	m = step(t, m, TickMsg{Gen: m.gen - 1, At: time.Unix(1, 0)})
	if g.steps != 0 {
		t.Fatalf("stale tick stepped the game %d times", g.steps)
	}

	at := time.Unix(2, 0)
	m = step(t, m, runeKey('y'))
	m = step(t, m, TickMsg{Gen: m.gen, At: at})
	if g.steps != 1 {
		t.Fatalf("steps = %d, expected 1", g.steps)
	}
	if !g.last.At.Equal(at) {
		t.Errorf("frame At = %v, expected the tick time %v", g.last.At, at)
	}
	if !g.last.Has(core.ActionTrue) {
		t.Error("buffered key should reach the game on the next tick")
	}

	m = step(t, m, TickMsg{Gen: m.gen, At: at.Add(time.Second / 60)})
	if g.last.Has(core.ActionTrue) {
		t.Error("input should be cleared after the tick that consumed it")
	}
}

func TestModelBuffersPointerSamples(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, quietDeps(), core.DefaultConfig(), multiplayer.MatchModeSolo)
	m.Init()

	m = step(t, m, tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = step(t, m, tea.MouseMsg{X: 9, Y: 4, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = step(t, m, tea.MouseMsg{X: 9, Y: 4, Action: tea.MouseActionRelease})
	step(t, m, TickMsg{Gen: m.gen, At: time.Unix(5, 0)})

	if len(g.last.Pointer) != 3 {
		t.Fatalf("pointer samples = %d, expected 3", len(g.last.Pointer))
	}
	if g.last.Pointer[1].Kind != core.PointerDrag || g.last.Pointer[1].X != 9 {
		t.Errorf("second sample = %+v", g.last.Pointer[1])
	}
}

func TestModelRoutesSecondSeat(t *testing.T) {
	g := &stubDuel{}
	m := NewModel(g, quietDeps(), core.DefaultConfig(), multiplayer.MatchModeLocal)
	m.Init()

	m = step(t, m, runeKey('9'))
	step(t, m, TickMsg{Gen: m.gen, At: time.Unix(1, 0)})

	if g.multi != 1 {
		t.Fatalf("StepMulti calls = %d, expected 1", g.multi)
	}
	if !g.p2.Has(core.ActionChoice3) {
		t.Error("9 should answer the third option for player 2")
	}
}

func TestModelSoloDuelUsesStep(t *testing.T) {
	g := &stubDuel{}
	m := NewModel(g, quietDeps(), core.DefaultConfig(), multiplayer.MatchModeSolo)
	m.Init()
	step(t, m, TickMsg{Gen: m.gen, At: time.Unix(1, 0)})

	if g.multi != 0 || g.steps != 1 {
		t.Errorf("multi = %d, steps = %d; a solo match should use Step", g.multi, g.steps)
	}
}

func TestModelPersistsOnGameOver(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	store, err := storage.Open(t.TempDir() + "/arcade.db")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	blobs := memBlobs{}
	profile, err := economy.LoadProfile("ada", blobs, log.New(io.Discard))
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	deps := quietDeps()
	deps.Store = store
	deps.Profile = profile

	g := &stubGame{overAt: 2, score: 40}
	g.rewards = func() { profile.AddCoins(25) }
	m := NewModel(g, deps, core.DefaultConfig(), multiplayer.MatchModeSolo)
	m.Init()

	for i := 0; i < 3; i++ {
		m = step(t, m, TickMsg{Gen: m.gen, At: time.Unix(int64(i+1), 0)})
	}

	if blobs[economy.KeyCoins] != "25" {
		t.Errorf("saved coins = %q, expected 25", blobs[economy.KeyCoins])
	}
	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 40 || scores[0].Profile != "ada" {
		t.Errorf("scores = %+v, expected one row of 40 for ada", scores)
	}

	// Back after game over leaves for the menu.
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc after game over should return to the menu")
	}
}

func TestModelEscPausesRunningGame(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, quietDeps(), core.DefaultConfig(), multiplayer.MatchModeSolo)
	m.Init()

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("esc during play should not leave the game")
	}
	step(t, m, TickMsg{Gen: m.gen, At: time.Unix(1, 0)})
	if !g.last.Has(core.ActionPause) {
		t.Error("esc during play should pause")
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	g := &stubGame{overAt: 1}
	m := NewModel(g, quietDeps(), core.DefaultConfig(), multiplayer.MatchModeSolo)
	m.Init()

	m = step(t, m, TickMsg{Gen: m.gen, At: time.Unix(1, 0)})
	if !m.State().GameOver {
		t.Fatal("expected game over")
	}
	m = step(t, m, runeKey('r'))
	m = step(t, m, TickMsg{Gen: m.gen, At: time.Unix(2, 0)})

	if g.resets != 2 {
		t.Errorf("resets = %d, expected 2", g.resets)
	}
	if m.State().GameOver {
		t.Error("restart should clear game over")
	}
}
