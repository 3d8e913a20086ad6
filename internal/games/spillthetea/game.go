// Package spillthetea implements Spill the Tea: a group chat drip-feeds the
// premises of an argument, then drafts a conclusion. Send it if it follows,
// delete it as a hoax if it doesn't. Wrong calls cost reputation.
package spillthetea

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/games/quiz"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

// GameID is the registry key for Spill the Tea.
const GameID = "spill-the-tea"

// Chat pacing and rewards.
const (
	TypingDelay     = 1500 * time.Millisecond // per premise
	ConclusionDelay = 800 * time.Millisecond

	ValidFollowers = 10
	ValidCoins     = 5
	HoaxFollowers  = 5
	HoaxCoins      = 2
)

// Sender is who posted a chat line.
type Sender int

const (
	SenderBot Sender = iota
	SenderPlayer
	SenderSystem
)

// Message is one chat line.
type Message struct {
	Text   string
	Sender Sender
}

// Game implements Spill the Tea.
type Game struct {
	opts    registry.Options
	puzzles []Puzzle
	quiz    quiz.Runner
	swipe   quiz.Swipe

	chat   []Message
	shown  int // level whose premises have been started
	posted int // premises of the current level already in the chat
	reveal engine.Reveal
	tok    engine.Token
}

// New creates a Spill the Tea instance.
func New(opts registry.Options) *Game {
	return &Game{opts: opts, puzzles: Puzzles()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Spill the Tea"
}

// Reset starts a new chat.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	qc, err := config.LoadQuiz(GameID, g.opts.ConfigPath)
	if err != nil {
		qc = config.DefaultQuizConfig()
	}
	config.ApplyQuizPreset(&qc, g.opts.Difficulty)
	qc.Rounds = len(g.puzzles)
	qc.StartLevel = 1

	g.quiz = quiz.Runner{
		Config:       qc,
		Rewards:      g.opts.Sink(),
		Next:         g.nextPuzzle,
		Points:       func(int) int { return pick(g.current().Valid, ValidFollowers, HoaxFollowers) },
		Coins:        func(int, int) int { return pick(g.current().Valid, ValidCoins, HoaxCoins) },
		RetryOnWrong: true,
		Levelled:     true,
	}
	g.chat = g.chat[:0]
	g.shown = 0
	g.swipe.Reset()
	g.reveal.Cancel()
	g.quiz.Start(cfg, g.opts.Timer(quiz.DefaultSessionTime))
}

func pick(valid bool, a, b int) int {
	if valid {
		return a
	}
	return b
}

func (g *Game) nextPuzzle(_ *rand.Rand, level int) quiz.Question {
	p := g.puzzles[(level-1)%len(g.puzzles)]
	return quiz.Question{
		Prompt:  p.Conclusion,
		Options: []string{"✗ Hoax", "✓ Send"},
		Answer:  pick(p.Valid, 1, 0),
		Data:    p,
	}
}

func (g *Game) current() Puzzle {
	p, _ := g.quiz.Question.Data.(Puzzle)
	return p
}

// Chat returns the conversation so far.
func (g *Game) Chat() []Message {
	return g.chat
}

// Drafting reports whether the conclusion is waiting for a verdict.
func (g *Game) Drafting() bool {
	return g.reveal.Done() && !g.quiz.Busy() && !g.quiz.Over
}

func (g *Game) post(sender Sender, text string) {
	g.chat = append(g.chat, Message{Text: text, Sender: sender})
}

// startLevel queues the premises of the current level.
func (g *Game) startLevel() {
	g.shown = g.quiz.Level
	g.posted = 0
	if g.shown > 1 {
		g.post(SenderSystem, "--- Level "+strconv.Itoa(g.shown)+" ---")
	}
	steps := make([]time.Duration, 0, len(g.current().Premises)+1)
	for range g.current().Premises {
		steps = append(steps, TypingDelay)
	}
	g.tok = g.reveal.Start(append(steps, ConclusionDelay)...)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	in = g.swipe.Apply(in)
	dt, events, ok := g.quiz.Frame(in)
	if !ok {
		return core.StepResult{State: g.State(), Events: events}
	}

	if g.shown != g.quiz.Level && !g.quiz.Busy() {
		g.startLevel()
	}
	if done, live := g.reveal.Advance(g.tok, dt); live {
		p := g.current()
		for ; g.posted < done && g.posted < len(p.Premises); g.posted++ {
			g.post(SenderBot, p.Premises[g.posted])
		}
	}
	if !g.Drafting() {
		return core.StepResult{State: g.State(), Events: events}
	}

	p := g.current()
	answered := g.quiz.Input(in)
	switch g.quiz.Verdict {
	case quiz.VerdictRight:
		g.post(SenderPlayer, p.Conclusion)
		if !p.Valid {
			g.post(SenderBot, "Hoax deleted! Good job!")
		}
		if g.quiz.Won {
			g.post(SenderBot, "You solved every logic puzzle! Boss level status achieved.")
		}
	case quiz.VerdictWrong:
		g.post(SenderBot, "WRONG! "+p.Explanation)
		if g.quiz.Over {
			g.post(SenderSystem, "Reputation ruined! You got kicked from the group.")
		}
	}
	return core.StepResult{State: g.State(), Events: append(events, answered...)}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()

	rep := strings.Repeat("♥", g.quiz.Score.Lives) + strings.Repeat("♡", core.Max(0, g.quiz.Config.Lives-g.quiz.Score.Lives))
	header := " " + g.Title() + "  ·  Reputation " + rep + "  ·  Followers " + strconv.Itoa(g.quiz.Score.Score) + " "
	dst.DrawTextColored(1, 0, header, core.ColorBrightGreen)
	dst.DrawHLine(0, 1, w, '─')

	// Bottom area: draft or typing indicator plus the answer buttons.
	footer := h - 5
	lines := append([]Message(nil), g.chat...)
	typing := g.reveal.Live() && !g.reveal.Done() && g.posted < len(g.current().Premises)
	if typing {
		lines = append(lines, Message{Text: "typing…", Sender: SenderSystem})
	}

	// Newest messages sit just above the footer.
	maxLines := footer - 3
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	for i, m := range lines {
		y := 2 + i
		switch m.Sender {
		case SenderBot:
			dst.DrawTextColored(2, y, "◖ "+m.Text, core.ColorWhite)
		case SenderPlayer:
			text := m.Text + " ◗"
			dst.DrawTextColored(w-2-len([]rune(text)), y, text, core.ColorBrightGreen)
		default:
			dst.DrawTextCenteredColored(y, m.Text, core.ColorGray)
		}
	}

	dst.DrawHLine(0, footer, w, '─')
	if g.Drafting() {
		dst.DrawTextCenteredColored(footer+1, "Draft: "+g.current().Conclusion, core.ColorBrightYellow)
		g.quiz.DrawOptions(dst, footer+2)
		dst.DrawTextCenteredColored(footer+4, "N / swipe left = hoax    Y / swipe right = send", core.ColorGray)
	}
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
