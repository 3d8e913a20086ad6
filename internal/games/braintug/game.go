// Package braintug implements Brain Tug: two players solve arithmetic to
// pull a rope. Three right answers in a row make a hulk pull; a wrong answer
// slips the rope back and stuns the player for a moment. The second seat is
// the CPU or a friend on the same keyboard.
package braintug

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/games/quiz"
	"github.com/vovakirdan/math-arcade/internal/multiplayer"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

// GameID is the registry key for Brain Tug.
const GameID = "brain-tug"

const actionTime = 800 * time.Millisecond

// Action is the latest thing a player did to the rope.
type Action int

const (
	ActionNone Action = iota
	ActionPull
	ActionHulk
	ActionSlip
)

func (a Action) String() string {
	switch a {
	case ActionPull:
		return "PULL!"
	case ActionHulk:
		return "HULK PULL!"
	case ActionSlip:
		return "SLIP!"
	default:
		return ""
	}
}

// Player is one seat at the rope.
type Player struct {
	Problem Problem
	Streak  int
	Stun    time.Duration
	Last    Action
	lastTTL time.Duration
	think   time.Duration // CPU only: time until the next answer
}

// Stunned reports whether the player is locked out after a slip.
func (p *Player) Stunned() bool {
	return p.Stun > 0
}

// Game implements Brain Tug.
type Game struct {
	opts    registry.Options
	cfg     config.BrainTugConfig
	mode    multiplayer.MatchMode
	rng     *rand.Rand
	session engine.Session

	rope    int // negative pulls toward Player 1
	players [2]Player
	winner  core.PlayerID
	over    bool
	score   int // rope pulled by Player 1
	coins   int

	boxes []core.Rect // Player 1 option hitboxes
}

// New creates a Brain Tug instance.
func New(opts registry.Options) *Game {
	return &Game{opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Brain Tug"
}

// Reset starts a new match.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	var err error
	g.cfg, err = config.LoadBrainTug(g.opts.ConfigPath)
	if err != nil {
		g.cfg = config.DefaultBrainTugConfig()
	}
	config.ApplyBrainTugPreset(&g.cfg, g.opts.Difficulty)

	g.mode = g.opts.Mode
	if !g.mode.HasOpponent() {
		g.mode = multiplayer.MatchModeVsCPU
	}
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.rope = 0
	g.winner = 0
	g.over = false
	g.score = 0
	g.coins = 0
	for i := range g.players {
		g.players[i] = Player{Problem: GenerateProblem(g.rng)}
	}
	if g.mode == multiplayer.MatchModeVsCPU {
		g.players[1].think = g.thinkTime()
	}
	g.session.Start(cfg.TickRate)
}

// Mode returns the match mode in play.
func (g *Game) Mode() multiplayer.MatchMode {
	return g.mode
}

// Rope returns the rope position in [-Limit, Limit].
func (g *Game) Rope() int {
	return g.rope
}

// Player returns a seat.
func (g *Game) Player(id core.PlayerID) *Player {
	return &g.players[id-core.Player1]
}

// Winner returns the winning seat once the match is over.
func (g *Game) Winner() (core.PlayerID, bool) {
	return g.winner, g.over
}

func (g *Game) thinkTime() time.Duration {
	ms := engine.IntBetween(g.rng, g.cfg.CPU.MinThinkMs, g.cfg.CPU.MaxThinkMs)
	return time.Duration(ms) * time.Millisecond
}

// Step advances the match with input for Player 1 only.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	m := core.NewMultiInputFrame()
	m.SetPlayer(core.Player1, in)
	return g.StepMulti(m)
}

// StepMulti advances the match with input for both seats.
func (g *Game) StepMulti(m core.MultiInputFrame) core.StepResult {
	if g.over {
		return core.StepResult{State: g.State()}
	}
	p1 := m.Player1()
	if p1.Has(core.ActionPause) {
		g.session.TogglePause()
	}
	dt, ok := g.session.Frame(p1.At)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	for i := range g.players {
		g.tick(&g.players[i], dt)
	}

	var events []core.Event
	if i, ok := g.choice(p1, true); ok {
		events = append(events, g.answer(core.Player1, i)...)
	}
	if g.over {
		return core.StepResult{State: g.State(), Events: events}
	}

	switch g.mode {
	case multiplayer.MatchModeLocal:
		if i, ok := g.choice(m.Player2(), false); ok {
			events = append(events, g.answer(core.Player2, i)...)
		}
	case multiplayer.MatchModeVsCPU:
		events = append(events, g.cpu(dt)...)
	}
	return core.StepResult{State: g.State(), Events: events}
}

// tick counts down a player's stun and action banner.
func (g *Game) tick(p *Player, dt time.Duration) {
	if p.lastTTL > 0 {
		p.lastTTL -= dt
		if p.lastTTL <= 0 {
			p.Last = ActionNone
		}
	}
	if p.Stun > 0 {
		p.Stun -= dt
		if p.Stun <= 0 {
			p.Stun = 0
			p.Problem = GenerateProblem(g.rng)
		}
	}
}

// choice reads an option pick from a player's frame. Only Player 1 can
// click.
func (g *Game) choice(in core.InputFrame, mouse bool) (int, bool) {
	if i := in.Choice(); i >= 0 {
		return i, true
	}
	if !mouse {
		return 0, false
	}
	for _, p := range in.Pointer {
		if p.Kind != core.PointerPress {
			continue
		}
		for i, b := range g.boxes {
			if b.Contains(int(p.X), int(p.Y)) {
				return i, true
			}
		}
	}
	return 0, false
}

// cpu counts down the computer's thinking time and answers when it runs
// out, right with the configured accuracy.
func (g *Game) cpu(dt time.Duration) []core.Event {
	p := g.Player(core.Player2)
	if p.Stunned() {
		return nil
	}
	p.think -= dt
	if p.think > 0 {
		return nil
	}
	p.think = g.thinkTime()

	pick := p.Problem.Correct()
	if g.rng.Float64() >= g.cfg.CPU.Accuracy {
		pick = (pick + 1 + g.rng.Intn(len(p.Problem.Options)-1)) % len(p.Problem.Options)
	}
	return g.answer(core.Player2, pick)
}

// answer applies a pick for a seat.
func (g *Game) answer(id core.PlayerID, pick int) []core.Event {
	p := g.Player(id)
	if g.over || p.Stunned() || pick < 0 || pick >= len(p.Problem.Options) {
		return nil
	}
	rope := g.cfg.Rope
	toward := -1 // rope direction that favours this player
	if id == core.Player2 {
		toward = 1
	}

	if p.Problem.Options[pick] != p.Problem.Answer {
		g.rope = core.Clamp(g.rope-toward*rope.Slip, -rope.Limit, rope.Limit)
		p.Streak = 0
		p.Stun = time.Duration(rope.StunMs) * time.Millisecond
		p.Last, p.lastTTL = ActionSlip, actionTime
		return []core.Event{core.EventMiss}
	}

	power := rope.Pull
	p.Last = ActionPull
	if p.Streak >= rope.HulkStreak {
		power = rope.HulkPull
		p.Last = ActionHulk
		p.Streak = 0
	} else {
		p.Streak++
	}
	p.lastTTL = actionTime
	p.Problem = GenerateProblem(g.rng)

	g.rope = core.Clamp(g.rope+toward*power, -rope.Limit, rope.Limit)
	events := []core.Event{core.EventHit}
	if id == core.Player1 {
		g.score += power
		g.opts.Sink().AddXP(power)
	}
	if core.Abs(g.rope) >= rope.Limit {
		events = append(events, g.finish(id)...)
	}
	return events
}

// finish ends the match. Coins go to the local player's wallet when they
// win, or to the shared keyboard whoever wins a local match.
func (g *Game) finish(winner core.PlayerID) []core.Event {
	g.over = true
	g.winner = winner
	g.session.Stop()

	events := []core.Event{core.EventGameOver}
	if winner == core.Player1 || g.mode == multiplayer.MatchModeLocal {
		if c := g.cfg.Rewards.WinCoins; c > 0 {
			g.opts.Sink().AddCoins(c)
			g.coins += c
			events = append(events, core.EventCoins)
		}
	}
	return events
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w := dst.Width()

	opponent := g.seatName(core.Player2)
	dst.DrawText(1, 0, fmt.Sprintf(" %s  P1 vs %s  Rope: %+d ", g.Title(), opponent, g.rope))
	dst.DrawHLine(0, 1, w, '─')

	g.drawRope(dst, 5)

	half := w / 2
	g.drawSeat(dst, core.Player1, 0, half, 9)
	g.drawSeat(dst, core.Player2, half, w-half, 9)
	dst.DrawVLine(half, 8, 8, '│')

	if g.session.Paused() {
		quiz.DrawMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.over {
		title := "P1 WINS!"
		if g.winner == core.Player2 {
			title = opponent + " WINS!"
		}
		quiz.DrawMessage(dst, title, fmt.Sprintf("Coins: +%d | Press R to restart", g.coins))
	}
}

func (g *Game) seatName(id core.PlayerID) string {
	switch {
	case id == core.Player1:
		return "P1"
	case g.mode == multiplayer.MatchModeLocal:
		return "P2"
	default:
		return "CPU"
	}
}

func (g *Game) drawRope(dst *core.Screen, y int) {
	w := dst.Width()
	span := core.Max(w-12, 10)
	x0 := (w - span) / 2
	limit := g.cfg.Rope.Limit

	dst.DrawTextColored(x0-5, y, "P1 ◀", core.ColorBrightBlue)
	dst.DrawTextColored(x0+span+1, y, "▶ "+g.seatName(core.Player2), core.ColorBrightRed)
	dst.DrawTextColored(x0, y, strings.Repeat("═", span), core.ColorOrange)
	dst.SetColored(x0+span/2, y-1, '┃', core.ColorGray)

	knot := x0 + (g.rope+limit)*(span-1)/(2*limit)
	dst.SetColored(knot, y, '◆', core.ColorBrightYellow)
}

func (g *Game) drawSeat(dst *core.Screen, id core.PlayerID, x, w, y int) {
	p := g.Player(id)
	center := func(row int, text string, c core.Color) {
		dst.DrawTextColored(x+(w-len([]rune(text)))/2, row, text, c)
	}

	keys := "1-4 / click"
	if id == core.Player2 {
		keys = "7 8 9 0"
		if g.mode == multiplayer.MatchModeVsCPU {
			keys = "thinking…"
		}
	}
	center(y, fmt.Sprintf("%s  streak %d", g.seatName(id), p.Streak), core.ColorWhite)
	if p.Stunned() {
		center(y+2, "STUNNED", core.ColorBrightRed)
	} else {
		center(y+2, p.Problem.Text+" = ?", core.ColorBrightWhite)
	}

	var labels []string
	for i, v := range p.Problem.Options {
		labels = append(labels, fmt.Sprintf("[%d] %d", i+1, v))
	}
	row := strings.Join(labels, "  ")
	ox := x + (w-len(row))/2
	if id == core.Player1 {
		g.boxes = g.boxes[:0]
		cx := ox
		for _, l := range labels {
			g.boxes = append(g.boxes, core.NewRect(cx, y+4, len(l), 1))
			cx += len(l) + 2
		}
	}
	dst.DrawTextColored(ox, y+4, row, core.ColorYellow)
	center(y+5, keys, core.ColorGray)

	if p.Last != ActionNone {
		c := core.ColorBrightGreen
		switch p.Last {
		case ActionHulk:
			c = core.ColorBrightYellow
		case ActionSlip:
			c = core.ColorBrightRed
		}
		center(y+7, p.Last.String(), c)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.over,
		Paused:   g.session.Paused(),
		Won:      g.over && g.winner == core.Player1,
	}
}

func init() {
	registry.Register(GameID, func(opts registry.Options) registry.Game {
		return New(opts)
	})
}
