// Package functionmachine implements Function Machine: feed a hidden linear
// rule a few test inputs, then type what it outputs for a new one.
package functionmachine

import (
	"fmt"
	"math/rand"
	"slices"
	"strconv"
	"time"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/games/quiz"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

// GameID is the registry key for Function Machine.
const GameID = "function-machine"

const (
	probeCount  = 3
	feedDelay   = 600 * time.Millisecond
	outputDelay = 400 * time.Millisecond
	maxEntry    = 4
)

// Rule is the hidden function y = M·x + C.
type Rule struct {
	M, C int
}

// Apply runs the rule on x.
func (r Rule) Apply(x int) int {
	return r.M*x + r.C
}

// String describes the rule in words.
func (r Rule) String() string {
	switch {
	case r.C == 0:
		return fmt.Sprintf("Multiply by %d", r.M)
	case r.M == 1:
		return fmt.Sprintf("Add %d", r.C)
	default:
		return fmt.Sprintf("Multiply by %d and add %d", r.M, r.C)
	}
}

// GenerateRule picks a rule for the level: multiplication up to level 3,
// addition up to level 6, then both.
func GenerateRule(r *rand.Rand, level int) Rule {
	switch {
	case level <= 3:
		return Rule{M: engine.IntBetween(r, 2, 5)}
	case level <= 6:
		return Rule{M: 1, C: engine.IntBetween(r, 1, 9)}
	default:
		return Rule{M: engine.IntBetween(r, 2, 4), C: engine.IntBetween(r, 1, 5)}
	}
}

// Phase is the stage of one machine.
type Phase int

const (
	PhaseInvestigate Phase = iota
	PhaseDeduce
)

// Probe is one recorded run of the machine.
type Probe struct {
	In, Out int
}

// Machine is the state of one level: the rule, its test inputs and what the
// player has learned so far.
type Machine struct {
	Rule    Rule
	Probes  []int
	Used    []bool
	History []Probe
	Target  int
	Phase   Phase
	Entry   string

	running int // index into Probes, -1 when idle
	anim    engine.Reveal
	animTok engine.Token
}

// NewMachine draws a rule, three distinct test inputs in 1..10 and a target
// input that is not one of them.
func NewMachine(r *rand.Rand, level int) *Machine {
	m := &Machine{Rule: GenerateRule(r, level), running: -1}

	seen := map[int]bool{}
	for len(m.Probes) < probeCount {
		v := engine.IntBetween(r, 1, 10)
		if !seen[v] {
			seen[v] = true
			m.Probes = append(m.Probes, v)
		}
	}
	slices.Sort(m.Probes)
	m.Used = make([]bool, probeCount)

	m.Target = engine.IntBetween(r, 1, 10)
	for seen[m.Target] {
		m.Target = engine.IntBetween(r, 1, 10)
	}
	return m
}

// Running reports the probe being processed.
func (m *Machine) Running() (int, bool) {
	return m.running, m.running >= 0
}

// run starts processing probe i.
func (m *Machine) run(i int) bool {
	if m.running >= 0 || i < 0 || i >= len(m.Probes) || m.Used[i] {
		return false
	}
	m.running = i
	m.animTok = m.anim.Start(feedDelay, outputDelay)
	return true
}

// advance moves the running probe along and records it once the output has
// come out.
func (m *Machine) advance(dt time.Duration) {
	if m.running < 0 {
		return
	}
	m.anim.Advance(m.animTok, dt)
	if !m.anim.Done() {
		return
	}
	in := m.Probes[m.running]
	m.History = append(m.History, Probe{In: in, Out: m.Rule.Apply(in)})
	m.Used[m.running] = true
	m.running = -1
	m.anim.Cancel()
	if !slices.Contains(m.Used, false) {
		m.Phase = PhaseDeduce
	}
}

// output returns what the machine shows while a probe runs.
func (m *Machine) output() (in int, out string) {
	if m.running < 0 {
		return 0, ""
	}
	in = m.Probes[m.running]
	if m.anim.Cursor() >= 1 {
		return in, strconv.Itoa(m.Rule.Apply(in))
	}
	return in, "…"
}

// typeRune edits the answer being typed.
func (m *Machine) typeRune(r rune) {
	switch {
	case r >= '0' && r <= '9':
		if len(m.Entry) < maxEntry {
			m.Entry += string(r)
		}
	case r == '-':
		if m.Entry == "" {
			m.Entry = "-"
		}
	case r == '\b' || r == 0x7f:
		if m.Entry != "" {
			m.Entry = m.Entry[:len(m.Entry)-1]
		}
	}
}

func nextMachine(r *rand.Rand, level int) quiz.Question {
	m := NewMachine(r, level)
	return quiz.Question{
		Prompt: fmt.Sprintf("If the input is %d, what is the output?", m.Target),
		Hint:   "The rule was: " + m.Rule.String() + ".",
		Data:   m,
	}
}

// Game implements Function Machine.
type Game struct {
	opts  registry.Options
	quiz  quiz.Runner
	probe []core.Rect
}

// New creates a Function Machine instance.
func New(opts registry.Options) *Game {
	return &Game{opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Function Machine"
}

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	qc, err := config.LoadQuiz(GameID, g.opts.ConfigPath)
	if err != nil {
		qc = config.DefaultQuizConfig()
		qc.Lives = 0
	}
	config.ApplyQuizPreset(&qc, g.opts.Difficulty)

	g.quiz = quiz.Runner{
		Config:       qc,
		Rewards:      g.opts.Sink(),
		Next:         nextMachine,
		Coins:        func(_, level int) int { return 20 + 5*level },
		RetryOnWrong: true,
		Levelled:     true,
	}
	g.quiz.Start(cfg, g.opts.Timer(quiz.DefaultSessionTime))
}

// Machine returns the current level's machine.
func (g *Game) Machine() *Machine {
	m, _ := g.quiz.Question.Data.(*Machine)
	return m
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	dt, events, ok := g.quiz.Frame(in)
	m := g.Machine()
	if !ok || m == nil {
		return core.StepResult{State: g.State(), Events: events}
	}

	m.advance(dt)
	if g.quiz.Busy() {
		return core.StepResult{State: g.State()}
	}

	switch m.Phase {
	case PhaseInvestigate:
		if _, busy := m.Running(); busy {
			break
		}
		if i := in.Choice(); i >= 0 {
			m.run(i)
			break
		}
		for _, p := range in.Pointer {
			if p.Kind != core.PointerPress {
				continue
			}
			for i, b := range g.probe {
				if b.Contains(int(p.X), int(p.Y)) {
					m.run(i)
				}
			}
		}
		if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
			m.Phase = PhaseDeduce
		}
	case PhaseDeduce:
		for _, r := range in.Runes {
			m.typeRune(r)
		}
		if in.Has(core.ActionConfirm) && m.Entry != "" && m.Entry != "-" {
			v, err := strconv.Atoi(m.Entry)
			right := err == nil && v == m.Rule.Apply(m.Target)
			if right {
				m.History = append(m.History, Probe{In: m.Target, Out: v})
			}
			m.Entry = ""
			events = g.quiz.Judge(right)
		}
	}
	return core.StepResult{State: g.State(), Events: events}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.quiz.DrawHUD(dst, g.Title())
	m := g.Machine()
	if m == nil {
		return
	}

	cx := dst.Width() / 2

	// The machine
	box := core.NewRect(cx-8, 3, 16, 5)
	dst.DrawBox(box)
	gear := "⚙"
	color := core.ColorBrightCyan
	switch g.quiz.Verdict {
	case quiz.VerdictRight:
		gear, color = "✓", core.ColorBrightGreen
	case quiz.VerdictWrong:
		gear, color = "✗", core.ColorBrightRed
	}
	dst.DrawTextColored(cx-1, 5, gear, color)

	if in, out := m.output(); out != "" {
		dst.DrawTextColored(box.X-8, 5, fmt.Sprintf("%3d →", in), core.ColorBrightYellow)
		dst.DrawTextColored(box.Right()+1, 5, "→ "+out, core.ColorBrightGreen)
	}

	// History table
	tx := cx + 14
	dst.DrawText(tx, 3, " In │ Out")
	dst.DrawText(tx, 4, "────┼────")
	for i, p := range m.History {
		dst.DrawText(tx, 5+i, fmt.Sprintf("%3d │ %d", p.In, p.Out))
	}

	switch m.Phase {
	case PhaseInvestigate:
		dst.DrawTextCentered(10, "Test these inputs to find the rule:")
		g.probe = g.probe[:0]
		x := cx - probeCount*4
		for i, v := range m.Probes {
			label := fmt.Sprintf("[%d] %2d", i+1, v)
			c := core.ColorWhite
			if m.Used[i] {
				c = core.ColorGray
			}
			dst.DrawTextColored(x, 12, label, c)
			g.probe = append(g.probe, core.NewRect(x, 12, len(label), 1))
			x += len(label) + 2
		}
		dst.DrawTextCenteredColored(14, "Enter: I know the rule!", core.ColorGray)
	case PhaseDeduce:
		g.quiz.DrawPrompt(dst, 10)
		entry := m.Entry
		if entry == "" {
			entry = "?"
		}
		dst.DrawTextCenteredColored(12, "[ "+entry+" ]", core.ColorBrightYellow)
		dst.DrawTextCenteredColored(14, "Type a number and press Enter", core.ColorGray)
	}

	g.quiz.DrawFeedback(dst, 16)
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
