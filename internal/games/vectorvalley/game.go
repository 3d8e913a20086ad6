// Package vectorvalley implements Vector Valley. Stage one sorts physical
// quantities into scalars and vectors; stage two steers a rover across a
// grid by drawing displacement vectors around walls.
package vectorvalley

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
	"github.com/vovakirdan/math-arcade/internal/games/quiz"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

// GameID is the registry key for Vector Valley.
const GameID = "vector-valley"

const (
	// SortGoal is the number of correct classifications that opens stage two.
	SortGoal = 5
	// GridSize is the side of the navigation grid.
	GridSize = 10

	cellW      = 4
	moveFrames = 8
	moveStep   = 100 * time.Millisecond
	crashDelay = 1000 * time.Millisecond
	winDelay   = 1500 * time.Millisecond
)

// Stage is the part of the game being played.
type Stage int

const (
	StageSort Stage = iota
	StageNavigate
)

// MoveResult is the outcome of the latest vector.
type MoveResult int

const (
	MoveNone MoveResult = iota
	MoveCrash
	MoveArrived
)

// Game implements Vector Valley.
type Game struct {
	opts  registry.Options
	quiz  quiz.Runner
	stage Stage
	last  int // last quantity shown

	mission int
	pos     Point
	vec     Point
	drag    bool
	from    Point // position before the running move
	result  MoveResult

	anim    engine.Reveal
	animTok engine.Token
	fb      engine.Reveal
	fbTok   engine.Token

	originX, originY int // screen cell of grid (0, GridSize-1)
}

// New creates a Vector Valley instance.
func New(opts registry.Options) *Game {
	return &Game{opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Vector Valley"
}

// Reset starts a new session at the sorting stage.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	qc, err := config.LoadQuiz(GameID, g.opts.ConfigPath)
	if err != nil {
		qc = config.DefaultQuizConfig()
		qc.Lives, qc.Rounds, qc.WinCoins = 0, 0, 50
	}
	config.ApplyQuizPreset(&qc, g.opts.Difficulty)

	g.last = -1
	g.quiz = quiz.Runner{
		Config:  qc,
		Rewards: g.opts.Sink(),
		Next:    g.nextQuantity,
	}
	g.quiz.Start(cfg, g.opts.Timer(quiz.DefaultSessionTime))
	g.stage = StageSort

	g.originX = (cfg.ScreenW - GridSize*cellW) / 2
	g.originY = 3
	g.startMission(0)
}

func (g *Game) nextQuantity(r *rand.Rand, _ int) quiz.Question {
	i := r.Intn(len(quantities))
	for i == g.last {
		i = r.Intn(len(quantities))
	}
	g.last = i
	q := quantities[i]

	answer := 0
	if q.Vector {
		answer = 1
	}
	return quiz.Question{
		Prompt:  q.Text,
		Options: []string{"Scalar", "Vector"},
		Answer:  answer,
		Hint:    q.Hint,
		Data:    q,
	}
}

func (g *Game) startMission(i int) {
	g.mission = i
	g.pos = missions[i].Start
	g.vec = Point{}
	g.drag = false
	g.result = MoveNone
	g.anim.Cancel()
	g.fb.Cancel()
}

// Stage returns the current stage.
func (g *Game) Stage() Stage {
	return g.stage
}

// Position returns the rover's cell.
func (g *Game) Position() Point {
	return g.pos
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.stage == StageSort {
		events := g.quiz.Step(in)
		if g.quiz.Correct >= SortGoal && !g.quiz.Busy() && !g.quiz.Over {
			g.stage = StageNavigate
		}
		return core.StepResult{State: g.State(), Events: events}
	}

	dt, events, ok := g.quiz.Frame(in)
	if !ok {
		return core.StepResult{State: g.State(), Events: events}
	}

	if g.anim.Live() {
		g.anim.Advance(g.animTok, dt)
		if g.anim.Done() {
			g.anim.Cancel()
			events = append(events, g.land()...)
		}
		return core.StepResult{State: g.State(), Events: events}
	}
	if g.fb.Live() {
		g.fb.Advance(g.fbTok, dt)
		if g.fb.Done() {
			events = append(events, g.afterFeedback()...)
		}
		return core.StepResult{State: g.State(), Events: events}
	}

	g.steer(in)
	return core.StepResult{State: g.State(), Events: events}
}

// steer builds the vector from the keyboard or a drag and launches it.
func (g *Game) steer(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.vec.Y++
	case in.Has(core.ActionDown):
		g.vec.Y--
	case in.Has(core.ActionLeft):
		g.vec.X--
	case in.Has(core.ActionRight):
		g.vec.X++
	}

	for _, p := range in.Pointer {
		switch p.Kind {
		case core.PointerPress:
			g.drag = true
			g.vec = Point{}
		case core.PointerDrag:
			if g.drag {
				g.vec = g.dragVector(p)
			}
		case core.PointerRelease:
			if g.drag {
				g.vec = g.dragVector(p)
				g.drag = false
				g.launch()
			}
		}
	}

	if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
		g.launch()
	}
}

// dragVector converts a pointer position into a grid vector from the rover.
func (g *Game) dragVector(p core.PointerSample) Point {
	cx, cy := g.cellOnScreen(g.pos)
	dx := (p.X - float64(cx)) / cellW
	dy := -(p.Y - float64(cy))
	x, y := engine.SnapVector(dx, dy)
	return Point{x, y}
}

func (g *Game) launch() {
	if g.vec == (Point{}) {
		return
	}
	g.from = g.pos
	steps := make([]time.Duration, moveFrames)
	for i := range steps {
		steps[i] = moveStep
	}
	g.animTok = g.anim.Start(steps...)
}

// Crashes reports whether moving v from p leaves the grid or passes through
// a wall. Walls are checked at every whole step along the vector.
func Crashes(m Mission, p, v Point) bool {
	dst := Point{p.X + v.X, p.Y + v.Y}
	if dst.X < 0 || dst.X >= GridSize || dst.Y < 0 || dst.Y >= GridSize {
		return true
	}
	steps := core.Max(core.Abs(v.X), core.Abs(v.Y))
	for i := 1; i <= steps; i++ {
		ratio := float64(i) / float64(steps)
		c := Point{
			X: int(math.Round(float64(p.X) + float64(v.X)*ratio)),
			Y: int(math.Round(float64(p.Y) + float64(v.Y)*ratio)),
		}
		if slices.Contains(m.Walls, c) {
			return true
		}
	}
	return false
}

// land finishes a move.
func (g *Game) land() []core.Event {
	m := missions[g.mission]
	crashed := Crashes(m, g.from, g.vec)
	g.pos = Point{g.from.X + g.vec.X, g.from.Y + g.vec.Y}
	g.vec = Point{}

	switch {
	case crashed:
		g.result = MoveCrash
		g.fbTok = g.fb.Start(crashDelay)
		return []core.Event{core.EventMiss}
	case g.pos == m.Target:
		g.result = MoveArrived
		g.fbTok = g.fb.Start(winDelay)
		points := g.quiz.Config.CorrectPoints
		g.quiz.Score.Hit(points)
		g.opts.Sink().AddXP(points)
		return []core.Event{core.EventHit}
	}
	return nil
}

func (g *Game) afterFeedback() []core.Event {
	g.fb.Cancel()
	switch g.result {
	case MoveCrash:
		g.startMission(g.mission)
	case MoveArrived:
		if g.mission+1 < len(missions) {
			g.startMission(g.mission + 1)
			return []core.Event{core.EventLevelUp}
		}
		g.result = MoveNone
		return g.quiz.End(true)
	}
	return nil
}

func (g *Game) cellOnScreen(p Point) (int, int) {
	return g.originX + p.X*cellW + cellW/2, g.originY + (GridSize - 1 - p.Y)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.stage == StageSort {
		g.renderSort(dst)
		return
	}
	g.quiz.DrawHUD(dst, g.Title())
	g.renderGrid(dst)
	g.quiz.DrawOverlay(dst)
}

func (g *Game) renderSort(dst *core.Screen) {
	g.quiz.DrawHUD(dst, g.Title()+" · Sorting Station")

	progress := fmt.Sprintf("Progress %d/%d", core.Min(g.quiz.Correct, SortGoal), SortGoal)
	dst.DrawTextCenteredColored(3, progress, core.ColorGray)

	w := 40
	card := core.NewRect((dst.Width()-w)/2, 5, w, 5)
	dst.DrawBox(card)
	g.quiz.DrawPrompt(dst, 7)
	if g.quiz.Verdict == quiz.VerdictNone {
		dst.DrawTextCenteredColored(11, "Classify this physical quantity.", core.ColorGray)
	}
	g.quiz.DrawOptions(dst, 13)
	g.quiz.DrawFeedback(dst, 15)
	g.quiz.DrawOverlay(dst)
}

func (g *Game) renderGrid(dst *core.Screen) {
	m := missions[g.mission]
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			sx, sy := g.cellOnScreen(Point{x, y})
			dst.SetColored(sx, sy, '·', core.ColorGray)
		}
	}
	for _, w := range m.Walls {
		sx, sy := g.cellOnScreen(w)
		dst.DrawTextColored(sx-1, sy, "███", core.ColorRed)
	}
	tx, ty := g.cellOnScreen(m.Target)
	dst.SetColored(tx, ty, '◎', core.ColorBrightGreen)

	rover := g.pos
	if g.anim.Live() {
		f := float64(g.anim.Cursor()) / moveFrames
		rover = Point{
			X: g.from.X + int(math.Round(float64(g.vec.X)*f)),
			Y: g.from.Y + int(math.Round(float64(g.vec.Y)*f)),
		}
	} else if g.vec != (Point{}) {
		x0, y0 := g.cellOnScreen(g.pos)
		x1, y1 := g.cellOnScreen(Point{g.pos.X + g.vec.X, g.pos.Y + g.vec.Y})
		dst.DrawLine(x0, y0, x1, y1, '•', core.ColorBrightYellow)
		dst.SetColored(x1, y1, '✚', core.ColorBrightYellow)
	}
	rx, ry := g.cellOnScreen(rover)
	dst.SetColored(rx, ry, '▲', core.ColorBrightCyan)

	info := fmt.Sprintf("Mission %d/%d   Vector (%d, %d)", g.mission+1, len(missions), g.vec.X, g.vec.Y)
	dst.DrawTextCentered(g.originY+GridSize+1, info)
	switch g.result {
	case MoveCrash:
		dst.DrawTextCenteredColored(g.originY+GridSize+3, "CRASH! You hit a wall or left the valley.", core.ColorBrightRed)
	case MoveArrived:
		dst.DrawTextCenteredColored(g.originY+GridSize+3, "Target reached!", core.ColorBrightGreen)
	default:
		dst.DrawTextCenteredColored(g.originY+GridSize+3, "Arrows or drag to draw a vector, Enter to move", core.ColorGray)
	}
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
