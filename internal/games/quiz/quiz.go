// Package quiz is the turn-based harness shared by the multiple-choice
// mini-games. A Runner owns rounds, lives, the optional session timer and
// the short feedback pause after each answer; games only generate questions
// and draw their own artwork.
package quiz

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/engine"
)

// DefaultSessionTime is used by timed games when neither the config nor the
// profile sets a length.
const DefaultSessionTime = 60 * time.Second

// Question is one multiple-choice round.
type Question struct {
	Prompt  string
	Options []string
	Answer  int    // index into Options
	Hint    string // shown after a wrong answer

	// Data is game-specific state used to draw the question.
	Data any
}

// Generator produces the next question for a level.
type Generator func(r *rand.Rand, level int) Question

// Verdict is the result of the latest answer.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictRight
	VerdictWrong
)

// Runner drives one quiz session.
type Runner struct {
	Config  config.QuizConfig
	Rewards engine.Rewards
	Next    Generator

	// Points overrides the per-answer score; streak counts correct answers
	// before this one.
	Points func(streak int) int
	// Coins overrides the per-answer payout.
	Coins func(points, level int) int
	// RetryOnWrong keeps the same question after a mistake.
	RetryOnWrong bool
	// Levelled advances the level on every correct answer.
	Levelled bool

	session  engine.Session
	rng      *rand.Rand
	timer    *engine.Countdown
	feedback engine.Reveal
	fbTok    engine.Token

	Question Question
	Cursor   int
	Picked   int
	Verdict  Verdict

	Score   engine.ScoreState
	Level   int
	Round   int // questions answered correctly or moved past
	Correct int
	Earned  int // coins paid this session
	Over    bool
	Won     bool

	boxes []core.Rect
}

// Start begins a new session. sessionTime is the profile default used by
// timed games whose config does not set a limit.
func (q *Runner) Start(cfg core.RuntimeConfig, sessionTime time.Duration) {
	q.rng = rand.New(rand.NewSource(cfg.Seed))
	q.Score = engine.ScoreState{Lives: q.Config.Lives}
	q.Level = q.Config.StartLevel
	if q.Level < 1 {
		q.Level = 1
	}
	q.Round = 0
	q.Correct = 0
	q.Earned = 0
	q.Over = false
	q.Won = false
	q.feedback.Cancel()

	q.timer = nil
	if q.Config.Timed {
		total := time.Duration(q.Config.TimeLimit) * time.Second
		if total <= 0 {
			total = sessionTime
		}
		if total <= 0 {
			total = DefaultSessionTime
		}
		q.timer = engine.NewCountdown(total)
	}

	q.session.Start(cfg.TickRate)
	q.ask()
}

// Rand exposes the session RNG.
func (q *Runner) Rand() *rand.Rand {
	return q.rng
}

// ask draws the next question.
func (q *Runner) ask() {
	q.Question = q.Next(q.rng, q.Level)
	q.Cursor = 0
	q.Picked = -1
	q.Verdict = VerdictNone
}

// Busy reports whether the runner is showing feedback and ignoring answers.
func (q *Runner) Busy() bool {
	return q.feedback.Live()
}

// Paused reports whether the session is paused.
func (q *Runner) Paused() bool {
	return q.session.Paused()
}

// Remaining returns the time left on a timed session.
func (q *Runner) Remaining() (time.Duration, bool) {
	if q.timer == nil {
		return 0, false
	}
	return q.timer.Remaining(), true
}

// Session exposes the frame clock for games that animate between answers.
func (q *Runner) Session() *engine.Session {
	return &q.session
}

// Frame advances clocks for a tick and returns the elapsed time. ok is false
// when nothing should happen this tick (paused, over).
func (q *Runner) Frame(in core.InputFrame) (time.Duration, []core.Event, bool) {
	if q.Over {
		return 0, nil, false
	}
	if in.Has(core.ActionPause) {
		q.session.TogglePause()
	}
	dt, ok := q.session.Frame(in.At)
	if !ok {
		return 0, nil, false
	}

	if q.timer != nil && q.timer.Tick(dt) {
		return dt, q.finish(q.Correct > 0), false
	}

	if q.feedback.Live() {
		if _, live := q.feedback.Advance(q.fbTok, dt); live && q.feedback.Done() {
			q.feedback.Cancel()
			if q.Verdict == VerdictWrong && q.RetryOnWrong {
				q.Picked = -1
				q.Verdict = VerdictNone
			} else {
				q.ask()
			}
		}
	}
	return dt, nil, true
}

// Step runs one tick of standard keyboard and mouse handling.
func (q *Runner) Step(in core.InputFrame) []core.Event {
	_, events, ok := q.Frame(in)
	if !ok {
		return events
	}
	return q.Input(in)
}

// Input applies answer keys, option clicks and cursor movement. Games that
// gate answering behind their own animation call it after Frame.
func (q *Runner) Input(in core.InputFrame) []core.Event {
	if q.Over || q.Busy() {
		return nil
	}

	n := len(q.Question.Options)
	if i := in.Choice(); i >= 0 && i < n {
		return q.Answer(i)
	}
	if n == 2 {
		switch {
		case in.Has(core.ActionFalse):
			return q.Answer(0)
		case in.Has(core.ActionTrue):
			return q.Answer(1)
		}
	}
	for _, p := range in.Pointer {
		if p.Kind != core.PointerPress {
			continue
		}
		for i, b := range q.boxes {
			if i < n && b.Contains(int(p.X), int(p.Y)) {
				return q.Answer(i)
			}
		}
	}

	switch {
	case in.Has(core.ActionLeft), in.Has(core.ActionUp):
		q.MoveCursor(-1)
	case in.Has(core.ActionRight), in.Has(core.ActionDown):
		q.MoveCursor(1)
	case in.Has(core.ActionConfirm), in.Has(core.ActionFire):
		return q.Answer(q.Cursor)
	}
	return nil
}

// MoveCursor shifts the highlighted option, wrapping around.
func (q *Runner) MoveCursor(delta int) {
	n := len(q.Question.Options)
	if n == 0 {
		return
	}
	q.Cursor = ((q.Cursor+delta)%n + n) % n
}

// Answer submits option i. Out-of-range picks and answers during feedback
// are ignored.
func (q *Runner) Answer(i int) []core.Event {
	if q.Over || q.Busy() || i < 0 || i >= len(q.Question.Options) {
		return nil
	}
	q.Picked = i

	if i == q.Question.Answer {
		return q.Judge(true)
	}
	return q.Judge(false)
}

// Judge records a right or wrong answer decided by the game.
func (q *Runner) Judge(right bool) []core.Event {
	if q.Over || q.Busy() {
		return nil
	}

	var events []core.Event
	if right {
		q.Verdict = VerdictRight
		points := q.Config.CorrectPoints
		if q.Points != nil {
			points = q.Points(q.Score.Streak)
		}
		q.Score.Hit(points)
		q.Correct++
		q.Round++
		events = append(events, core.EventHit)

		coins := q.Config.CorrectCoins
		if q.Coins != nil {
			coins = q.Coins(points, q.Level)
		}
		sink := q.sink()
		if coins > 0 {
			sink.AddCoins(coins)
			q.Earned += coins
			events = append(events, core.EventCoins)
		}
		sink.AddXP(points)

		if q.Levelled {
			q.Level++
			events = append(events, core.EventLevelUp)
		}
		if q.Config.Rounds > 0 && q.Round >= q.Config.Rounds {
			return append(events, q.finish(true)...)
		}
	} else {
		q.Verdict = VerdictWrong
		events = append(events, core.EventMiss)
		if q.Config.Lives > 0 {
			if q.Score.Miss() {
				return append(events, q.finish(false)...)
			}
		} else {
			q.Score.Streak = 0
		}
		if !q.RetryOnWrong {
			q.Round++
			if q.Config.Rounds > 0 && q.Round >= q.Config.Rounds {
				return append(events, q.finish(q.Correct > 0)...)
			}
		}
	}

	q.startFeedback()
	return events
}

func (q *Runner) startFeedback() {
	d := time.Duration(q.Config.FeedbackMs) * time.Millisecond
	q.fbTok = q.feedback.Start(d)
}

// finish ends the session, paying the completion bonus on a win.
func (q *Runner) finish(won bool) []core.Event {
	q.Over = true
	q.Won = won
	q.feedback.Cancel()
	q.session.Stop()

	events := []core.Event{core.EventGameOver}
	if won && q.Config.WinCoins > 0 {
		q.sink().AddCoins(q.Config.WinCoins)
		q.Earned += q.Config.WinCoins
		events = append(events, core.EventCoins)
	}
	return events
}

// End stops the session early, e.g. when a game-specific stage completes.
func (q *Runner) End(won bool) []core.Event {
	if q.Over {
		return nil
	}
	return q.finish(won)
}

func (q *Runner) sink() engine.Rewards {
	if q.Rewards == nil {
		return engine.NopRewards{}
	}
	return q.Rewards
}

// State returns the platform-facing game state.
func (q *Runner) State() core.GameState {
	return core.GameState{
		Score:    q.Score.Score,
		GameOver: q.Over,
		Paused:   q.session.Paused(),
		Won:      q.Won,
	}
}
