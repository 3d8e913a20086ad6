package quiz

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/math-arcade/internal/core"
)

// DrawHUD writes the status line.
func (q *Runner) DrawHUD(dst *core.Screen, title string) {
	parts := []string{title, fmt.Sprintf("Score: %d", q.Score.Score)}
	if q.Config.Lives > 0 {
		parts = append(parts, "Lives: "+strings.Repeat("♥", q.Score.Lives))
	}
	if q.Config.Rounds > 0 {
		round := core.Min(q.Round+1, q.Config.Rounds)
		parts = append(parts, fmt.Sprintf("Round: %d/%d", round, q.Config.Rounds))
	}
	if q.Levelled || q.Config.StartLevel > 0 {
		parts = append(parts, fmt.Sprintf("Level: %d", q.Level))
	}
	if left, ok := q.Remaining(); ok {
		s := int(left.Seconds() + 0.999)
		parts = append(parts, fmt.Sprintf("Time: %d:%02d", s/60, s%60))
	}
	if q.Score.Streak >= 3 {
		parts = append(parts, fmt.Sprintf("Combo x%d", q.Score.Streak/3+1))
	}
	dst.DrawText(1, 0, " "+strings.Join(parts, "  ")+" ")
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// DrawPrompt centers the question text.
func (q *Runner) DrawPrompt(dst *core.Screen, y int) {
	dst.DrawTextCenteredColored(y, q.Question.Prompt, core.ColorBrightWhite)
}

// DrawOptions lays the options out on one row and remembers their hitboxes
// for mouse clicks.
func (q *Runner) DrawOptions(dst *core.Screen, y int) {
	labels := make([]string, len(q.Question.Options))
	total := 0
	for i, opt := range q.Question.Options {
		labels[i] = fmt.Sprintf(" [%d] %s ", i+1, opt)
		total += len([]rune(labels[i])) + 2
	}

	x := (dst.Width() - total) / 2
	if x < 0 {
		x = 0
	}
	q.boxes = q.boxes[:0]
	for i, label := range labels {
		w := len([]rune(label))
		dst.DrawTextColored(x, y, label, q.optionColor(i))
		if i == q.Cursor && q.Verdict == VerdictNone {
			dst.DrawHLine(x, y+1, w, '▔')
		}
		q.boxes = append(q.boxes, core.NewRect(x, y, w, 1))
		x += w + 2
	}
}

func (q *Runner) optionColor(i int) core.Color {
	switch {
	case q.Verdict != VerdictNone && i == q.Question.Answer && (q.Verdict == VerdictRight || !q.RetryOnWrong):
		return core.ColorBrightGreen
	case q.Verdict == VerdictWrong && i == q.Picked:
		return core.ColorBrightRed
	case i == q.Cursor && q.Verdict == VerdictNone:
		return core.ColorBrightYellow
	default:
		return core.ColorWhite
	}
}

// DrawFeedback shows the verdict of the latest answer.
func (q *Runner) DrawFeedback(dst *core.Screen, y int) {
	switch q.Verdict {
	case VerdictRight:
		dst.DrawTextCenteredColored(y, "Correct!", core.ColorBrightGreen)
	case VerdictWrong:
		msg := "Not quite!"
		if q.Question.Hint != "" {
			msg += " " + q.Question.Hint
		}
		dst.DrawTextCenteredColored(y, msg, core.ColorBrightRed)
	}
}

// DrawOverlay draws the pause and game-over boxes.
func (q *Runner) DrawOverlay(dst *core.Screen) {
	if q.Paused() {
		DrawMessage(dst, "PAUSED", "Press P to resume")
	}
	if q.Over {
		title := "GAME OVER"
		if q.Won {
			title = "WELL DONE!"
		}
		DrawMessage(dst, title, fmt.Sprintf("Score: %d  Coins: +%d  |  Press R to restart", q.Score.Score, q.Earned))
	}
}

// DrawMessage draws a message box in the center of the screen.
func DrawMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
