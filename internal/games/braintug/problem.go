package braintug

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/math-arcade/internal/engine"
)

// Problem is one arithmetic question with four choices.
type Problem struct {
	Text    string
	Answer  int
	Options []int
}

// Correct returns the index of the right option.
func (p Problem) Correct() int {
	return engine.IndexOf(p.Options, p.Answer)
}

// GenerateProblem draws an addition (1..50 each), a subtraction with a
// positive result, or a times-table product (2..13 each).
func GenerateProblem(r *rand.Rand) Problem {
	var a, b, answer int
	var op string
	switch r.Intn(3) {
	case 0:
		a, b = engine.IntBetween(r, 1, 50), engine.IntBetween(r, 1, 50)
		op, answer = "+", a+b
	case 1:
		a = engine.IntBetween(r, 20, 69)
		b = engine.IntBetween(r, 1, a-1)
		op, answer = "-", a-b
	default:
		a, b = engine.IntBetween(r, 2, 13), engine.IntBetween(r, 2, 13)
		op, answer = "×", a*b
	}
	return Problem{
		Text:    fmt.Sprintf("%d %s %d", a, op, b),
		Answer:  answer,
		Options: engine.NearbyOptions(answer, -10, 10, 4, r),
	}
}
