package quiz

import "github.com/vovakirdan/math-arcade/internal/core"

// SwipeCells is the horizontal drag that counts as a swipe.
const SwipeCells = 4

// Swipe turns a horizontal press-drag-release into a true/false answer:
// right for true, left for false.
type Swipe struct {
	press *core.PointerSample
}

// Apply returns in with a completed swipe replaced by ActionTrue or
// ActionFalse. Frames without a swipe come back unchanged.
func (s *Swipe) Apply(in core.InputFrame) core.InputFrame {
	for _, p := range in.Pointer {
		switch p.Kind {
		case core.PointerPress:
			sample := p
			s.press = &sample
		case core.PointerRelease:
			if s.press == nil {
				continue
			}
			dx := p.X - s.press.X
			s.press = nil
			var a core.Action
			switch {
			case dx >= SwipeCells:
				a = core.ActionTrue
			case dx <= -SwipeCells:
				a = core.ActionFalse
			default:
				continue
			}
			out := in.Clone()
			out.Pointer = nil
			out.Set(a)
			return out
		}
	}
	return in
}

// Reset forgets a press in progress.
func (s *Swipe) Reset() {
	s.press = nil
}
