package engine

import (
	"math"
	"time"

	"github.com/vovakirdan/math-arcade/internal/core"
)

// DefaultTrailLen is the number of drag points kept for slice gestures.
const DefaultTrailLen = 8

// TrailPoint is one sample of a drag gesture in world units.
type TrailPoint struct {
	X, Y float64
	At   time.Time
}

// Vec returns the point as a vector.
func (p TrailPoint) Vec() core.Vec2 {
	return core.Vec2{X: p.X, Y: p.Y}
}

// Trail is a bounded buffer of the newest drag points.
type Trail struct {
	points []TrailPoint
	max    int
}

// NewTrail creates a trail that keeps at most n points.
func NewTrail(n int) *Trail {
	if n < 2 {
		n = 2
	}
	return &Trail{points: make([]TrailPoint, 0, n), max: n}
}

// Append pushes p and drops the oldest points beyond capacity. Points with
// NaN or infinite coordinates are discarded.
func (t *Trail) Append(p TrailPoint) {
	if !core.IsFinite(p.X, p.Y) {
		return
	}
	if len(t.points) == t.max {
		copy(t.points, t.points[1:])
		t.points = t.points[:t.max-1]
	}
	t.points = append(t.points, p)
}

// LastSegment returns the two newest points.
func (t *Trail) LastSegment() (core.Vec2, core.Vec2, bool) {
	n := len(t.points)
	if n < 2 {
		return core.Vec2{}, core.Vec2{}, false
	}
	return t.points[n-2].Vec(), t.points[n-1].Vec(), true
}

// Points returns a copy of the buffered points, oldest first.
func (t *Trail) Points() []TrailPoint {
	return append([]TrailPoint(nil), t.points...)
}

// Len returns the number of buffered points.
func (t *Trail) Len() int {
	return len(t.points)
}

// Clear empties the trail, e.g. on pointer release.
func (t *Trail) Clear() {
	t.points = t.points[:0]
}

// ScalarControl is a continuous input such as an angle slider. Values are
// snapped to Step and then clamped to [Min, Max], or wrapped into
// [Min, Max) when Wrap is set.
type ScalarControl struct {
	Min, Max float64
	Step     float64
	Wrap     bool
	value    float64
}

// NewScalarControl creates a control holding initial.
func NewScalarControl(lo, hi, step float64, wrap bool, initial float64) *ScalarControl {
	c := &ScalarControl{Min: lo, Max: hi, Step: step, Wrap: wrap, value: lo}
	c.Set(initial)
	return c
}

// Value returns the current setting.
func (c *ScalarControl) Value() float64 {
	return c.value
}

// Int returns the current setting rounded to the nearest integer.
func (c *ScalarControl) Int() int {
	return int(math.Round(c.value))
}

// Set stores v after snapping and range enforcement. Non-finite values are
// ignored.
func (c *ScalarControl) Set(v float64) {
	if !core.IsFinite(v) {
		return
	}
	if c.Step > 0 {
		v = math.Round(v/c.Step) * c.Step
	}
	if c.Wrap {
		span := c.Max - c.Min
		if span > 0 {
			v = math.Mod(v-c.Min, span)
			if v < 0 {
				v += span
			}
			v += c.Min
		}
	} else {
		v = core.ClampF(v, c.Min, c.Max)
	}
	c.value = v
}

// Nudge moves the value by delta.
func (c *ScalarControl) Nudge(delta float64) {
	c.Set(c.value + delta)
}

// SnapVector rounds a drag delta to whole grid units.
func SnapVector(dx, dy float64) (int, int) {
	if !core.IsFinite(dx, dy) {
		return 0, 0
	}
	return int(math.Round(dx)), int(math.Round(dy))
}

// Viewport maps between terminal cells and a fixed-size world. Games
// simulate in world units so that behaviour doesn't depend on terminal size.
type Viewport struct {
	WorldW, WorldH   float64
	ScreenW, ScreenH int
	// Top is the number of rows reserved above the play field (HUD).
	Top int
}

// ToWorld converts a cell coordinate (cell centre) to world units.
func (v Viewport) ToWorld(cx, cy float64) core.Vec2 {
	h := v.ScreenH - v.Top
	if v.ScreenW <= 0 || h <= 0 {
		return core.Vec2{X: math.NaN(), Y: math.NaN()}
	}
	return core.Vec2{
		X: (cx + 0.5) * v.WorldW / float64(v.ScreenW),
		Y: (cy - float64(v.Top) + 0.5) * v.WorldH / float64(h),
	}
}

// ToScreen converts a world position to the containing cell.
func (v Viewport) ToScreen(p core.Vec2) (int, int) {
	h := v.ScreenH - v.Top
	if v.WorldW <= 0 || v.WorldH <= 0 {
		return -1, -1
	}
	x := int(math.Floor(p.X * float64(v.ScreenW) / v.WorldW))
	y := int(math.Floor(p.Y*float64(h)/v.WorldH)) + v.Top
	return x, y
}
