package core

import "math"

// Vec2 is a point or displacement in continuous world space.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between two points.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Finite reports whether both components are finite.
func (v Vec2) Finite() bool {
	return IsFinite(v.X, v.Y)
}

// Polar converts a heading in degrees and a distance from origin into a
// cartesian offset. 0 degrees points right, 90 degrees points up.
func Polar(deg, dist float64) Vec2 {
	rad := deg * math.Pi / 180
	return Vec2{X: math.Cos(rad) * dist, Y: -math.Sin(rad) * dist}
}

// Circle is a disc used for hit-testing entities.
type Circle struct {
	Center Vec2
	Radius float64
}

// SegmentHitsCircle reports whether the segment p1-p2 passes within the
// circle's radius. The centre is projected onto the segment with the
// projection parameter clamped to [0,1]. A zero-length or non-finite segment
// never hits.
func SegmentHitsCircle(p1, p2 Vec2, c Circle) bool {
	if !p1.Finite() || !p2.Finite() || !c.Center.Finite() {
		return false
	}
	d := p2.Sub(p1)
	lenSq := d.Dot(d)
	if lenSq == 0 {
		return false
	}
	t := ClampF(c.Center.Sub(p1).Dot(d)/lenSq, 0, 1)
	closest := p1.Add(d.Scale(t))
	return closest.Dist(c.Center) <= c.Radius
}
