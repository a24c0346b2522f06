package mathutil

import "math"

// Vec2 is a 2-component vector in pixel space (value type, stack-allocated).
type Vec2 [2]float64

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a[0] + b[0], a[1] + b[1]}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a[0] - b[0], a[1] - b[1]}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v[0] * s, v[1] * s}
}

func (a Vec2) Dot(b Vec2) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1])
}

// Dist returns the Euclidean distance between a and b.
func (a Vec2) Dist(b Vec2) float64 {
	return a.Sub(b).Len()
}

// DistToSegment returns the distance from p to the closed segment a-b.
// The projection parameter is clamped to [0,1]; a zero-length segment
// projects to a, so the result is the distance to that single point.
func DistToSegment(p, a, b Vec2) float64 {
	v := b.Sub(a)
	vlen2 := v.Dot(v)
	t := 0.0
	if vlen2 != 0 {
		t = p.Sub(a).Dot(v) / vlen2
	}
	t = Clamp01(t)
	return p.Dist(a.Add(v.Scale(t)))
}
