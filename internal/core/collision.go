package core

import "math"

// Circle is a centre point with a radius.
type Circle struct {
	C Vec
	R float64
}

// Segment is a line segment between A and B.
type Segment struct {
	A, B Vec
}

// SegmentAt builds a segment of the given length centred on c and rotated by
// theta radians.
func SegmentAt(c Vec, length, theta float64) Segment {
	half := FromAngle(theta, length/2)
	return Segment{A: c.Sub(half), B: c.Add(half)}
}

// Len returns the segment length.
func (s Segment) Len() float64 {
	return s.A.Dist(s.B)
}

// CirclesOverlap reports whether two circles touch or overlap.
// Touching boundaries count as a hit.
func CirclesOverlap(a, b Circle) bool {
	r := a.R + b.R
	return a.C.Dist2(b.C) <= r*r
}

// PointInCircle reports whether p lies inside or on c.
func PointInCircle(p Vec, c Circle) bool {
	return p.Dist2(c.C) <= c.R*c.R
}

// ClosestOnSegment projects p onto s with the parameter clamped to [0,1].
// A zero-length segment returns its start point.
func ClosestOnSegment(p Vec, s Segment) Vec {
	ab := s.B.Sub(s.A)
	l2 := ab.Len2()
	if l2 == 0 {
		return s.A
	}
	t := ClampF(p.Sub(s.A).Dot(ab)/l2, 0, 1)
	return s.A.Add(ab.Scale(t))
}

// PointSegmentDistance returns the distance from p to the nearest point of s.
func PointSegmentDistance(p Vec, s Segment) float64 {
	return p.Dist(ClosestOnSegment(p, s))
}

// CircleHitsSegment reports whether c touches s.
func CircleHitsSegment(c Circle, s Segment) bool {
	return PointSegmentDistance(c.C, s) <= c.R
}

// Box is an axis-aligned rectangle in world units, centred on C.
type Box struct {
	C    Vec
	W, H float64
}

// Min returns the top-left corner.
func (b Box) Min() Vec {
	return Vec{X: b.C.X - b.W/2, Y: b.C.Y - b.H/2}
}

// Max returns the bottom-right corner.
func (b Box) Max() Vec {
	return Vec{X: b.C.X + b.W/2, Y: b.C.Y + b.H/2}
}

// ClosestOnBox clamps p into b.
func ClosestOnBox(p Vec, b Box) Vec {
	lo, hi := b.Min(), b.Max()
	return Vec{X: ClampF(p.X, lo.X, hi.X), Y: ClampF(p.Y, lo.Y, hi.Y)}
}

// CircleHitsBox reports whether c touches b.
func CircleHitsBox(c Circle, b Box) bool {
	return c.C.Dist2(ClosestOnBox(c.C, b)) <= c.R*c.R
}

// Nearest returns the index of the point closest to p within maxDist, or -1.
func Nearest(p Vec, points []Vec, maxDist float64) int {
	best := -1
	bestD := maxDist * maxDist
	for i, q := range points {
		if d := p.Dist2(q); d <= bestD {
			best = i
			bestD = d
		}
	}
	return best
}

// Reflect bounces v off a surface with the given normal, keeping restitution
// of the reflected component.
func Reflect(v, normal Vec, restitution float64) Vec {
	n := normal.Normalize()
	d := v.Dot(n)
	if d >= 0 {
		return v
	}
	return v.Sub(n.Scale(d * (1 + restitution)))
}

// Wrap maps x into [lo, hi] by jumping to the opposite edge.
func Wrap(x, lo, hi float64) float64 {
	if x < lo {
		return hi
	}
	if x > hi {
		return lo
	}
	return x
}

// Finite reports whether f is neither NaN nor infinite.
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
