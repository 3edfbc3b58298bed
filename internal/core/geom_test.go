package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Circle
		expected bool
	}{
		{
			name:     "overlapping",
			a:        Circle{C: V(0, 0), R: 5},
			b:        Circle{C: V(8, 0), R: 4},
			expected: true,
		},
		{
			name:     "apart",
			a:        Circle{C: V(0, 0), R: 5},
			b:        Circle{C: V(11, 0), R: 4},
			expected: false,
		},
		{
			name:     "touching boundary counts",
			a:        Circle{C: V(0, 0), R: 5},
			b:        Circle{C: V(9, 0), R: 4},
			expected: true,
		},
		{
			name:     "concentric",
			a:        Circle{C: V(3, 3), R: 1},
			b:        Circle{C: V(3, 3), R: 10},
			expected: true,
		},
		{
			name:     "diagonal apart",
			a:        Circle{C: V(0, 0), R: 1},
			b:        Circle{C: V(3, 4), R: 3.9},
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := CirclesOverlap(tc.a, tc.b)
			if result != tc.expected {
				t.Errorf("CirclesOverlap() = %v, expected %v", result, tc.expected)
			}
			if sym := CirclesOverlap(tc.b, tc.a); sym != result {
				t.Errorf("CirclesOverlap() not symmetric: %v vs %v", result, sym)
			}
		})
	}
}

func TestPointSegmentDistance(t *testing.T) {
	tests := []struct {
		name     string
		p        Vec
		s        Segment
		expected float64
	}{
		{
			name:     "perpendicular inside segment",
			p:        V(5, 5),
			s:        Segment{A: V(0, 0), B: V(10, 0)},
			expected: 5,
		},
		{
			name:     "beyond end clamps to B",
			p:        V(13, 4),
			s:        Segment{A: V(0, 0), B: V(10, 0)},
			expected: 5,
		},
		{
			name:     "before start clamps to A",
			p:        V(-3, -4),
			s:        Segment{A: V(0, 0), B: V(10, 0)},
			expected: 5,
		},
		{
			name:     "zero-length segment is point distance",
			p:        V(3, 4),
			s:        Segment{A: V(0, 0), B: V(0, 0)},
			expected: 5,
		},
		{
			name:     "point on segment",
			p:        V(2, 2),
			s:        Segment{A: V(0, 0), B: V(4, 4)},
			expected: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := PointSegmentDistance(tc.p, tc.s)
			if math.Abs(result-tc.expected) > eps {
				t.Errorf("PointSegmentDistance() = %v, expected %v", result, tc.expected)
			}
		})
	}
}

func TestCircleHitsSegmentInclusive(t *testing.T) {
	s := Segment{A: V(0, 0), B: V(10, 0)}
	if !CircleHitsSegment(Circle{C: V(5, 3), R: 3}, s) {
		t.Error("CircleHitsSegment() should count a touching boundary as a hit")
	}
	if CircleHitsSegment(Circle{C: V(5, 3.5), R: 3}, s) {
		t.Error("CircleHitsSegment() should miss a circle 0.5 above the segment")
	}
}

func TestPointInCircle(t *testing.T) {
	c := Circle{C: V(10, 10), R: 5}
	if !PointInCircle(V(15, 10), c) {
		t.Error("PointInCircle() should include the boundary")
	}
	if PointInCircle(V(15.1, 10), c) {
		t.Error("PointInCircle() should exclude points past the radius")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec
		expected Vec
	}{
		{name: "zero stays zero", v: V(0, 0), expected: V(0, 0)},
		{name: "axis", v: V(0, -7), expected: V(0, -1)},
		{name: "3-4-5", v: V(3, 4), expected: V(0.6, 0.8)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.v.Normalize()
			if math.Abs(result.X-tc.expected.X) > eps || math.Abs(result.Y-tc.expected.Y) > eps {
				t.Errorf("Normalize() = %v, expected %v", result, tc.expected)
			}
			if !result.IsFinite() {
				t.Errorf("Normalize() produced non-finite %v", result)
			}
		})
	}
}

func TestIntegrateFrameRateIndependent(t *testing.T) {
	start := Body{Pos: V(10, 20), Vel: V(120, -45)}

	splits := []struct {
		name   string
		deltas []float64
	}{
		{name: "one frame", deltas: []float64{1.5}},
		{name: "two frames", deltas: []float64{0.75, 0.75}},
		{name: "uneven frames", deltas: []float64{0.1, 0.4, 0.25, 0.75}},
		{name: "sixty hertz", deltas: repeat(1.0/60, 90)},
	}

	expected := start.Integrate(1.5).Pos
	for _, tc := range splits {
		t.Run(tc.name, func(t *testing.T) {
			b := start
			for _, dt := range tc.deltas {
				b = b.Integrate(dt)
			}
			if math.Abs(b.Pos.X-expected.X) > 1e-6 || math.Abs(b.Pos.Y-expected.Y) > 1e-6 {
				t.Errorf("Integrate() = %v, expected %v", b.Pos, expected)
			}
		})
	}
}

func TestDampClampsAtZero(t *testing.T) {
	b := Body{Vel: V(100, 0)}

	if got := b.Damp(0.2, 1).Vel.X; math.Abs(got-80) > eps {
		t.Errorf("Damp(0.2, 1) = %v, expected 80", got)
	}
	if got := b.Damp(5, 1).Vel.X; got != 0 {
		t.Errorf("Damp(5, 1) = %v, expected 0", got)
	}
	if b.Vel.X != 100 {
		t.Error("Damp() must not mutate the receiver")
	}
}

func TestLimitSpeed(t *testing.T) {
	b := Body{Vel: V(30, 40)}.LimitSpeed(10)
	if math.Abs(b.Speed()-10) > eps {
		t.Errorf("LimitSpeed() speed = %v, expected 10", b.Speed())
	}
	slow := Body{Vel: V(3, 4)}.LimitSpeed(10)
	if slow.Vel != V(3, 4) {
		t.Errorf("LimitSpeed() changed a slow body to %v", slow.Vel)
	}
}

func TestCircleHitsBox(t *testing.T) {
	box := Box{C: V(50, 50), W: 70, H: 20}

	tests := []struct {
		name     string
		c        Circle
		expected bool
	}{
		{name: "inside", c: Circle{C: V(50, 50), R: 1}, expected: true},
		{name: "touching top", c: Circle{C: V(50, 30), R: 10}, expected: true},
		{name: "above", c: Circle{C: V(50, 20), R: 10}, expected: false},
		{name: "near corner miss", c: Circle{C: V(92, 67), R: 9}, expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if result := CircleHitsBox(tc.c, box); result != tc.expected {
				t.Errorf("CircleHitsBox() = %v, expected %v", result, tc.expected)
			}
		})
	}
}

func TestNearest(t *testing.T) {
	points := []Vec{V(100, 0), V(10, 0), V(0, 50)}

	if got := Nearest(V(0, 0), points, 200); got != 1 {
		t.Errorf("Nearest() = %d, expected 1", got)
	}
	if got := Nearest(V(0, 0), points, 5); got != -1 {
		t.Errorf("Nearest() out of range = %d, expected -1", got)
	}
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name        string
		v, normal   Vec
		restitution float64
		expected    Vec
	}{
		{name: "head on loses energy", v: V(-100, 0), normal: V(1, 0), restitution: 0.4, expected: V(40, 0)},
		{name: "oblique keeps tangent", v: V(-100, 30), normal: V(1, 0), restitution: 1, expected: V(100, 30)},
		{name: "normal is normalized", v: V(0, 100), normal: V(0, -5), restitution: 0.5, expected: V(0, -50)},
		{name: "moving away unchanged", v: V(50, 10), normal: V(1, 0), restitution: 0.4, expected: V(50, 10)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Reflect(tc.v, tc.normal, tc.restitution)
			if math.Abs(got.X-tc.expected.X) > eps || math.Abs(got.Y-tc.expected.Y) > eps {
				t.Errorf("Reflect(%v, %v, %v) = %v, expected %v", tc.v, tc.normal, tc.restitution, got, tc.expected)
			}
		})
	}
}

func TestPoolRecyclesByIndex(t *testing.T) {
	p := NewPool[int](4)

	a := p.Acquire(1)
	b := p.Acquire(2)
	p.Release(a)

	c := p.Acquire(3)
	if c != a {
		t.Errorf("Acquire() after Release = %d, expected recycled slot %d", c, a)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", p.Len())
	}
	if p.Cap() != 2 {
		t.Errorf("Cap() = %d, expected 2", p.Cap())
	}
	if v := p.Get(b); v == nil || *v != 2 {
		t.Errorf("Get(%d) = %v, expected 2", b, v)
	}

	p.Release(a)
	p.Release(a) // double release is a no-op
	if p.Len() != 1 {
		t.Errorf("Len() after double release = %d, expected 1", p.Len())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name          string
		val, min, max int
		expected      int
	}{
		{name: "within range", val: 5, min: 0, max: 10, expected: 5},
		{name: "below min", val: -5, min: 0, max: 10, expected: 0},
		{name: "above max", val: 15, min: 0, max: 10, expected: 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if result := Clamp(tc.val, tc.min, tc.max); result != tc.expected {
				t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
			}
		})
	}
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 50; i++ {
		x, y := a.Between(3, 9), b.Between(3, 9)
		if x != y {
			t.Fatalf("Between() diverged at %d: %d vs %d", i, x, y)
		}
		if x < 3 || x > 9 {
			t.Fatalf("Between(3, 9) = %d out of range", x)
		}
	}
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
