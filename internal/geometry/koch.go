package geometry

import "math"

const (
	// KochBaseLength is the offset of the first KochStep generation.
	KochBaseLength = 10.0
	// MaxKochDepth bounds KochSubdivide; depth 8 already yields 65536 segments.
	MaxKochDepth = 8
)

var sqrt3Half = math.Sqrt(3) / 2

// KochStep is the iterative successor-offset variant of the Koch curve.
// It keeps the point and adds the two corners of a small equilateral
// triangle whose side shrinks with the generation index. It is not a
// geometric Koch generator; see KochSubdivide for that.
func KochStep(p Point, i int) []Point {
	length := KochBaseLength / float64(i+1)
	return []Point{
		p,
		{p.X + length, p.Y},
		{p.X + length/2, p.Y - length*sqrt3Half},
	}
}

// KochSubdivide returns the segments of the Koch curve between p1 and p2.
// Depth 0 is the straight segment; each further level replaces every
// segment with four, the middle two deflected by 60 degrees.
func KochSubdivide(p1, p2 Point, depth int) []Segment {
	depth = ClampKochDepth(depth)
	out := make([]Segment, 0, pow4(depth))
	return kochAppend(out, p1, p2, depth)
}

func kochAppend(out []Segment, p1, p2 Point, depth int) []Segment {
	if depth <= 0 {
		return append(out, Segment{p1, p2})
	}
	a, c, b := KochApex(p1, p2)
	out = kochAppend(out, p1, a, depth-1)
	out = kochAppend(out, a, c, depth-1)
	out = kochAppend(out, c, b, depth-1)
	return kochAppend(out, b, p2, depth-1)
}

// KochApex returns the interior points A and B at one and two thirds of
// p1→p2 and the apex C obtained by rotating A→B by 60 degrees.
func KochApex(p1, p2 Point) (a, c, b Point) {
	third := p2.Sub(p1).Scale(1.0 / 3)
	a = p1.Add(third)
	b = p2.Sub(third)
	c = Point{
		X: (a.X+b.X)/2 - (b.Y-a.Y)*sqrt3Half,
		Y: (a.Y+b.Y)/2 + (b.X-a.X)*sqrt3Half,
	}
	return a, c, b
}

func ClampKochDepth(depth int) int {
	if depth < 0 {
		return 0
	}
	if depth > MaxKochDepth {
		return MaxKochDepth
	}
	return depth
}

func pow4(n int) int { return 1 << (2 * n) }
