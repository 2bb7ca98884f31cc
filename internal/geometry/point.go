package geometry

import "math"

type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{x, y} }

// Point methods.
func (p Point) Add(o Point) Point     { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point     { return Point{p.X - o.X, p.Y - o.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) Dist(o Point) float64  { return math.Hypot(p.X-o.X, p.Y-o.Y) }
func (p Point) Near(o Point, eps float64) bool {
	return math.Abs(p.X-o.X) <= eps && math.Abs(p.Y-o.Y) <= eps
}

// IsFinite reports whether both coordinates are neither NaN nor Inf.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

type Segment struct {
	A, B Point
}

// Ellipse is an axis-aligned ellipse given by its center and semi-axes.
// Circles have RX == RY.
type Ellipse struct {
	Center Point
	RX, RY float64
}

// PointSet is one generation of the point driver.
type PointSet []Point

// Bounds returns the bounding box of the set. ok is false for an empty set.
func (ps PointSet) Bounds() (min, max Point, ok bool) {
	if len(ps) == 0 {
		return Point{}, Point{}, false
	}
	min, max = ps[0], ps[0]
	for _, p := range ps[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max, true
}
