package metrics

import (
	"math"

	"github.com/san-kum/fraktale/internal/geometry"
)

// Convergence tracks the bounding box of every point seen so far. For an
// IFS the box settles once the orbit has explored the attractor, so the
// diagonal series flattens out.
type Convergence struct {
	name     string
	skip     int
	min, max geometry.Point
	seen     bool
	diagonal []float64
}

// NewConvergence ignores the first skip generations, the transient before
// the orbit lands on the attractor.
func NewConvergence(skip int) *Convergence {
	return &Convergence{name: "convergence", skip: skip}
}

func (c *Convergence) Name() string { return c.name }

func (c *Convergence) Observe(gen int, pts geometry.PointSet) {
	if gen < c.skip {
		return
	}
	lo, hi, ok := pts.Bounds()
	if !ok {
		return
	}
	if !c.seen {
		c.min, c.max, c.seen = lo, hi, true
	} else {
		c.min = geometry.Pt(math.Min(c.min.X, lo.X), math.Min(c.min.Y, lo.Y))
		c.max = geometry.Pt(math.Max(c.max.X, hi.X), math.Max(c.max.Y, hi.Y))
	}
	c.diagonal = append(c.diagonal, c.min.Dist(c.max))
}

// Bounds returns the accumulated bounding box.
func (c *Convergence) Bounds() (min, max geometry.Point, ok bool) {
	return c.min, c.max, c.seen
}

// Value is the relative growth of the diagonal over the last half of the
// run: 0 means the box stopped growing.
func (c *Convergence) Value() float64 {
	n := len(c.diagonal)
	if n < 2 {
		return 1
	}
	mid, last := c.diagonal[n/2], c.diagonal[n-1]
	if last == 0 {
		return 0
	}
	return (last - mid) / last
}

func (c *Convergence) Series() []float64 {
	out := make([]float64, len(c.diagonal))
	copy(out, c.diagonal)
	return out
}

func (c *Convergence) Reset() {
	c.min, c.max = geometry.Point{}, geometry.Point{}
	c.seen = false
	c.diagonal = nil
}
