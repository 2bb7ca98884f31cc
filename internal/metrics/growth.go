package metrics

import "github.com/san-kum/fraktale/internal/geometry"

// Growth records the size of every generation.
type Growth struct {
	name   string
	counts []float64
	total  int
}

func NewGrowth() *Growth {
	return &Growth{name: "growth"}
}

func (g *Growth) Name() string { return g.name }

func (g *Growth) Observe(_ int, pts geometry.PointSet) {
	g.counts = append(g.counts, float64(len(pts)))
	g.total += len(pts)
}

// Value is the number of points over all generations.
func (g *Growth) Value() float64 { return float64(g.total) }

func (g *Growth) Series() []float64 {
	out := make([]float64, len(g.counts))
	copy(out, g.counts)
	return out
}

// Ratio is the mean growth factor between consecutive generations.
func (g *Growth) Ratio() float64 {
	n := 0
	sum := 0.0
	for i := 1; i < len(g.counts); i++ {
		if g.counts[i-1] == 0 {
			continue
		}
		sum += g.counts[i] / g.counts[i-1]
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (g *Growth) Reset() {
	g.counts = nil
	g.total = 0
}
