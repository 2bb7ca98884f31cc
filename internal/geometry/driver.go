package geometry

// DefaultMaxPoints bounds a single generation of the point driver.
const DefaultMaxPoints = 5000

// StepFunc maps a point and the generation index to its successors.
type StepFunc func(p Point, i int) []Point

// Driver applies a StepFunc to a growing point set, generation by generation.
type Driver struct {
	MaxPoints int
}

// RunStats summarises one driver run.
type RunStats struct {
	Generations int
	Points      int
	Capped      bool
}

func (d Driver) maxPoints() int {
	if d.MaxPoints <= 0 {
		return DefaultMaxPoints
	}
	return d.MaxPoints
}

// Run starts from a single point and computes up to generations generations.
// Each generation holds the successors of every point of the previous one,
// truncated to MaxPoints. visit is called right after a generation is
// computed; the run stops once a generation reaches the cap.
func (d Driver) Run(step StepFunc, start Point, generations int, visit func(gen int, pts PointSet)) RunStats {
	limit := d.maxPoints()
	var stats RunStats
	points := PointSet{start}
	for i := 0; i < generations; i++ {
		next := make(PointSet, 0, min(limit, len(points)*3))
		for _, p := range points {
			next = append(next, step(p, i)...)
			if len(next) >= limit {
				next = next[:limit]
				break
			}
		}
		points = next
		stats.Generations++
		stats.Points += len(points)
		if visit != nil {
			visit(i, points)
		}
		if len(points) >= limit {
			stats.Capped = true
			break
		}
		if len(points) == 0 {
			break
		}
	}
	return stats
}

// Generate is Run collecting every generation.
func (d Driver) Generate(step StepFunc, start Point, generations int) []PointSet {
	var out []PointSet
	d.Run(step, start, generations, func(_ int, pts PointSet) {
		out = append(out, pts)
	})
	return out
}
