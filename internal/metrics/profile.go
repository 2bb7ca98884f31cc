package metrics

import (
	"math/rand"

	"github.com/san-kum/fraktale/internal/fractal"
	"github.com/san-kum/fraktale/internal/geometry"
	"github.com/san-kum/fraktale/internal/render"
)

// Profile is a per-generation series describing how an instance grows.
type Profile struct {
	Caption string    `json:"caption"`
	Series  []float64 `json:"series"`
	// Value is the final metric value: total points for growth, remaining
	// relative growth of the bounding box for convergence.
	Value float64 `json:"value"`
}

// ConvergenceSkip is the transient ignored by ProfileOf for iterated maps.
const ConvergenceSkip = 20

// ProfileOf replays the generator of inst without drawing it.
func ProfileOf(inst fractal.Instance) Profile {
	budget := inst.IterationBudget
	if budget <= 0 {
		budget = fractal.DefaultIterationBudget
	}
	switch p := inst.Params.(type) {
	case fractal.CircleParams:
		return pairProfile(geometry.CirclePairs(geometry.Point{}, p.Radius, budget))
	case fractal.EllipseParams:
		return pairProfile(geometry.EllipsePairs(geometry.Point{}, p.Width, p.Height, budget))
	case fractal.KochParams:
		depth := render.KochDepth(p.Iterations, budget)
		series := make([]float64, 0, depth+1)
		n := 1.0
		for d := 0; d <= depth; d++ {
			series = append(series, n)
			n *= 4
		}
		return Profile{Caption: "segments per depth", Series: series, Value: series[depth]}
	case fractal.KochStepParams:
		g := NewGrowth()
		Collect(geometry.Driver{MaxPoints: budget}, geometry.KochStep, geometry.Point{}, min(p.Iterations, budget), g)
		return Profile{Caption: "points per generation", Series: g.Series(), Value: g.Value()}
	case fractal.IteratedMapParams:
		p = p.WithDefaults()
		if p.Expression != "" {
			m, err := geometry.CompileExprMap(p.Expression)
			if err != nil {
				return Profile{Caption: err.Error()}
			}
			c := NewConvergence(0)
			Collect(geometry.Driver{MaxPoints: budget}, m.Step, geometry.ExpressionStart, min(p.Iterations, budget), c)
			return Profile{Caption: "bounding box diagonal", Series: c.Series(), Value: c.Value()}
		}
		ifs, err := geometry.NewIFS(p.Maps, rand.New(rand.NewSource(p.Seed)))
		if err != nil {
			return Profile{Caption: err.Error()}
		}
		c := NewConvergence(ConvergenceSkip)
		Collect(geometry.Driver{MaxPoints: budget}, ifs.Step, geometry.Point{}, min(p.Iterations, budget), c)
		return Profile{Caption: "bounding box diagonal", Series: c.Series(), Value: c.Value()}
	}
	return Profile{}
}

// pairProfile counts the shapes drawn at each recursion level.
func pairProfile(res geometry.PairResult) Profile {
	var series []float64
	remaining := len(res.Shapes)
	for level := 2; remaining > 0; level *= 2 {
		n := min(level, remaining)
		series = append(series, float64(n))
		remaining -= n
	}
	return Profile{Caption: "shapes per level", Series: series, Value: float64(len(res.Shapes))}
}
