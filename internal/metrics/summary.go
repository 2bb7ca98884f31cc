package metrics

import (
	"github.com/san-kum/fraktale/internal/fractal"
	"github.com/san-kum/fraktale/internal/render"
)

// Summary aggregates the stats of one render pass.
type Summary struct {
	Instances   int                       `json:"instances"`
	Shapes      int                       `json:"shapes"`
	Segments    int                       `json:"segments"`
	Points      int                       `json:"points"`
	Truncated   int                       `json:"truncated"`
	ByAlgorithm map[fractal.Algorithm]int `json:"by_algorithm"`
}

func Summarize(s render.Stats) Summary {
	sum := Summary{ByAlgorithm: make(map[fractal.Algorithm]int)}
	for _, in := range s.Instances {
		sum.Instances++
		sum.Shapes += in.Shapes
		sum.Segments += in.Segments
		sum.Points += in.Points
		if in.Truncated {
			sum.Truncated++
		}
		sum.ByAlgorithm[in.Algorithm]++
	}
	return sum
}

func (s Summary) Primitives() int { return s.Shapes + s.Segments + s.Points }
