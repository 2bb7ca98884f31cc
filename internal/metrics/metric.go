// Package metrics observes point-driver runs and render passes.
package metrics

import (
	"github.com/san-kum/fraktale/internal/geometry"
)

// Metric observes every generation of a driver run.
type Metric interface {
	Name() string
	Observe(gen int, pts geometry.PointSet)
	Value() float64
	Reset()
}

// Series is implemented by metrics that keep one sample per generation.
type Series interface {
	Metric
	Series() []float64
}

// Collect runs the driver and feeds every generation to each metric.
func Collect(d geometry.Driver, step geometry.StepFunc, start geometry.Point, generations int, ms ...Metric) geometry.RunStats {
	return d.Run(step, start, generations, func(gen int, pts geometry.PointSet) {
		for _, m := range ms {
			m.Observe(gen, pts)
		}
	})
}
