// Package geometry provides the fractal generators.
//
// Every generator is a pure function from a seed (point, segment or size)
// to the primitives it produces; nothing here draws:
//
//   - [KochStep]: iterative successor-offset step for the point driver
//   - [KochSubdivide]: true recursive Koch subdivision of a segment
//   - [IFS]: iterated function system run as a chaos game ([Barnsley])
//   - [CirclePairs], [EllipsePairs]: recursive pairs halving each level
//   - [Driver]: point-budget driver applying a [StepFunc] generation by generation
//
// # Bounds
//
// All generators terminate in bounded time. Recursive pairs stop at
// [MinPairSize] and after a shape budget, Koch subdivision is clamped to
// [MaxKochDepth] and the driver truncates every generation at MaxPoints:
//
//	d := geometry.Driver{MaxPoints: geometry.DefaultMaxPoints}
//	gens := d.Generate(geometry.KochStep, geometry.Point{}, 4)
package geometry
