// Package fractal holds the fractal model: the configured instances and the
// append-only scene they are rendered from.
//
// Parameters are a tagged variant. Each algorithm has its own typed record
// ([CircleParams], [EllipseParams], [KochParams], [KochStepParams],
// [IteratedMapParams]) so an instance can never carry keys that belong to
// another algorithm. Untyped form input goes through [ParseForm], which
// rejects missing, unknown and non-numeric fields with [ErrInvalidParameters]:
//
//	scene := fractal.NewScene()
//	_, err := scene.AddFractal(fractal.Circle, map[string]float64{"radius": 80}, "#ff0000")
//	if errors.Is(err, fractal.ErrInvalidParameters) {
//	    // nothing was added
//	}
package fractal
