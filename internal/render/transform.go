package render

import "github.com/gogpu/gg"

// Transform is a gg.Matrix with a save/restore stack, shared by the
// surfaces that do their own geometry.
type Transform struct {
	Current gg.Matrix
	stack   []gg.Matrix
}

func NewTransform() *Transform { return &Transform{Current: gg.Identity()} }

func (t *Transform) Push() { t.stack = append(t.stack, t.Current) }

func (t *Transform) Pop() {
	if len(t.stack) == 0 {
		return
	}
	t.Current = t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
}

// Translate applies a translation before the current matrix, as a canvas does.
func (t *Transform) Translate(x, y float64) { t.Current = t.Current.Multiply(gg.Translate(x, y)) }
func (t *Transform) Scale(sx, sy float64)   { t.Current = t.Current.Multiply(gg.Scale(sx, sy)) }

func (t *Transform) Apply(x, y float64) (float64, float64) {
	p := t.Current.TransformPoint(gg.Point{X: x, Y: y})
	return p.X, p.Y
}

// ScaleFactor is the stretch of the current matrix, used for radii and
// line widths.
func (t *Transform) ScaleFactor() float64 { return t.Current.ScaleFactor() }

// Reset drops the stack and returns to identity.
func (t *Transform) Reset() {
	t.Current = gg.Identity()
	t.stack = t.stack[:0]
}
