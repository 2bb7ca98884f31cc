package render

import "fmt"

type op struct {
	name  string
	args  []float64
	text  string
	color string
	width float64
	depth int
}

// recorder is a Surface that remembers every call.
type recorder struct {
	w, h  int
	ops   []op
	color string
	width float64
	depth int
}

func newRecorder(w, h int) *recorder { return &recorder{w: w, h: h} }

func (r *recorder) add(name string, args ...float64) {
	r.ops = append(r.ops, op{name: name, args: args, color: r.color, width: r.width, depth: r.depth})
}

func (r *recorder) Size() (int, int) { return r.w, r.h }
func (r *recorder) Clear()           { r.add("clear") }
func (r *recorder) Push()            { r.depth++; r.add("push") }
func (r *recorder) Pop() {
	r.add("pop")
	r.depth--
}
func (r *recorder) Translate(x, y float64) { r.add("translate", x, y) }
func (r *recorder) Scale(sx, sy float64)   { r.add("scale", sx, sy) }
func (r *recorder) SetColor(hex string)    { r.color = hex }
func (r *recorder) SetLineWidth(w float64) { r.width = w }
func (r *recorder) StrokeLine(x1, y1, x2, y2 float64) {
	r.add("line", x1, y1, x2, y2)
}
func (r *recorder) StrokeEllipse(cx, cy, rx, ry float64) {
	r.add("ellipse", cx, cy, rx, ry)
}
func (r *recorder) FillDot(x, y, rad float64) { r.add("dot", x, y, rad) }
func (r *recorder) Label(x, y float64, s string) {
	r.add("label", x, y)
	r.ops[len(r.ops)-1].text = s
}

func (r *recorder) named(name string) []op {
	var out []op
	for _, o := range r.ops {
		if o.name == name {
			out = append(out, o)
		}
	}
	return out
}

func (r *recorder) colored(color string) []op {
	var out []op
	for _, o := range r.ops {
		if o.color == color && o.name != "clear" && o.name != "push" && o.name != "pop" {
			out = append(out, o)
		}
	}
	return out
}

func (o op) String() string { return fmt.Sprintf("%s%v", o.name, o.args) }
