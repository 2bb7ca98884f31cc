package render

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/san-kum/fraktale/internal/fractal"
	"github.com/san-kum/fraktale/internal/geometry"
	"github.com/san-kum/fraktale/internal/logging"
)

const (
	AxisColor  = "#000000"
	LabelColor = "#444444"
	// tickTarget is the preferred device distance between two axis ticks.
	tickTarget = 80.0
	tickLength = 4.0
	maxTicks   = 256
)

// RandFactory builds the random source for one custom-iterated-map instance.
type RandFactory func(seed int64) geometry.RandSource

func defaultRand(seed int64) geometry.RandSource {
	return rand.New(rand.NewSource(seed))
}

// InstanceStats describes what one instance put on the surface.
type InstanceStats struct {
	Algorithm   fractal.Algorithm
	Shapes      int
	Segments    int
	Points      int
	Generations int
	Truncated   bool
	// Bounds of the emitted points in world space, set for point algorithms.
	Min, Max geometry.Point
}

// Stats is the result of one Render pass.
type Stats struct {
	Instances []InstanceStats
	Ticks     int
	// Skipped is set when the renderer has no surface.
	Skipped bool
}

func (s Stats) Primitives() int {
	n := 0
	for _, in := range s.Instances {
		n += in.Shapes + in.Segments + in.Points
	}
	return n
}

type Option func(*Renderer)

func WithRandSource(f RandFactory) Option {
	return func(r *Renderer) {
		if f != nil {
			r.rand = f
		}
	}
}

// WithLabels toggles the axis tick labels. They are on by default.
func WithLabels(on bool) Option {
	return func(r *Renderer) { r.labels = on }
}

// Renderer redraws a scene onto a surface through a viewport.
type Renderer struct {
	surface Surface
	vp      *Viewport
	rand    RandFactory
	labels  bool
}

// New mounts a renderer. A nil or zero-sized surface yields a renderer whose
// Render is a no-op, together with ErrSurfaceUnavailable. A nil viewport is
// replaced by one sized to the surface.
func New(s Surface, vp *Viewport, opts ...Option) (*Renderer, error) {
	r := &Renderer{vp: vp, rand: defaultRand, labels: true}
	for _, o := range opts {
		o(r)
	}
	if s == nil {
		if r.vp == nil {
			r.vp = NewViewport(0, 0)
		}
		return r, ErrSurfaceUnavailable
	}
	w, h := s.Size()
	if r.vp == nil {
		r.vp = NewViewport(w, h)
	}
	if w <= 0 || h <= 0 {
		return r, ErrSurfaceUnavailable
	}
	r.surface = s
	return r, nil
}

func (r *Renderer) Viewport() *Viewport { return r.vp }

func (r *Renderer) Surface() Surface { return r.surface }

// Available reports whether Render will draw anything.
func (r *Renderer) Available() bool { return r.surface != nil }

// Render clears the surface and draws the axes and every instance of scene
// in insertion order. Nothing is retained between calls.
func (r *Renderer) Render(scene *fractal.Scene) Stats {
	if r.surface == nil {
		return Stats{Skipped: true}
	}
	s := r.surface
	s.Clear()

	s.Push()
	ox, oy := r.vp.Origin()
	s.Translate(ox, oy)
	s.Scale(r.vp.Zoom, r.vp.Zoom)

	var stats Stats
	ticks := r.ticks()
	r.drawAxes(ticks)
	stats.Ticks = len(ticks.x) + len(ticks.y)

	if scene != nil {
		s.SetLineWidth(1 / r.vp.Zoom)
		for _, inst := range scene.Instances() {
			s.SetColor(inst.Color)
			is := r.drawInstance(inst)
			logging.Logger().Debug("rendered instance",
				"algorithm", is.Algorithm,
				"shapes", is.Shapes,
				"segments", is.Segments,
				"points", is.Points,
				"truncated", is.Truncated)
			stats.Instances = append(stats.Instances, is)
		}
	}
	s.Pop()

	if r.labels {
		r.drawLabels(ticks)
	}
	return stats
}

type tickSet struct {
	step float64
	x, y []float64
}

// ticks picks a 1/2/5 step close to tickTarget device pixels and lists the
// world coordinates of the visible ticks, origin excluded.
func (r *Renderer) ticks() tickSet {
	step := niceStep(tickTarget / r.vp.Zoom)
	lo, hi := r.vp.VisibleWorld()
	return tickSet{
		step: step,
		x:    tickRange(lo.X, hi.X, step),
		y:    tickRange(lo.Y, hi.Y, step),
	}
}

func niceStep(target float64) float64 {
	if !(target > 0) || math.IsInf(target, 0) {
		return 1
	}
	p := math.Pow(10, math.Floor(math.Log10(target)))
	for _, m := range []float64{1, 2, 5} {
		if m*p >= target {
			return m * p
		}
	}
	return 10 * p
}

func tickRange(lo, hi, step float64) []float64 {
	var out []float64
	for v := math.Ceil(lo/step) * step; v <= hi && len(out) < maxTicks; v += step {
		if math.Abs(v) < step/2 {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (r *Renderer) drawAxes(t tickSet) {
	s := r.surface
	lo, hi := r.vp.VisibleWorld()
	s.SetColor(AxisColor)
	s.SetLineWidth(r.vp.AxisWidth())
	s.StrokeLine(lo.X, 0, hi.X, 0)
	s.StrokeLine(0, lo.Y, 0, hi.Y)

	s.SetLineWidth(1 / r.vp.Zoom)
	half := tickLength / r.vp.Zoom
	for _, x := range t.x {
		s.StrokeLine(x, -half, x, half)
	}
	for _, y := range t.y {
		s.StrokeLine(-half, y, half, y)
	}
}

func (r *Renderer) drawLabels(t tickSet) {
	s := r.surface
	s.SetColor(LabelColor)
	for _, x := range t.x {
		p := r.vp.WorldToDevice(geometry.Point{X: x})
		s.Label(p.X, p.Y+3*tickLength, formatTick(x))
	}
	for _, y := range t.y {
		p := r.vp.WorldToDevice(geometry.Point{Y: y})
		// world y grows downwards; label with the mathematical sign
		s.Label(p.X-4*tickLength, p.Y, formatTick(-y))
	}
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func (r *Renderer) drawInstance(inst fractal.Instance) InstanceStats {
	st := InstanceStats{Algorithm: inst.Algorithm()}
	budget := inst.IterationBudget
	if budget <= 0 {
		budget = fractal.DefaultIterationBudget
	}
	switch p := inst.Params.(type) {
	case fractal.CircleParams:
		r.drawPairs(&st, geometry.CirclePairs(geometry.Point{}, p.Radius, budget))
	case fractal.EllipseParams:
		r.drawPairs(&st, geometry.EllipsePairs(geometry.Point{}, p.Width, p.Height, budget))
	case fractal.KochParams:
		p = p.WithDefaults()
		depth := KochDepth(p.Iterations, budget)
		st.Truncated = depth < p.Iterations
		// Right to left, so the bumps rise above the axis with y down.
		half := p.Length / 2
		for _, seg := range geometry.KochSubdivide(geometry.Pt(half, 0), geometry.Pt(-half, 0), depth) {
			r.surface.StrokeLine(seg.A.X, seg.A.Y, seg.B.X, seg.B.Y)
			st.Segments++
		}
	case fractal.KochStepParams:
		r.drawPoints(&st, geometry.KochStep, geometry.Point{}, p.Iterations, budget, nil)
	case fractal.IteratedMapParams:
		p = p.WithDefaults()
		scale := p.Scale
		toWorld := func(q geometry.Point) geometry.Point { return geometry.Pt(q.X*scale, -q.Y*scale) }
		if p.Expression != "" {
			m, err := geometry.CompileExprMap(p.Expression)
			if err != nil {
				logging.Logger().Warn("skipping map expression", "err", err)
				return st
			}
			r.drawPoints(&st, m.Step, geometry.ExpressionStart, p.Iterations, budget, toWorld)
			return st
		}
		ifs, err := geometry.NewIFS(p.Maps, r.rand(p.Seed))
		if err != nil {
			logging.Logger().Warn("skipping iterated map", "err", err)
			return st
		}
		r.drawPoints(&st, ifs.Step, geometry.Point{}, p.Iterations, budget, toWorld)
	default:
		logging.Logger().Warn("unknown fractal parameters", "params", inst.Params)
	}
	return st
}

// KochDepth clamps the requested recursion depth so that the 4^depth
// segments of the curve stay within budget and MaxKochDepth.
func KochDepth(iterations, budget int) int {
	depth := geometry.ClampKochDepth(iterations)
	for depth > 0 && 1<<(2*depth) > budget {
		depth--
	}
	return depth
}

func (r *Renderer) drawPairs(st *InstanceStats, res geometry.PairResult) {
	for _, e := range res.Shapes {
		r.surface.StrokeEllipse(e.Center.X, e.Center.Y, math.Abs(e.RX), math.Abs(e.RY))
	}
	st.Shapes = len(res.Shapes)
	st.Generations = res.Expansions
	st.Truncated = res.Truncated
}

// drawPoints runs the point driver and plots every generation as one-pixel
// dots from start. toWorld, when set, maps iteration space to world space.
func (r *Renderer) drawPoints(st *InstanceStats, step geometry.StepFunc, start geometry.Point, iterations, budget int, toWorld func(geometry.Point) geometry.Point) {
	dot := 1 / r.vp.Zoom
	first := true
	d := geometry.Driver{MaxPoints: budget}
	rs := d.Run(step, start, min(iterations, budget), func(_ int, pts geometry.PointSet) {
		for _, p := range pts {
			if toWorld != nil {
				p = toWorld(p)
			}
			x, y := p.X, p.Y
			r.surface.FillDot(x, y, dot)
			if first {
				st.Min, st.Max = geometry.Pt(x, y), geometry.Pt(x, y)
				first = false
				continue
			}
			st.Min = geometry.Pt(math.Min(st.Min.X, x), math.Min(st.Min.Y, y))
			st.Max = geometry.Pt(math.Max(st.Max.X, x), math.Max(st.Max.Y, y))
		}
	})
	st.Points = rs.Points
	st.Generations = rs.Generations
	st.Truncated = rs.Capped || iterations > budget
}
