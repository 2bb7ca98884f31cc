// Package interact turns pointer and wheel input into viewport changes.
package interact

import "github.com/san-kum/fraktale/internal/render"

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Controller is the idle/dragging state machine over a viewport. Every
// accepted change fires the OnChange callback, normally a re-render.
type Controller struct {
	vp           *render.Viewport
	state        State
	lastX, lastY float64
	onChange     func()
}

func NewController(vp *render.Viewport) *Controller {
	return &Controller{vp: vp}
}

func (c *Controller) OnChange(fn func()) { c.onChange = fn }

func (c *Controller) State() State { return c.state }

func (c *Controller) Viewport() *render.Viewport { return c.vp }

// PointerDown starts a drag at (x, y).
func (c *Controller) PointerDown(x, y float64) {
	c.state = Dragging
	c.lastX, c.lastY = x, y
}

// PointerMove pans by the distance moved since the last event while
// dragging. It is ignored when idle.
func (c *Controller) PointerMove(x, y float64) {
	if c.state != Dragging {
		return
	}
	c.vp.Pan(x-c.lastX, y-c.lastY)
	c.lastX, c.lastY = x, y
	c.changed()
}

func (c *Controller) PointerUp() { c.state = Idle }

func (c *Controller) PointerLeave() { c.state = Idle }

// PanBy moves the view by a device delta without a drag, for keyboard
// navigation.
func (c *Controller) PanBy(dx, dy float64) {
	c.vp.Pan(dx, dy)
	c.changed()
}

// Wheel zooms in for a negative deltaY and out otherwise. The return value
// asks the host to suppress its default scroll handling.
func (c *Controller) Wheel(deltaY float64) bool {
	ratio := render.ZoomOut
	if deltaY < 0 {
		ratio = render.ZoomIn
	}
	if c.vp.ZoomBy(ratio) {
		c.changed()
	}
	return true
}

// Reset returns the viewport to its default zoom and pan and ends any drag.
func (c *Controller) Reset() {
	c.state = Idle
	c.vp.Reset()
	c.changed()
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
