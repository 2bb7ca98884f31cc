package render

import (
	"math"

	"github.com/san-kum/fraktale/internal/geometry"
)

const (
	// MinZoom is the exclusive lower bound of the zoom factor.
	MinZoom = 1e-6
	// ZoomIn and ZoomOut are the wheel ratios.
	ZoomIn  = 1.1
	ZoomOut = 1 / 1.1
	// DefaultZoom is the factor a freshly mounted viewport starts with.
	DefaultZoom   = 0.9
	BaseAxisWidth = 2.0
)

// Viewport maps world coordinates onto a width x height device canvas.
// The world origin sits at the canvas center shifted by the pan offset.
type Viewport struct {
	Width, Height int
	Zoom          float64
	OffsetX       float64
	OffsetY       float64
	home          *viewState
}

type viewState struct {
	zoom, x, y float64
}

func NewViewport(width, height int) *Viewport {
	return &Viewport{Width: width, Height: height, Zoom: DefaultZoom}
}

// Origin is the device position of world (0,0).
func (v *Viewport) Origin() (float64, float64) {
	return float64(v.Width)/2 + v.OffsetX, float64(v.Height)/2 + v.OffsetY
}

func (v *Viewport) WorldToDevice(p geometry.Point) geometry.Point {
	ox, oy := v.Origin()
	return geometry.Point{X: ox + p.X*v.Zoom, Y: oy + p.Y*v.Zoom}
}

func (v *Viewport) DeviceToWorld(p geometry.Point) geometry.Point {
	ox, oy := v.Origin()
	return geometry.Point{X: (p.X - ox) / v.Zoom, Y: (p.Y - oy) / v.Zoom}
}

// Pan moves the origin by a device-space delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

// ZoomBy multiplies the zoom factor by ratio. A ratio that is not a positive
// finite number, or that would push the factor to MinZoom or below, is
// refused and false is returned.
func (v *Viewport) ZoomBy(ratio float64) bool {
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return false
	}
	z := v.Zoom * ratio
	if !(z > MinZoom) || math.IsInf(z, 0) {
		return false
	}
	v.Zoom = z
	return true
}

func (v *Viewport) Resize(width, height int) {
	v.Width, v.Height = max(0, width), max(0, height)
}

// SetHome records the current zoom and pan as the state Reset returns to.
func (v *Viewport) SetHome() {
	v.home = &viewState{zoom: v.Zoom, x: v.OffsetX, y: v.OffsetY}
}

// Reset restores the home state, or the default zoom with no pan when no
// home was set. The size is kept.
func (v *Viewport) Reset() {
	if v.home != nil && v.home.zoom > MinZoom {
		v.Zoom, v.OffsetX, v.OffsetY = v.home.zoom, v.home.x, v.home.y
		return
	}
	v.Zoom = DefaultZoom
	v.OffsetX, v.OffsetY = 0, 0
}

// AxisWidth is the world-space line width that keeps the axes about
// BaseAxisWidth device pixels wide and never thinner than one world unit.
func (v *Viewport) AxisWidth() float64 {
	return math.Max(1, BaseAxisWidth/v.Zoom)
}

// VisibleWorld returns the world-space rectangle currently on the canvas.
func (v *Viewport) VisibleWorld() (min, max geometry.Point) {
	min = v.DeviceToWorld(geometry.Point{})
	max = v.DeviceToWorld(geometry.Point{X: float64(v.Width), Y: float64(v.Height)})
	return min, max
}
