package render

import "errors"

// ErrSurfaceUnavailable is returned when no usable drawing surface was handed
// to the renderer. Hosts log it and keep running with a no-op renderer.
var ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

// Surface is the immediate-mode 2D drawing target. Coordinates passed to the
// draw calls go through the current transform, except for Label which is
// always in device space.
type Surface interface {
	Size() (width, height int)
	Clear()
	Push()
	Pop()
	Translate(x, y float64)
	Scale(sx, sy float64)
	SetColor(hex string)
	SetLineWidth(w float64)
	StrokeLine(x1, y1, x2, y2 float64)
	StrokeEllipse(cx, cy, rx, ry float64)
	FillDot(x, y, r float64)
	Label(x, y float64, text string)
}
