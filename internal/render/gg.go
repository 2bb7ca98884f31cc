package render

import (
	"fmt"
	"io"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/san-kum/fraktale/internal/logging"
)

// LabelSize is the font size of axis labels in device pixels.
const LabelSize = 11.0

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
)

// labelFace returns the shared label face, or nil when the embedded font
// cannot be parsed; labels are then skipped.
func labelFace() text.Face {
	fontOnce.Do(func() {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			logging.Logger().Warn("label font unavailable", "err", err)
			return
		}
		fontSource = src
	})
	if fontSource == nil {
		return nil
	}
	return fontSource.Face(LabelSize)
}

// GGSurface draws through a gogpu/gg context onto an RGBA pixmap.
type GGSurface struct {
	dc   *gg.Context
	face text.Face
}

func NewGGSurface(width, height int) (*GGSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrSurfaceUnavailable, width, height)
	}
	return &GGSurface{dc: gg.NewContext(width, height), face: labelFace()}, nil
}

func (s *GGSurface) Size() (int, int) { return s.dc.Width(), s.dc.Height() }

// Clear fills the canvas with white.
func (s *GGSurface) Clear() { s.dc.ClearWithColor(gg.White) }

func (s *GGSurface) Push()                  { s.dc.Push() }
func (s *GGSurface) Pop()                   { s.dc.Pop() }
func (s *GGSurface) Translate(x, y float64) { s.dc.Translate(x, y) }
func (s *GGSurface) Scale(sx, sy float64)   { s.dc.Scale(sx, sy) }
func (s *GGSurface) SetColor(hex string)    { s.dc.SetColor(gg.Hex(hex)) }
func (s *GGSurface) SetLineWidth(w float64) { s.dc.SetLineWidth(w) }

func (s *GGSurface) StrokeLine(x1, y1, x2, y2 float64) {
	s.dc.DrawLine(x1, y1, x2, y2)
	s.stroke()
}

func (s *GGSurface) StrokeEllipse(cx, cy, rx, ry float64) {
	if rx == 0 && ry == 0 {
		return
	}
	s.dc.DrawEllipse(cx, cy, rx, ry)
	s.stroke()
}

func (s *GGSurface) FillDot(x, y, r float64) {
	s.dc.DrawCircle(x, y, r)
	if err := s.dc.Fill(); err != nil {
		logging.Logger().Debug("fill failed", "err", err)
	}
}

// Label draws centered text in device space, ignoring the current transform.
func (s *GGSurface) Label(x, y float64, str string) {
	if s.face == nil {
		return
	}
	s.dc.Push()
	s.dc.Identity()
	s.dc.SetFont(s.face)
	s.dc.DrawStringAnchored(str, x, y, 0.5, 0.5)
	s.dc.Pop()
}

func (s *GGSurface) stroke() {
	if err := s.dc.Stroke(); err != nil {
		logging.Logger().Debug("stroke failed", "err", err)
	}
}

// Resize changes the pixmap size, keeping the context.
func (s *GGSurface) Resize(width, height int) error {
	if err := s.dc.Resize(width, height); err != nil {
		return fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
	}
	return nil
}

func (s *GGSurface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

func (s *GGSurface) SavePNG(path string) error { return s.dc.SavePNG(path) }

func (s *GGSurface) Close() error { return s.dc.Close() }
