// Package export writes scenes to vector formats.
package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/san-kum/fraktale/internal/render"
)

const (
	SVGBackground = "#ffffff"
	SVGFontSize   = 11.0
)

// SVGSurface is a render.Surface that collects SVG elements. Geometry is
// transformed on the way in, so the document is flat device coordinates.
type SVGSurface struct {
	width, height int
	tf            *render.Transform
	color         string
	lineWidth     float64
	body          strings.Builder
	elements      int
}

func NewSVGSurface(width, height int) *SVGSurface {
	return &SVGSurface{
		width:     width,
		height:    height,
		tf:        render.NewTransform(),
		color:     "#000000",
		lineWidth: 1,
	}
}

func (s *SVGSurface) Size() (int, int) { return s.width, s.height }

func (s *SVGSurface) Clear() {
	s.body.Reset()
	s.elements = 0
	s.tf.Reset()
}

func (s *SVGSurface) Push()                  { s.tf.Push() }
func (s *SVGSurface) Pop()                   { s.tf.Pop() }
func (s *SVGSurface) Translate(x, y float64) { s.tf.Translate(x, y) }
func (s *SVGSurface) Scale(sx, sy float64)   { s.tf.Scale(sx, sy) }
func (s *SVGSurface) SetColor(hex string)    { s.color = hex }
func (s *SVGSurface) SetLineWidth(w float64) { s.lineWidth = w }

func (s *SVGSurface) strokeWidth() float64 {
	return s.lineWidth * s.tf.ScaleFactor()
}

func (s *SVGSurface) StrokeLine(x1, y1, x2, y2 float64) {
	m := s.tf
	ax, ay := m.Apply(x1, y1)
	bx, by := m.Apply(x2, y2)
	fmt.Fprintf(&s.body, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		ax, ay, bx, by, s.color, s.strokeWidth())
	s.elements++
}

func (s *SVGSurface) StrokeEllipse(cx, cy, rx, ry float64) {
	m := s.tf
	k := m.ScaleFactor()
	x, y := m.Apply(cx, cy)
	fmt.Fprintf(&s.body, `<ellipse cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x, y, rx*k, ry*k, s.color, s.strokeWidth())
	s.elements++
}

func (s *SVGSurface) FillDot(x, y, r float64) {
	m := s.tf
	dx, dy := m.Apply(x, y)
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
		dx, dy, r*m.ScaleFactor(), s.color)
	s.elements++
}

func (s *SVGSurface) Label(x, y float64, text string) {
	fmt.Fprintf(&s.body, `<text x="%.2f" y="%.2f" fill="%s" font-size="%.0f" font-family="sans-serif" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		x, y, s.color, SVGFontSize, html.EscapeString(text))
	s.elements++
}

// Elements is the number of drawn elements since the last Clear.
func (s *SVGSurface) Elements() int { return s.elements }

func (s *SVGSurface) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.width, s.height, s.width, s.height, SVGBackground)
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// BrailleToSVG draws every set dot of a braille surface as a small circle,
// scale device units per dot.
func BrailleToSVG(b *render.BrailleSurface, scale float64) string {
	if b == nil {
		return ""
	}
	w, h := b.Size()
	out := NewSVGSurface(int(float64(w)*scale), int(float64(h)*scale))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !b.IsSet(x, y) {
				continue
			}
			_, color := b.Cell(x/2, y/4)
			if color == "" {
				color = "#000000"
			}
			out.SetColor(color)
			out.FillDot((float64(x)+0.5)*scale, (float64(y)+0.5)*scale, scale*0.4)
		}
	}
	return out.String()
}
