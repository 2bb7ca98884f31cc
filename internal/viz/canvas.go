package viz

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fraktale/internal/config"
	"github.com/san-kum/fraktale/internal/export"
	"github.com/san-kum/fraktale/internal/fractal"
	"github.com/san-kum/fraktale/internal/interact"
	"github.com/san-kum/fraktale/internal/logging"
	"github.com/san-kum/fraktale/internal/render"
)

// TerminalScale converts canvas pixels of a scene file to braille dots.
const TerminalScale = 0.2

// canvasView owns the braille surface, its viewport and the controller
// driving it.
type canvasView struct {
	surface  *render.BrailleSurface
	renderer *render.Renderer
	ctl      *interact.Controller
	stats    render.Stats
	dirty    bool
	exportW  int
	exportH  int
	styles   map[string]lipgloss.Style
}

func newCanvasView(cfg *config.Config) *canvasView {
	surface := render.NewBrailleSurface(minCanvasCells, minCanvasCells)
	vp := render.NewViewport(surface.Size())
	cfg.ApplyViewport(vp, TerminalScale)
	r, err := render.New(surface, vp, render.WithLabels(false))
	if err != nil {
		logging.Logger().Error("terminal surface", "err", err)
	}
	v := &canvasView{
		surface:  surface,
		renderer: r,
		ctl:      interact.NewController(r.Viewport()),
		dirty:    true,
		exportW:  cfg.Width,
		exportH:  cfg.Height,
		styles:   make(map[string]lipgloss.Style),
	}
	v.ctl.OnChange(v.invalidate)
	return v
}

func (v *canvasView) invalidate() { v.dirty = true }

// resize keeps the world origin at the same place relative to the center.
func (v *canvasView) resize(cols, rows int) {
	if c, r := v.surface.Cells(); c == cols && r == rows {
		return
	}
	v.surface.Resize(cols, rows)
	v.renderer.Viewport().Resize(v.surface.Size())
	v.dirty = true
}

func (v *canvasView) draw(scene *fractal.Scene) {
	if !v.dirty {
		return
	}
	v.stats = v.renderer.Render(scene)
	v.dirty = false
}

// exportViewport maps the terminal view back to scene file pixels.
func (v *canvasView) exportViewport() *render.Viewport {
	vp := v.renderer.Viewport()
	return &render.Viewport{
		Width:   v.exportW,
		Height:  v.exportH,
		Zoom:    vp.Zoom / TerminalScale,
		OffsetX: vp.OffsetX / TerminalScale,
		OffsetY: vp.OffsetY / TerminalScale,
	}
}

func (v *canvasView) style(color string) lipgloss.Style {
	st, ok := v.styles[color]
	if !ok {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		v.styles[color] = st
	}
	return st
}

// String renders the grid, coloring runs of cells that share a color.
func (v *canvasView) String() string {
	cols, rows := v.surface.Cells()
	var b strings.Builder
	var run strings.Builder
	for row := 0; row < rows; row++ {
		runColor := ""
		for col := 0; col < cols; col++ {
			r, color := v.surface.Cell(col, row)
			if color != runColor && run.Len() > 0 {
				b.WriteString(v.paint(runColor, run.String()))
				run.Reset()
			}
			runColor = color
			run.WriteRune(r)
		}
		b.WriteString(v.paint(runColor, run.String()))
		run.Reset()
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (v *canvasView) paint(color, s string) string {
	if color == "" || color == render.AxisColor {
		return Subtle.Render(s)
	}
	return v.style(color).Render(s)
}

// exportSVG writes the scene at scene file size next to the working
// directory and returns the file name.
func exportSVG(scene *fractal.Scene, vp *render.Viewport) (string, error) {
	s := export.NewSVGSurface(vp.Width, vp.Height)
	r, err := render.New(s, vp)
	if err != nil {
		return "", err
	}
	r.Render(scene)
	path := fmt.Sprintf("fraktale_%s.svg", time.Now().Format("20060102_150405"))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := s.WriteTo(f); err != nil {
		return "", err
	}
	return path, nil
}
