package viz

import (
	"errors"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fraktale/internal/config"
	"github.com/san-kum/fraktale/internal/fractal"
	"github.com/san-kum/fraktale/internal/interact"
	"github.com/san-kum/fraktale/internal/render"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T, cfg *config.Config) *model {
	t.Helper()
	m, err := newApp(cfg)
	if err != nil {
		t.Fatal(err)
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func send(m *model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func TestMenuEntries(t *testing.T) {
	entries := menuEntries()
	want := []string{"Circle Recursion", "Ellipse Recursion", "Koch-Curve", "Iterated Map", "Koch Steps"}
	if len(entries) != len(want) {
		t.Fatalf("entries = %v", entries)
	}
	for i := range want {
		if entries[i].Label != want[i] {
			t.Errorf("entry %d = %q, want %q", i, entries[i].Label, want[i])
		}
	}
}

func TestAddCircleFromForm(t *testing.T) {
	m := newTestApp(t, config.DefaultConfig())
	if m.state != stateMenu {
		t.Fatalf("empty scene should start on the menu, state %d", m.state)
	}
	send(m, key("enter"))
	if m.state != stateConfig || m.selected != fractal.Circle {
		t.Fatalf("state %d, selected %s", m.state, m.selected)
	}
	if len(m.fieldNames) != 1 || m.fieldNames[0] != "radius" {
		t.Fatalf("fields = %v", m.fieldNames)
	}
	send(m, key("c"), key("s"))
	if m.state != stateCanvas {
		t.Fatalf("submit did not switch to the canvas: %q", m.status)
	}
	insts := m.scene.Instances()
	if len(insts) != 1 || insts[0].Color != palette[1] {
		t.Fatalf("scene = %v", insts)
	}
	if m.view.stats.Primitives() == 0 {
		t.Error("canvas not rendered after submit")
	}
	if !strings.Contains(m.View(), "SCENE") {
		t.Error("side panel missing")
	}
}

func TestRejectedFormLeavesSceneUnchanged(t *testing.T) {
	m := newTestApp(t, config.DefaultConfig())
	send(m, key("j"), key("j"), key("enter"))
	if m.selected != fractal.Koch {
		t.Fatalf("selected %s, want koch", m.selected)
	}
	send(m, key("enter"), key("backspace"), key("-"), key("3"), key("enter"))
	if m.fields["iterations"] != -3 {
		t.Fatalf("iterations = %v", m.fields["iterations"])
	}
	send(m, key("s"))
	if m.scene.Len() != 0 {
		t.Error("rejected fractal was added")
	}
	if m.state != stateConfig || !m.statusErr {
		t.Errorf("state %d, status %q", m.state, m.status)
	}
	if !strings.Contains(m.status, fractal.ErrInvalidParameters.Error()) {
		t.Errorf("status %q does not name the error", m.status)
	}
}

func TestAddMapExpressionFromForm(t *testing.T) {
	m := newTestApp(t, config.DefaultConfig())
	send(m, key("j"), key("j"), key("j"), key("enter"))
	if m.selected != fractal.IteratedMap {
		t.Fatalf("selected %s, want %s", m.selected, fractal.IteratedMap)
	}
	send(m, key("x"), key("y"), key(","), tea.KeyMsg{Type: tea.KeySpace}, key("-x"), key("enter"))
	if m.expression != "y, -x" {
		t.Fatalf("expression = %q", m.expression)
	}
	if !strings.Contains(m.View(), "y, -x") {
		t.Error("expression not shown on the form")
	}
	send(m, key("s"))
	insts := m.scene.Instances()
	if len(insts) != 1 {
		t.Fatalf("scene = %v, status %q", insts, m.status)
	}
	if p := insts[0].Params.(fractal.IteratedMapParams); p.Expression != "y, -x" {
		t.Errorf("params = %+v", p)
	}
}

func TestBadMapExpressionRejected(t *testing.T) {
	m := newTestApp(t, config.DefaultConfig())
	send(m, key("j"), key("j"), key("j"), key("enter"))
	send(m, key("x"), key("x"), key("/"), key("enter"), key("s"))
	if m.scene.Len() != 0 || !m.statusErr {
		t.Errorf("scene %d, status %q", m.scene.Len(), m.status)
	}
}

func canvasApp(t *testing.T) *model {
	cfg := config.DefaultConfig()
	cfg.Fractals = []config.FractalConfig{{Algorithm: "circle", Radius: 40}}
	m := newTestApp(t, cfg)
	if m.state != stateCanvas {
		t.Fatalf("configured scene should open the canvas, state %d", m.state)
	}
	return m
}

func TestMouseDrag(t *testing.T) {
	m := canvasApp(t)
	vp := m.view.ctl.Viewport()
	x0, y0 := vp.OffsetX, vp.OffsetY

	send(m,
		tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 14, Y: 7, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
	)
	if m.view.ctl.State() != interact.Dragging {
		t.Fatal("press did not start a drag")
	}
	if dx, dy := vp.OffsetX-x0, vp.OffsetY-y0; dx != 8 || dy != 8 {
		t.Errorf("pan = (%v, %v), want (8, 8)", dx, dy)
	}
	send(m, tea.MouseMsg{X: 14, Y: 7, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.view.ctl.State() != interact.Idle {
		t.Error("release did not end the drag")
	}
	send(m, tea.MouseMsg{X: 30, Y: 7, Action: tea.MouseActionMotion})
	if vp.OffsetX-x0 != 8 {
		t.Error("motion after release panned")
	}
}

func TestMouseLeaveEndsDrag(t *testing.T) {
	m := canvasApp(t)
	send(m,
		tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 95, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
	)
	if m.view.ctl.State() != interact.Idle {
		t.Error("leaving the canvas should end the drag")
	}
}

func TestWheelAndKeys(t *testing.T) {
	m := canvasApp(t)
	vp := m.view.ctl.Viewport()
	z := vp.Zoom

	send(m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if math.Abs(vp.Zoom-z*render.ZoomIn) > 1e-12 {
		t.Errorf("wheel up: zoom %v, want %v", vp.Zoom, z*render.ZoomIn)
	}
	send(m, key("-"), key("-"))
	if math.Abs(vp.Zoom-z*render.ZoomOut) > 1e-12 {
		t.Errorf("after zooming out twice: %v", vp.Zoom)
	}
	send(m, key("h"))
	if vp.OffsetX != keyPanStep {
		t.Errorf("h panned to %v", vp.OffsetX)
	}
	send(m, key("r"))
	if vp.OffsetX != 0 || math.Abs(vp.Zoom-z) > 1e-12 {
		t.Errorf("reset left zoom %v offset %v", vp.Zoom, vp.OffsetX)
	}
}

func TestExportUsesSceneSize(t *testing.T) {
	m := canvasApp(t)
	var got *render.Viewport
	m.export = func(_ *fractal.Scene, vp *render.Viewport) (string, error) {
		got = vp
		return "out.svg", nil
	}
	send(m, key("e"))
	if got == nil {
		t.Fatal("export not called")
	}
	if got.Width != config.DefaultWidth || math.Abs(got.Zoom-render.DefaultZoom) > 1e-12 {
		t.Errorf("export viewport %+v", got)
	}
	if m.status != "saved out.svg" {
		t.Errorf("status %q", m.status)
	}

	m.export = func(*fractal.Scene, *render.Viewport) (string, error) {
		return "", errors.New("disk full")
	}
	send(m, key("e"))
	if !m.statusErr {
		t.Error("export error not shown")
	}
}

func TestPanelToggleResizesCanvas(t *testing.T) {
	m := canvasApp(t)
	cols, _ := m.view.surface.Cells()
	if cols != 100-panelWidth {
		t.Errorf("canvas cols = %d, want %d", cols, 100-panelWidth)
	}
	send(m, key("p"))
	if cols, _ = m.view.surface.Cells(); cols != 100 {
		t.Errorf("canvas cols without panel = %d", cols)
	}
}

func TestDownsample(t *testing.T) {
	series := make([]float64, 3000)
	for i := range series {
		series[i] = float64(i)
	}
	out := downsample(series, 120)
	if len(out) > 120 || out[0] != 0 || out[len(out)-1] != 2999 {
		t.Errorf("downsample: len %d, first %v, last %v", len(out), out[0], out[len(out)-1])
	}
	short := []float64{1, 2}
	if got := downsample(short, 120); len(got) != 2 {
		t.Errorf("short series changed: %v", got)
	}
}

func TestCellToSubpixel(t *testing.T) {
	x, y := cellToSubpixel(3, 2)
	if x != 7 || y != 10 {
		t.Errorf("cellToSubpixel(3, 2) = (%v, %v), want (7, 10)", x, y)
	}
}
