package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fraktale/internal/config"
	"github.com/san-kum/fraktale/internal/fractal"
	"github.com/san-kum/fraktale/internal/logging"
	"github.com/san-kum/fraktale/internal/render"
)

const (
	stateMenu = iota
	stateConfig
	stateCanvas
)

const (
	panelWidth = 36
	// header line plus status and key hint lines
	chromeRows     = 3
	keyPanStep     = 8.0
	minCanvasCells = 4
)

var defaultFields = map[string]float64{
	"radius":     80,
	"width":      120,
	"height":     60,
	"iterations": 4,
}

var palette = []string{"#1e90ff", "#e4572e", "#76b041", "#ffc914", "#ff66cc", "#17bebb", "#ffffff"}

type model struct {
	state, cursor int
	entries       []fractal.Option
	selected      fractal.Algorithm
	fields        map[string]float64
	fieldNames    []string
	fieldCursor   int
	colorIdx      int
	editing       bool
	editBuf       string
	expression    string
	exprEditing   bool
	status        string
	statusErr     bool
	showPanel     bool
	theme         int
	width, height int
	scene         *fractal.Scene
	view          *canvasView
	export        func(*fractal.Scene, *render.Viewport) (string, error)
	profile       *profileCache
}

// newApp builds the terminal host around cfg's scene and viewport.
func newApp(cfg *config.Config) (*model, error) {
	scene, err := cfg.BuildScene()
	if err != nil {
		return nil, err
	}
	m := &model{
		entries:   menuEntries(),
		fields:    make(map[string]float64),
		showPanel: true,
		theme:     ThemeIndex(cfg.Theme),
		width:     80,
		height:    24,
		scene:     scene,
		export:    exportSVG,
		profile:   &profileCache{},
	}
	m.view = newCanvasView(cfg)
	scene.OnChange(m.view.invalidate)
	if scene.Len() > 0 {
		m.state = stateCanvas
	}
	m.resize()
	return m, nil
}

// menuEntries lists the dropdown options first, then the algorithms that
// have no dropdown label.
func menuEntries() []fractal.Option {
	entries := fractal.Options()
	labelled := make(map[fractal.Algorithm]bool)
	for _, o := range entries {
		labelled[o.Value] = true
	}
	for _, a := range fractal.Algorithms() {
		if !labelled[a] {
			entries = append(entries, fractal.Option{Value: a, Label: extraLabels[a]})
		}
	}
	return entries
}

var extraLabels = map[fractal.Algorithm]string{
	fractal.KochStep:    "Koch Steps",
	fractal.IteratedMap: "Iterated Map",
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		if m.state == stateCanvas {
			m.handleMouse(msg)
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
	}
	if m.state == stateCanvas {
		m.view.draw(m.scene)
	}
	return m, cmd
}

func (m *model) resize() {
	cols := m.width
	if m.showPanel {
		cols -= panelWidth
	}
	m.view.resize(max(cols, minCanvasCells), max(m.height-chromeRows, minCanvasCells))
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateCanvas:
		return m.canvasKey(msg)
	}
	return nil
}

func (m *model) menuKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "esc":
		if m.scene.Len() > 0 {
			m.state = stateCanvas
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.entries[m.cursor].Value
		m.state, m.fieldCursor = stateConfig, 0
		m.setFieldsForAlgorithm()
	}
	return nil
}

func (m *model) setFieldsForAlgorithm() {
	keys, err := fractal.RequiredKeys(m.selected)
	if err != nil {
		m.setStatus(err.Error(), true)
		m.state = stateMenu
		return
	}
	m.fieldNames = keys
	for _, k := range keys {
		if _, ok := m.fields[k]; !ok {
			m.fields[k] = defaultFields[k]
		}
	}
}

// exprKey edits the map expression as free text.
func (m *model) exprKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		m.expression, m.exprEditing = strings.TrimSpace(m.editBuf), false
		m.editBuf = ""
	case tea.KeyEsc:
		m.exprEditing, m.editBuf = false, ""
	case tea.KeyBackspace:
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	case tea.KeySpace:
		m.editBuf += " "
	case tea.KeyRunes:
		m.editBuf += string(msg.Runes)
	}
}

func (m *model) configKey(msg tea.KeyMsg) tea.Cmd {
	if m.exprEditing {
		m.exprKey(msg)
		return nil
	}
	if m.editing {
		switch msg.String() {
		case "enter":
			val, err := strconv.ParseFloat(m.editBuf, 64)
			if err != nil {
				m.setStatus(fmt.Sprintf("%q is not a number", m.editBuf), true)
			} else {
				m.fields[m.fieldNames[m.fieldCursor]] = val
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < len(m.fieldNames)-1 {
			m.fieldCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, strconv.FormatFloat(m.fields[m.fieldNames[m.fieldCursor]], 'g', -1, 64)
	case "left", "h":
		m.fields[m.fieldNames[m.fieldCursor]] -= m.fieldStep()
	case "right", "l":
		m.fields[m.fieldNames[m.fieldCursor]] += m.fieldStep()
	case "c":
		m.colorIdx = (m.colorIdx + 1) % len(palette)
	case "x":
		if fractal.AcceptsExpression(m.selected) {
			m.exprEditing, m.editBuf = true, m.expression
		}
	case "s":
		m.submit()
	}
	return nil
}

func (m *model) fieldStep() float64 {
	if m.fieldNames[m.fieldCursor] == "iterations" {
		return 1
	}
	return 10
}

// submit runs the configuration action with exactly the fields the
// algorithm requires.
func (m *model) submit() {
	form := make(map[string]float64, len(m.fieldNames))
	for _, k := range m.fieldNames {
		form[k] = m.fields[k]
	}
	expression := ""
	if fractal.AcceptsExpression(m.selected) {
		expression = m.expression
	}
	inst, err := m.scene.AddFractalExpr(m.selected, form, expression, palette[m.colorIdx])
	if err != nil {
		logging.Logger().Info("fractal rejected", "algorithm", m.selected, "err", err)
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus("added "+inst.String(), false)
	m.state = stateCanvas
}

func (m *model) canvasKey(msg tea.KeyMsg) tea.Cmd {
	ctl := m.view.ctl
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "a", "esc":
		m.state = stateMenu
	case "+", "=":
		ctl.Wheel(-1)
	case "-", "_":
		ctl.Wheel(1)
	case "left", "h":
		ctl.PanBy(keyPanStep, 0)
	case "right", "l":
		ctl.PanBy(-keyPanStep, 0)
	case "up", "k":
		ctl.PanBy(0, keyPanStep)
	case "down", "j":
		ctl.PanBy(0, -keyPanStep)
	case "r":
		ctl.Reset()
	case "p":
		m.showPanel = !m.showPanel
		m.resize()
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
		m.setStatus("theme "+Themes[m.theme].Name, false)
	case "e":
		path, err := m.export(m.scene, m.view.exportViewport())
		if err != nil {
			m.setStatus(err.Error(), true)
		} else {
			m.setStatus("saved "+path, false)
		}
	}
	return nil
}

// handleMouse maps terminal cells to braille sub-pixels, the center dot of
// the cell, and forwards the event to the interaction controller.
func (m *model) handleMouse(msg tea.MouseMsg) {
	ctl := m.view.ctl
	x, y := cellToSubpixel(msg.X, msg.Y-1)
	cols, rows := m.view.surface.Cells()
	inside := msg.X >= 0 && msg.X < cols && msg.Y-1 >= 0 && msg.Y-1 < rows
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		ctl.Wheel(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		ctl.Wheel(1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && inside:
		ctl.PointerDown(x, y)
	case msg.Action == tea.MouseActionMotion:
		if !inside {
			ctl.PointerLeave()
			return
		}
		ctl.PointerMove(x, y)
	case msg.Action == tea.MouseActionRelease:
		ctl.PointerUp()
	}
}

func cellToSubpixel(col, row int) (float64, float64) {
	return float64(col*2) + 1, float64(row*4) + 2
}

func (m *model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m *model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateCanvas:
		return m.viewCanvas()
	}
	return ""
}

func (m *model) viewMenu() string {
	th := Themes[m.theme]
	var b strings.Builder
	b.WriteString("\n\n    " + GradientText("FRAKTALE", th.Primary, th.Secondary) + "\n    " + Subtle.Render("recursive pattern visualizer") + "\n    " + Subtle.Render("─────────────────────────") + "\n\n")
	for i, e := range m.entries {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", lipgloss.NewStyle().Foreground(th.Secondary).Bold(true).Render("▸"), lipgloss.NewStyle().Foreground(th.Text).Bold(true).Render(fmt.Sprintf("%-20s", e.Label)), lipgloss.NewStyle().Foreground(th.Accent).Render(string(e.Value))))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", lipgloss.NewStyle().Foreground(th.Muted).Render(fmt.Sprintf("  %-20s", e.Label)), Subtle.Render(string(e.Value))))
		}
	}
	b.WriteString("\n" + m.viewStatus())
	hints := [][2]string{{"j/k", "navigate"}, {"enter", "select"}, {"q", "quit"}}
	if m.scene.Len() > 0 {
		hints = append(hints, [2]string{"esc", "canvas"})
	}
	b.WriteString("\n    " + keyHints(th, hints) + "\n")
	return b.String()
}

func (m *model) viewConfig() string {
	th := Themes[m.theme]
	var b strings.Builder
	b.WriteString("\n\n    " + HeaderStyle.Foreground(th.Primary).Render(strings.ToUpper(string(m.selected))) + "\n\n")
	for i, name := range m.fieldNames {
		valStr := fmt.Sprintf("%10s", strconv.FormatFloat(m.fields[name], 'g', 6, 64))
		if m.editing && i == m.fieldCursor {
			valStr = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.fieldCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", lipgloss.NewStyle().Foreground(th.Secondary).Bold(true).Render("▸"), lipgloss.NewStyle().Foreground(th.Text).Bold(true).Render(fmt.Sprintf("%-12s", name)), lipgloss.NewStyle().Foreground(th.Accent).Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", lipgloss.NewStyle().Foreground(th.Muted).Render(fmt.Sprintf("  %-12s", name)), Subtle.Render(valStr)))
		}
	}
	color := palette[m.colorIdx]
	b.WriteString(fmt.Sprintf("\n      %s %s\n", MetricLabel.Render(fmt.Sprintf("%-12s", "color")), lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██ "+color)))
	hints := [][2]string{{"j/k", "select"}, {"h/l", "adjust"}, {"enter", "edit"}, {"c", "color"}, {"s", "add"}, {"esc", "back"}}
	if fractal.AcceptsExpression(m.selected) {
		expr := m.expression
		switch {
		case m.exprEditing:
			expr = m.editBuf + "_"
		case expr == "":
			expr = "(affine maps)"
		}
		b.WriteString(fmt.Sprintf("      %s %s\n", MetricLabel.Render(fmt.Sprintf("%-12s", "map")), Subtle.Render(expr)))
		hints = append(hints, [2]string{"x", "map expression"})
	}
	b.WriteString("\n" + m.viewStatus())
	b.WriteString("\n    " + keyHints(th, hints) + "\n")
	return b.String()
}

func (m *model) viewCanvas() string {
	th := Themes[m.theme]
	vp := m.view.ctl.Viewport()
	header := HeaderStyle.UnsetBorderBottom().Foreground(th.Primary).Render("FRAKTALE") +
		Subtle.Render(fmt.Sprintf("  zoom %.3g  offset %.0f,%.0f  %s", vp.Zoom, vp.OffsetX, vp.OffsetY, m.view.ctl.State()))
	body := m.view.String()
	if m.showPanel {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.viewPanel(th))
	}
	footer := m.viewStatus() + "\n" + keyHints(th, [][2]string{{"drag", "pan"}, {"wheel/+-", "zoom"}, {"a", "add"}, {"r", "reset"}, {"p", "panel"}, {"e", "svg"}, {"t", "theme"}, {"q", "quit"}})
	return header + "\n" + body + "\n" + footer
}

func (m *model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return "    " + StatusError.Render(m.status)
	}
	return "    " + StatusOK.Render(m.status)
}

func keyHints(th Theme, hints [][2]string) string {
	key := lipgloss.NewStyle().Foreground(th.Secondary).Bold(true)
	var parts []string
	for _, h := range hints {
		parts = append(parts, key.Render(h[0])+KeyHint.Render(" "+h[1]))
	}
	return strings.Join(parts, "  ")
}

// RunInteractive runs the terminal host until the user quits.
func RunInteractive(cfg *config.Config) error {
	app, err := newApp(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
