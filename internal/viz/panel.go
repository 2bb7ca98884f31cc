package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fraktale/internal/fractal"
	"github.com/san-kum/fraktale/internal/metrics"
)

// maxGraphPoints bounds the series handed to asciigraph.
const maxGraphPoints = 120

// profileCache keeps the profile of the newest instance; the render list
// only grows, so its length identifies the newest one.
type profileCache struct {
	n       int
	profile metrics.Profile
	inst    fractal.Instance
}

func (c *profileCache) get(scene *fractal.Scene) (fractal.Instance, metrics.Profile, bool) {
	n := scene.Len()
	if n == 0 {
		return fractal.Instance{}, metrics.Profile{}, false
	}
	if n != c.n {
		insts := scene.Instances()
		c.inst = insts[n-1]
		c.profile = metrics.ProfileOf(c.inst)
		c.n = n
	}
	return c.inst, c.profile, true
}

func (m *model) viewPanel(th Theme) string {
	var s strings.Builder
	sum := metrics.Summarize(m.view.stats)
	s.WriteString(HeaderStyle.Foreground(th.Primary).Render("SCENE") + "\n")
	row := func(label string, v int) {
		s.WriteString(MetricLabel.Render(fmt.Sprintf("%-11s", label)) + MetricValue.Render(fmt.Sprint(v)) + "\n")
	}
	row("instances", sum.Instances)
	row("shapes", sum.Shapes)
	row("segments", sum.Segments)
	row("points", sum.Points)
	if sum.Truncated > 0 {
		row("truncated", sum.Truncated)
	}

	if inst, p, ok := m.profile.get(m.scene); ok && len(p.Series) > 1 {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color(inst.Color)).Render(string(inst.Algorithm())) + "\n")
		chart := asciigraph.Plot(downsample(p.Series, maxGraphPoints),
			asciigraph.Height(6),
			asciigraph.Width(panelWidth-10),
			asciigraph.Caption(p.Caption))
		s.WriteString(Subtle.Render(chart) + "\n")
	}
	return GlassPanel.Width(panelWidth - 4).Render(s.String())
}

// downsample keeps every k-th value so that at most n remain, always
// including the last one.
func downsample(series []float64, n int) []float64 {
	if len(series) <= n || n < 2 {
		return series
	}
	k := (len(series) + n - 2) / (n - 1)
	out := make([]float64, 0, n)
	for i := 0; i < len(series)-1; i += k {
		out = append(out, series[i])
	}
	return append(out, series[len(series)-1])
}
