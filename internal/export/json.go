package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/fraktale/internal/fractal"
	"github.com/san-kum/fraktale/internal/metrics"
	"github.com/san-kum/fraktale/internal/render"
)

// Report is the JSON form of one rendered scene and its growth profiles.
type Report struct {
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Zoom      float64         `json:"zoom"`
	Summary   metrics.Summary `json:"summary"`
	Instances []ReportEntry   `json:"instances"`
}

type ReportEntry struct {
	Algorithm fractal.Algorithm `json:"algorithm"`
	Color     string            `json:"color"`
	Budget    int               `json:"budget"`
	Params    fractal.Params    `json:"params"`
	Profile   metrics.Profile   `json:"profile"`
}

// NewReport pairs the scene's instances with their profiles. profiles must
// be in scene order, as returned by metrics.ProfileAll.
func NewReport(vp *render.Viewport, scene *fractal.Scene, stats render.Stats, profiles []metrics.Profile) Report {
	r := Report{
		Width:   vp.Width,
		Height:  vp.Height,
		Zoom:    vp.Zoom,
		Summary: metrics.Summarize(stats),
	}
	for i, inst := range scene.Instances() {
		e := ReportEntry{
			Algorithm: inst.Algorithm(),
			Color:     inst.Color,
			Budget:    inst.IterationBudget,
			Params:    inst.Params,
		}
		if i < len(profiles) {
			e.Profile = profiles[i]
		}
		r.Instances = append(r.Instances, e)
	}
	return r
}

func WriteJSON(w io.Writer, r Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

func ExportJSON(path string, r Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, r)
}
