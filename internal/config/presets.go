package config

import (
	"slices"

	"github.com/san-kum/fraktale/internal/geometry"
	"github.com/san-kum/fraktale/internal/render"
)

func preset(f ...FractalConfig) *Config {
	return &Config{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Viewport: ViewportConfig{Zoom: render.DefaultZoom},
		Labels:   true,
		Addr:     DefaultAddr,
		Fractals: f,
	}
}

// shifted moves the world origin so tall attractors fit the canvas.
func shifted(c *Config, dx, dy float64) *Config {
	c.Viewport.OffsetX, c.Viewport.OffsetY = dx, dy
	return c
}

var Presets = map[string]map[string]*Config{
	"circle": {
		"small": preset(FractalConfig{Algorithm: "circle", Radius: 40, Color: "#e4572e"}),
		"large": preset(FractalConfig{Algorithm: "circle", Radius: 200, Color: "#e4572e"}),
		"nested": preset(
			FractalConfig{Algorithm: "circle", Radius: 160, Color: "#17bebb"},
			FractalConfig{Algorithm: "circle", Radius: 80, Color: "#ffc914"},
		),
	},
	"ellipse": {
		"wide": preset(FractalConfig{Algorithm: "ellipse", Width: 240, Height: 80, Color: "#76b041"}),
		"tall": preset(FractalConfig{Algorithm: "ellipse", Width: 60, Height: 180, Color: "#76b041"}),
	},
	"koch": {
		"line":  preset(FractalConfig{Algorithm: "koch", Iterations: 4, Color: "#2e282a"}),
		"deep":  preset(FractalConfig{Algorithm: "koch", Iterations: 6, Length: 600, Color: "#2e282a"}),
		"steps": preset(FractalConfig{Algorithm: "koch-step", Iterations: 6, Color: "#8338ec"}),
	},
	"custom-iterated-map": {
		"fern": shifted(preset(FractalConfig{
			Algorithm:  "custom-iterated-map",
			Iterations: 5000,
			Scale:      50,
			Color:      "#228b22",
		}), 0, 250),
		"sierpinski": preset(FractalConfig{
			Algorithm:  "custom-iterated-map",
			Iterations: 5000,
			Scale:      300,
			Color:      "#3a86ff",
			Maps:       []geometry.AffineMap{
				{A: 0.5, D: 0.5, P: 1},
				{A: 0.5, D: 0.5, E: 0.5, P: 1},
				{A: 0.5, D: 0.5, E: 0.25, F: 0.5, P: 1},
			},
		}),
		"spiral": preset(FractalConfig{
			Algorithm:  "custom-iterated-map",
			Iterations: 300,
			Scale:      200,
			Color:      "#ff006e",
			Expression: "0.97 * x - 0.2 * y, 0.2 * x + 0.97 * y",
		}),
	},
}

func GetPreset(algorithm, name string) *Config {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	cfg, ok := algPresets[name]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns the preset names of algorithm in sorted order.
func ListPresets(algorithm string) []string {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(algPresets))
	for name := range algPresets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Groups returns the preset groups in sorted order.
func Groups() []string {
	groups := make([]string, 0, len(Presets))
	for g := range Presets {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	return groups
}
