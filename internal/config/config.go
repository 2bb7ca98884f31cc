package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fraktale/internal/fractal"
	"github.com/san-kum/fraktale/internal/geometry"
	"github.com/san-kum/fraktale/internal/render"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultAddr   = "localhost:8080"
)

// Config is a scene file: canvas size, starting viewport and the fractals
// to draw, in order.
type Config struct {
	Width    int             `yaml:"width"`
	Height   int             `yaml:"height"`
	Viewport ViewportConfig  `yaml:"viewport"`
	Labels   bool            `yaml:"labels"`
	Addr     string          `yaml:"addr"`
	Theme    string          `yaml:"theme,omitempty"`
	Fractals []FractalConfig `yaml:"fractals"`
}

type ViewportConfig struct {
	Zoom    float64 `yaml:"zoom"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

// FractalConfig is the flat file form of one fractal. Only the fields of
// its algorithm are read.
type FractalConfig struct {
	Algorithm  string               `yaml:"algorithm"`
	Color      string               `yaml:"color,omitempty"`
	Budget     int                  `yaml:"budget,omitempty"`
	Radius     float64              `yaml:"radius,omitempty"`
	Width      float64              `yaml:"width,omitempty"`
	Height     float64              `yaml:"height,omitempty"`
	Iterations int                  `yaml:"iterations,omitempty"`
	Length     float64              `yaml:"length,omitempty"`
	Scale      float64              `yaml:"scale,omitempty"`
	Seed       int64                `yaml:"seed,omitempty"`
	Maps       []geometry.AffineMap `yaml:"maps,omitempty"`
	Expression string               `yaml:"expression,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Viewport: ViewportConfig{Zoom: render.DefaultZoom},
		Labels:   true,
		Addr:     DefaultAddr,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the canvas, the viewport and every fractal entry.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: canvas %dx%d", fractal.ErrInvalidParameters, c.Width, c.Height)
	}
	if !(c.Viewport.Zoom > render.MinZoom) {
		return fmt.Errorf("%w: zoom %v", fractal.ErrInvalidParameters, c.Viewport.Zoom)
	}
	for i, f := range c.Fractals {
		if _, err := f.Instance(); err != nil {
			return fmt.Errorf("fractals[%d]: %w", i, err)
		}
	}
	return nil
}

// Params builds the typed parameter record for the entry's algorithm.
func (f FractalConfig) Params() (fractal.Params, error) {
	var p fractal.Params
	switch a := fractal.Algorithm(f.Algorithm); a {
	case fractal.Circle:
		p = fractal.CircleParams{Radius: f.Radius}
	case fractal.Ellipse:
		p = fractal.EllipseParams{Width: f.Width, Height: f.Height}
	case fractal.Koch:
		p = fractal.KochParams{Iterations: f.Iterations, Length: f.Length}.WithDefaults()
	case fractal.KochStep:
		p = fractal.KochStepParams{Iterations: f.Iterations}
	case fractal.IteratedMap:
		p = fractal.IteratedMapParams{
			Iterations: f.Iterations,
			Scale:      f.Scale,
			Seed:       f.Seed,
			Maps:       f.Maps,
			Expression: f.Expression,
		}.WithDefaults()
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q", fractal.ErrInvalidParameters, f.Algorithm)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (f FractalConfig) Instance() (fractal.Instance, error) {
	p, err := f.Params()
	if err != nil {
		return fractal.Instance{}, err
	}
	return fractal.NewInstance(p, f.Color, f.Budget)
}

// BuildScene returns a scene holding the configured fractals in file order.
func (c *Config) BuildScene() (*fractal.Scene, error) {
	scene := fractal.NewScene()
	for i, f := range c.Fractals {
		inst, err := f.Instance()
		if err != nil {
			return nil, fmt.Errorf("fractals[%d]: %w", i, err)
		}
		if err := scene.Add(inst); err != nil {
			return nil, fmt.Errorf("fractals[%d]: %w", i, err)
		}
	}
	return scene, nil
}

// NewViewport returns a viewport of the configured size with the configured
// zoom and pan.
func (c *Config) NewViewport() *render.Viewport {
	vp := render.NewViewport(c.Width, c.Height)
	c.ApplyViewport(vp, 1)
	return vp
}

// ApplyViewport copies zoom and pan onto vp, keeping its size, and makes
// them the state vp resets to. scale converts configured device units to
// the units of vp, e.g. braille dots per canvas pixel.
func (c *Config) ApplyViewport(vp *render.Viewport, scale float64) {
	if !(scale > 0) {
		scale = 1
	}
	if z := c.Viewport.Zoom * scale; z > render.MinZoom {
		vp.Zoom = z
	}
	vp.OffsetX = c.Viewport.OffsetX * scale
	vp.OffsetY = c.Viewport.OffsetY * scale
	vp.SetHome()
}
