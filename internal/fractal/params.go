package fractal

import (
	"fmt"
	"math"

	"github.com/san-kum/fraktale/internal/geometry"
)

const (
	DefaultKochLength = 300.0
	DefaultMapScale   = 50.0
)

// Params is implemented by one record per algorithm.
type Params interface {
	Algorithm() Algorithm
	Validate() error
}

type CircleParams struct {
	Radius float64 `yaml:"radius" json:"radius"`
}

type EllipseParams struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// KochParams draws the true Koch curve along a horizontal base segment of
// Length centered on the origin, subdivided Iterations times.
type KochParams struct {
	Iterations int     `yaml:"iterations" json:"iterations"`
	Length     float64 `yaml:"length" json:"length"`
}

// KochStepParams runs KochStep through the point driver.
type KochStepParams struct {
	Iterations int `yaml:"iterations" json:"iterations"`
}

// IteratedMapParams runs an IFS chaos game. Maps default to the Barnsley fern.
// A non-empty Expression replaces the maps with a single user map "fx, fy"
// iterated from geometry.ExpressionStart.
// Points are scaled by Scale with y flipped so the attractor grows upwards.
type IteratedMapParams struct {
	Iterations int                  `yaml:"iterations" json:"iterations"`
	Scale      float64              `yaml:"scale" json:"scale"`
	Seed       int64                `yaml:"seed" json:"seed"`
	Maps       []geometry.AffineMap `yaml:"maps" json:"maps"`
	Expression string               `yaml:"expression,omitempty" json:"expression,omitempty"`
}

func (CircleParams) Algorithm() Algorithm      { return Circle }
func (EllipseParams) Algorithm() Algorithm     { return Ellipse }
func (KochParams) Algorithm() Algorithm        { return Koch }
func (KochStepParams) Algorithm() Algorithm    { return KochStep }
func (IteratedMapParams) Algorithm() Algorithm { return IteratedMap }

// Sizes at or below zero are accepted: they hit the recursion base case and
// draw only the seed level.
func (p CircleParams) Validate() error {
	return finite("radius", p.Radius)
}

func (p EllipseParams) Validate() error {
	if err := finite("width", p.Width); err != nil {
		return err
	}
	return finite("height", p.Height)
}

func (p KochParams) Validate() error {
	if err := nonNegative("iterations", p.Iterations); err != nil {
		return err
	}
	return finite("length", p.Length)
}

func (p KochStepParams) Validate() error {
	return nonNegative("iterations", p.Iterations)
}

func (p IteratedMapParams) Validate() error {
	if err := nonNegative("iterations", p.Iterations); err != nil {
		return err
	}
	if err := finite("scale", p.Scale); err != nil {
		return err
	}
	if p.Expression != "" {
		if _, err := geometry.CompileExprMap(p.Expression); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
		}
	}
	total := 0.0
	for i, m := range p.Maps {
		for _, v := range []float64{m.A, m.B, m.C, m.D, m.E, m.F, m.P} {
			if err := finite(fmt.Sprintf("maps[%d]", i), v); err != nil {
				return err
			}
		}
		if m.P < 0 {
			return fmt.Errorf("%w: maps[%d] has negative probability", ErrInvalidParameters, i)
		}
		total += m.P
	}
	if len(p.Maps) > 0 && total <= 0 {
		return fmt.Errorf("%w: map probabilities sum to zero", ErrInvalidParameters)
	}
	return nil
}

// Degenerate reports whether the size parameters are at or below the
// recursion threshold, i.e. only the seed level will be drawn.
func (p CircleParams) Degenerate() bool { return !(p.Radius > geometry.MinPairSize) }

func (p EllipseParams) Degenerate() bool {
	return !(p.Width > geometry.MinPairSize && p.Height > geometry.MinPairSize)
}

// WithDefaults fills unset optional fields.
func (p KochParams) WithDefaults() KochParams {
	if p.Length == 0 {
		p.Length = DefaultKochLength
	}
	return p
}

func (p IteratedMapParams) WithDefaults() IteratedMapParams {
	if p.Scale == 0 {
		p.Scale = DefaultMapScale
	}
	if len(p.Maps) == 0 && p.Expression == "" {
		p.Maps = geometry.BarnsleyMaps()
	}
	return p
}

func finite(key string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s is not a number", ErrInvalidParameters, key)
	}
	return nil
}

func nonNegative(key string, v int) error {
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidParameters, key, v)
	}
	return nil
}
