package fractal

import (
	"fmt"
	"strings"

	"github.com/san-kum/fraktale/internal/geometry"
)

const (
	DefaultColor           = "#1e90ff"
	DefaultIterationBudget = geometry.DefaultBudget
)

// Instance is one configured fractal. It is immutable once added to a Scene.
type Instance struct {
	Params          Params
	Color           string
	IterationBudget int
}

// NewInstance validates params and color. An empty color selects
// DefaultColor, a non-positive budget selects DefaultIterationBudget.
func NewInstance(p Params, color string, budget int) (Instance, error) {
	if p == nil {
		return Instance{}, fmt.Errorf("%w: no parameters", ErrInvalidParameters)
	}
	if err := p.Validate(); err != nil {
		return Instance{}, err
	}
	if color == "" {
		color = DefaultColor
	}
	if !ValidColor(color) {
		return Instance{}, fmt.Errorf("%w: color %q", ErrInvalidParameters, color)
	}
	if budget <= 0 {
		budget = DefaultIterationBudget
	}
	return Instance{Params: p, Color: color, IterationBudget: budget}, nil
}

func (i Instance) Algorithm() Algorithm { return i.Params.Algorithm() }

func (i Instance) String() string {
	return fmt.Sprintf("%s %+v %s", i.Algorithm(), i.Params, i.Color)
}

// ValidColor accepts #rgb, #rgba, #rrggbb and #rrggbbaa.
func ValidColor(c string) bool {
	hex, ok := strings.CutPrefix(c, "#")
	if !ok {
		return false
	}
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
