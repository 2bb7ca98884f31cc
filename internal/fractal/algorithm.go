package fractal

import (
	"fmt"
	"sort"
)

type Algorithm string

const (
	Circle      Algorithm = "circle"
	Ellipse     Algorithm = "ellipse"
	Koch        Algorithm = "koch"
	KochStep    Algorithm = "koch-step"
	IteratedMap Algorithm = "custom-iterated-map"
)

// Option is one entry of the algorithm dropdown.
type Option struct {
	Value Algorithm `json:"value"`
	Label string    `json:"label"`
}

var options = []Option{
	{Circle, "Circle Recursion"},
	{Ellipse, "Ellipse Recursion"},
	{Koch, "Koch-Curve"},
}

// Options returns the dropdown entries in display order.
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

var requiredKeys = map[Algorithm][]string{
	Circle:      {"radius"},
	Ellipse:     {"width", "height"},
	Koch:        {"iterations"},
	KochStep:    {"iterations"},
	IteratedMap: {"iterations"},
}

// Algorithms lists every algorithm the renderer understands, sorted.
func Algorithms() []Algorithm {
	out := make([]Algorithm, 0, len(requiredKeys))
	for a := range requiredKeys {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RequiredKeys returns the form fields an algorithm needs.
func RequiredKeys(a Algorithm) ([]string, error) {
	keys, ok := requiredKeys[a]
	if !ok {
		return nil, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidParameters, a)
	}
	return append([]string(nil), keys...), nil
}

func (a Algorithm) Valid() bool {
	_, ok := requiredKeys[a]
	return ok
}

func (a Algorithm) String() string { return string(a) }
