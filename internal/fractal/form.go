package fractal

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ParseForm turns untyped form fields into the typed parameter record for a.
// The field set must match RequiredKeys(a) exactly.
func ParseForm(a Algorithm, fields map[string]float64) (Params, error) {
	return ParseFormExpression(a, fields, "")
}

// AcceptsExpression reports whether a takes a map expression next to its
// numeric fields.
func AcceptsExpression(a Algorithm) bool { return a == IteratedMap }

// ParseFormExpression is ParseForm plus an optional map expression. Only
// IteratedMap accepts one; the expression must give finite numbers at (1,1).
func ParseFormExpression(a Algorithm, fields map[string]float64, expression string) (Params, error) {
	if strings.TrimSpace(expression) != "" && !AcceptsExpression(a) {
		return nil, fmt.Errorf("%w: %s takes no expression", ErrInvalidParameters, a)
	}
	keys, err := RequiredKeys(a)
	if err != nil {
		return nil, err
	}
	if err := checkKeys(keys, fields); err != nil {
		return nil, fmt.Errorf("%s: %w", a, err)
	}

	var p Params
	switch a {
	case Circle:
		p = CircleParams{Radius: fields["radius"]}
	case Ellipse:
		p = EllipseParams{Width: fields["width"], Height: fields["height"]}
	case Koch:
		n, err := count("iterations", fields["iterations"])
		if err != nil {
			return nil, err
		}
		p = KochParams{Iterations: n}.WithDefaults()
	case KochStep:
		n, err := count("iterations", fields["iterations"])
		if err != nil {
			return nil, err
		}
		p = KochStepParams{Iterations: n}
	case IteratedMap:
		n, err := count("iterations", fields["iterations"])
		if err != nil {
			return nil, err
		}
		p = IteratedMapParams{Iterations: n, Expression: strings.TrimSpace(expression)}.WithDefaults()
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", a, err)
	}
	return p, nil
}

func checkKeys(required []string, fields map[string]float64) error {
	var missing, unknown []string
	want := make(map[string]bool, len(required))
	for _, k := range required {
		want[k] = true
		if _, ok := fields[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k := range fields {
		if !want[k] {
			unknown = append(unknown, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidParameters, strings.Join(missing, ", "))
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unknown %s", ErrInvalidParameters, strings.Join(unknown, ", "))
	}
	for _, k := range required {
		if err := finite(k, fields[k]); err != nil {
			return err
		}
	}
	return nil
}

func count(key string, v float64) (int, error) {
	if err := finite(key, v); err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidParameters, key, v)
	}
	if v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s too large, got %g", ErrInvalidParameters, key, v)
	}
	return int(v), nil
}
