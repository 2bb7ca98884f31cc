package fractal

import "fmt"

// Scene is the ordered render list. Entries are only ever appended.
type Scene struct {
	instances []Instance
	onChange  func()
}

func NewScene() *Scene {
	return &Scene{instances: make([]Instance, 0)}
}

// OnChange registers the callback fired after every successful append,
// normally a re-render of the host.
func (s *Scene) OnChange(fn func()) { s.onChange = fn }

// AddFractal is the configuration action: validate the form fields for a,
// append the new instance and notify. On error the scene is unchanged.
func (s *Scene) AddFractal(a Algorithm, fields map[string]float64, color string) (Instance, error) {
	return s.AddFractalExpr(a, fields, "", color)
}

// AddFractalExpr is AddFractal with a map expression for the algorithms that
// take one.
func (s *Scene) AddFractalExpr(a Algorithm, fields map[string]float64, expression, color string) (Instance, error) {
	p, err := ParseFormExpression(a, fields, expression)
	if err != nil {
		return Instance{}, err
	}
	inst, err := NewInstance(p, color, DefaultIterationBudget)
	if err != nil {
		return Instance{}, fmt.Errorf("%s: %w", a, err)
	}
	s.append(inst)
	return inst, nil
}

// Add appends an already typed instance, as loaded from a scene file.
func (s *Scene) Add(inst Instance) error {
	checked, err := NewInstance(inst.Params, inst.Color, inst.IterationBudget)
	if err != nil {
		return err
	}
	s.append(checked)
	return nil
}

func (s *Scene) append(inst Instance) {
	s.instances = append(s.instances, inst)
	if s.onChange != nil {
		s.onChange()
	}
}

func (s *Scene) Len() int { return len(s.instances) }

// Instances returns a copy of the render list in insertion order.
func (s *Scene) Instances() []Instance {
	out := make([]Instance, len(s.instances))
	copy(out, s.instances)
	return out
}
