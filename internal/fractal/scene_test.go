package fractal

import (
	"errors"
	"math"
	"testing"
)

func TestAddFractalAppends(t *testing.T) {
	s := NewScene()
	notified := 0
	s.OnChange(func() { notified++ })

	valid := []struct {
		alg    Algorithm
		fields map[string]float64
	}{
		{Circle, map[string]float64{"radius": 80}},
		{Ellipse, map[string]float64{"width": 60, "height": 30}},
		{Koch, map[string]float64{"iterations": 4}},
		{KochStep, map[string]float64{"iterations": 6}},
		{IteratedMap, map[string]float64{"iterations": 5000}},
	}

	for i, tt := range valid {
		before := s.Instances()
		inst, err := s.AddFractal(tt.alg, tt.fields, "#ff0000")
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tt.alg, err)
		}
		if inst.Algorithm() != tt.alg {
			t.Errorf("expected algorithm %s, got %s", tt.alg, inst.Algorithm())
		}
		if s.Len() != i+1 {
			t.Fatalf("expected %d instances, got %d", i+1, s.Len())
		}
		after := s.Instances()
		for j := range before {
			if after[j].String() != before[j].String() {
				t.Errorf("entry %d changed after append", j)
			}
		}
	}
	if notified != len(valid) {
		t.Errorf("expected %d change notifications, got %d", len(valid), notified)
	}
}

func TestAddFractalRejects(t *testing.T) {
	tests := []struct {
		name   string
		alg    Algorithm
		fields map[string]float64
		color  string
	}{
		{"circle missing radius", Circle, map[string]float64{}, ""},
		{"ellipse missing height", Ellipse, map[string]float64{"width": 10}, ""},
		{"koch missing iterations", Koch, map[string]float64{"radius": 3}, ""},
		{"unknown key", Circle, map[string]float64{"radius": 3, "width": 2}, ""},
		{"nan radius", Circle, map[string]float64{"radius": math.NaN()}, ""},
		{"inf width", Ellipse, map[string]float64{"width": math.Inf(1), "height": 2}, ""},
		{"negative iterations", Koch, map[string]float64{"iterations": -1}, ""},
		{"unknown algorithm", Algorithm("spiral"), map[string]float64{"radius": 3}, ""},
		{"bad color", Circle, map[string]float64{"radius": 3}, "red"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene()
			called := false
			s.OnChange(func() { called = true })

			_, err := s.AddFractal(tt.alg, tt.fields, tt.color)
			if !errors.Is(err, ErrInvalidParameters) {
				t.Fatalf("expected ErrInvalidParameters, got %v", err)
			}
			if s.Len() != 0 {
				t.Errorf("expected empty scene, got %d entries", s.Len())
			}
			if called {
				t.Error("change callback fired for rejected configuration")
			}
		})
	}
}

func TestAddFractalExpression(t *testing.T) {
	s := NewScene()
	inst, err := s.AddFractalExpr(IteratedMap, map[string]float64{"iterations": 50}, " x + y, y - x ", "")
	if err != nil {
		t.Fatal(err)
	}
	mp := inst.Params.(IteratedMapParams)
	if mp.Expression != "x + y, y - x" || len(mp.Maps) != 0 {
		t.Errorf("unexpected params %+v", mp)
	}

	rejects := []struct {
		name string
		alg  Algorithm
		expr string
	}{
		{"single value", IteratedMap, "x"},
		{"syntax", IteratedMap, "x +, y"},
		{"unknown variable", IteratedMap, "z, y"},
		{"not finite at (1,1)", IteratedMap, "1 / (x - 1), y"},
		{"circle takes none", Circle, "x, y"},
	}
	for _, tt := range rejects {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene()
			fields := map[string]float64{"iterations": 10}
			if tt.alg == Circle {
				fields = map[string]float64{"radius": 3}
			}
			if _, err := s.AddFractalExpr(tt.alg, fields, tt.expr, ""); !errors.Is(err, ErrInvalidParameters) {
				t.Fatalf("expected ErrInvalidParameters, got %v", err)
			}
			if s.Len() != 0 {
				t.Error("rejected expression changed the scene")
			}
		})
	}
}

func TestIteratedMapValidateExpression(t *testing.T) {
	p := IteratedMapParams{Iterations: 10, Scale: 1, Expression: "log(x - 1), y"}
	if err := p.Validate(); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("expected ErrInvalidParameters, got %v", err)
	}
	p.Expression = "x * 0.5, y * 0.5"
	if err := p.Validate(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestDegenerateSizesAreAccepted(t *testing.T) {
	s := NewScene()
	inst, err := s.AddFractal(Circle, map[string]float64{"radius": -5}, "")
	if err != nil {
		t.Fatalf("non-positive radius must not be an error: %v", err)
	}
	if !inst.Params.(CircleParams).Degenerate() {
		t.Error("expected degenerate circle")
	}
	if inst.Color != DefaultColor {
		t.Errorf("expected default color, got %s", inst.Color)
	}
	if inst.IterationBudget != DefaultIterationBudget {
		t.Errorf("expected default budget, got %d", inst.IterationBudget)
	}
}

func TestParseFormDefaults(t *testing.T) {
	p, err := ParseForm(Koch, map[string]float64{"iterations": 3.7})
	if err != nil {
		t.Fatal(err)
	}
	kp := p.(KochParams)
	if kp.Iterations != 3 || kp.Length != DefaultKochLength {
		t.Errorf("unexpected koch params %+v", kp)
	}

	p, err = ParseForm(IteratedMap, map[string]float64{"iterations": 100})
	if err != nil {
		t.Fatal(err)
	}
	mp := p.(IteratedMapParams)
	if len(mp.Maps) != 4 || mp.Scale != DefaultMapScale {
		t.Errorf("expected barnsley defaults, got %+v", mp)
	}
}

func TestSceneAddValidates(t *testing.T) {
	s := NewScene()
	if err := s.Add(Instance{Params: EllipseParams{Width: math.NaN(), Height: 1}}); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("expected ErrInvalidParameters, got %v", err)
	}
	if err := s.Add(Instance{}); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("expected ErrInvalidParameters for nil params, got %v", err)
	}
	if err := s.Add(Instance{Params: CircleParams{Radius: 10}, Color: "#abc"}); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 instance, got %d", s.Len())
	}
}

func TestOptions(t *testing.T) {
	opts := Options()
	want := []Option{
		{Circle, "Circle Recursion"},
		{Ellipse, "Ellipse Recursion"},
		{Koch, "Koch-Curve"},
	}
	if len(opts) != len(want) {
		t.Fatalf("expected %d options, got %d", len(want), len(opts))
	}
	for i := range want {
		if opts[i] != want[i] {
			t.Errorf("option %d: expected %v, got %v", i, want[i], opts[i])
		}
	}
	opts[0].Label = "changed"
	if Options()[0].Label != "Circle Recursion" {
		t.Error("Options must return a copy")
	}
}

func TestValidColor(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"#fff", true},
		{"#FFFF", true},
		{"#1e90ff", true},
		{"#1e90ff80", true},
		{"1e90ff", false},
		{"#12345", false},
		{"#ggg", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidColor(tt.in); got != tt.valid {
			t.Errorf("ValidColor(%q) = %v, want %v", tt.in, got, tt.valid)
		}
	}
}
