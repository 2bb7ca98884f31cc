package geometry

import (
	"math"
	"math/rand"
	"testing"
)

func TestDriverCapsEveryGeneration(t *testing.T) {
	fanOut := func(p Point, i int) []Point {
		out := make([]Point, 7)
		for k := range out {
			out[k] = Pt(p.X+float64(k), p.Y+float64(i))
		}
		return out
	}

	d := Driver{MaxPoints: DefaultMaxPoints}
	gens := d.Generate(fanOut, Pt(0, 0), 50)
	for i, g := range gens {
		if len(g) > DefaultMaxPoints {
			t.Errorf("generation %d has %d points", i, len(g))
		}
	}
	last := gens[len(gens)-1]
	if len(last) != DefaultMaxPoints {
		t.Errorf("expected final generation at the cap, got %d", len(last))
	}
	if len(gens) >= 50 {
		t.Errorf("expected early stop at the cap, ran %d generations", len(gens))
	}
}

func TestDriverKochStepGrowth(t *testing.T) {
	d := Driver{}
	var sizes []int
	stats := d.Run(KochStep, Pt(0, 0), 4, func(gen int, pts PointSet) {
		sizes = append(sizes, len(pts))
	})
	want := []int{3, 9, 27, 81}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("generation %d: expected %d points, got %d", i, want[i], sizes[i])
		}
	}
	if stats.Generations != 4 || stats.Points != 120 || stats.Capped {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestDriverZeroGenerations(t *testing.T) {
	gens := Driver{}.Generate(KochStep, Pt(0, 0), 0)
	if len(gens) != 0 {
		t.Errorf("expected no generations, got %d", len(gens))
	}
}

type fixedRand []float64

func (f *fixedRand) Float64() float64 {
	v := (*f)[0]
	*f = (*f)[1:]
	return v
}

func TestIFSBands(t *testing.T) {
	f := Barnsley(rand.New(rand.NewSource(1)))
	tests := []struct {
		r   float64
		idx int
	}{
		{0, 0},
		{0.0099, 0},
		{0.0101, 1},
		{0.85, 1},
		{0.8601, 2},
		{0.9299, 2},
		{0.9301, 3},
		{0.9999, 3},
	}
	for _, tt := range tests {
		if got := f.Pick(tt.r); got != tt.idx {
			t.Errorf("Pick(%v) = %d, want %d", tt.r, got, tt.idx)
		}
	}
}

func TestIFSDeterministicWithInjectedSource(t *testing.T) {
	seq := fixedRand{0.005, 0.5, 0.9, 0.95}
	f := Barnsley(&seq)
	p := Pt(1, 1)

	p = f.Next(p)
	if !p.Near(Pt(0, 0.16), 1e-12) {
		t.Errorf("stem map: got %v", p)
	}
	p = f.Next(Pt(1, 1))
	if !p.Near(Pt(0.89, 2.41), 1e-12) {
		t.Errorf("main map: got %v", p)
	}
	p = f.Next(Pt(1, 1))
	if !p.Near(Pt(-0.06, 2.05), 1e-12) {
		t.Errorf("left leaf map: got %v", p)
	}
	p = f.Next(Pt(1, 1))
	if !p.Near(Pt(0.13, 0.94), 1e-12) {
		t.Errorf("right leaf map: got %v", p)
	}
}

func TestIFSSameSeedSameOutput(t *testing.T) {
	a := Driver{}.Generate(Barnsley(rand.New(rand.NewSource(7))).Step, Pt(0, 0), 200)
	b := Driver{}.Generate(Barnsley(rand.New(rand.NewSource(7))).Step, Pt(0, 0), 200)
	for i := range a {
		if a[i][0] != b[i][0] {
			t.Fatalf("generation %d differs: %v vs %v", i, a[i][0], b[i][0])
		}
	}
}

func TestBarnsleyAttractorBounds(t *testing.T) {
	const iterations = 20000
	seeds := []Point{{0, 0}, {50, -50}, {-3, 12}, {1e3, 1e3}}

	var boxes [][2]Point
	for i, seed := range seeds {
		f := Barnsley(rand.New(rand.NewSource(int64(i + 1))))
		var cloud PointSet
		Driver{}.Run(f.Step, seed, iterations, func(gen int, pts PointSet) {
			if gen >= 200 {
				cloud = append(cloud, pts...)
			}
		})
		lo, hi, ok := cloud.Bounds()
		if !ok {
			t.Fatal("empty cloud")
		}
		boxes = append(boxes, [2]Point{lo, hi})
	}

	// The fern lies in roughly [-2.2, 2.7] x [0, 10].
	for i, b := range boxes {
		if b[0].X < -2.5 || b[1].X > 3.0 || b[0].Y < -0.1 || b[1].Y > 10.2 {
			t.Errorf("seed %d: box %v outside the fern range", i, b)
		}
		if math.Abs(b[0].X-boxes[0][0].X) > 0.4 || math.Abs(b[1].X-boxes[0][1].X) > 0.4 ||
			math.Abs(b[1].Y-boxes[0][1].Y) > 0.4 {
			t.Errorf("seed %d: box %v does not match %v", i, b, boxes[0])
		}
	}
}

func TestNewIFSValidation(t *testing.T) {
	src := rand.New(rand.NewSource(1))
	if _, err := NewIFS(nil, src); err == nil {
		t.Error("expected error for empty map list")
	}
	if _, err := NewIFS([]AffineMap{{P: -1}}, src); err == nil {
		t.Error("expected error for negative probability")
	}
	if _, err := NewIFS([]AffineMap{{P: 0}}, src); err == nil {
		t.Error("expected error for zero total probability")
	}
	if _, err := NewIFS(BarnsleyMaps(), nil); err == nil {
		t.Error("expected error for nil random source")
	}
}
