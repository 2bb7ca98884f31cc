package geometry

import "fmt"

// RandSource supplies uniform numbers in [0,1). *math/rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// AffineMap is x' = A*x + B*y + E, y' = C*x + D*y + F, chosen with probability P.
type AffineMap struct {
	A float64 `yaml:"a" json:"a"`
	B float64 `yaml:"b" json:"b"`
	C float64 `yaml:"c" json:"c"`
	D float64 `yaml:"d" json:"d"`
	E float64 `yaml:"e" json:"e"`
	F float64 `yaml:"f" json:"f"`
	P float64 `yaml:"p" json:"p"`
}

func (m AffineMap) Apply(p Point) Point {
	return Point{m.A*p.X + m.B*p.Y + m.E, m.C*p.X + m.D*p.Y + m.F}
}

// IFS runs an iterated function system as a chaos game: every step picks one
// map by its probability band and applies it to the current point.
type IFS struct {
	maps       []AffineMap
	cumulative []float64
	rnd        RandSource
}

// BarnsleyMaps are the fern coefficients with bands r<0.01, r<0.86, r<0.93, else.
func BarnsleyMaps() []AffineMap {
	return []AffineMap{
		{A: 0, B: 0, C: 0, D: 0.16, E: 0, F: 0, P: 0.01},
		{A: 0.85, B: 0.04, C: -0.04, D: 0.85, E: 0, F: 1.6, P: 0.85},
		{A: 0.2, B: -0.26, C: 0.23, D: 0.22, E: 0, F: 1.6, P: 0.07},
		{A: -0.15, B: 0.28, C: 0.26, D: 0.24, E: 0, F: 0.44, P: 0.07},
	}
}

// NewIFS validates maps and builds the cumulative probability bands.
// Probabilities must be non-negative and sum to a positive total; they are
// normalised so the last band always closes at 1.
func NewIFS(maps []AffineMap, rnd RandSource) (*IFS, error) {
	if len(maps) == 0 {
		return nil, fmt.Errorf("ifs: no maps")
	}
	if rnd == nil {
		return nil, fmt.Errorf("ifs: nil random source")
	}
	total := 0.0
	for i, m := range maps {
		if m.P < 0 {
			return nil, fmt.Errorf("ifs: map %d has negative probability %f", i, m.P)
		}
		total += m.P
	}
	if total <= 0 {
		return nil, fmt.Errorf("ifs: probabilities sum to %f", total)
	}
	cum := make([]float64, len(maps))
	acc := 0.0
	for i, m := range maps {
		acc += m.P / total
		cum[i] = acc
	}
	cum[len(cum)-1] = 1
	return &IFS{maps: append([]AffineMap(nil), maps...), cumulative: cum, rnd: rnd}, nil
}

// Barnsley returns the fern IFS driven by rnd.
func Barnsley(rnd RandSource) *IFS {
	f, _ := NewIFS(BarnsleyMaps(), rnd)
	return f
}

// Pick returns the index of the map selected by r.
func (f *IFS) Pick(r float64) int {
	for i, c := range f.cumulative {
		if r < c {
			return i
		}
	}
	return len(f.cumulative) - 1
}

// Next applies one randomly chosen map to p.
func (f *IFS) Next(p Point) Point {
	return f.maps[f.Pick(f.rnd.Float64())].Apply(p)
}

// Step adapts the IFS to the driver: exactly one successor per point.
func (f *IFS) Step(p Point, _ int) []Point {
	return []Point{f.Next(p)}
}
