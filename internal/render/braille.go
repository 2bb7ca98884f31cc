package render

import (
	"math"
	"strings"
)

// brailleBlank is U+2800, the empty braille pattern.
const brailleBlank = 0x2800

// Dot bits of a braille cell, indexed [row][column]:
//
//	1 4
//	2 5
//	3 6
//	7 8
var brailleDots = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// BrailleSurface rasterises onto a grid of braille characters. Every cell
// holds 2x4 dots, so a surface of cols x rows cells is (2*cols) x (4*rows)
// sub-pixels. Each cell remembers the color of the last dot set in it.
type BrailleSurface struct {
	cols, rows int
	grid       [][]rune
	colors     [][]string
	color      string
	tf         *Transform
}

func NewBrailleSurface(cols, rows int) *BrailleSurface {
	b := &BrailleSurface{tf: NewTransform()}
	b.Resize(cols, rows)
	return b
}

// Resize reallocates the grid to cols x rows cells and clears it.
func (b *BrailleSurface) Resize(cols, rows int) {
	b.cols, b.rows = max(0, cols), max(0, rows)
	b.grid = make([][]rune, b.rows)
	b.colors = make([][]string, b.rows)
	for i := range b.grid {
		b.grid[i] = make([]rune, b.cols)
		b.colors[i] = make([]string, b.cols)
	}
	b.Clear()
}

// Size is in sub-pixels.
func (b *BrailleSurface) Size() (int, int) { return b.cols * 2, b.rows * 4 }

// Cells is the grid size in characters.
func (b *BrailleSurface) Cells() (cols, rows int) { return b.cols, b.rows }

func (b *BrailleSurface) Clear() {
	for i := range b.grid {
		for j := range b.grid[i] {
			b.grid[i][j] = brailleBlank
			b.colors[i][j] = ""
		}
	}
	b.tf.Reset()
}

func (b *BrailleSurface) Push()                  { b.tf.Push() }
func (b *BrailleSurface) Pop()                   { b.tf.Pop() }
func (b *BrailleSurface) Translate(x, y float64) { b.tf.Translate(x, y) }
func (b *BrailleSurface) Scale(sx, sy float64)   { b.tf.Scale(sx, sy) }
func (b *BrailleSurface) SetColor(hex string)    { b.color = hex }

// SetLineWidth is ignored; every line is one dot wide.
func (b *BrailleSurface) SetLineWidth(float64) {}

// Label is ignored; text does not fit between braille dots.
func (b *BrailleSurface) Label(float64, float64, string) {}

// Set turns on the dot at sub-pixel (x, y). Out of range dots are dropped.
func (b *BrailleSurface) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= b.cols || row >= b.rows {
		return
	}
	b.grid[row][col] |= brailleDots[y%4][x%2]
	b.colors[row][col] = b.color
}

// IsSet reports whether the dot at sub-pixel (x, y) is on.
func (b *BrailleSurface) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= b.cols || y/4 >= b.rows {
		return false
	}
	return b.grid[y/4][x/2]&brailleDots[y%4][x%2] != 0
}

func (b *BrailleSurface) StrokeLine(x1, y1, x2, y2 float64) {
	dx1, dy1 := b.tf.Apply(x1, y1)
	dx2, dy2 := b.tf.Apply(x2, y2)
	b.line(dx1, dy1, dx2, dy2)
}

// StrokeEllipse approximates the outline with a polygon whose edge length is
// about two sub-pixels.
func (b *BrailleSurface) StrokeEllipse(cx, cy, rx, ry float64) {
	m := b.tf
	k := m.ScaleFactor()
	n := int(math.Ceil(math.Pi * math.Max(rx, ry) * k))
	n = min(max(n, 8), 512)
	px, py := m.Apply(cx+rx, cy)
	for i := 1; i <= n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		x, y := m.Apply(cx+rx*math.Cos(t), cy+ry*math.Sin(t))
		b.line(px, py, x, y)
		px, py = x, y
	}
}

func (b *BrailleSurface) FillDot(x, y, _ float64) {
	dx, dy := b.tf.Apply(x, y)
	b.Set(int(math.Floor(dx)), int(math.Floor(dy)))
}

// line clips far away endpoints before running Bresenham so that zoomed-in
// geometry does not walk millions of off-screen dots.
func (b *BrailleSurface) line(x1, y1, x2, y2 float64) {
	w, h := b.Size()
	var ok bool
	x1, y1, x2, y2, ok = clipLine(x1, y1, x2, y2, -1, -1, float64(w)+1, float64(h)+1)
	if !ok {
		return
	}
	b.bresenham(int(math.Floor(x1)), int(math.Floor(y1)), int(math.Floor(x2)), int(math.Floor(y2)))
}

func (b *BrailleSurface) bresenham(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		b.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// clipLine is Liang-Barsky against [xmin,xmax]x[ymin,ymax].
func clipLine(x1, y1, x2, y2, xmin, ymin, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	if v := x1 + y1 + x2 + y2; math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, 0, 0, 0, false
	}
	t0, t1 := 0.0, 1.0
	dx, dy := x2-x1, y2-y1
	edges := [4][2]float64{
		{-dx, x1 - xmin},
		{dx, xmax - x1},
		{-dy, y1 - ymin},
		{dy, ymax - y1},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}

// Cell returns the character and color of one grid cell.
func (b *BrailleSurface) Cell(col, row int) (rune, string) {
	return b.grid[row][col], b.colors[row][col]
}

func (b *BrailleSurface) String() string {
	var sb strings.Builder
	for _, row := range b.grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
