package render

import (
	"math"
	"testing"

	"github.com/san-kum/fraktale/internal/geometry"
)

func TestViewportOrigin(t *testing.T) {
	v := NewViewport(800, 600)
	v.Pan(15, -20)
	x, y := v.Origin()
	if x != 415 || y != 280 {
		t.Errorf("Origin() = (%v, %v), want (415, 280)", x, y)
	}
	p := v.WorldToDevice(geometry.Point{})
	if p.X != x || p.Y != y {
		t.Errorf("world origin maps to %v, want (%v, %v)", p, x, y)
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := NewViewport(640, 480)
	v.Pan(-33, 12.5)
	v.ZoomBy(3.7)
	for _, p := range []geometry.Point{{}, {X: 10, Y: -4}, {X: -250.5, Y: 1e3}} {
		got := v.DeviceToWorld(v.WorldToDevice(p))
		if !got.Near(p, 1e-9) {
			t.Errorf("round trip of %v = %v", p, got)
		}
	}
}

func TestViewportZoomBy(t *testing.T) {
	tests := []struct {
		name  string
		zoom  float64
		ratio float64
		ok    bool
		want  float64
	}{
		{"in", 1, ZoomIn, true, 1.1},
		{"out", 1.1, ZoomOut, true, 1},
		{"zero ratio", 1, 0, false, 1},
		{"negative ratio", 1, -2, false, 1},
		{"NaN ratio", 1, math.NaN(), false, 1},
		{"below min", 2e-6, 0.4, false, 2e-6},
		{"to min", 2e-6, 0.5, false, 2e-6},
		{"overflow", math.MaxFloat64, 10, false, math.MaxFloat64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Viewport{Width: 10, Height: 10, Zoom: tt.zoom}
			if ok := v.ZoomBy(tt.ratio); ok != tt.ok {
				t.Errorf("ZoomBy(%v) = %v, want %v", tt.ratio, ok, tt.ok)
			}
			if math.Abs(v.Zoom-tt.want) > 1e-12*tt.want {
				t.Errorf("zoom = %v, want %v", v.Zoom, tt.want)
			}
		})
	}
}

func TestViewportZoomInOutCancels(t *testing.T) {
	v := NewViewport(100, 100)
	for i := 0; i < 25; i++ {
		v.ZoomBy(ZoomIn)
	}
	for i := 0; i < 25; i++ {
		v.ZoomBy(ZoomOut)
	}
	if math.Abs(v.Zoom-DefaultZoom) > 1e-9 {
		t.Errorf("zoom after 25 in and 25 out = %v, want %v", v.Zoom, DefaultZoom)
	}
}

func TestViewportAxisWidth(t *testing.T) {
	tests := []struct {
		zoom float64
		want float64
	}{
		{0.5, 4},
		{1, 2},
		{2, 1},
		{8, 1},
	}
	for _, tt := range tests {
		v := &Viewport{Zoom: tt.zoom}
		if got := v.AxisWidth(); got != tt.want {
			t.Errorf("AxisWidth() at zoom %v = %v, want %v", tt.zoom, got, tt.want)
		}
	}
}

func TestViewportReset(t *testing.T) {
	v := NewViewport(300, 200)
	v.Pan(5, 5)
	v.ZoomBy(2)
	v.Reset()
	if v.Zoom != DefaultZoom || v.OffsetX != 0 || v.OffsetY != 0 {
		t.Errorf("Reset left %+v", v)
	}
	if v.Width != 300 || v.Height != 200 {
		t.Errorf("Reset changed size to %dx%d", v.Width, v.Height)
	}
}

func TestViewportResetToHome(t *testing.T) {
	v := NewViewport(300, 200)
	v.ZoomBy(0.5)
	v.Pan(0, 40)
	v.SetHome()
	v.ZoomBy(3)
	v.Pan(10, 10)
	v.Reset()
	if math.Abs(v.Zoom-DefaultZoom*0.5) > 1e-12 || v.OffsetX != 0 || v.OffsetY != 40 {
		t.Errorf("Reset to home left %+v", v)
	}
}

func TestTransformMatchesViewport(t *testing.T) {
	v := NewViewport(400, 300)
	v.Pan(7, -9)
	v.ZoomBy(2.5)
	ox, oy := v.Origin()
	m := NewTransform()
	m.Translate(ox, oy)
	m.Scale(v.Zoom, v.Zoom)
	p := geometry.Pt(12, -3)
	x, y := m.Apply(p.X, p.Y)
	want := v.WorldToDevice(p)
	if !geometry.Pt(x, y).Near(want, 1e-9) {
		t.Errorf("transform gives (%v, %v), viewport gives %v", x, y, want)
	}
	if math.Abs(m.ScaleFactor()-v.Zoom) > 1e-12 {
		t.Errorf("ScaleFactor() = %v, want %v", m.ScaleFactor(), v.Zoom)
	}
}

func TestTransformStack(t *testing.T) {
	tf := NewTransform()
	tf.Push()
	tf.Translate(10, 0)
	tf.Scale(2, 2)
	x, y := tf.Apply(1, 1)
	if x != 12 || y != 2 {
		t.Errorf("Apply = (%v, %v), want (12, 2)", x, y)
	}
	tf.Pop()
	if !tf.Current.IsIdentity() {
		t.Errorf("Pop did not restore identity: %+v", tf.Current)
	}
	tf.Pop()
	if !tf.Current.IsIdentity() {
		t.Error("Pop on empty stack changed the matrix")
	}
}
