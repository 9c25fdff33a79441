package renderer

import (
	"math"
	"testing"

	"github.com/OpenTraceLab/Cathedral/pkg/circuit"
	"github.com/OpenTraceLab/Cathedral/pkg/schematic"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCameraRoundTrip(t *testing.T) {
	c := NewCamera(800, 600)
	c.CenterX, c.CenterY = 40, -20
	c.Zoom = 3

	points := []schematic.Point{
		schematic.Pt(0, 0),
		schematic.Pt(40, -20),
		schematic.Pt(-123.5, 77),
	}
	for _, p := range points {
		sx, sy := c.WorldToScreen(p)
		back := c.ScreenToWorld(sx, sy)
		if !near(back.X, p.X) || !near(back.Y, p.Y) {
			t.Errorf("round trip of %v gave %v", p, back)
		}
	}

	sx, sy := c.WorldToScreen(schematic.Pt(40, -20))
	if sx != 400 || sy != 300 {
		t.Errorf("center should map to screen center, got (%v, %v)", sx, sy)
	}
}

func TestCameraYDown(t *testing.T) {
	c := NewCamera(100, 100)
	_, y1 := c.WorldToScreen(schematic.Pt(0, 0))
	_, y2 := c.WorldToScreen(schematic.Pt(0, 10))
	if y2 <= y1 {
		t.Errorf("larger world Y should be lower on screen: %v vs %v", y1, y2)
	}
}

func TestCameraPan(t *testing.T) {
	c := NewCamera(800, 600)
	c.Zoom = 2

	before := c.ScreenToWorld(100, 100)
	c.Pan(20, -10)
	after := c.ScreenToWorld(120, 90)
	if !near(before.X, after.X) || !near(before.Y, after.Y) {
		t.Errorf("panned content should follow the pointer: %v vs %v", before, after)
	}
}

func TestCameraZoomAtKeepsCursorPoint(t *testing.T) {
	c := NewCamera(800, 600)
	c.CenterX, c.CenterY = 10, 10

	before := c.ScreenToWorld(650, 120)
	c.ZoomAt(650, 120, 1.5)
	after := c.ScreenToWorld(650, 120)

	if !near(before.X, after.X) || !near(before.Y, after.Y) {
		t.Errorf("point under cursor moved from %v to %v", before, after)
	}
	if !near(c.Zoom, 3) {
		t.Errorf("expected zoom 3, got %v", c.Zoom)
	}
}

func TestCameraZoomClamp(t *testing.T) {
	c := NewCamera(800, 600)
	c.ZoomAt(0, 0, 1e6)
	if c.Zoom != MaxZoom {
		t.Errorf("expected zoom clamped to %v, got %v", MaxZoom, c.Zoom)
	}
	c.ZoomAt(0, 0, 1e-9)
	if c.Zoom != MinZoom {
		t.Errorf("expected zoom clamped to %v, got %v", MinZoom, c.Zoom)
	}
}

func TestCameraFit(t *testing.T) {
	c := NewCamera(1000, 500)
	c.Fit(schematic.Rect{Min: schematic.Pt(0, 0), Max: schematic.Pt(100, 100)})

	if c.CenterX != 50 || c.CenterY != 50 {
		t.Errorf("expected center (50, 50), got (%v, %v)", c.CenterX, c.CenterY)
	}
	// Height limits: 500 * 0.9 / 100
	if !near(c.Zoom, 4.5) {
		t.Errorf("expected zoom 4.5, got %v", c.Zoom)
	}

	zoom := c.Zoom
	c.Fit(schematic.Rect{Min: schematic.Pt(5, 5), Max: schematic.Pt(5, 5)})
	if c.Zoom != zoom {
		t.Error("degenerate rectangle should leave the camera alone")
	}
}

func TestDarkThemeColors(t *testing.T) {
	colors := GetSchematicColors(ParseTheme("dark"))

	if colors.Background != rgb(0x1E1E1E) {
		t.Errorf("unexpected background %v", colors.Background)
	}
	fill, border := colors.SymbolColors(circuit.KindResistor)
	if fill != rgb(0xFFA500) || border != rgb(0xFF8C00) {
		t.Errorf("unexpected resistor colors %v %v", fill, border)
	}
	fill, border = colors.SymbolColors(circuit.KindCapacitor)
	if fill != rgb(0x00AFFF) || border != rgb(0x0088CC) {
		t.Errorf("unexpected capacitor colors %v %v", fill, border)
	}
	if ParseTheme("LIGHT") != ThemeLight || ParseTheme("solarized") != ThemeDark {
		t.Error("ParseTheme mapping is wrong")
	}
}
