package renderer

import (
	"github.com/OpenTraceLab/Cathedral/pkg/schematic"
)

// Zoom limits in pixels per world unit.
const (
	MinZoom = 0.1
	MaxZoom = 50.0
)

// Camera represents a viewport onto the schematic world. World Y grows
// downward, the same as screen Y, so no axis flip is needed.
type Camera struct {
	// Center position in world coordinates
	CenterX float64
	CenterY float64

	// Zoom level (pixels per world unit)
	Zoom float64

	// Screen dimensions (pixels)
	ScreenWidth  int
	ScreenHeight int
}

// NewCamera creates a camera centred on the origin at 2 pixels per unit.
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         2.0,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// WorldToScreen converts world coordinates to screen coordinates (pixels)
func (c *Camera) WorldToScreen(p schematic.Point) (float64, float64) {
	x := (p.X-c.CenterX)*c.Zoom + float64(c.ScreenWidth)/2.0
	y := (p.Y-c.CenterY)*c.Zoom + float64(c.ScreenHeight)/2.0
	return x, y
}

// ScreenToWorld converts screen coordinates (pixels) to world coordinates
func (c *Camera) ScreenToWorld(screenX, screenY float64) schematic.Point {
	return schematic.Point{
		X: (screenX-float64(c.ScreenWidth)/2.0)/c.Zoom + c.CenterX,
		Y: (screenY-float64(c.ScreenHeight)/2.0)/c.Zoom + c.CenterY,
	}
}

// Pan moves the camera by screen pixel offsets
func (c *Camera) Pan(deltaX, deltaY float64) {
	c.CenterX -= deltaX / c.Zoom
	c.CenterY -= deltaY / c.Zoom
}

// ZoomAt zooms in/out at a specific screen position
// factor > 1 zooms in, factor < 1 zooms out
func (c *Camera) ZoomAt(screenX, screenY, factor float64) {
	before := c.ScreenToWorld(screenX, screenY)

	c.Zoom *= factor
	if c.Zoom < MinZoom {
		c.Zoom = MinZoom
	}
	if c.Zoom > MaxZoom {
		c.Zoom = MaxZoom
	}

	// Keep the point under the cursor stationary
	after := c.ScreenToWorld(screenX, screenY)
	c.CenterX += before.X - after.X
	c.CenterY += before.Y - after.Y
}

// Fit adjusts camera to fit the rectangle in view with 10% padding.
func (c *Camera) Fit(r schematic.Rect) {
	width := r.Max.X - r.Min.X
	height := r.Max.Y - r.Min.Y
	if width <= 0 || height <= 0 || c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return
	}

	c.CenterX = (r.Min.X + r.Max.X) / 2.0
	c.CenterY = (r.Min.Y + r.Max.Y) / 2.0

	zoomX := float64(c.ScreenWidth) * 0.9 / width
	zoomY := float64(c.ScreenHeight) * 0.9 / height
	c.Zoom = zoomX
	if zoomY < zoomX {
		c.Zoom = zoomY
	}
	if c.Zoom < MinZoom {
		c.Zoom = MinZoom
	}
	if c.Zoom > MaxZoom {
		c.Zoom = MaxZoom
	}
}

// UpdateScreenSize updates camera when window is resized
func (c *Camera) UpdateScreenSize(width, height int) {
	c.ScreenWidth = width
	c.ScreenHeight = height
}

// VisibleBounds returns the visible area in world coordinates.
func (c *Camera) VisibleBounds() schematic.Rect {
	return schematic.Rect{
		Min: c.ScreenToWorld(0, 0),
		Max: c.ScreenToWorld(float64(c.ScreenWidth), float64(c.ScreenHeight)),
	}
}
