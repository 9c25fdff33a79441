// Package schematic models the drawing side of a circuit: placed symbols,
// their terminals and the orthogonal wires that join them. All coordinates
// are world units with Y increasing downward, and every terminal point is
// snapped to GridSize before wires are built or compared.
package schematic

import (
	"fmt"
	"math"
)

// GridSize is the spacing of the snapping grid in world units.
const GridSize = 20.0

// Point is a 2D coordinate in world units.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Snap rounds each coordinate to the nearest multiple of grid. Halves round
// up, toward positive infinity, so -10 snaps to 0 on a 20 grid.
func Snap(p Point, grid float64) Point {
	if grid <= 0 {
		return p
	}
	return Point{
		X: snapAxis(p.X, grid),
		Y: snapAxis(p.Y, grid),
	}
}

func snapAxis(v, grid float64) float64 {
	return math.Floor(v/grid+0.5) * grid
}

// OnGrid reports whether both coordinates are multiples of grid.
func OnGrid(p Point, grid float64) bool {
	return math.Mod(p.X, grid) == 0 && math.Mod(p.Y, grid) == 0
}

// Rect is an axis-aligned rectangle. Min is the top-left corner.
type Rect struct {
	Min Point
	Max Point
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Translate returns r shifted by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, o.Min.X), Y: math.Min(r.Min.Y, o.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, o.Max.X), Y: math.Max(r.Max.Y, o.Max.Y)},
	}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Segment is one straight run of a wire.
type Segment struct {
	From Point
	To   Point
}

// Horizontal reports whether the segment runs along the X axis.
func (s Segment) Horizontal() bool {
	return s.From.Y == s.To.Y
}

// Vertical reports whether the segment runs along the Y axis.
func (s Segment) Vertical() bool {
	return s.From.X == s.To.X
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return s.From.Dist(s.To)
}

// DistanceTo returns the shortest distance from p to any point on s.
func (s Segment) DistanceTo(p Point) float64 {
	dx := s.To.X - s.From.X
	dy := s.To.Y - s.From.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.Dist(s.From)
	}

	t := ((p.X-s.From.X)*dx + (p.Y-s.From.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	closest := Point{X: s.From.X + t*dx, Y: s.From.Y + t*dy}
	return p.Dist(closest)
}
