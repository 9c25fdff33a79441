package schematic

// Router computes the visible path between two snapped terminal points.
type Router interface {
	Route(from, to Point) []Segment
}

// ManhattanRouter always runs horizontally from the start terminal to the
// end terminal's X, then vertically to the end terminal. Coincident points
// produce no segments; otherwise there are exactly two, even when one of
// them has zero length.
type ManhattanRouter struct{}

// Route implements Router.
func (ManhattanRouter) Route(from, to Point) []Segment {
	if from == to {
		return nil
	}
	corner := Point{X: to.X, Y: from.Y}
	return []Segment{
		{From: from, To: corner},
		{From: corner, To: to},
	}
}
