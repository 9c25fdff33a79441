package schematic

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/Cathedral/pkg/circuit"
)

var (
	// ErrSymbolNotFound is returned when a symbol id is not placed.
	ErrSymbolNotFound = errors.New("schematic: symbol not found")
	// ErrDuplicateSymbol is returned when placing an id that already exists.
	ErrDuplicateSymbol = errors.New("schematic: symbol already placed")
	// ErrWireNotFound is returned when a wire id does not exist.
	ErrWireNotFound = errors.New("schematic: wire not found")
)

// Connection is a wire between two terminals together with its routed
// segments. FromPoint and ToPoint are always grid-snapped.
type Connection struct {
	ID        int
	From      TerminalRef
	To        TerminalRef
	FromPoint Point
	ToPoint   Point
	Segments  []Segment
}

// Touches reports whether either end of the connection is on symbol id.
func (c *Connection) Touches(id string) bool {
	return c.From.Component == id || c.To.Component == id
}

func (c Connection) String() string {
	return fmt.Sprintf("W%d %s %v -> %s %v (%d segments)",
		c.ID, c.From, c.FromPoint, c.To, c.ToPoint, len(c.Segments))
}

func (c *Connection) clone() Connection {
	out := *c
	out.Segments = append([]Segment(nil), c.Segments...)
	return out
}

// Scene holds placed symbols and the wires between them. It is owned by a
// single goroutine.
type Scene struct {
	symbols map[string]*Symbol
	order   []string // placement order, last is topmost

	conns      []*Connection
	nextWireID int

	grid   float64
	router Router
}

// NewScene returns an empty scene using GridSize and ManhattanRouter.
func NewScene() *Scene {
	return &Scene{
		symbols:    make(map[string]*Symbol),
		nextWireID: 1,
		grid:       GridSize,
		router:     ManhattanRouter{},
	}
}

// SetRouter replaces the routing rule. Existing wires are re-routed.
func (s *Scene) SetRouter(r Router) {
	s.router = r
	for _, c := range s.conns {
		s.reroute(c)
	}
}

// Grid returns the snapping grid size.
func (s *Scene) Grid() float64 {
	return s.grid
}

// Place adds a symbol at pos.
func (s *Scene) Place(id string, kind circuit.Kind, pos Point) (Symbol, error) {
	if _, ok := s.symbols[id]; ok {
		return Symbol{}, fmt.Errorf("%w: %s", ErrDuplicateSymbol, id)
	}
	sym := &Symbol{ID: id, Kind: kind, Pos: pos}
	s.symbols[id] = sym
	s.order = append(s.order, id)
	return *sym, nil
}

// Symbol returns a copy of the symbol with the given id.
func (s *Scene) Symbol(id string) (Symbol, bool) {
	sym, ok := s.symbols[id]
	if !ok {
		return Symbol{}, false
	}
	return *sym, true
}

// Symbols returns copies of all symbols in placement order.
func (s *Scene) Symbols() []Symbol {
	out := make([]Symbol, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.symbols[id])
	}
	return out
}

// SymbolAt returns the topmost symbol whose body contains p.
func (s *Scene) SymbolAt(p Point) (Symbol, bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		sym := s.symbols[s.order[i]]
		if sym.Contains(p) {
			return *sym, true
		}
	}
	return Symbol{}, false
}

// Move places symbol id at pos and re-routes every connection touching it.
// It returns the re-routed connections; an unconnected symbol returns none.
func (s *Scene) Move(id string, pos Point) ([]Connection, error) {
	sym, ok := s.symbols[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, id)
	}
	sym.Pos = pos

	var updated []Connection
	for _, c := range s.conns {
		if c.Touches(id) {
			s.reroute(c)
			updated = append(updated, c.clone())
		}
	}
	return updated, nil
}

// MoveBy shifts symbol id by delta.
func (s *Scene) MoveBy(id string, delta Point) ([]Connection, error) {
	sym, ok := s.symbols[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, id)
	}
	return s.Move(id, sym.Pos.Add(delta))
}

// Remove deletes symbol id and every connection that references it. The
// removed connections are returned.
func (s *Scene) Remove(id string) ([]Connection, error) {
	if _, ok := s.symbols[id]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, id)
	}

	var removed []Connection
	kept := s.conns[:0]
	for _, c := range s.conns {
		if c.Touches(id) {
			removed = append(removed, c.clone())
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(s.conns); i++ {
		s.conns[i] = nil
	}
	s.conns = kept

	delete(s.symbols, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return removed, nil
}

// Connect adds a wire between two terminals. Both terminal points are
// snapped to the grid before routing.
func (s *Scene) Connect(from, to TerminalRef) (Connection, error) {
	if _, ok := s.symbols[from.Component]; !ok {
		return Connection{}, fmt.Errorf("%w: %s", ErrSymbolNotFound, from.Component)
	}
	if _, ok := s.symbols[to.Component]; !ok {
		return Connection{}, fmt.Errorf("%w: %s", ErrSymbolNotFound, to.Component)
	}

	c := &Connection{
		ID:   s.nextWireID,
		From: from,
		To:   to,
	}
	s.nextWireID++
	s.reroute(c)
	s.conns = append(s.conns, c)
	return c.clone(), nil
}

// Connection returns a copy of the wire with the given id.
func (s *Scene) Connection(id int) (Connection, bool) {
	for _, c := range s.conns {
		if c.ID == id {
			return c.clone(), true
		}
	}
	return Connection{}, false
}

// Connections returns copies of all wires in creation order.
func (s *Scene) Connections() []Connection {
	out := make([]Connection, 0, len(s.conns))
	for _, c := range s.conns {
		out = append(out, c.clone())
	}
	return out
}

// ConnectionsOf returns copies of the wires touching symbol id.
func (s *Scene) ConnectionsOf(id string) []Connection {
	var out []Connection
	for _, c := range s.conns {
		if c.Touches(id) {
			out = append(out, c.clone())
		}
	}
	return out
}

// ConnectionAt returns the most recently added wire with a segment within
// tol of p.
func (s *Scene) ConnectionAt(p Point, tol float64) (Connection, bool) {
	for i := len(s.conns) - 1; i >= 0; i-- {
		for _, seg := range s.conns[i].Segments {
			if seg.DistanceTo(p) <= tol {
				return s.conns[i].clone(), true
			}
		}
	}
	return Connection{}, false
}

// RemoveConnection deletes a wire and all of its segments.
func (s *Scene) RemoveConnection(id int) (Connection, error) {
	for i, c := range s.conns {
		if c.ID == id {
			s.conns = append(s.conns[:i], s.conns[i+1:]...)
			return c.clone(), nil
		}
	}
	return Connection{}, fmt.Errorf("%w: %d", ErrWireNotFound, id)
}

// Bounds returns the rectangle enclosing all symbols and wires. The second
// result is false for an empty scene.
func (s *Scene) Bounds() (Rect, bool) {
	var (
		r     Rect
		found bool
	)
	add := func(o Rect) {
		if !found {
			r, found = o, true
			return
		}
		r = r.Union(o)
	}
	for _, id := range s.order {
		add(s.symbols[id].Bounds())
	}
	for _, c := range s.conns {
		for _, seg := range c.Segments {
			add(Rect{Min: seg.From, Max: seg.From}.Union(Rect{Min: seg.To, Max: seg.To}))
		}
	}
	return r, found
}

// reroute discards the old segments and builds new ones from the current
// symbol positions and the terminals chosen when the wire was made.
func (s *Scene) reroute(c *Connection) {
	from := s.symbols[c.From.Component]
	to := s.symbols[c.To.Component]
	c.FromPoint = Snap(from.TerminalPoint(c.From.Terminal), s.grid)
	c.ToPoint = Snap(to.TerminalPoint(c.To.Terminal), s.grid)
	c.Segments = s.router.Route(c.FromPoint, c.ToPoint)
}
