package schematic

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/Cathedral/pkg/circuit"
)

// Terminal selects one of a symbol's two connection points.
type Terminal int

const (
	TerminalLeft Terminal = iota
	TerminalRight
)

func (t Terminal) String() string {
	switch t {
	case TerminalLeft:
		return "left"
	case TerminalRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseTerminal maps "left"/"right" (any case) to a Terminal.
func ParseTerminal(s string) (Terminal, error) {
	switch strings.ToLower(s) {
	case "left", "l":
		return TerminalLeft, nil
	case "right", "r":
		return TerminalRight, nil
	}
	return 0, fmt.Errorf("schematic: unknown terminal %q", s)
}

// Symbol geometry relative to the symbol position. Both kinds share it.
var (
	terminalOffsets = [...]Point{
		TerminalLeft:  {X: -15, Y: 0},
		TerminalRight: {X: 15, Y: 0},
	}
	symbolBounds = Rect{Min: Point{X: -15, Y: -10}, Max: Point{X: 15, Y: 10}}
)

// Terminals lists terminals in lookup order; ties resolve to the first.
var Terminals = []Terminal{TerminalLeft, TerminalRight}

// TerminalOffset returns the offset of t from the symbol position.
func TerminalOffset(t Terminal) Point {
	return terminalOffsets[t]
}

// LocalBounds returns the symbol body rectangle relative to its position.
func LocalBounds() Rect {
	return symbolBounds
}

// Symbol is the placed, visual counterpart of a circuit component. It shares
// the component's id.
type Symbol struct {
	ID   string
	Kind circuit.Kind
	Pos  Point
}

// Bounds returns the symbol body in world coordinates.
func (s *Symbol) Bounds() Rect {
	return symbolBounds.Translate(s.Pos)
}

// Contains reports whether the world point p hits the symbol body.
func (s *Symbol) Contains(p Point) bool {
	return s.Bounds().Contains(p)
}

// TerminalPoint returns the unsnapped world position of terminal t.
func (s *Symbol) TerminalPoint(t Terminal) Point {
	return s.Pos.Add(terminalOffsets[t])
}

// NearestTerminal maps p into the symbol's local frame and returns the
// terminal closest to it. Ties resolve to the first terminal found.
func (s *Symbol) NearestTerminal(p Point) Terminal {
	local := p.Sub(s.Pos)
	best := Terminals[0]
	bestDist := local.Dist(terminalOffsets[best])
	for _, t := range Terminals[1:] {
		if d := local.Dist(terminalOffsets[t]); d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

// TerminalRef names one terminal of one symbol.
type TerminalRef struct {
	Component string
	Terminal  Terminal
}

func (r TerminalRef) String() string {
	return r.Component + "." + r.Terminal.String()
}

// ParseTerminalRef parses "Resistor0.right".
func ParseTerminalRef(s string) (TerminalRef, error) {
	i := strings.LastIndex(s, ".")
	if i <= 0 || i == len(s)-1 {
		return TerminalRef{}, fmt.Errorf("schematic: invalid terminal reference %q", s)
	}
	t, err := ParseTerminal(s[i+1:])
	if err != nil {
		return TerminalRef{}, err
	}
	return TerminalRef{Component: s[:i], Terminal: t}, nil
}
