package editor

import (
	"fmt"

	"github.com/OpenTraceLab/Cathedral/pkg/circuit"
	"github.com/OpenTraceLab/Cathedral/pkg/netlist"
	"github.com/OpenTraceLab/Cathedral/pkg/schematic"
)

// Listing is a read-only snapshot of the drawing.
type Listing struct {
	Components []circuit.Component
	Symbols    []schematic.Symbol
	Nets       []*netlist.Net
}

// Lines renders the listing the way the console shows it.
func (l Listing) Lines() []string {
	lines := []string{"Circuit Components:"}
	for _, c := range l.Components {
		lines = append(lines, "- "+c.String())
	}

	lines = append(lines, "Visual Components:")
	for _, s := range l.Symbols {
		lines = append(lines, fmt.Sprintf("%s at (%g, %g)", s.ID, s.Pos.X, s.Pos.Y))
	}

	if len(l.Nets) > 0 {
		lines = append(lines, "Nets:")
		for _, n := range l.Nets {
			lines = append(lines, n.String())
		}
	}
	return lines
}
