// Package netlist derives electrical nets from the wires drawn on a
// schematic. Every wire joins two terminals; terminals reachable from one
// another through wires form a single net.
package netlist

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/OpenTraceLab/Cathedral/pkg/schematic"
)

// Net is a connected set of terminals.
type Net struct {
	ID        int                     `json:"id"`
	Terminals []schematic.TerminalRef `json:"-"`
}

func (n *Net) String() string {
	names := make([]string, len(n.Terminals))
	for i, t := range n.Terminals {
		names[i] = t.String()
	}
	return fmt.Sprintf("Net %d: %s", n.ID, strings.Join(names, ", "))
}

// MarshalJSON writes terminals in their "ID.side" form.
func (n *Net) MarshalJSON() ([]byte, error) {
	names := make([]string, len(n.Terminals))
	for i, t := range n.Terminals {
		names[i] = t.String()
	}
	return json.Marshal(struct {
		ID        int      `json:"id"`
		Terminals []string `json:"terminals"`
	}{n.ID, names})
}

// Netlist tracks connectivity between terminals with a union-find.
type Netlist struct {
	parent map[schematic.TerminalRef]schematic.TerminalRef
	rank   map[schematic.TerminalRef]int

	// Nets is populated by Finalize.
	Nets []*Net

	terminals []schematic.TerminalRef
}

// New creates a netlist in which every terminal is isolated.
func New(terminals []schematic.TerminalRef) *Netlist {
	nl := &Netlist{
		parent: make(map[schematic.TerminalRef]schematic.TerminalRef, len(terminals)),
		rank:   make(map[schematic.TerminalRef]int, len(terminals)),
	}
	for _, t := range terminals {
		nl.add(t)
	}
	return nl
}

func (nl *Netlist) add(t schematic.TerminalRef) {
	if _, ok := nl.parent[t]; ok {
		return
	}
	nl.parent[t] = t
	nl.rank[t] = 0
	nl.terminals = append(nl.terminals, t)
}

// Build returns a finalized netlist for the given symbols and wires.
func Build(symbols []schematic.Symbol, conns []schematic.Connection) *Netlist {
	terminals := make([]schematic.TerminalRef, 0, len(symbols)*len(schematic.Terminals))
	for _, s := range symbols {
		for _, t := range schematic.Terminals {
			terminals = append(terminals, schematic.TerminalRef{Component: s.ID, Terminal: t})
		}
	}

	nl := New(terminals)
	for _, c := range conns {
		nl.Connect(c.From, c.To)
	}
	nl.Finalize()
	return nl
}

// Connect merges the nets containing a and b. Unknown terminals are added.
func (nl *Netlist) Connect(a, b schematic.TerminalRef) {
	nl.add(a)
	nl.add(b)

	rootA := nl.Find(a)
	rootB := nl.Find(b)
	if rootA == rootB {
		return
	}

	// Union by rank
	switch {
	case nl.rank[rootA] < nl.rank[rootB]:
		nl.parent[rootA] = rootB
	case nl.rank[rootA] > nl.rank[rootB]:
		nl.parent[rootB] = rootA
	default:
		nl.parent[rootB] = rootA
		nl.rank[rootA]++
	}
}

// Find returns the representative terminal of t's net, compressing the
// path on the way.
func (nl *Netlist) Find(t schematic.TerminalRef) schematic.TerminalRef {
	if _, ok := nl.parent[t]; !ok {
		return t
	}

	root := t
	for nl.parent[root] != root {
		root = nl.parent[root]
	}

	cur := t
	for cur != root {
		next := nl.parent[cur]
		nl.parent[cur] = root
		cur = next
	}
	return root
}

// Connected reports whether a and b are in the same net.
func (nl *Netlist) Connected(a, b schematic.TerminalRef) bool {
	return nl.Find(a) == nl.Find(b)
}

// Finalize groups terminals into nets. Only nets with two or more
// terminals are kept. Terminals within a net and the nets themselves are
// ordered by component id then terminal, and nets are numbered from 1.
func (nl *Netlist) Finalize() {
	groups := make(map[schematic.TerminalRef][]schematic.TerminalRef)
	for _, t := range nl.terminals {
		root := nl.Find(t)
		groups[root] = append(groups[root], t)
	}

	nl.Nets = make([]*Net, 0, len(groups))
	for _, terms := range groups {
		if len(terms) < 2 {
			continue
		}
		sort.Slice(terms, func(i, j int) bool {
			return lessTerminal(terms[i], terms[j])
		})
		nl.Nets = append(nl.Nets, &Net{Terminals: terms})
	}

	sort.Slice(nl.Nets, func(i, j int) bool {
		return lessTerminal(nl.Nets[i].Terminals[0], nl.Nets[j].Terminals[0])
	})
	for i, n := range nl.Nets {
		n.ID = i + 1
	}
}

// NetCount returns the number of nets. Only valid after Finalize.
func (nl *Netlist) NetCount() int {
	return len(nl.Nets)
}

// NetOf returns the finalized net containing t.
func (nl *Netlist) NetOf(t schematic.TerminalRef) (*Net, bool) {
	root := nl.Find(t)
	for _, n := range nl.Nets {
		if nl.Find(n.Terminals[0]) == root {
			return n, true
		}
	}
	return nil, false
}

// Lines renders one line per net.
func (nl *Netlist) Lines() []string {
	out := make([]string, len(nl.Nets))
	for i, n := range nl.Nets {
		out[i] = n.String()
	}
	return out
}

// ExportJSON encodes the finalized nets.
func (nl *Netlist) ExportJSON() ([]byte, error) {
	if nl.Nets == nil {
		return nil, fmt.Errorf("netlist: not finalized")
	}

	output := struct {
		NetCount int    `json:"net_count"`
		Nets     []*Net `json:"nets"`
	}{
		NetCount: nl.NetCount(),
		Nets:     nl.Nets,
	}
	return json.MarshalIndent(output, "", "  ")
}

// lessTerminal orders terminals by component id using natural ordering of
// trailing digits, then by terminal.
func lessTerminal(a, b schematic.TerminalRef) bool {
	if a.Component != b.Component {
		return lessID(a.Component, b.Component)
	}
	return a.Terminal < b.Terminal
}

func lessID(a, b string) bool {
	pa, na := splitID(a)
	pb, nb := splitID(b)
	if na >= 0 && nb >= 0 && na != nb {
		return na < nb
	}
	if pa != pb {
		return pa < pb
	}
	return a < b
}

// splitID splits "Resistor12" into ("Resistor", 12). Ids without a numeric
// suffix return -1.
func splitID(id string) (string, int) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) {
		return id, -1
	}
	n := 0
	for _, c := range id[i:] {
		n = n*10 + int(c-'0')
		if n > 1<<30 {
			return id, -1
		}
	}
	return id[:i], n
}
