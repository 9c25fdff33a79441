// Package circuit holds the component registry behind a schematic: every
// placed resistor or capacitor has one record here, keyed by a generated id.
package circuit

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrComponentNotFound is returned when an id is not in the registry.
var ErrComponentNotFound = errors.New("circuit: component not found")

// Kind identifies the type of a component.
type Kind int

const (
	KindResistor Kind = iota
	KindCapacitor
)

// String returns the display name, which is also the id prefix.
func (k Kind) String() string {
	switch k {
	case KindResistor:
		return "Resistor"
	case KindCapacitor:
		return "Capacitor"
	default:
		return "Unknown"
	}
}

// Unit returns the SI unit symbol for the component value.
func (k Kind) Unit() string {
	switch k {
	case KindResistor:
		return "Ω"
	case KindCapacitor:
		return "F"
	default:
		return ""
	}
}

// ParseKind maps a (case-insensitive) name or single-letter designator to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "resistor", "r":
		return KindResistor, nil
	case "capacitor", "c":
		return KindCapacitor, nil
	}
	return 0, fmt.Errorf("circuit: unknown component kind %q", s)
}

// Component is a single circuit element. Node indices are stored as given;
// the registry does not validate them.
type Component struct {
	ID    string
	Kind  Kind
	Value float64 // ohms or farads
	Node1 int
	Node2 int

	seq int
}

// Circuit maps generated ids to components. It is not safe for concurrent
// use; the owner serializes access.
type Circuit struct {
	components map[string]Component
	counter    int
}

// New returns an empty registry.
func New() *Circuit {
	return &Circuit{
		components: make(map[string]Component),
	}
}

// AddComponent registers a component and returns the stored record. The id
// is the kind name followed by a counter that is shared across kinds and
// never reused, even after removal.
func (c *Circuit) AddComponent(kind Kind, value float64, node1, node2 int) Component {
	seq := c.counter
	c.counter++

	comp := Component{
		ID:    fmt.Sprintf("%s%d", kind, seq),
		Kind:  kind,
		Value: value,
		Node1: node1,
		Node2: node2,
		seq:   seq,
	}
	c.components[comp.ID] = comp
	return comp
}

// RemoveComponent erases id from the registry. Removing an absent id returns
// an error wrapping ErrComponentNotFound and leaves the registry untouched.
func (c *Circuit) RemoveComponent(id string) error {
	if _, ok := c.components[id]; !ok {
		return fmt.Errorf("%w: %s", ErrComponentNotFound, id)
	}
	delete(c.components, id)
	return nil
}

// Component looks up a single record.
func (c *Circuit) Component(id string) (Component, bool) {
	comp, ok := c.components[id]
	return comp, ok
}

// ListComponents returns a snapshot of all components in creation order.
func (c *Circuit) ListComponents() []Component {
	out := make([]Component, 0, len(c.components))
	for _, comp := range c.components {
		out = append(out, comp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].seq < out[j].seq
	})
	return out
}

// Len reports the number of registered components.
func (c *Circuit) Len() int {
	return len(c.components)
}

// String renders the component the way the listing shows it.
func (comp Component) String() string {
	return fmt.Sprintf("%s: %s (%s) connected to nodes %d and %d",
		comp.ID, comp.Kind, FormatValue(comp.Kind, comp.Value), comp.Node1, comp.Node2)
}
