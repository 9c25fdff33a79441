// Package editor is the interaction layer of the schematic editor. It owns
// the circuit registry and the scene, keeps them in step, and interprets
// pointer, key and action events according to the current mode.
//
// An Editor is not safe for concurrent use. All events must be dispatched
// from the goroutine that owns it.
package editor

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/Cathedral/internal/logging"
	"github.com/OpenTraceLab/Cathedral/pkg/circuit"
	"github.com/OpenTraceLab/Cathedral/pkg/netlist"
	"github.com/OpenTraceLab/Cathedral/pkg/schematic"
)

const (
	// PlacementStep is the X advance between default placements.
	PlacementStep = 50.0
	// WireHitTolerance is how close a delete click must be to a segment.
	WireHitTolerance = 4.0
)

// Default component values.
const (
	DefaultResistance  = 1000.0
	DefaultCapacitance = 0.01
)

// ErrNoEndpoint is returned when a wire is finished away from a component.
var ErrNoEndpoint = errors.New("editor: must connect two components")

// State is the interaction mode.
type State int

const (
	StateNormal State = iota
	StateWireDrawing
	StateDelete
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "Normal"
	case StateWireDrawing:
		return "WireDrawing"
	case StateDelete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// ChangeKind identifies what a Change reports.
type ChangeKind int

const (
	ChangeComponentAdded ChangeKind = iota
	ChangeComponentRemoved
	ChangeComponentMoved
	ChangeWireAdded
	ChangeWireRemoved
	ChangeModeChanged
	ChangeSelection
	ChangeListing
	ChangeExit
)

// Change is delivered to observers after every mutation.
type Change struct {
	Kind        ChangeKind
	ComponentID string
	WireID      int
	State       State
	Listing     *Listing
}

// Editor ties the registry, scene and mode machine together.
type Editor struct {
	circuit *circuit.Circuit
	scene   *schematic.Scene
	log     *logging.Logger

	wireMode   bool
	deleteMode bool

	pending   *schematic.TerminalRef
	pendingAt schematic.Point

	selected   string
	dragging   bool
	dragMoved  bool
	dragOffset schematic.Point

	cursor schematic.Point
	nextX  float64

	observers []func(Change)
}

// New returns an empty editor in Normal mode. A nil logger discards output.
func New(log *logging.Logger) *Editor {
	if log == nil {
		log = logging.Discard()
	}
	return &Editor{
		circuit: circuit.New(),
		scene:   schematic.NewScene(),
		log:     log,
	}
}

// Circuit returns the component registry. Callers must not mutate it.
func (e *Editor) Circuit() *circuit.Circuit { return e.circuit }

// Scene returns the scene. Callers must not mutate it.
func (e *Editor) Scene() *schematic.Scene { return e.scene }

// Logger returns the editor's logger.
func (e *Editor) Logger() *logging.Logger { return e.log }

// Subscribe registers fn to receive every Change.
func (e *Editor) Subscribe(fn func(Change)) {
	e.observers = append(e.observers, fn)
}

func (e *Editor) notify(c Change) {
	for _, fn := range e.observers {
		fn(c)
	}
}

// State returns the current interaction mode.
func (e *Editor) State() State {
	switch {
	case e.deleteMode:
		return StateDelete
	case e.wireMode && e.pending != nil:
		return StateWireDrawing
	default:
		return StateNormal
	}
}

// WireMode reports whether wire mode is on.
func (e *Editor) WireMode() bool { return e.wireMode }

// DeleteMode reports whether delete mode is on.
func (e *Editor) DeleteMode() bool { return e.deleteMode }

// Selected returns the selected component id, if any.
func (e *Editor) Selected() (string, bool) {
	return e.selected, e.selected != ""
}

// PendingWire returns the first endpoint of an in-flight wire and the
// snapped position it will start from.
func (e *Editor) PendingWire() (schematic.TerminalRef, schematic.Point, bool) {
	if e.pending == nil {
		return schematic.TerminalRef{}, schematic.Point{}, false
	}
	sym, ok := e.scene.Symbol(e.pending.Component)
	if !ok {
		return schematic.TerminalRef{}, schematic.Point{}, false
	}
	p := schematic.Snap(sym.TerminalPoint(e.pending.Terminal), e.scene.Grid())
	return *e.pending, p, true
}

// Cursor returns the last pointer position in world coordinates.
func (e *Editor) Cursor() schematic.Point { return e.cursor }

// NextPlacement returns where the next default placement will go.
func (e *Editor) NextPlacement() schematic.Point {
	return schematic.Pt(e.nextX, 0)
}

// AddComponent registers a component and places its symbol. With a nil
// position the symbol goes to the next default slot.
func (e *Editor) AddComponent(kind circuit.Kind, value float64, node1, node2 int, at *schematic.Point) (circuit.Component, error) {
	pos := e.NextPlacement()
	if at != nil {
		pos = *at
	}

	comp := e.circuit.AddComponent(kind, value, node1, node2)
	if _, err := e.scene.Place(comp.ID, kind, pos); err != nil {
		if rbErr := e.circuit.RemoveComponent(comp.ID); rbErr != nil {
			err = errors.Join(err, fmt.Errorf("editor: roll back %s: %w", comp.ID, rbErr))
		}
		e.log.Errorf("Failed to place %s: %v", comp.ID, err)
		return circuit.Component{}, err
	}
	if at == nil {
		e.nextX += PlacementStep
	}

	e.log.Infof("Added %s (%s) between nodes %d and %d.",
		kind, circuit.FormatValue(kind, value), node1, node2)
	e.log.Debugf("Placed %s at %v", comp.ID, pos)
	e.notify(Change{Kind: ChangeComponentAdded, ComponentID: comp.ID})
	return comp, nil
}

// AddResistor adds a 1 kΩ resistor between nodes 1 and 2.
func (e *Editor) AddResistor() (circuit.Component, error) {
	return e.AddComponent(circuit.KindResistor, DefaultResistance, 1, 2, nil)
}

// AddCapacitor adds a 0.01 F capacitor between nodes 2 and 3.
func (e *Editor) AddCapacitor() (circuit.Component, error) {
	return e.AddComponent(circuit.KindCapacitor, DefaultCapacitance, 2, 3, nil)
}

// RemoveComponent deletes a component from the registry and the scene
// together with every wire touching it. A missing id is logged and
// reported with circuit.ErrComponentNotFound.
func (e *Editor) RemoveComponent(id string) error {
	if err := e.circuit.RemoveComponent(id); err != nil {
		e.log.Warnf("Component not found: %s", id)
		return err
	}

	removed, err := e.scene.Remove(id)
	if err != nil {
		// The registry and scene are always updated together.
		return fmt.Errorf("editor: remove %s: %w", id, err)
	}

	if e.pending != nil && e.pending.Component == id {
		e.pending = nil
		e.log.Infof("Wire cancelled")
		e.notify(Change{Kind: ChangeModeChanged, State: e.State()})
	}
	if e.selected == id {
		e.selected = ""
		e.dragging = false
	}

	for _, c := range removed {
		e.log.Debugf("Deleted wire W%d", c.ID)
		e.notify(Change{Kind: ChangeWireRemoved, WireID: c.ID})
	}
	e.log.Infof("Deleted component: %s", id)
	e.notify(Change{Kind: ChangeComponentRemoved, ComponentID: id})
	return nil
}

// MoveComponent moves a symbol and re-routes its wires.
func (e *Editor) MoveComponent(id string, pos schematic.Point) error {
	updated, err := e.scene.Move(id, pos)
	if err != nil {
		e.log.Warnf("Cannot move %s: not on the schematic", id)
		return err
	}
	for _, c := range updated {
		e.log.Debugf("Updated wire between %v and %v", c.FromPoint, c.ToPoint)
	}
	e.notify(Change{Kind: ChangeComponentMoved, ComponentID: id})
	return nil
}

// Connect adds a wire between two terminals.
func (e *Editor) Connect(from, to schematic.TerminalRef) (schematic.Connection, error) {
	c, err := e.scene.Connect(from, to)
	if err != nil {
		e.log.Errorf("Must connect two components.")
		return schematic.Connection{}, fmt.Errorf("%w: %w", ErrNoEndpoint, err)
	}
	e.log.Infof("Wire completed between %v and %v", c.FromPoint, c.ToPoint)
	e.log.Debugf("Wire segments created: %d", len(c.Segments))
	e.notify(Change{Kind: ChangeWireAdded, WireID: c.ID})
	return c, nil
}

// RemoveWire deletes a wire and all its segments.
func (e *Editor) RemoveWire(id int) error {
	if _, err := e.scene.RemoveConnection(id); err != nil {
		e.log.Warnf("Wire not found: W%d", id)
		return err
	}
	e.log.Infof("Deleted wire")
	e.notify(Change{Kind: ChangeWireRemoved, WireID: id})
	return nil
}

// SetWireMode turns wire mode on or off. Turning it on forces delete mode
// off; turning it off cancels any in-flight wire.
func (e *Editor) SetWireMode(on bool) {
	if e.wireMode == on {
		return
	}
	if on {
		if e.deleteMode {
			e.SetDeleteMode(false)
		}
		e.wireMode = true
		e.dragging = false
		e.log.Infof("Wire Mode ON")
	} else {
		e.CancelWire()
		e.wireMode = false
		e.log.Infof("Wire Mode OFF")
	}
	e.notify(Change{Kind: ChangeModeChanged, State: e.State()})
}

// SetDeleteMode turns delete mode on or off. Turning it on forces wire
// mode off.
func (e *Editor) SetDeleteMode(on bool) {
	if e.deleteMode == on {
		return
	}
	if on {
		if e.wireMode {
			e.SetWireMode(false)
		}
		e.deleteMode = true
		e.dragging = false
		e.log.Infof("Delete Mode ON")
	} else {
		e.deleteMode = false
		e.log.Infof("Delete Mode OFF")
	}
	e.notify(Change{Kind: ChangeModeChanged, State: e.State()})
}

// CancelWire drops an in-flight wire. It reports whether one existed.
func (e *Editor) CancelWire() bool {
	if e.pending == nil {
		return false
	}
	e.pending = nil
	e.log.Infof("Wire cancelled")
	e.notify(Change{Kind: ChangeModeChanged, State: e.State()})
	return true
}

// Netlist derives the nets of the current drawing.
func (e *Editor) Netlist() *netlist.Netlist {
	return netlist.Build(e.scene.Symbols(), e.scene.Connections())
}

// List returns a snapshot of components, symbols and nets.
func (e *Editor) List() Listing {
	return Listing{
		Components: e.circuit.ListComponents(),
		Symbols:    e.scene.Symbols(),
		Nets:       e.Netlist().Nets,
	}
}

// ListComponents logs the listing and hands it to observers.
func (e *Editor) ListComponents() Listing {
	l := e.List()
	e.log.Infof("Listing all circuit components:")
	for _, line := range l.Lines() {
		e.log.Infof("%s", line)
	}
	e.notify(Change{Kind: ChangeListing, Listing: &l})
	return l
}
