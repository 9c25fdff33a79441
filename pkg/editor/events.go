package editor

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/Cathedral/pkg/schematic"
)

// Event is an input record passed to Dispatch.
type Event interface {
	isEvent()
}

// PointerKind distinguishes pointer events.
type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerDrag
	PointerRelease
	// PointerMove is a hover without buttons. It only updates the cursor.
	PointerMove
)

func (k PointerKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerDrag:
		return "drag"
	case PointerRelease:
		return "release"
	case PointerMove:
		return "move"
	default:
		return "unknown"
	}
}

// PointerEvent is a pointer action at a world position.
type PointerEvent struct {
	Kind PointerKind
	Pos  schematic.Point
}

// KeyEvent is a key press. Name uses the GUI toolkit's key names, such as
// "W" or "⎋" for Escape; "Escape" and "Esc" are also accepted.
type KeyEvent struct {
	Name string
}

// Action is a menu or toolbar command.
type Action int

const (
	ActionAddResistor Action = iota
	ActionAddCapacitor
	ActionListComponents
	ActionToggleWireMode
	ActionToggleDeleteMode
	ActionExit
)

var actionNames = map[Action]string{
	ActionAddResistor:      "Add Resistor",
	ActionAddCapacitor:     "Add Capacitor",
	ActionListComponents:   "List Components",
	ActionToggleWireMode:   "Wire Mode",
	ActionToggleDeleteMode: "Delete Mode",
	ActionExit:             "Exit",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ActionEvent triggers an Action.
type ActionEvent struct {
	Action Action
}

func (PointerEvent) isEvent() {}
func (KeyEvent) isEvent()     {}
func (ActionEvent) isEvent()  {}

// Dispatch routes one event according to the current mode. Failures are
// logged before they are returned; none of them leave partial state.
func (e *Editor) Dispatch(ev Event) error {
	switch ev := ev.(type) {
	case PointerEvent:
		return e.handlePointer(ev)
	case KeyEvent:
		return e.handleKey(ev)
	case ActionEvent:
		return e.Do(ev.Action)
	default:
		return fmt.Errorf("editor: unsupported event %T", ev)
	}
}

// Do performs a menu or toolbar action.
func (e *Editor) Do(a Action) error {
	switch a {
	case ActionAddResistor:
		_, err := e.AddResistor()
		return err
	case ActionAddCapacitor:
		_, err := e.AddCapacitor()
		return err
	case ActionListComponents:
		e.ListComponents()
	case ActionToggleWireMode:
		e.SetWireMode(!e.wireMode)
	case ActionToggleDeleteMode:
		e.SetDeleteMode(!e.deleteMode)
	case ActionExit:
		e.log.Infof("Exiting")
		e.notify(Change{Kind: ChangeExit})
	default:
		return fmt.Errorf("editor: unknown action %v", a)
	}
	return nil
}

func (e *Editor) handleKey(ev KeyEvent) error {
	switch strings.ToUpper(ev.Name) {
	case "W":
		return e.Do(ActionToggleWireMode)
	case "R":
		return e.Do(ActionAddResistor)
	case "C":
		return e.Do(ActionAddCapacitor)
	case "D":
		return e.Do(ActionToggleDeleteMode)
	case "⎋", "ESCAPE", "ESC":
		e.CancelWire()
	default:
		e.log.Debugf("Unhandled key %q", ev.Name)
	}
	return nil
}

func (e *Editor) handlePointer(ev PointerEvent) error {
	e.cursor = ev.Pos
	switch ev.Kind {
	case PointerPress:
		switch {
		case e.deleteMode:
			return e.deleteAt(ev.Pos)
		case e.wireMode:
			return e.wireAt(ev.Pos)
		default:
			e.beginDrag(ev.Pos)
		}
	case PointerDrag:
		if e.dragging {
			return e.dragTo(ev.Pos)
		}
	case PointerRelease:
		e.endDrag()
	case PointerMove:
	}
	return nil
}

func (e *Editor) deleteAt(p schematic.Point) error {
	if sym, ok := e.scene.SymbolAt(p); ok {
		return e.RemoveComponent(sym.ID)
	}
	if c, ok := e.scene.ConnectionAt(p, WireHitTolerance); ok {
		return e.RemoveWire(c.ID)
	}
	e.log.Debugf("No deletable item found at %v", p)
	return nil
}

func (e *Editor) wireAt(p schematic.Point) error {
	sym, hit := e.scene.SymbolAt(p)

	if e.pending == nil {
		if !hit {
			e.log.Debugf("Wire must start on a component")
			return nil
		}
		ref := schematic.TerminalRef{Component: sym.ID, Terminal: sym.NearestTerminal(p)}
		e.pending = &ref
		e.pendingAt = p
		e.log.Infof("Wire started at %v", p)
		e.log.Debugf("Wire starts on %s", ref)
		e.notify(Change{Kind: ChangeModeChanged, State: e.State()})
		return nil
	}

	if !hit {
		if c, onWire := e.scene.ConnectionAt(p, WireHitTolerance); onWire {
			// Existing wires are not endpoints; keep drawing.
			e.log.Debugf("Ignoring press on wire W%d", c.ID)
			return nil
		}
	}

	from := *e.pending
	e.pending = nil
	if !hit {
		e.log.Errorf("Must connect two components.")
		e.notify(Change{Kind: ChangeModeChanged, State: e.State()})
		return ErrNoEndpoint
	}

	to := schematic.TerminalRef{Component: sym.ID, Terminal: sym.NearestTerminal(p)}
	_, err := e.Connect(from, to)
	e.notify(Change{Kind: ChangeModeChanged, State: e.State()})
	return err
}

func (e *Editor) beginDrag(p schematic.Point) {
	sym, ok := e.scene.SymbolAt(p)
	if !ok {
		if e.selected != "" {
			e.selected = ""
			e.notify(Change{Kind: ChangeSelection})
		}
		return
	}
	e.selected = sym.ID
	e.dragging = true
	e.dragMoved = false
	e.dragOffset = p.Sub(sym.Pos)
	e.notify(Change{Kind: ChangeSelection, ComponentID: sym.ID})
}

func (e *Editor) dragTo(p schematic.Point) error {
	if err := e.MoveComponent(e.selected, p.Sub(e.dragOffset)); err != nil {
		e.dragging = false
		return err
	}
	e.dragMoved = true
	return nil
}

func (e *Editor) endDrag() {
	if !e.dragging {
		return
	}
	e.dragging = false
	if e.dragMoved {
		if sym, ok := e.scene.Symbol(e.selected); ok {
			e.log.Debugf("Component moved: %s to %v", sym.ID, sym.Pos)
		}
	}
}
