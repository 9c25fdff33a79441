package ui

import (
	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"

	"github.com/OpenTraceLab/Cathedral/pkg/editor"
	"github.com/OpenTraceLab/Cathedral/pkg/schematic"
	"github.com/OpenTraceLab/Cathedral/pkg/schematic/renderer"
)

// canvasKeys are the shortcuts handled while the canvas has focus.
var canvasKeys = []key.Name{"W", "R", "C", "D", key.NameEscape, key.NameSpace, "+", "-"}

// canvas is the drawing area. It translates Gio input into editor events
// in world coordinates and draws the scene through the camera.
type canvas struct {
	ed     *editor.Editor
	camera *renderer.Camera
	colors *renderer.SchematicColors
	opts   renderer.RenderOptions

	panning bool
	panLast f32.Point

	// focused is set once the canvas has claimed keyboard focus.
	focused bool
}

func newCanvas(ed *editor.Editor, th renderer.Theme, showGrid bool) *canvas {
	opts := renderer.DefaultRenderOptions()
	opts.ShowGrid = showGrid
	return &canvas{
		ed:     ed,
		camera: renderer.NewCamera(800, 600),
		colors: renderer.GetSchematicColors(th),
		opts:   opts,
	}
}

func (c *canvas) Layout(gtx layout.Context) layout.Dimensions {
	c.camera.UpdateScreenSize(gtx.Constraints.Max.X, gtx.Constraints.Max.Y)

	c.handleKeys(gtx)
	c.handlePointer(gtx)

	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, c)
	if !c.focused {
		// Shortcuts work from the first frame, before any click.
		gtx.Execute(key.FocusCmd{Tag: c})
		c.focused = true
	}
	renderer.RenderScene(gtx, c.camera, c.ed.Scene(), c.overlay(), c.colors, c.opts)
	area.Pop()

	return layout.Dimensions{Size: gtx.Constraints.Max}
}

func (c *canvas) handleKeys(gtx layout.Context) {
	filters := make([]event.Filter, 0, len(canvasKeys))
	for _, name := range canvasKeys {
		filters = append(filters, key.Filter{Focus: c, Name: name})
	}
	for {
		ev, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		switch ke.Name {
		case key.NameSpace:
			if r, ok := c.ed.Scene().Bounds(); ok {
				c.camera.Fit(r)
			}
		case "+":
			c.camera.ZoomAt(float64(gtx.Constraints.Max.X)/2, float64(gtx.Constraints.Max.Y)/2, 1.2)
		case "-":
			c.camera.ZoomAt(float64(gtx.Constraints.Max.X)/2, float64(gtx.Constraints.Max.Y)/2, 0.8)
		default:
			_ = c.ed.Dispatch(editor.KeyEvent{Name: string(ke.Name)})
		}
		gtx.Execute(op.InvalidateCmd{})
	}
}

func (c *canvas) handlePointer(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  c,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Move | pointer.Scroll | pointer.Cancel,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}

		if pe.Kind == pointer.Scroll {
			if pe.Scroll.Y != 0 {
				zoomFactor := 1.0 - float64(pe.Scroll.Y)*0.002
				c.camera.ZoomAt(float64(pe.Position.X), float64(pe.Position.Y), zoomFactor)
				gtx.Execute(op.InvalidateCmd{})
			}
			continue
		}
		if c.handlePan(pe) {
			gtx.Execute(op.InvalidateCmd{})
			continue
		}

		kind, ok := editorPointerKind(pe.Kind, pe.Buttons)
		if !ok {
			continue
		}
		if kind == editor.PointerPress {
			gtx.Execute(key.FocusCmd{Tag: c})
		}
		world := c.camera.ScreenToWorld(float64(pe.Position.X), float64(pe.Position.Y))
		_ = c.ed.Dispatch(editor.PointerEvent{Kind: kind, Pos: world})
		gtx.Execute(op.InvalidateCmd{})
	}
}

// handlePan consumes secondary and tertiary button drags as camera pans.
func (c *canvas) handlePan(pe pointer.Event) bool {
	switch pe.Kind {
	case pointer.Press:
		if pe.Buttons.Contain(pointer.ButtonSecondary) || pe.Buttons.Contain(pointer.ButtonTertiary) {
			c.panning = true
			c.panLast = pe.Position
			return true
		}
	case pointer.Drag:
		if c.panning {
			d := pe.Position.Sub(c.panLast)
			c.panLast = pe.Position
			c.camera.Pan(float64(d.X), float64(d.Y))
			return true
		}
	case pointer.Release, pointer.Cancel:
		if c.panning {
			c.panning = false
			return true
		}
	}
	return false
}

func (c *canvas) overlay() renderer.Overlay {
	ov := renderer.Overlay{Cursor: c.ed.Cursor()}
	if id, ok := c.ed.Selected(); ok {
		ov.Selected = id
	}
	if _, from, ok := c.ed.PendingWire(); ok {
		ov.HasPending = true
		ov.PendingFrom = from
	}
	if c.ed.DeleteMode() {
		ov.HoverSymbol, ov.HoverWire = deleteTarget(c.ed.Scene(), c.ed.Cursor())
	}
	return ov
}

// editorPointerKind maps a Gio pointer kind to the editor's. Only primary
// button presses reach the editor.
func editorPointerKind(k pointer.Kind, buttons pointer.Buttons) (editor.PointerKind, bool) {
	switch k {
	case pointer.Press:
		if buttons != 0 && !buttons.Contain(pointer.ButtonPrimary) {
			return 0, false
		}
		return editor.PointerPress, true
	case pointer.Drag:
		return editor.PointerDrag, true
	case pointer.Release, pointer.Cancel:
		return editor.PointerRelease, true
	case pointer.Move:
		return editor.PointerMove, true
	}
	return 0, false
}

// deleteTarget returns what a delete click at p would remove, preferring
// symbols over wires.
func deleteTarget(scene *schematic.Scene, p schematic.Point) (string, int) {
	if sym, ok := scene.SymbolAt(p); ok {
		return sym.ID, 0
	}
	if conn, ok := scene.ConnectionAt(p, editor.WireHitTolerance); ok {
		return "", conn.ID
	}
	return "", 0
}
