// Package renderer draws a schematic scene with Gio.
package renderer

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/OpenTraceLab/Cathedral/pkg/circuit"
	"github.com/OpenTraceLab/Cathedral/pkg/schematic"
)

// GridExtent is the half-size of the square world area covered by the grid.
const GridExtent = 500.0

// Overlay carries the transient editor state drawn on top of the scene.
type Overlay struct {
	Selected string

	// HasPending is set while a wire is being drawn from PendingFrom.
	HasPending  bool
	PendingFrom schematic.Point
	Cursor      schematic.Point

	// Hover highlights what a delete click would remove.
	HoverSymbol string
	HoverWire   int
}

// RenderOptions controls what elements are rendered
type RenderOptions struct {
	ShowGrid      bool
	ShowTerminals bool
}

// DefaultRenderOptions returns default rendering options (all enabled)
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		ShowGrid:      true,
		ShowTerminals: true,
	}
}

// RenderScene renders the background, grid, wires, symbols, selection and
// pending-wire preview, back to front.
func RenderScene(gtx layout.Context, camera *Camera, scene *schematic.Scene, overlay Overlay, colors *SchematicColors, opts RenderOptions) {
	paint.FillShape(gtx.Ops, colors.Background, clip.Rect{Max: gtx.Constraints.Max}.Op())
	if scene == nil {
		return
	}

	if opts.ShowGrid {
		RenderGrid(gtx, camera, scene.Grid(), colors)
	}
	RenderWires(gtx, camera, scene.Connections(), overlay.HoverWire, colors)
	RenderSymbols(gtx, camera, scene.Symbols(), overlay, colors, opts)
	if overlay.HasPending {
		RenderPendingWire(gtx, camera, overlay.PendingFrom, schematic.Snap(overlay.Cursor, scene.Grid()), colors)
	}
}

// RenderGrid draws grid lines every grid units inside the world square
// [-GridExtent, GridExtent]. Lines closer than 4 pixels are skipped.
func RenderGrid(gtx layout.Context, camera *Camera, grid float64, colors *SchematicColors) {
	step := grid
	for step*camera.Zoom < 4 {
		step *= 2
	}

	var path clip.Path
	path.Begin(gtx.Ops)
	for v := -GridExtent; v <= GridExtent; v += step {
		moveLine(&path, camera, schematic.Pt(v, -GridExtent), schematic.Pt(v, GridExtent))
		moveLine(&path, camera, schematic.Pt(-GridExtent, v), schematic.Pt(GridExtent, v))
	}
	paint.FillShape(gtx.Ops, colors.Grid, clip.Stroke{
		Path:  path.End(),
		Width: 1,
	}.Op())
}

// RenderWires renders every connection's segments.
func RenderWires(gtx layout.Context, camera *Camera, conns []schematic.Connection, hover int, colors *SchematicColors) {
	width := strokeWidth(camera, 2)
	for _, c := range conns {
		if len(c.Segments) == 0 {
			continue
		}
		col := colors.Wire
		if c.ID == hover {
			col = colors.Highlight
		}

		var path clip.Path
		path.Begin(gtx.Ops)
		for _, seg := range c.Segments {
			moveLine(&path, camera, seg.From, seg.To)
		}
		paint.FillShape(gtx.Ops, col, clip.Stroke{
			Path:  path.End(),
			Width: width,
		}.Op())
	}
}

// RenderSymbols renders every symbol body, its leads and the selection box.
func RenderSymbols(gtx layout.Context, camera *Camera, symbols []schematic.Symbol, overlay Overlay, colors *SchematicColors, opts RenderOptions) {
	for _, sym := range symbols {
		renderSymbol(gtx, camera, sym, colors)
		if opts.ShowTerminals {
			renderTerminals(gtx, camera, sym, colors)
		}
		switch sym.ID {
		case overlay.HoverSymbol:
			strokeRect(gtx, camera, sym.Bounds(), strokeWidth(camera, 3), colors.Highlight)
		case overlay.Selected:
			strokeRect(gtx, camera, sym.Bounds(), strokeWidth(camera, 3), colors.Selection)
		}
	}
}

// RenderPendingWire previews the route a wire would take to the cursor.
func RenderPendingWire(gtx layout.Context, camera *Camera, from, to schematic.Point, colors *SchematicColors) {
	segs := schematic.ManhattanRouter{}.Route(from, to)
	if len(segs) == 0 {
		return
	}
	var path clip.Path
	path.Begin(gtx.Ops)
	for _, seg := range segs {
		moveLine(&path, camera, seg.From, seg.To)
	}
	paint.FillShape(gtx.Ops, colors.WirePreview, clip.Stroke{
		Path:  path.End(),
		Width: strokeWidth(camera, 2),
	}.Op())
}

func renderSymbol(gtx layout.Context, camera *Camera, sym schematic.Symbol, colors *SchematicColors) {
	fill, border := colors.SymbolColors(sym.Kind)
	width := strokeWidth(camera, 2)
	at := func(x, y float64) schematic.Point { return sym.Pos.Add(schematic.Pt(x, y)) }

	var path clip.Path
	path.Begin(gtx.Ops)
	// Leads out to both terminals
	moveLine(&path, camera, at(-15, 0), at(-10, 0))
	moveLine(&path, camera, at(10, 0), at(15, 0))

	switch sym.Kind {
	case circuit.KindResistor:
		body := schematic.Rect{Min: at(-10, -5), Max: at(10, 5)}
		fillRect(gtx, camera, body, fill)
		rectPath(&path, camera, body)
	case circuit.KindCapacitor:
		moveLine(&path, camera, at(-10, -5), at(-10, 5))
		moveLine(&path, camera, at(10, -5), at(10, 5))
	}

	paint.FillShape(gtx.Ops, border, clip.Stroke{
		Path:  path.End(),
		Width: width,
	}.Op())
}

func renderTerminals(gtx layout.Context, camera *Camera, sym schematic.Symbol, colors *SchematicColors) {
	const radius = 2.0
	for _, t := range schematic.Terminals {
		x, y := camera.WorldToScreen(sym.TerminalPoint(t))
		paint.FillShape(gtx.Ops, colors.Terminal,
			clip.Ellipse{
				Min: image.Pt(int(x-radius), int(y-radius)),
				Max: image.Pt(int(x+radius), int(y+radius)),
			}.Op(gtx.Ops))
	}
}

func fillRect(gtx layout.Context, camera *Camera, r schematic.Rect, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	rectPath(&path, camera, r)
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func strokeRect(gtx layout.Context, camera *Camera, r schematic.Rect, width float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	rectPath(&path, camera, r)
	paint.FillShape(gtx.Ops, col, clip.Stroke{
		Path:  path.End(),
		Width: width,
	}.Op())
}

func rectPath(path *clip.Path, camera *Camera, r schematic.Rect) {
	path.MoveTo(screenPt(camera, r.Min))
	path.LineTo(screenPt(camera, schematic.Pt(r.Max.X, r.Min.Y)))
	path.LineTo(screenPt(camera, r.Max))
	path.LineTo(screenPt(camera, schematic.Pt(r.Min.X, r.Max.Y)))
	path.Close()
}

func moveLine(path *clip.Path, camera *Camera, a, b schematic.Point) {
	path.MoveTo(screenPt(camera, a))
	path.LineTo(screenPt(camera, b))
}

func screenPt(camera *Camera, p schematic.Point) f32.Point {
	x, y := camera.WorldToScreen(p)
	return f32.Pt(float32(x), float32(y))
}

// strokeWidth scales a world-unit pen width by zoom, keeping it visible.
func strokeWidth(camera *Camera, world float64) float32 {
	w := world * camera.Zoom
	if w < 1 {
		w = 1
	}
	return float32(w)
}
