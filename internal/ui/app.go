// Package ui is the Gio front end of the schematic editor.
package ui

import (
	"errors"
	"image"
	"image/color"
	"strings"

	"gioui.org/app"
	gfont "gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/Cathedral/internal/config"
	"github.com/OpenTraceLab/Cathedral/internal/logging"
	"github.com/OpenTraceLab/Cathedral/pkg/console"
	"github.com/OpenTraceLab/Cathedral/pkg/editor"
	"github.com/OpenTraceLab/Cathedral/pkg/schematic/renderer"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
)

// App is the main editor window.
type App struct {
	window *app.Window
	ops    op.Ops

	cfg *config.AppConfig
	log *logging.Logger
	ed  *editor.Editor
	sh  *console.Interpreter

	gvTheme  *theme.Theme
	darkMode bool

	canvas *canvas

	menus    []*headerMenu
	toolbar  []toolButton
	closing  bool
	quitOnce bool

	logs          *logBuffer
	logSelectable widget.Selectable
	logList       widget.List
	logPaneHeight float32
	monoShaper    *text.Shaper

	cmdInput widget.Editor
}

type headerMenu struct {
	title string
	btn   widget.Clickable
	drop  *menu.DropdownMenu
}

type toolButton struct {
	action editor.Action
	icon   *widget.Icon
	btn    widget.Clickable
}

// New creates the editor window. A nil window is allocated, a nil config
// uses the defaults and a nil logger discards output.
func New(w *app.Window, cfg *config.AppConfig, log *logging.Logger) *App {
	if w == nil {
		w = new(app.Window)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logging.Discard()
	}
	w.Option(app.Title("Cathedral"), app.Size(unit.Dp(float32(cfg.WindowWidth)), unit.Dp(float32(cfg.WindowHeight))))

	ed := editor.New(log)
	a := &App{
		window:   w,
		cfg:      cfg,
		log:      log,
		ed:       ed,
		gvTheme:  theme.NewTheme("", nil, true),
		darkMode: renderer.ParseTheme(cfg.Theme) == renderer.ThemeDark,
		logs:     newLogBuffer(maxLogLines),
	}
	a.sh = console.New(ed, &consoleWriter{log: log})
	a.canvas = newCanvas(ed, renderer.ParseTheme(cfg.Theme), cfg.ShowGrid)

	if monoFaces := filterMonoFaces(); len(monoFaces) > 0 {
		a.monoShaper = text.NewShaper(text.WithCollection(monoFaces), text.NoSystemFonts())
	}
	a.logSelectable.WrapPolicy = text.WrapGraphemes
	a.logList.Axis = layout.Vertical
	a.logList.ScrollToEnd = true
	a.cmdInput.SingleLine = true
	a.cmdInput.Submit = true

	a.menus = a.buildMenus()
	a.toolbar = buildToolbar()
	a.applyPalette()

	log.Subscribe(func(e logging.Entry) {
		a.logs.Append(e.String())
		a.logSelectable.SetText(a.logs.Text())
		a.invalidate()
	})
	ed.Subscribe(a.onChange)

	log.Infof("Schematic editor ready")
	return a
}

// Editor returns the editor driven by the window.
func (a *App) Editor() *editor.Editor { return a.ed }

// Run blocks processing window events until the window closes.
func (a *App) Run() error {
	for {
		e := a.window.Event()
		switch ev := e.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			a.layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

func (a *App) onChange(c editor.Change) {
	if c.Kind == editor.ChangeExit {
		a.closing = true
	}
	a.invalidate()
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	if a.closing && !a.quitOnce {
		a.quitOnce = true
		a.window.Perform(system.ActionClose)
	}

	paint.FillShape(gtx.Ops, a.gvTheme.Palette.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(a.layoutHeader),
		layout.Flexed(1, a.layoutBody),
		layout.Rigid(a.layoutStatusBar),
	)
}

func (a *App) layoutBody(gtx layout.Context) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, a.canvas.Layout),
		layout.Rigid(a.layoutLogPane),
		layout.Rigid(a.layoutCommandLine),
	)
}

func (a *App) layoutLogPane(gtx layout.Context) layout.Dimensions {
	if a.logPaneHeight == 0 {
		a.logPaneHeight = float32(gtx.Dp(unit.Dp(160)))
	}
	h := int(a.logPaneHeight)
	gtx.Constraints.Min.Y = h
	gtx.Constraints.Max.Y = h

	size := image.Pt(gtx.Constraints.Max.X, h)
	paint.FillShape(gtx.Ops, a.gvTheme.Bg2, clip.Rect{Max: size}.Op())

	return layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(6), Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min = gtx.Constraints.Max
		return a.logList.Layout(gtx, 1, func(gtx layout.Context, _ int) layout.Dimensions {
			label := material.Body2(a.gvTheme.Theme, a.logs.Text())
			label.State = &a.logSelectable
			label.WrapPolicy = text.WrapGraphemes
			label.Alignment = text.Start
			label.Font.Typeface = gfont.Typeface("Go Mono")
			if a.monoShaper != nil {
				label.Shaper = a.monoShaper
			}
			label.Color = a.opaqueFg()
			label.SelectionColor = a.selectionColor()
			return label.Layout(gtx)
		})
	})
}

func (a *App) layoutCommandLine(gtx layout.Context) layout.Dimensions {
	for {
		ev, ok := a.cmdInput.Update(gtx)
		if !ok {
			break
		}
		if submit, ok := ev.(widget.SubmitEvent); ok {
			a.runCommand(submit.Text)
			a.cmdInput.SetText("")
		}
	}

	return layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(4), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body2(a.gvTheme.Theme, "> ")
				lbl.Font.Typeface = gfont.Typeface("Go Mono")
				return lbl.Layout(gtx)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				ed := material.Editor(a.gvTheme.Theme, &a.cmdInput, "add resistor 4.7k nodes 1 2")
				ed.Font.Typeface = gfont.Typeface("Go Mono")
				return ed.Layout(gtx)
			}),
		)
	})
}

func (a *App) runCommand(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	a.log.Debugf("> %s", line)
	err := a.sh.Exec(line)
	var syn *console.SyntaxError
	switch {
	case errors.As(err, &syn):
		a.log.Errorf("Syntax error at column %d: %s", syn.Column, syn.Msg)
	case err != nil:
		// already reported by the editor
		a.log.Debugf("%v", err)
	}
}

func (a *App) layoutStatusBar(gtx layout.Context) layout.Dimensions {
	inset := layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(8), Bottom: unit.Dp(8)}
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(material.Body2(a.gvTheme.Theme, modeText(a.ed)).Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions { return layout.Dimensions{} }),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X = gtx.Dp(unit.Dp(150))
				return material.Body2(a.gvTheme.Theme, countsText(a.ed)).Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
			layout.Rigid(material.Body2(a.gvTheme.Theme, cursorText(a.ed.Cursor())).Layout),
		)
	})
}

func (a *App) applyPalette() {
	if a.darkMode {
		a.gvTheme.WithPalette(theme.Palette{
			Bg:         color.NRGBA{R: 18, G: 20, B: 26, A: 255},
			Fg:         color.NRGBA{R: 233, G: 236, B: 245, A: 255},
			ContrastBg: color.NRGBA{R: 120, G: 150, B: 255, A: 255},
			ContrastFg: color.NRGBA{R: 12, G: 16, B: 24, A: 255},
			Bg2:        color.NRGBA{R: 34, G: 40, B: 50, A: 255},
		})
	} else {
		a.gvTheme.WithPalette(theme.Palette{
			Bg:         color.NRGBA{R: 245, G: 247, B: 253, A: 255},
			Fg:         color.NRGBA{R: 34, G: 37, B: 49, A: 255},
			ContrastBg: color.NRGBA{R: 80, G: 120, B: 255, A: 255},
			ContrastFg: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
			Bg2:        color.NRGBA{R: 225, G: 230, B: 244, A: 255},
		})
	}
}

func (a *App) invalidate() {
	if a.window != nil {
		a.window.Invalidate()
	}
}

func (a *App) opaqueFg() color.NRGBA {
	fg := a.gvTheme.Palette.Fg
	fg.A = 0xFF
	return fg
}

func (a *App) selectionColor() color.NRGBA {
	bg := a.gvTheme.Palette.ContrastBg
	return color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 0x88}
}

func filterMonoFaces() []gfont.FontFace {
	var mono []gfont.FontFace
	for _, face := range gofont.Collection() {
		if face.Font.Typeface == gfont.Typeface("Go Mono") {
			mono = append(mono, face)
		}
	}
	return mono
}

func loadIcon(data []byte) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		return nil
	}
	return icon
}

var toolbarIcons = map[editor.Action][]byte{
	editor.ActionAddResistor:      icons.ContentAdd,
	editor.ActionAddCapacitor:     icons.ContentAddCircleOutline,
	editor.ActionListComponents:   icons.ActionList,
	editor.ActionToggleWireMode:   icons.ActionTimeline,
	editor.ActionToggleDeleteMode: icons.ActionDelete,
	editor.ActionExit:             icons.ActionExitToApp,
}
