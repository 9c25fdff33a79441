package ui

import (
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/OpenTraceLab/Cathedral/pkg/editor"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
)

// menuEntry is one dropdown row. checked reports the toggle state for mode
// entries and is nil for plain commands.
type menuEntry struct {
	action  editor.Action
	checked func() bool
}

func (a *App) buildMenus() []*headerMenu {
	groups := []struct {
		title   string
		entries []menuEntry
	}{
		{"File", []menuEntry{{action: editor.ActionExit}}},
		{"Circuit", []menuEntry{
			{action: editor.ActionAddResistor},
			{action: editor.ActionAddCapacitor},
			{action: editor.ActionListComponents},
		}},
		{"Mode", []menuEntry{
			{action: editor.ActionToggleWireMode, checked: a.ed.WireMode},
			{action: editor.ActionToggleDeleteMode, checked: a.ed.DeleteMode},
		}},
	}

	menus := make([]*headerMenu, 0, len(groups))
	for _, g := range groups {
		menus = append(menus, &headerMenu{title: g.title, drop: a.buildDropdown(g.entries)})
	}
	return menus
}

func (a *App) buildDropdown(entries []menuEntry) *menu.DropdownMenu {
	opts := make([]menu.MenuOption, 0, len(entries))
	for _, entry := range entries {
		entry := entry
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				a.do(entry.action)
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				label := entry.action.String()
				if entry.checked != nil && entry.checked() {
					label = "✓ " + label
				}
				lbl := material.Body1(th.Theme, label)
				if entry.checked != nil && entry.checked() {
					lbl.Color = th.Palette.ContrastBg
				}
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(220)
	return drop
}

func buildToolbar() []toolButton {
	order := []editor.Action{
		editor.ActionAddResistor,
		editor.ActionAddCapacitor,
		editor.ActionListComponents,
		editor.ActionToggleWireMode,
		editor.ActionToggleDeleteMode,
		editor.ActionExit,
	}
	buttons := make([]toolButton, 0, len(order))
	for _, act := range order {
		buttons = append(buttons, toolButton{action: act, icon: loadIcon(toolbarIcons[act])})
	}
	return buttons
}

// do runs a menu or toolbar action. Errors are already logged by the editor.
func (a *App) do(act editor.Action) {
	_ = a.ed.Do(act)
	a.invalidate()
}

func (a *App) layoutHeader(gtx layout.Context) layout.Dimensions {
	children := make([]layout.FlexChild, 0, len(a.menus)+len(a.toolbar)+1)
	for _, m := range a.menus {
		m := m
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if m.btn.Clicked(gtx) {
				m.drop.ToggleVisibility(gtx)
			}
			btn := material.Button(a.gvTheme.Theme, &m.btn, m.title)
			btn.Background = a.gvTheme.Bg2
			btn.Color = a.opaqueFg()
			dims := layout.Inset{Right: unit.Dp(4)}.Layout(gtx, btn.Layout)
			m.drop.Layout(gtx, a.gvTheme)
			return dims
		}))
	}
	children = append(children, layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout))
	for i := range a.toolbar {
		tb := &a.toolbar[i]
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if tb.btn.Clicked(gtx) {
				a.do(tb.action)
			}
			if tb.icon == nil {
				return material.Button(a.gvTheme.Theme, &tb.btn, tb.action.String()).Layout(gtx)
			}
			ib := material.IconButton(a.gvTheme.Theme, &tb.btn, tb.icon, tb.action.String())
			ib.Size = unit.Dp(20)
			ib.Inset = layout.UniformInset(unit.Dp(6))
			if a.actionActive(tb.action) {
				ib.Background = a.gvTheme.Palette.ContrastBg
			} else {
				ib.Background = a.gvTheme.Bg2
				ib.Color = a.opaqueFg()
			}
			return layout.Inset{Right: unit.Dp(4)}.Layout(gtx, ib.Layout)
		}))
	}

	return layout.Inset{Left: unit.Dp(12), Right: unit.Dp(12), Top: unit.Dp(6), Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
	})
}

func (a *App) actionActive(act editor.Action) bool {
	switch act {
	case editor.ActionToggleWireMode:
		return a.ed.WireMode()
	case editor.ActionToggleDeleteMode:
		return a.ed.DeleteMode()
	}
	return false
}
