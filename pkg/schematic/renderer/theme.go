package renderer

import (
	"image/color"
	"strings"

	"github.com/OpenTraceLab/Cathedral/pkg/circuit"
)

// Theme represents a color scheme for schematic rendering
type Theme int

const (
	// ThemeDark is the default dark canvas
	ThemeDark Theme = iota
	// ThemeLight is a light background theme
	ThemeLight
)

// ParseTheme maps "dark"/"light" to a Theme. Anything else is dark.
func ParseTheme(s string) Theme {
	if strings.EqualFold(s, "light") {
		return ThemeLight
	}
	return ThemeDark
}

// String returns the theme name as a string
func (t Theme) String() string {
	switch t {
	case ThemeLight:
		return "Light"
	case ThemeDark:
		return "Dark"
	default:
		return "Unknown"
	}
}

// SchematicColors defines the color scheme for rendering schematic elements
type SchematicColors struct {
	// Background and grid
	Background color.NRGBA
	Grid       color.NRGBA

	// Wires
	Wire        color.NRGBA
	WirePreview color.NRGBA
	Terminal    color.NRGBA

	// Symbols, fill and border per kind
	ResistorFill    color.NRGBA
	ResistorBorder  color.NRGBA
	CapacitorFill   color.NRGBA
	CapacitorBorder color.NRGBA

	// Selection and highlight
	Selection color.NRGBA
	Highlight color.NRGBA
}

// SymbolColors returns the fill and border colors for kind.
func (c *SchematicColors) SymbolColors(kind circuit.Kind) (fill, border color.NRGBA) {
	switch kind {
	case circuit.KindResistor:
		return c.ResistorFill, c.ResistorBorder
	case circuit.KindCapacitor:
		return c.CapacitorFill, c.CapacitorBorder
	default:
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}, color.NRGBA{A: 255}
	}
}

// GetSchematicColors returns the color scheme for the given theme
func GetSchematicColors(theme Theme) *SchematicColors {
	switch theme {
	case ThemeLight:
		return getLightTheme()
	default:
		return getDarkTheme()
	}
}

func getDarkTheme() *SchematicColors {
	return &SchematicColors{
		Background: rgb(0x1E1E1E),
		Grid:       rgb(0x444444),

		Wire:        rgb(0x00FF00),
		WirePreview: color.NRGBA{R: 0, G: 255, B: 0, A: 128},
		Terminal:    rgb(0xCCCCCC),

		ResistorFill:    rgb(0xFFA500),
		ResistorBorder:  rgb(0xFF8C00),
		CapacitorFill:   rgb(0x00AFFF),
		CapacitorBorder: rgb(0x0088CC),

		Selection: rgb(0x00FFFF),
		Highlight: color.NRGBA{R: 255, G: 80, B: 80, A: 160},
	}
}

func getLightTheme() *SchematicColors {
	return &SchematicColors{
		Background: rgb(0xFFFFFF),
		Grid:       rgb(0xDCDCDC),

		Wire:        rgb(0x008400), // KiCad green
		WirePreview: color.NRGBA{R: 0, G: 132, B: 0, A: 128},
		Terminal:    rgb(0x333333),

		ResistorFill:    rgb(0xFFC866),
		ResistorBorder:  rgb(0xB36200),
		CapacitorFill:   rgb(0x99DDFF),
		CapacitorBorder: rgb(0x005C8A),

		Selection: rgb(0x0078D7),
		Highlight: color.NRGBA{R: 255, G: 0, B: 0, A: 128},
	}
}

func rgb(c uint32) color.NRGBA {
	return color.NRGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xFF}
}
