package console

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// CommandLexer tokenizes one console line. Keywords are case-insensitive
// and must appear before Ident so they win the match.
var CommandLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},

	// Commands
	{Name: "KwAdd", Pattern: `(?i)\badd\b`},
	{Name: "KwRemove", Pattern: `(?i)\b(remove|rm)\b`},
	{Name: "KwMove", Pattern: `(?i)\bmove\b`},
	{Name: "KwConnect", Pattern: `(?i)\bconnect\b`},
	{Name: "KwDisconnect", Pattern: `(?i)\bdisconnect\b`},
	{Name: "KwWire", Pattern: `(?i)\bwire\b`},
	{Name: "KwDelete", Pattern: `(?i)\bdelete\b`},
	{Name: "KwPress", Pattern: `(?i)\bpress\b`},
	{Name: "KwDrag", Pattern: `(?i)\bdrag\b`},
	{Name: "KwRelease", Pattern: `(?i)\brelease\b`},
	{Name: "KwClick", Pattern: `(?i)\bclick\b`},
	{Name: "KwKey", Pattern: `(?i)\bkey\b`},
	{Name: "KwList", Pattern: `(?i)\b(list|ls)\b`},
	{Name: "KwNetlist", Pattern: `(?i)\bnetlist\b`},
	{Name: "KwExit", Pattern: `(?i)\b(exit|quit)\b`},

	// Arguments
	{Name: "KwResistor", Pattern: `(?i)\bresistor\b`},
	{Name: "KwCapacitor", Pattern: `(?i)\bcapacitor\b`},
	{Name: "KwNodes", Pattern: `(?i)\bnodes\b`},
	{Name: "KwAt", Pattern: `(?i)\bat\b`},
	{Name: "KwOn", Pattern: `(?i)\bon\b`},
	{Name: "KwOff", Pattern: `(?i)\boff\b`},
	{Name: "KwToggle", Pattern: `(?i)\btoggle\b`},
	{Name: "KwJSON", Pattern: `(?i)\bjson\b`},

	// Numbers may carry an SI suffix and unit: 10n, 4.7k, 1kΩ. The suffix
	// runs to the end of the word so ParseValue sees all of it.
	{Name: "Number", Pattern: `[-+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?(?:[a-zA-ZΩ][a-zA-Z0-9Ω]*)?`},

	// Terminal reference, e.g. Resistor0.right
	{Name: "Ref", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*\.[a-zA-Z]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
})
