package console

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Command is one parsed console line.
type Command struct {
	Pos lexer.Position

	Add        *AddCmd        `  @@`
	Remove     *RemoveCmd     `| @@`
	Move       *MoveCmd       `| @@`
	Connect    *ConnectCmd    `| @@`
	Disconnect *DisconnectCmd `| @@`
	Mode       *ModeCmd       `| @@`
	Pointer    *PointerCmd    `| @@`
	Key        *KeyCmd        `| @@`
	Netlist    *NetlistCmd    `| @@`
	List       bool           `| @KwList`
	Exit       bool           `| @KwExit`
}

// AddCmd: add resistor 4.7k nodes 1 2 at 100 40
type AddCmd struct {
	Kind  string   `KwAdd @( KwResistor | KwCapacitor )`
	Value *string  `@Number?`
	Nodes []string `( KwNodes @Number @Number )?`
	At    []string `( KwAt @Number @Number )?`
}

// RemoveCmd: remove Resistor0
type RemoveCmd struct {
	ID string `KwRemove @Ident`
}

// MoveCmd: move Resistor0 100 40
type MoveCmd struct {
	ID string `KwMove @Ident`
	X  string `@Number`
	Y  string `@Number`
}

// ConnectCmd: connect Resistor0.right Capacitor1.left
type ConnectCmd struct {
	From string `KwConnect @Ref`
	To   string `@Ref`
}

// DisconnectCmd: disconnect W1
type DisconnectCmd struct {
	Wire string `KwDisconnect @( Ident | Number )`
}

// ModeCmd: wire on | delete toggle
type ModeCmd struct {
	Target string `@( KwWire | KwDelete )`
	State  string `@( KwOn | KwOff | KwToggle )?`
}

// PointerCmd: press 10 0
type PointerCmd struct {
	Kind string `@( KwPress | KwDrag | KwRelease | KwClick )`
	X    string `@Number`
	Y    string `@Number`
}

// KeyCmd: key W
type KeyCmd struct {
	Name string `KwKey @( Ident | Number )`
}

// NetlistCmd: netlist [json]
type NetlistCmd struct {
	JSON bool `KwNetlist @KwJSON?`
}

var commandParser = participle.MustBuild[Command](
	participle.Lexer(CommandLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(2),
)
