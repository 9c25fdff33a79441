// Package console implements the line-oriented command language that
// drives an editor from the GUI console pane or from a script.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/OpenTraceLab/Cathedral/pkg/circuit"
	"github.com/OpenTraceLab/Cathedral/pkg/editor"
	"github.com/OpenTraceLab/Cathedral/pkg/schematic"
)

// SyntaxError reports a line that does not parse.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, e.Msg)
}

// Interpreter executes commands against an editor.
type Interpreter struct {
	ed     *editor.Editor
	out    io.Writer
	line   int
	exited bool
}

// New returns an interpreter for ed. Command output such as JSON
// netlists is written to out; everything else goes through the editor's
// logger.
func New(ed *editor.Editor, out io.Writer) *Interpreter {
	if out == nil {
		out = io.Discard
	}
	return &Interpreter{ed: ed, out: out}
}

// Exited reports whether an exit command has run.
func (in *Interpreter) Exited() bool { return in.exited }

// Exec parses and runs one line. Blank and comment-only lines are
// accepted and do nothing.
func (in *Interpreter) Exec(line string) error {
	in.line++

	text := line
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	cmd, err := commandParser.ParseString("", line)
	if err != nil {
		return fmt.Errorf("console: %w", in.syntaxError(err))
	}
	return in.run(cmd)
}

// Run executes a script line by line until EOF or an exit command. A
// syntax error stops the script. Other failures are logged and the script
// continues.
func (in *Interpreter) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		err := in.Exec(sc.Text())
		var syn *SyntaxError
		switch {
		case errors.As(err, &syn):
			return err
		case err != nil:
			in.ed.Logger().Debugf("line %d: %v", in.line, err)
		}
		if in.exited {
			return nil
		}
	}
	return sc.Err()
}

func (in *Interpreter) syntaxError(err error) *SyntaxError {
	var perr participle.Error
	if errors.As(err, &perr) {
		return &SyntaxError{Line: in.line, Column: perr.Position().Column, Msg: perr.Message()}
	}
	return &SyntaxError{Line: in.line, Msg: err.Error()}
}

func (in *Interpreter) run(cmd *Command) error {
	switch {
	case cmd.Add != nil:
		return in.add(cmd.Add)
	case cmd.Remove != nil:
		return in.ed.RemoveComponent(cmd.Remove.ID)
	case cmd.Move != nil:
		p, err := point(cmd.Move.X, cmd.Move.Y)
		if err != nil {
			return in.argError(err)
		}
		return in.ed.MoveComponent(cmd.Move.ID, p)
	case cmd.Connect != nil:
		return in.connect(cmd.Connect)
	case cmd.Disconnect != nil:
		id, err := wireID(cmd.Disconnect.Wire)
		if err != nil {
			return in.argError(err)
		}
		return in.ed.RemoveWire(id)
	case cmd.Mode != nil:
		return in.mode(cmd.Mode)
	case cmd.Pointer != nil:
		return in.pointer(cmd.Pointer)
	case cmd.Key != nil:
		return in.ed.Dispatch(editor.KeyEvent{Name: cmd.Key.Name})
	case cmd.Netlist != nil:
		return in.netlist(cmd.Netlist)
	case cmd.List:
		return in.ed.Dispatch(editor.ActionEvent{Action: editor.ActionListComponents})
	case cmd.Exit:
		in.exited = true
		return in.ed.Dispatch(editor.ActionEvent{Action: editor.ActionExit})
	}
	return nil
}

// argError logs a well-formed command with unusable arguments.
func (in *Interpreter) argError(err error) error {
	in.ed.Logger().Errorf("%v", err)
	return err
}

func (in *Interpreter) add(cmd *AddCmd) error {
	kind, err := circuit.ParseKind(cmd.Kind)
	if err != nil {
		return in.argError(err)
	}

	value, n1, n2 := editor.DefaultResistance, 1, 2
	if kind == circuit.KindCapacitor {
		value, n1, n2 = editor.DefaultCapacitance, 2, 3
	}
	if cmd.Value != nil {
		if value, err = circuit.ParseValue(*cmd.Value); err != nil {
			return in.argError(err)
		}
	}
	if len(cmd.Nodes) == 2 {
		if n1, err = strconv.Atoi(cmd.Nodes[0]); err != nil {
			return in.argError(fmt.Errorf("console: invalid node %q", cmd.Nodes[0]))
		}
		if n2, err = strconv.Atoi(cmd.Nodes[1]); err != nil {
			return in.argError(fmt.Errorf("console: invalid node %q", cmd.Nodes[1]))
		}
	}

	var at *schematic.Point
	if len(cmd.At) == 2 {
		p, err := point(cmd.At[0], cmd.At[1])
		if err != nil {
			return in.argError(err)
		}
		at = &p
	}

	_, err = in.ed.AddComponent(kind, value, n1, n2, at)
	return err
}

func (in *Interpreter) connect(cmd *ConnectCmd) error {
	from, err := schematic.ParseTerminalRef(cmd.From)
	if err != nil {
		return in.argError(err)
	}
	to, err := schematic.ParseTerminalRef(cmd.To)
	if err != nil {
		return in.argError(err)
	}
	_, err = in.ed.Connect(from, to)
	return err
}

func (in *Interpreter) mode(cmd *ModeCmd) error {
	wire := strings.EqualFold(cmd.Target, "wire")

	current := in.ed.DeleteMode()
	if wire {
		current = in.ed.WireMode()
	}

	var on bool
	switch strings.ToLower(cmd.State) {
	case "on":
		on = true
	case "off":
		on = false
	default:
		on = !current
	}

	if wire {
		in.ed.SetWireMode(on)
	} else {
		in.ed.SetDeleteMode(on)
	}
	return nil
}

func (in *Interpreter) pointer(cmd *PointerCmd) error {
	p, err := point(cmd.X, cmd.Y)
	if err != nil {
		return in.argError(err)
	}

	switch strings.ToLower(cmd.Kind) {
	case "press":
		return in.ed.Dispatch(editor.PointerEvent{Kind: editor.PointerPress, Pos: p})
	case "drag":
		return in.ed.Dispatch(editor.PointerEvent{Kind: editor.PointerDrag, Pos: p})
	case "release":
		return in.ed.Dispatch(editor.PointerEvent{Kind: editor.PointerRelease, Pos: p})
	default: // click
		if err := in.ed.Dispatch(editor.PointerEvent{Kind: editor.PointerPress, Pos: p}); err != nil {
			return err
		}
		return in.ed.Dispatch(editor.PointerEvent{Kind: editor.PointerRelease, Pos: p})
	}
}

func (in *Interpreter) netlist(cmd *NetlistCmd) error {
	nl := in.ed.Netlist()
	if cmd.JSON {
		data, err := nl.ExportJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(in.out, "%s\n", data)
		return err
	}

	log := in.ed.Logger()
	if nl.NetCount() == 0 {
		log.Infof("No nets")
		return nil
	}
	for _, line := range nl.Lines() {
		log.Infof("%s", line)
	}
	return nil
}

func point(xs, ys string) (schematic.Point, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return schematic.Point{}, fmt.Errorf("console: invalid coordinate %q", xs)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return schematic.Point{}, fmt.Errorf("console: invalid coordinate %q", ys)
	}
	return schematic.Pt(x, y), nil
}

// wireID accepts "W3", "w3" or "3".
func wireID(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimPrefix(s, "W"), "w"))
	if err != nil {
		return 0, fmt.Errorf("console: invalid wire id %q", s)
	}
	return n, nil
}
