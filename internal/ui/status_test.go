package ui

import (
	"fmt"
	"testing"

	"gioui.org/io/pointer"

	"github.com/OpenTraceLab/Cathedral/internal/logging"
	"github.com/OpenTraceLab/Cathedral/pkg/editor"
	"github.com/OpenTraceLab/Cathedral/pkg/schematic"
)

func TestLogBufferKeepsNewestLines(t *testing.T) {
	b := newLogBuffer(3)
	for i := 0; i < 5; i++ {
		b.Append(fmt.Sprintf("line %d", i))
	}
	if b.Len() != 3 {
		t.Fatalf("expected 3 lines, got %d", b.Len())
	}
	if want := "line 2\nline 3\nline 4"; b.Text() != want {
		t.Errorf("text = %q, want %q", b.Text(), want)
	}
}

func TestConsoleWriterSplitsLines(t *testing.T) {
	log := logging.New(nil, logging.LevelInfo)
	var got []string
	log.Subscribe(func(e logging.Entry) { got = append(got, e.Message) })

	w := &consoleWriter{log: log}
	fmt.Fprint(w, "{\n  \"net_count\": 0")
	fmt.Fprint(w, "\n}\n")

	want := []string{"{", "  \"net_count\": 0", "}"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestModeText(t *testing.T) {
	ed := editor.New(nil)
	if got := modeText(ed); got != "Mode: Normal" {
		t.Errorf("initial mode = %q", got)
	}
	if _, err := ed.AddResistor(); err != nil {
		t.Fatalf("AddResistor: %v", err)
	}
	ed.SetWireMode(true)
	if got := modeText(ed); got != "Mode: Wire" {
		t.Errorf("wire mode = %q", got)
	}
	if err := ed.Dispatch(editor.PointerEvent{Kind: editor.PointerPress, Pos: schematic.Pt(10, 0)}); err != nil {
		t.Fatalf("press: %v", err)
	}
	if got := modeText(ed); got != "Mode: WireDrawing from Resistor0.right" {
		t.Errorf("drawing mode = %q", got)
	}
	ed.SetDeleteMode(true)
	if got := modeText(ed); got != "Mode: Delete" {
		t.Errorf("delete mode = %q", got)
	}
	if got := countsText(ed); got != "Components: 1  Wires: 0" {
		t.Errorf("counts = %q", got)
	}
}

func TestEditorPointerKind(t *testing.T) {
	tests := []struct {
		kind    pointer.Kind
		buttons pointer.Buttons
		want    editor.PointerKind
		ok      bool
	}{
		{pointer.Press, pointer.ButtonPrimary, editor.PointerPress, true},
		{pointer.Press, pointer.ButtonSecondary, 0, false},
		{pointer.Drag, pointer.ButtonPrimary, editor.PointerDrag, true},
		{pointer.Release, 0, editor.PointerRelease, true},
		{pointer.Move, 0, editor.PointerMove, true},
		{pointer.Enter, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := editorPointerKind(tt.kind, tt.buttons)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("editorPointerKind(%v, %v) = %v, %v; want %v, %v", tt.kind, tt.buttons, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDeleteTargetPrefersSymbols(t *testing.T) {
	ed := editor.New(nil)
	for i := 0; i < 2; i++ {
		if _, err := ed.AddResistor(); err != nil {
			t.Fatalf("AddResistor: %v", err)
		}
	}
	from := schematic.TerminalRef{Component: "Resistor0", Terminal: schematic.TerminalRight}
	to := schematic.TerminalRef{Component: "Resistor1", Terminal: schematic.TerminalLeft}
	conn, err := ed.Connect(from, to)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if id, wire := deleteTarget(ed.Scene(), schematic.Pt(0, 0)); id != "Resistor0" || wire != 0 {
		t.Errorf("on symbol: got %q, %d", id, wire)
	}
	if id, wire := deleteTarget(ed.Scene(), schematic.Pt(25, 21)); id != "" || wire != 0 {
		t.Errorf("empty space: got %q, %d", id, wire)
	}
	mid := conn.Segments[0].From.Add(conn.Segments[0].To)
	mid = schematic.Pt(mid.X/2, mid.Y/2+2)
	if _, wire := deleteTarget(ed.Scene(), mid); wire != conn.ID {
		t.Errorf("near wire %v: got wire %d, want %d", mid, wire, conn.ID)
	}
}
