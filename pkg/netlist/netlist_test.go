package netlist

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/OpenTraceLab/Cathedral/pkg/circuit"
	"github.com/OpenTraceLab/Cathedral/pkg/schematic"
)

func ref(id string, t schematic.Terminal) schematic.TerminalRef {
	return schematic.TerminalRef{Component: id, Terminal: t}
}

func TestNewIsolated(t *testing.T) {
	terms := []schematic.TerminalRef{
		ref("Resistor0", schematic.TerminalLeft),
		ref("Resistor0", schematic.TerminalRight),
		ref("Capacitor1", schematic.TerminalLeft),
	}
	nl := New(terms)

	for _, term := range terms {
		if root := nl.Find(term); root != term {
			t.Errorf("terminal %s should be its own root initially, got %s", term, root)
		}
	}
}

func TestConnectTransitive(t *testing.T) {
	a := ref("Resistor0", schematic.TerminalRight)
	b := ref("Capacitor1", schematic.TerminalLeft)
	c := ref("Resistor2", schematic.TerminalLeft)
	nl := New([]schematic.TerminalRef{a, b, c})

	nl.Connect(a, b)
	if !nl.Connected(a, b) {
		t.Errorf("%s and %s should share a net", a, b)
	}
	if nl.Connected(a, c) {
		t.Errorf("%s should still be isolated", c)
	}

	nl.Connect(b, c)
	if !nl.Connected(a, c) {
		t.Errorf("all terminals should share a net after transitive connection")
	}

	// Connecting again is a no-op.
	nl.Connect(c, a)
	nl.Finalize()
	if nl.NetCount() != 1 {
		t.Errorf("expected 1 net, got %d", nl.NetCount())
	}
}

func TestFinalizeSkipsIsolated(t *testing.T) {
	a := ref("Resistor0", schematic.TerminalLeft)
	b := ref("Resistor0", schematic.TerminalRight)
	c := ref("Capacitor1", schematic.TerminalLeft)
	d := ref("Capacitor1", schematic.TerminalRight)
	nl := New([]schematic.TerminalRef{a, b, c, d})

	nl.Connect(b, c)
	nl.Finalize()

	if nl.NetCount() != 1 {
		t.Fatalf("expected 1 net, got %d", nl.NetCount())
	}
	net := nl.Nets[0]
	if net.ID != 1 {
		t.Errorf("expected net id 1, got %d", net.ID)
	}
	if len(net.Terminals) != 2 {
		t.Fatalf("expected 2 terminals, got %d", len(net.Terminals))
	}
	if net.Terminals[0] != b || net.Terminals[1] != c {
		t.Errorf("unexpected terminal order %v", net.Terminals)
	}
	if _, ok := nl.NetOf(a); ok {
		t.Errorf("isolated terminal %s should not be in a net", a)
	}
	if n, ok := nl.NetOf(c); !ok || n.ID != 1 {
		t.Errorf("expected %s in net 1", c)
	}
}

func TestBuildFromScene(t *testing.T) {
	s := schematic.NewScene()
	s.Place("Resistor0", circuit.KindResistor, schematic.Pt(0, 0))
	s.Place("Capacitor1", circuit.KindCapacitor, schematic.Pt(50, 0))
	s.Place("Resistor2", circuit.KindResistor, schematic.Pt(100, 0))
	s.Place("Resistor10", circuit.KindResistor, schematic.Pt(150, 0))

	s.Connect(ref("Resistor0", schematic.TerminalRight), ref("Capacitor1", schematic.TerminalLeft))
	s.Connect(ref("Resistor10", schematic.TerminalLeft), ref("Resistor2", schematic.TerminalRight))

	nl := Build(s.Symbols(), s.Connections())
	if nl.NetCount() != 2 {
		t.Fatalf("expected 2 nets, got %d", nl.NetCount())
	}

	want := []string{
		"Net 1: Resistor0.right, Capacitor1.left",
		"Net 2: Resistor2.right, Resistor10.left",
	}
	got := nl.Lines()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	nl := Build(nil, nil)
	if nl.NetCount() != 0 {
		t.Errorf("expected no nets, got %d", nl.NetCount())
	}
	if _, err := nl.ExportJSON(); err != nil {
		t.Errorf("ExportJSON on empty netlist failed: %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	nl := New(nil)
	if _, err := nl.ExportJSON(); err == nil {
		t.Error("expected error before Finalize")
	}

	nl.Connect(ref("Resistor0", schematic.TerminalRight), ref("Capacitor1", schematic.TerminalLeft))
	nl.Finalize()

	data, err := nl.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var out struct {
		NetCount int `json:"net_count"`
		Nets     []struct {
			ID        int      `json:"id"`
			Terminals []string `json:"terminals"`
		} `json:"nets"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.NetCount != 1 || len(out.Nets) != 1 {
		t.Fatalf("unexpected output: %s", data)
	}
	if strings.Join(out.Nets[0].Terminals, " ") != "Resistor0.right Capacitor1.left" {
		t.Errorf("unexpected terminals %v", out.Nets[0].Terminals)
	}
}
