package schematic

import (
	"errors"
	"testing"

	"github.com/OpenTraceLab/Cathedral/pkg/circuit"
)

func TestSnap(t *testing.T) {
	tests := []struct {
		in   Point
		want Point
	}{
		{Pt(0, 0), Pt(0, 0)},
		{Pt(15, 0), Pt(20, 0)},
		{Pt(-15, 0), Pt(-20, 0)},
		{Pt(35, 9), Pt(40, 0)},
		{Pt(9.9, 10.1), Pt(0, 20)},
		{Pt(-29, 31), Pt(-20, 40)},
		{Pt(10, 30), Pt(20, 40)},
		{Pt(-10, 0), Pt(0, 0)},
		{Pt(-30, -50), Pt(-20, -40)},
	}

	for _, tt := range tests {
		got := Snap(tt.in, GridSize)
		if got != tt.want {
			t.Errorf("Snap(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if !OnGrid(got, GridSize) {
			t.Errorf("Snap(%v) = %v is not on grid", tt.in, got)
		}
	}
}

func TestSegmentDistanceTo(t *testing.T) {
	seg := Segment{From: Pt(0, 0), To: Pt(100, 0)}

	tests := []struct {
		p    Point
		want float64
	}{
		{Pt(50, 0), 0},
		{Pt(50, 3), 3},
		{Pt(-4, 0), 4},
		{Pt(103, 4), 5},
	}
	for _, tt := range tests {
		if got := seg.DistanceTo(tt.p); got != tt.want {
			t.Errorf("DistanceTo(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	dot := Segment{From: Pt(10, 10), To: Pt(10, 10)}
	if got := dot.DistanceTo(Pt(13, 14)); got != 5 {
		t.Errorf("zero-length DistanceTo = %v, want 5", got)
	}
}

func TestManhattanRoute(t *testing.T) {
	r := ManhattanRouter{}

	if segs := r.Route(Pt(20, 20), Pt(20, 20)); len(segs) != 0 {
		t.Fatalf("expected no segments for coincident points, got %d", len(segs))
	}

	segs := r.Route(Pt(0, 0), Pt(100, 60))
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if !segs[0].Horizontal() {
		t.Errorf("first segment %v is not horizontal", segs[0])
	}
	if !segs[1].Vertical() {
		t.Errorf("second segment %v is not vertical", segs[1])
	}
	if segs[0].From != Pt(0, 0) || segs[1].To != Pt(100, 60) {
		t.Errorf("route does not join endpoints: %v", segs)
	}
	if segs[0].To != segs[1].From {
		t.Errorf("segments are not contiguous: %v", segs)
	}

	// Collinear endpoints still give two segments, one of zero length.
	segs = r.Route(Pt(20, 0), Pt(40, 0))
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[1].Length() != 0 {
		t.Errorf("expected zero-length vertical leg, got %v", segs[1])
	}
}

func TestNearestTerminal(t *testing.T) {
	sym := Symbol{ID: "Resistor0", Kind: circuit.KindResistor, Pos: Pt(100, 100)}

	tests := []struct {
		p    Point
		want Terminal
	}{
		{Pt(86, 100), TerminalLeft},
		{Pt(114, 104), TerminalRight},
		{Pt(100, 100), TerminalLeft}, // tie
		{Pt(101, 90), TerminalRight},
	}
	for _, tt := range tests {
		if got := sym.NearestTerminal(tt.p); got != tt.want {
			t.Errorf("NearestTerminal(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestParseTerminalRef(t *testing.T) {
	ref, err := ParseTerminalRef("Resistor0.right")
	if err != nil {
		t.Fatalf("ParseTerminalRef failed: %v", err)
	}
	if ref.Component != "Resistor0" || ref.Terminal != TerminalRight {
		t.Errorf("unexpected ref %+v", ref)
	}
	if ref.String() != "Resistor0.right" {
		t.Errorf("String() = %q", ref.String())
	}

	for _, bad := range []string{"", "Resistor0", ".left", "Resistor0.", "Resistor0.top"} {
		if _, err := ParseTerminalRef(bad); err == nil {
			t.Errorf("ParseTerminalRef(%q) expected error", bad)
		}
	}
}

func placeTwo(t *testing.T) *Scene {
	t.Helper()
	s := NewScene()
	if _, err := s.Place("Resistor0", circuit.KindResistor, Pt(0, 0)); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if _, err := s.Place("Capacitor1", circuit.KindCapacitor, Pt(50, 0)); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	return s
}

func TestPlaceDuplicate(t *testing.T) {
	s := placeTwo(t)
	_, err := s.Place("Resistor0", circuit.KindResistor, Pt(200, 0))
	if !errors.Is(err, ErrDuplicateSymbol) {
		t.Fatalf("expected ErrDuplicateSymbol, got %v", err)
	}
	if len(s.Symbols()) != 2 {
		t.Errorf("expected 2 symbols, got %d", len(s.Symbols()))
	}
}

func TestSymbolAtTopmost(t *testing.T) {
	s := NewScene()
	s.Place("Resistor0", circuit.KindResistor, Pt(0, 0))
	s.Place("Resistor1", circuit.KindResistor, Pt(10, 0))

	sym, ok := s.SymbolAt(Pt(5, 0))
	if !ok {
		t.Fatal("expected a hit")
	}
	if sym.ID != "Resistor1" {
		t.Errorf("expected topmost Resistor1, got %s", sym.ID)
	}

	if _, ok := s.SymbolAt(Pt(500, 500)); ok {
		t.Error("expected no hit on empty space")
	}
}

func TestConnectSnapsTerminals(t *testing.T) {
	s := placeTwo(t)

	c, err := s.Connect(
		TerminalRef{Component: "Resistor0", Terminal: TerminalRight},
		TerminalRef{Component: "Capacitor1", Terminal: TerminalLeft},
	)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if c.FromPoint != Pt(20, 0) {
		t.Errorf("expected from (20, 0), got %v", c.FromPoint)
	}
	if c.ToPoint != Pt(40, 0) {
		t.Errorf("expected to (40, 0), got %v", c.ToPoint)
	}
	if len(c.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(c.Segments))
	}
	for _, seg := range c.Segments {
		if !OnGrid(seg.From, GridSize) || !OnGrid(seg.To, GridSize) {
			t.Errorf("segment %v has off-grid endpoint", seg)
		}
		if !seg.Horizontal() && !seg.Vertical() {
			t.Errorf("segment %v is not axis-aligned", seg)
		}
	}
}

func TestConnectUnknownSymbol(t *testing.T) {
	s := placeTwo(t)
	_, err := s.Connect(
		TerminalRef{Component: "Resistor0", Terminal: TerminalRight},
		TerminalRef{Component: "Resistor9", Terminal: TerminalLeft},
	)
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("expected ErrSymbolNotFound, got %v", err)
	}
	if len(s.Connections()) != 0 {
		t.Errorf("failed connect left a wire behind")
	}
}

func TestMoveReroutesWithStoredTerminals(t *testing.T) {
	s := placeTwo(t)
	s.Connect(
		TerminalRef{Component: "Resistor0", Terminal: TerminalRight},
		TerminalRef{Component: "Capacitor1", Terminal: TerminalLeft},
	)

	updated, err := s.Move("Capacitor1", Pt(200, 100))
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if len(updated) != 1 {
		t.Fatalf("expected 1 re-routed wire, got %d", len(updated))
	}

	c := updated[0]
	// Capacitor1.left is now at (185, 100), snapped to (180, 100).
	if c.ToPoint != Pt(180, 100) {
		t.Errorf("expected to (180, 100), got %v", c.ToPoint)
	}
	if c.FromPoint != Pt(20, 0) {
		t.Errorf("unmoved end changed to %v", c.FromPoint)
	}
	if len(c.Segments) != 2 || c.Segments[0].To != Pt(180, 0) {
		t.Errorf("unexpected segments %v", c.Segments)
	}

	stored, _ := s.Connection(c.ID)
	if stored.ToPoint != c.ToPoint {
		t.Errorf("scene wire not updated: %v", stored.ToPoint)
	}
}

func TestMoveUnconnectedTouchesNothing(t *testing.T) {
	s := placeTwo(t)
	s.Place("Resistor2", circuit.KindResistor, Pt(100, 0))
	s.Connect(
		TerminalRef{Component: "Resistor0", Terminal: TerminalRight},
		TerminalRef{Component: "Capacitor1", Terminal: TerminalLeft},
	)
	before := s.Connections()

	updated, err := s.MoveBy("Resistor2", Pt(0, 40))
	if err != nil {
		t.Fatalf("MoveBy failed: %v", err)
	}
	if len(updated) != 0 {
		t.Errorf("expected no re-routed wires, got %d", len(updated))
	}
	after := s.Connections()
	if after[0].FromPoint != before[0].FromPoint || after[0].ToPoint != before[0].ToPoint {
		t.Errorf("unrelated wire changed: %v -> %v", before[0], after[0])
	}

	sym, _ := s.Symbol("Resistor2")
	if sym.Pos != Pt(100, 40) {
		t.Errorf("expected (100, 40), got %v", sym.Pos)
	}
}

func TestRemoveCascadesToWires(t *testing.T) {
	s := placeTwo(t)
	s.Place("Resistor2", circuit.KindResistor, Pt(100, 0))
	s.Connect(
		TerminalRef{Component: "Resistor0", Terminal: TerminalRight},
		TerminalRef{Component: "Capacitor1", Terminal: TerminalLeft},
	)
	s.Connect(
		TerminalRef{Component: "Capacitor1", Terminal: TerminalRight},
		TerminalRef{Component: "Resistor2", Terminal: TerminalLeft},
	)

	removed, err := s.Remove("Capacitor1")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(removed) != 2 {
		t.Errorf("expected 2 removed wires, got %d", len(removed))
	}
	if n := len(s.Connections()); n != 0 {
		t.Errorf("expected no wires left, got %d", n)
	}
	if _, ok := s.Symbol("Capacitor1"); ok {
		t.Error("symbol still present after Remove")
	}

	if _, err := s.Remove("Capacitor1"); !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("expected ErrSymbolNotFound, got %v", err)
	}
}

func TestConnectionAtAndRemove(t *testing.T) {
	s := NewScene()
	s.Place("Resistor0", circuit.KindResistor, Pt(0, 0))
	s.Place("Resistor1", circuit.KindResistor, Pt(200, 100))
	c, _ := s.Connect(
		TerminalRef{Component: "Resistor0", Terminal: TerminalRight},
		TerminalRef{Component: "Resistor1", Terminal: TerminalLeft},
	)

	// The route is (20,0)->(180,0)->(180,100).
	if got, ok := s.ConnectionAt(Pt(100, 3), 4); !ok || got.ID != c.ID {
		t.Errorf("expected hit on horizontal leg, got %v %v", got, ok)
	}
	if got, ok := s.ConnectionAt(Pt(183, 50), 4); !ok || got.ID != c.ID {
		t.Errorf("expected hit on vertical leg, got %v %v", got, ok)
	}
	if _, ok := s.ConnectionAt(Pt(100, 30), 4); ok {
		t.Error("expected miss away from wire")
	}

	if _, err := s.RemoveConnection(c.ID); err != nil {
		t.Fatalf("RemoveConnection failed: %v", err)
	}
	if _, err := s.RemoveConnection(c.ID); !errors.Is(err, ErrWireNotFound) {
		t.Errorf("expected ErrWireNotFound, got %v", err)
	}
}

func TestBounds(t *testing.T) {
	s := NewScene()
	if _, ok := s.Bounds(); ok {
		t.Fatal("empty scene should have no bounds")
	}

	s.Place("Resistor0", circuit.KindResistor, Pt(0, 0))
	s.Place("Resistor1", circuit.KindResistor, Pt(100, 50))

	r, ok := s.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	want := Rect{Min: Pt(-15, -10), Max: Pt(115, 60)}
	if r != want {
		t.Errorf("Bounds() = %v, want %v", r, want)
	}
}
