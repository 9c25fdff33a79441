package ui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/OpenTraceLab/Cathedral/internal/logging"
	"github.com/OpenTraceLab/Cathedral/pkg/editor"
	"github.com/OpenTraceLab/Cathedral/pkg/schematic"
)

const maxLogLines = 500

// logBuffer keeps the most recent log lines for the log pane.
type logBuffer struct {
	max   int
	lines []string
	text  string
}

func newLogBuffer(max int) *logBuffer {
	return &logBuffer{max: max}
}

func (b *logBuffer) Append(line string) {
	b.lines = append(b.lines, line)
	if b.max > 0 && len(b.lines) > b.max {
		b.lines = append(b.lines[:0], b.lines[len(b.lines)-b.max:]...)
	}
	b.text = strings.Join(b.lines, "\n")
}

func (b *logBuffer) Len() int     { return len(b.lines) }
func (b *logBuffer) Text() string { return b.text }

// consoleWriter routes command output, such as a JSON netlist, into the
// log pane one line at a time.
type consoleWriter struct {
	log *logging.Logger
	buf bytes.Buffer
}

func (w *consoleWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// keep the partial line for the next write
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.log.Infof("%s", strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

func modeText(ed *editor.Editor) string {
	switch ed.State() {
	case editor.StateWireDrawing:
		ref, _, _ := ed.PendingWire()
		return fmt.Sprintf("Mode: %s from %s", ed.State(), ref)
	case editor.StateNormal:
		if ed.WireMode() {
			return "Mode: Wire"
		}
	}
	return "Mode: " + ed.State().String()
}

func countsText(ed *editor.Editor) string {
	return fmt.Sprintf("Components: %d  Wires: %d",
		len(ed.Scene().Symbols()), len(ed.Scene().Connections()))
}

func cursorText(p schematic.Point) string {
	return fmt.Sprintf("%.0f, %.0f", p.X, p.Y)
}
