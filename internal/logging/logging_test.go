package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warn", LevelWarning, false},
		{"Warning", LevelWarning, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	l.Infof("Added %s", "Resistor0")
	l.Errorf("Must connect two components.")

	want := "[INFO] Added Resistor0\n[ERROR] Must connect two components.\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarning)

	var seen []Entry
	l.Subscribe(func(e Entry) { seen = append(seen, e) })

	l.Debugf("hidden")
	l.Infof("hidden")
	l.Warnf("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("filtered message reached console: %q", buf.String())
	}
	if len(seen) != 1 || seen[0].Level != LevelWarning || seen[0].Message != "shown" {
		t.Fatalf("unexpected observed entries: %+v", seen)
	}
	if seen[0].String() != "[WARNING] shown" {
		t.Errorf("unexpected entry string %q", seen[0].String())
	}

	l.SetLevel(LevelDebug)
	l.Debugf("now shown")
	if len(seen) != 2 {
		t.Errorf("expected 2 entries after lowering level, got %d", len(seen))
	}
}

func TestFileSinkAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cathedral.log")
	if err := os.WriteFile(path, []byte("[INFO] previous run\n"), 0o644); err != nil {
		t.Fatalf("seed log file: %v", err)
	}

	l := Discard()
	if err := l.Open(path); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	l.Infof("Starting GUI...")
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	l.Infof("after close")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	want := "[INFO] previous run\n[INFO] Starting GUI...\n"
	if string(data) != want {
		t.Errorf("expected %q, got %q", want, string(data))
	}
}

func TestOpenFailure(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	err := l.Open(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	if err == nil {
		t.Fatal("expected error opening log file in missing directory")
	}

	l.Infof("still logging")
	if !strings.Contains(buf.String(), "still logging") {
		t.Errorf("logger stopped after failed Open: %q", buf.String())
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close without file should be a no-op, got %v", err)
	}
}
