package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTouchNotifySignal_EmptyPath(t *testing.T) {
	if err := TouchNotifySignal("", 1); err != nil {
		t.Errorf("TouchNotifySignal(\"\") should not error, got %v", err)
	}
}

func TestTouchNotifySignal_CreatesFileAndDir(t *testing.T) {
	dir := t.TempDir()
	signalPath := filepath.Join(dir, "subdir", ".tourism-cms-notify")
	if err := TouchNotifySignal(signalPath, 7); err != nil {
		t.Fatalf("TouchNotifySignal: %v", err)
	}
	data, err := os.ReadFile(signalPath)
	if err != nil {
		t.Fatalf("signal file not created: %v", err)
	}
	if !strings.HasPrefix(string(data), "7-") {
		t.Errorf("signal = %q, want revision prefix 7-", data)
	}
	rev, ok := signalRevision(string(data))
	if !ok || rev != 7 {
		t.Errorf("signalRevision = %d, %v; want 7, true", rev, ok)
	}

	entries, _ := os.ReadDir(filepath.Dir(signalPath))
	if len(entries) != 1 {
		t.Errorf("expected only the signal file, found %d entries", len(entries))
	}
}

func TestTouchNotifySignal_OverwritesWithNewValue(t *testing.T) {
	dir := t.TempDir()
	signalPath := filepath.Join(dir, ".notify")
	if err := TouchNotifySignal(signalPath, 1); err != nil {
		t.Fatal(err)
	}
	data1, _ := os.ReadFile(signalPath)
	if err := TouchNotifySignal(signalPath, 1); err != nil {
		t.Fatal(err)
	}
	data2, _ := os.ReadFile(signalPath)
	if string(data1) == string(data2) {
		t.Error("second touch should write a new value even for the same revision")
	}
}

func TestSignalRevision(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"12-1700000000", 12, true},
		{"0-5\n", 0, true},
		{"1700000000", 0, false},
		{"abc-1", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := signalRevision(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("signalRevision(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
