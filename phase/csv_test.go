package phase

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportCSVWritesExpectedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sweep.csv")

	ok, err := ExportCSV(path, []float64{0.1, 0.2}, []float64{0.123456789, 0.2}, []float64{1.5, 2.25})
	if err != nil {
		t.Fatalf("ExportCSV returned error: %v", err)
	}
	if !ok {
		t.Fatal("ExportCSV returned ok=false with nil error")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading exported csv: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + 2 rows)", len(lines))
	}
	if lines[0] != "beta,phi,chi" {
		t.Errorf("header = %q, want %q", lines[0], "beta,phi,chi")
	}
	if lines[1] != "0.100000,0.123457,1.500000" {
		t.Errorf("row 1 = %q, want %q", lines[1], "0.100000,0.123457,1.500000")
	}
	if lines[2] != "0.200000,0.200000,2.250000" {
		t.Errorf("row 2 = %q, want %q", lines[2], "0.200000,0.200000,2.250000")
	}
}

func TestExportCSVRejectsMismatchedLengths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sweep.csv")

	ok, err := ExportCSV(path, []float64{0.1, 0.2}, []float64{0.1}, []float64{0.1, 0.2})
	if ok {
		t.Error("ExportCSV returned ok=true for mismatched lengths")
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ExportCSV mismatched lengths did not return ErrInvalidArgument: %v", err)
	}
}

func TestExportCSVReturnsErrorOnBadPath(t *testing.T) {
	ok, err := ExportCSV("/nonexistent/dir/sweep.csv", []float64{0.1}, []float64{0.1}, []float64{0.1})
	if ok {
		t.Error("ExportCSV returned ok=true for an uncreatable path")
	}
	if err == nil {
		t.Error("ExportCSV returned nil error for an uncreatable path")
	}
}
