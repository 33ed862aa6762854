package sinks

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Biochemical-Networks/actinringsmc/internal/ring"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan %s: %v", path, err)
	}
	return lines
}

func TestOpsFile_WritesHeaderThenRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ops")
	f, err := NewOpsFile(path)
	if err != nil {
		t.Fatalf("NewOpsFile: %v", err)
	}
	if err := f.WriteHeader(); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if err := f.WriteRecord(ring.OpsRecord{Step: 100, Energy: 1.5, Height: 9, Radius: 2.25}); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %v", len(lines), lines)
	}
	if lines[0] != "step energy height radius" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "100 1.5 9 2.25" {
		t.Errorf("record = %q", lines[1])
	}
}

func TestMatrixFile_HeaderAndRowRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.counts")
	f, err := NewMatrixFile(path)
	if err != nil {
		t.Fatalf("NewMatrixFile: %v", err)
	}
	if err := f.WriteHeader([]int{3, 4, 5}); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if err := f.WriteRow([]float64{1, 2.5, 0}); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %v", len(lines), lines)
	}
	if strings.TrimSpace(lines[0]) != "3 4 5" {
		t.Errorf("header = %q", lines[0])
	}
	if strings.TrimSpace(lines[1]) != "1 2.5 0" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestFileBiasReader_ReadsTheRequestedRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restart.biases")
	content := "3 4 5\n-1 -2 -3\n-4 -5 -6\n-7 -8 -9\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r := NewFileBiasReader(path)
	enes, err := r.ReadEnes(2)
	if err != nil {
		t.Fatalf("ReadEnes: %v", err)
	}
	want := []float64{-4, -5, -6}
	if len(enes) != len(want) {
		t.Fatalf("got %v, want %v", enes, want)
	}
	for i := range want {
		if enes[i] != want[i] {
			t.Errorf("enes[%d] = %v, want %v", i, enes[i], want[i])
		}
	}
}

func TestParmsFile_WritesExpectedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.parms")
	f := NewParmsFile(path)

	sp := ring.SystemParams{
		Ks: 1e-6, Kd: 1e-6, T: 300, Delta: 5.4e-9, Xc: 1e-6, EI: 6.9e-26, Lf: 1e-6,
		SitesPerFilament: 4, NumFilaments: 4, NumScaffolds: 2,
		RadiusMoveFreq: 0.2, MaxBiasDiff: 1.0,
	}
	sim := ring.SimParams{Steps: 1000, WriteInterval: 10, FileBase: "run", BinWidth: 1}

	if err := f.WriteParms(sp, sim); err != nil {
		t.Fatalf("WriteParms: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	for _, key := range []string{"lf", "T", "kd", "ks", "EI", "Lf", "Xc", "Nfil", "Nsca", "delta",
		"steps", "write_interval", "filebase", "max_bias_diff", "radius_move_freq", "iters",
		"analytical_biases", "binwidth"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing key %q in parms document", key)
		}
	}
	if doc["Nfil"].(float64) != 4 {
		t.Errorf("Nfil = %v, want 4", doc["Nfil"])
	}
	if doc["filebase"].(string) != "run" {
		t.Errorf("filebase = %v, want run", doc["filebase"])
	}
}

func TestFileBiasReader_ErrorsOnMissingRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restart.biases")
	if err := os.WriteFile(path, []byte("3 4 5\n-1 -2 -3\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r := NewFileBiasReader(path)
	if _, err := r.ReadEnes(5); err == nil {
		t.Error("expected an error for a row beyond the file's contents")
	}
}
