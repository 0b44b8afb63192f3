package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"epigrid/internal/sims/epidemic"
)

func runModel(t *testing.T, steps int) *epidemic.Model {
	t.Helper()
	cfg := epidemic.DefaultConfig()
	cfg.Width = 24
	cfg.Height = 16
	cfg.Rates.Infection = 0.4
	cfg.PercentStartInfected = 0.05
	m, err := epidemic.NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	for i := 0; i < steps && !m.IsFinished(); i++ {
		m.Advance()
	}
	return m
}

func TestWriteCSV(t *testing.T) {
	m := runModel(t, 10)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, m.History()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != m.History().Len()+1 {
		t.Fatalf("got %d rows, want %d", len(rows), m.History().Len()+1)
	}
	if rows[0][0] != "step" || len(rows[0]) != 11 {
		t.Fatalf("header %v", rows[0])
	}
	if rows[1][0] != "0" || rows[1][2] != "19" {
		t.Fatalf("first row %v, want step 0 with 19 infectious", rows[1])
	}
}

func TestSaveCSVAndPlot(t *testing.T) {
	m := runModel(t, 20)
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "counts.csv")
	if err := SaveCSV(csvPath, m.History()); err != nil {
		t.Fatalf("SaveCSV: %v", err)
	}
	plotPath := filepath.Join(dir, "counts.png")
	if err := SavePlot(plotPath, m.History(), "test run"); err != nil {
		t.Fatalf("SavePlot: %v", err)
	}
	for _, p := range []string{csvPath, plotPath} {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", p)
		}
	}
}

func TestChartStripSize(t *testing.T) {
	m := runModel(t, 15)
	img, err := ChartStrip(m.History(), 240, 90, 100)
	if err != nil {
		t.Fatalf("ChartStrip: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 240 || b.Dy() != 90 {
		t.Fatalf("bounds %v, want 240x90", b)
	}
	if _, err := ChartStrip(m.History(), 0, 90, 100); err == nil {
		t.Fatal("expected an error for a zero width")
	}
}

func TestVideoWritesAVI(t *testing.T) {
	cfg := epidemic.DefaultConfig()
	cfg.Width = 24
	cfg.Height = 16
	m, err := epidemic.NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	path := filepath.Join(t.TempDir(), "run.avi")
	opts := DefaultVideoOptions()
	opts.Steps = 5
	v, err := NewVideo(path, m.Size(), opts)
	if err != nil {
		t.Fatalf("NewVideo: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := v.AddFrame(m.Cells(), m.Palette(), m.History()); err != nil {
			t.Fatalf("AddFrame: %v", err)
		}
		m.Advance()
	}
	if err := v.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if v.Frames() != 3 {
		t.Fatalf("wrote %d frames, want 3", v.Frames())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read video: %v", err)
	}
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "AVI " {
		t.Fatal("output is not an AVI file")
	}
}
