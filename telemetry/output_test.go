package telemetry

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewOutputManagerDisabledWhenDirEmpty(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil OutputManager when dir is empty")
	}
	// All methods must be safe no-ops on a nil manager.
	if err := om.WriteStep(StepStats{}); err != nil {
		t.Errorf("expected nil error from WriteStep on nil manager, got %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("expected nil error from Close on nil manager, got %v", err)
	}
}

func TestOutputManagerWritesStepCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	if err := om.WriteStep(StepStats{Tick: 1, SimTime: 0.001, MaxMach: 1.5}); err != nil {
		t.Fatalf("WriteStep: %v", err)
	}
	if err := om.WriteStep(StepStats{Tick: 2, SimTime: 0.002, MaxMach: 1.6}); err != nil {
		t.Fatalf("WriteStep: %v", err)
	}

	path := filepath.Join(dir, "steps.csv")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading steps.csv: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty steps.csv")
	}
}

func TestOutputManagerWritesPerfCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	collector := NewPerfCollector(10)
	collector.RecordStep(5*time.Microsecond, map[string]time.Duration{
		PhaseCFL:    1 * time.Microsecond,
		PhaseXSweep: 2 * time.Microsecond,
	})

	if err := om.WritePerf(collector.Stats(), 1); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "steps.csv")); err != nil {
		t.Errorf("expected steps.csv to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "perf.csv")); err != nil {
		t.Errorf("expected perf.csv to exist: %v", err)
	}
}
