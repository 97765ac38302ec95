package telemetry

import (
	"testing"
	"time"
)

// phasesFromTimings mirrors how game.Simulator.stepOnce maps
// solver.StepTimings onto PerfCollector.RecordStep's phase map.
func phasesFromTimings(cfl, xsweep, ysweep, boundary, repair time.Duration) map[string]time.Duration {
	return map[string]time.Duration{
		PhaseCFL:      cfl,
		PhaseXSweep:   xsweep,
		PhaseYSweep:   ysweep,
		PhaseBoundary: boundary,
		PhaseRepair:   repair,
	}
}

func TestPerfCollectorAveragesRecordedSteps(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.RecordStep(100*time.Microsecond, phasesFromTimings(
			10*time.Microsecond, 40*time.Microsecond, 40*time.Microsecond,
			5*time.Microsecond, 5*time.Microsecond,
		))
	}

	stats := pc.Stats()
	if stats.AvgTickDuration != 100*time.Microsecond {
		t.Errorf("expected avg step 100us, got %v", stats.AvgTickDuration)
	}
	if stats.MinTickDuration != 100*time.Microsecond || stats.MaxTickDuration != 100*time.Microsecond {
		t.Errorf("expected min/max step 100us for uniform samples, got min=%v max=%v",
			stats.MinTickDuration, stats.MaxTickDuration)
	}
	if _, ok := stats.PhaseAvg[PhaseXSweep]; !ok {
		t.Error("expected xsweep phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseYSweep]; !ok {
		t.Error("expected ysweep phase to be tracked")
	}
}

func TestPerfCollectorRollingWindowDropsOldSamples(t *testing.T) {
	pc := NewPerfCollector(5) // small window

	// First fill with slow steps, then overwrite the window with fast
	// ones; Stats should reflect only the most recent `windowSize` steps.
	for i := 0; i < 5; i++ {
		pc.RecordStep(1000*time.Microsecond, phasesFromTimings(
			200*time.Microsecond, 400*time.Microsecond, 400*time.Microsecond, 0, 0,
		))
	}
	for i := 0; i < 5; i++ {
		pc.RecordStep(100*time.Microsecond, phasesFromTimings(
			20*time.Microsecond, 40*time.Microsecond, 40*time.Microsecond, 0, 0,
		))
	}

	stats := pc.Stats()
	if stats.AvgTickDuration != 100*time.Microsecond {
		t.Errorf("expected window to hold only the 5 most recent fast steps, got avg %v", stats.AvgTickDuration)
	}
	if stats.StepsPerSecond <= 0 {
		t.Error("expected positive steps-per-second throughput")
	}
}

func TestPerfCollectorPhasePercentagesReflectSweepDominance(t *testing.T) {
	pc := NewPerfCollector(10)

	// SweepIntegrator's two sweeps should dominate tick time, per
	// solver.StepTimings' pipeline order (cfl, xsweep, ysweep, boundary,
	// repair).
	for i := 0; i < 5; i++ {
		pc.RecordStep(110*time.Microsecond, phasesFromTimings(
			5*time.Microsecond, 45*time.Microsecond, 45*time.Microsecond,
			10*time.Microsecond, 5*time.Microsecond,
		))
	}

	stats := pc.Stats()
	sweepPct := stats.PhasePct[PhaseXSweep] + stats.PhasePct[PhaseYSweep]
	if sweepPct <= stats.PhasePct[PhaseCFL]+stats.PhasePct[PhaseBoundary]+stats.PhasePct[PhaseRepair] {
		t.Errorf("expected sweep phases (%v%%) to dominate non-sweep phases, got non-sweep %v%%",
			sweepPct, stats.PhasePct[PhaseCFL]+stats.PhasePct[PhaseBoundary]+stats.PhasePct[PhaseRepair])
	}
}

func TestPerfCollectorEmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg step duration for empty collector")
	}
	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}
	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfStatsToCSVCarriesRenamedPhaseColumns(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.RecordStep(100*time.Microsecond, phasesFromTimings(
		10*time.Microsecond, 40*time.Microsecond, 40*time.Microsecond,
		5*time.Microsecond, 5*time.Microsecond,
	))

	row := pc.Stats().ToCSV(7)
	if row.WindowEnd != 7 {
		t.Errorf("expected window_end 7, got %d", row.WindowEnd)
	}
	if row.XSweepPct <= 0 || row.YSweepPct <= 0 {
		t.Errorf("expected nonzero xsweep/ysweep CSV columns, got xsweep=%v ysweep=%v", row.XSweepPct, row.YSweepPct)
	}
	if row.AvgStepUS != 100 {
		t.Errorf("expected avg_step_us 100, got %d", row.AvgStepUS)
	}
}
