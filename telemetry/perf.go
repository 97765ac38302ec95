package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one solver step, matching SweepIntegrator's pipeline
// order: CFL scan, X-sweep, Y-sweep, boundary imprint, positivity repair.
const (
	PhaseCFL      = "cfl"
	PhaseXSweep   = "xsweep"
	PhaseYSweep   = "ysweep"
	PhaseBoundary = "boundary"
	PhaseRepair   = "repair"
)

var stepPhases = []string{PhaseCFL, PhaseXSweep, PhaseYSweep, PhaseBoundary, PhaseRepair}

// PerfSample holds one step's total duration and its per-phase breakdown,
// as measured by solver.StepTimings.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector averages step timings over a rolling window of the most
// recent steps.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of steps to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
	}
}

// RecordStep appends a sample built from the phase durations a
// solver.FluidSolver.Step call already measured internally (via
// solver.StepTimings), rather than re-timing each phase here.
func (p *PerfCollector) RecordStep(total time.Duration, phases map[string]time.Duration) {
	cloned := make(map[string]time.Duration, len(phases))
	for k, v := range phases {
		cloned[k] = v
	}
	p.samples[p.writeIndex] = PerfSample{TickDuration: total, Phases: cloned}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated performance statistics over the window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// PhaseAvg/PhasePct break the average step duration down by
	// solver pipeline phase (PhaseCFL, PhaseXSweep, ...).
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	StepsPerSecond float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg: make(map[string]time.Duration),
			PhasePct: make(map[string]float64),
		}
	}

	var totalTick time.Duration
	var minTick, maxTick time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		totalTick += s.TickDuration

		if i == 0 || s.TickDuration < minTick {
			minTick = s.TickDuration
		}
		if s.TickDuration > maxTick {
			maxTick = s.TickDuration
		}

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avgTick := totalTick / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avgTick > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avgTick) * 100
		}
	}

	var stepsPerSec float64
	if avgTick > 0 {
		stepsPerSec = float64(time.Second) / float64(avgTick)
	}

	return PerfStats{
		AvgTickDuration: avgTick,
		MinTickDuration: minTick,
		MaxTickDuration: maxTick,
		PhaseAvg:        phaseAvg,
		PhasePct:        phasePct,
		StepsPerSecond:  stepsPerSec,
	}
}

// LogStats logs performance statistics via slog.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_step_us", s.AvgTickDuration.Microseconds(),
		"min_step_us", s.MinTickDuration.Microseconds(),
		"max_step_us", s.MaxTickDuration.Microseconds(),
		"steps_per_sec", int(s.StepsPerSecond),
	}

	for _, phase := range stepPhases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_step_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_step_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_step_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("steps_per_sec", s.StepsPerSecond),
	}

	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats via
// gocsv, one row per perf-log interval.
type PerfStatsCSV struct {
	WindowEnd   int32   `csv:"window_end"`
	AvgStepUS   int64   `csv:"avg_step_us"`
	MinStepUS   int64   `csv:"min_step_us"`
	MaxStepUS   int64   `csv:"max_step_us"`
	StepsPerSec float64 `csv:"steps_per_sec"`
	CFLPct      float64 `csv:"cfl_pct"`
	XSweepPct   float64 `csv:"xsweep_pct"`
	YSweepPct   float64 `csv:"ysweep_pct"`
	BoundaryPct float64 `csv:"boundary_pct"`
	RepairPct   float64 `csv:"repair_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:   windowEnd,
		AvgStepUS:   s.AvgTickDuration.Microseconds(),
		MinStepUS:   s.MinTickDuration.Microseconds(),
		MaxStepUS:   s.MaxTickDuration.Microseconds(),
		StepsPerSec: s.StepsPerSecond,
		CFLPct:      s.PhasePct[PhaseCFL],
		XSweepPct:   s.PhasePct[PhaseXSweep],
		YSweepPct:   s.PhasePct[PhaseYSweep],
		BoundaryPct: s.PhasePct[PhaseBoundary],
		RepairPct:   s.PhasePct[PhaseRepair],
	}
}
