package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// StepStats holds aggregated diagnostics for a single solver step,
// adapted from the teacher's WindowStats for the jet domain: instead of
// per-tick population/energy bookkeeping, each row summarizes one
// FluidSolver.Step call.
type StepStats struct {
	Tick    int     `csv:"tick"`
	SimTime float64 `csv:"sim_time"`
	Dt      float64 `csv:"dt"`
	Reset   bool    `csv:"reset"`

	MaxMach     float64 `csv:"max_mach"`
	MinDensity  float64 `csv:"min_density"`
	MinPressure float64 `csv:"min_pressure"`
}

// RollingWindow keeps a bounded history of recent StepStats and computes
// mean/percentile summaries over it using gonum/stat, replacing the
// teacher's hand-rolled sort-and-interpolate percentile helper.
type RollingWindow struct {
	size    int
	samples []StepStats
}

// NewRollingWindow creates a window retaining at most size samples.
func NewRollingWindow(size int) *RollingWindow {
	if size < 1 {
		size = 60
	}
	return &RollingWindow{size: size, samples: make([]StepStats, 0, size)}
}

// Add appends a sample, evicting the oldest once the window is full.
func (w *RollingWindow) Add(s StepStats) {
	w.samples = append(w.samples, s)
	if len(w.samples) > w.size {
		w.samples = w.samples[1:]
	}
}

// MachSummary returns the mean and p50/p90 of MaxMach over the window.
// gonum/stat.Quantile requires its input pre-sorted, per its contract.
func (w *RollingWindow) MachSummary() (mean, p50, p90 float64) {
	if len(w.samples) == 0 {
		return 0, 0, 0
	}
	vals := make([]float64, len(w.samples))
	for i, s := range w.samples {
		vals[i] = s.MaxMach
	}
	mean = stat.Mean(vals, nil)
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return
}

// DtSummary returns the mean and minimum Dt over the window (the
// minimum is the tightest CFL constraint observed recently).
func (w *RollingWindow) DtSummary() (mean, min float64) {
	if len(w.samples) == 0 {
		return 0, 0
	}
	vals := make([]float64, len(w.samples))
	for i, s := range w.samples {
		vals[i] = s.Dt
	}
	mean = stat.Mean(vals, nil)
	min = vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
	}
	return
}

// ResetCount returns how many samples in the window were resets.
func (w *RollingWindow) ResetCount() int {
	n := 0
	for _, s := range w.samples {
		if s.Reset {
			n++
		}
	}
	return n
}

// LogValue implements slog.LogValuer for structured logging.
func (s StepStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", s.Tick),
		slog.Float64("sim_time", s.SimTime),
		slog.Float64("dt", s.Dt),
		slog.Bool("reset", s.Reset),
		slog.Float64("max_mach", s.MaxMach),
		slog.Float64("min_density", s.MinDensity),
		slog.Float64("min_pressure", s.MinPressure),
	)
}

// LogStats logs the step stats using slog.
func (s StepStats) LogStats() {
	slog.Info("step", "stats", s)
}
