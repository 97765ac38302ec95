// Package game is the step-budget driver that sits between an external
// frame scheduler and the solver core, grounded on the teacher's
// game.Game: a per-frame accumulator, a rolling perf collector, and
// optional CSV telemetry output. It is explicitly an external
// collaborator of the core (spec.md section 1), not part of it.
package game

import (
	"time"

	"github.com/aerolab-sim/jetflow/config"
	"github.com/aerolab-sim/jetflow/jetlog"
	"github.com/aerolab-sim/jetflow/solver"
	"github.com/aerolab-sim/jetflow/telemetry"
)

// Simulator owns a FluidSolver and drives it at a configurable
// simulationSpeed, enforcing the hard per-frame step cap of spec.md
// section 5.
type Simulator struct {
	cfg    *config.Config
	solver *solver.FluidSolver

	simulationSpeed float64
	accumulator     float64
	tick            int

	perf   *telemetry.PerfCollector
	window *telemetry.RollingWindow
	out    *telemetry.OutputManager
}

// NewSimulator constructs the solver from cfg's grid and chamber
// sections and wires up telemetry output if cfg.Telemetry.OutputDir is set.
func NewSimulator(cfg *config.Config) (*Simulator, error) {
	fs, err := solver.New(cfg.Grid.Nx, cfg.Grid.Ny)
	if err != nil {
		return nil, err
	}
	if err := fs.UpdateBoundary(
		float32(cfg.Chamber.PressureTotal),
		float32(cfg.Chamber.TempTotal),
		float32(cfg.Chamber.Mach),
		float32(cfg.Chamber.PressureAmbient),
	); err != nil {
		return nil, err
	}

	out, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		return nil, err
	}

	return &Simulator{
		cfg:             cfg,
		solver:          fs,
		simulationSpeed: cfg.Stepping.SimulationSpeed,
		perf:            telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		window:          telemetry.NewRollingWindow(cfg.Telemetry.PerfWindow),
		out:             out,
	}, nil
}

// Solver exposes the underlying core for read-only queries (ScalarField, T, Nx, Ny).
func (s *Simulator) Solver() *solver.FluidSolver { return s.solver }

// SetSimulationSpeed updates the fractional steps-per-frame multiplier.
// Takes effect on the next AdvanceFrame, never mid-step (spec.md section 5).
func (s *Simulator) SetSimulationSpeed(speed float64) {
	s.simulationSpeed = speed
}

// UpdateChamber validates and applies new chamber parameters between
// frames — never called from inside AdvanceFrame.
func (s *Simulator) UpdateChamber(pressureTotal, tempTotal, mach, pressureAmbient float64) error {
	return s.solver.UpdateBoundary(
		float32(pressureTotal), float32(tempTotal), float32(mach), float32(pressureAmbient),
	)
}

// AdvanceFrame accumulates simulationSpeed and runs floor(accumulator)
// steps, hard-capped at cfg.Stepping.MaxStepsPerFrame. On cap the
// accumulator is dropped to zero; otherwise the fractional remainder is
// carried to the next frame. Returns the number of steps actually run.
func (s *Simulator) AdvanceFrame() int {
	s.accumulator += s.simulationSpeed
	steps := int(s.accumulator)

	maxSteps := s.cfg.Stepping.MaxStepsPerFrame
	if steps > maxSteps {
		steps = maxSteps
		s.accumulator = 0
	} else {
		s.accumulator -= float64(steps)
	}

	for i := 0; i < steps; i++ {
		s.stepOnce()
	}
	return steps
}

func (s *Simulator) stepOnce() {
	s.solver.Step(float32(s.cfg.Stepping.CFL))
	s.tick++

	timings := s.solver.LastStepTimings()
	total := timings.CFL + timings.XSweep + timings.YSweep + timings.Boundary + timings.Repair
	s.perf.RecordStep(total, map[string]time.Duration{
		telemetry.PhaseCFL:      timings.CFL,
		telemetry.PhaseXSweep:   timings.XSweep,
		telemetry.PhaseYSweep:   timings.YSweep,
		telemetry.PhaseBoundary: timings.Boundary,
		telemetry.PhaseRepair:   timings.Repair,
	})

	reset := s.solver.LastStepReset()
	if reset && s.cfg.Telemetry.LogResets {
		jetlog.Logf("jetflow: tick %d reset to ambient at t=%.6f", s.tick, s.solver.T())
	}

	stats := s.sampleStats(reset)
	s.window.Add(stats)
	_ = s.out.WriteStep(stats)
}

// sampleStats pulls the mach field to compute per-step diagnostics. This
// is a supplemental telemetry feature (SPEC_FULL.md), not part of the
// core's external interface.
func (s *Simulator) sampleStats(reset bool) telemetry.StepStats {
	mach := s.solver.ScalarField(solver.FieldMach)
	density := s.solver.ScalarField(solver.FieldDensity)
	pressure := s.solver.ScalarField(solver.FieldPressure)

	return telemetry.StepStats{
		Tick:        s.tick,
		SimTime:     s.solver.T(),
		Dt:          float64(s.solver.LastDt()),
		Reset:       reset,
		MaxMach:     float64(mach.Max),
		MinDensity:  float64(density.Min),
		MinPressure: float64(pressure.Min),
	}
}

// LogPerf emits a perf summary line and, if telemetry output is enabled,
// appends a perf.csv row. Also logs the rolling mach/dt summary from the
// step window.
func (s *Simulator) LogPerf() {
	stats := s.perf.Stats()
	stats.LogStats()
	_ = s.out.WritePerf(stats, int32(s.tick))

	meanMach, p50Mach, p90Mach := s.window.MachSummary()
	meanDt, minDt := s.window.DtSummary()
	jetlog.Logf(
		"jetflow: mach mean=%.3f p50=%.3f p90=%.3f dt_mean=%.3e dt_min=%.3e resets=%d",
		meanMach, p50Mach, p90Mach, meanDt, minDt, s.window.ResetCount(),
	)
}

// Close flushes and closes any open telemetry output.
func (s *Simulator) Close() error {
	return s.out.Close()
}

// Tick returns the number of steps executed so far.
func (s *Simulator) Tick() int { return s.tick }

// TickRate returns the current simulationSpeed multiplier.
func (s *Simulator) TickRate() float64 { return s.simulationSpeed }
