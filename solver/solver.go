// Package solver implements the compressible-fluid core of the
// supersonic jet simulator: a finite-volume solver for the 2D Euler
// equations with a Roe-averaged approximate Riemann flux, dimensional
// splitting, CFL-limited time stepping, and positivity-preserving
// repair. See SPEC_FULL.md for the full component breakdown.
package solver

import (
	"time"

	"github.com/aerolab-sim/jetflow/jetlog"
)

// DefaultAmbientDensity and DefaultAmbientPressure seed a freshly
// constructed solver before any update_boundary call, per spec.md
// section 6's construct row.
const (
	DefaultAmbientDensity  = 1.225
	DefaultAmbientPressure = 101325.0
)

// FluidSolver is the single entry point a driver composes: construct,
// UpdateBoundary, Reset, Step, ScalarField, plus the read-only T/Nx/Ny
// accessors.
type FluidSolver struct {
	grid     *GridState
	boundary *BoundaryModel

	lastReset   bool // true if the most recent Step ended in a reset
	lastTimings StepTimings
	lastDt      float32
}

// New constructs a solver with a default-ambient field, per spec.md
// section 6. nx and ny must each be at least 4.
func New(nx, ny int) (*FluidSolver, error) {
	if nx < 4 {
		return nil, invalidArg("nx", float64(nx), "must be >= 4")
	}
	if ny < 4 {
		return nil, invalidArg("ny", float64(ny), "must be >= 4")
	}

	const lengthMeters = 0.9
	grid := newGridState(nx, ny, lengthMeters)

	defaultAmbient := primitiveState{
		rho: DefaultAmbientDensity,
		u:   0, v: 0,
		p: DefaultAmbientPressure,
		e: energyFromPrimitive(DefaultAmbientDensity, 0, 0, DefaultAmbientPressure),
	}
	grid.initialize(defaultAmbient)

	boundary := &BoundaryModel{ambient: defaultAmbient}

	return &FluidSolver{grid: grid, boundary: boundary}, nil
}

// UpdateBoundary recomputes inletState and ambientState from the four
// chamber parameters. All must be positive; mach may be zero.
func (s *FluidSolver) UpdateBoundary(pressureTotal, tempTotal, mach, pressureAmbient float32) error {
	if pressureTotal <= 0 {
		return invalidArg("pressureTotal", float64(pressureTotal), "must be positive")
	}
	if tempTotal <= 0 {
		return invalidArg("tempTotal", float64(tempTotal), "must be positive")
	}
	if mach < 0 {
		return invalidArg("mach", float64(mach), "must be >= 0")
	}
	if pressureAmbient <= 0 {
		return invalidArg("pressureAmbient", float64(pressureAmbient), "must be positive")
	}

	if s.boundary == nil {
		s.boundary = newBoundaryModel(pressureTotal, tempTotal, mach, pressureAmbient)
	} else {
		s.boundary.update(pressureTotal, tempTotal, mach, pressureAmbient)
	}
	return nil
}

// Reset zeroes t, refills Q with the ambient state, then imprints the
// boundary conditions — spec.md section 6's reset row.
func (s *FluidSolver) Reset() {
	s.grid.t = 0
	s.grid.reinitializeToAmbient(s.boundary.ambient)
	copy(s.grid.q2, s.grid.q)
	s.boundary.imprint(s.grid)
	s.grid.commit()
}

// StepTimings breaks down wall-clock time spent in each pipeline stage of
// the most recent Step call. It exists purely for driver-side perf
// telemetry (telemetry.PerfCollector) — nothing in the core reads it.
type StepTimings struct {
	CFL, XSweep, YSweep, Boundary, Repair time.Duration
}

// Step executes one full integration step: CFL dt, X-sweep, Y-sweep,
// boundary imprint, positivity repair, and commit-or-rollback. cfl must
// be in (0, 1].
func (s *FluidSolver) Step(cfl float32) {
	s.lastTimings = s.step(cfl)
}

// LastStepTimings returns the per-phase timing of the most recent Step.
func (s *FluidSolver) LastStepTimings() StepTimings {
	return s.lastTimings
}

func (s *FluidSolver) step(cfl float32) StepTimings {
	g := s.grid
	var timing StepTimings

	t0 := time.Now()
	dt := computeDt(g, cfl)
	g.t += float64(dt)
	s.lastDt = dt
	timing.CFL = time.Since(t0)

	t0 = time.Now()
	xSweep(g, dt)
	timing.XSweep = time.Since(t0)

	t0 = time.Now()
	ySweep(g, dt)
	timing.YSweep = time.Since(t0)

	t0 = time.Now()
	s.boundary.imprint(g)
	timing.Boundary = time.Since(t0)

	t0 = time.Now()
	stable := positivityRepair(g)
	timing.Repair = time.Since(t0)

	if stable {
		g.commit()
		s.lastReset = false
		return timing
	}

	jetlog.Logf("jetflow/solver: divergence detected at t=%.6f, resetting to ambient", g.t)
	g.reinitializeToAmbient(s.boundary.ambient)
	s.lastReset = true
	return timing
}

// LastStepReset reports whether the most recently executed Step rolled
// back to ambient instead of committing.
func (s *FluidSolver) LastStepReset() bool {
	return s.lastReset
}

// LastDt returns the CFL-limited timestep used by the most recent Step.
func (s *FluidSolver) LastDt() float32 {
	return s.lastDt
}

// ScalarField returns a fresh projection of the committed field plus its
// observed extrema. Pure: repeated calls without an intervening Step
// return identical values.
func (s *FluidSolver) ScalarField(mode FieldMode) ScalarField {
	return scalarField(s.grid, mode)
}

// T returns the accumulated simulation clock.
func (s *FluidSolver) T() float64 { return s.grid.t }

// Nx returns the grid width in cells.
func (s *FluidSolver) Nx() int { return s.grid.nx }

// Ny returns the grid height in cells.
func (s *FluidSolver) Ny() int { return s.grid.ny }

// NPR returns the nozzle pressure ratio pressureTotal/pressureAmbient.
func (s *FluidSolver) NPR() float32 { return s.boundary.npr() }

// Snapshot is a cheap value copy of the solver's mutable state, useful
// for driver-side pause/resume and for test fixtures. It is not a
// persistence format.
type Snapshot struct {
	Q        []float32
	T        float64
	Boundary BoundaryModel
}

// Snapshot captures the current committed state.
func (s *FluidSolver) Snapshot() Snapshot {
	q := make([]float32, len(s.grid.q))
	copy(q, s.grid.q)
	return Snapshot{Q: q, T: s.grid.t, Boundary: *s.boundary}
}

// Restore replaces the solver's committed state with a prior snapshot.
func (s *FluidSolver) Restore(snap Snapshot) {
	copy(s.grid.q, snap.Q)
	s.grid.t = snap.T
	b := snap.Boundary
	s.boundary = &b
}
