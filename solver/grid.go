package solver

// primitiveState is a cached (rho, u, v, p, E) boundary tuple, matching
// spec.md section 3's "two cached primitive tuples".
type primitiveState struct {
	rho float32
	u   float32
	v   float32
	p   float32
	e   float32 // total energy per unit volume, at (u,v)
}

func (s primitiveState) conservative() [4]float32 {
	return [4]float32{s.rho, s.rho * s.u, s.rho * s.v, s.e}
}

// GridState owns the conservative-variable field Q and its tentative
// buffer Q', plus grid geometry and the simulation clock. It is mutated
// by SweepIntegrator and by FluidSolver's Reset and Restore; everything
// else reads it.
type GridState struct {
	nx, ny int
	dx, dy float32

	q    []float32 // committed state, nx*ny*4, row-major over (i,j)
	q2   []float32 // tentative next state, same layout
	ref2 []float32 // read-only snapshot of q2 taken before the Y-sweep

	t float64
}

// newGridState allocates all three buffers once; they are never
// reallocated after construction. ref2 exists so the Y-sweep can read a
// fixed post-X-sweep reference while accumulating into q2, keeping face
// order irrelevant within a sweep (spec.md section 4.4, "Faces are
// traversed in any order") without re-seeding q2 from q between sweeps
// (section 9's dimensional-splitting note).
func newGridState(nx, ny int, lengthMeters float32) *GridState {
	size := nx * ny * 4
	dx := lengthMeters / float32(nx)
	return &GridState{
		nx: nx, ny: ny,
		dx: dx, dy: dx,
		q:    make([]float32, size),
		q2:   make([]float32, size),
		ref2: make([]float32, size),
	}
}

// idx returns the base offset of cell (i,j) into a flattened Q buffer.
func (g *GridState) idx(i, j int) int {
	return (j*g.nx + i) * 4
}

// at reads the 4-tuple at (i,j) from the committed buffer.
func (g *GridState) at(i, j int) [4]float32 {
	b := g.idx(i, j)
	return [4]float32{g.q[b], g.q[b+1], g.q[b+2], g.q[b+3]}
}

// initialize fills Q with the ambient conservative tuple everywhere.
func (g *GridState) initialize(ambient primitiveState) {
	c := ambient.conservative()
	for cell := 0; cell < g.nx*g.ny; cell++ {
		b := cell * 4
		g.q[b+0], g.q[b+1], g.q[b+2], g.q[b+3] = c[0], c[1], c[2], c[3]
	}
}

// commit copies the tentative buffer into the committed one.
func (g *GridState) commit() {
	copy(g.q, g.q2)
}

// reinitializeToAmbient refills Q with the ambient tuple without touching
// t. Used both by the divergence-recovery path (t must be preserved, per
// spec.md section 9's frozen "possibly-buggy" behavior) and as a step
// inside the full reset operation, which separately zeroes t first.
func (g *GridState) reinitializeToAmbient(ambient primitiveState) {
	g.initialize(ambient)
}
