package solver

// BoundaryModel translates user-facing chamber parameters into the two
// cached primitive states and imprints boundary conditions on the
// tentative buffer after each sweep.
type BoundaryModel struct {
	pressureTotal   float32
	tempTotal       float32
	mach            float32
	pressureAmbient float32

	inlet   primitiveState
	ambient primitiveState
}

// newBoundaryModel computes both cached states from the given parameters.
// Callers must validate positivity before calling (see FluidSolver.UpdateBoundary).
func newBoundaryModel(pressureTotal, tempTotal, mach, pressureAmbient float32) *BoundaryModel {
	b := &BoundaryModel{}
	b.update(pressureTotal, tempTotal, mach, pressureAmbient)
	return b
}

// update recomputes inlet and ambient states per the isentropic relations
// of spec.md section 4.2.
func (b *BoundaryModel) update(pressureTotal, tempTotal, mach, pressureAmbient float32) {
	b.pressureTotal = pressureTotal
	b.tempTotal = tempTotal
	b.mach = mach
	b.pressureAmbient = pressureAmbient

	m2 := mach * mach
	factor := 1 + 0.2*m2

	tStatic := tempTotal / factor
	pStatic := pressureTotal / powf(factor, gamma/(gamma-1))
	rhoStatic := pStatic / (gasR * tStatic)
	cStatic := sqrtf(gamma * gasR * tStatic)
	uStatic := mach * cStatic

	b.inlet = primitiveState{
		rho: rhoStatic,
		u:   uStatic,
		v:   0,
		p:   pStatic,
		e:   energyFromPrimitive(rhoStatic, uStatic, 0, pStatic),
	}

	rhoAmbient := pressureAmbient / (gasR * ambientTempK)
	b.ambient = primitiveState{
		rho: rhoAmbient,
		u:   0,
		v:   0,
		p:   pressureAmbient,
		e:   energyFromPrimitive(rhoAmbient, 0, 0, pressureAmbient),
	}
}

// npr returns the nozzle pressure ratio, pressureTotal/pressureAmbient.
func (b *BoundaryModel) npr() float32 {
	return b.pressureTotal / b.pressureAmbient
}

// imprint writes inlet/outlet/far-field boundary conditions onto g.q2.
// Must run after both sweeps and before positivity repair (spec.md 4.2).
func (b *BoundaryModel) imprint(g *GridState) {
	nx, ny := g.nx, g.ny
	jc := ny / 2
	r := ny / 8

	inletC := b.inlet.conservative()
	ambientC := b.ambient.conservative()

	// Left column: inlet aperture, slip wall elsewhere.
	for j := 0; j < ny; j++ {
		dest := g.idx(0, j)
		if absInt(j-jc) <= r {
			g.q2[dest+0] = inletC[0]
			g.q2[dest+1] = inletC[1]
			g.q2[dest+2] = inletC[2]
			g.q2[dest+3] = inletC[3]
			continue
		}
		// Slip wall: density and y-momentum copied from i=1, x-momentum
		// zeroed, energy recomputed to preserve i=1's pressure at the
		// zeroed velocity. Faithful to spec.md 4.2 / 9(a) — the source's
		// exact mixed formula, not an inferred "correct" slip condition.
		src := g.idx(1, j)
		rho1, rhoU1, rhoV1, rhoE1 := g.q2[src+0], g.q2[src+1], g.q2[src+2], g.q2[src+3]
		p1 := pressureFromConservative(rho1, rhoU1, rhoV1, rhoE1)
		vWall := rhoV1 / maxf(rho1, 1e-4)
		g.q2[dest+0] = rho1
		g.q2[dest+1] = 0
		g.q2[dest+2] = rhoV1
		g.q2[dest+3] = energyFromPrimitive(rho1, 0, vWall, p1)
	}

	// Right column: zero-gradient outlet.
	for j := 0; j < ny; j++ {
		src := g.idx(nx-2, j)
		dest := g.idx(nx-1, j)
		copy(g.q2[dest:dest+4], g.q2[src:src+4])
	}

	// Top and bottom rows: hard-set ambient.
	for i := 0; i < nx; i++ {
		top := g.idx(i, ny-1)
		bot := g.idx(i, 0)
		g.q2[top+0], g.q2[top+1], g.q2[top+2], g.q2[top+3] = ambientC[0], ambientC[1], ambientC[2], ambientC[3]
		g.q2[bot+0], g.q2[bot+1], g.q2[bot+2], g.q2[bot+3] = ambientC[0], ambientC[1], ambientC[2], ambientC[3]
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
