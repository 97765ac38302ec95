package solver

import (
	"runtime"
	"sync"
)

const (
	cflSpeedFloor = 10.0
	cflDtCap      = 5e-5
)

// computeDt scans the committed field for the CFL-limiting wave speed
// and returns the capped time step (spec.md section 4.4).
func computeDt(g *GridState, cfl float32) float32 {
	var maxSpeed float32 = cflSpeedFloor
	for cell := 0; cell < g.nx*g.ny; cell++ {
		b := cell * 4
		rho, rhoU, rhoV, rhoE := g.q[b], g.q[b+1], g.q[b+2], g.q[b+3]
		rhoSafe := maxf(rho, 1e-6)
		u := rhoU / rhoSafe
		v := rhoV / rhoSafe
		p := pressureFromConservative(rho, rhoU, rhoV, rhoE)
		c := soundSpeed(p, rho)
		speed := sqrtf(u*u+v*v) + c
		if speed > maxSpeed {
			maxSpeed = speed
		}
	}
	dt := cfl * minf(g.dx, g.dy) / maxSpeed
	if dt > cflDtCap {
		dt = cflDtCap
	}
	return dt
}

// parallelOver runs fn(lo, hi) across roughly GOMAXPROCS worker slices of
// [0, n), grounded on the teacher's game/parallel.go worker-pool pattern.
// Safe here because each sweep direction only ever touches cells within
// its own row (X-sweep) or column (Y-sweep), so slices never race.
func parallelOver(n int, fn func(lo, hi int)) {
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// xSweep seeds Q' <- Q then applies the x-direction Roe flux divergence
// to every interior face, one row of cells at a time.
func xSweep(g *GridState, dt float32) {
	copy(g.q2, g.q)
	coeff := dt / g.dx
	parallelOver(g.ny, func(loJ, hiJ int) {
		for j := loJ; j < hiJ; j++ {
			for i := 0; i < g.nx-1; i++ {
				left := g.at(i, j)
				right := g.at(i+1, j)
				flux := roeFlux(left, right, 1, 0)

				lb := g.idx(i, j)
				rb := g.idx(i+1, j)
				for k := 0; k < 4; k++ {
					g.q2[lb+k] -= coeff * flux[k]
					g.q2[rb+k] += coeff * flux[k]
				}
			}
		}
	})
}

// ySweep continues accumulating into Q' left by the X-sweep (dimensional
// splitting via accumulation, not re-seeding — spec.md section 9). It
// reads from the fixed ref2 snapshot taken immediately before the sweep
// so that, like the X-sweep, face processing order has no effect on the
// result.
func ySweep(g *GridState, dt float32) {
	copy(g.ref2, g.q2)
	coeff := dt / g.dy
	parallelOver(g.nx, func(loI, hiI int) {
		for i := loI; i < hiI; i++ {
			for j := 0; j < g.ny-1; j++ {
				left := g.atRef(i, j)
				right := g.atRef(i, j+1)
				flux := roeFlux(left, right, 0, 1)

				lb := g.idx(i, j)
				rb := g.idx(i, j+1)
				for k := 0; k < 4; k++ {
					g.q2[lb+k] -= coeff * flux[k]
					g.q2[rb+k] += coeff * flux[k]
				}
			}
		}
	})
}

// positivityRepair enforces the density/pressure floors on Q' in place
// and reports whether the field is stable (finite throughout). Spec.md
// section 4.4.
func positivityRepair(g *GridState) bool {
	for cell := 0; cell < g.nx*g.ny; cell++ {
		b := cell * 4
		rho, rhoU, rhoV, rhoE := g.q2[b], g.q2[b+1], g.q2[b+2], g.q2[b+3]

		if !finite(rho) || !finite(rhoE) {
			return false
		}
		if rho < densityFloor {
			rho = densityFloor
			rhoU, rhoV = 0, 0
		}

		rhoSafe := maxf(rho, 1e-6)
		u := rhoU / rhoSafe
		v := rhoV / rhoSafe
		if !finite(u) || !finite(v) {
			return false
		}

		p := pressureFromConservative(rho, rhoU, rhoV, rhoE)
		if !finite(p) || p < pressureFloor {
			p = pressureFloor
			rhoE = energyFromPrimitive(rho, u, v, p)
		}

		g.q2[b+0] = rho
		g.q2[b+1] = rhoU
		g.q2[b+2] = rhoV
		g.q2[b+3] = rhoE
	}
	return true
}

// atRef reads the 4-tuple at (i,j) from the pre-Y-sweep reference snapshot.
func (g *GridState) atRef(i, j int) [4]float32 {
	b := g.idx(i, j)
	return [4]float32{g.ref2[b], g.ref2[b+1], g.ref2[b+2], g.ref2[b+3]}
}
