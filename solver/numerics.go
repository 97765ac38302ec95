package solver

import "math"

// Gas constants shared by every component of the core.
const (
	gamma = 1.4      // ratio of specific heats, air
	gasR  = 287.05    // J/(kg*K), specific gas constant for air

	densityFloor  = 0.05  // rho_min, enforced at commit
	pressureFloor = 100.0 // p_min, enforced at commit

	ambientTempK = 300.0
)

// pressureFromConservative recovers static pressure from a conservative
// 4-tuple, guarding against division blow-up on a near-vacuum cell and
// clamping to the permissive intra-step floor (not the commit-time
// pressureFloor — see design notes in SPEC_FULL.md).
func pressureFromConservative(rho, rhoU, rhoV, rhoE float32) float32 {
	rhoSafe := rho
	if rhoSafe < 1e-4 {
		rhoSafe = 1e-4
	}
	p := (gamma - 1) * (rhoE - 0.5*(rhoU*rhoU+rhoV*rhoV)/rhoSafe)
	if p < 10.0 {
		return 10.0
	}
	return p
}

// energyFromPrimitive computes total energy per unit volume from primitives.
func energyFromPrimitive(rho, u, v, p float32) float32 {
	return p/(gamma-1) + 0.5*rho*(u*u+v*v)
}

func soundSpeed(p, rho float32) float32 {
	rhoSafe := rho
	if rhoSafe < 1e-6 {
		rhoSafe = 1e-6
	}
	return sqrtf(gamma * p / rhoSafe)
}

func sqrtf(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(x)))
}

func powf(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

func logf(x float32) float32 {
	return float32(math.Log(float64(x)))
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func finite(x float32) bool {
	return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
}
