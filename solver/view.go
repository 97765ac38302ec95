package solver

import "gonum.org/v1/gonum/floats"

// FieldMode selects which scalar quantity ScalarField projects from Q.
type FieldMode int

const (
	FieldDensity FieldMode = iota
	FieldPressure
	FieldVelocity
	FieldTemperature
	FieldMach
	FieldSchlieren
)

// ScalarField is a freshly allocated read-only projection of the
// currently committed Q, plus its observed extrema (spec.md section 4.5).
type ScalarField struct {
	Values []float32
	Min    float32
	Max    float32
}

// scalarField computes one named scalar mode over the committed buffer.
// It never mutates GridState.
func scalarField(g *GridState, mode FieldMode) ScalarField {
	nx, ny := g.nx, g.ny
	out := make([]float32, nx*ny)

	for cell := 0; cell < nx*ny; cell++ {
		b := cell * 4
		rho, rhoU, rhoV, rhoE := g.q[b], g.q[b+1], g.q[b+2], g.q[b+3]
		rhoSafe := rho + 1e-9
		u := rhoU / rhoSafe
		v := rhoV / rhoSafe
		p := pressureFromConservative(rho, rhoU, rhoV, rhoE)

		switch mode {
		case FieldDensity:
			out[cell] = rho
		case FieldPressure:
			out[cell] = p
		case FieldVelocity:
			out[cell] = sqrtf(u*u + v*v)
		case FieldTemperature:
			out[cell] = p / (rhoSafe * gasR)
		case FieldMach:
			c := soundSpeed(p, rho)
			out[cell] = sqrtf(u*u+v*v) / maxf(c, 1e-9)
		case FieldSchlieren:
			out[cell] = 0 // filled by schlierenField below
		}
	}

	if mode == FieldSchlieren {
		schlierenField(g, out)
	}

	return ScalarField{
		Values: out,
		Min:    float32(floats.Min(toFloat64(out))),
		Max:    float32(floats.Max(toFloat64(out))),
	}
}

// schlierenField fills out with log(1+10*||grad(rho)||) via central
// differences on interior cells; grid borders stay zero.
func schlierenField(g *GridState, out []float32) {
	nx, ny := g.nx, g.ny
	for j := 1; j < ny-1; j++ {
		for i := 1; i < nx-1; i++ {
			rhoE := g.q[g.idx(i+1, j)]
			rhoW := g.q[g.idx(i-1, j)]
			rhoN := g.q[g.idx(i, j+1)]
			rhoS := g.q[g.idx(i, j-1)]
			drdx := (rhoE - rhoW) / (2 * g.dx)
			drdy := (rhoN - rhoS) / (2 * g.dy)
			grad := sqrtf(drdx*drdx + drdy*drdy)
			out[j*nx+i] = logf(1 + 10*grad)
		}
	}
}

func toFloat64(xs []float32) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}
