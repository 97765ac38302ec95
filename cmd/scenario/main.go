// Scenario runs one of the named reference configurations from the
// jet solver's testable-properties catalogue and reports the resulting
// centerline Mach profile. Headless, no raylib dependency.
//
// Usage: go run ./cmd/scenario -name underexpanded -steps 3000
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aerolab-sim/jetflow/solver"
)

type scenario struct {
	name   string
	nx, ny int
	cfl    float32

	pressureTotal, tempTotal, mach, pressureAmbient float32
}

var scenarios = map[string]scenario{
	"expanded": {
		name: "perfectly expanded jet",
		nx: 300, ny: 150, cfl: 0.5,
		pressureTotal: 792848, tempTotal: 1000, mach: 2.0, pressureAmbient: 101325,
	},
	"underexpanded": {
		name: "underexpanded jet (default)",
		nx: 300, ny: 150, cfl: 0.5,
		pressureTotal: 350000, tempTotal: 1000, mach: 2.0, pressureAmbient: 101325,
	},
	"subsonic": {
		name: "subsonic laminar",
		nx: 300, ny: 150, cfl: 0.8,
		pressureTotal: 120000, tempTotal: 1000, mach: 0.8, pressureAmbient: 101325,
	},
	"divergence": {
		name: "divergence recovery",
		nx: 300, ny: 150, cfl: 0.95,
		pressureTotal: 5e6, tempTotal: 1000, mach: 4.0, pressureAmbient: 1e4,
	},
}

func main() {
	name := flag.String("name", "underexpanded", "scenario name: expanded, underexpanded, subsonic, divergence")
	steps := flag.Int("steps", 2000, "number of steps to run")
	flag.Parse()

	sc, ok := scenarios[*name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown scenario %q (want one of: expanded, underexpanded, subsonic, divergence)\n", *name)
		os.Exit(1)
	}

	fs, err := solver.New(sc.nx, sc.ny)
	if err != nil {
		fmt.Fprintf(os.Stderr, "construct: %v\n", err)
		os.Exit(1)
	}
	if err := fs.UpdateBoundary(sc.pressureTotal, sc.tempTotal, sc.mach, sc.pressureAmbient); err != nil {
		fmt.Fprintf(os.Stderr, "update_boundary: %v\n", err)
		os.Exit(1)
	}
	fs.Reset()

	resets := 0
	for i := 0; i < *steps; i++ {
		fs.Step(sc.cfl)
		if fs.LastStepReset() {
			resets++
		}
	}

	mach := fs.ScalarField(solver.FieldMach)
	jc := fs.Ny() / 2
	fmt.Printf("scenario: %s\n", sc.name)
	fmt.Printf("ran %d steps, %d resets, t=%.6fs\n", *steps, resets, fs.T())
	row := mach.Values[jc*fs.Nx() : (jc+1)*fs.Nx()]
	rowMin, rowMax := row[0], row[0]
	for _, m := range row[1:] {
		if m < rowMin {
			rowMin = m
		}
		if m > rowMax {
			rowMax = m
		}
	}
	fmt.Printf("centerline mach (row %d), min=%.3f max=%.3f\n", jc, rowMin, rowMax)

	fmt.Print("centerline profile (every 20th column): ")
	for i := 0; i < fs.Nx(); i += 20 {
		fmt.Printf("%.2f ", mach.Values[jc*fs.Nx()+i])
	}
	fmt.Println()
}
