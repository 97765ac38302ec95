package solver

import "testing"

func TestNewRejectsTooSmallGrid(t *testing.T) {
	if _, err := New(2, 10); err == nil {
		t.Fatal("expected error for nx < 4")
	}
	if _, err := New(10, 3); err == nil {
		t.Fatal("expected error for ny < 4")
	}
}

func TestNewSeedsAmbient(t *testing.T) {
	fs, err := New(20, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	field := fs.ScalarField(FieldDensity)
	for i, v := range field.Values {
		if v != DefaultAmbientDensity {
			t.Fatalf("cell %d: expected ambient density %v, got %v", i, DefaultAmbientDensity, v)
		}
	}
}

func TestUpdateBoundaryRejectsNonPositive(t *testing.T) {
	fs, _ := New(20, 10)
	cases := []struct {
		pt, tt, m, pa float32
	}{
		{0, 1000, 2, 101325},
		{350000, 0, 2, 101325},
		{350000, 1000, -1, 101325},
		{350000, 1000, 2, 0},
	}
	for _, c := range cases {
		if err := fs.UpdateBoundary(c.pt, c.tt, c.m, c.pa); err == nil {
			t.Errorf("expected error for %+v", c)
		}
	}
}

func TestScalarFieldIsPure(t *testing.T) {
	fs, _ := New(20, 10)
	_ = fs.UpdateBoundary(350000, 1000, 2, 101325)
	fs.Reset()
	fs.Step(0.5)

	a := fs.ScalarField(FieldPressure)
	b := fs.ScalarField(FieldPressure)
	for i := range a.Values {
		if a.Values[i] != b.Values[i] {
			t.Fatalf("cell %d: scalar_field not pure: %v vs %v", i, a.Values[i], b.Values[i])
		}
	}
}

func TestResetIsIdempotent(t *testing.T) {
	fs, _ := New(20, 10)
	_ = fs.UpdateBoundary(350000, 1000, 2, 101325)
	fs.Reset()
	first := fs.Snapshot()

	fs.Reset()
	second := fs.Snapshot()

	for i := range first.Q {
		if first.Q[i] != second.Q[i] {
			t.Fatalf("cell %d: reset not idempotent: %v vs %v", i, first.Q[i], second.Q[i])
		}
	}
}

func TestResetDeterminism(t *testing.T) {
	fs, _ := New(20, 10)
	_ = fs.UpdateBoundary(350000, 1000, 2, 101325)
	fs.Reset()

	for i := 0; i < 25; i++ {
		fs.Step(0.5)
	}
	fs.Reset()
	afterSteps := fs.Snapshot()

	fresh, _ := New(20, 10)
	_ = fresh.UpdateBoundary(350000, 1000, 2, 101325)
	fresh.Reset()
	freshSnap := fresh.Snapshot()

	for i := range afterSteps.Q {
		if afterSteps.Q[i] != freshSnap.Q[i] {
			t.Fatalf("cell %d: reset not deterministic: %v vs %v", i, afterSteps.Q[i], freshSnap.Q[i])
		}
	}
}

func TestSnapshotRestoreRoundtrip(t *testing.T) {
	fs, _ := New(20, 10)
	_ = fs.UpdateBoundary(350000, 1000, 2, 101325)
	fs.Reset()
	for i := 0; i < 10; i++ {
		fs.Step(0.5)
	}
	snap := fs.Snapshot()

	for i := 0; i < 10; i++ {
		fs.Step(0.5)
	}
	fs.Restore(snap)

	restored := fs.Snapshot()
	if restored.T != snap.T {
		t.Errorf("expected restored T %v, got %v", snap.T, restored.T)
	}
	for i := range snap.Q {
		if snap.Q[i] != restored.Q[i] {
			t.Fatalf("cell %d: restore mismatch: %v vs %v", i, snap.Q[i], restored.Q[i])
		}
	}
}

func TestUniformAmbientStaysNearAmbientWithZeroMachInlet(t *testing.T) {
	fs, _ := New(20, 10)
	_ = fs.UpdateBoundary(101325, 300, 0, 101325)
	fs.Reset()

	for i := 0; i < 50; i++ {
		fs.Step(0.5)
	}

	field := fs.ScalarField(FieldDensity)
	ambientRho := fs.boundary.ambient.rho
	for j := 1; j < fs.Ny()-1; j++ {
		for i := 1; i < fs.Nx()-1; i++ {
			v := field.Values[j*fs.Nx()+i]
			if absf(v-ambientRho) > 1e-3*ambientRho {
				t.Fatalf("cell (%d,%d): density %v strayed from ambient %v", i, j, v, ambientRho)
			}
		}
	}
}
