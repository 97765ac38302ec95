package config

import "testing"

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Grid.Nx <= 0 || cfg.Grid.Ny <= 0 {
		t.Fatalf("expected positive grid dimensions, got %dx%d", cfg.Grid.Nx, cfg.Grid.Ny)
	}
	if cfg.Chamber.PressureTotal <= 0 {
		t.Errorf("expected positive default pressure_total, got %v", cfg.Chamber.PressureTotal)
	}
	if cfg.Stepping.CFL <= 0 || cfg.Stepping.CFL > 1 {
		t.Errorf("expected CFL in (0,1], got %v", cfg.Stepping.CFL)
	}
}

func TestLoadComputesDerived(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantDx := cfg.Grid.LengthMeters / float64(cfg.Grid.Nx)
	if cfg.Derived.Dx != wantDx {
		t.Errorf("expected Dx %v, got %v", wantDx, cfg.Derived.Dx)
	}
	if cfg.Derived.ApertureCenter != cfg.Grid.Ny/2 {
		t.Errorf("expected ApertureCenter %v, got %v", cfg.Grid.Ny/2, cfg.Derived.ApertureCenter)
	}
	if cfg.Derived.ApertureRadius != cfg.Grid.Ny/8 {
		t.Errorf("expected ApertureRadius %v, got %v", cfg.Grid.Ny/8, cfg.Derived.ApertureRadius)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() { global = saved }()

	defer func() {
		if recover() == nil {
			t.Fatal("expected Cfg() to panic before Init()")
		}
	}()
	Cfg()
}

func TestMustInitThenCfg(t *testing.T) {
	MustInit("")
	if Cfg() == nil {
		t.Fatal("expected non-nil config after MustInit")
	}
}
