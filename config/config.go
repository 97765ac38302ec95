// Package config provides configuration loading and access for the jet
// simulator driver, grounded on the teacher's config/config.go: an
// embedded YAML default merged with an optional user override file.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all driver-facing configuration parameters. The solver
// core itself (package solver) never reads this directly — the driver
// translates it into calls to solver.New/UpdateBoundary/Step.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Chamber   ChamberConfig   `yaml:"chamber"`
	Stepping  SteppingConfig  `yaml:"stepping"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	Derived DerivedConfig `yaml:"-"`
}

// GridConfig holds grid geometry parameters.
type GridConfig struct {
	Nx           int     `yaml:"nx"`
	Ny           int     `yaml:"ny"`
	LengthMeters float64 `yaml:"length_meters"`
}

// ChamberConfig holds the four boundary parameters of the update_boundary
// operation (spec.md section 6).
type ChamberConfig struct {
	PressureTotal   float64 `yaml:"pressure_total"`
	TempTotal       float64 `yaml:"temp_total"`
	Mach            float64 `yaml:"mach"`
	PressureAmbient float64 `yaml:"pressure_ambient"`
}

// SteppingConfig holds time-stepping parameters.
type SteppingConfig struct {
	CFL              float64 `yaml:"cfl"`
	SimulationSpeed  float64 `yaml:"simulation_speed"`
	MaxStepsPerFrame int     `yaml:"max_steps_per_frame"`
}

// TelemetryConfig holds telemetry/perf logging parameters.
type TelemetryConfig struct {
	OutputDir  string `yaml:"output_dir"`
	PerfWindow int    `yaml:"perf_window"`
	LogResets  bool   `yaml:"log_resets"`
}

// DerivedConfig holds values computed after loading.
type DerivedConfig struct {
	Dx             float64 // LengthMeters / Nx
	ApertureRadius int     // floor(Ny/8)
	ApertureCenter int     // floor(Ny/2)
}

var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

func (c *Config) computeDerived() {
	c.Derived.Dx = c.Grid.LengthMeters / float64(c.Grid.Nx)
	c.Derived.ApertureRadius = c.Grid.Ny / 8
	c.Derived.ApertureCenter = c.Grid.Ny / 2
}
