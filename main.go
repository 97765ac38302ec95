package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/aerolab-sim/jetflow/camera"
	"github.com/aerolab-sim/jetflow/config"
	"github.com/aerolab-sim/jetflow/game"
	"github.com/aerolab-sim/jetflow/jetlog"
	"github.com/aerolab-sim/jetflow/solver"
	"github.com/aerolab-sim/jetflow/visual"
)

var (
	configPath = flag.String("config", "", "Path to a YAML config file overriding the embedded defaults")
	headless   = flag.Bool("headless", false, "Run without graphics (for logging/benchmarking)")
	maxTicks   = flag.Int("max-ticks", 0, "Stop after N ticks (0 = run forever, useful with -headless)")
	logFile    = flag.String("logfile", "", "Write logs to file instead of stdout")
	perfLog    = flag.Bool("perf", false, "Enable periodic performance logging")
	speed      = flag.Float64("speed", 0, "Override the configured simulation speed (0 = use config)")
	outDir     = flag.String("out", "", "Override the configured telemetry output directory")
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

func main() {
	flag.Parse()

	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		jetlog.SetOutput(f)
	}

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *speed > 0 {
		cfg.Stepping.SimulationSpeed = *speed
	}
	if *outDir != "" {
		cfg.Telemetry.OutputDir = *outDir
	}

	sim, err := game.NewSimulator(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to construct simulator: %v\n", err)
		os.Exit(1)
	}
	defer sim.Close()

	if *headless {
		runHeadless(sim)
		return
	}
	runGraphics(sim)
}

func runHeadless(sim *game.Simulator) {
	jetlog.Logf("jetflow: starting headless run (max-ticks=%d, speed=%.2f)", *maxTicks, sim.TickRate())

	start := time.Now()
	lastReport := start
	reportInterval := 10 * time.Second

	for {
		if *maxTicks > 0 && sim.Tick() >= *maxTicks {
			jetlog.Logf("jetflow: reached max-ticks (%d), stopping", *maxTicks)
			break
		}
		sim.AdvanceFrame()

		if *perfLog && time.Since(lastReport) >= reportInterval {
			sim.LogPerf()
			lastReport = time.Now()
		}
	}

	elapsed := time.Since(start)
	jetlog.Logf("jetflow: run complete, %d ticks in %s (%.0f ticks/sec)",
		sim.Tick(), elapsed.Round(time.Millisecond), float64(sim.Tick())/elapsed.Seconds())
}

func runGraphics(sim *game.Simulator) {
	rl.InitWindow(screenWidth, screenHeight, "jetflow")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	fieldW, fieldH := sim.Solver().Nx(), sim.Solver().Ny()
	tex := visual.NewFieldTexture(fieldW, fieldH)
	defer tex.Unload()

	cfg := config.Cfg()
	viewportW := float32(screenWidth - panelWidth)
	cam := camera.New(viewportW, screenHeight, float32(cfg.Grid.LengthMeters), float32(cfg.Grid.LengthMeters)*float32(fieldH)/float32(fieldW))

	mode := solver.FieldMach
	paused := false
	lastPerfLog := time.Now()

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeySpace) {
			paused = !paused
		}
		if rl.IsKeyPressed(rl.KeyR) {
			sim.Solver().Reset()
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			cam.ZoomBy(1 + wheel*0.1)
		}
		if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
			d := rl.GetMouseDelta()
			cam.Pan(-d.X, -d.Y)
		}

		if !paused {
			sim.AdvanceFrame()
		}

		if *perfLog && time.Since(lastPerfLog) >= 2*time.Second {
			sim.LogPerf()
			lastPerfLog = time.Now()
		}

		field := sim.Solver().ScalarField(mode)
		tex.Update(field, mode)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		tex.Draw(fieldDstRect(cam))
		mode, paused = drawPanel(sim, mode, paused)

		rl.EndDrawing()
	}
}

const panelWidth = 260

// fieldDstRect maps the world rectangle [0,WorldW]x[0,WorldH] through the
// camera to screen pixels, giving the texture blit its pan/zoom.
func fieldDstRect(cam *camera.Camera) rl.Rectangle {
	x0, y0 := cam.WorldToScreen(0, 0)
	x1, y1 := cam.WorldToScreen(cam.WorldW, cam.WorldH)
	return rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func drawPanel(sim *game.Simulator, mode solver.FieldMode, paused bool) (solver.FieldMode, bool) {
	panelX := float32(screenWidth - panelWidth + 10)
	y := float32(10)

	rl.DrawRectangle(int32(screenWidth-panelWidth), 0, panelWidth, screenHeight, rl.Fade(rl.LightGray, 0.9))
	rl.DrawText("jetflow", int32(panelX), int32(y), 20, rl.DarkGray)
	y += 30

	status := "running"
	if paused {
		status = "paused (space)"
	}
	rl.DrawText(fmt.Sprintf("%s  t=%.4fs", status, sim.Solver().T()), int32(panelX), int32(y), 14, rl.Gray)
	y += 25

	rl.DrawText("Field (1-6 keys)", int32(panelX), int32(y), 14, rl.Gray)
	y += 18
	rl.DrawText(fieldModeName(mode), int32(panelX), int32(y), 16, rl.DarkGray)
	y += 30

	if rl.IsKeyPressed(rl.KeyOne) {
		mode = solver.FieldDensity
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		mode = solver.FieldPressure
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		mode = solver.FieldVelocity
	}
	if rl.IsKeyPressed(rl.KeyFour) {
		mode = solver.FieldTemperature
	}
	if rl.IsKeyPressed(rl.KeyFive) {
		mode = solver.FieldMach
	}
	if rl.IsKeyPressed(rl.KeySix) {
		mode = solver.FieldSchlieren
	}

	npr := float64(sim.Solver().NPR())
	rl.DrawText("NPR", int32(panelX), int32(y), 14, rl.Gray)
	y += 18
	newNPR := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: y, Width: panelWidth - 80, Height: 20},
		"1.0", "10.0",
		float32(npr), 1.0, 10.0,
	)
	rl.DrawText(fmt.Sprintf("%.2f", newNPR), int32(panelX+panelWidth-70), int32(y+2), 14, rl.DarkGray)
	y += 35

	if float64(newNPR) != npr {
		_ = sim.UpdateChamber(float64(newNPR)*101325.0, 1000, 2.0, 101325.0)
	}

	curSpeed := sim.TickRate()
	rl.DrawText("Speed", int32(panelX), int32(y), 14, rl.Gray)
	y += 18
	newSpeed := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: y, Width: panelWidth - 80, Height: 20},
		"0", "10",
		float32(curSpeed), 0, 10,
	)
	rl.DrawText(fmt.Sprintf("%.1f", newSpeed), int32(panelX+panelWidth-70), int32(y+2), 14, rl.DarkGray)
	y += 35
	if float64(newSpeed) != curSpeed {
		sim.SetSimulationSpeed(float64(newSpeed))
	}

	if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: panelWidth - 40, Height: 25}, "Reset (R)") {
		sim.Solver().Reset()
	}

	return mode, paused
}

func fieldModeName(mode solver.FieldMode) string {
	switch mode {
	case solver.FieldDensity:
		return "density"
	case solver.FieldPressure:
		return "pressure"
	case solver.FieldVelocity:
		return "velocity"
	case solver.FieldTemperature:
		return "temperature"
	case solver.FieldMach:
		return "mach"
	case solver.FieldSchlieren:
		return "schlieren"
	default:
		return "?"
	}
}
