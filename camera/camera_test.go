package camera

import (
	"math"
	"testing"
)

func TestNewFitsWorldToViewport(t *testing.T) {
	cam := New(1280, 720, 0.9, 0.45)

	if cam.X != 0.45 || cam.Y != 0.225 {
		t.Errorf("expected camera centered at (0.45, 0.225), got (%f, %f)", cam.X, cam.Y)
	}
	// 1280/0.9 = 1422.2, 720/0.45 = 1600; fit zoom is the smaller.
	want := float32(1280.0 / 0.9)
	if math.Abs(float64(cam.Zoom-want)) > 0.01 {
		t.Errorf("expected zoom %f, got %f", want, cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 0.9, 0.45)

	sx, sy := cam.WorldToScreen(cam.X, cam.Y)
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-360)) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 0.9, 0.45)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 0.9, 0.45)

	cam.SetZoom(0.01)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to MinZoom %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.SetZoom(cam.MaxZoom * 10)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to MaxZoom %f, got %f", cam.MaxZoom, cam.Zoom)
	}
}

func TestPanClampedToWorldBounds(t *testing.T) {
	cam := New(1280, 720, 0.9, 0.45)
	cam.SetZoom(cam.MinZoom * 4)

	cam.Pan(-1e6, 0)
	halfW := cam.ViewportW / (2 * cam.Zoom)
	if cam.X < halfW-1e-4 {
		t.Errorf("expected X clamped to >= %f, got %f", halfW, cam.X)
	}

	cam.Pan(1e6, 0)
	if cam.X > cam.WorldW-halfW+1e-4 {
		t.Errorf("expected X clamped to <= %f, got %f", cam.WorldW-halfW, cam.X)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 0.9, 0.45)
	cam.X = 0.1
	cam.Y = 0.1
	cam.Zoom = cam.MaxZoom

	cam.Reset()

	if cam.X != 0.45 || cam.Y != 0.225 {
		t.Errorf("expected position (0.45, 0.225), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom reset to MinZoom %f, got %f", cam.MinZoom, cam.Zoom)
	}
}
