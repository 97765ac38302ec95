// Package visual renders a solver.ScalarField to a raylib texture.
// Grounded on the teacher's renderer.ResourceFogRenderer texture-upload
// pattern (GenImageColor/LoadTextureFromImage/UpdateTexture), simplified
// to a CPU colormap since the jet field needs no GPU shader.
package visual

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/aerolab-sim/jetflow/solver"
)

// FieldTexture owns the GPU texture the scalar field is blitted into
// each frame.
type FieldTexture struct {
	tex         rl.Texture2D
	w, h        int
	initialized bool
}

// NewFieldTexture allocates a w x h texture. Must be called after the
// raylib window exists.
func NewFieldTexture(w, h int) *FieldTexture {
	img := rl.GenImageColor(w, h, rl.Black)
	tex := rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(tex, rl.FilterPoint)
	rl.UnloadImage(img)
	return &FieldTexture{tex: tex, w: w, h: h, initialized: true}
}

// Update converts a scalar field to a colormapped pixel buffer and
// uploads it to the GPU.
func (f *FieldTexture) Update(field solver.ScalarField, mode solver.FieldMode) {
	if !f.initialized || len(field.Values) != f.w*f.h {
		return
	}

	pixels := make([]color.RGBA, f.w*f.h)
	span := field.Max - field.Min
	for i, v := range field.Values {
		var t float32
		if span > 1e-12 {
			t = (v - field.Min) / span
		}
		pixels[i] = colorize(t, mode)
	}
	rl.UpdateTexture(f.tex, pixels)
}

// Draw blits the field texture into dstRect, stretched to fill it.
func (f *FieldTexture) Draw(dstRect rl.Rectangle) {
	if !f.initialized {
		return
	}
	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(f.w), Height: float32(f.h)}
	rl.DrawTexturePro(f.tex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
}

// Unload frees the GPU texture.
func (f *FieldTexture) Unload() {
	if !f.initialized {
		return
	}
	rl.UnloadTexture(f.tex)
	f.initialized = false
}

// colorize maps a normalized value t in [0,1] to a color. Schlieren uses
// a grayscale ramp (matching the optical shadowgraph convention); every
// other field mode uses a blue-to-red thermal ramp.
func colorize(t float32, mode solver.FieldMode) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	if mode == solver.FieldSchlieren {
		g := uint8(t * 255)
		return color.RGBA{R: g, G: g, B: g, A: 255}
	}

	// Blue (cold/low) -> green -> yellow -> red (hot/high), a cheap
	// four-stop thermal ramp without a lookup table.
	switch {
	case t < 0.33:
		u := t / 0.33
		return color.RGBA{R: 0, G: uint8(u * 255), B: uint8((1 - u) * 255), A: 255}
	case t < 0.66:
		u := (t - 0.33) / 0.33
		return color.RGBA{R: uint8(u * 255), G: 255, B: 0, A: 255}
	default:
		u := (t - 0.66) / 0.34
		return color.RGBA{R: 255, G: uint8((1 - u) * 255), B: 0, A: 255}
	}
}
