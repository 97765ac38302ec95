// Package camera provides a 2D pan/zoom viewport over a fixed
// rectangular field, adapted from the teacher's toroidal game-world
// camera for the jet solver's non-periodic domain (no wrap-around, no
// ghost copies — the grid has hard boundaries on all four sides).
package camera

// Camera controls the viewport into the scalar-field texture blitted by
// the driver each frame.
type Camera struct {
	X, Y                 float32 // center, in world (meters) coordinates
	Zoom                 float32 // 1.0 = 1:1
	ViewportW, ViewportH float32
	WorldW, WorldH       float32
	MinZoom, MaxZoom     float32
}

// New creates a camera centered on the world with the zoom that exactly
// fits the world inside the viewport.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	minZoom := fitZoom(viewportW, viewportH, worldW, worldH)
	return &Camera{
		X: worldW / 2, Y: worldH / 2,
		Zoom:      minZoom,
		ViewportW: viewportW, ViewportH: viewportH,
		WorldW: worldW, WorldH: worldH,
		MinZoom: minZoom, MaxZoom: minZoom * 8,
	}
}

func fitZoom(viewportW, viewportH, worldW, worldH float32) float32 {
	zx := viewportW / worldW
	zy := viewportH / worldH
	if zy < zx {
		return zy
	}
	return zx
}

// WorldToScreen converts world (meters) coordinates to screen pixels.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return
}

// ScreenToWorld converts screen pixels to world (meters) coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return
}

// Resize updates viewport dimensions and re-clamps zoom/pan.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW, c.ViewportH = viewportW, viewportH
	c.MinZoom = fitZoom(viewportW, viewportH, c.WorldW, c.WorldH)
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	c.clampPan()
}

// Pan moves the camera by a screen-pixel delta, clamped so the viewport
// never leaves the world bounds.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampPan()
}

// SetZoom sets the zoom level, clamped to [MinZoom, MaxZoom].
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampPan()
}

// ZoomBy multiplies the current zoom by factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default centered, fit-to-viewport view.
func (c *Camera) Reset() {
	c.X, c.Y = c.WorldW/2, c.WorldH/2
	c.Zoom = fitZoom(c.ViewportW, c.ViewportH, c.WorldW, c.WorldH)
}

// clampPan keeps the visible world rectangle within [0, World{W,H}].
func (c *Camera) clampPan() {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	if halfW < c.WorldW/2 {
		c.X = clamp(c.X, halfW, c.WorldW-halfW)
	} else {
		c.X = c.WorldW / 2
	}
	if halfH < c.WorldH/2 {
		c.Y = clamp(c.Y, halfH, c.WorldH-halfH)
	} else {
		c.Y = c.WorldH / 2
	}
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
