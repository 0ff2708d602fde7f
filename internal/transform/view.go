package transform

import (
	"github.com/dshills/vecstorm/internal/geom"
)

// Viewport is the view transform delivered with every pointer event.
// X, Y is the screen-space pan offset, Scale the zoom factor, Width
// and Height the viewport size in pixels.
type Viewport struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Scale  float64 `json:"scale"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// normScale returns the usable scale, treating degenerate values as 1.
func (v Viewport) normScale() float64 {
	if v.Scale <= 1e-6 || !geom.IsFinite(v.Scale) {
		return 1
	}
	return v.Scale
}

// WorldFromScreen converts a screen point to world coordinates. This
// is the single conversion point of the pipeline; world Y grows
// upward while screen Y grows downward.
func (v Viewport) WorldFromScreen(sx, sy float64) (float64, float64) {
	scale := v.normScale()
	return (sx - v.X) / scale, -(sy - v.Y) / scale
}

// VisibleWorld returns the world-space rectangle covered by the
// viewport, derived through WorldFromScreen so guides use the same
// conversion as the cursor. Returns false when the viewport has no
// usable size.
func (v Viewport) VisibleWorld() (geom.AABB, bool) {
	if v.Width <= 0 || v.Height <= 0 {
		return geom.AABB{}, false
	}
	x0, y0 := v.WorldFromScreen(0, 0)
	x1, y1 := v.WorldFromScreen(v.Width, v.Height)
	box := geom.AABB{MinX: x0, MinY: y0, MaxX: x1, MaxY: y1}
	if box.MinX > box.MaxX {
		box.MinX, box.MaxX = box.MaxX, box.MinX
	}
	if box.MinY > box.MaxY {
		box.MinY, box.MaxY = box.MaxY, box.MinY
	}
	return box, true
}
