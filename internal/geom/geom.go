// Package geom provides the shared geometric value types used by the
// engine: points, axis-aligned bounding boxes, and angle helpers.
package geom

import "math"

// Point is a position in world coordinates.
type Point struct {
	X float64
	Y float64
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// AABB is an axis-aligned bounding box in world coordinates.
type AABB struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Valid reports whether the box has non-inverted extents.
func (b AABB) Valid() bool {
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY
}

// Width returns the horizontal extent of the box.
func (b AABB) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b AABB) Height() float64 { return b.MaxY - b.MinY }

// CenterX returns the horizontal center of the box.
func (b AABB) CenterX() float64 { return (b.MinX + b.MaxX) * 0.5 }

// CenterY returns the vertical center of the box.
func (b AABB) CenterY() float64 { return (b.MinY + b.MaxY) * 0.5 }

// Intersects reports whether b and o overlap, boundaries included.
func (b AABB) Intersects(o AABB) bool {
	return b.MinX <= o.MaxX && b.MaxX >= o.MinX &&
		b.MinY <= o.MaxY && b.MaxY >= o.MinY
}

// Inflate returns the box grown by d on every side.
func (b AABB) Inflate(d float64) AABB {
	return AABB{MinX: b.MinX - d, MinY: b.MinY - d, MaxX: b.MaxX + d, MaxY: b.MaxY + d}
}

// Union returns the smallest box containing both b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Translate returns the box shifted by (dx, dy).
func (b AABB) Translate(dx, dy float64) AABB {
	return AABB{MinX: b.MinX + dx, MinY: b.MinY + dy, MaxX: b.MaxX + dx, MaxY: b.MaxY + dy}
}

// FromPoints returns the bounding box of the given points.
// Returns an empty box at the origin for an empty slice.
func FromPoints(pts []Point) AABB {
	if len(pts) == 0 {
		return AABB{}
	}
	b := AABB{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// NormalizeDeg wraps an angle in degrees into [-180, 180).
func NormalizeDeg(deg float64) float64 {
	for deg > 180 {
		deg -= 360
	}
	for deg < -180 {
		deg += 360
	}
	return deg
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// RotatePoint rotates (x, y) about (cx, cy) by angle radians.
func RotatePoint(x, y, cx, cy, angle float64) (float64, float64) {
	sin, cos := math.Sincos(angle)
	dx := x - cx
	dy := y - cy
	return cx + dx*cos - dy*sin, cy + dx*sin + dy*cos
}
