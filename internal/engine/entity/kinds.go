package entity

import (
	"math"

	"github.com/dshills/vecstorm/internal/geom"
)

// Kind identifies the geometric type of an entity.
type Kind uint8

const (
	// KindNone is the zero kind; no entity.
	KindNone Kind = iota
	// KindRect is an axis-aligned rectangle with optional rotation.
	KindRect
	// KindCircle is an ellipse described by center and radii.
	KindCircle
	// KindLine is a two-point segment.
	KindLine
	// KindArrow is a two-point segment with a head.
	KindArrow
	// KindPolyline is an open point chain.
	KindPolyline
	// KindPolygon is a regular polygon described by center, radii and side count.
	KindPolygon
	// KindText is a text block; its record lives in the text layout store.
	KindText
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	case KindLine:
		return "line"
	case KindArrow:
		return "arrow"
	case KindPolyline:
		return "polyline"
	case KindPolygon:
		return "polygon"
	case KindText:
		return "text"
	default:
		return "none"
	}
}

// RectRec is a rectangle. X, Y is the top-left corner; Rot is the
// rotation about the center in radians.
type RectRec struct {
	ID  uint32
	X   float64
	Y   float64
	W   float64
	H   float64
	Rot float64
}

// Center returns the rectangle center.
func (r *RectRec) Center() (float64, float64) {
	return r.X + r.W*0.5, r.Y + r.H*0.5
}

// AABB returns the world bounding box, rotation included.
func (r *RectRec) AABB() geom.AABB {
	if r.Rot == 0 {
		return geom.AABB{MinX: r.X, MinY: r.Y, MaxX: r.X + r.W, MaxY: r.Y + r.H}
	}
	cx, cy := r.Center()
	corners := [4]geom.Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
	for i, c := range corners {
		x, y := geom.RotatePoint(c.X, c.Y, cx, cy, r.Rot)
		corners[i] = geom.Point{X: x, Y: y}
	}
	return geom.FromPoints(corners[:])
}

// CircleRec is an ellipse centered at CX, CY with radii RX, RY.
type CircleRec struct {
	ID  uint32
	CX  float64
	CY  float64
	RX  float64
	RY  float64
	Rot float64
}

// AABB returns the world bounding box of the rotated ellipse.
func (c *CircleRec) AABB() geom.AABB {
	rx, ry := math.Abs(c.RX), math.Abs(c.RY)
	ex, ey := rx, ry
	if c.Rot != 0 {
		sin, cos := math.Sincos(c.Rot)
		ex = math.Sqrt(rx*rx*cos*cos + ry*ry*sin*sin)
		ey = math.Sqrt(rx*rx*sin*sin + ry*ry*cos*cos)
	}
	return geom.AABB{MinX: c.CX - ex, MinY: c.CY - ey, MaxX: c.CX + ex, MaxY: c.CY + ey}
}

// LineRec is a segment from (X0, Y0) to (X1, Y1).
type LineRec struct {
	ID uint32
	X0 float64
	Y0 float64
	X1 float64
	Y1 float64
}

// AABB returns the segment bounding box.
func (l *LineRec) AABB() geom.AABB {
	return geom.FromPoints([]geom.Point{{X: l.X0, Y: l.Y0}, {X: l.X1, Y: l.Y1}})
}

// ArrowRec is a segment from (AX, AY) to (BX, BY) with an arrow head
// of HeadSize at the B end.
type ArrowRec struct {
	ID       uint32
	AX       float64
	AY       float64
	BX       float64
	BY       float64
	HeadSize float64
}

// AABB returns the segment bounding box. The head is drawn within the
// stroke and does not extend the box.
func (a *ArrowRec) AABB() geom.AABB {
	return geom.FromPoints([]geom.Point{{X: a.AX, Y: a.AY}, {X: a.BX, Y: a.BY}})
}

// PolylineRec is an open chain of world-space points.
type PolylineRec struct {
	ID     uint32
	Points []geom.Point
}

// AABB returns the bounding box of all points.
func (p *PolylineRec) AABB() geom.AABB {
	return geom.FromPoints(p.Points)
}

// PolygonRec is a regular polygon centered at CX, CY with radii RX, RY,
// Sides vertices and rotation Rot about the center.
type PolygonRec struct {
	ID    uint32
	CX    float64
	CY    float64
	RX    float64
	RY    float64
	Sides uint32
	Rot   float64
}

// Vertices returns the world-space vertex positions. The first vertex
// points up (angle -pi/2) before rotation is applied.
func (p *PolygonRec) Vertices() []geom.Point {
	sides := p.Sides
	if sides < 3 {
		sides = 3
	}
	sin, cos := 0.0, 1.0
	if p.Rot != 0 {
		sin, cos = math.Sincos(p.Rot)
	}
	pts := make([]geom.Point, 0, sides)
	for i := uint32(0); i < sides; i++ {
		t := float64(i)/float64(sides)*2*math.Pi - math.Pi/2
		dx := math.Cos(t) * p.RX
		dy := math.Sin(t) * p.RY
		pts = append(pts, geom.Point{
			X: p.CX + dx*cos - dy*sin,
			Y: p.CY + dx*sin + dy*cos,
		})
	}
	return pts
}

// AABB returns the bounding box of the polygon vertices.
func (p *PolygonRec) AABB() geom.AABB {
	return geom.FromPoints(p.Vertices())
}
