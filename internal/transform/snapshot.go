package transform

import (
	"github.com/dshills/vecstorm/internal/document"
	"github.com/dshills/vecstorm/internal/engine/entity"
	"github.com/dshills/vecstorm/internal/engine/history"
	"github.com/dshills/vecstorm/internal/geom"
)

// Snapshot is one entity's geometry at gesture start. It is immutable
// for the gesture's lifetime: mode math derives deltas from it and
// Cancel restores it exactly.
//
// Field use varies by kind: rects store the top-left corner in X, Y
// and extents in W, H; circles and polygons store the center in X, Y
// and radii in W, H; text stores position only; lines, arrows and
// polylines store Points.
type Snapshot struct {
	ID       uint32
	Kind     entity.Kind
	X        float64
	Y        float64
	W        float64
	H        float64
	Rotation float64
	Points   []geom.Point
}

// captureSnapshot reads the current geometry of id. Returns false for
// unknown ids.
func captureSnapshot(doc *document.Context, id uint32) (Snapshot, bool) {
	kind, ok := doc.Kind(id)
	if !ok {
		return Snapshot{}, false
	}
	snap := Snapshot{ID: id, Kind: kind}
	switch kind {
	case entity.KindRect:
		r, ok := doc.Store.Rect(id)
		if !ok {
			return Snapshot{}, false
		}
		snap.X, snap.Y, snap.W, snap.H, snap.Rotation = r.X, r.Y, r.W, r.H, r.Rot
	case entity.KindCircle:
		c, ok := doc.Store.Circle(id)
		if !ok {
			return Snapshot{}, false
		}
		snap.X, snap.Y, snap.W, snap.H, snap.Rotation = c.CX, c.CY, c.RX, c.RY, c.Rot
	case entity.KindPolygon:
		p, ok := doc.Store.Polygon(id)
		if !ok {
			return Snapshot{}, false
		}
		snap.X, snap.Y, snap.W, snap.H, snap.Rotation = p.CX, p.CY, p.RX, p.RY, p.Rot
	case entity.KindText:
		t, ok := doc.Texts.Get(id)
		if !ok {
			return Snapshot{}, false
		}
		snap.X, snap.Y, snap.Rotation = t.X, t.Y, t.Rotation
	case entity.KindLine:
		l, ok := doc.Store.Line(id)
		if !ok {
			return Snapshot{}, false
		}
		snap.Points = []geom.Point{{X: l.X0, Y: l.Y0}, {X: l.X1, Y: l.Y1}}
	case entity.KindArrow:
		a, ok := doc.Store.Arrow(id)
		if !ok {
			return Snapshot{}, false
		}
		snap.Points = []geom.Point{{X: a.AX, Y: a.AY}, {X: a.BX, Y: a.BY}}
	case entity.KindPolyline:
		p, ok := doc.Store.Polyline(id)
		if !ok {
			return Snapshot{}, false
		}
		snap.Points = make([]geom.Point, len(p.Points))
		copy(snap.Points, p.Points)
	default:
		return Snapshot{}, false
	}
	return snap, true
}

// restoreSnapshot writes the captured geometry back and refreshes the
// spatial index. Entities deleted mid-gesture are skipped.
func restoreSnapshot(doc *document.Context, snap Snapshot) {
	switch snap.Kind {
	case entity.KindRect:
		if r, ok := doc.Store.Rect(snap.ID); ok {
			r.X, r.Y, r.W, r.H, r.Rot = snap.X, snap.Y, snap.W, snap.H, snap.Rotation
		}
	case entity.KindCircle:
		if c, ok := doc.Store.Circle(snap.ID); ok {
			c.CX, c.CY, c.RX, c.RY, c.Rot = snap.X, snap.Y, snap.W, snap.H, snap.Rotation
		}
	case entity.KindPolygon:
		if p, ok := doc.Store.Polygon(snap.ID); ok {
			p.CX, p.CY, p.RX, p.RY, p.Rot = snap.X, snap.Y, snap.W, snap.H, snap.Rotation
		}
	case entity.KindText:
		if t, ok := doc.Texts.GetMutable(snap.ID); ok {
			doc.Texts.MoveTo(snap.ID, snap.X, snap.Y)
			t.Rotation = snap.Rotation
		}
	case entity.KindLine:
		if l, ok := doc.Store.Line(snap.ID); ok && len(snap.Points) >= 2 {
			l.X0, l.Y0 = snap.Points[0].X, snap.Points[0].Y
			l.X1, l.Y1 = snap.Points[1].X, snap.Points[1].Y
		}
	case entity.KindArrow:
		if a, ok := doc.Store.Arrow(snap.ID); ok && len(snap.Points) >= 2 {
			a.AX, a.AY = snap.Points[0].X, snap.Points[0].Y
			a.BX, a.BY = snap.Points[1].X, snap.Points[1].Y
		}
	case entity.KindPolyline:
		if p, ok := doc.Store.Polyline(snap.ID); ok {
			n := len(p.Points)
			if len(snap.Points) < n {
				n = len(snap.Points)
			}
			copy(p.Points[:n], snap.Points[:n])
		}
	}
	doc.RefreshIndex(snap.ID)
}

// historySnapshot converts a gesture snapshot into the history
// package's geometry form.
func historySnapshot(snap Snapshot) history.GeometrySnapshot {
	g := history.GeometrySnapshot{
		X:        snap.X,
		Y:        snap.Y,
		W:        snap.W,
		H:        snap.H,
		Rotation: snap.Rotation,
	}
	if len(snap.Points) > 0 {
		g.Points = make([]geom.Point, len(snap.Points))
		copy(g.Points, snap.Points)
	}
	return g
}
