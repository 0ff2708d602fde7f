package transform

import (
	"math"

	"github.com/dshills/vecstorm/internal/engine/entity"
	"github.com/dshills/vecstorm/internal/geom"
)

// updateVertexDrag moves one vertex of a line, arrow or polyline by
// the drag delta. With shift held the dragged endpoint snaps to angle
// steps measured from the opposite endpoint; interior polyline
// vertices have no natural anchor and move freely.
func (s *Session) updateVertexDrag(worldX, worldY, totalDx, totalDy float64, mods Modifiers) bool {
	idx, ok := s.target.Vertex()
	if !ok {
		return false
	}
	snap, found := s.snapshotFor(s.specificID)
	if !found {
		return false
	}
	i := int(idx)
	if i >= len(snap.Points) {
		return false
	}

	dx, dy := totalDx, totalDy
	if mods.HasShift() && len(snap.Points) >= 2 {
		if anchor, hasAnchor := angleAnchor(snap.Points, i); hasAnchor {
			vecX := worldX - anchor.X
			vecY := worldY - anchor.Y
			length := math.Hypot(vecX, vecY)
			if length > 1e-6 {
				step := geom.Radians(s.cfg.VertexAngleSnapDeg)
				angle := math.Atan2(vecY, vecX)
				snapped := math.Round(angle/step) * step
				sin, cos := math.Sincos(snapped)
				base := snap.Points[i]
				dx = anchor.X + cos*length - base.X
				dy = anchor.Y + sin*length - base.Y
			}
		}
	}

	nx := snap.Points[i].X + dx
	ny := snap.Points[i].Y + dy

	switch snap.Kind {
	case entity.KindLine:
		l, exists := s.doc.Store.Line(snap.ID)
		if !exists {
			return false
		}
		switch i {
		case 0:
			l.X0, l.Y0 = nx, ny
		case 1:
			l.X1, l.Y1 = nx, ny
		default:
			return false
		}
	case entity.KindArrow:
		a, exists := s.doc.Store.Arrow(snap.ID)
		if !exists {
			return false
		}
		switch i {
		case 0:
			a.AX, a.AY = nx, ny
		case 1:
			a.BX, a.BY = nx, ny
		default:
			return false
		}
	case entity.KindPolyline:
		p, exists := s.doc.Store.Polyline(snap.ID)
		if !exists || i >= len(p.Points) {
			return false
		}
		p.Points[i].X = nx
		p.Points[i].Y = ny
	default:
		return false
	}
	s.markGeometryChanged(snap.ID)
	return true
}

// snapshotFor finds the gesture snapshot for id.
func (s *Session) snapshotFor(id uint32) (Snapshot, bool) {
	for _, snap := range s.snapshots {
		if snap.ID == id {
			return snap, true
		}
	}
	return Snapshot{}, false
}

// angleAnchor returns the snapshot point the angle constraint pivots
// on: the neighbor of a terminal vertex.
func angleAnchor(points []geom.Point, idx int) (geom.Point, bool) {
	last := len(points) - 1
	switch idx {
	case 0:
		return points[1], true
	case last:
		return points[last-1], true
	}
	return geom.Point{}, false
}
