package transform

import (
	"math"

	"github.com/dshills/vecstorm/internal/engine/entity"
	"github.com/dshills/vecstorm/internal/geom"
)

// updateRotate rotates the selection about the pivot fixed at Begin.
// The rotation is accumulated incrementally from per-frame angle
// deltas normalized to (-180, 180], so dragging through the discontinuity
// at the negative x axis never causes a full-turn jump. With shift
// held the accumulated angle snaps to configured steps.
func (s *Session) updateRotate(worldX, worldY float64, mods Modifiers) bool {
	currentDeg := geom.Degrees(math.Atan2(worldY-s.pivotY, worldX-s.pivotX))

	frameDelta := currentDeg - s.lastAngleDeg
	if frameDelta > 180 {
		frameDelta -= 360
	}
	if frameDelta < -180 {
		frameDelta += 360
	}
	s.accumulatedDeg += frameDelta
	s.lastAngleDeg = currentDeg

	deltaDeg := s.accumulatedDeg
	if mods.HasShift() && s.cfg.RotationSnapDeg > 0 {
		deltaDeg = math.Round(deltaDeg/s.cfg.RotationSnapDeg) * s.cfg.RotationSnapDeg
	}
	deltaRad := geom.Radians(deltaDeg)
	group := len(s.snapshots) > 1

	orbit := func(px, py float64) (float64, float64) {
		return geom.RotatePoint(px, py, s.pivotX, s.pivotY, deltaRad)
	}

	updated := false
	for _, snap := range s.snapshots {
		switch snap.Kind {
		case entity.KindRect:
			r, found := s.doc.Store.Rect(snap.ID)
			if !found {
				continue
			}
			r.Rot = snap.Rotation + deltaRad
			if group {
				cx, cy := orbit(snap.X+r.W/2, snap.Y+r.H/2)
				r.X = cx - r.W/2
				r.Y = cy - r.H/2
			}
		case entity.KindCircle:
			c, found := s.doc.Store.Circle(snap.ID)
			if !found {
				continue
			}
			c.Rot = snap.Rotation + deltaRad
			if group {
				c.CX, c.CY = orbit(snap.X, snap.Y)
			}
		case entity.KindPolygon:
			p, found := s.doc.Store.Polygon(snap.ID)
			if !found {
				continue
			}
			p.Rot = snap.Rotation + deltaRad
			if group {
				p.CX, p.CY = orbit(snap.X, snap.Y)
			}
		case entity.KindText:
			t, found := s.doc.Texts.GetMutable(snap.ID)
			if !found {
				continue
			}
			t.Rotation = snap.Rotation + deltaRad
			if group {
				x, y := orbit(snap.X, snap.Y)
				s.doc.Texts.MoveTo(snap.ID, x, y)
			}
		default:
			continue
		}
		s.markGeometryChanged(snap.ID)
		updated = true
	}
	return updated
}
