package transform

import (
	"github.com/dshills/vecstorm/internal/engine/entity"
	"github.com/dshills/vecstorm/internal/engine/history"
)

// updateMove translates the selection by the drag delta, applying the
// axis lock and object snapping. Holding alt at the moment the drag
// starts duplicates the selection and drags the copies.
func (s *Session) updateMove(dragStarted bool, screenDx, screenDy, totalDx, totalDy float64, view Viewport, mods Modifiers, candidates, snapHits *int) bool {
	orthoActive := mods.HasShift() || s.opts.Ortho.Persistent
	if dragStarted && mods.HasAlt() {
		s.duplicateSelection()
	}

	s.axisLock.Update(screenDx, screenDy, orthoActive, s.cfg)
	totalDx, totalDy = s.axisLock.Apply(totalDx, totalDy)

	if !mods.SnapSuppressed() {
		allowX := s.axisLock.Lock() != AxisY
		allowY := s.axisLock.Lock() != AxisX
		res := computeObjectSnap(s.doc, s.opts.Snap, s.initialIDs, s.base, totalDx, totalDy, view, allowX, allowY)
		*candidates = res.CandidateCount
		s.guides = res.Guides
		s.hits = res.Hits
		if res.SnappedX {
			totalDx += res.DX
			*snapHits++
		}
		if res.SnappedY {
			totalDy += res.DY
			*snapHits++
		}
	}

	updated := false
	for _, snap := range s.snapshots {
		if s.translateEntity(snap, totalDx, totalDy) {
			updated = true
		}
	}
	return updated
}

// translateEntity places an entity at its snapshot position plus the
// drag delta.
func (s *Session) translateEntity(snap Snapshot, dx, dy float64) bool {
	switch snap.Kind {
	case entity.KindRect:
		r, ok := s.doc.Store.Rect(snap.ID)
		if !ok {
			return false
		}
		r.X = snap.X + dx
		r.Y = snap.Y + dy
	case entity.KindCircle:
		c, ok := s.doc.Store.Circle(snap.ID)
		if !ok {
			return false
		}
		c.CX = snap.X + dx
		c.CY = snap.Y + dy
	case entity.KindPolygon:
		p, ok := s.doc.Store.Polygon(snap.ID)
		if !ok {
			return false
		}
		p.CX = snap.X + dx
		p.CY = snap.Y + dy
	case entity.KindText:
		if !s.doc.Texts.MoveTo(snap.ID, snap.X+dx, snap.Y+dy) {
			return false
		}
	case entity.KindLine:
		l, ok := s.doc.Store.Line(snap.ID)
		if !ok || len(snap.Points) < 2 {
			return false
		}
		l.X0, l.Y0 = snap.Points[0].X+dx, snap.Points[0].Y+dy
		l.X1, l.Y1 = snap.Points[1].X+dx, snap.Points[1].Y+dy
	case entity.KindArrow:
		a, ok := s.doc.Store.Arrow(snap.ID)
		if !ok || len(snap.Points) < 2 {
			return false
		}
		a.AX, a.AY = snap.Points[0].X+dx, snap.Points[0].Y+dy
		a.BX, a.BY = snap.Points[1].X+dx, snap.Points[1].Y+dy
	case entity.KindPolyline:
		p, ok := s.doc.Store.Polyline(snap.ID)
		if !ok {
			return false
		}
		n := len(p.Points)
		if len(snap.Points) < n {
			n = len(snap.Points)
		}
		for k := 0; k < n; k++ {
			p.Points[k].X = snap.Points[k].X + dx
			p.Points[k].Y = snap.Points[k].Y + dy
		}
	default:
		return false
	}
	s.markGeometryChanged(snap.ID)
	return true
}

// duplicateSelection clones every gesture entity and retargets the
// gesture at the clones, leaving the originals in place. The history
// entry is rebuilt as a set of creations so undo deletes the clones.
func (s *Session) duplicateSelection() {
	if s.duplicated {
		return
	}
	s.originalIDs = append([]uint32(nil), s.initialIDs...)

	for i := range s.snapshots {
		snap := &s.snapshots[i]
		newID := s.cloneEntity(snap.ID, snap.Kind)
		if newID == 0 {
			continue
		}
		snap.ID = newID
		s.initialIDs[i] = newID
	}
	s.duplicated = true

	if s.entry != nil {
		s.entry.Changes = s.entry.Changes[:0]
		for _, snap := range s.snapshots {
			s.entry.Record(history.EntityChange{
				ID:      snap.ID,
				Kind:    snap.Kind,
				Created: true,
				Before:  historySnapshot(snap),
			})
		}
	}
}

// cloneEntity inserts a copy of an entity and returns the new id, or
// zero when the source no longer exists.
func (s *Session) cloneEntity(id uint32, kind entity.Kind) uint32 {
	switch kind {
	case entity.KindRect:
		if r, ok := s.doc.Store.Rect(id); ok {
			cp := *r
			cp.ID = 0
			return s.doc.AddRect(cp)
		}
	case entity.KindCircle:
		if c, ok := s.doc.Store.Circle(id); ok {
			cp := *c
			cp.ID = 0
			return s.doc.AddCircle(cp)
		}
	case entity.KindPolygon:
		if p, ok := s.doc.Store.Polygon(id); ok {
			cp := *p
			cp.ID = 0
			return s.doc.AddPolygon(cp)
		}
	case entity.KindLine:
		if l, ok := s.doc.Store.Line(id); ok {
			cp := *l
			cp.ID = 0
			return s.doc.AddLine(cp)
		}
	case entity.KindArrow:
		if a, ok := s.doc.Store.Arrow(id); ok {
			cp := *a
			cp.ID = 0
			return s.doc.AddArrow(cp)
		}
	case entity.KindPolyline:
		if p, ok := s.doc.Store.Polyline(id); ok {
			clone := entity.PolylineRec{}
			clone.Points = append(clone.Points, p.Points...)
			return s.doc.AddPolyline(clone)
		}
	case entity.KindText:
		if t, ok := s.doc.Texts.Get(id); ok {
			cp := *t
			cp.ID = 0
			return s.doc.AddText(cp)
		}
	}
	return 0
}
