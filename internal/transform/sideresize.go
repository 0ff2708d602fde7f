package transform

import (
	"math"

	"github.com/dshills/vecstorm/internal/engine/entity"
)

// Side handle indices.
const (
	sideSouth = 0
	sideEast  = 1
	sideNorth = 2
	sideWest  = 3
)

// updateSideResize scales a single axis from a cardinal side handle.
// The opposite edge stays fixed unless alt requests a symmetric resize
// about the center. Near-circular ellipses scale both radii uniformly
// from the dragged axis. Groups scale the selection bounds on that
// axis.
func (s *Session) updateSideResize(worldX, worldY float64, mods Modifiers) bool {
	if s.sideIdx < sideSouth || s.sideIdx > sideWest {
		return false
	}
	if len(s.snapshots) > 1 {
		return s.sideResizeGroup(worldX, worldY, mods)
	}
	return s.sideResizeSingle(worldX, worldY, mods)
}

func (s *Session) sideResizeSingle(worldX, worldY float64, mods Modifiers) bool {
	snap := s.snapshots[0]
	center, halfW, halfH, ok := resizeFrame(snap)
	if !ok {
		return false
	}

	localX, localY := toLocal(worldX, worldY, center.X, center.Y, snap.Rotation)

	nearCircle := snap.Kind == entity.KindCircle && isApproxCircle(halfW, halfH, s.cfg.CircleUniformTol)
	circleUniformLocked := nearCircle && !mods.HasAlt()
	symmetric := mods.HasAlt() && !nearCircle

	newHalfW := halfW
	newHalfH := halfH
	newCenterLocalX := 0.0
	newCenterLocalY := 0.0

	switch s.sideIdx {
	case sideSouth:
		if symmetric {
			newHalfH = maxf(s.cfg.MinDimension, math.Abs(localY))
		} else {
			anchorY := -halfH
			dy := localY - anchorY
			newHalfH = maxf(s.cfg.MinDimension, math.Abs(dy)/2)
			newCenterLocalY = anchorY + dy/2
		}
	case sideEast:
		if symmetric {
			newHalfW = maxf(s.cfg.MinDimension, math.Abs(localX))
		} else {
			anchorX := -halfW
			dx := localX - anchorX
			newHalfW = maxf(s.cfg.MinDimension, math.Abs(dx)/2)
			newCenterLocalX = anchorX + dx/2
		}
	case sideNorth:
		if symmetric {
			newHalfH = maxf(s.cfg.MinDimension, math.Abs(localY))
		} else {
			anchorY := halfH
			dy := localY - anchorY
			newHalfH = maxf(s.cfg.MinDimension, math.Abs(dy)/2)
			newCenterLocalY = anchorY + dy/2
		}
	case sideWest:
		if symmetric {
			newHalfW = maxf(s.cfg.MinDimension, math.Abs(localX))
		} else {
			anchorX := halfW
			dx := localX - anchorX
			newHalfW = maxf(s.cfg.MinDimension, math.Abs(dx)/2)
			newCenterLocalX = anchorX + dx/2
		}
	}

	if circleUniformLocked {
		uniform := newHalfH
		if s.sideIdx == sideEast || s.sideIdx == sideWest {
			uniform = newHalfW
		}
		newHalfW = uniform
		newHalfH = uniform
	}

	centerWorldX, centerWorldY := fromLocal(newCenterLocalX, newCenterLocalY, center.X, center.Y, snap.Rotation)

	switch snap.Kind {
	case entity.KindRect:
		r, found := s.doc.Store.Rect(snap.ID)
		if !found {
			return false
		}
		r.X = centerWorldX - newHalfW
		r.Y = centerWorldY - newHalfH
		r.W = newHalfW * 2
		r.H = newHalfH * 2
	case entity.KindCircle:
		c, found := s.doc.Store.Circle(snap.ID)
		if !found {
			return false
		}
		c.CX = centerWorldX
		c.CY = centerWorldY
		c.RX = newHalfW
		c.RY = newHalfH
	case entity.KindPolygon:
		p, found := s.doc.Store.Polygon(snap.ID)
		if !found {
			return false
		}
		p.CX = centerWorldX
		p.CY = centerWorldY
		p.RX = newHalfW
		p.RY = newHalfH
	}
	s.markGeometryChanged(snap.ID)
	return true
}

func (s *Session) sideResizeGroup(worldX, worldY float64, mods Modifiers) bool {
	altDown := mods.HasAlt()
	centerX := s.base.CenterX()
	centerY := s.base.CenterY()

	anchorX := centerX
	anchorY := centerY
	baseDx := maxf(1e-6, s.base.Width())
	baseDy := maxf(1e-6, s.base.Height())

	switch s.sideIdx {
	case sideSouth:
		if altDown {
			anchorY = centerY
			baseDy = s.base.MaxY - centerY
		} else {
			anchorY = s.base.MinY
			baseDy = s.base.MaxY - s.base.MinY
		}
	case sideEast:
		if altDown {
			anchorX = centerX
			baseDx = s.base.MaxX - centerX
		} else {
			anchorX = s.base.MinX
			baseDx = s.base.MaxX - s.base.MinX
		}
	case sideNorth:
		if altDown {
			anchorY = centerY
			baseDy = s.base.MinY - centerY
		} else {
			anchorY = s.base.MaxY
			baseDy = s.base.MinY - s.base.MaxY
		}
	case sideWest:
		if altDown {
			anchorX = centerX
			baseDx = s.base.MinX - centerX
		} else {
			anchorX = s.base.MaxX
			baseDx = s.base.MinX - s.base.MaxX
		}
	}

	scaleX, scaleY := 1.0, 1.0
	if s.sideIdx == sideSouth || s.sideIdx == sideNorth {
		dy := worldY - anchorY
		denom := baseDy
		if math.Abs(denom) <= 1e-6 {
			denom = math.Copysign(1e-6, denom)
		}
		scaleY = clampScale(dy/denom, s.cfg.MinScale)
	} else {
		dx := worldX - anchorX
		denom := baseDx
		if math.Abs(denom) <= 1e-6 {
			denom = math.Copysign(1e-6, denom)
		}
		scaleX = clampScale(dx/denom, s.cfg.MinScale)
	}

	scaleXAbs := math.Abs(scaleX)
	scaleYAbs := math.Abs(scaleY)
	scalePoint := func(px, py float64) (float64, float64) {
		return anchorX + (px-anchorX)*scaleX, anchorY + (py-anchorY)*scaleY
	}

	updated := false
	for _, snap := range s.snapshots {
		switch snap.Kind {
		case entity.KindRect:
			r, found := s.doc.Store.Rect(snap.ID)
			if !found {
				continue
			}
			cx, cy := scalePoint(snap.X+snap.W/2, snap.Y+snap.H/2)
			w := maxf(s.cfg.MinDimension, snap.W*scaleXAbs)
			h := maxf(s.cfg.MinDimension, snap.H*scaleYAbs)
			r.X = cx - w/2
			r.Y = cy - h/2
			r.W = w
			r.H = h
		case entity.KindCircle:
			c, found := s.doc.Store.Circle(snap.ID)
			if !found {
				continue
			}
			cx, cy := scalePoint(snap.X, snap.Y)
			rxScale, ryScale := scaleXAbs, scaleYAbs
			if isApproxCircle(snap.W, snap.H, s.cfg.CircleUniformTol) && !altDown {
				uniform := scaleXAbs
				if s.sideIdx == sideSouth || s.sideIdx == sideNorth {
					uniform = scaleYAbs
				}
				rxScale, ryScale = uniform, uniform
			}
			c.CX = cx
			c.CY = cy
			c.RX = maxf(s.cfg.MinDimension, snap.W*rxScale)
			c.RY = maxf(s.cfg.MinDimension, snap.H*ryScale)
		case entity.KindPolygon:
			p, found := s.doc.Store.Polygon(snap.ID)
			if !found {
				continue
			}
			cx, cy := scalePoint(snap.X, snap.Y)
			p.CX = cx
			p.CY = cy
			p.RX = maxf(s.cfg.MinDimension, snap.W*scaleXAbs)
			p.RY = maxf(s.cfg.MinDimension, snap.H*scaleYAbs)
		default:
			continue
		}
		s.markGeometryChanged(snap.ID)
		updated = true
	}
	return updated
}
