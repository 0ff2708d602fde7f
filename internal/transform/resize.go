package transform

import (
	"math"

	"github.com/dshills/vecstorm/internal/engine/entity"
	"github.com/dshills/vecstorm/internal/geom"
)

// resizeFrame returns the center and half-extents of a resizable
// entity's snapshot.
func resizeFrame(snap Snapshot) (center geom.Point, halfW, halfH float64, ok bool) {
	switch snap.Kind {
	case entity.KindRect:
		return geom.Point{X: snap.X + snap.W/2, Y: snap.Y + snap.H/2}, snap.W / 2, snap.H / 2, true
	case entity.KindCircle, entity.KindPolygon:
		return geom.Point{X: snap.X, Y: snap.Y}, snap.W, snap.H, true
	}
	return geom.Point{}, 0, 0, false
}

// toLocal rotates a world point into an entity's local frame.
func toLocal(x, y, cx, cy, rot float64) (float64, float64) {
	sin, cos := math.Sincos(rot)
	dx := x - cx
	dy := y - cy
	return dx*cos + dy*sin, -dx*sin + dy*cos
}

// fromLocal rotates a local point back to world space.
func fromLocal(lx, ly, cx, cy, rot float64) (float64, float64) {
	sin, cos := math.Sincos(rot)
	return cx + lx*cos - ly*sin, cy + lx*sin + ly*cos
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// clampScale keeps a scale factor finite and away from zero while
// preserving its sign, so mirrored resizes stay mirrored.
func clampScale(v, min float64) float64 {
	if !geom.IsFinite(v) {
		return 1
	}
	if math.Abs(v) >= min {
		return v
	}
	sign := v
	if v == 0 {
		sign = 1
	}
	return math.Copysign(min, sign)
}

// isApproxCircle reports whether an ellipse's radii are close enough
// to count as a circle, relative to the larger radius.
func isApproxCircle(rx, ry, tol float64) bool {
	ax := math.Abs(rx)
	ay := math.Abs(ry)
	maxR := maxf(ax, ay)
	if !geom.IsFinite(maxR) || maxR <= 1e-6 {
		return false
	}
	return math.Abs(ax-ay) <= maxR*tol
}

// updateResize scales from the grabbed corner handle about the
// opposite corner. Single entities resize in their own rotated frame;
// groups scale rigidly about the shared anchor corner of the selection
// bounds.
func (s *Session) updateResize(worldX, worldY float64, mods Modifiers) bool {
	if s.handleIdx < 0 || s.handleIdx > 3 {
		return false
	}
	if len(s.snapshots) > 1 {
		return s.resizeGroup(worldX, worldY, mods)
	}
	return s.resizeSingle(worldX, worldY, mods)
}

func (s *Session) resizeSingle(worldX, worldY float64, mods Modifiers) bool {
	snap := s.snapshots[0]
	center, halfW, halfH, ok := resizeFrame(snap)
	if !ok {
		return false
	}

	localX, localY := toLocal(worldX, worldY, center.X, center.Y, snap.Rotation)

	anchorX, anchorY := s.anchorX, s.anchorY
	if !s.anchorValid {
		switch s.handleIdx {
		case 0:
			anchorX, anchorY = halfW, halfH
		case 1:
			anchorX, anchorY = -halfW, halfH
		case 2:
			anchorX, anchorY = -halfW, -halfH
		case 3:
			anchorX, anchorY = halfW, -halfH
		}
	}

	dx := localX - anchorX
	dy := localY - anchorY

	if mods.HasShift() {
		baseW, baseH, aspect := s.baseW, s.baseH, s.aspect
		if !s.anchorValid {
			baseW = math.Abs(halfW * 2)
			baseH = math.Abs(halfH * 2)
			aspect = 1
			if baseW > 1e-6 && baseH > 1e-6 {
				aspect = baseW / baseH
			}
		}
		if !geom.IsFinite(aspect) || aspect <= 1e-6 {
			aspect = 1
		}
		absDx := math.Abs(dx)
		absDy := math.Abs(dy)
		useX := absDx >= absDy
		if baseW > 1e-6 && baseH > 1e-6 {
			useX = absDx/baseW >= absDy/baseH
		}
		if useX {
			dy = math.Copysign(absDx/aspect, dy)
		} else {
			dx = math.Copysign(absDy*aspect, dx)
		}
	}

	circleUniformLocked := snap.Kind == entity.KindCircle &&
		isApproxCircle(halfW, halfH, s.cfg.CircleUniformTol) &&
		!mods.HasAlt()
	if circleUniformLocked {
		absDx := math.Abs(dx)
		absDy := math.Abs(dy)
		if absDx >= absDy {
			dy = math.Copysign(absDx, dy)
		} else {
			dx = math.Copysign(absDy, dx)
		}
	}

	// Track which quadrant the drag sits in so the reported handle
	// follows the pointer across the anchor.
	if s.anchorValid {
		right := dx >= 0
		top := dy >= 0
		switch {
		case right && top:
			s.handleIdx = 2
		case right && !top:
			s.handleIdx = 1
		case !right && top:
			s.handleIdx = 3
		default:
			s.handleIdx = 0
		}
	}

	minX := math.Min(anchorX, anchorX+dx)
	maxX := math.Max(anchorX, anchorX+dx)
	minY := math.Min(anchorY, anchorY+dy)
	maxY := math.Max(anchorY, anchorY+dy)
	w := maxf(s.cfg.MinDimension, maxX-minX)
	h := maxf(s.cfg.MinDimension, maxY-minY)
	if circleUniformLocked {
		uniform := maxf(w, h)
		w, h = uniform, uniform
	}

	centerLocalX := (minX + maxX) / 2
	centerLocalY := (minY + maxY) / 2
	centerWorldX, centerWorldY := fromLocal(centerLocalX, centerLocalY, center.X, center.Y, snap.Rotation)

	switch snap.Kind {
	case entity.KindRect:
		r, found := s.doc.Store.Rect(snap.ID)
		if !found {
			return false
		}
		r.X = centerWorldX - w/2
		r.Y = centerWorldY - h/2
		r.W = w
		r.H = h
	case entity.KindCircle:
		c, found := s.doc.Store.Circle(snap.ID)
		if !found {
			return false
		}
		c.CX = centerWorldX
		c.CY = centerWorldY
		c.RX = w / 2
		c.RY = h / 2
	case entity.KindPolygon:
		p, found := s.doc.Store.Polygon(snap.ID)
		if !found {
			return false
		}
		p.CX = centerWorldX
		p.CY = centerWorldY
		p.RX = w / 2
		p.RY = h / 2
	}
	s.markGeometryChanged(snap.ID)
	return true
}

func (s *Session) resizeGroup(worldX, worldY float64, mods Modifiers) bool {
	var anchorX, anchorY, handleX, handleY float64
	switch s.handleIdx {
	case 0:
		anchorX, anchorY = s.base.MaxX, s.base.MaxY
		handleX, handleY = s.base.MinX, s.base.MinY
	case 1:
		anchorX, anchorY = s.base.MinX, s.base.MaxY
		handleX, handleY = s.base.MaxX, s.base.MinY
	case 2:
		anchorX, anchorY = s.base.MinX, s.base.MinY
		handleX, handleY = s.base.MaxX, s.base.MaxY
	case 3:
		anchorX, anchorY = s.base.MaxX, s.base.MinY
		handleX, handleY = s.base.MinX, s.base.MaxY
	}

	baseDx := handleX - anchorX
	baseDy := handleY - anchorY
	dx := worldX - anchorX
	dy := worldY - anchorY

	if mods.HasShift() {
		absBaseDx := maxf(1e-6, math.Abs(baseDx))
		absBaseDy := maxf(1e-6, math.Abs(baseDy))
		aspect := absBaseDx / absBaseDy
		relX := math.Abs(dx) / absBaseDx
		relY := math.Abs(dy) / absBaseDy
		if relX >= relY {
			dy = math.Copysign(math.Abs(dx)/maxf(1e-6, aspect), dy)
		} else {
			dx = math.Copysign(math.Abs(dy)*aspect, dx)
		}
	}

	scaleX, scaleY := 1.0, 1.0
	if math.Abs(baseDx) > 1e-6 {
		scaleX = dx / baseDx
	}
	if math.Abs(baseDy) > 1e-6 {
		scaleY = dy / baseDy
	}
	scaleX = clampScale(scaleX, s.cfg.MinScale)
	scaleY = clampScale(scaleY, s.cfg.MinScale)
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
			if isApproxCircle(snap.W, snap.H, s.cfg.CircleUniformTol) && !mods.HasAlt() {
				uniform := maxf(rxScale, ryScale)
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
		case entity.KindLine:
			l, found := s.doc.Store.Line(snap.ID)
			if !found || len(snap.Points) < 2 {
				continue
			}
			l.X0, l.Y0 = scalePoint(snap.Points[0].X, snap.Points[0].Y)
			l.X1, l.Y1 = scalePoint(snap.Points[1].X, snap.Points[1].Y)
		case entity.KindArrow:
			a, found := s.doc.Store.Arrow(snap.ID)
			if !found || len(snap.Points) < 2 {
				continue
			}
			a.AX, a.AY = scalePoint(snap.Points[0].X, snap.Points[0].Y)
			a.BX, a.BY = scalePoint(snap.Points[1].X, snap.Points[1].Y)
		case entity.KindPolyline:
			p, found := s.doc.Store.Polyline(snap.ID)
			if !found {
				continue
			}
			n := len(p.Points)
			if len(snap.Points) < n {
				n = len(snap.Points)
			}
			for k := 0; k < n; k++ {
				p.Points[k].X, p.Points[k].Y = scalePoint(snap.Points[k].X, snap.Points[k].Y)
			}
		case entity.KindText:
			x, y := scalePoint(snap.X, snap.Y)
			if !s.doc.Texts.MoveTo(snap.ID, x, y) {
				continue
			}
		default:
			continue
		}
		s.markGeometryChanged(snap.ID)
		updated = true
	}
	return updated
}
