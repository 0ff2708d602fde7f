package transform

import (
	"math"

	"github.com/dshills/vecstorm/internal/document"
	"github.com/dshills/vecstorm/internal/engine/entity"
	"github.com/dshills/vecstorm/internal/geom"
)

// SnapTargetKind classifies the geometry feature a snap aligned to.
type SnapTargetKind uint8

const (
	// SnapTargetEdge is a bounding-box edge; it carries no point.
	SnapTargetEdge SnapTargetKind = iota
	// SnapTargetEndpoint is a segment endpoint or vertex.
	SnapTargetEndpoint
	// SnapTargetMidpoint is a segment midpoint.
	SnapTargetMidpoint
	// SnapTargetCenter is a bounding-box center.
	SnapTargetCenter
)

// SnapHit is one feature point the current frame aligned to, for
// overlay feedback.
type SnapHit struct {
	Kind SnapTargetKind
	X    float64
	Y    float64
}

// SnapGuide is a guide segment for overlay rendering.
type SnapGuide struct {
	X0 float64
	Y0 float64
	X1 float64
	Y1 float64
}

// SnapResult is the outcome of one object-snap solve. DX and DY are
// world-space corrections added to the drag deltas on the axes that
// snapped.
type SnapResult struct {
	SnappedX       bool
	SnappedY       bool
	DX             float64
	DY             float64
	Hits           []SnapHit
	Guides         []SnapGuide
	CandidateCount int
}

// applyGridSnap rounds a world position to the nearest grid multiple.
func applyGridSnap(x, y float64, opts SnapOptions) (float64, float64) {
	if !opts.GridEnabled || opts.GridSize <= 0 || !geom.IsFinite(opts.GridSize) {
		return x, y
	}
	g := opts.GridSize
	return math.Round(x/g) * g, math.Round(y/g) * g
}

// axisBest tracks the closest candidate on one axis.
type axisBest struct {
	snapped  bool
	delta    float64
	guide    float64
	dist     float64
	kind     SnapTargetKind
	pointX   float64
	pointY   float64
	hasPoint bool
}

func (b *axisBest) consider(candidate, pointX, pointY float64, kind SnapTargetKind, targets []float64, tol float64) {
	for _, target := range targets {
		delta := candidate - target
		dist := math.Abs(delta)
		if dist <= tol && (!b.snapped || dist < b.dist) {
			b.snapped = true
			b.dist = dist
			b.delta = delta
			b.guide = candidate
			b.kind = kind
			b.pointX = pointX
			b.pointY = pointY
			b.hasPoint = kind != SnapTargetEdge
		}
	}
}

// worldTolerance converts the pixel tolerance to world units.
func worldTolerance(tolerancePx, viewScale float64) float64 {
	px := tolerancePx
	if px <= 0 {
		px = 10
	}
	if viewScale <= 1e-6 || !geom.IsFinite(viewScale) {
		return px
	}
	return px / viewScale
}

// computeObjectSnap aligns the moved selection bounds against nearby
// entities. X and Y are solved independently; each axis takes its
// closest candidate within tolerance. Candidates come from bounding
// box edges and, per options, centers, endpoints and midpoints of
// every non-moving entity near the moved box.
func computeObjectSnap(
	doc *document.Context,
	opts SnapOptions,
	movingIDs []uint32,
	base geom.AABB,
	totalDx, totalDy float64,
	view Viewport,
	allowX, allowY bool,
) SnapResult {
	var result SnapResult
	if !opts.ObjectSnapActive() || (!allowX && !allowY) {
		return result
	}

	tol := worldTolerance(opts.TolerancePx, view.Scale)
	moved := base.Translate(totalDx, totalDy)

	targetXs := []float64{moved.MinX, moved.MaxX}
	targetYs := []float64{moved.MinY, moved.MaxY}
	if opts.Center {
		targetXs = append(targetXs, moved.CenterX())
		targetYs = append(targetYs, moved.CenterY())
	}

	moving := make(map[uint32]struct{}, len(movingIDs))
	for _, id := range movingIDs {
		moving[id] = struct{}{}
	}

	candidates := doc.Index.QueryArea(moved.Inflate(tol))
	result.CandidateCount = len(candidates)
	var bestX, bestY axisBest

	for _, id := range candidates {
		if _, isMoving := moving[id]; isMoving {
			continue
		}
		box, ok := doc.AABB(id)
		if !ok {
			continue
		}

		if allowX {
			bestX.consider(box.MinX, box.MinX, 0, SnapTargetEdge, targetXs, tol)
			bestX.consider(box.MaxX, box.MaxX, 0, SnapTargetEdge, targetXs, tol)
		}
		if allowY {
			bestY.consider(box.MinY, 0, box.MinY, SnapTargetEdge, targetYs, tol)
			bestY.consider(box.MaxY, 0, box.MaxY, SnapTargetEdge, targetYs, tol)
		}

		if opts.Center {
			cx, cy := box.CenterX(), box.CenterY()
			if allowX {
				bestX.consider(cx, cx, cy, SnapTargetCenter, targetXs, tol)
			}
			if allowY {
				bestY.consider(cy, cx, cy, SnapTargetCenter, targetYs, tol)
			}
		}
		if opts.Endpoint {
			for _, p := range endpointCandidates(doc, id) {
				if allowX {
					bestX.consider(p.X, p.X, p.Y, SnapTargetEndpoint, targetXs, tol)
				}
				if allowY {
					bestY.consider(p.Y, p.X, p.Y, SnapTargetEndpoint, targetYs, tol)
				}
			}
		}
		if opts.Midpoint {
			for _, p := range midpointCandidates(doc, id) {
				if allowX {
					bestX.consider(p.X, p.X, p.Y, SnapTargetMidpoint, targetXs, tol)
				}
				if allowY {
					bestY.consider(p.Y, p.X, p.Y, SnapTargetMidpoint, targetYs, tol)
				}
			}
		}
	}

	if allowX && bestX.snapped {
		result.SnappedX = true
		result.DX = bestX.delta
	}
	if allowY && bestY.snapped {
		result.SnappedY = true
		result.DY = bestY.delta
	}
	if !result.SnappedX && !result.SnappedY {
		return result
	}

	result.Hits = collectHits(result, bestX, bestY)

	guideBox := moved
	if visible, ok := view.VisibleWorld(); ok {
		guideBox = visible
	}
	if result.SnappedX {
		result.Guides = append(result.Guides, SnapGuide{
			X0: bestX.guide, Y0: guideBox.MinY,
			X1: bestX.guide, Y1: guideBox.MaxY,
		})
	}
	if result.SnappedY {
		result.Guides = append(result.Guides, SnapGuide{
			X0: guideBox.MinX, Y0: bestY.guide,
			X1: guideBox.MaxX, Y1: bestY.guide,
		})
	}
	return result
}

// collectHits reports at most two feature points, deduplicating the
// case where both axes snapped to the same point.
func collectHits(result SnapResult, bestX, bestY axisBest) []SnapHit {
	var hits []SnapHit
	push := func(b axisBest) {
		if !b.hasPoint || len(hits) >= 2 {
			return
		}
		hits = append(hits, SnapHit{Kind: b.kind, X: b.pointX, Y: b.pointY})
	}

	const eps = 1e-4
	samePoint := bestX.hasPoint && bestY.hasPoint &&
		bestX.kind == bestY.kind &&
		math.Abs(bestX.pointX-bestY.pointX) <= eps &&
		math.Abs(bestX.pointY-bestY.pointY) <= eps

	if result.SnappedX && result.SnappedY && samePoint {
		push(bestX)
		return hits
	}
	if result.SnappedX {
		push(bestX)
	}
	if result.SnappedY {
		duplicate := len(hits) > 0 &&
			hits[0].Kind == bestY.kind &&
			math.Abs(hits[0].X-bestY.pointX) <= eps &&
			math.Abs(hits[0].Y-bestY.pointY) <= eps
		if !duplicate {
			push(bestY)
		}
	}
	return hits
}

// endpointCandidates returns the vertex feature points of an entity.
func endpointCandidates(doc *document.Context, id uint32) []geom.Point {
	kind, ok := doc.Kind(id)
	if !ok {
		return nil
	}
	switch kind {
	case entity.KindLine:
		if l, ok := doc.Store.Line(id); ok {
			return []geom.Point{{X: l.X0, Y: l.Y0}, {X: l.X1, Y: l.Y1}}
		}
	case entity.KindArrow:
		if a, ok := doc.Store.Arrow(id); ok {
			return []geom.Point{{X: a.AX, Y: a.AY}, {X: a.BX, Y: a.BY}}
		}
	case entity.KindPolyline:
		if p, ok := doc.Store.Polyline(id); ok {
			return p.Points
		}
	case entity.KindPolygon:
		if p, ok := doc.Store.Polygon(id); ok {
			return p.Vertices()
		}
	}
	return nil
}

// midpointCandidates returns the segment midpoints of an entity.
// Polygons include the closing edge.
func midpointCandidates(doc *document.Context, id uint32) []geom.Point {
	kind, ok := doc.Kind(id)
	if !ok {
		return nil
	}
	switch kind {
	case entity.KindLine:
		if l, ok := doc.Store.Line(id); ok {
			return []geom.Point{{X: (l.X0 + l.X1) * 0.5, Y: (l.Y0 + l.Y1) * 0.5}}
		}
	case entity.KindArrow:
		if a, ok := doc.Store.Arrow(id); ok {
			return []geom.Point{{X: (a.AX + a.BX) * 0.5, Y: (a.AY + a.BY) * 0.5}}
		}
	case entity.KindPolyline:
		p, ok := doc.Store.Polyline(id)
		if !ok || len(p.Points) < 2 {
			return nil
		}
		mids := make([]geom.Point, 0, len(p.Points)-1)
		for i := 0; i+1 < len(p.Points); i++ {
			mids = append(mids, geom.Point{
				X: (p.Points[i].X + p.Points[i+1].X) * 0.5,
				Y: (p.Points[i].Y + p.Points[i+1].Y) * 0.5,
			})
		}
		return mids
	case entity.KindPolygon:
		p, ok := doc.Store.Polygon(id)
		if !ok {
			return nil
		}
		verts := p.Vertices()
		mids := make([]geom.Point, 0, len(verts))
		for i := range verts {
			next := verts[(i+1)%len(verts)]
			mids = append(mids, geom.Point{
				X: (verts[i].X + next.X) * 0.5,
				Y: (verts[i].Y + next.Y) * 0.5,
			})
		}
		return mids
	}
	return nil
}
