package transform

import (
	"testing"

	"github.com/dshills/vecstorm/internal/engine/entity"
	"github.com/dshills/vecstorm/internal/geom"
)

func TestApplyGridSnap(t *testing.T) {
	opts := SnapOptions{GridEnabled: true, GridSize: 10}

	tests := []struct {
		name       string
		x, y       float64
		wantX      float64
		wantY      float64
		gridOff    bool
		badGrid    float64
		useBadGrid bool
	}{
		{name: "rounds to nearest multiple", x: 13, y: 27, wantX: 10, wantY: 30},
		{name: "rounds negative", x: -4.9, y: -5.1, wantX: 0, wantY: -10},
		{name: "disabled passes through", x: 13, y: 27, wantX: 13, wantY: 27, gridOff: true},
		{name: "zero size passes through", x: 13, y: 27, wantX: 13, wantY: 27, useBadGrid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := opts
			if tt.gridOff {
				o.GridEnabled = false
			}
			if tt.useBadGrid {
				o.GridSize = tt.badGrid
			}
			gx, gy := applyGridSnap(tt.x, tt.y, o)
			if gx != tt.wantX || gy != tt.wantY {
				t.Errorf("applyGridSnap(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, gx, gy, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestObjectSnapEdgeAlignment(t *testing.T) {
	s, doc := newTestSession(t)
	moving := doc.AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})
	// Tall neighbor: its left edge aligns on X while its own Y edges
	// stay outside the tolerance.
	doc.AddRect(entity.RectRec{X: 100, Y: -15, W: 10, H: 40})

	opts := DefaultOptions()
	opts.Snap.Center = false
	s.SetOptions(opts)

	beginMove(t, s, []uint32{moving}, 5, 5)
	// Raw drag puts the moving right edge at 102; the stationary left
	// edge at 100 is within the 10px tolerance.
	updateTo(s, 97, 5, 0)

	r, _ := doc.Store.Rect(moving)
	if r.X != 90 {
		t.Errorf("rect X = %v, want snapped to 90", r.X)
	}
	if r.Y != 0 {
		t.Errorf("rect Y = %v, want 0", r.Y)
	}

	guides := s.Guides()
	if len(guides) != 1 {
		t.Fatalf("len(Guides()) = %d, want 1", len(guides))
	}
	if guides[0].X0 != 100 || guides[0].X1 != 100 {
		t.Errorf("guide at x=%v/%v, want 100", guides[0].X0, guides[0].X1)
	}

	stats := s.Stats()
	if stats.LastSnapHits != 1 {
		t.Errorf("LastSnapHits = %d, want 1", stats.LastSnapHits)
	}
	if stats.LastSnapCandidates == 0 {
		t.Error("LastSnapCandidates = 0, want > 0")
	}
	// Edge alignments carry no feature point.
	if hits := s.Hits(); len(hits) != 0 {
		t.Errorf("Hits() = %v, want none for edge snap", hits)
	}
}

func TestObjectSnapSuppressed(t *testing.T) {
	s, doc := newTestSession(t)
	moving := doc.AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})
	doc.AddRect(entity.RectRec{X: 100, Y: 0, W: 10, H: 10})

	beginMove(t, s, []uint32{moving}, 5, 5)
	updateTo(s, 97, 5, ModCtrl)

	r, _ := doc.Store.Rect(moving)
	if r.X != 92 {
		t.Errorf("rect X = %v with snap suppressed, want raw 92", r.X)
	}
	if len(s.Guides()) != 0 {
		t.Errorf("guides produced while suppressed")
	}
}

func TestObjectSnapBeyondTolerance(t *testing.T) {
	s, doc := newTestSession(t)
	moving := doc.AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})
	doc.AddRect(entity.RectRec{X: 100, Y: 0, W: 10, H: 10})

	beginMove(t, s, []uint32{moving}, 5, 5)
	// Right edge lands at 60, 40 units short of any candidate.
	updateTo(s, 55, 5, 0)

	r, _ := doc.Store.Rect(moving)
	if r.X != 50 {
		t.Errorf("rect X = %v, want unsnapped 50", r.X)
	}
}

func TestObjectSnapEndpointHit(t *testing.T) {
	s, doc := newTestSession(t)
	moving := doc.AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})
	// The middle vertex x=54 is strictly inside the polyline bounds,
	// so only the endpoint candidate explains a snap to it.
	doc.AddPolyline(entity.PolylineRec{Points: []geom.Point{
		{X: 50, Y: -40}, {X: 54, Y: 15}, {X: 60, Y: -40},
	}})

	opts := DefaultOptions()
	opts.Snap.Midpoint = false
	opts.Snap.Center = false
	s.SetOptions(opts)

	beginMove(t, s, []uint32{moving}, 5, 5)
	// Right edge lands at 53.5; the vertex at 54 is the closest
	// candidate.
	updateTo(s, 48.5, 5, 0)

	r, _ := doc.Store.Rect(moving)
	if r.X != 44 {
		t.Errorf("rect X = %v, want snapped to 44", r.X)
	}
	hits := s.Hits()
	if len(hits) != 1 {
		t.Fatalf("len(Hits()) = %d, want 1", len(hits))
	}
	if hits[0].Kind != SnapTargetEndpoint {
		t.Errorf("hit kind = %v, want %v", hits[0].Kind, SnapTargetEndpoint)
	}
	if hits[0].X != 54 || hits[0].Y != 15 {
		t.Errorf("hit point = (%v, %v), want (54, 15)", hits[0].X, hits[0].Y)
	}
}

func TestObjectSnapAxisLockRestriction(t *testing.T) {
	s, doc := newTestSession(t)
	moving := doc.AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})
	doc.AddRect(entity.RectRec{X: 100, Y: -15, W: 10, H: 40})

	opts := DefaultOptions()
	opts.Snap.Center = false
	s.SetOptions(opts)

	beginMove(t, s, []uint32{moving}, 5, 5)
	// Shift locks X on this strongly horizontal drag; the locked-out
	// Y axis keeps its zeroed delta while X still snaps.
	updateTo(s, 97, 6, ModShift)

	r, _ := doc.Store.Rect(moving)
	if r.Y != 0 {
		t.Errorf("rect Y = %v under X lock, want 0", r.Y)
	}
	if r.X != 90 {
		t.Errorf("rect X = %v, want snapped to 90", r.X)
	}
}

func TestWorldTolerance(t *testing.T) {
	if got := worldTolerance(10, 2); got != 5 {
		t.Errorf("worldTolerance(10, 2) = %v, want 5", got)
	}
	if got := worldTolerance(0, 2); got != 5 {
		t.Errorf("worldTolerance(0, 2) = %v, want default 10px -> 5", got)
	}
	if got := worldTolerance(10, 0); got != 10 {
		t.Errorf("worldTolerance(10, 0) = %v, want 10 at degenerate scale", got)
	}
}
