package transform

import (
	"math"
	"testing"

	"github.com/dshills/vecstorm/internal/engine/entity"
	"github.com/dshills/vecstorm/internal/geom"
)

func beginRotate(t *testing.T, s *Session, ids []uint32, wx, wy float64) {
	t.Helper()
	sx, sy := screenAt(wx, wy)
	if err := s.Begin(ids, ModeRotate, 0, NoTarget(), sx, sy, testView(), 0); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
}

// rotateTo drives the pointer to the given angle around the origin at
// a fixed radius.
func rotateTo(s *Session, angleDeg, radius float64) {
	rad := geom.Radians(angleDeg)
	updateTo(s, radius*math.Cos(rad), radius*math.Sin(rad), 0)
}

func TestRotateWraparound(t *testing.T) {
	s, doc := newTestSession(t)
	id := doc.AddRect(entity.RectRec{X: -10, Y: -10, W: 20, H: 20})

	// Pivot is the rect center (0, 0); start at angle 0.
	beginRotate(t, s, []uint32{id}, 50, 0)
	rotateTo(s, 90, 50)
	rotateTo(s, 179, 50)
	rotateTo(s, -179, 50) // crosses the seam: +2 degrees, not -358

	st := s.State()
	if math.Abs(st.RotationDeltaDeg-181) > 1e-9 {
		t.Errorf("RotationDeltaDeg = %v, want 181", st.RotationDeltaDeg)
	}
	r, _ := doc.Store.Rect(id)
	if math.Abs(r.Rot-geom.Radians(181)) > 1e-9 {
		t.Errorf("rect rotation = %v rad, want %v", r.Rot, geom.Radians(181))
	}
	if r.X != -10 || r.Y != -10 {
		t.Errorf("single-entity rotate moved rect to (%v, %v)", r.X, r.Y)
	}
}

func TestRotateShiftSnapsAccumulated(t *testing.T) {
	s, doc := newTestSession(t)
	id := doc.AddRect(entity.RectRec{X: -10, Y: -10, W: 20, H: 20})

	beginRotate(t, s, []uint32{id}, 50, 0)
	rad := geom.Radians(37)
	sx, sy := screenAt(50*math.Cos(rad), 50*math.Sin(rad))
	s.Update(sx, sy, testView(), ModShift)

	r, _ := doc.Store.Rect(id)
	if math.Abs(r.Rot-geom.Radians(30)) > 1e-9 {
		t.Errorf("rect rotation = %v rad with shift, want %v (30 deg)", r.Rot, geom.Radians(30))
	}
	// The accumulator itself stays unsnapped.
	if got := s.State().RotationDeltaDeg; math.Abs(got-37) > 1e-9 {
		t.Errorf("RotationDeltaDeg = %v, want 37", got)
	}
}

func TestRotateGroupOrbitsPivot(t *testing.T) {
	s, doc := newTestSession(t)
	// Centers at (10, 0) and (-10, 0); shared pivot at the origin.
	a := doc.AddCircle(entity.CircleRec{CX: 10, CY: 0, RX: 2, RY: 2})
	b := doc.AddCircle(entity.CircleRec{CX: -10, CY: 0, RX: 2, RY: 2})

	beginRotate(t, s, []uint32{a, b}, 20, 0)
	rotateTo(s, 90, 20)
	s.Commit()

	ca, _ := doc.Store.Circle(a)
	if math.Abs(ca.CX) > 1e-9 || math.Abs(ca.CY-10) > 1e-9 {
		t.Errorf("circle a center = (%v, %v), want (0, 10)", ca.CX, ca.CY)
	}
	cb, _ := doc.Store.Circle(b)
	if math.Abs(cb.CX) > 1e-9 || math.Abs(cb.CY+10) > 1e-9 {
		t.Errorf("circle b center = (%v, %v), want (0, -10)", cb.CX, cb.CY)
	}
	if math.Abs(ca.Rot-geom.Radians(90)) > 1e-9 {
		t.Errorf("circle a rotation = %v, want %v", ca.Rot, geom.Radians(90))
	}
}

func TestRotateCommitPayload(t *testing.T) {
	s, doc := newTestSession(t)
	id := doc.AddRect(entity.RectRec{X: -10, Y: -10, W: 20, H: 20})

	beginRotate(t, s, []uint32{id}, 50, 0)
	rotateTo(s, 90, 50)
	res := s.Commit()

	if len(res.IDs) != 1 || res.OpCodes[0] != OpRotate {
		t.Fatalf("commit = ids %v opcodes %v, want one OpRotate", res.IDs, res.OpCodes)
	}
	if math.Abs(res.Payloads[0]-geom.Radians(90)) > 1e-9 {
		t.Errorf("payload rotation = %v, want %v", res.Payloads[0], geom.Radians(90))
	}
	if res.Payloads[1] != 0 || res.Payloads[2] != 0 {
		t.Errorf("payload center = (%v, %v), want (0, 0)", res.Payloads[1], res.Payloads[2])
	}
}
