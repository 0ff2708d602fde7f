package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/vecstorm/internal/config"
	"github.com/dshills/vecstorm/internal/engine/entity"
	"github.com/dshills/vecstorm/internal/transform"
)

func testView() transform.Viewport {
	return transform.Viewport{Scale: 1, Width: 800, Height: 600}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(Options{Logger: NullLogger})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func TestEngineMoveGesture(t *testing.T) {
	e := newTestEngine(t)
	id := e.Document().AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})

	// World y is negated on screen.
	if err := e.BeginTransform([]uint32{id}, transform.ModeMove, 0, transform.NoTarget(), 5, -5, testView(), 0); err != nil {
		t.Fatalf("BeginTransform() error = %v", err)
	}
	e.UpdateTransform(25, -15, testView(), 0)
	res := e.CommitTransform()

	r, _ := e.Document().Store.Rect(id)
	if r.X != 20 || r.Y != 10 {
		t.Errorf("rect = (%v, %v), want (20, 10)", r.X, r.Y)
	}
	if len(res.IDs) != 1 {
		t.Errorf("commit ops = %d, want 1", len(res.IDs))
	}

	s := e.Metrics().Snapshot()
	if s.GesturesBegun != 1 || s.GesturesCommitted != 1 || s.UpdateCount != 1 {
		t.Errorf("metrics = %+v, want one begin, update and commit", s)
	}
	if s.OpsCommitted != 1 {
		t.Errorf("OpsCommitted = %d, want 1", s.OpsCommitted)
	}
}

func TestEngineCancelTracksMetrics(t *testing.T) {
	e := newTestEngine(t)
	id := e.Document().AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})

	// Cancel without an active gesture is a no-op.
	e.CancelTransform()

	if err := e.BeginTransform([]uint32{id}, transform.ModeMove, 0, transform.NoTarget(), 5, -5, testView(), 0); err != nil {
		t.Fatalf("BeginTransform() error = %v", err)
	}
	e.CancelTransform()

	if got := e.Metrics().Snapshot().GesturesCancelled; got != 1 {
		t.Errorf("GesturesCancelled = %d, want 1", got)
	}
}

func TestEngineLoadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecstorm.toml")
	content := "[gesture]\ndrag_threshold_px = 9.0\n\n[log]\nenabled = true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	e, err := New(Options{ConfigPath: path, Logger: NullLogger})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer e.Close()

	if got := e.Session().Config().DragThresholdPx; got != 9 {
		t.Errorf("DragThresholdPx = %v, want 9", got)
	}
	if !e.Session().Log().Enabled() {
		t.Error("gesture log disabled, config enables it")
	}
}

func TestEngineApplyConfig(t *testing.T) {
	e := newTestEngine(t)

	file := config.Default()
	file.Snap.GridEnabled = true
	file.Gesture.RotationSnapDeg = 30
	e.ApplyConfig(file)

	if !e.TransformOptions().Snap.GridEnabled {
		t.Error("grid option not applied")
	}
	if got := e.Session().Config().RotationSnapDeg; got != 30 {
		t.Errorf("RotationSnapDeg = %v, want 30", got)
	}
}

func TestEngineConfigFrozenMidGesture(t *testing.T) {
	e := newTestEngine(t)
	id := e.Document().AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})

	if err := e.BeginTransform([]uint32{id}, transform.ModeMove, 0, transform.NoTarget(), 5, -5, testView(), 0); err != nil {
		t.Fatalf("BeginTransform() error = %v", err)
	}

	file := config.Default()
	file.Gesture.DragThresholdPx = 50
	e.ApplyConfig(file)

	if got := e.Session().Config().DragThresholdPx; got == 50 {
		t.Error("tuning constants replaced mid-gesture")
	}
	e.CommitTransform()
}

func TestEngineReplay(t *testing.T) {
	e := newTestEngine(t)
	id := e.Document().AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})

	e.Session().Log().SetEnabled(true)
	if err := e.BeginTransform([]uint32{id}, transform.ModeMove, 0, transform.NoTarget(), 5, -5, testView(), 0); err != nil {
		t.Fatalf("BeginTransform() error = %v", err)
	}
	e.UpdateTransform(25, -15, testView(), 0)
	e.CommitTransform()

	e2 := newTestEngine(t)
	e2.Document().AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})
	if _, err := e2.Replay(e.Session().Log().Entries()); err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	r, _ := e2.Document().Store.Rect(id)
	if r.X != 20 || r.Y != 10 {
		t.Errorf("replayed rect = (%v, %v), want (20, 10)", r.X, r.Y)
	}
}
