package transform

import (
	"errors"
	"testing"

	"github.com/dshills/vecstorm/internal/document"
	"github.com/dshills/vecstorm/internal/engine/entity"
	"github.com/dshills/vecstorm/internal/engine/textlayout"
)

func testView() Viewport {
	return Viewport{X: 0, Y: 0, Scale: 1, Width: 800, Height: 600}
}

// screenAt converts a world position to the screen coordinates that
// map back to it under testView.
func screenAt(wx, wy float64) (float64, float64) {
	return wx, -wy
}

func newTestSession(t *testing.T) (*Session, *document.Context) {
	t.Helper()
	doc := document.NewContext()
	return NewSession(doc, DefaultConfig()), doc
}

func beginMove(t *testing.T, s *Session, ids []uint32, wx, wy float64) {
	t.Helper()
	sx, sy := screenAt(wx, wy)
	if err := s.Begin(ids, ModeMove, 0, NoTarget(), sx, sy, testView(), 0); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
}

func updateTo(s *Session, wx, wy float64, mods Modifiers) {
	sx, sy := screenAt(wx, wy)
	s.Update(sx, sy, testView(), mods)
}

func TestSessionBeginErrors(t *testing.T) {
	t.Run("empty selection", func(t *testing.T) {
		s, _ := newTestSession(t)
		err := s.Begin(nil, ModeMove, 0, NoTarget(), 0, 0, testView(), 0)
		if !errors.Is(err, ErrNoSelection) {
			t.Errorf("Begin() error = %v, want %v", err, ErrNoSelection)
		}
	})

	t.Run("unknown ids only", func(t *testing.T) {
		s, _ := newTestSession(t)
		err := s.Begin([]uint32{99, 100}, ModeMove, 0, NoTarget(), 0, 0, testView(), 0)
		if !errors.Is(err, ErrNoSelection) {
			t.Errorf("Begin() error = %v, want %v", err, ErrNoSelection)
		}
	})

	t.Run("already active", func(t *testing.T) {
		s, doc := newTestSession(t)
		id := doc.AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})
		beginMove(t, s, []uint32{id}, 5, 5)
		err := s.Begin([]uint32{id}, ModeMove, 0, NoTarget(), 5, -5, testView(), 0)
		if !errors.Is(err, ErrSessionActive) {
			t.Errorf("second Begin() error = %v, want %v", err, ErrSessionActive)
		}
	})
}

func TestMoveCommit(t *testing.T) {
	s, doc := newTestSession(t)
	id := doc.AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})

	beginMove(t, s, []uint32{id}, 5, 5)
	updateTo(s, 25, 15, 0)

	r, _ := doc.Store.Rect(id)
	if r.X != 20 || r.Y != 10 {
		t.Fatalf("rect moved to (%v, %v), want (20, 10)", r.X, r.Y)
	}
	if !s.State().Dragging {
		t.Error("State().Dragging = false after crossing threshold")
	}

	res := s.Commit()
	if res.GestureID == "" {
		t.Error("CommitResult.GestureID is empty")
	}
	if len(res.IDs) != 1 || res.IDs[0] != id {
		t.Fatalf("CommitResult.IDs = %v, want [%d]", res.IDs, id)
	}
	if res.OpCodes[0] != OpMove {
		t.Errorf("OpCodes[0] = %v, want %v", res.OpCodes[0], OpMove)
	}
	want := []float64{20, 10, 0, 0}
	for i, v := range want {
		if res.Payloads[i] != v {
			t.Errorf("Payloads[%d] = %v, want %v", i, res.Payloads[i], v)
		}
	}
	if s.State().Active {
		t.Error("session still active after Commit")
	}
	if !doc.History.CanUndo() {
		t.Error("history has no undo entry after committed drag")
	}
}

func TestCancelRestoresExactly(t *testing.T) {
	s, doc := newTestSession(t)
	rect := doc.AddRect(entity.RectRec{X: 1.25, Y: -3.5, W: 10, H: 10})
	line := doc.AddLine(entity.LineRec{X0: 0.1, Y0: 0.2, X1: 9.9, Y1: 7.7})

	beginMove(t, s, []uint32{rect, line}, 5, 5)
	updateTo(s, 50, 40, 0)
	updateTo(s, -30, 12, 0)
	s.Cancel()

	r, _ := doc.Store.Rect(rect)
	if r.X != 1.25 || r.Y != -3.5 {
		t.Errorf("rect at (%v, %v) after Cancel, want (1.25, -3.5)", r.X, r.Y)
	}
	l, _ := doc.Store.Line(line)
	if l.X0 != 0.1 || l.Y0 != 0.2 || l.X1 != 9.9 || l.Y1 != 7.7 {
		t.Errorf("line at (%v,%v)-(%v,%v) after Cancel, want original", l.X0, l.Y0, l.X1, l.Y1)
	}
	if doc.History.CanUndo() {
		t.Error("history entry survived Cancel")
	}
	if s.State().Active {
		t.Error("session still active after Cancel")
	}
}

func TestNoOpBelowThreshold(t *testing.T) {
	s, doc := newTestSession(t)
	id := doc.AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})
	genBefore := doc.Generation()

	beginMove(t, s, []uint32{id}, 5, 5)
	updateTo(s, 6, 6, 0) // ~1.4px, under the 3px threshold

	r, _ := doc.Store.Rect(id)
	if r.X != 0 || r.Y != 0 {
		t.Errorf("rect moved to (%v, %v) below threshold", r.X, r.Y)
	}
	if s.State().Dragging {
		t.Error("State().Dragging = true below threshold")
	}

	res := s.Commit()
	if !res.Empty() {
		t.Errorf("CommitResult not empty for sub-threshold gesture: %+v", res)
	}
	if doc.History.CanUndo() {
		t.Error("history entry created for sub-threshold gesture")
	}
	if doc.Generation() != genBefore {
		t.Errorf("generation = %d, want %d", doc.Generation(), genBefore)
	}
}

func TestCommitIdempotent(t *testing.T) {
	s, doc := newTestSession(t)
	id := doc.AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})

	beginMove(t, s, []uint32{id}, 5, 5)
	updateTo(s, 25, 5, 0)
	first := s.Commit()
	if first.Empty() {
		t.Fatal("first Commit() returned empty result")
	}
	second := s.Commit()
	if !second.Empty() || second.GestureID != "" {
		t.Errorf("second Commit() = %+v, want empty", second)
	}
	if got := doc.History.UndoCount(); got != 1 {
		t.Errorf("UndoCount() = %d, want 1", got)
	}
}

func TestUpdateAndCancelWithoutBegin(t *testing.T) {
	s, doc := newTestSession(t)
	id := doc.AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})

	s.Update(100, 100, testView(), 0)
	s.Cancel()

	r, _ := doc.Store.Rect(id)
	if r.X != 0 || r.Y != 0 {
		t.Errorf("rect moved without an active gesture: (%v, %v)", r.X, r.Y)
	}
}

func TestGenerationBumpsPerUpdate(t *testing.T) {
	s, doc := newTestSession(t)
	id := doc.AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})
	genBefore := doc.Generation()

	beginMove(t, s, []uint32{id}, 5, 5)
	updateTo(s, 25, 5, 0)
	updateTo(s, 30, 5, 0)
	s.Commit()

	if got := doc.Generation() - genBefore; got != 2 {
		t.Errorf("generation advanced by %d, want 2", got)
	}
}

func TestAltDragDuplicates(t *testing.T) {
	s, doc := newTestSession(t)
	id := doc.AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})

	t.Run("commit keeps original and copy", func(t *testing.T) {
		beginMove(t, s, []uint32{id}, 5, 5)
		updateTo(s, 25, 5, ModAlt)
		if doc.Store.Len() != 2 {
			t.Fatalf("Store.Len() = %d after alt drag, want 2", doc.Store.Len())
		}
		res := s.Commit()

		r, _ := doc.Store.Rect(id)
		if r.X != 0 || r.Y != 0 {
			t.Errorf("original rect moved to (%v, %v), want (0, 0)", r.X, r.Y)
		}
		if len(res.IDs) != 1 || res.IDs[0] == id {
			t.Fatalf("commit ids = %v, want one duplicate id", res.IDs)
		}
		dup, ok := doc.Store.Rect(res.IDs[0])
		if !ok {
			t.Fatal("duplicate rect missing after commit")
		}
		if dup.X != 20 || dup.Y != 0 {
			t.Errorf("duplicate at (%v, %v), want (20, 0)", dup.X, dup.Y)
		}
		doc.Remove(res.IDs[0])
	})

	t.Run("cancel deletes the copies", func(t *testing.T) {
		beginMove(t, s, []uint32{id}, 5, 5)
		updateTo(s, 25, 5, ModAlt)
		if doc.Store.Len() != 2 {
			t.Fatalf("Store.Len() = %d after alt drag, want 2", doc.Store.Len())
		}
		s.Cancel()
		if doc.Store.Len() != 1 {
			t.Errorf("Store.Len() = %d after Cancel, want 1", doc.Store.Len())
		}
		r, _ := doc.Store.Rect(id)
		if r.X != 0 || r.Y != 0 {
			t.Errorf("original rect at (%v, %v) after Cancel, want (0, 0)", r.X, r.Y)
		}
	})
}

func TestMoveAxisLockZeroesMinorAxis(t *testing.T) {
	s, doc := newTestSession(t)
	id := doc.AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})

	beginMove(t, s, []uint32{id}, 5, 5)
	// Strongly horizontal drag with shift held locks X and zeroes dy.
	updateTo(s, 45, 8, ModShift)

	r, _ := doc.Store.Rect(id)
	if r.X != 40 {
		t.Errorf("rect X = %v, want 40", r.X)
	}
	if r.Y != 0 {
		t.Errorf("rect Y = %v, want 0 under X lock", r.Y)
	}
}

func TestTextMovePreservesBoundsOffsets(t *testing.T) {
	s, doc := newTestSession(t)
	id := doc.AddText(textlayout.TextRec{X: 10, Y: 20, Content: "hello", FontSize: 16})
	txt, _ := doc.Texts.Get(id)
	offMaxX := txt.MaxX - txt.X
	offMaxY := txt.MaxY - txt.Y

	beginMove(t, s, []uint32{id}, 10, 20)
	updateTo(s, 40, 50, 0)
	s.Commit()

	txt, _ = doc.Texts.Get(id)
	if txt.X != 40 || txt.Y != 50 {
		t.Fatalf("text at (%v, %v), want (40, 50)", txt.X, txt.Y)
	}
	if got := txt.MaxX - txt.X; got != offMaxX {
		t.Errorf("MaxX offset = %v, want %v", got, offMaxX)
	}
	if got := txt.MaxY - txt.Y; got != offMaxY {
		t.Errorf("MaxY offset = %v, want %v", got, offMaxY)
	}
}
