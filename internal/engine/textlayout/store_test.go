package textlayout

import "testing"

func TestStore(t *testing.T) {
	t.Run("add measures bounds", func(t *testing.T) {
		s := NewStore()
		s.Add(TextRec{ID: 1, X: 10, Y: 20, Content: "hello", FontSize: 10})
		minX, minY, maxX, maxY, ok := s.Bounds(1)
		if !ok {
			t.Fatal("Bounds missing")
		}
		if minX != 10 || minY != 20 {
			t.Errorf("bounds min = (%v, %v), want (10, 20)", minX, minY)
		}
		if maxX <= minX || maxY <= minY {
			t.Errorf("bounds not positive: (%v, %v)-(%v, %v)", minX, minY, maxX, maxY)
		}
	})

	t.Run("move translates cached bounds", func(t *testing.T) {
		s := NewStore()
		s.Add(TextRec{ID: 2, X: 0, Y: 0, Content: "ab", FontSize: 10})
		_, _, maxX0, maxY0, _ := s.Bounds(2)

		if !s.MoveTo(2, 100, 50) {
			t.Fatal("MoveTo failed")
		}
		minX, minY, maxX, maxY, _ := s.Bounds(2)
		if minX != 100 || minY != 50 {
			t.Errorf("moved min = (%v, %v), want (100, 50)", minX, minY)
		}
		if maxX-minX != maxX0 || maxY-minY != maxY0 {
			t.Errorf("extent changed by move: (%v, %v) vs (%v, %v)", maxX-minX, maxY-minY, maxX0, maxY0)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		s := NewStore()
		if s.MoveTo(99, 0, 0) {
			t.Error("MoveTo(99) succeeded")
		}
		if _, _, _, _, ok := s.Bounds(99); ok {
			t.Error("Bounds(99) succeeded")
		}
	})
}
