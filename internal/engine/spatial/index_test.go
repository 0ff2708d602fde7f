package spatial

import (
	"testing"

	"github.com/dshills/vecstorm/internal/geom"
)

func TestIndex(t *testing.T) {
	t.Run("query hits intersecting boxes", func(t *testing.T) {
		ix := NewIndex(0)
		ix.Insert(1, geom.AABB{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})
		ix.Insert(2, geom.AABB{MinX: 100, MinY: 100, MaxX: 110, MaxY: 110})
		ix.Insert(3, geom.AABB{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15})

		got := ix.QueryArea(geom.AABB{MinX: 0, MinY: 0, MaxX: 12, MaxY: 12})
		want := []uint32{1, 3}
		if len(got) != len(want) {
			t.Fatalf("QueryArea = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("QueryArea[%d] = %d, want %d", i, got[i], want[i])
			}
		}
	})

	t.Run("update moves entity between cells", func(t *testing.T) {
		ix := NewIndex(64)
		ix.Insert(7, geom.AABB{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})
		ix.Update(7, geom.AABB{MinX: 500, MinY: 500, MaxX: 510, MaxY: 510})

		if got := ix.QueryArea(geom.AABB{MinX: 0, MinY: 0, MaxX: 20, MaxY: 20}); len(got) != 0 {
			t.Errorf("old cell still reports entity: %v", got)
		}
		got := ix.QueryArea(geom.AABB{MinX: 490, MinY: 490, MaxX: 520, MaxY: 520})
		if len(got) != 1 || got[0] != 7 {
			t.Errorf("new cell query = %v, want [7]", got)
		}
	})

	t.Run("remove", func(t *testing.T) {
		ix := NewIndex(64)
		ix.Insert(1, geom.AABB{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})
		ix.Remove(1)
		if ix.Len() != 0 {
			t.Errorf("Len = %d after remove, want 0", ix.Len())
		}
		if got := ix.QueryArea(geom.AABB{MinX: -1, MinY: -1, MaxX: 11, MaxY: 11}); len(got) != 0 {
			t.Errorf("QueryArea after remove = %v", got)
		}
		// Removing twice is harmless.
		ix.Remove(1)
	})

	t.Run("large box spans multiple cells once", func(t *testing.T) {
		ix := NewIndex(64)
		ix.Insert(9, geom.AABB{MinX: -100, MinY: -100, MaxX: 200, MaxY: 200})
		got := ix.QueryArea(geom.AABB{MinX: -150, MinY: -150, MaxX: 250, MaxY: 250})
		if len(got) != 1 || got[0] != 9 {
			t.Errorf("QueryArea = %v, want [9]", got)
		}
	})
}
