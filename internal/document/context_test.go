package document

import (
	"testing"

	"github.com/dshills/vecstorm/internal/engine/entity"
	"github.com/dshills/vecstorm/internal/engine/textlayout"
	"github.com/dshills/vecstorm/internal/geom"
)

func TestContext(t *testing.T) {
	t.Run("add indexes entity", func(t *testing.T) {
		ctx := NewContext()
		id := ctx.AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})
		got := ctx.Index.QueryArea(geom.AABB{MinX: -1, MinY: -1, MaxX: 11, MaxY: 11})
		if len(got) != 1 || got[0] != id {
			t.Errorf("QueryArea = %v, want [%d]", got, id)
		}
	})

	t.Run("refresh follows geometry", func(t *testing.T) {
		ctx := NewContext()
		id := ctx.AddRect(entity.RectRec{X: 0, Y: 0, W: 10, H: 10})
		r, _ := ctx.Store.Rect(id)
		r.X = 500
		ctx.RefreshIndex(id)
		if got := ctx.Index.QueryArea(geom.AABB{MinX: -1, MinY: -1, MaxX: 11, MaxY: 11}); len(got) != 0 {
			t.Errorf("stale index entry: %v", got)
		}
	})

	t.Run("change queue merges masks", func(t *testing.T) {
		ctx := NewContext()
		ctx.RecordEntityChanged(5, ChangeGeometry)
		ctx.RecordEntityChanged(5, ChangeBounds)
		ctx.RecordEntityChanged(6, ChangeGeometry)

		changes := ctx.DrainChanges()
		if len(changes) != 2 {
			t.Fatalf("len(changes) = %d, want 2", len(changes))
		}
		if changes[0].ID != 5 || changes[0].Mask != ChangeGeometry|ChangeBounds {
			t.Errorf("changes[0] = %+v", changes[0])
		}
		if ctx.PendingChanges() != 0 {
			t.Errorf("PendingChanges = %d after drain", ctx.PendingChanges())
		}
	})

	t.Run("text entity resolves through layout store", func(t *testing.T) {
		ctx := NewContext()
		id := ctx.AddText(textlayout.TextRec{X: 10, Y: 10, Content: "hi", FontSize: 12})
		if k, ok := ctx.Kind(id); !ok || k != entity.KindText {
			t.Errorf("Kind = %v, %v", k, ok)
		}
		box, ok := ctx.AABB(id)
		if !ok || box.MinX != 10 || box.MinY != 10 {
			t.Errorf("AABB = %+v, %v", box, ok)
		}
	})

	t.Run("remove clears all collaborators", func(t *testing.T) {
		ctx := NewContext()
		id := ctx.AddCircle(entity.CircleRec{CX: 0, CY: 0, RX: 5, RY: 5})
		ctx.Remove(id)
		if _, ok := ctx.Kind(id); ok {
			t.Error("Kind resolved after remove")
		}
		if got := ctx.Index.QueryArea(geom.AABB{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10}); len(got) != 0 {
			t.Errorf("index entry after remove: %v", got)
		}
	})
}
