package document

import (
	"github.com/google/uuid"

	"github.com/dshills/vecstorm/internal/engine/entity"
	"github.com/dshills/vecstorm/internal/engine/history"
	"github.com/dshills/vecstorm/internal/engine/spatial"
	"github.com/dshills/vecstorm/internal/engine/textlayout"
	"github.com/dshills/vecstorm/internal/geom"
)

// ChangeMask flags which aspects of an entity changed.
type ChangeMask uint32

const (
	// ChangeGeometry marks position, size, rotation or point edits.
	ChangeGeometry ChangeMask = 1 << iota
	// ChangeBounds marks a bounding-box refresh.
	ChangeBounds
	// ChangeStyle marks fill or stroke edits.
	ChangeStyle
	// ChangeHierarchy marks layer or ordering edits.
	ChangeHierarchy
)

// Change is one queued entity notification.
type Change struct {
	ID   uint32
	Mask ChangeMask
}

// Context bundles everything a document edit needs to touch: the
// entity store, the spatial index, undo history, text layout, and the
// change queue consumed by downstream renderers and caches. Sessions
// receive it explicitly instead of reaching into engine globals.
type Context struct {
	ID      uuid.UUID
	Store   *entity.Store
	Index   *spatial.Index
	History *history.Manager
	Texts   *textlayout.Store

	generation uint64
	changes    []Change
	changeIdx  map[uint32]int
}

// NewContext creates an empty document with fresh collaborators.
func NewContext() *Context {
	return &Context{
		ID:        uuid.New(),
		Store:     entity.NewStore(),
		Index:     spatial.NewIndex(0),
		History:   history.NewManager(0),
		Texts:     textlayout.NewStore(),
		changeIdx: make(map[uint32]int),
	}
}

// Generation returns the document generation counter. It increments
// once per update that actually changed geometry.
func (c *Context) Generation() uint64 { return c.generation }

// BumpGeneration increments the generation counter.
func (c *Context) BumpGeneration() { c.generation++ }

// RecordEntityChanged queues a change notification for id, merging
// masks when the entity is already queued.
func (c *Context) RecordEntityChanged(id uint32, mask ChangeMask) {
	if i, ok := c.changeIdx[id]; ok {
		c.changes[i].Mask |= mask
		return
	}
	c.changeIdx[id] = len(c.changes)
	c.changes = append(c.changes, Change{ID: id, Mask: mask})
}

// DrainChanges returns and clears the queued notifications in the
// order they were first recorded.
func (c *Context) DrainChanges() []Change {
	out := c.changes
	c.changes = nil
	c.changeIdx = make(map[uint32]int)
	return out
}

// PendingChanges returns the number of queued notifications.
func (c *Context) PendingChanges() int { return len(c.changes) }

// Kind returns the kind for id across the entity and text stores.
func (c *Context) Kind(id uint32) (entity.Kind, bool) {
	return c.Store.Kind(id)
}

// AABB returns the current world bounds for id, resolving text
// entities through the text layout store.
func (c *Context) AABB(id uint32) (geom.AABB, bool) {
	if k, ok := c.Store.Kind(id); ok && k == entity.KindText {
		minX, minY, maxX, maxY, found := c.Texts.Bounds(id)
		if !found {
			return geom.AABB{}, false
		}
		return geom.AABB{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, true
	}
	return c.Store.AABB(id)
}

// RefreshIndex recomputes the spatial index entry for id from its
// current geometry. Unknown ids are removed from the index.
func (c *Context) RefreshIndex(id uint32) {
	box, ok := c.AABB(id)
	if !ok {
		c.Index.Remove(id)
		return
	}
	c.Index.Update(id, box)
}

// AddRect inserts a rectangle and indexes it.
func (c *Context) AddRect(r entity.RectRec) uint32 {
	id := c.Store.AddRect(r)
	c.RefreshIndex(id)
	return id
}

// AddCircle inserts a circle and indexes it.
func (c *Context) AddCircle(rec entity.CircleRec) uint32 {
	id := c.Store.AddCircle(rec)
	c.RefreshIndex(id)
	return id
}

// AddLine inserts a line and indexes it.
func (c *Context) AddLine(rec entity.LineRec) uint32 {
	id := c.Store.AddLine(rec)
	c.RefreshIndex(id)
	return id
}

// AddArrow inserts an arrow and indexes it.
func (c *Context) AddArrow(rec entity.ArrowRec) uint32 {
	id := c.Store.AddArrow(rec)
	c.RefreshIndex(id)
	return id
}

// AddPolyline inserts a polyline and indexes it.
func (c *Context) AddPolyline(rec entity.PolylineRec) uint32 {
	id := c.Store.AddPolyline(rec)
	c.RefreshIndex(id)
	return id
}

// AddPolygon inserts a polygon and indexes it.
func (c *Context) AddPolygon(rec entity.PolygonRec) uint32 {
	id := c.Store.AddPolygon(rec)
	c.RefreshIndex(id)
	return id
}

// AddText inserts a text record, registering its id in the entity
// directory and indexing its measured bounds.
func (c *Context) AddText(rec textlayout.TextRec) uint32 {
	if rec.ID == 0 {
		rec.ID = c.Store.NewID()
	}
	c.Store.RegisterText(rec.ID)
	c.Texts.Add(rec)
	c.RefreshIndex(rec.ID)
	return rec.ID
}

// Remove deletes an entity from every collaborator.
func (c *Context) Remove(id uint32) {
	if k, ok := c.Store.Kind(id); ok && k == entity.KindText {
		c.Texts.Remove(id)
	}
	c.Store.Remove(id)
	c.Index.Remove(id)
}
