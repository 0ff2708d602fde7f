package entity

import (
	"sync/atomic"

	"github.com/dshills/vecstorm/internal/geom"
)

// Ref locates an entity record: its kind plus the arena handle for
// that kind. Text entities carry no handle; their records live in the
// text layout store.
type Ref struct {
	Kind   Kind
	handle Handle
}

// Store owns the geometry records for a document, one slot arena per
// kind plus an id directory. Lookups by id never scan; they resolve
// through the directory to a generation-checked handle.
//
// Store is not safe for concurrent mutation; the transform session and
// its callers run on a single goroutine.
type Store struct {
	rects     Arena[RectRec]
	circles   Arena[CircleRec]
	lines     Arena[LineRec]
	arrows    Arena[ArrowRec]
	polylines Arena[PolylineRec]
	polygons  Arena[PolygonRec]

	refs   map[uint32]Ref
	nextID atomic.Uint32
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{refs: make(map[uint32]Ref)}
}

// NewID allocates the next entity id. IDs are never reused.
func (s *Store) NewID() uint32 {
	return s.nextID.Add(1)
}

// claimID advances the allocator past an explicitly supplied id so a
// later NewID never reissues it.
func (s *Store) claimID(id uint32) {
	for {
		cur := s.nextID.Load()
		if cur >= id {
			return
		}
		if s.nextID.CompareAndSwap(cur, id) {
			return
		}
	}
}

// Kind returns the kind registered for id.
func (s *Store) Kind(id uint32) (Kind, bool) {
	ref, ok := s.refs[id]
	return ref.Kind, ok
}

// Len returns the number of registered entities.
func (s *Store) Len() int { return len(s.refs) }

// Each calls fn for every registered entity in unspecified order.
func (s *Store) Each(fn func(id uint32, kind Kind)) {
	for id, ref := range s.refs {
		fn(id, ref.Kind)
	}
}

// AddRect inserts r, assigning its ID if zero, and returns the id.
func (s *Store) AddRect(r RectRec) uint32 {
	if r.ID == 0 {
		r.ID = s.NewID()
	} else {
		s.claimID(r.ID)
	}
	s.refs[r.ID] = Ref{Kind: KindRect, handle: s.rects.Insert(r)}
	return r.ID
}

// AddCircle inserts c, assigning its ID if zero, and returns the id.
func (s *Store) AddCircle(c CircleRec) uint32 {
	if c.ID == 0 {
		c.ID = s.NewID()
	} else {
		s.claimID(c.ID)
	}
	s.refs[c.ID] = Ref{Kind: KindCircle, handle: s.circles.Insert(c)}
	return c.ID
}

// AddLine inserts l, assigning its ID if zero, and returns the id.
func (s *Store) AddLine(l LineRec) uint32 {
	if l.ID == 0 {
		l.ID = s.NewID()
	} else {
		s.claimID(l.ID)
	}
	s.refs[l.ID] = Ref{Kind: KindLine, handle: s.lines.Insert(l)}
	return l.ID
}

// AddArrow inserts a, assigning its ID if zero, and returns the id.
func (s *Store) AddArrow(a ArrowRec) uint32 {
	if a.ID == 0 {
		a.ID = s.NewID()
	} else {
		s.claimID(a.ID)
	}
	s.refs[a.ID] = Ref{Kind: KindArrow, handle: s.arrows.Insert(a)}
	return a.ID
}

// AddPolyline inserts p, assigning its ID if zero, and returns the id.
func (s *Store) AddPolyline(p PolylineRec) uint32 {
	if p.ID == 0 {
		p.ID = s.NewID()
	} else {
		s.claimID(p.ID)
	}
	s.refs[p.ID] = Ref{Kind: KindPolyline, handle: s.polylines.Insert(p)}
	return p.ID
}

// AddPolygon inserts p, assigning its ID if zero, and returns the id.
func (s *Store) AddPolygon(p PolygonRec) uint32 {
	if p.ID == 0 {
		p.ID = s.NewID()
	} else {
		s.claimID(p.ID)
	}
	s.refs[p.ID] = Ref{Kind: KindPolygon, handle: s.polygons.Insert(p)}
	return p.ID
}

// RegisterText registers id as a text entity. The record itself is
// owned by the text layout store.
func (s *Store) RegisterText(id uint32) {
	s.claimID(id)
	s.refs[id] = Ref{Kind: KindText}
}

// Rect returns the rectangle record for id.
func (s *Store) Rect(id uint32) (*RectRec, bool) {
	ref, ok := s.refs[id]
	if !ok || ref.Kind != KindRect {
		return nil, false
	}
	return s.rects.Get(ref.handle)
}

// Circle returns the circle record for id.
func (s *Store) Circle(id uint32) (*CircleRec, bool) {
	ref, ok := s.refs[id]
	if !ok || ref.Kind != KindCircle {
		return nil, false
	}
	return s.circles.Get(ref.handle)
}

// Line returns the line record for id.
func (s *Store) Line(id uint32) (*LineRec, bool) {
	ref, ok := s.refs[id]
	if !ok || ref.Kind != KindLine {
		return nil, false
	}
	return s.lines.Get(ref.handle)
}

// Arrow returns the arrow record for id.
func (s *Store) Arrow(id uint32) (*ArrowRec, bool) {
	ref, ok := s.refs[id]
	if !ok || ref.Kind != KindArrow {
		return nil, false
	}
	return s.arrows.Get(ref.handle)
}

// Polyline returns the polyline record for id.
func (s *Store) Polyline(id uint32) (*PolylineRec, bool) {
	ref, ok := s.refs[id]
	if !ok || ref.Kind != KindPolyline {
		return nil, false
	}
	return s.polylines.Get(ref.handle)
}

// Polygon returns the polygon record for id.
func (s *Store) Polygon(id uint32) (*PolygonRec, bool) {
	ref, ok := s.refs[id]
	if !ok || ref.Kind != KindPolygon {
		return nil, false
	}
	return s.polygons.Get(ref.handle)
}

// Remove deletes the entity for id. Text entities are unregistered
// from the directory only; the text layout store owns their records.
func (s *Store) Remove(id uint32) bool {
	ref, ok := s.refs[id]
	if !ok {
		return false
	}
	switch ref.Kind {
	case KindRect:
		s.rects.Remove(ref.handle)
	case KindCircle:
		s.circles.Remove(ref.handle)
	case KindLine:
		s.lines.Remove(ref.handle)
	case KindArrow:
		s.arrows.Remove(ref.handle)
	case KindPolyline:
		s.polylines.Remove(ref.handle)
	case KindPolygon:
		s.polygons.Remove(ref.handle)
	}
	delete(s.refs, id)
	return true
}

// AABB returns the world bounding box for id. Text entities return
// false here; the document context resolves them through the text
// layout store.
func (s *Store) AABB(id uint32) (geom.AABB, bool) {
	ref, ok := s.refs[id]
	if !ok {
		return geom.AABB{}, false
	}
	switch ref.Kind {
	case KindRect:
		if r, ok := s.rects.Get(ref.handle); ok {
			return r.AABB(), true
		}
	case KindCircle:
		if c, ok := s.circles.Get(ref.handle); ok {
			return c.AABB(), true
		}
	case KindLine:
		if l, ok := s.lines.Get(ref.handle); ok {
			return l.AABB(), true
		}
	case KindArrow:
		if a, ok := s.arrows.Get(ref.handle); ok {
			return a.AABB(), true
		}
	case KindPolyline:
		if p, ok := s.polylines.Get(ref.handle); ok {
			return p.AABB(), true
		}
	case KindPolygon:
		if p, ok := s.polygons.Get(ref.handle); ok {
			return p.AABB(), true
		}
	}
	return geom.AABB{}, false
}
