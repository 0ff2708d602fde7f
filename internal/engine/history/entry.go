package history

import (
	"time"

	"github.com/dshills/vecstorm/internal/engine/entity"
	"github.com/dshills/vecstorm/internal/geom"
)

// GeometrySnapshot captures one entity's geometry for undo purposes.
// The same shape serves every kind: rects use X/Y/W/H, circles and
// polygons use X/Y as center and W/H as radii, point-based kinds use
// Points.
type GeometrySnapshot struct {
	X        float64
	Y        float64
	W        float64
	H        float64
	Rotation float64
	Points   []geom.Point
}

// Clone returns a deep copy of the snapshot.
func (g GeometrySnapshot) Clone() GeometrySnapshot {
	out := g
	if len(g.Points) > 0 {
		out.Points = make([]geom.Point, len(g.Points))
		copy(out.Points, g.Points)
	}
	return out
}

// EntityChange records one entity's geometry before and after an edit.
// Created marks entities that did not exist before the entry; undoing
// such a change deletes the entity instead of restoring Before.
type EntityChange struct {
	ID      uint32
	Kind    entity.Kind
	Created bool
	Before  GeometrySnapshot
	After   GeometrySnapshot
}

// Entry groups the entity changes of a single gesture into one undo
// unit. An entry is open between Begin and Commit/Discard.
type Entry struct {
	Label     string
	Changes   []EntityChange
	timestamp time.Time
	open      bool
}

// Timestamp returns when the entry was opened.
func (e *Entry) Timestamp() time.Time { return e.timestamp }

// Record appends a change to an open entry. Changes recorded after
// commit are ignored.
func (e *Entry) Record(change EntityChange) {
	if e == nil || !e.open {
		return
	}
	e.Changes = append(e.Changes, change)
}

// SetAfter fills the post-edit snapshot for id if a change for it was
// recorded.
func (e *Entry) SetAfter(id uint32, after GeometrySnapshot) {
	if e == nil || !e.open {
		return
	}
	for i := range e.Changes {
		if e.Changes[i].ID == id {
			e.Changes[i].After = after
			return
		}
	}
}
