// Package spatial maintains the axis-aligned bounding boxes of all
// entities in a uniform hash grid for area queries. The interactive
// transform pipeline keeps it current on every geometry write and uses
// it to collect object-snap candidates.
package spatial

import (
	"math"
	"sort"

	"github.com/dshills/vecstorm/internal/geom"
)

// DefaultCellSize is the grid cell edge in world units.
const DefaultCellSize = 64.0

type cellKey struct {
	x int32
	y int32
}

// Index maps entity ids to bounding boxes and buckets them in a
// uniform grid. Not safe for concurrent mutation.
type Index struct {
	cellSize float64
	cells    map[cellKey]map[uint32]struct{}
	boxes    map[uint32]geom.AABB
}

// NewIndex creates an index with the given cell size. A non-positive
// size falls back to DefaultCellSize.
func NewIndex(cellSize float64) *Index {
	if cellSize <= 0 || !geom.IsFinite(cellSize) {
		cellSize = DefaultCellSize
	}
	return &Index{
		cellSize: cellSize,
		cells:    make(map[cellKey]map[uint32]struct{}),
		boxes:    make(map[uint32]geom.AABB),
	}
}

// Len returns the number of indexed entities.
func (ix *Index) Len() int { return len(ix.boxes) }

// Bounds returns the stored box for id.
func (ix *Index) Bounds(id uint32) (geom.AABB, bool) {
	box, ok := ix.boxes[id]
	return box, ok
}

// Insert adds or replaces the box for id.
func (ix *Index) Insert(id uint32, box geom.AABB) {
	if old, ok := ix.boxes[id]; ok {
		ix.removeFromCells(id, old)
	}
	ix.boxes[id] = box
	ix.eachCell(box, func(k cellKey) {
		bucket := ix.cells[k]
		if bucket == nil {
			bucket = make(map[uint32]struct{})
			ix.cells[k] = bucket
		}
		bucket[id] = struct{}{}
	})
}

// Update replaces the box for id. Identical to Insert; named for call
// sites that refresh an existing entry.
func (ix *Index) Update(id uint32, box geom.AABB) {
	ix.Insert(id, box)
}

// Remove deletes id from the index.
func (ix *Index) Remove(id uint32) {
	box, ok := ix.boxes[id]
	if !ok {
		return
	}
	ix.removeFromCells(id, box)
	delete(ix.boxes, id)
}

// QueryArea returns the ids of all entities whose boxes intersect
// area, sorted ascending for deterministic iteration.
func (ix *Index) QueryArea(area geom.AABB) []uint32 {
	seen := make(map[uint32]struct{})
	var out []uint32
	ix.eachCell(area, func(k cellKey) {
		for id := range ix.cells[k] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if ix.boxes[id].Intersects(area) {
				out = append(out, id)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (ix *Index) removeFromCells(id uint32, box geom.AABB) {
	ix.eachCell(box, func(k cellKey) {
		if bucket := ix.cells[k]; bucket != nil {
			delete(bucket, id)
			if len(bucket) == 0 {
				delete(ix.cells, k)
			}
		}
	})
}

func (ix *Index) eachCell(box geom.AABB, fn func(cellKey)) {
	minX := int32(math.Floor(box.MinX / ix.cellSize))
	minY := int32(math.Floor(box.MinY / ix.cellSize))
	maxX := int32(math.Floor(box.MaxX / ix.cellSize))
	maxY := int32(math.Floor(box.MaxY / ix.cellSize))
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			fn(cellKey{x: cx, y: cy})
		}
	}
}
