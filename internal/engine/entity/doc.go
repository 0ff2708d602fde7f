// Package entity stores the geometric records of a document.
//
// Each entity kind (rect, circle, line, arrow, polyline, polygon) has
// its own typed slot arena; a directory maps stable entity ids to
// generation-checked handles, so record lookup is O(1) and stale
// handles are detected rather than silently aliased.
//
// # Store
//
// Store is the single owner of geometry:
//
//	store := entity.NewStore()
//	id := store.AddRect(entity.RectRec{X: 0, Y: 0, W: 100, H: 50})
//	r, ok := store.Rect(id)
//
// Text entities share the id space but keep their records in the text
// layout store; Store only registers their kind.
//
// # Concurrency
//
// Store is single-threaded by design. The interactive transform
// pipeline mutates records in place between snapshots, so all calls
// must come from the goroutine driving pointer events.
package entity
