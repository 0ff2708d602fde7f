// Package history provides gesture-scoped undo and redo for geometry
// edits.
//
// One Entry wraps one pointer gesture: the transform session opens it
// at gesture start, records the pre-edit snapshot of every touched
// entity, fills in the post-edit snapshots at commit, and either
// commits or discards the whole group. Undo and Redo hand entries
// back to the caller, which applies the Before or After snapshots to
// the entity store.
//
//	mgr := history.NewManager(0)
//	entry, err := mgr.Begin("move")
//	entry.Record(history.EntityChange{ID: id, Kind: kind, Before: snap})
//	...
//	entry.SetAfter(id, after)
//	mgr.Commit(entry)
package history
