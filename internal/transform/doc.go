// Package transform implements the interactive geometry manipulation
// pipeline: dragging, vertex editing, resizing and rotating entities
// as a live gesture with commit and cancel semantics.
//
// # Session Lifecycle
//
// A gesture runs Begin, any number of Updates, then Commit or Cancel.
// Begin captures immutable geometry snapshots of the affected
// entities; every Update recomputes the transform from those
// snapshots and the current pointer position, so updates never
// accumulate floating point drift. Cancel restores the snapshots
// exactly. Commit reports per-entity operation records and closes the
// gesture's undo entry.
//
// # Coordinate Spaces
//
// Pointer input arrives in screen pixels together with the view
// transform. Screen positions convert to world space at exactly one
// point, Viewport.WorldFromScreen; world Y grows upward while screen Y
// grows downward. Drag thresholds and axis-lock hysteresis evaluate in
// screen pixels, all geometry math in world units.
//
// # Snapping
//
// Two snap layers compose: an optional grid snap rounds the cursor
// before mode math, then the object snap solver aligns the moved
// selection bounds against nearby entity features, solving each axis
// independently. Ctrl or meta suppresses both layers for an event.
//
// # Replay
//
// The session log records Begin/Update/Commit/Cancel calls with their
// full inputs. Feeding the entries back through Replay reproduces the
// gesture deterministically, which backs the replay CLI and bug
// reports.
package transform
